package workflow

import "fmt"

// Kind 工作流错误类别
// 所有网关和状态机错误都归入这些类别,REST 层按类别映射稳定的状态码
type Kind string

const (
	KindNotFound          Kind = "NOT_FOUND"           // 工单不存在或已被软删除
	KindForbidden         Kind = "FORBIDDEN"           // 操作者不是团队成员也不是 Manager
	KindInvalidTransition Kind = "INVALID_TRANSITION"  // 目标状态从当前状态不可达
	KindMissingTechnician Kind = "MISSING_TECHNICIAN"  // 进入 In Progress 前必须指派技术员
	KindMissingDuration   Kind = "MISSING_DURATION"    // 进入终态必须提供正的工时
	KindInvalidAssignment Kind = "INVALID_ASSIGNMENT"  // 被指派的技术员不是团队成员
	KindConflict          Kind = "CONFLICT"            // 乐观更新竞争失败
)

// Error 带类别的工作流错误
// 对 InvalidTransition 附带当前合法的目标状态集合,便于客户端自我纠正
type Error struct {
	Kind    Kind
	Message string
	Allowed []Status
}

func (e *Error) Error() string {
	return e.Message
}

// KindOf 提取错误类别,非工作流错误返回空
func KindOf(err error) Kind {
	if we, ok := err.(*Error); ok {
		return we.Kind
	}
	return ""
}

// ErrNotFound 工单不存在
func ErrNotFound(id string) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("maintenance request %s not found", id)}
}

// ErrForbidden 无权操作
func ErrForbidden() *Error {
	return &Error{Kind: KindForbidden, Message: "access denied: not a member of this team"}
}

// ErrInvalidTransition 非法状态转换
func ErrInvalidTransition(from, to Status) *Error {
	return &Error{
		Kind:    KindInvalidTransition,
		Message: fmt.Sprintf("invalid status transition from %s to %s", from, to),
		Allowed: AllowedTargets(from),
	}
}

// ErrTerminalImmutable 终态工单不可变更
// 终态没有出边,除软删除外一切修改都被拒绝
func ErrTerminalImmutable(current Status) *Error {
	return &Error{
		Kind:    KindInvalidTransition,
		Message: fmt.Sprintf("request in terminal status %s cannot be modified", current),
		Allowed: []Status{},
	}
}

// ErrMissingTechnician 未指派技术员
func ErrMissingTechnician() *Error {
	return &Error{
		Kind:    KindMissingTechnician,
		Message: "request must be assigned to a technician before moving to In Progress",
	}
}

// ErrMissingDuration 缺少工时
func ErrMissingDuration() *Error {
	return &Error{
		Kind:    KindMissingDuration,
		Message: "duration hours required when completing request",
	}
}

// ErrInvalidAssignment 非法指派
func ErrInvalidAssignment() *Error {
	return &Error{
		Kind:    KindInvalidAssignment,
		Message: "assigned technician is not a member of the maintenance team",
	}
}

// ErrConflict 并发冲突
func ErrConflict(id string) *Error {
	return &Error{
		Kind:    KindConflict,
		Message: fmt.Sprintf("maintenance request %s was modified concurrently", id),
	}
}
