package model

import (
	"errors"
	"time"
)

// 审计动作
const (
	AuditActionCreate        = "create"
	AuditActionUpdate        = "update"
	AuditActionStatusChange  = "status_change"
	AuditActionAssign        = "assign_technician"
	AuditActionDelete        = "delete"
	AuditActionMarkedOverdue = "marked_overdue"
)

// AuditLogModel 审计日志数据模型
// 在事务提交后写入,写入失败不影响业务操作
type AuditLogModel struct {
	ID           string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	UserID       string    `gorm:"type:varchar(64);not null;index" json:"user_id"`
	Action       string    `gorm:"type:varchar(64);not null;index" json:"action"`
	ResourceType string    `gorm:"type:varchar(32);not null" json:"resource_type"` // request/team/equipment
	ResourceID   string    `gorm:"type:varchar(64);not null;index" json:"resource_id"`
	RequestID    string    `gorm:"type:varchar(64);index" json:"request_id"` // HTTP 请求 ID
	IP           string    `gorm:"type:varchar(45)" json:"ip"`
	UserAgent    string    `gorm:"type:text" json:"user_agent"`
	Details      []byte    `gorm:"type:jsonb" json:"details"`
	CreatedAt    time.Time `gorm:"not null;index" json:"created_at"`
}

// TableName 指定表名
func (AuditLogModel) TableName() string {
	return "audit_logs"
}

// Validate 验证审计日志模型
func (m *AuditLogModel) Validate() error {
	if m.ID == "" {
		return errors.New("audit log ID is required")
	}
	if m.UserID == "" {
		return errors.New("user ID is required")
	}
	if m.Action == "" {
		return errors.New("action is required")
	}
	if m.ResourceType == "" {
		return errors.New("resource type is required")
	}
	if m.ResourceID == "" {
		return errors.New("resource ID is required")
	}
	return nil
}
