package auth

import "context"

// Actor 当前操作者身份
// 由认证中间件从 token 解出并注入 context,服务层据此做授权判断
type Actor struct {
	ID    string
	Email string
	Role  string // User/Technician/Manager
}

// IsManager 判断操作者是否为 Manager
// Manager 不受团队成员关系限制
func (a Actor) IsManager() bool {
	return a.Role == "Manager"
}

type actorKey struct{}

// WithActor 将操作者注入 context
func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFromContext 从 context 提取操作者
func ActorFromContext(ctx context.Context) (Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(Actor)
	return actor, ok
}
