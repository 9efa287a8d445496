package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/piyushvishwakarma01/GearGuard/internal/auth"
)

// AuthMiddleware 认证中间件
// 验证 Bearer Token 并将操作者注入 request context,后续授权判断在服务层完成
func AuthMiddleware(validator *auth.TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			Error(c, http.StatusUnauthorized, "missing authorization header", "")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		if tokenString == header {
			Error(c, http.StatusUnauthorized, "invalid authorization header", "expected Bearer token")
			c.Abort()
			return
		}

		claims, err := validator.ValidateToken(tokenString)
		if err != nil {
			Error(c, http.StatusUnauthorized, "invalid token", err.Error())
			c.Abort()
			return
		}

		actor := auth.Actor{
			ID:    claims.UserID,
			Email: claims.Email,
			Role:  claims.Role,
		}
		c.Set("actor", actor)
		c.Request = c.Request.WithContext(auth.WithActor(c.Request.Context(), actor))

		c.Next()
	}
}

// RequireManager Manager 角色校验中间件
// 需要在 AuthMiddleware 之后使用
func RequireManager() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := auth.ActorFromContext(c.Request.Context())
		if !ok || !actor.IsManager() {
			Error(c, http.StatusForbidden, "manager role required", "")
			c.Abort()
			return
		}
		c.Next()
	}
}
