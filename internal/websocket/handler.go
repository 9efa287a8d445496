package websocket

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/piyushvishwakarma01/GearGuard/internal/auth"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// 跨域检查由 CORS 中间件负责
	CheckOrigin: func(r *http.Request) bool { return true },
}

// BoardHandler 看板 WebSocket 入口
// 客户端通过 ?team_id= 订阅某个团队的看板事件,缺省订阅全部
func BoardHandler(hub *Hub, validator *auth.TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "missing token"})
			return
		}

		claims, err := validator.ValidateToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid token"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}

		client := NewClient(uuid.New().String(), claims.UserID, c.Query("team_id"), hub, conn)
		hub.Register <- client

		go client.WritePump()
		go client.ReadPump()
	}
}
