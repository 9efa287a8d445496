package websocket

import (
	"encoding/json"
	"sync"
	"time"
)

// BoardEvent 看板事件
// 工单状态变更提交后广播,前端据此刷新看板
type BoardEvent struct {
	Type       string    `json:"type"` // status_changed/assigned/created/deleted
	RequestID  string    `json:"request_id"`
	TeamID     string    `json:"team_id"`
	OldStatus  string    `json:"old_status,omitempty"`
	NewStatus  string    `json:"new_status,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Hub 管理所有看板 WebSocket 连接
type Hub struct {
	// 已注册的客户端
	clients map[*Client]bool

	// 广播看板事件,按客户端订阅的团队分发
	Broadcast chan BoardEvent

	// 注册新客户端
	Register chan *Client

	// 注销客户端
	Unregister chan *Client

	// 互斥锁，保护 clients map
	mu sync.RWMutex
}

// NewHub 创建新的 Hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		Broadcast:  make(chan BoardEvent, 64),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// Run 运行 Hub,直到 Register/Unregister/Broadcast 全部关闭前持续分发
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()

		case client := <-h.Unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mu.Unlock()

		case event := <-h.Broadcast:
			payload, err := json.Marshal(event)
			if err != nil {
				continue
			}
			h.BroadcastToTeam(event.TeamID, payload)
		}
	}
}

// PublishEvent 广播看板事件
// 非阻塞: 广播缓冲满时丢弃事件,事件丢失只影响实时性,客户端可重新拉取
func (h *Hub) PublishEvent(event BoardEvent) {
	select {
	case h.Broadcast <- event:
	default:
	}
}

// BroadcastToTeam 向关注某团队的客户端广播
// 未指定团队的客户端(Manager 视图)收到全部事件
func (h *Hub) BroadcastToTeam(teamID string, message []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		if client.TeamID == "" || client.TeamID == teamID {
			select {
			case client.Send <- message:
			default:
				close(client.Send)
				delete(h.clients, client)
			}
		}
	}
}

// ClientCount 获取当前连接数
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
