package kanban

import (
	"github.com/piyushvishwakarma01/GearGuard/internal/workflow"
)

// Card 看板卡片
// 工单在看板上的投影,只保留拖拽判定需要的字段
type Card struct {
	ID            string `json:"id"`
	Subject       string `json:"subject"`
	Priority      string `json:"priority"`
	Status        string `json:"status"`
	HasTechnician bool   `json:"has_technician"`
	HasStartedAt  bool   `json:"has_started_at"`
}

// Board 看板状态
// 显式注入的状态对象,不依赖任何全局变量,可脱离渲染环境单测
type Board struct {
	columns map[workflow.Status][]*Card
}

// NewBoard 创建空看板
func NewBoard() *Board {
	b := &Board{columns: make(map[workflow.Status][]*Card)}
	for _, s := range workflow.AllStatuses() {
		b.columns[s] = nil
	}
	return b
}

// Load 用服务端返回的分组数据重建看板
func (b *Board) Load(grouped map[workflow.Status][]*Card) {
	for _, s := range workflow.AllStatuses() {
		cards := grouped[s]
		b.columns[s] = make([]*Card, len(cards))
		copy(b.columns[s], cards)
	}
}

// Column 返回某列的卡片
func (b *Board) Column(status workflow.Status) []*Card {
	return b.columns[status]
}

// Find 按 ID 查找卡片及其所在列
func (b *Board) Find(cardID string) (*Card, workflow.Status, bool) {
	for _, s := range workflow.AllStatuses() {
		for _, card := range b.columns[s] {
			if card.ID == cardID {
				return card, s, true
			}
		}
	}
	return nil, "", false
}

// move 将卡片从 from 列移到 to 列,返回是否移动成功
func (b *Board) move(cardID string, from, to workflow.Status) bool {
	idx := -1
	for i, card := range b.columns[from] {
		if card.ID == cardID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}

	card := b.columns[from][idx]
	b.columns[from] = append(b.columns[from][:idx], b.columns[from][idx+1:]...)
	card.Status = string(to)
	b.columns[to] = append(b.columns[to], card)
	return true
}
