package model

import (
	"errors"
	"time"
)

// StatusHistoryModel 工单状态变更历史数据模型
// 只追加,随状态转换在同一事务内写入
type StatusHistoryModel struct {
	ID        string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	RequestID string    `gorm:"type:varchar(64);not null;index" json:"request_id"`
	OldStatus string    `gorm:"type:varchar(32)" json:"old_status"`
	NewStatus string    `gorm:"type:varchar(32);not null" json:"new_status"`
	Notes     string    `gorm:"type:text" json:"notes"`
	ChangedBy string    `gorm:"type:varchar(64);not null" json:"changed_by"`
	ChangedAt time.Time `gorm:"not null;index" json:"changed_at"`
}

// TableName 指定表名
func (StatusHistoryModel) TableName() string {
	return "request_status_history"
}

// Validate 验证状态历史模型
func (m *StatusHistoryModel) Validate() error {
	if m.ID == "" {
		return errors.New("history ID is required")
	}
	if m.RequestID == "" {
		return errors.New("request ID is required")
	}
	if m.NewStatus == "" {
		return errors.New("new status is required")
	}
	if m.ChangedBy == "" {
		return errors.New("changed by is required")
	}
	return nil
}
