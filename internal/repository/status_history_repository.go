package repository

import (
	"github.com/piyushvishwakarma01/GearGuard/internal/model"
	"gorm.io/gorm"
)

// StatusHistoryRepository 状态历史仓储接口
type StatusHistoryRepository interface {
	Save(hist *model.StatusHistoryModel) error
	FindByRequestID(requestID string) ([]*model.StatusHistoryModel, error)
}

// statusHistoryRepository 状态历史仓储实现
type statusHistoryRepository struct {
	db *gorm.DB
}

// NewStatusHistoryRepository 创建状态历史仓储
func NewStatusHistoryRepository(db *gorm.DB) StatusHistoryRepository {
	return &statusHistoryRepository{db: db}
}

// Save 保存状态历史
func (r *statusHistoryRepository) Save(hist *model.StatusHistoryModel) error {
	return r.db.Create(hist).Error
}

// FindByRequestID 查找工单的状态历史,按变更时间倒序
func (r *statusHistoryRepository) FindByRequestID(requestID string) ([]*model.StatusHistoryModel, error) {
	var history []*model.StatusHistoryModel
	err := r.db.Where("request_id = ?", requestID).
		Order("changed_at DESC").
		Find(&history).Error
	return history, err
}
