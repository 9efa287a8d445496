package repository

import (
	"github.com/piyushvishwakarma01/GearGuard/internal/model"
	"gorm.io/gorm"
)

// EquipmentRepository 设备仓储接口
type EquipmentRepository interface {
	Save(eq *model.EquipmentModel) error
	FindByID(id string) (*model.EquipmentModel, error)
	FindAll() ([]*model.EquipmentModel, error)
}

// equipmentRepository 设备仓储实现
type equipmentRepository struct {
	db *gorm.DB
}

// NewEquipmentRepository 创建设备仓储
func NewEquipmentRepository(db *gorm.DB) EquipmentRepository {
	return &equipmentRepository{db: db}
}

// Save 保存设备
func (r *equipmentRepository) Save(eq *model.EquipmentModel) error {
	return r.db.Save(eq).Error
}

// FindByID 根据 ID 查找设备
func (r *equipmentRepository) FindByID(id string) (*model.EquipmentModel, error) {
	var eq model.EquipmentModel
	if err := r.db.Where("id = ?", id).First(&eq).Error; err != nil {
		return nil, err
	}
	return &eq, nil
}

// FindAll 查找所有设备
func (r *equipmentRepository) FindAll() ([]*model.EquipmentModel, error) {
	var equipment []*model.EquipmentModel
	err := r.db.Order("equipment_name").Find(&equipment).Error
	return equipment, err
}
