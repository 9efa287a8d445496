package model

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// EquipmentModel 设备数据模型
// 工单创建时从设备自动带出类别和默认维修团队
type EquipmentModel struct {
	ID                       string         `gorm:"primaryKey;type:varchar(64)" json:"id"`
	EquipmentName            string         `gorm:"type:varchar(255);not null;index" json:"equipment_name"`
	SerialNumber             string         `gorm:"type:varchar(128);uniqueIndex" json:"serial_number"`
	Category                 string         `gorm:"type:varchar(64)" json:"category"`
	PhysicalLocation         string         `gorm:"type:varchar(255)" json:"physical_location"`
	DefaultMaintenanceTeamID string         `gorm:"type:varchar(64);not null;index" json:"default_maintenance_team_id"`
	CreatedAt                time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt                time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt                gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName 指定表名
func (EquipmentModel) TableName() string {
	return "equipment"
}

// Validate 验证设备模型
func (m *EquipmentModel) Validate() error {
	if m.ID == "" {
		return errors.New("equipment ID is required")
	}
	if m.EquipmentName == "" {
		return errors.New("equipment name is required")
	}
	if m.DefaultMaintenanceTeamID == "" {
		return errors.New("default maintenance team ID is required")
	}
	return nil
}
