package model

import (
	"errors"
	"time"

	"github.com/piyushvishwakarma01/GearGuard/internal/workflow"
	"gorm.io/gorm"
)

// 工单类型
const (
	RequestTypeCorrective = "Corrective"
	RequestTypePreventive = "Preventive"
)

// 优先级(4 级,按看板排序权重从高到低: Critical > High > Medium > Low)
const (
	PriorityLow      = "Low"
	PriorityMedium   = "Medium"
	PriorityHigh     = "High"
	PriorityCritical = "Critical"
)

// MaintenanceRequestModel 维修工单数据模型
type MaintenanceRequestModel struct {
	ID                   string         `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Subject              string         `gorm:"type:varchar(255);not null" json:"subject"`
	Description          string         `gorm:"type:text" json:"description"`
	RequestType          string         `gorm:"type:varchar(32);not null;index" json:"request_type"` // Corrective/Preventive
	Priority             string         `gorm:"type:varchar(32);not null" json:"priority"`           // Low/Medium/High/Critical
	Status               string         `gorm:"type:varchar(32);not null;index" json:"status"`       // 工单状态,见 workflow 包
	EquipmentID          string         `gorm:"type:varchar(64);not null;index" json:"equipment_id"`
	EquipmentCategory    string         `gorm:"type:varchar(64)" json:"equipment_category"` // 创建时从设备自动填充
	MaintenanceTeamID    string         `gorm:"type:varchar(64);not null;index" json:"maintenance_team_id"`
	AssignedTechnicianID *string        `gorm:"type:varchar(64);index" json:"assigned_technician_id"`
	CreatedByUserID      string         `gorm:"type:varchar(64);not null;index" json:"created_by_user_id"`
	ScheduledDate        *time.Time     `gorm:"index" json:"scheduled_date"`
	DurationHours        *float64       `json:"duration_hours"` // 完工工时,进入终态后必有
	CompletionNotes      string         `gorm:"type:text" json:"completion_notes"`
	IsOverdue            bool           `gorm:"not null;default:false;index" json:"is_overdue"`
	StartedAt            *time.Time     `json:"started_at"`
	CompletedAt          *time.Time     `json:"completed_at"`
	CreatedAt            time.Time      `gorm:"not null;index" json:"created_at"`
	UpdatedAt            time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt            gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName 指定表名
func (MaintenanceRequestModel) TableName() string {
	return "maintenance_requests"
}

// Validate 验证工单模型
func (m *MaintenanceRequestModel) Validate() error {
	if m.ID == "" {
		return errors.New("request ID is required")
	}
	if m.Subject == "" {
		return errors.New("subject is required")
	}
	if m.RequestType != RequestTypeCorrective && m.RequestType != RequestTypePreventive {
		return errors.New("request type must be Corrective or Preventive")
	}
	if !ValidPriority(m.Priority) {
		return errors.New("invalid priority")
	}
	if _, ok := workflow.ParseStatus(m.Status); !ok {
		return errors.New("invalid status")
	}
	if m.EquipmentID == "" {
		return errors.New("equipment ID is required")
	}
	if m.MaintenanceTeamID == "" {
		return errors.New("maintenance team ID is required")
	}
	if m.CreatedByUserID == "" {
		return errors.New("created by user ID is required")
	}
	return nil
}

// HasTechnician 判断是否已指派技术员
func (m *MaintenanceRequestModel) HasTechnician() bool {
	return m.AssignedTechnicianID != nil && *m.AssignedTechnicianID != ""
}

// CurrentStatus 返回解析后的工单状态
func (m *MaintenanceRequestModel) CurrentStatus() workflow.Status {
	return workflow.Status(m.Status)
}

// IsTerminal 判断工单是否处于终态
// 终态工单除软删除外不可变更
func (m *MaintenanceRequestModel) IsTerminal() bool {
	return m.CurrentStatus().IsTerminal()
}

// ValidPriority 判断优先级是否合法
func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}
