package model

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// MaintenanceTeamModel 维修团队数据模型
type MaintenanceTeamModel struct {
	ID          string         `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Name        string         `gorm:"type:varchar(255);not null;index" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	CreatedAt   time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName 指定表名
func (MaintenanceTeamModel) TableName() string {
	return "maintenance_teams"
}

// Validate 验证团队模型
func (m *MaintenanceTeamModel) Validate() error {
	if m.ID == "" {
		return errors.New("team ID is required")
	}
	if m.Name == "" {
		return errors.New("team name is required")
	}
	return nil
}

// TeamMemberModel 团队成员关系数据模型
// (team, user) 对唯一,is_lead 标记组长
type TeamMemberModel struct {
	ID       string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	TeamID   string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_team_members_team_user" json:"team_id"`
	UserID   string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_team_members_team_user" json:"user_id"`
	IsLead   bool      `gorm:"not null;default:false" json:"is_lead"`
	JoinedAt time.Time `gorm:"not null" json:"joined_at"`
}

// TableName 指定表名
func (TeamMemberModel) TableName() string {
	return "team_members"
}

// Validate 验证成员关系模型
func (m *TeamMemberModel) Validate() error {
	if m.ID == "" {
		return errors.New("membership ID is required")
	}
	if m.TeamID == "" {
		return errors.New("team ID is required")
	}
	if m.UserID == "" {
		return errors.New("user ID is required")
	}
	return nil
}
