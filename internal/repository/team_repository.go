package repository

import (
	"time"

	"github.com/piyushvishwakarma01/GearGuard/internal/model"
	"gorm.io/gorm"
)

// TeamRepository 维修团队仓储接口
type TeamRepository interface {
	Save(team *model.MaintenanceTeamModel) error
	FindByID(id string) (*model.MaintenanceTeamModel, error)
	FindAll() ([]*model.MaintenanceTeamModel, error)
	IsMember(teamID, userID string) (bool, error)
	FindMembers(teamID string) ([]*TeamMemberInfo, error)
	AddMember(member *model.TeamMemberModel) error
	RemoveMember(teamID, userID string) (bool, error)
}

// TeamMemberInfo 成员信息(关联用户字段)
type TeamMemberInfo struct {
	UserID   string    `json:"user_id"`
	FullName string    `json:"full_name"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	IsLead   bool      `json:"is_lead"`
	JoinedAt time.Time `json:"joined_at"`
}

// teamRepository 团队仓储实现
type teamRepository struct {
	db *gorm.DB
}

// NewTeamRepository 创建团队仓储
func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &teamRepository{db: db}
}

// Save 保存团队
func (r *teamRepository) Save(team *model.MaintenanceTeamModel) error {
	return r.db.Save(team).Error
}

// FindByID 根据 ID 查找团队
func (r *teamRepository) FindByID(id string) (*model.MaintenanceTeamModel, error) {
	var team model.MaintenanceTeamModel
	if err := r.db.Where("id = ?", id).First(&team).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

// FindAll 查找所有团队
func (r *teamRepository) FindAll() ([]*model.MaintenanceTeamModel, error) {
	var teams []*model.MaintenanceTeamModel
	err := r.db.Order("name").Find(&teams).Error
	return teams, err
}

// IsMember 判断用户是否为团队成员
// 直接查关系表,不做缓存: 成员被移除后下一次授权检查立即生效
func (r *teamRepository) IsMember(teamID, userID string) (bool, error) {
	var count int64
	err := r.db.Model(&model.TeamMemberModel{}).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Count(&count).Error
	return count > 0, err
}

// FindMembers 查找团队成员,组长在前
func (r *teamRepository) FindMembers(teamID string) ([]*TeamMemberInfo, error) {
	var members []*TeamMemberInfo
	err := r.db.Model(&model.TeamMemberModel{}).
		Select("team_members.user_id, users.full_name, users.email, users.role, team_members.is_lead, team_members.joined_at").
		Joins("JOIN users ON users.id = team_members.user_id AND users.deleted_at IS NULL").
		Where("team_members.team_id = ?", teamID).
		Order("team_members.is_lead DESC, users.full_name").
		Scan(&members).Error
	return members, err
}

// AddMember 添加团队成员
func (r *teamRepository) AddMember(member *model.TeamMemberModel) error {
	return r.db.Create(member).Error
}

// RemoveMember 移除团队成员
func (r *teamRepository) RemoveMember(teamID, userID string) (bool, error) {
	result := r.db.Where("team_id = ? AND user_id = ?", teamID, userID).
		Delete(&model.TeamMemberModel{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
