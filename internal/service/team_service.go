package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/piyushvishwakarma01/GearGuard/internal/auth"
	"github.com/piyushvishwakarma01/GearGuard/internal/model"
	"github.com/piyushvishwakarma01/GearGuard/internal/repository"
	"github.com/piyushvishwakarma01/GearGuard/internal/workflow"
	"gorm.io/gorm"
)

// TeamService 维修团队服务接口
// 同时充当成员关系判定方:工单授权和指派校验都从这里查
type TeamService interface {
	Create(ctx context.Context, req *CreateTeamRequest) (*model.MaintenanceTeamModel, error)
	Get(id string) (*model.MaintenanceTeamModel, error)
	List() ([]*model.MaintenanceTeamModel, error)
	Members(teamID string) ([]*repository.TeamMemberInfo, error)
	AddMember(ctx context.Context, teamID string, req *AddMemberRequest) error
	RemoveMember(ctx context.Context, teamID, userID string) error
	IsMember(teamID, userID string) (bool, error)
}

// CreateTeamRequest 创建团队请求
// @Description 创建维修团队的请求参数
type CreateTeamRequest struct {
	Name        string `json:"name" example:"机电维修组" binding:"required"` // 团队名称
	Description string `json:"description" example:"负责车间机电设备"`          // 团队描述
}

// AddMemberRequest 添加成员请求
// @Description 向团队添加成员的请求参数
type AddMemberRequest struct {
	UserID string `json:"user_id" example:"user-001" binding:"required"` // 用户 ID
	IsLead bool   `json:"is_lead" example:"false"`                       // 是否为组长
}

// teamService 团队服务实现
type teamService struct {
	teamRepo    repository.TeamRepository
	userRepo    repository.UserRepository
	auditLogSvc AuditLogService
}

// NewTeamService 创建团队服务
func NewTeamService(teamRepo repository.TeamRepository, userRepo repository.UserRepository, auditLogSvc AuditLogService) TeamService {
	return &teamService{
		teamRepo:    teamRepo,
		userRepo:    userRepo,
		auditLogSvc: auditLogSvc,
	}
}

// Create 创建团队,仅 Manager 可调用
func (s *teamService) Create(ctx context.Context, req *CreateTeamRequest) (*model.MaintenanceTeamModel, error) {
	actor, ok := auth.ActorFromContext(ctx)
	if !ok || !actor.IsManager() {
		return nil, workflow.ErrForbidden()
	}

	team := &model.MaintenanceTeamModel{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Description: req.Description,
	}
	if err := team.Validate(); err != nil {
		return nil, err
	}
	if err := s.teamRepo.Save(team); err != nil {
		return nil, err
	}

	_ = s.auditLogSvc.RecordAction(ctx, actor.ID, model.AuditActionCreate, "team", team.ID, map[string]string{
		"name": team.Name,
	})
	return team, nil
}

// Get 查询团队
func (s *teamService) Get(id string) (*model.MaintenanceTeamModel, error) {
	team, err := s.teamRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, workflow.ErrNotFound(id)
		}
		return nil, err
	}
	return team, nil
}

// List 查询所有团队
func (s *teamService) List() ([]*model.MaintenanceTeamModel, error) {
	return s.teamRepo.FindAll()
}

// Members 查询团队成员列表
func (s *teamService) Members(teamID string) ([]*repository.TeamMemberInfo, error) {
	if _, err := s.Get(teamID); err != nil {
		return nil, err
	}
	return s.teamRepo.FindMembers(teamID)
}

// AddMember 添加成员,仅 Manager 可调用
// 成员关系立即生效:添加后该用户马上能操作团队的工单
func (s *teamService) AddMember(ctx context.Context, teamID string, req *AddMemberRequest) error {
	actor, ok := auth.ActorFromContext(ctx)
	if !ok || !actor.IsManager() {
		return workflow.ErrForbidden()
	}

	if _, err := s.Get(teamID); err != nil {
		return err
	}
	if _, err := s.userRepo.FindByID(req.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return workflow.ErrNotFound(req.UserID)
		}
		return err
	}

	member := &model.TeamMemberModel{
		ID:       uuid.New().String(),
		TeamID:   teamID,
		UserID:   req.UserID,
		IsLead:   req.IsLead,
		JoinedAt: time.Now(),
	}
	if err := s.teamRepo.AddMember(member); err != nil {
		return err
	}

	_ = s.auditLogSvc.RecordAction(ctx, actor.ID, model.AuditActionUpdate, "team", teamID, map[string]interface{}{
		"added_member": req.UserID,
		"is_lead":      req.IsLead,
	})
	return nil
}

// RemoveMember 移除成员,仅 Manager 可调用
// 移除立即生效:该用户对团队工单的后续操作立刻被拒绝
func (s *teamService) RemoveMember(ctx context.Context, teamID, userID string) error {
	actor, ok := auth.ActorFromContext(ctx)
	if !ok || !actor.IsManager() {
		return workflow.ErrForbidden()
	}

	removed, err := s.teamRepo.RemoveMember(teamID, userID)
	if err != nil {
		return err
	}
	if !removed {
		return workflow.ErrNotFound(userID)
	}

	_ = s.auditLogSvc.RecordAction(ctx, actor.ID, model.AuditActionUpdate, "team", teamID, map[string]string{
		"removed_member": userID,
	})
	return nil
}

// IsMember 判断用户是否为团队成员
// 每次直查成员表,不做缓存,保证成员变更零延迟生效
func (s *teamService) IsMember(teamID, userID string) (bool, error) {
	return s.teamRepo.IsMember(teamID, userID)
}
