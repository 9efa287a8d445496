package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/piyushvishwakarma01/GearGuard/internal/auth"
	"github.com/piyushvishwakarma01/GearGuard/internal/model"
	"github.com/piyushvishwakarma01/GearGuard/internal/repository"
	"github.com/piyushvishwakarma01/GearGuard/internal/workflow"
	"gorm.io/gorm"
)

// EquipmentService 设备服务接口
type EquipmentService interface {
	Create(ctx context.Context, req *CreateEquipmentRequest) (*model.EquipmentModel, error)
	Get(id string) (*model.EquipmentModel, error)
	List() ([]*model.EquipmentModel, error)
}

// CreateEquipmentRequest 创建设备请求
// @Description 创建设备的请求参数
type CreateEquipmentRequest struct {
	EquipmentName            string `json:"equipment_name" example:"CNC 加工中心 3 号" binding:"required"` // 设备名称
	SerialNumber             string `json:"serial_number" example:"SN-2024-0042"`                     // 序列号
	Category                 string `json:"category" example:"CNC"`                                   // 设备类别
	PhysicalLocation         string `json:"physical_location" example:"一号车间 B 区"`                     // 物理位置
	DefaultMaintenanceTeamID string `json:"default_maintenance_team_id" example:"team-001" binding:"required"` // 默认维修团队 ID
}

// equipmentService 设备服务实现
type equipmentService struct {
	equipmentRepo repository.EquipmentRepository
	teamRepo      repository.TeamRepository
	auditLogSvc   AuditLogService
}

// NewEquipmentService 创建设备服务
func NewEquipmentService(equipmentRepo repository.EquipmentRepository, teamRepo repository.TeamRepository, auditLogSvc AuditLogService) EquipmentService {
	return &equipmentService{
		equipmentRepo: equipmentRepo,
		teamRepo:      teamRepo,
		auditLogSvc:   auditLogSvc,
	}
}

// Create 创建设备,仅 Manager 可调用
// 默认维修团队必须存在,工单创建时从这里自动带出
func (s *equipmentService) Create(ctx context.Context, req *CreateEquipmentRequest) (*model.EquipmentModel, error) {
	actor, ok := auth.ActorFromContext(ctx)
	if !ok || !actor.IsManager() {
		return nil, workflow.ErrForbidden()
	}

	if _, err := s.teamRepo.FindByID(req.DefaultMaintenanceTeamID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, workflow.ErrNotFound(req.DefaultMaintenanceTeamID)
		}
		return nil, err
	}

	eq := &model.EquipmentModel{
		ID:                       uuid.New().String(),
		EquipmentName:            req.EquipmentName,
		SerialNumber:             req.SerialNumber,
		Category:                 req.Category,
		PhysicalLocation:         req.PhysicalLocation,
		DefaultMaintenanceTeamID: req.DefaultMaintenanceTeamID,
	}
	if err := eq.Validate(); err != nil {
		return nil, err
	}
	if err := s.equipmentRepo.Save(eq); err != nil {
		return nil, err
	}

	_ = s.auditLogSvc.RecordAction(ctx, actor.ID, model.AuditActionCreate, "equipment", eq.ID, map[string]string{
		"equipment_name": eq.EquipmentName,
	})
	return eq, nil
}

// Get 查询设备
func (s *equipmentService) Get(id string) (*model.EquipmentModel, error) {
	eq, err := s.equipmentRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, workflow.ErrNotFound(id)
		}
		return nil, err
	}
	return eq, nil
}

// List 查询所有设备
func (s *equipmentService) List() ([]*model.EquipmentModel, error) {
	return s.equipmentRepo.FindAll()
}
