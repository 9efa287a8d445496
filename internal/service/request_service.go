package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/piyushvishwakarma01/GearGuard/internal/auth"
	"github.com/piyushvishwakarma01/GearGuard/internal/metrics"
	"github.com/piyushvishwakarma01/GearGuard/internal/model"
	"github.com/piyushvishwakarma01/GearGuard/internal/repository"
	"github.com/piyushvishwakarma01/GearGuard/internal/websocket"
	"github.com/piyushvishwakarma01/GearGuard/internal/workflow"
	"gorm.io/gorm"
)

// RequestService 维修工单服务接口
// 状态转换的唯一入口:看板拖拽、详情页按钮、API 调用最终都走 Transition
type RequestService interface {
	Create(ctx context.Context, req *CreateRequestRequest) (*model.MaintenanceRequestModel, error)
	Get(ctx context.Context, id string) (*RequestDetail, error)
	List(ctx context.Context, query *ListRequestsQuery) ([]*model.MaintenanceRequestModel, int64, error)
	Update(ctx context.Context, id string, req *UpdateRequestRequest) (*model.MaintenanceRequestModel, error)
	Transition(ctx context.Context, id string, req *TransitionRequest) (*model.MaintenanceRequestModel, error)
	AssignTechnician(ctx context.Context, id string, req *AssignTechnicianRequest) (*model.MaintenanceRequestModel, error)
	Delete(ctx context.Context, id string) error
	Kanban(ctx context.Context, teamID string) (map[string][]*model.MaintenanceRequestModel, error)
	Calendar(ctx context.Context, start, end *time.Time, teamID string) ([]*CalendarEvent, error)
	History(ctx context.Context, id string) ([]*model.StatusHistoryModel, error)
}

// CreateRequestRequest 创建工单请求
// @Description 创建维修工单的请求参数
type CreateRequestRequest struct {
	Subject       string     `json:"subject" example:"3 号机床主轴异响" binding:"required"`       // 工单主题
	Description   string     `json:"description" example:"高速运转时主轴有金属摩擦声"`                  // 问题描述
	RequestType   string     `json:"request_type" example:"Corrective" binding:"required"` // 工单类型 Corrective/Preventive
	Priority      string     `json:"priority" example:"High"`                              // 优先级,缺省 Medium
	EquipmentID   string     `json:"equipment_id" example:"eq-001" binding:"required"`     // 设备 ID
	ScheduledDate *time.Time `json:"scheduled_date"`                                       // 计划日期,预防性维护必填
}

// UpdateRequestRequest 更新工单请求
// @Description 更新工单基础字段的请求参数,终态工单拒绝更新
type UpdateRequestRequest struct {
	Subject       *string    `json:"subject"`        // 工单主题
	Description   *string    `json:"description"`    // 问题描述
	Priority      *string    `json:"priority"`       // 优先级
	ScheduledDate *time.Time `json:"scheduled_date"` // 计划日期
}

// TransitionRequest 状态转换请求
// @Description 工单状态转换的请求参数
type TransitionRequest struct {
	TargetStatus    string   `json:"target_status" example:"In Progress" binding:"required"` // 目标状态
	DurationHours   *float64 `json:"duration_hours" example:"2.5"`                           // 完工工时,进入终态必填且为正
	CompletionNotes string   `json:"completion_notes" example:"更换主轴轴承"`                      // 完工备注
}

// AssignTechnicianRequest 指派技术员请求
// @Description 指派技术员的请求参数,技术员必须是工单团队成员
type AssignTechnicianRequest struct {
	TechnicianID string `json:"technician_id" example:"user-007" binding:"required"` // 技术员用户 ID
}

// ListRequestsQuery 工单列表查询参数
type ListRequestsQuery struct {
	Status       string
	RequestType  string
	EquipmentID  string
	TeamID       string
	TechnicianID string
	IsOverdue    *bool
	Search       string
	Page         int
	PageSize     int
}

// RequestDetail 工单详情,附带状态历史
type RequestDetail struct {
	Request *model.MaintenanceRequestModel `json:"request"`
	History []*model.StatusHistoryModel    `json:"history"`
}

// CalendarEvent 日历视图事件(预防性维护)
type CalendarEvent struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Start     time.Time `json:"start"`
	Status    string    `json:"status"`
	Priority  string    `json:"priority"`
	TeamID    string    `json:"team_id"`
	IsOverdue bool      `json:"is_overdue"`
}

// requestService 工单服务实现
type requestService struct {
	requestRepo   repository.RequestRepository
	historyRepo   repository.StatusHistoryRepository
	equipmentRepo repository.EquipmentRepository
	teamSvc       TeamService
	auditLogSvc   AuditLogService
	hub           *websocket.Hub
}

// NewRequestService 创建工单服务
func NewRequestService(
	requestRepo repository.RequestRepository,
	historyRepo repository.StatusHistoryRepository,
	equipmentRepo repository.EquipmentRepository,
	teamSvc TeamService,
	auditLogSvc AuditLogService,
	hub *websocket.Hub,
) RequestService {
	return &requestService{
		requestRepo:   requestRepo,
		historyRepo:   historyRepo,
		equipmentRepo: equipmentRepo,
		teamSvc:       teamSvc,
		auditLogSvc:   auditLogSvc,
		hub:           hub,
	}
}

// Create 创建工单
// 类别和维修团队从设备自动带出,初始状态固定为 New
func (s *requestService) Create(ctx context.Context, req *CreateRequestRequest) (*model.MaintenanceRequestModel, error) {
	actor, ok := auth.ActorFromContext(ctx)
	if !ok {
		return nil, workflow.ErrForbidden()
	}

	// 1. 校验设备并带出类别/团队
	eq, err := s.equipmentRepo.FindByID(req.EquipmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, workflow.ErrNotFound(req.EquipmentID)
		}
		return nil, err
	}

	// 2. 组装工单
	priority := req.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	request := &model.MaintenanceRequestModel{
		ID:                uuid.New().String(),
		Subject:           req.Subject,
		Description:       req.Description,
		RequestType:       req.RequestType,
		Priority:          priority,
		Status:            string(workflow.StatusNew),
		EquipmentID:       eq.ID,
		EquipmentCategory: eq.Category,
		MaintenanceTeamID: eq.DefaultMaintenanceTeamID,
		CreatedByUserID:   actor.ID,
		ScheduledDate:     req.ScheduledDate,
	}
	if err := request.Validate(); err != nil {
		return nil, err
	}

	// 3. 落库
	if err := s.requestRepo.Create(request); err != nil {
		return nil, err
	}

	// 4. 提交后副作用:指标、审计、看板广播
	metrics.RecordRequestCreated()
	_ = s.auditLogSvc.RecordAction(ctx, actor.ID, model.AuditActionCreate, "request", request.ID, map[string]string{
		"subject":      request.Subject,
		"request_type": request.RequestType,
	})
	s.hub.PublishEvent(websocket.BoardEvent{
		Type:       "created",
		RequestID:  request.ID,
		TeamID:     request.MaintenanceTeamID,
		NewStatus:  request.Status,
		OccurredAt: time.Now(),
	})
	return request, nil
}

// Get 查询工单详情及状态历史
func (s *requestService) Get(ctx context.Context, id string) (*RequestDetail, error) {
	request, err := s.load(id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, request.MaintenanceTeamID); err != nil {
		return nil, err
	}

	history, err := s.historyRepo.FindByRequestID(id)
	if err != nil {
		return nil, err
	}
	return &RequestDetail{Request: request, History: history}, nil
}

// List 分页查询工单
// 非 Manager 只能看到自己所属团队的工单
func (s *requestService) List(ctx context.Context, query *ListRequestsQuery) ([]*model.MaintenanceRequestModel, int64, error) {
	actor, ok := auth.ActorFromContext(ctx)
	if !ok {
		return nil, 0, workflow.ErrForbidden()
	}

	filter := &repository.RequestFilter{}
	if query.Status != "" {
		filter.Status = &query.Status
	}
	if query.RequestType != "" {
		filter.RequestType = &query.RequestType
	}
	if query.EquipmentID != "" {
		filter.EquipmentID = &query.EquipmentID
	}
	if query.TeamID != "" {
		filter.MaintenanceTeamID = &query.TeamID
	}
	if query.TechnicianID != "" {
		filter.AssignedTechnicianID = &query.TechnicianID
	}
	if query.IsOverdue != nil {
		filter.IsOverdue = query.IsOverdue
	}
	if query.Search != "" {
		filter.Search = &query.Search
	}
	if !actor.IsManager() {
		filter.MemberUserID = &actor.ID
	}

	return s.requestRepo.FindByFilter(filter, query.Page, query.PageSize)
}

// Update 更新工单基础字段
// 终态工单不可变更,状态和完工字段只能通过 Transition 修改
func (s *requestService) Update(ctx context.Context, id string, req *UpdateRequestRequest) (*model.MaintenanceRequestModel, error) {
	actor, ok := auth.ActorFromContext(ctx)
	if !ok {
		return nil, workflow.ErrForbidden()
	}

	request, err := s.load(id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, request.MaintenanceTeamID); err != nil {
		return nil, err
	}
	if request.IsTerminal() {
		return nil, workflow.ErrTerminalImmutable(request.CurrentStatus())
	}

	fields := map[string]interface{}{}
	if req.Subject != nil {
		fields["subject"] = *req.Subject
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Priority != nil {
		if !model.ValidPriority(*req.Priority) {
			return nil, errors.New("invalid priority")
		}
		fields["priority"] = *req.Priority
	}
	if req.ScheduledDate != nil {
		fields["scheduled_date"] = *req.ScheduledDate
		// 改期即重新计时: 过期标记清零,待下一轮扫描按新计划日期重判
		fields["is_overdue"] = false
	}
	if len(fields) == 0 {
		return request, nil
	}

	if err := s.requestRepo.UpdateFields(id, fields); err != nil {
		return nil, err
	}

	_ = s.auditLogSvc.RecordAction(ctx, actor.ID, model.AuditActionUpdate, "request", id, fields)
	return s.load(id)
}

// Transition 应用一次状态转换
// 流程: 加载 -> 授权 -> 决策 -> 条件落库,乐观锁失败后重读重估一次,
// 第二次仍失败按并发冲突处理。审计与看板广播在提交后发出,失败不回滚。
func (s *requestService) Transition(ctx context.Context, id string, req *TransitionRequest) (*model.MaintenanceRequestModel, error) {
	actor, ok := auth.ActorFromContext(ctx)
	if !ok {
		return nil, workflow.ErrForbidden()
	}

	// 1. 加载工单,软删除视同不存在
	request, err := s.load(id)
	if err != nil {
		return nil, err
	}

	// 2. 授权:Manager 直通,其余必须是工单团队成员
	if err := s.authorize(ctx, request.MaintenanceTeamID); err != nil {
		return nil, err
	}

	target, valid := workflow.ParseStatus(req.TargetStatus)
	if !valid {
		return nil, workflow.ErrInvalidTransition(request.CurrentStatus(), workflow.Status(req.TargetStatus))
	}

	// 3. 最多两轮:第一轮用初始快照,乐观锁失败后重读重估一轮
	for attempt := 0; attempt < 2; attempt++ {
		decision, err := workflow.Decide(workflow.Input{
			From:            request.CurrentStatus(),
			To:              target,
			HasTechnician:   request.HasTechnician(),
			HasStartedAt:    request.StartedAt != nil,
			DurationHours:   req.DurationHours,
			CompletionNotes: req.CompletionNotes,
		})
		if err != nil {
			metrics.RecordTransition(string(target), "rejected")
			return nil, err
		}

		now := time.Now()
		fields := map[string]interface{}{
			"status": string(decision.To),
		}
		if decision.SetStartedAt {
			fields["started_at"] = now
		}
		if decision.SetCompletedAt {
			fields["completed_at"] = now
			fields["duration_hours"] = decision.DurationHours
		}
		if decision.CompletionNotes != "" {
			fields["completion_notes"] = decision.CompletionNotes
		}

		hist := &model.StatusHistoryModel{
			ID:        uuid.New().String(),
			RequestID: request.ID,
			OldStatus: request.Status,
			NewStatus: string(decision.To),
			Notes:     req.CompletionNotes,
			ChangedBy: actor.ID,
			ChangedAt: now,
		}

		applied, err := s.requestRepo.ApplyTransition(request.ID, request.Status, fields, hist)
		if err != nil {
			return nil, err
		}
		if applied {
			metrics.RecordTransition(string(target), "applied")
			s.afterTransition(ctx, actor, request, string(decision.To))
			return s.load(id)
		}

		// 乐观锁失败:状态已被并发转换修改,重读后重估
		request, err = s.load(id)
		if err != nil {
			return nil, err
		}
	}

	metrics.RecordTransition(string(target), "conflict")
	return nil, workflow.ErrConflict(id)
}

// AssignTechnician 指派技术员
// 技术员必须是工单维修团队的成员,终态工单拒绝指派
func (s *requestService) AssignTechnician(ctx context.Context, id string, req *AssignTechnicianRequest) (*model.MaintenanceRequestModel, error) {
	actor, ok := auth.ActorFromContext(ctx)
	if !ok {
		return nil, workflow.ErrForbidden()
	}

	request, err := s.load(id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, request.MaintenanceTeamID); err != nil {
		return nil, err
	}
	if request.IsTerminal() {
		return nil, workflow.ErrTerminalImmutable(request.CurrentStatus())
	}

	// 指派校验走成员表直查,成员变更立即反映到这里
	member, err := s.teamSvc.IsMember(request.MaintenanceTeamID, req.TechnicianID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, workflow.ErrInvalidAssignment()
	}

	if err := s.requestRepo.AssignTechnician(id, req.TechnicianID); err != nil {
		return nil, err
	}

	_ = s.auditLogSvc.RecordAction(ctx, actor.ID, model.AuditActionAssign, "request", id, map[string]string{
		"technician_id": req.TechnicianID,
	})
	s.hub.PublishEvent(websocket.BoardEvent{
		Type:       "assigned",
		RequestID:  id,
		TeamID:     request.MaintenanceTeamID,
		OccurredAt: time.Now(),
	})
	return s.load(id)
}

// Delete 软删除工单,仅 Manager 可调用
// 终态工单也允许删除,这是终态唯一允许的变更
func (s *requestService) Delete(ctx context.Context, id string) error {
	actor, ok := auth.ActorFromContext(ctx)
	if !ok || !actor.IsManager() {
		return workflow.ErrForbidden()
	}

	request, err := s.load(id)
	if err != nil {
		return err
	}

	deleted, err := s.requestRepo.SoftDelete(id)
	if err != nil {
		return err
	}
	if !deleted {
		return workflow.ErrNotFound(id)
	}

	_ = s.auditLogSvc.RecordAction(ctx, actor.ID, model.AuditActionDelete, "request", id, nil)
	s.hub.PublishEvent(websocket.BoardEvent{
		Type:       "deleted",
		RequestID:  id,
		TeamID:     request.MaintenanceTeamID,
		OldStatus:  request.Status,
		OccurredAt: time.Now(),
	})
	return nil
}

// Kanban 看板视图
// 按状态列分组,列内按优先级/计划日期/创建时间排序(排序在仓储层完成)
func (s *requestService) Kanban(ctx context.Context, teamID string) (map[string][]*model.MaintenanceRequestModel, error) {
	actor, ok := auth.ActorFromContext(ctx)
	if !ok {
		return nil, workflow.ErrForbidden()
	}

	memberUserID := ""
	if !actor.IsManager() {
		memberUserID = actor.ID
	}
	requests, err := s.requestRepo.FindKanban(teamID, memberUserID)
	if err != nil {
		return nil, err
	}

	// 固定四列,空列也返回
	board := make(map[string][]*model.MaintenanceRequestModel, len(workflow.AllStatuses()))
	for _, st := range workflow.AllStatuses() {
		board[string(st)] = []*model.MaintenanceRequestModel{}
	}
	for _, req := range requests {
		board[req.Status] = append(board[req.Status], req)
	}
	return board, nil
}

// Calendar 日历视图
// 只包含有计划日期的预防性维护工单
func (s *requestService) Calendar(ctx context.Context, start, end *time.Time, teamID string) ([]*CalendarEvent, error) {
	actor, ok := auth.ActorFromContext(ctx)
	if !ok {
		return nil, workflow.ErrForbidden()
	}

	memberUserID := ""
	if !actor.IsManager() {
		memberUserID = actor.ID
	}
	requests, err := s.requestRepo.FindCalendar(start, end, teamID, memberUserID)
	if err != nil {
		return nil, err
	}

	events := make([]*CalendarEvent, 0, len(requests))
	for _, req := range requests {
		events = append(events, &CalendarEvent{
			ID:        req.ID,
			Title:     req.Subject,
			Start:     *req.ScheduledDate,
			Status:    req.Status,
			Priority:  req.Priority,
			TeamID:    req.MaintenanceTeamID,
			IsOverdue: req.IsOverdue,
		})
	}
	return events, nil
}

// History 查询工单状态历史,新变更在前
func (s *requestService) History(ctx context.Context, id string) ([]*model.StatusHistoryModel, error) {
	request, err := s.load(id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, request.MaintenanceTeamID); err != nil {
		return nil, err
	}
	return s.historyRepo.FindByRequestID(id)
}

// load 加载工单,gorm 的未找到错误统一翻译成领域错误
func (s *requestService) load(id string) (*model.MaintenanceRequestModel, error) {
	request, err := s.requestRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, workflow.ErrNotFound(id)
		}
		return nil, err
	}
	return request, nil
}

// authorize 工单操作授权
// Manager 直通,其余角色必须是工单所属维修团队的成员
func (s *requestService) authorize(ctx context.Context, teamID string) error {
	actor, ok := auth.ActorFromContext(ctx)
	if !ok {
		return workflow.ErrForbidden()
	}
	if actor.IsManager() {
		return nil
	}
	member, err := s.teamSvc.IsMember(teamID, actor.ID)
	if err != nil {
		return err
	}
	if !member {
		return workflow.ErrForbidden()
	}
	return nil
}

// afterTransition 状态转换提交后的副作用
// 审计与广播失败不影响已提交的转换
func (s *requestService) afterTransition(ctx context.Context, actor auth.Actor, before *model.MaintenanceRequestModel, newStatus string) {
	_ = s.auditLogSvc.RecordAction(ctx, actor.ID, model.AuditActionStatusChange, "request", before.ID, map[string]string{
		"old_status": before.Status,
		"new_status": newStatus,
	})
	s.hub.PublishEvent(websocket.BoardEvent{
		Type:       "status_changed",
		RequestID:  before.ID,
		TeamID:     before.MaintenanceTeamID,
		OldStatus:  before.Status,
		NewStatus:  newStatus,
		OccurredAt: time.Now(),
	})
}
