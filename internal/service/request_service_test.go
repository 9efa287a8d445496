package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/piyushvishwakarma01/GearGuard/internal/auth"
	"github.com/piyushvishwakarma01/GearGuard/internal/model"
	"github.com/piyushvishwakarma01/GearGuard/internal/repository"
	"github.com/piyushvishwakarma01/GearGuard/internal/service"
	"github.com/piyushvishwakarma01/GearGuard/internal/websocket"
	"github.com/piyushvishwakarma01/GearGuard/internal/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// testEnv 工单服务测试环境
type testEnv struct {
	db          *gorm.DB
	requestRepo repository.RequestRepository
	teamRepo    repository.TeamRepository
	teamSvc     service.TeamService
	requestSvc  service.RequestService
	auditSvc    service.AuditLogService
}

// setupEnv 组装带内存数据库的服务栈
func setupEnv(t *testing.T) *testEnv {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.MaintenanceRequestModel{},
		&model.StatusHistoryModel{},
		&model.MaintenanceTeamModel{},
		&model.TeamMemberModel{},
		&model.EquipmentModel{},
		&model.UserModel{},
		&model.AuditLogModel{},
	))

	requestRepo := repository.NewRequestRepository(db)
	historyRepo := repository.NewStatusHistoryRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	equipmentRepo := repository.NewEquipmentRepository(db)
	userRepo := repository.NewUserRepository(db)
	auditSvc := service.NewAuditLogService(repository.NewAuditLogRepository(db))
	teamSvc := service.NewTeamService(teamRepo, userRepo, auditSvc)
	requestSvc := service.NewRequestService(requestRepo, historyRepo, equipmentRepo, teamSvc, auditSvc, websocket.NewHub())

	env := &testEnv{
		db:          db,
		requestRepo: requestRepo,
		teamRepo:    teamRepo,
		teamSvc:     teamSvc,
		requestSvc:  requestSvc,
		auditSvc:    auditSvc,
	}
	env.seed(t)
	return env
}

// seed 写入基础数据: 一个团队、两个技术员成员、一台设备
func (env *testEnv) seed(t *testing.T) {
	require.NoError(t, env.db.Create(&model.UserModel{
		ID: "manager-1", FullName: "王经理", Email: "manager@example.com", Role: model.RoleManager,
	}).Error)
	require.NoError(t, env.db.Create(&model.UserModel{
		ID: "tech-1", FullName: "李技师", Email: "tech1@example.com", Role: model.RoleTechnician,
	}).Error)
	require.NoError(t, env.db.Create(&model.UserModel{
		ID: "tech-2", FullName: "赵技师", Email: "tech2@example.com", Role: model.RoleTechnician,
	}).Error)
	require.NoError(t, env.db.Create(&model.UserModel{
		ID: "outsider-1", FullName: "路人", Email: "outsider@example.com", Role: model.RoleUser,
	}).Error)

	require.NoError(t, env.db.Create(&model.MaintenanceTeamModel{
		ID: "team-1", Name: "机电维修组",
	}).Error)
	for i, userID := range []string{"tech-1", "tech-2"} {
		require.NoError(t, env.db.Create(&model.TeamMemberModel{
			ID: "member-" + string(rune('a'+i)), TeamID: "team-1", UserID: userID, JoinedAt: time.Now(),
		}).Error)
	}

	require.NoError(t, env.db.Create(&model.EquipmentModel{
		ID:                       "eq-1",
		EquipmentName:            "CNC 加工中心",
		SerialNumber:             "SN-001",
		Category:                 "CNC",
		DefaultMaintenanceTeamID: "team-1",
	}).Error)
}

// asActor 构造带操作者的 context
func asActor(id, role string) context.Context {
	return auth.WithActor(context.Background(), auth.Actor{ID: id, Email: id + "@example.com", Role: role})
}

func hours(v float64) *float64 {
	return &v
}

// TestRequestService_Create_AutoFillsFromEquipment 测试创建时从设备带出类别与团队
func TestRequestService_Create_AutoFillsFromEquipment(t *testing.T) {
	env := setupEnv(t)

	created, err := env.requestSvc.Create(asActor("tech-1", model.RoleTechnician), &service.CreateRequestRequest{
		Subject:     "主轴异响",
		RequestType: model.RequestTypeCorrective,
		EquipmentID: "eq-1",
	})
	require.NoError(t, err)

	assert.Equal(t, string(workflow.StatusNew), created.Status)
	assert.Equal(t, "CNC", created.EquipmentCategory)
	assert.Equal(t, "team-1", created.MaintenanceTeamID)
	assert.Equal(t, model.PriorityMedium, created.Priority) // 缺省优先级
	assert.Equal(t, "tech-1", created.CreatedByUserID)
	assert.False(t, created.IsOverdue)
}

// TestRequestService_Create_UnknownEquipment 测试设备不存在时创建失败
func TestRequestService_Create_UnknownEquipment(t *testing.T) {
	env := setupEnv(t)

	_, err := env.requestSvc.Create(asActor("tech-1", model.RoleTechnician), &service.CreateRequestRequest{
		Subject:     "主轴异响",
		RequestType: model.RequestTypeCorrective,
		EquipmentID: "eq-missing",
	})
	require.Error(t, err)
	assert.Equal(t, workflow.KindNotFound, workflow.KindOf(err))
}

// createRequest 创建一个工单并返回 ID
func createRequest(t *testing.T, env *testEnv) string {
	created, err := env.requestSvc.Create(asActor("tech-1", model.RoleTechnician), &service.CreateRequestRequest{
		Subject:     "主轴异响",
		RequestType: model.RequestTypeCorrective,
		Priority:    model.PriorityHigh,
		EquipmentID: "eq-1",
	})
	require.NoError(t, err)
	return created.ID
}

// TestRequestService_Transition_FullLifecycle 测试完整生命周期
// 创建 -> 指派 -> 开工 -> 完工,每步校验派生字段与历史
func TestRequestService_Transition_FullLifecycle(t *testing.T) {
	env := setupEnv(t)
	ctx := asActor("tech-1", model.RoleTechnician)
	id := createRequest(t, env)

	// 未指派技术员时不能开工
	_, err := env.requestSvc.Transition(ctx, id, &service.TransitionRequest{
		TargetStatus: string(workflow.StatusInProgress),
	})
	require.Error(t, err)
	assert.Equal(t, workflow.KindMissingTechnician, workflow.KindOf(err))

	// 指派团队成员
	assigned, err := env.requestSvc.AssignTechnician(ctx, id, &service.AssignTechnicianRequest{
		TechnicianID: "tech-2",
	})
	require.NoError(t, err)
	require.NotNil(t, assigned.AssignedTechnicianID)
	assert.Equal(t, "tech-2", *assigned.AssignedTechnicianID)

	// 开工
	started, err := env.requestSvc.Transition(ctx, id, &service.TransitionRequest{
		TargetStatus: string(workflow.StatusInProgress),
	})
	require.NoError(t, err)
	assert.Equal(t, string(workflow.StatusInProgress), started.Status)
	assert.NotNil(t, started.StartedAt)
	assert.Nil(t, started.CompletedAt)

	// 完工必须带正工时
	_, err = env.requestSvc.Transition(ctx, id, &service.TransitionRequest{
		TargetStatus: string(workflow.StatusRepaired),
	})
	require.Error(t, err)
	assert.Equal(t, workflow.KindMissingDuration, workflow.KindOf(err))

	finished, err := env.requestSvc.Transition(ctx, id, &service.TransitionRequest{
		TargetStatus:    string(workflow.StatusRepaired),
		DurationHours:   hours(2.5),
		CompletionNotes: "更换主轴轴承",
	})
	require.NoError(t, err)
	assert.Equal(t, string(workflow.StatusRepaired), finished.Status)
	assert.NotNil(t, finished.CompletedAt)
	require.NotNil(t, finished.DurationHours)
	assert.Equal(t, 2.5, *finished.DurationHours)
	assert.Equal(t, "更换主轴轴承", finished.CompletionNotes)

	// 历史按时间倒序记录两次转换
	history, err := env.requestSvc.History(ctx, id)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, string(workflow.StatusRepaired), history[0].NewStatus)
	assert.Equal(t, string(workflow.StatusInProgress), history[1].NewStatus)

	// 终态之后一切转换被拒
	_, err = env.requestSvc.Transition(ctx, id, &service.TransitionRequest{
		TargetStatus: string(workflow.StatusInProgress),
	})
	require.Error(t, err)
	assert.Equal(t, workflow.KindInvalidTransition, workflow.KindOf(err))
}

// TestRequestService_Transition_SkipLevelRejected 测试 New 直接完工被拒并附带合法目标
func TestRequestService_Transition_SkipLevelRejected(t *testing.T) {
	env := setupEnv(t)
	ctx := asActor("tech-1", model.RoleTechnician)
	id := createRequest(t, env)

	_, err := env.requestSvc.Transition(ctx, id, &service.TransitionRequest{
		TargetStatus:  string(workflow.StatusRepaired),
		DurationHours: hours(1),
	})
	require.Error(t, err)

	wfErr, ok := err.(*workflow.Error)
	require.True(t, ok)
	assert.Equal(t, workflow.KindInvalidTransition, wfErr.Kind)
	assert.Equal(t, []workflow.Status{workflow.StatusInProgress}, wfErr.Allowed)
}

// TestRequestService_Transition_NonMemberForbidden 测试非成员操作被拒
func TestRequestService_Transition_NonMemberForbidden(t *testing.T) {
	env := setupEnv(t)
	id := createRequest(t, env)

	_, err := env.requestSvc.Transition(asActor("outsider-1", model.RoleUser), id, &service.TransitionRequest{
		TargetStatus: string(workflow.StatusInProgress),
	})
	require.Error(t, err)
	assert.Equal(t, workflow.KindForbidden, workflow.KindOf(err))

	// Manager 不受成员关系限制(业务前置条件照常检查)
	_, err = env.requestSvc.Transition(asActor("manager-1", model.RoleManager), id, &service.TransitionRequest{
		TargetStatus: string(workflow.StatusInProgress),
	})
	require.Error(t, err)
	assert.Equal(t, workflow.KindMissingTechnician, workflow.KindOf(err))
}

// TestRequestService_MembershipChangeTakesEffectImmediately 测试成员移除立即生效
func TestRequestService_MembershipChangeTakesEffectImmediately(t *testing.T) {
	env := setupEnv(t)
	managerCtx := asActor("manager-1", model.RoleManager)
	id := createRequest(t, env)

	// tech-1 此刻是成员,可以读取
	_, err := env.requestSvc.Get(asActor("tech-1", model.RoleTechnician), id)
	require.NoError(t, err)

	// 移除后下一次操作立即被拒
	require.NoError(t, env.teamSvc.RemoveMember(managerCtx, "team-1", "tech-1"))
	_, err = env.requestSvc.Get(asActor("tech-1", model.RoleTechnician), id)
	require.Error(t, err)
	assert.Equal(t, workflow.KindForbidden, workflow.KindOf(err))
}

// TestRequestService_AssignTechnician_RequiresMembership 测试指派非成员被拒
func TestRequestService_AssignTechnician_RequiresMembership(t *testing.T) {
	env := setupEnv(t)
	ctx := asActor("manager-1", model.RoleManager)
	id := createRequest(t, env)

	_, err := env.requestSvc.AssignTechnician(ctx, id, &service.AssignTechnicianRequest{
		TechnicianID: "outsider-1",
	})
	require.Error(t, err)
	assert.Equal(t, workflow.KindInvalidAssignment, workflow.KindOf(err))
}

// TestRequestService_Delete_ManagerOnly 测试软删除权限与效果
func TestRequestService_Delete_ManagerOnly(t *testing.T) {
	env := setupEnv(t)
	id := createRequest(t, env)

	// 非 Manager 不能删除
	err := env.requestSvc.Delete(asActor("tech-1", model.RoleTechnician), id)
	require.Error(t, err)
	assert.Equal(t, workflow.KindForbidden, workflow.KindOf(err))

	// Manager 删除后工单视同不存在
	require.NoError(t, env.requestSvc.Delete(asActor("manager-1", model.RoleManager), id))
	_, err = env.requestSvc.Get(asActor("manager-1", model.RoleManager), id)
	require.Error(t, err)
	assert.Equal(t, workflow.KindNotFound, workflow.KindOf(err))
}

// TestRequestService_Update_TerminalImmutable 测试终态工单拒绝更新与指派
func TestRequestService_Update_TerminalImmutable(t *testing.T) {
	env := setupEnv(t)
	ctx := asActor("tech-1", model.RoleTechnician)
	id := createRequest(t, env)

	_, err := env.requestSvc.AssignTechnician(ctx, id, &service.AssignTechnicianRequest{TechnicianID: "tech-2"})
	require.NoError(t, err)
	_, err = env.requestSvc.Transition(ctx, id, &service.TransitionRequest{TargetStatus: string(workflow.StatusInProgress)})
	require.NoError(t, err)
	_, err = env.requestSvc.Transition(ctx, id, &service.TransitionRequest{
		TargetStatus:  string(workflow.StatusScrap),
		DurationHours: hours(1),
	})
	require.NoError(t, err)

	subject := "改主题"
	_, err = env.requestSvc.Update(ctx, id, &service.UpdateRequestRequest{Subject: &subject})
	require.Error(t, err)
	assert.Equal(t, workflow.KindInvalidTransition, workflow.KindOf(err))

	_, err = env.requestSvc.AssignTechnician(ctx, id, &service.AssignTechnicianRequest{TechnicianID: "tech-1"})
	require.Error(t, err)
	assert.Equal(t, workflow.KindInvalidTransition, workflow.KindOf(err))
}

// TestRequestService_Update_RescheduleClearsOverdue 测试改期清除过期标记
func TestRequestService_Update_RescheduleClearsOverdue(t *testing.T) {
	env := setupEnv(t)
	ctx := asActor("tech-1", model.RoleTechnician)

	past := time.Now().AddDate(0, 0, -2)
	created, err := env.requestSvc.Create(ctx, &service.CreateRequestRequest{
		Subject:       "季度保养",
		RequestType:   model.RequestTypePreventive,
		EquipmentID:   "eq-1",
		ScheduledDate: &past,
	})
	require.NoError(t, err)

	// 扫描过后工单被标记为过期
	marked, err := env.requestRepo.MarkOverdue(time.Now())
	require.NoError(t, err)
	require.Len(t, marked, 1)

	overdue, err := env.requestRepo.FindByID(created.ID)
	require.NoError(t, err)
	require.True(t, overdue.IsOverdue)

	// 改期即重新计时,标记清零
	future := time.Now().AddDate(0, 0, 5)
	updated, err := env.requestSvc.Update(ctx, created.ID, &service.UpdateRequestRequest{
		ScheduledDate: &future,
	})
	require.NoError(t, err)
	assert.False(t, updated.IsOverdue)
	require.NotNil(t, updated.ScheduledDate)
	assert.WithinDuration(t, future, *updated.ScheduledDate, time.Second)
}

// TestRequestService_Kanban_GroupsAndScopes 测试看板分组与成员可见范围
func TestRequestService_Kanban_GroupsAndScopes(t *testing.T) {
	env := setupEnv(t)
	ctx := asActor("tech-1", model.RoleTechnician)
	id := createRequest(t, env)

	board, err := env.requestSvc.Kanban(ctx, "")
	require.NoError(t, err)

	// 四列齐全,空列也存在
	for _, st := range workflow.AllStatuses() {
		_, ok := board[string(st)]
		assert.Truef(t, ok, "missing column %s", st)
	}
	require.Len(t, board[string(workflow.StatusNew)], 1)
	assert.Equal(t, id, board[string(workflow.StatusNew)][0].ID)

	// 非成员看到空看板
	board, err = env.requestSvc.Kanban(asActor("outsider-1", model.RoleUser), "")
	require.NoError(t, err)
	assert.Empty(t, board[string(workflow.StatusNew)])
}

// TestRequestService_List_NonManagerScoped 测试列表对非 Manager 的可见性裁剪
func TestRequestService_List_NonManagerScoped(t *testing.T) {
	env := setupEnv(t)
	createRequest(t, env)

	// 成员可见
	requests, total, err := env.requestSvc.List(asActor("tech-1", model.RoleTechnician), &service.ListRequestsQuery{Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, requests, 1)

	// 非成员不可见
	_, total, err = env.requestSvc.List(asActor("outsider-1", model.RoleUser), &service.ListRequestsQuery{Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)

	// Manager 全量可见
	_, total, err = env.requestSvc.List(asActor("manager-1", model.RoleManager), &service.ListRequestsQuery{Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

// TestRequestService_Calendar 测试日历事件映射
func TestRequestService_Calendar(t *testing.T) {
	env := setupEnv(t)
	ctx := asActor("tech-1", model.RoleTechnician)

	scheduled := time.Now().AddDate(0, 0, 3)
	created, err := env.requestSvc.Create(ctx, &service.CreateRequestRequest{
		Subject:       "季度保养",
		RequestType:   model.RequestTypePreventive,
		EquipmentID:   "eq-1",
		ScheduledDate: &scheduled,
	})
	require.NoError(t, err)

	events, err := env.requestSvc.Calendar(ctx, nil, nil, "")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, created.ID, events[0].ID)
	assert.Equal(t, "季度保养", events[0].Title)
	assert.Equal(t, "team-1", events[0].TeamID)
}

// conflictOnceRepo 包装仓储,在第一次 ApplyTransition 前偷偷推进状态,模拟并发竞争
type conflictOnceRepo struct {
	repository.RequestRepository
	db       *gorm.DB
	id       string
	injected bool
}

func (r *conflictOnceRepo) ApplyTransition(id string, expectedStatus string, fields map[string]interface{}, hist *model.StatusHistoryModel) (bool, error) {
	if !r.injected && id == r.id {
		r.injected = true
		// 另一个操作者抢先把工单推进到 In Progress
		r.db.Model(&model.MaintenanceRequestModel{}).
			Where("id = ?", id).
			Update("status", string(workflow.StatusInProgress))
	}
	return r.RequestRepository.ApplyTransition(id, expectedStatus, fields, hist)
}

// TestRequestService_Transition_ConcurrentLoserGetsCleanError 测试并发竞争输家得到干净的错误
// 两个操作者基于同一快照竞争:赢家落库,输家重估后因目标不可达收到 InvalidTransition
func TestRequestService_Transition_ConcurrentLoserGetsCleanError(t *testing.T) {
	env := setupEnv(t)
	ctx := asActor("tech-1", model.RoleTechnician)
	id := createRequest(t, env)

	_, err := env.requestSvc.AssignTechnician(ctx, id, &service.AssignTechnicianRequest{TechnicianID: "tech-2"})
	require.NoError(t, err)

	// 组装带竞争注入的服务
	wrapped := &conflictOnceRepo{RequestRepository: env.requestRepo, db: env.db, id: id}
	historyRepo := repository.NewStatusHistoryRepository(env.db)
	equipmentRepo := repository.NewEquipmentRepository(env.db)
	racySvc := service.NewRequestService(wrapped, historyRepo, equipmentRepo, env.teamSvc, env.auditSvc, websocket.NewHub())

	// 输家也想开工,但赢家已经开工: 重估后 In Progress -> In Progress 不可达
	_, err = racySvc.Transition(ctx, id, &service.TransitionRequest{
		TargetStatus: string(workflow.StatusInProgress),
	})
	require.Error(t, err)
	assert.Equal(t, workflow.KindInvalidTransition, workflow.KindOf(err))

	// 工单停留在赢家的状态,没有重复历史
	found, err := env.requestRepo.FindByID(id)
	require.NoError(t, err)
	assert.Equal(t, string(workflow.StatusInProgress), found.Status)
}
