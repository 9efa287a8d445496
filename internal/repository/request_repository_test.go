package repository_test

import (
	"testing"
	"time"

	"github.com/piyushvishwakarma01/GearGuard/internal/model"
	"github.com/piyushvishwakarma01/GearGuard/internal/repository"
	"github.com/piyushvishwakarma01/GearGuard/internal/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB 创建测试数据库
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// 迁移数据库
	err = db.AutoMigrate(
		&model.MaintenanceRequestModel{},
		&model.StatusHistoryModel{},
		&model.MaintenanceTeamModel{},
		&model.TeamMemberModel{},
		&model.EquipmentModel{},
		&model.UserModel{},
	)
	require.NoError(t, err)

	return db
}

// newTestRequest 构造一个 New 状态的测试工单
func newTestRequest(id string) *model.MaintenanceRequestModel {
	return &model.MaintenanceRequestModel{
		ID:                id,
		Subject:           "主轴异响",
		Description:       "高速运转时有异响",
		RequestType:       model.RequestTypeCorrective,
		Priority:          model.PriorityMedium,
		Status:            string(workflow.StatusNew),
		EquipmentID:       "eq-001",
		EquipmentCategory: "CNC",
		MaintenanceTeamID: "team-001",
		CreatedByUserID:   "user-001",
	}
}

// TestRequestRepository_CreateAndFind 测试创建与查找
func TestRequestRepository_CreateAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewRequestRepository(db)

	require.NoError(t, repo.Create(newTestRequest("req-001")))

	found, err := repo.FindByID("req-001")
	require.NoError(t, err)
	assert.Equal(t, "req-001", found.ID)
	assert.Equal(t, string(workflow.StatusNew), found.Status)

	_, err = repo.FindByID("req-missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

// TestRequestRepository_ApplyTransition 测试条件转换落库
func TestRequestRepository_ApplyTransition(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewRequestRepository(db)
	require.NoError(t, repo.Create(newTestRequest("req-001")))

	now := time.Now()
	hist := &model.StatusHistoryModel{
		ID:        "hist-001",
		RequestID: "req-001",
		OldStatus: string(workflow.StatusNew),
		NewStatus: string(workflow.StatusInProgress),
		ChangedBy: "user-001",
		ChangedAt: now,
	}
	applied, err := repo.ApplyTransition("req-001", string(workflow.StatusNew), map[string]interface{}{
		"status":     string(workflow.StatusInProgress),
		"started_at": now,
	}, hist)
	require.NoError(t, err)
	assert.True(t, applied)

	// 状态与历史都已落库
	found, err := repo.FindByID("req-001")
	require.NoError(t, err)
	assert.Equal(t, string(workflow.StatusInProgress), found.Status)
	assert.NotNil(t, found.StartedAt)

	var histCount int64
	db.Model(&model.StatusHistoryModel{}).Where("request_id = ?", "req-001").Count(&histCount)
	assert.Equal(t, int64(1), histCount)
}

// TestRequestRepository_ApplyTransition_StaleStatus 测试乐观锁:观察状态已过期时不落库不写历史
func TestRequestRepository_ApplyTransition_StaleStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewRequestRepository(db)
	req := newTestRequest("req-001")
	req.Status = string(workflow.StatusInProgress)
	require.NoError(t, repo.Create(req))

	// 期望状态 New 与库中 In Progress 不符
	hist := &model.StatusHistoryModel{
		ID:        "hist-stale",
		RequestID: "req-001",
		OldStatus: string(workflow.StatusNew),
		NewStatus: string(workflow.StatusInProgress),
		ChangedBy: "user-001",
		ChangedAt: time.Now(),
	}
	applied, err := repo.ApplyTransition("req-001", string(workflow.StatusNew), map[string]interface{}{
		"status": string(workflow.StatusInProgress),
	}, hist)
	require.NoError(t, err)
	assert.False(t, applied)

	// 历史没有被写入
	var histCount int64
	db.Model(&model.StatusHistoryModel{}).Count(&histCount)
	assert.Equal(t, int64(0), histCount)
}

// TestRequestRepository_SoftDelete 测试软删除后查询不再返回
func TestRequestRepository_SoftDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewRequestRepository(db)
	require.NoError(t, repo.Create(newTestRequest("req-001")))

	deleted, err := repo.SoftDelete("req-001")
	require.NoError(t, err)
	assert.True(t, deleted)

	// FindByID 视同不存在
	_, err = repo.FindByID("req-001")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// 过滤查询也不返回
	requests, total, err := repo.FindByFilter(nil, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
	assert.Empty(t, requests)

	// 行仍在表中(deleted_at 非空)
	var raw int64
	db.Unscoped().Model(&model.MaintenanceRequestModel{}).Count(&raw)
	assert.Equal(t, int64(1), raw)

	// 重复删除返回 false
	deleted, err = repo.SoftDelete("req-001")
	require.NoError(t, err)
	assert.False(t, deleted)
}

// TestRequestRepository_FindByFilter 测试过滤与成员可见性
func TestRequestRepository_FindByFilter(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewRequestRepository(db)

	reqA := newTestRequest("req-a")
	reqA.MaintenanceTeamID = "team-a"
	reqB := newTestRequest("req-b")
	reqB.MaintenanceTeamID = "team-b"
	reqB.Status = string(workflow.StatusInProgress)
	require.NoError(t, repo.Create(reqA))
	require.NoError(t, repo.Create(reqB))

	// user-a 只是 team-a 的成员
	require.NoError(t, db.Create(&model.TeamMemberModel{
		ID: "m-1", TeamID: "team-a", UserID: "user-a", JoinedAt: time.Now(),
	}).Error)

	// 按状态过滤
	status := string(workflow.StatusInProgress)
	requests, total, err := repo.FindByFilter(&repository.RequestFilter{Status: &status}, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "req-b", requests[0].ID)

	// 成员可见性: user-a 只能看到 team-a 的工单
	member := "user-a"
	requests, total, err = repo.FindByFilter(&repository.RequestFilter{MemberUserID: &member}, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "req-a", requests[0].ID)

	// 非成员什么都看不到
	outsider := "user-x"
	_, total, err = repo.FindByFilter(&repository.RequestFilter{MemberUserID: &outsider}, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}

// TestRequestRepository_FindKanban_PriorityOrder 测试看板按优先级排序
func TestRequestRepository_FindKanban_PriorityOrder(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewRequestRepository(db)

	low := newTestRequest("req-low")
	low.Priority = model.PriorityLow
	critical := newTestRequest("req-critical")
	critical.Priority = model.PriorityCritical
	high := newTestRequest("req-high")
	high.Priority = model.PriorityHigh
	for _, req := range []*model.MaintenanceRequestModel{low, critical, high} {
		require.NoError(t, repo.Create(req))
	}

	requests, err := repo.FindKanban("", "")
	require.NoError(t, err)
	require.Len(t, requests, 3)
	assert.Equal(t, "req-critical", requests[0].ID)
	assert.Equal(t, "req-high", requests[1].ID)
	assert.Equal(t, "req-low", requests[2].ID)
}

// TestRequestRepository_FindCalendar 测试日历只含有计划日期的预防性工单
func TestRequestRepository_FindCalendar(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewRequestRepository(db)

	scheduled := time.Now().AddDate(0, 0, 3)
	preventive := newTestRequest("req-preventive")
	preventive.RequestType = model.RequestTypePreventive
	preventive.ScheduledDate = &scheduled

	noDate := newTestRequest("req-nodate")
	noDate.RequestType = model.RequestTypePreventive

	corrective := newTestRequest("req-corrective")
	corrective.ScheduledDate = &scheduled

	for _, req := range []*model.MaintenanceRequestModel{preventive, noDate, corrective} {
		require.NoError(t, repo.Create(req))
	}

	requests, err := repo.FindCalendar(nil, nil, "", "")
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, "req-preventive", requests[0].ID)

	// 时间窗口外不返回
	windowStart := scheduled.AddDate(0, 0, 1)
	requests, err = repo.FindCalendar(&windowStart, nil, "", "")
	require.NoError(t, err)
	assert.Empty(t, requests)
}

// TestRequestRepository_MarkOverdue 测试过期标记
func TestRequestRepository_MarkOverdue(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewRequestRepository(db)

	past := time.Now().AddDate(0, 0, -1)
	future := time.Now().AddDate(0, 0, 7)

	overdue := newTestRequest("req-overdue")
	overdue.ScheduledDate = &past

	upcoming := newTestRequest("req-upcoming")
	upcoming.ScheduledDate = &future

	finished := newTestRequest("req-finished")
	finished.ScheduledDate = &past
	finished.Status = string(workflow.StatusRepaired)

	for _, req := range []*model.MaintenanceRequestModel{overdue, upcoming, finished} {
		require.NoError(t, repo.Create(req))
	}

	marked, err := repo.MarkOverdue(time.Now())
	require.NoError(t, err)
	require.Len(t, marked, 1)
	assert.Equal(t, "req-overdue", marked[0].ID)

	found, err := repo.FindByID("req-overdue")
	require.NoError(t, err)
	assert.True(t, found.IsOverdue)

	// 已标记的不再重复标记
	marked, err = repo.MarkOverdue(time.Now())
	require.NoError(t, err)
	assert.Empty(t, marked)
}

// TestRequestRepository_CountByStatus 测试状态计数
func TestRequestRepository_CountByStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewRequestRepository(db)

	first := newTestRequest("req-1")
	second := newTestRequest("req-2")
	third := newTestRequest("req-3")
	third.Status = string(workflow.StatusInProgress)
	for _, req := range []*model.MaintenanceRequestModel{first, second, third} {
		require.NoError(t, repo.Create(req))
	}

	counts, err := repo.CountByStatus()
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[string(workflow.StatusNew)])
	assert.Equal(t, int64(1), counts[string(workflow.StatusInProgress)])
}
