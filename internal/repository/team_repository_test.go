package repository_test

import (
	"testing"
	"time"

	"github.com/piyushvishwakarma01/GearGuard/internal/model"
	"github.com/piyushvishwakarma01/GearGuard/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTeamRepository_Membership 测试成员关系的增删与判定
func TestTeamRepository_Membership(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewTeamRepository(db)

	require.NoError(t, repo.Save(&model.MaintenanceTeamModel{ID: "team-001", Name: "机电维修组"}))

	// 初始不是成员
	member, err := repo.IsMember("team-001", "user-001")
	require.NoError(t, err)
	assert.False(t, member)

	// 添加后立即可见
	require.NoError(t, repo.AddMember(&model.TeamMemberModel{
		ID:       "m-001",
		TeamID:   "team-001",
		UserID:   "user-001",
		JoinedAt: time.Now(),
	}))
	member, err = repo.IsMember("team-001", "user-001")
	require.NoError(t, err)
	assert.True(t, member)

	// 移除后立即不可见
	removed, err := repo.RemoveMember("team-001", "user-001")
	require.NoError(t, err)
	assert.True(t, removed)

	member, err = repo.IsMember("team-001", "user-001")
	require.NoError(t, err)
	assert.False(t, member)

	// 重复移除返回 false
	removed, err = repo.RemoveMember("team-001", "user-001")
	require.NoError(t, err)
	assert.False(t, removed)
}

// TestTeamRepository_FindMembers 测试成员列表关联用户信息
func TestTeamRepository_FindMembers(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewTeamRepository(db)

	require.NoError(t, repo.Save(&model.MaintenanceTeamModel{ID: "team-001", Name: "机电维修组"}))
	require.NoError(t, db.Create(&model.UserModel{
		ID:       "user-001",
		FullName: "张三",
		Email:    "zhangsan@example.com",
		Role:     model.RoleTechnician,
	}).Error)
	require.NoError(t, repo.AddMember(&model.TeamMemberModel{
		ID:       "m-001",
		TeamID:   "team-001",
		UserID:   "user-001",
		IsLead:   true,
		JoinedAt: time.Now(),
	}))

	members, err := repo.FindMembers("team-001")
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "user-001", members[0].UserID)
	assert.Equal(t, "张三", members[0].FullName)
	assert.Equal(t, model.RoleTechnician, members[0].Role)
	assert.True(t, members[0].IsLead)
}
