package service_test

import (
	"testing"

	"github.com/piyushvishwakarma01/GearGuard/internal/model"
	"github.com/piyushvishwakarma01/GearGuard/internal/repository"
	"github.com/piyushvishwakarma01/GearGuard/internal/service"
	"github.com/piyushvishwakarma01/GearGuard/internal/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTeamService_Create_ManagerOnly(t *testing.T) {
	env := setupEnv(t)

	_, err := env.teamSvc.Create(asActor("tech-1", model.RoleTechnician), &service.CreateTeamRequest{
		Name: "新团队",
	})
	require.Error(t, err)
	assert.Equal(t, workflow.KindForbidden, workflow.KindOf(err))

	team, err := env.teamSvc.Create(asActor("manager-1", model.RoleManager), &service.CreateTeamRequest{
		Name:        "电气维修组",
		Description: "负责配电与控制柜",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, team.ID)
	assert.Equal(t, "电气维修组", team.Name)
}

func TestTeamService_AddMember(t *testing.T) {
	env := setupEnv(t)
	managerCtx := asActor("manager-1", model.RoleManager)

	// 未知用户不能入队
	err := env.teamSvc.AddMember(managerCtx, "team-1", &service.AddMemberRequest{UserID: "ghost"})
	require.Error(t, err)
	assert.Equal(t, workflow.KindNotFound, workflow.KindOf(err))

	// 未知团队同样拒绝
	err = env.teamSvc.AddMember(managerCtx, "team-ghost", &service.AddMemberRequest{UserID: "outsider-1"})
	require.Error(t, err)
	assert.Equal(t, workflow.KindNotFound, workflow.KindOf(err))

	err = env.teamSvc.AddMember(managerCtx, "team-1", &service.AddMemberRequest{UserID: "outsider-1"})
	require.NoError(t, err)

	isMember, err := env.teamSvc.IsMember("team-1", "outsider-1")
	require.NoError(t, err)
	assert.True(t, isMember)
}

func TestTeamService_Members(t *testing.T) {
	env := setupEnv(t)

	members, err := env.teamSvc.Members("team-1")
	require.NoError(t, err)
	require.Len(t, members, 2)

	ids := []string{members[0].UserID, members[1].UserID}
	assert.Contains(t, ids, "tech-1")
	assert.Contains(t, ids, "tech-2")
}

func TestEquipmentService_Create(t *testing.T) {
	env := setupEnv(t)
	equipmentSvc := service.NewEquipmentService(
		repository.NewEquipmentRepository(env.db), env.teamRepo, env.auditSvc,
	)

	// 非 Manager 不能建档
	_, err := equipmentSvc.Create(asActor("tech-1", model.RoleTechnician), &service.CreateEquipmentRequest{
		EquipmentName:            "激光切割机",
		DefaultMaintenanceTeamID: "team-1",
	})
	require.Error(t, err)
	assert.Equal(t, workflow.KindForbidden, workflow.KindOf(err))

	// 默认维修团队必须存在
	_, err = equipmentSvc.Create(asActor("manager-1", model.RoleManager), &service.CreateEquipmentRequest{
		EquipmentName:            "激光切割机",
		DefaultMaintenanceTeamID: "team-ghost",
	})
	require.Error(t, err)
	assert.Equal(t, workflow.KindNotFound, workflow.KindOf(err))

	eq, err := equipmentSvc.Create(asActor("manager-1", model.RoleManager), &service.CreateEquipmentRequest{
		EquipmentName:            "激光切割机",
		SerialNumber:             "SN-2026-0815",
		Category:                 "Laser",
		DefaultMaintenanceTeamID: "team-1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, eq.ID)
	assert.Equal(t, "team-1", eq.DefaultMaintenanceTeamID)
}
