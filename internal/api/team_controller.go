package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/piyushvishwakarma01/GearGuard/internal/service"
	"github.com/piyushvishwakarma01/GearGuard/internal/utils"
)

// TeamController 维修团队控制器
type TeamController struct {
	teamService service.TeamService
}

// NewTeamController 创建维修团队控制器
func NewTeamController(teamService service.TeamService) *TeamController {
	return &TeamController{
		teamService: teamService,
	}
}

// Create 创建团队
// @Summary      创建维修团队
// @Description  创建新的维修团队,仅 Manager 可调用
// @Tags         团队管理
// @Accept       json
// @Produce      json
// @Param        request body service.CreateTeamRequest true "团队信息"
// @Success      201  {object}  Response
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /teams [post]
// @Security     BearerAuth
func (c *TeamController) Create(ctx *gin.Context) {
	var req service.CreateTeamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	team, err := c.teamService.Create(ctx.Request.Context(), &req)
	if err != nil {
		HandleServiceError(ctx, err)
		return
	}

	Created(ctx, team)
}

// Get 获取团队
// @Summary      获取团队详情
// @Description  根据 ID 获取团队详情
// @Tags         团队管理
// @Accept       json
// @Produce      json
// @Param        id path string true "团队 ID"
// @Success      200  {object}  Response
// @Failure      404  {object}  ErrorResponse
// @Router       /teams/{id} [get]
// @Security     BearerAuth
func (c *TeamController) Get(ctx *gin.Context) {
	id := ctx.Param("id")
	if err := utils.ValidateResourceID(id); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid team ID", err.Error())
		return
	}

	team, err := c.teamService.Get(id)
	if err != nil {
		HandleServiceError(ctx, err)
		return
	}

	Success(ctx, team)
}

// List 查询团队列表
// @Summary      查询团队列表
// @Description  返回所有维修团队
// @Tags         团队管理
// @Accept       json
// @Produce      json
// @Success      200  {object}  Response
// @Router       /teams [get]
// @Security     BearerAuth
func (c *TeamController) List(ctx *gin.Context) {
	teams, err := c.teamService.List()
	if err != nil {
		HandleServiceError(ctx, err)
		return
	}

	Success(ctx, teams)
}

// Members 查询团队成员
// @Summary      查询团队成员
// @Description  返回团队成员列表及用户信息
// @Tags         团队管理
// @Accept       json
// @Produce      json
// @Param        id path string true "团队 ID"
// @Success      200  {object}  Response
// @Failure      404  {object}  ErrorResponse
// @Router       /teams/{id}/members [get]
// @Security     BearerAuth
func (c *TeamController) Members(ctx *gin.Context) {
	id := ctx.Param("id")
	if err := utils.ValidateResourceID(id); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid team ID", err.Error())
		return
	}

	members, err := c.teamService.Members(id)
	if err != nil {
		HandleServiceError(ctx, err)
		return
	}

	Success(ctx, members)
}

// AddMember 添加团队成员
// @Summary      添加团队成员
// @Description  向团队添加成员,仅 Manager 可调用,添加立即生效
// @Tags         团队管理
// @Accept       json
// @Produce      json
// @Param        id path string true "团队 ID"
// @Param        request body service.AddMemberRequest true "成员信息"
// @Success      200  {object}  Response
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /teams/{id}/members [post]
// @Security     BearerAuth
func (c *TeamController) AddMember(ctx *gin.Context) {
	id := ctx.Param("id")
	if err := utils.ValidateResourceID(id); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid team ID", err.Error())
		return
	}

	var req service.AddMemberRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	if err := c.teamService.AddMember(ctx.Request.Context(), id, &req); err != nil {
		HandleServiceError(ctx, err)
		return
	}

	Success(ctx, nil)
}

// RemoveMember 移除团队成员
// @Summary      移除团队成员
// @Description  从团队移除成员,仅 Manager 可调用,移除立即生效
// @Tags         团队管理
// @Accept       json
// @Produce      json
// @Param        id path string true "团队 ID"
// @Param        user_id path string true "用户 ID"
// @Success      200  {object}  Response
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /teams/{id}/members/{user_id} [delete]
// @Security     BearerAuth
func (c *TeamController) RemoveMember(ctx *gin.Context) {
	id := ctx.Param("id")
	userID := ctx.Param("user_id")
	if err := utils.ValidateResourceID(id); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid team ID", err.Error())
		return
	}
	if err := utils.ValidateResourceID(userID); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid user ID", err.Error())
		return
	}

	if err := c.teamService.RemoveMember(ctx.Request.Context(), id, userID); err != nil {
		HandleServiceError(ctx, err)
		return
	}

	Success(ctx, nil)
}
