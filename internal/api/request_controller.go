package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/piyushvishwakarma01/GearGuard/internal/service"
	"github.com/piyushvishwakarma01/GearGuard/internal/utils"
)

// RequestController 维修工单控制器
type RequestController struct {
	requestService service.RequestService
}

// NewRequestController 创建维修工单控制器
func NewRequestController(requestService service.RequestService) *RequestController {
	return &RequestController{
		requestService: requestService,
	}
}

// validateRequestID 验证工单 ID 并返回错误响应（如果无效）
func (c *RequestController) validateRequestID(ctx *gin.Context, id string) bool {
	if err := utils.ValidateResourceID(id); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request ID", err.Error())
		return false
	}
	return true
}

// Create 创建工单
// @Summary      创建维修工单
// @Description  创建新的维修工单,类别和维修团队从设备自动带出,初始状态为 New
// @Tags         工单管理
// @Accept       json
// @Produce      json
// @Param        request body service.CreateRequestRequest true "工单信息"
// @Success      201  {object}  Response
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /requests [post]
// @Security     BearerAuth
func (c *RequestController) Create(ctx *gin.Context) {
	var req service.CreateRequestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}
	if err := utils.ValidateSubject(req.Subject); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid subject", err.Error())
		return
	}

	request, err := c.requestService.Create(ctx.Request.Context(), &req)
	if err != nil {
		HandleServiceError(ctx, err)
		return
	}

	Created(ctx, request)
}

// Get 获取工单详情
// @Summary      获取工单详情
// @Description  根据 ID 获取工单详情及状态历史
// @Tags         工单管理
// @Accept       json
// @Produce      json
// @Param        id path string true "工单 ID"
// @Success      200  {object}  Response
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /requests/{id} [get]
// @Security     BearerAuth
func (c *RequestController) Get(ctx *gin.Context) {
	id := ctx.Param("id")
	if !c.validateRequestID(ctx, id) {
		return
	}

	detail, err := c.requestService.Get(ctx.Request.Context(), id)
	if err != nil {
		HandleServiceError(ctx, err)
		return
	}

	Success(ctx, detail)
}

// List 查询工单列表
// @Summary      查询工单列表
// @Description  分页查询工单,支持按状态/类型/设备/团队/技术员/过期标记过滤,非 Manager 只能看到所属团队的工单
// @Tags         工单管理
// @Accept       json
// @Produce      json
// @Param        status query string false "工单状态"
// @Param        request_type query string false "工单类型"
// @Param        equipment_id query string false "设备 ID"
// @Param        team_id query string false "团队 ID"
// @Param        technician_id query string false "技术员 ID"
// @Param        is_overdue query bool false "是否过期"
// @Param        search query string false "主题/描述模糊匹配"
// @Param        page query int false "页码"
// @Param        page_size query int false "每页数量"
// @Success      200  {object}  PaginatedResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /requests [get]
// @Security     BearerAuth
func (c *RequestController) List(ctx *gin.Context) {
	query := &service.ListRequestsQuery{
		Status:       ctx.Query("status"),
		RequestType:  ctx.Query("request_type"),
		EquipmentID:  ctx.Query("equipment_id"),
		TeamID:       ctx.Query("team_id"),
		TechnicianID: ctx.Query("technician_id"),
		Search:       utils.SanitizeString(ctx.Query("search")),
	}
	if raw := ctx.Query("is_overdue"); raw != "" {
		overdue, err := strconv.ParseBool(raw)
		if err != nil {
			Error(ctx, http.StatusBadRequest, "invalid is_overdue", err.Error())
			return
		}
		query.IsOverdue = &overdue
	}
	query.Page, _ = strconv.Atoi(ctx.DefaultQuery("page", "1"))
	query.PageSize, _ = strconv.Atoi(ctx.DefaultQuery("page_size", "20"))
	// 设置默认值,防止非法分页参数进入分页计算
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.PageSize <= 0 {
		query.PageSize = 20
	}

	requests, total, err := c.requestService.List(ctx.Request.Context(), query)
	if err != nil {
		HandleServiceError(ctx, err)
		return
	}

	totalPage := int(total) / query.PageSize
	if int(total)%query.PageSize > 0 {
		totalPage++
	}
	Paginated(ctx, requests, PaginationInfo{
		Page:      query.Page,
		PageSize:  query.PageSize,
		Total:     total,
		TotalPage: totalPage,
	})
}

// Update 更新工单
// @Summary      更新工单基础字段
// @Description  更新工单主题/描述/优先级/计划日期,终态工单拒绝更新
// @Tags         工单管理
// @Accept       json
// @Produce      json
// @Param        id path string true "工单 ID"
// @Param        request body service.UpdateRequestRequest true "更新字段"
// @Success      200  {object}  Response
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /requests/{id} [put]
// @Security     BearerAuth
func (c *RequestController) Update(ctx *gin.Context) {
	id := ctx.Param("id")
	if !c.validateRequestID(ctx, id) {
		return
	}

	var req service.UpdateRequestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	request, err := c.requestService.Update(ctx.Request.Context(), id, &req)
	if err != nil {
		HandleServiceError(ctx, err)
		return
	}

	Success(ctx, request)
}

// Transition 工单状态转换
// @Summary      工单状态转换
// @Description  应用一次状态转换,非法转换返回当前合法的目标状态集合,并发冲突返回 409
// @Tags         工单管理
// @Accept       json
// @Produce      json
// @Param        id path string true "工单 ID"
// @Param        request body service.TransitionRequest true "转换参数"
// @Success      200  {object}  Response
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /requests/{id}/status [patch]
// @Security     BearerAuth
func (c *RequestController) Transition(ctx *gin.Context) {
	id := ctx.Param("id")
	if !c.validateRequestID(ctx, id) {
		return
	}

	var req service.TransitionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	request, err := c.requestService.Transition(ctx.Request.Context(), id, &req)
	if err != nil {
		HandleServiceError(ctx, err)
		return
	}

	Success(ctx, request)
}

// Assign 指派技术员
// @Summary      指派技术员
// @Description  指派技术员,技术员必须是工单维修团队的成员
// @Tags         工单管理
// @Accept       json
// @Produce      json
// @Param        id path string true "工单 ID"
// @Param        request body service.AssignTechnicianRequest true "指派参数"
// @Success      200  {object}  Response
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /requests/{id}/assign [patch]
// @Security     BearerAuth
func (c *RequestController) Assign(ctx *gin.Context) {
	id := ctx.Param("id")
	if !c.validateRequestID(ctx, id) {
		return
	}

	var req service.AssignTechnicianRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	request, err := c.requestService.AssignTechnician(ctx.Request.Context(), id, &req)
	if err != nil {
		HandleServiceError(ctx, err)
		return
	}

	Success(ctx, request)
}

// Delete 删除工单
// @Summary      删除工单
// @Description  软删除工单,仅 Manager 可调用,删除后工单从所有查询中消失
// @Tags         工单管理
// @Accept       json
// @Produce      json
// @Param        id path string true "工单 ID"
// @Success      200  {object}  Response
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /requests/{id} [delete]
// @Security     BearerAuth
func (c *RequestController) Delete(ctx *gin.Context) {
	id := ctx.Param("id")
	if !c.validateRequestID(ctx, id) {
		return
	}

	if err := c.requestService.Delete(ctx.Request.Context(), id); err != nil {
		HandleServiceError(ctx, err)
		return
	}

	Success(ctx, nil)
}

// Kanban 看板视图
// @Summary      看板视图
// @Description  按状态分组返回工单,列内按优先级/计划日期/创建时间排序
// @Tags         工单管理
// @Accept       json
// @Produce      json
// @Param        team_id query string false "团队 ID(Manager 可按团队过滤)"
// @Success      200  {object}  Response
// @Failure      401  {object}  ErrorResponse
// @Router       /requests/kanban [get]
// @Security     BearerAuth
func (c *RequestController) Kanban(ctx *gin.Context) {
	board, err := c.requestService.Kanban(ctx.Request.Context(), ctx.Query("team_id"))
	if err != nil {
		HandleServiceError(ctx, err)
		return
	}

	Success(ctx, board)
}

// Calendar 日历视图
// @Summary      日历视图
// @Description  返回时间窗口内有计划日期的预防性维护工单
// @Tags         工单管理
// @Accept       json
// @Produce      json
// @Param        start query string false "窗口起点(RFC3339)"
// @Param        end query string false "窗口终点(RFC3339)"
// @Param        team_id query string false "团队 ID"
// @Success      200  {object}  Response
// @Failure      400  {object}  ErrorResponse
// @Router       /requests/calendar [get]
// @Security     BearerAuth
func (c *RequestController) Calendar(ctx *gin.Context) {
	var start, end *time.Time
	if raw := ctx.Query("start"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			Error(ctx, http.StatusBadRequest, "invalid start", err.Error())
			return
		}
		start = &t
	}
	if raw := ctx.Query("end"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			Error(ctx, http.StatusBadRequest, "invalid end", err.Error())
			return
		}
		end = &t
	}

	events, err := c.requestService.Calendar(ctx.Request.Context(), start, end, ctx.Query("team_id"))
	if err != nil {
		HandleServiceError(ctx, err)
		return
	}

	Success(ctx, events)
}

// History 工单状态历史
// @Summary      工单状态历史
// @Description  返回工单的状态变更历史,新变更在前
// @Tags         工单管理
// @Accept       json
// @Produce      json
// @Param        id path string true "工单 ID"
// @Success      200  {object}  Response
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /requests/{id}/history [get]
// @Security     BearerAuth
func (c *RequestController) History(ctx *gin.Context) {
	id := ctx.Param("id")
	if !c.validateRequestID(ctx, id) {
		return
	}

	history, err := c.requestService.History(ctx.Request.Context(), id)
	if err != nil {
		HandleServiceError(ctx, err)
		return
	}

	Success(ctx, history)
}
