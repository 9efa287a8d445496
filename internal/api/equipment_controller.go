package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/piyushvishwakarma01/GearGuard/internal/service"
	"github.com/piyushvishwakarma01/GearGuard/internal/utils"
)

// EquipmentController 设备控制器
type EquipmentController struct {
	equipmentService service.EquipmentService
}

// NewEquipmentController 创建设备控制器
func NewEquipmentController(equipmentService service.EquipmentService) *EquipmentController {
	return &EquipmentController{
		equipmentService: equipmentService,
	}
}

// Create 创建设备
// @Summary      创建设备
// @Description  录入新设备并绑定默认维修团队,仅 Manager 可调用
// @Tags         设备管理
// @Accept       json
// @Produce      json
// @Param        request body service.CreateEquipmentRequest true "设备信息"
// @Success      201  {object}  Response
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /equipment [post]
// @Security     BearerAuth
func (c *EquipmentController) Create(ctx *gin.Context) {
	var req service.CreateEquipmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	eq, err := c.equipmentService.Create(ctx.Request.Context(), &req)
	if err != nil {
		HandleServiceError(ctx, err)
		return
	}

	Created(ctx, eq)
}

// Get 获取设备
// @Summary      获取设备详情
// @Description  根据 ID 获取设备详情
// @Tags         设备管理
// @Accept       json
// @Produce      json
// @Param        id path string true "设备 ID"
// @Success      200  {object}  Response
// @Failure      404  {object}  ErrorResponse
// @Router       /equipment/{id} [get]
// @Security     BearerAuth
func (c *EquipmentController) Get(ctx *gin.Context) {
	id := ctx.Param("id")
	if err := utils.ValidateResourceID(id); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid equipment ID", err.Error())
		return
	}

	eq, err := c.equipmentService.Get(id)
	if err != nil {
		HandleServiceError(ctx, err)
		return
	}

	Success(ctx, eq)
}

// List 查询设备列表
// @Summary      查询设备列表
// @Description  返回所有设备
// @Tags         设备管理
// @Accept       json
// @Produce      json
// @Success      200  {object}  Response
// @Router       /equipment [get]
// @Security     BearerAuth
func (c *EquipmentController) List(ctx *gin.Context) {
	equipment, err := c.equipmentService.List()
	if err != nil {
		HandleServiceError(ctx, err)
		return
	}

	Success(ctx, equipment)
}
