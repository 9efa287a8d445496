package api

import (
	"github.com/gin-gonic/gin"
	"github.com/piyushvishwakarma01/GearGuard/internal/service"
)

// StatisticsController 统计控制器
type StatisticsController struct {
	statisticsService service.StatisticsService
}

// NewStatisticsController 创建统计控制器
func NewStatisticsController(statisticsService service.StatisticsService) *StatisticsController {
	return &StatisticsController{
		statisticsService: statisticsService,
	}
}

// ByStatus 按状态统计
// @Summary      按状态统计工单
// @Description  返回四个状态各自的工单数量
// @Tags         统计
// @Produce      json
// @Success      200  {object}  Response
// @Router       /statistics/by-status [get]
// @Security     BearerAuth
func (c *StatisticsController) ByStatus(ctx *gin.Context) {
	stats, err := c.statisticsService.GetRequestStatisticsByStatus()
	if err != nil {
		HandleServiceError(ctx, err)
		return
	}
	Success(ctx, stats)
}

// ByTeam 按团队统计
// @Summary      按团队统计工单
// @Description  返回各维修团队的工单数量
// @Tags         统计
// @Produce      json
// @Success      200  {object}  Response
// @Router       /statistics/by-team [get]
// @Security     BearerAuth
func (c *StatisticsController) ByTeam(ctx *gin.Context) {
	stats, err := c.statisticsService.GetRequestStatisticsByTeam()
	if err != nil {
		HandleServiceError(ctx, err)
		return
	}
	Success(ctx, stats)
}

// ByTime 按时间统计
// @Summary      按时间统计工单
// @Description  返回最近 30 天每日创建的工单数量
// @Tags         统计
// @Produce      json
// @Success      200  {object}  Response
// @Router       /statistics/by-time [get]
// @Security     BearerAuth
func (c *StatisticsController) ByTime(ctx *gin.Context) {
	stats, err := c.statisticsService.GetRequestStatisticsByTime()
	if err != nil {
		HandleServiceError(ctx, err)
		return
	}
	Success(ctx, stats)
}

// Completion 完工统计
// @Summary      完工统计
// @Description  返回完工率与平均工时等汇总数据
// @Tags         统计
// @Produce      json
// @Success      200  {object}  Response
// @Router       /statistics/completion [get]
// @Security     BearerAuth
func (c *StatisticsController) Completion(ctx *gin.Context) {
	stats, err := c.statisticsService.GetCompletionStatistics()
	if err != nil {
		HandleServiceError(ctx, err)
		return
	}
	Success(ctx, stats)
}
