package api

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "github.com/piyushvishwakarma01/GearGuard/docs" // 导入生成的 docs 包
	"github.com/piyushvishwakarma01/GearGuard/internal/auth"
	"github.com/piyushvishwakarma01/GearGuard/internal/config"
	"github.com/piyushvishwakarma01/GearGuard/internal/service"
	"github.com/piyushvishwakarma01/GearGuard/internal/websocket"
)

// RouterDeps 路由依赖
type RouterDeps struct {
	Config            *config.Config
	DB                *gorm.DB
	Hub               *websocket.Hub
	TokenValidator    *auth.TokenValidator
	RequestService    service.RequestService
	TeamService       service.TeamService
	EquipmentService  service.EquipmentService
	StatisticsService service.StatisticsService
}

// SetupRoutes 配置路由
func SetupRoutes(deps *RouterDeps) *gin.Engine {
	if config.IsProduction(deps.Config) {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	// 中间件
	router.Use(RequestIDMiddleware())
	router.Use(RequestLogMiddleware())
	router.Use(SecurityHeadersMiddleware())
	if deps.Config != nil {
		router.Use(CORSMiddleware(deps.Config.CORS.AllowedOrigins))
		if deps.Config.Tracing.Enabled {
			router.Use(TracingMiddleware())
		}
		if deps.Config.RateLimit.Enabled {
			router.Use(RateLimitMiddleware(deps.Config.RateLimit.RPS, deps.Config.RateLimit.Burst))
		}
	}

	// 健康检查
	healthController := NewHealthController(deps.DB)
	router.GET("/health", healthController.Check)

	// Prometheus 指标端点
	router.GET("/metrics", MetricsHandler)

	// 看板 WebSocket 路由
	if deps.Hub != nil && deps.TokenValidator != nil {
		router.GET("/ws/board", websocket.BoardHandler(deps.Hub, deps.TokenValidator))
	}

	// Swagger UI 路由
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler,
		ginSwagger.URL("http://localhost:8080/swagger/doc.json"), // Swagger JSON URL
	))

	requestController := NewRequestController(deps.RequestService)
	teamController := NewTeamController(deps.TeamService)
	equipmentController := NewEquipmentController(deps.EquipmentService)
	statisticsController := NewStatisticsController(deps.StatisticsService)

	// API v1 路由组,全部需要认证
	v1 := router.Group("/api/v1")
	v1.Use(AuthMiddleware(deps.TokenValidator))
	{
		// 工单管理路由
		requests := v1.Group("/requests")
		{
			requests.POST("", requestController.Create)
			requests.GET("", requestController.List)
			requests.GET("/kanban", requestController.Kanban)
			requests.GET("/calendar", requestController.Calendar)
			requests.GET("/:id", requestController.Get)
			requests.PUT("/:id", requestController.Update)
			requests.PATCH("/:id/status", requestController.Transition)
			requests.PATCH("/:id/assign", requestController.Assign)
			requests.GET("/:id/history", requestController.History)
			requests.DELETE("/:id", RequireManager(), requestController.Delete)
		}

		// 团队管理路由
		teams := v1.Group("/teams")
		{
			teams.POST("", RequireManager(), teamController.Create)
			teams.GET("", teamController.List)
			teams.GET("/:id", teamController.Get)
			teams.GET("/:id/members", teamController.Members)
			teams.POST("/:id/members", RequireManager(), teamController.AddMember)
			teams.DELETE("/:id/members/:user_id", RequireManager(), teamController.RemoveMember)
		}

		// 设备管理路由
		equipment := v1.Group("/equipment")
		{
			equipment.POST("", RequireManager(), equipmentController.Create)
			equipment.GET("", equipmentController.List)
			equipment.GET("/:id", equipmentController.Get)
		}

		// 统计路由
		statistics := v1.Group("/statistics")
		{
			statistics.GET("/by-status", statisticsController.ByStatus)
			statistics.GET("/by-team", statisticsController.ByTeam)
			statistics.GET("/by-time", statisticsController.ByTime)
			statistics.GET("/completion", statisticsController.Completion)
		}
	}

	return router
}
