package container

import (
	"fmt"
	"time"

	"github.com/piyushvishwakarma01/GearGuard/internal/auth"
	"github.com/piyushvishwakarma01/GearGuard/internal/config"
	"github.com/piyushvishwakarma01/GearGuard/internal/database"
	"github.com/piyushvishwakarma01/GearGuard/internal/repository"
	"github.com/piyushvishwakarma01/GearGuard/internal/service"
	"github.com/piyushvishwakarma01/GearGuard/internal/websocket"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Container 依赖注入容器
// 管理所有应用依赖,包括数据库、仓储、服务和 WebSocket Hub
type Container struct {
	db                *gorm.DB
	hub               *websocket.Hub
	tokenValidator    *auth.TokenValidator
	requestService    service.RequestService
	teamService       service.TeamService
	equipmentService  service.EquipmentService
	statisticsService service.StatisticsService
	auditLogService   service.AuditLogService
	overdueSweeper    *service.OverdueSweeper
}

// NewContainer 创建依赖注入容器
// 根据配置初始化所有依赖组件
func NewContainer(cfg *config.Config, logger *logrus.Logger) (*Container, error) {
	// 1. 初始化数据库（带重试机制）
	// 默认重试 3 次，初始间隔 1 秒，指数退避
	db, err := database.ConnectWithRetry(cfg.Database, 3, time.Second)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// 执行数据库迁移
	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return NewContainerWithDB(cfg, logger, db)
}

// NewContainerWithDB 基于已有数据库连接组装容器
// 测试用例传入 sqlite 内存库,生产走 NewContainer
func NewContainerWithDB(cfg *config.Config, logger *logrus.Logger, db *gorm.DB) (*Container, error) {
	// 2. 初始化仓储
	requestRepo := repository.NewRequestRepository(db)
	historyRepo := repository.NewStatusHistoryRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	equipmentRepo := repository.NewEquipmentRepository(db)
	userRepo := repository.NewUserRepository(db)
	auditLogRepo := repository.NewAuditLogRepository(db)

	// 3. 初始化 WebSocket Hub
	hub := websocket.NewHub()

	// 4. 初始化 Token 验证器
	tokenValidator := auth.NewTokenValidator(cfg.Auth.JWTSecret, cfg.Auth.Issuer)

	// 5. 组装服务
	auditLogSvc := service.NewAuditLogService(auditLogRepo)
	teamSvc := service.NewTeamService(teamRepo, userRepo, auditLogSvc)
	equipmentSvc := service.NewEquipmentService(equipmentRepo, teamRepo, auditLogSvc)
	requestSvc := service.NewRequestService(requestRepo, historyRepo, equipmentRepo, teamSvc, auditLogSvc, hub)
	statisticsSvc := service.NewStatisticsService(db, requestRepo)

	// 6. 初始化过期扫描器
	sweeperInterval := time.Duration(cfg.Sweeper.IntervalMinutes) * time.Minute
	overdueSweeper := service.NewOverdueSweeper(requestRepo, auditLogSvc, logger, sweeperInterval)

	return &Container{
		db:                db,
		hub:               hub,
		tokenValidator:    tokenValidator,
		requestService:    requestSvc,
		teamService:       teamSvc,
		equipmentService:  equipmentSvc,
		statisticsService: statisticsSvc,
		auditLogService:   auditLogSvc,
		overdueSweeper:    overdueSweeper,
	}, nil
}

// DB 获取数据库连接
func (c *Container) DB() *gorm.DB {
	return c.db
}

// Hub 获取 WebSocket Hub
func (c *Container) Hub() *websocket.Hub {
	return c.hub
}

// TokenValidator 获取 Token 验证器
func (c *Container) TokenValidator() *auth.TokenValidator {
	return c.tokenValidator
}

// RequestService 获取工单服务
func (c *Container) RequestService() service.RequestService {
	return c.requestService
}

// TeamService 获取团队服务
func (c *Container) TeamService() service.TeamService {
	return c.teamService
}

// EquipmentService 获取设备服务
func (c *Container) EquipmentService() service.EquipmentService {
	return c.equipmentService
}

// StatisticsService 获取统计服务
func (c *Container) StatisticsService() service.StatisticsService {
	return c.statisticsService
}

// AuditLogService 获取审计日志服务
func (c *Container) AuditLogService() service.AuditLogService {
	return c.auditLogService
}

// OverdueSweeper 获取过期扫描器
func (c *Container) OverdueSweeper() *service.OverdueSweeper {
	return c.overdueSweeper
}

// Close 关闭容器,清理资源
func (c *Container) Close() error {
	if c.db != nil {
		sqlDB, err := c.db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}
