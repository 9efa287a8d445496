package service

import (
	"context"
	"time"

	"github.com/piyushvishwakarma01/GearGuard/internal/metrics"
	"github.com/piyushvishwakarma01/GearGuard/internal/model"
	"github.com/piyushvishwakarma01/GearGuard/internal/repository"
	"github.com/sirupsen/logrus"
)

// 过期标记由系统账号执行
const sweeperSystemUser = "system"

// OverdueSweeper 过期工单扫描器
// 周期扫描计划日期已过且未完工的工单并标记 is_overdue
type OverdueSweeper struct {
	requestRepo repository.RequestRepository
	auditLogSvc AuditLogService
	logger      *logrus.Logger
	interval    time.Duration
	stopChan    chan struct{}
}

// NewOverdueSweeper 创建过期工单扫描器
func NewOverdueSweeper(requestRepo repository.RequestRepository, auditLogSvc AuditLogService, logger *logrus.Logger, interval time.Duration) *OverdueSweeper {
	if interval <= 0 {
		interval = time.Hour
	}
	return &OverdueSweeper{
		requestRepo: requestRepo,
		auditLogSvc: auditLogSvc,
		logger:      logger,
		interval:    interval,
		stopChan:    make(chan struct{}),
	}
}

// Start 启动扫描器
func (s *OverdueSweeper) Start(ctx context.Context) error {
	go s.run(ctx)
	return nil
}

// Stop 停止扫描器
func (s *OverdueSweeper) Stop() {
	close(s.stopChan)
}

// run 扫描循环
func (s *OverdueSweeper) run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// 启动时立即扫一轮
	s.Sweep(ctx)

	for {
		select {
		case <-ticker.C:
			s.Sweep(ctx)
		case <-s.stopChan:
			return
		case <-ctx.Done():
			return
		}
	}
}

// Sweep 执行一轮过期标记
// 扫描只负责打标记,清除发生在改期时(Update 重置 is_overdue)
func (s *OverdueSweeper) Sweep(ctx context.Context) {
	marked, err := s.requestRepo.MarkOverdue(time.Now())
	if err != nil {
		s.logger.WithError(err).Error("overdue sweep failed")
		return
	}
	if len(marked) == 0 {
		return
	}

	metrics.RecordOverdueMarked(len(marked))
	s.logger.WithField("count", len(marked)).Info("marked overdue maintenance requests")

	for _, req := range marked {
		_ = s.auditLogSvc.RecordAction(ctx, sweeperSystemUser, model.AuditActionMarkedOverdue, "request", req.ID, map[string]interface{}{
			"scheduled_date": req.ScheduledDate,
		})
	}
}
