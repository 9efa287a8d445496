package service

import (
	"fmt"
	"time"

	"github.com/piyushvishwakarma01/GearGuard/internal/metrics"
	"github.com/piyushvishwakarma01/GearGuard/internal/model"
	"github.com/piyushvishwakarma01/GearGuard/internal/repository"
	"github.com/piyushvishwakarma01/GearGuard/internal/workflow"
	"gorm.io/gorm"
)

// StatisticsService 统计服务接口
type StatisticsService interface {
	GetRequestStatisticsByStatus() ([]*RequestStatisticsByStatus, error)
	GetRequestStatisticsByTeam() ([]*RequestStatisticsByTeam, error)
	GetRequestStatisticsByTime() ([]*RequestStatisticsByTime, error)
	GetCompletionStatistics() (*CompletionStatistics, error)
}

// RequestStatisticsByStatus 按状态统计
type RequestStatisticsByStatus struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// RequestStatisticsByTeam 按团队统计
type RequestStatisticsByTeam struct {
	TeamID   string `json:"team_id"`
	TeamName string `json:"team_name"`
	Count    int64  `json:"count"`
}

// RequestStatisticsByTime 按时间统计
type RequestStatisticsByTime struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// CompletionStatistics 完工统计
type CompletionStatistics struct {
	TotalRequests        int64   `json:"total_requests"`
	RepairedCount        int64   `json:"repaired_count"`
	ScrapCount           int64   `json:"scrap_count"`
	OverdueCount         int64   `json:"overdue_count"`
	AverageDurationHours float64 `json:"average_duration_hours"` // 终态工单平均工时
}

// statisticsService 统计服务实现
type statisticsService struct {
	db          *gorm.DB
	requestRepo repository.RequestRepository
}

// NewStatisticsService 创建统计服务
func NewStatisticsService(db *gorm.DB, requestRepo repository.RequestRepository) StatisticsService {
	return &statisticsService{db: db, requestRepo: requestRepo}
}

// GetRequestStatisticsByStatus 按状态统计工单,顺带刷新状态分布指标
func (s *statisticsService) GetRequestStatisticsByStatus() ([]*RequestStatisticsByStatus, error) {
	counts, err := s.requestRepo.CountByStatus()
	if err != nil {
		return nil, fmt.Errorf("failed to get request statistics by status: %w", err)
	}

	metrics.UpdateStatusDistribution(counts)

	// 固定四列输出,没有工单的状态计 0
	stats := make([]*RequestStatisticsByStatus, 0, len(workflow.AllStatuses()))
	for _, st := range workflow.AllStatuses() {
		stats = append(stats, &RequestStatisticsByStatus{
			Status: string(st),
			Count:  counts[string(st)],
		})
	}
	return stats, nil
}

// GetRequestStatisticsByTeam 按团队统计工单
func (s *statisticsService) GetRequestStatisticsByTeam() ([]*RequestStatisticsByTeam, error) {
	var results []struct {
		TeamID   string
		TeamName string
		Count    int64
	}

	err := s.db.Model(&model.MaintenanceRequestModel{}).
		Select("maintenance_requests.maintenance_team_id as team_id, maintenance_teams.name as team_name, COUNT(*) as count").
		Joins("LEFT JOIN maintenance_teams ON maintenance_teams.id = maintenance_requests.maintenance_team_id").
		Group("maintenance_requests.maintenance_team_id, maintenance_teams.name").
		Scan(&results).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get request statistics by team: %w", err)
	}

	stats := make([]*RequestStatisticsByTeam, 0, len(results))
	for _, r := range results {
		stats = append(stats, &RequestStatisticsByTeam{
			TeamID:   r.TeamID,
			TeamName: r.TeamName,
			Count:    r.Count,
		})
	}
	return stats, nil
}

// GetRequestStatisticsByTime 按创建日期统计最近 30 天的工单
func (s *statisticsService) GetRequestStatisticsByTime() ([]*RequestStatisticsByTime, error) {
	var results []struct {
		Date  string
		Count int64
	}

	since := time.Now().AddDate(0, 0, -30)
	err := s.db.Model(&model.MaintenanceRequestModel{}).
		Select("DATE(created_at) as date, COUNT(*) as count").
		Where("created_at >= ?", since).
		Group("DATE(created_at)").
		Order("date ASC").
		Scan(&results).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get request statistics by time: %w", err)
	}

	stats := make([]*RequestStatisticsByTime, 0, len(results))
	for _, r := range results {
		stats = append(stats, &RequestStatisticsByTime{
			Date:  r.Date,
			Count: r.Count,
		})
	}
	return stats, nil
}

// GetCompletionStatistics 完工统计
func (s *statisticsService) GetCompletionStatistics() (*CompletionStatistics, error) {
	stats := &CompletionStatistics{}

	if err := s.db.Model(&model.MaintenanceRequestModel{}).Count(&stats.TotalRequests).Error; err != nil {
		return nil, fmt.Errorf("failed to count requests: %w", err)
	}
	if err := s.db.Model(&model.MaintenanceRequestModel{}).
		Where("status = ?", string(workflow.StatusRepaired)).
		Count(&stats.RepairedCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count repaired requests: %w", err)
	}
	if err := s.db.Model(&model.MaintenanceRequestModel{}).
		Where("status = ?", string(workflow.StatusScrap)).
		Count(&stats.ScrapCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count scrapped requests: %w", err)
	}
	if err := s.db.Model(&model.MaintenanceRequestModel{}).
		Where("is_overdue = ?", true).
		Count(&stats.OverdueCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count overdue requests: %w", err)
	}

	var avg *float64
	err := s.db.Model(&model.MaintenanceRequestModel{}).
		Where("duration_hours IS NOT NULL").
		Select("AVG(duration_hours)").
		Scan(&avg).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute average duration: %w", err)
	}
	if avg != nil {
		stats.AverageDurationHours = *avg
	}
	return stats, nil
}
