package repository

import (
	"time"

	"github.com/piyushvishwakarma01/GearGuard/internal/model"
	"gorm.io/gorm"
)

// RequestRepository 维修工单仓储接口
type RequestRepository interface {
	Create(req *model.MaintenanceRequestModel) error
	FindByID(id string) (*model.MaintenanceRequestModel, error)
	FindByFilter(filter *RequestFilter, page, pageSize int) ([]*model.MaintenanceRequestModel, int64, error)
	FindKanban(teamID string, memberUserID string) ([]*model.MaintenanceRequestModel, error)
	FindCalendar(start, end *time.Time, teamID string, memberUserID string) ([]*model.MaintenanceRequestModel, error)
	UpdateFields(id string, fields map[string]interface{}) error
	AssignTechnician(id string, technicianID string) error
	ApplyTransition(id string, expectedStatus string, fields map[string]interface{}, hist *model.StatusHistoryModel) (bool, error)
	SoftDelete(id string) (bool, error)
	MarkOverdue(now time.Time) ([]*model.MaintenanceRequestModel, error)
	CountByStatus() (map[string]int64, error)
}

// RequestFilter 工单查询过滤器
type RequestFilter struct {
	Status               *string
	RequestType          *string
	EquipmentID          *string
	MaintenanceTeamID    *string
	AssignedTechnicianID *string
	IsOverdue            *bool
	Search               *string // 按主题/描述模糊匹配
	MemberUserID         *string // 非 Manager 只能看到自己团队的工单
}

// requestRepository 工单仓储实现
type requestRepository struct {
	db *gorm.DB
}

// NewRequestRepository 创建工单仓储
func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &requestRepository{db: db}
}

// Create 创建工单
func (r *requestRepository) Create(req *model.MaintenanceRequestModel) error {
	return r.db.Create(req).Error
}

// FindByID 根据 ID 查找工单,软删除的工单视同不存在
func (r *requestRepository) FindByID(id string) (*model.MaintenanceRequestModel, error) {
	var req model.MaintenanceRequestModel
	if err := r.db.Where("id = ?", id).First(&req).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

// FindByFilter 根据过滤器分页查找工单
func (r *requestRepository) FindByFilter(filter *RequestFilter, page, pageSize int) ([]*model.MaintenanceRequestModel, int64, error) {
	query := r.db.Model(&model.MaintenanceRequestModel{})
	query = applyRequestFilter(query, filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	var requests []*model.MaintenanceRequestModel
	err := query.Order("created_at DESC").
		Limit(pageSize).Offset((page - 1) * pageSize).
		Find(&requests).Error
	return requests, total, err
}

// FindKanban 查找看板工单
// 按优先级(Critical 最高)、计划日期、创建时间排序,分组由服务层完成
func (r *requestRepository) FindKanban(teamID string, memberUserID string) ([]*model.MaintenanceRequestModel, error) {
	query := r.db.Model(&model.MaintenanceRequestModel{})
	if memberUserID != "" {
		query = query.Where(
			"maintenance_team_id IN (?)",
			r.db.Model(&model.TeamMemberModel{}).Select("team_id").Where("user_id = ?", memberUserID),
		)
	} else if teamID != "" {
		query = query.Where("maintenance_team_id = ?", teamID)
	}

	var requests []*model.MaintenanceRequestModel
	err := query.Order(priorityOrder()).
		Order("scheduled_date ASC").
		Order("created_at ASC").
		Find(&requests).Error
	return requests, err
}

// FindCalendar 查找日历视图工单(预防性维护且有计划日期)
func (r *requestRepository) FindCalendar(start, end *time.Time, teamID string, memberUserID string) ([]*model.MaintenanceRequestModel, error) {
	query := r.db.Model(&model.MaintenanceRequestModel{}).
		Where("request_type = ?", model.RequestTypePreventive).
		Where("scheduled_date IS NOT NULL")

	if start != nil {
		query = query.Where("scheduled_date >= ?", *start)
	}
	if end != nil {
		query = query.Where("scheduled_date <= ?", *end)
	}
	if memberUserID != "" {
		query = query.Where(
			"maintenance_team_id IN (?)",
			r.db.Model(&model.TeamMemberModel{}).Select("team_id").Where("user_id = ?", memberUserID),
		)
	} else if teamID != "" {
		query = query.Where("maintenance_team_id = ?", teamID)
	}

	var requests []*model.MaintenanceRequestModel
	err := query.Order("scheduled_date ASC").Find(&requests).Error
	return requests, err
}

// UpdateFields 更新工单字段
func (r *requestRepository) UpdateFields(id string, fields map[string]interface{}) error {
	return r.db.Model(&model.MaintenanceRequestModel{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// AssignTechnician 指派技术员,不改变状态
func (r *requestRepository) AssignTechnician(id string, technicianID string) error {
	return r.db.Model(&model.MaintenanceRequestModel{}).
		Where("id = ?", id).
		Update("assigned_technician_id", technicianID).Error
}

// ApplyTransition 原子应用一次状态转换
// 条件更新: 只有当前状态仍等于读取时观察到的状态才落库,
// 状态更新与历史追加在同一事务内,二者要么全部生效要么全部失败。
// 返回 false 表示观察到的状态已被并发转换抢先修改(乐观锁失败)。
func (r *requestRepository) ApplyTransition(id string, expectedStatus string, fields map[string]interface{}, hist *model.StatusHistoryModel) (bool, error) {
	applied := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.MaintenanceRequestModel{}).
			Where("id = ? AND status = ?", id, expectedStatus).
			Updates(fields)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			// 状态已被抢先修改,不写历史
			return nil
		}
		if err := tx.Create(hist).Error; err != nil {
			return err
		}
		applied = true
		return nil
	})
	return applied, err
}

// SoftDelete 软删除工单,之后所有查询不再返回该工单
func (r *requestRepository) SoftDelete(id string) (bool, error) {
	result := r.db.Where("id = ?", id).Delete(&model.MaintenanceRequestModel{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// MarkOverdue 标记过期工单
// 计划日期已过且未进入终态的工单置 is_overdue = true,返回本次标记的工单
func (r *requestRepository) MarkOverdue(now time.Time) ([]*model.MaintenanceRequestModel, error) {
	var candidates []*model.MaintenanceRequestModel
	err := r.db.Where("scheduled_date < ?", now).
		Where("status NOT IN ?", []string{"Repaired", "Scrap"}).
		Where("is_overdue = ?", false).
		Find(&candidates).Error
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(candidates))
	for _, req := range candidates {
		ids = append(ids, req.ID)
	}
	err = r.db.Model(&model.MaintenanceRequestModel{}).
		Where("id IN ?", ids).
		Update("is_overdue", true).Error
	if err != nil {
		return nil, err
	}
	return candidates, nil
}

// CountByStatus 按状态统计工单数(用于指标上报)
func (r *requestRepository) CountByStatus() (map[string]int64, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row
	err := r.db.Model(&model.MaintenanceRequestModel{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}

// applyRequestFilter 应用查询过滤条件
func applyRequestFilter(query *gorm.DB, filter *RequestFilter) *gorm.DB {
	if filter == nil {
		return query
	}
	if filter.MemberUserID != nil {
		query = query.Where(
			"maintenance_team_id IN (?)",
			query.Session(&gorm.Session{NewDB: true}).
				Model(&model.TeamMemberModel{}).Select("team_id").Where("user_id = ?", *filter.MemberUserID),
		)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.RequestType != nil {
		query = query.Where("request_type = ?", *filter.RequestType)
	}
	if filter.EquipmentID != nil {
		query = query.Where("equipment_id = ?", *filter.EquipmentID)
	}
	if filter.MaintenanceTeamID != nil {
		query = query.Where("maintenance_team_id = ?", *filter.MaintenanceTeamID)
	}
	if filter.AssignedTechnicianID != nil {
		query = query.Where("assigned_technician_id = ?", *filter.AssignedTechnicianID)
	}
	if filter.IsOverdue != nil {
		query = query.Where("is_overdue = ?", *filter.IsOverdue)
	}
	if filter.Search != nil {
		pattern := "%" + *filter.Search + "%"
		query = query.Where("subject LIKE ? OR description LIKE ?", pattern, pattern)
	}
	return query
}

// priorityOrder 优先级排序表达式
func priorityOrder() string {
	return "CASE priority " +
		"WHEN 'Critical' THEN 1 " +
		"WHEN 'High' THEN 2 " +
		"WHEN 'Medium' THEN 3 " +
		"WHEN 'Low' THEN 4 " +
		"ELSE 5 END"
}
