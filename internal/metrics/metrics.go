package metrics

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

var (
	// API 请求计数器
	apiRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "path", "status"},
	)

	// API 请求响应时间
	apiRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// 工单创建数
	requestsCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "maintenance_requests_created_total",
			Help: "Total number of maintenance requests created",
		},
	)

	// 状态转换数,按目标状态和结果统计
	transitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "status_transitions_total",
			Help: "Total number of status transition attempts",
		},
		[]string{"target", "result"}, // result: applied, rejected, conflict
	)

	// 过期标记数
	overdueMarkedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "requests_marked_overdue_total",
			Help: "Total number of requests marked overdue by the sweeper",
		},
	)

	// 数据库连接数
	databaseConnectionsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "database_connections_active",
			Help: "Number of active database connections",
		},
	)

	databaseConnectionsIdle = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "database_connections_idle",
			Help: "Number of idle database connections",
		},
	)

	// 工单状态分布
	requestsByStatus = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "maintenance_requests_by_status",
			Help: "Number of maintenance requests by status",
		},
		[]string{"status"},
	)
)

var once sync.Once

func init() {
	prometheus.MustRegister(apiRequestsTotal)
	prometheus.MustRegister(apiRequestDuration)
	prometheus.MustRegister(requestsCreatedTotal)
	prometheus.MustRegister(transitionsTotal)
	prometheus.MustRegister(overdueMarkedTotal)
	prometheus.MustRegister(databaseConnectionsActive)
	prometheus.MustRegister(databaseConnectionsIdle)
	prometheus.MustRegister(requestsByStatus)

	// 注册 Go 运行时指标（只注册一次,重复注册忽略错误）
	once.Do(func() {
		_ = prometheus.Register(prometheus.NewGoCollector())
		_ = prometheus.Register(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))
	})
}

// Handler 返回 Prometheus 指标处理器
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordAPIRequest 记录 API 请求
func RecordAPIRequest(method, path string, status int, duration float64) {
	statusText := http.StatusText(status)
	if statusText == "" {
		statusText = fmt.Sprintf("%d", status)
	}
	apiRequestsTotal.WithLabelValues(method, path, statusText).Inc()
	apiRequestDuration.WithLabelValues(method, path).Observe(duration)
}

// RecordRequestCreated 记录工单创建
func RecordRequestCreated() {
	requestsCreatedTotal.Inc()
}

// RecordTransition 记录状态转换尝试
func RecordTransition(target string, result string) {
	transitionsTotal.WithLabelValues(target, result).Inc()
}

// RecordOverdueMarked 记录过期标记数量
func RecordOverdueMarked(count int) {
	overdueMarkedTotal.Add(float64(count))
}

// UpdateDatabaseMetrics 上报数据库连接池指标
func UpdateDatabaseMetrics(db *gorm.DB) {
	if db == nil {
		return
	}
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	stats := sqlDB.Stats()
	databaseConnectionsActive.Set(float64(stats.InUse))
	databaseConnectionsIdle.Set(float64(stats.Idle))
}

// UpdateStatusDistribution 上报工单状态分布
func UpdateStatusDistribution(counts map[string]int64) {
	for status, count := range counts {
		requestsByStatus.WithLabelValues(status).Set(float64(count))
	}
}
