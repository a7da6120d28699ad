package services

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"clock-client/pkg/metrics"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// maxRequestLogs は保持するリクエストログの上限です。
const maxRequestLogs = 10000

// LogEntry は単一のリクエストログを表します。
type LogEntry struct {
	Timestamp    time.Time     `json:"timestamp"`
	Path         string        `json:"path"`
	Method       string        `json:"method"`
	StatusCode   int           `json:"statusCode"`
	ResponseTime time.Duration `json:"responseTime"`
}

// MonitoringService はHTTP APIのリクエストを記録し、集計します。
type MonitoringService struct {
	logs []LogEntry
	mu   sync.RWMutex
	log  *zap.Logger
	now  func() time.Time
}

// NewMonitoringService は新しいMonitoringServiceを生成します。
func NewMonitoringService(log *zap.Logger) *MonitoringService {
	if log == nil {
		log = zap.NewNop()
	}
	return &MonitoringService{
		logs: make([]LogEntry, 0),
		log:  log,
		now:  time.Now,
	}
}

// LogRequest はリクエストを記録します。上限を超えた古いログは破棄されます。
func (s *MonitoringService) LogRequest(entry LogEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs = append(s.logs, entry)
	if len(s.logs) > maxRequestLogs {
		s.logs = s.logs[len(s.logs)-maxRequestLogs:]
	}
}

// LoggingMiddleware はリクエスト情報を記録するGinミドルウェアです。
func (s *MonitoringService) LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := s.now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		status := c.Writer.Status()
		elapsed := time.Since(start)

		metrics.HTTPRequestDuration.
			WithLabelValues(c.Request.Method, path, strconv.Itoa(status)).
			Observe(elapsed.Seconds())

		s.log.Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("elapsed", elapsed))

		// 管理・モニタリング・メトリクスの呼び出しは集計対象外
		if strings.HasPrefix(path, "/api/v1/admin") ||
			strings.HasPrefix(path, "/api/v1/monitoring") ||
			path == "/metrics" {
			return
		}

		s.LogRequest(LogEntry{
			Timestamp:    start,
			Path:         path,
			Method:       c.Request.Method,
			StatusCode:   status,
			ResponseTime: elapsed,
		})
	}
}

// DashboardData は集計済みのリクエストデータです。
type DashboardData struct {
	TotalRequests    int              `json:"totalRequests"`
	RequestsOverTime []map[string]any `json:"requestsOverTime"`
	Endpoints        map[string]int   `json:"endpoints"`
	StatusCodes      map[string]int   `json:"statusCodes"`
	AvgResponseTimes map[string]int64 `json:"avgResponseTimes"`
	RecentErrors     []LogEntry       `json:"recentErrors"`
}

// GetDashboardData は指定された期間のログを集計して返します。
func (s *MonitoringService) GetDashboardData(periodHours int) DashboardData {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if periodHours <= 0 {
		periodHours = 24
	}

	now := s.now().UTC()
	since := now.Add(-time.Duration(periodHours) * time.Hour)

	filtered := make([]LogEntry, 0)
	for _, entry := range s.logs {
		if entry.Timestamp.After(since) {
			filtered = append(filtered, entry)
		}
	}

	// 時間ごとのバケットを過去から現在の順に用意
	requestsOverTime := make([]map[string]any, periodHours)
	bucketIndex := make(map[string]int, periodHours)
	for i := 0; i < periodHours; i++ {
		bucket := now.Add(-time.Duration(periodHours-1-i) * time.Hour).Truncate(time.Hour)
		bucketIndex[bucket.Format(time.RFC3339)] = i
		requestsOverTime[i] = map[string]any{"time": bucket.Format("15:00"), "requests": 0}
	}

	endpoints := make(map[string]int)
	statusCodes := map[string]int{
		"2xx Success":      0,
		"4xx Client Error": 0,
		"5xx Server Error": 0,
	}
	responseTimeSum := make(map[string]time.Duration)
	recentErrors := make([]LogEntry, 0)

	for _, entry := range filtered {
		key := entry.Timestamp.UTC().Truncate(time.Hour).Format(time.RFC3339)
		if i, ok := bucketIndex[key]; ok {
			requestsOverTime[i]["requests"] = requestsOverTime[i]["requests"].(int) + 1
		}

		endpoints[entry.Path]++
		responseTimeSum[entry.Path] += entry.ResponseTime

		switch {
		case entry.StatusCode >= 200 && entry.StatusCode < 300:
			statusCodes["2xx Success"]++
		case entry.StatusCode >= 400 && entry.StatusCode < 500:
			statusCodes["4xx Client Error"]++
		case entry.StatusCode >= 500:
			statusCodes["5xx Server Error"]++
		}
	}

	avgResponseTimes := make(map[string]int64, len(responseTimeSum))
	for path, total := range responseTimeSum {
		avgResponseTimes[path] = total.Milliseconds() / int64(endpoints[path])
	}

	// 新しい順に最大10件
	for i := len(filtered) - 1; i >= 0 && len(recentErrors) < 10; i-- {
		if filtered[i].StatusCode >= 500 {
			recentErrors = append(recentErrors, filtered[i])
		}
	}

	return DashboardData{
		TotalRequests:    len(filtered),
		RequestsOverTime: requestsOverTime,
		Endpoints:        endpoints,
		StatusCodes:      statusCodes,
		AvgResponseTimes: avgResponseTimes,
		RecentErrors:     recentErrors,
	}
}
