package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	// SubmissionCounter 按学习项类型和处理结果统计提交次数
	SubmissionCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assessment_submissions_total",
			Help: "Submissions by item type and outcome",
		},
		[]string{"item_type", "outcome"},
	)

	ScoreHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "assessment_score",
			Help:    "Distribution of graded scores (0-100)",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
		[]string{"item_type"},
	)

	MalformedItems = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "assessment_malformed_items_total",
			Help: "Submissions graded against items with authoring defects",
		},
	)
)

// 提交结果标签
const (
	OutcomeGraded    = "graded"
	OutcomeDuplicate = "duplicate"
	OutcomeDenied    = "denied"
	OutcomeError     = "error"
)

var initOnce sync.Once

// Init 注册全部指标，可重复调用
func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestCounter)
		prometheus.MustRegister(RequestDuration)
		prometheus.MustRegister(SubmissionCounter)
		prometheus.MustRegister(ScoreHistogram)
		prometheus.MustRegister(MalformedItems)
	})
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
