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
			Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	CheckinsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "sprint_checkins_total",
			Help: "Daily check-ins recorded",
		},
	)

	MilestonesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sprint_milestones_total",
			Help: "Milestone days reached, by challenge duration",
		},
		[]string{"duration"},
	)

	LowAdherenceTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sprint_low_adherence_total",
			Help: "Adaptive suggestions raised, by habit slot",
		},
		[]string{"slot"},
	)

	BlueprintsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "discovery_blueprints_total",
			Help: "Discovery blueprints generated, by primary craving",
		},
		[]string{"craving"},
	)

	NotificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coach_notifications_total",
			Help: "Coach notification attempts",
		},
		[]string{"kind", "result"},
	)
)

var registerOnce sync.Once

func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			RequestCounter,
			RequestDuration,
			CheckinsTotal,
			MilestonesTotal,
			LowAdherenceTotal,
			BlueprintsTotal,
			NotificationsTotal,
		)
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
