package v1

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/carelinkhq/carebundle/internal/config"
	"github.com/carelinkhq/carebundle/pkg/metrics"
)

// NewRouter wires the HTTP surface: versioned API routes, health check, and
// the Prometheus endpoint.
func NewRouter(
	cfg *config.Config,
	log *zap.Logger,
	collector *metrics.Collector,
	profileHandler *ProfileHandler,
	scenarioHandler *ScenarioHandler,
	recordHandler *RecordHandler,
) *gin.Engine {
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestID())
	r.Use(requestLogger(log))
	r.Use(requestMetrics(collector))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": cfg.App.Name,
			"version": cfg.App.Version,
		})
	})
	r.GET("/metrics", gin.WrapH(metrics.MetricsHandler()))

	api := r.Group("/api/v1")
	{
		patients := api.Group("/patients")
		{
			patients.POST("", recordHandler.CreatePatient)
			patients.GET("", recordHandler.ListPatients)
			patients.GET("/:id", recordHandler.GetPatient)

			patients.POST("/:id/assessments", recordHandler.CreateAssessment)
			patients.GET("/:id/assessments", recordHandler.ListAssessments)
			patients.POST("/:id/referrals", recordHandler.CreateReferral)
			patients.GET("/:id/referrals", recordHandler.ListReferrals)
			patients.POST("/:id/family-input", recordHandler.CreateFamilyInput)

			patients.GET("/:id/profile", profileHandler.GetProfile)
			patients.GET("/:id/profile/sources", profileHandler.GetSources)
			patients.POST("/:id/profile/invalidate", profileHandler.InvalidateProfile)

			patients.GET("/:id/axes", scenarioHandler.GetAxes)
			patients.POST("/:id/scenarios", scenarioHandler.GenerateScenarios)
		}

		api.POST("/scenarios/compare", scenarioHandler.CompareScenarios)
	}

	return r
}

const requestIDHeader = "X-Request-ID"

// requestID propagates the caller's request id or mints one, and echoes it
// on the response.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set(requestIDHeader, id)
		c.Next()
	}
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.String("request_id", c.GetString("request_id")),
		)
	}
}

func requestMetrics(collector *metrics.Collector) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		collector.InFlightGauge.Inc()
		c.Next()
		collector.InFlightGauge.Dec()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		collector.RequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		collector.RequestDuration.WithLabelValues(c.Request.Method, path, status).
			Observe(time.Since(start).Seconds())
	}
}
