package api

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/tweet-discussion-api/internal/metrics"
	"github.com/tweet-discussion-api/internal/models"
	"github.com/tweet-discussion-api/internal/service"
)

// APIPrefix is the versioned root of every resource route
const APIPrefix = "/api/v1.0"

// HealthChecker reports whether the service's storage is reachable
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// statsProvider is implemented by relational storage
type statsProvider interface {
	Stats() sql.DBStats
}

// NewPublisherRouter serves creators, tweets, stickers and comments
func NewPublisherRouter(services *service.Services, health HealthChecker, m *metrics.Metrics, log zerolog.Logger) *gin.Engine {
	router := newEngine("publisher", health, m, log)

	v1 := router.Group(APIPrefix)
	newResourceHandler[models.CreatorDTO](services.Creator, "creator", log).register(v1.Group("/creators"))
	newResourceHandler[models.TweetDTO](services.Tweet, "tweet", log).register(v1.Group("/tweets"))
	newResourceHandler[models.StickerDTO](services.Sticker, "sticker", log).register(v1.Group("/stickers"))
	newResourceHandler[models.CommentDTO](services.Comment, "comment", log).register(v1.Group("/comments"))

	return router
}

// NewDiscussionRouter serves the discussion service's comments
func NewDiscussionRouter(comments service.DiscussionService, health HealthChecker, m *metrics.Metrics, log zerolog.Logger) *gin.Engine {
	router := newEngine("discussion", health, m, log)

	v1 := router.Group(APIPrefix)
	newResourceHandler[models.DiscussionCommentDTO](comments, "comment", log).register(v1.Group("/comments"))

	return router
}

func newEngine(name string, health HealthChecker, m *metrics.Metrics, log zerolog.Logger) *gin.Engine {
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware. Recovery sits inside logging and metrics so a recovered
	// panic is still logged and counted as a 500.
	router.Use(requestIDMiddleware())
	router.Use(loggingMiddleware(log))
	router.Use(metricsMiddleware(m))
	router.Use(recoveryMiddleware(log))
	router.Use(corsMiddleware())

	router.NoRoute(func(c *gin.Context) {
		writeError(c, http.StatusNotFound, "Resource not found", nil)
	})

	router.GET("/health", healthCheck(name, health))
	if m != nil {
		router.GET("/metrics", gin.WrapH(m.Handler()))
	}

	return router
}

// healthCheck returns the health status
func healthCheck(name string, checker HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		body := gin.H{
			"status":    "healthy",
			"service":   name,
			"timestamp": time.Now().Format(time.RFC3339),
		}
		if stats, ok := checker.(statsProvider); ok {
			s := stats.Stats()
			body["database"] = gin.H{
				"open_connections": s.OpenConnections,
				"in_use":           s.InUse,
				"idle":             s.Idle,
			}
		}

		if err := checker.HealthCheck(ctx); err != nil {
			body["status"] = "unhealthy"
			body["error"] = err.Error()
			c.JSON(http.StatusServiceUnavailable, body)
			return
		}
		c.JSON(http.StatusOK, body)
	}
}
