package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/feedlot/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares.
func New(penHandler *handlers.PenHandler, metricsHandler *handlers.MetricsHandler, unitHandler *handlers.UnitHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/pens", penHandler.List)
	r.POST("/pens", penHandler.Create)
	r.GET("/pens/:id", penHandler.Get)
	r.PUT("/pens/:id", penHandler.Update)
	r.DELETE("/pens/:id", penHandler.Delete)
	r.POST("/pens/:id/weights", penHandler.AddWeight)
	r.POST("/pens/:id/feeds", penHandler.AddFeed)
	r.POST("/pens/:id/costs", penHandler.AddCost)
	r.POST("/pens/:id/supplements", penHandler.AddSupplement)
	r.GET("/pens/:id/fco", penHandler.FCO)
	r.GET("/pens/:id/costs/breakdown", penHandler.CostBreakdown)

	r.GET("/metrics/fco", metricsHandler.FleetFCO)
	r.GET("/metrics/dashboard", metricsHandler.Dashboard)

	r.GET("/units", unitHandler.List)
	r.POST("/units", unitHandler.Create)
	r.PUT("/units/:id", unitHandler.Update)
	r.DELETE("/units/:id", unitHandler.Delete)
	r.POST("/units/:id/link", unitHandler.Link)
	r.POST("/units/:id/unlink", unitHandler.Unlink)
	r.POST("/units/:id/connection", unitHandler.Connection)
	r.POST("/webhook/feed", unitHandler.IngestFeedSample)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
