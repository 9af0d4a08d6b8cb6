package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/feedlot/internal/service/pens"
)

// MetricsHandler serves the fleet-wide derived views.
type MetricsHandler struct {
	svc    *pens.Service
	logger *zap.Logger
}

// NewMetricsHandler constructs the HTTP handler adapter.
func NewMetricsHandler(svc *pens.Service, logger *zap.Logger) *MetricsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MetricsHandler{svc: svc, logger: logger}
}

// FleetFCO returns the efficiency snapshot for every pen.
func (h *MetricsHandler) FleetFCO(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.FleetFCO())
}

// Dashboard returns the fleet aggregate.
func (h *MetricsHandler) Dashboard(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.DashboardStats())
}
