package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/feedlot/internal/domain/models"
	"github.com/mamadbah2/feedlot/internal/repository/memory"
	"github.com/mamadbah2/feedlot/internal/service/units"
)

// UnitHandler handles the feeding-unit registry and the device feed webhook.
type UnitHandler struct {
	svc    *units.Service
	logger *zap.Logger
}

// NewUnitHandler constructs the HTTP handler adapter.
func NewUnitHandler(svc *units.Service, logger *zap.Logger) *UnitHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UnitHandler{svc: svc, logger: logger}
}

type unitRequest struct {
	Name       string `json:"name" binding:"required"`
	PenID      string `json:"penId"`
	WebhookURL string `json:"webhookUrl" binding:"required"`
	DeviceID   string `json:"deviceId" binding:"required"`
}

type linkRequest struct {
	PenID string `json:"penId" binding:"required"`
}

type connectionRequest struct {
	Connected *bool `json:"isConnected" binding:"required"`
}

type feedSampleRequest struct {
	DeviceID   string    `json:"deviceId" binding:"required"`
	Timestamp  time.Time `json:"timestamp" binding:"required"`
	FeedAmount float64   `json:"feedAmount"`
	FeedType   string    `json:"feedType" binding:"required"`
	Cost       float64   `json:"cost"`
}

// List returns every registered feeding unit.
func (h *UnitHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.ListUnits())
}

// Create registers a new feeding unit.
func (h *UnitHandler) Create(c *gin.Context) {
	var req unitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid unit payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	unit, err := h.svc.CreateUnit(memory.UnitInput{
		Name:       req.Name,
		PenID:      req.PenID,
		WebhookURL: req.WebhookURL,
		DeviceID:   req.DeviceID,
	})
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, unit)
}

// Update replaces the unit's editable fields.
func (h *UnitHandler) Update(c *gin.Context) {
	var req unitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid unit payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	unit, err := h.svc.UpdateUnit(c.Param("id"), memory.UnitInput{
		Name:       req.Name,
		PenID:      req.PenID,
		WebhookURL: req.WebhookURL,
		DeviceID:   req.DeviceID,
	})
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, unit)
}

// Delete removes the unit from the registry.
func (h *UnitHandler) Delete(c *gin.Context) {
	if err := h.svc.DeleteUnit(c.Param("id")); err != nil {
		respondStoreError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Link attaches the unit to a pen.
func (h *UnitHandler) Link(c *gin.Context) {
	var req linkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	unit, err := h.svc.LinkUnit(c.Param("id"), req.PenID)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, unit)
}

// Unlink detaches the unit from its pen.
func (h *UnitHandler) Unlink(c *gin.Context) {
	unit, err := h.svc.UnlinkUnit(c.Param("id"))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, unit)
}

// Connection toggles the unit's connected flag.
func (h *UnitHandler) Connection(c *gin.Context) {
	var req connectionRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Connected == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	unit, err := h.svc.SetConnected(c.Param("id"), *req.Connected)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, unit)
}

// IngestFeedSample receives a feed sample pushed by a feeder device.
func (h *UnitHandler) IngestFeedSample(c *gin.Context) {
	var req feedSampleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid feed sample payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	unit, err := h.svc.IngestDeviceSample(req.DeviceID, models.FeedDataSample{
		Timestamp:  req.Timestamp,
		FeedAmount: req.FeedAmount,
		FeedType:   req.FeedType,
		Cost:       req.Cost,
	})
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, unit)
}
