package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/feedlot/internal/domain/models"
	"github.com/mamadbah2/feedlot/internal/repository/memory"
	"github.com/mamadbah2/feedlot/internal/service/pens"
)

// PenHandler handles pen CRUD and the per-pen derived metric views.
type PenHandler struct {
	svc    *pens.Service
	logger *zap.Logger
}

// NewPenHandler constructs the HTTP handler adapter.
func NewPenHandler(svc *pens.Service, logger *zap.Logger) *PenHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PenHandler{svc: svc, logger: logger}
}

type createPenRequest struct {
	Name                   string   `json:"name" binding:"required"`
	StartDate              string   `json:"startDate" binding:"required"`
	FinishDate             string   `json:"finishDate"`
	AnimalCount            int      `json:"animalCount"`
	EntryWeightPerAnimal   float64  `json:"entryWeightPerAnimal"`
	CurrentWeightPerAnimal float64  `json:"currentWeightPerAnimal"`
	TargetWeightPerAnimal  *float64 `json:"targetWeightPerAnimal"`
	Breed                  string   `json:"breed"`
	Status                 string   `json:"status" binding:"required"`
}

type updatePenRequest struct {
	Name                  *string  `json:"name"`
	StartDate             *string  `json:"startDate"`
	FinishDate            *string  `json:"finishDate"`
	AnimalCount           *int     `json:"animalCount"`
	EntryWeightPerAnimal  *float64 `json:"entryWeightPerAnimal"`
	TargetWeightPerAnimal *float64 `json:"targetWeightPerAnimal"`
	Breed                 *string  `json:"breed"`
	Status                *string  `json:"status"`
}

type appendWeightRequest struct {
	Date            string  `json:"date" binding:"required"`
	WeightPerAnimal float64 `json:"weightPerAnimal"`
	Notes           string  `json:"notes"`
	Source          string  `json:"source" binding:"required"`
}

type appendFeedRequest struct {
	Date     string  `json:"date" binding:"required"`
	FeedType string  `json:"feedType" binding:"required"`
	Amount   float64 `json:"amount"`
	Cost     float64 `json:"cost"`
	Source   string  `json:"source" binding:"required"`
	UnitID   string  `json:"unitId"`
}

type appendCostRequest struct {
	Date        string  `json:"date" binding:"required"`
	Type        string  `json:"type" binding:"required"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

type appendSupplementRequest struct {
	Date           string  `json:"date" binding:"required"`
	SupplementName string  `json:"supplementName" binding:"required"`
	CostPerAnimal  float64 `json:"costPerAnimal"`
	Dosage         string  `json:"dosage"`
	Frequency      string  `json:"frequency"`
	Notes          string  `json:"notes"`
	Category       string  `json:"category" binding:"required"`
}

// List returns every pen in the current snapshot.
func (h *PenHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.ListPens())
}

// Get returns one pen.
func (h *PenHandler) Get(c *gin.Context) {
	pen, err := h.svc.GetPen(c.Param("id"))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, pen)
}

// Create registers a new pen.
func (h *PenHandler) Create(c *gin.Context) {
	var req createPenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create pen payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	start, err := parseDay(req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	finish, err := parseOptionalDay(req.FinishDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pen, err := h.svc.CreatePen(memory.CreatePenInput{
		Name:                   req.Name,
		StartDate:              start,
		FinishDate:             finish,
		AnimalCount:            req.AnimalCount,
		EntryWeightPerAnimal:   req.EntryWeightPerAnimal,
		CurrentWeightPerAnimal: req.CurrentWeightPerAnimal,
		TargetWeightPerAnimal:  req.TargetWeightPerAnimal,
		Breed:                  req.Breed,
		Status:                 models.PenStatus(req.Status),
	})
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, pen)
}

// Update applies a partial update to the pen's scalar fields.
func (h *PenHandler) Update(c *gin.Context) {
	var req updatePenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid update pen payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	input := memory.UpdatePenInput{
		Name:                  req.Name,
		AnimalCount:           req.AnimalCount,
		EntryWeightPerAnimal:  req.EntryWeightPerAnimal,
		TargetWeightPerAnimal: req.TargetWeightPerAnimal,
		Breed:                 req.Breed,
	}
	if req.StartDate != nil {
		start, err := parseDay(*req.StartDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		input.StartDate = &start
	}
	if req.FinishDate != nil {
		if *req.FinishDate == "" {
			input.ClearFinishDate = true
		} else {
			finish, err := parseDay(*req.FinishDate)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			input.FinishDate = &finish
		}
	}
	if req.Status != nil {
		status := models.PenStatus(*req.Status)
		input.Status = &status
	}

	pen, err := h.svc.UpdatePen(c.Param("id"), input)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, pen)
}

// Delete removes the pen and everything it owns.
func (h *PenHandler) Delete(c *gin.Context) {
	if err := h.svc.DeletePen(c.Param("id")); err != nil {
		respondStoreError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddWeight appends a weighing to the pen.
func (h *PenHandler) AddWeight(c *gin.Context) {
	var req appendWeightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid weight payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	date, err := parseDay(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pen, err := h.svc.AddWeightRecord(c.Param("id"), memory.AppendWeightInput{
		Date:            date,
		WeightPerAnimal: req.WeightPerAnimal,
		Notes:           req.Notes,
		Source:          models.WeightSource(req.Source),
	})
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, pen)
}

// AddFeed appends a feed delivery to the pen.
func (h *PenHandler) AddFeed(c *gin.Context) {
	var req appendFeedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid feed payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	date, err := parseDay(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pen, err := h.svc.AddFeedRecord(c.Param("id"), memory.AppendFeedInput{
		Date:     date,
		FeedType: req.FeedType,
		Amount:   req.Amount,
		Cost:     req.Cost,
		Source:   models.FeedSource(req.Source),
		UnitID:   req.UnitID,
	})
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, pen)
}

// AddCost appends a ledger entry to the pen.
func (h *PenHandler) AddCost(c *gin.Context) {
	var req appendCostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid cost payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	date, err := parseDay(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pen, err := h.svc.AddCostRecord(c.Param("id"), memory.AppendCostInput{
		Date:        date,
		Type:        models.CostType(req.Type),
		Description: req.Description,
		Amount:      req.Amount,
	})
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, pen)
}

// AddSupplement appends a supplement purchase (and its ledger entry) to the
// pen.
func (h *PenHandler) AddSupplement(c *gin.Context) {
	var req appendSupplementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid supplement payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	date, err := parseDay(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pen, err := h.svc.AddSupplementCost(c.Param("id"), memory.AppendSupplementInput{
		Date:           date,
		SupplementName: req.SupplementName,
		CostPerAnimal:  req.CostPerAnimal,
		Dosage:         req.Dosage,
		Frequency:      req.Frequency,
		Notes:          req.Notes,
		Category:       models.SupplementCategory(req.Category),
	})
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, pen)
}

// FCO returns the derived efficiency snapshot for one pen.
func (h *PenHandler) FCO(c *gin.Context) {
	data, err := h.svc.PenFCO(c.Param("id"))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, data)
}

// CostBreakdown returns the categorized cost view for one pen.
func (h *PenHandler) CostBreakdown(c *gin.Context) {
	breakdown, err := h.svc.PenCostBreakdown(c.Param("id"))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, breakdown)
}
