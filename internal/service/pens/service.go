// Package pens orchestrates the record store and the metrics engine behind
// the HTTP surface.
package pens

import (
	"go.uber.org/zap"

	"github.com/mamadbah2/feedlot/internal/domain/models"
	"github.com/mamadbah2/feedlot/internal/repository/memory"
	"github.com/mamadbah2/feedlot/internal/service/metrics"
)

// Service exposes pen CRUD and the derived metric views at the configured
// feed-cost valuation rate.
type Service struct {
	store         *memory.PenStore
	feedCostPerKg float64
	logger        *zap.Logger
}

// NewService wires a pen service over the given store.
func NewService(store *memory.PenStore, feedCostPerKg float64, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, feedCostPerKg: feedCostPerKg, logger: logger}
}

// FeedCostPerKg returns the valuation rate the service computes with.
func (s *Service) FeedCostPerKg() float64 { return s.feedCostPerKg }

// ListPens returns the current pen snapshot.
func (s *Service) ListPens() []models.Pen {
	return s.store.Snapshot()
}

// GetPen returns one pen by id.
func (s *Service) GetPen(id string) (models.Pen, error) {
	return s.store.GetPen(id)
}

// CreatePen registers a new pen with a seeded weight history.
func (s *Service) CreatePen(input memory.CreatePenInput) (models.Pen, error) {
	pen, err := s.store.CreatePen(input)
	if err != nil {
		return models.Pen{}, err
	}
	s.logger.Info("pen created",
		zap.String("pen_id", pen.ID),
		zap.String("name", pen.Name),
		zap.Int("animal_count", pen.AnimalCount))
	return pen, nil
}

// UpdatePen applies a partial update.
func (s *Service) UpdatePen(id string, input memory.UpdatePenInput) (models.Pen, error) {
	pen, err := s.store.UpdatePen(id, input)
	if err != nil {
		return models.Pen{}, err
	}
	s.logger.Info("pen updated", zap.String("pen_id", pen.ID))
	return pen, nil
}

// DeletePen removes the pen and its sub-records.
func (s *Service) DeletePen(id string) error {
	if err := s.store.DeletePen(id); err != nil {
		return err
	}
	s.logger.Info("pen deleted", zap.String("pen_id", id))
	return nil
}

// AddWeightRecord stores a weighing and syncs the pen's current weight.
func (s *Service) AddWeightRecord(penID string, input memory.AppendWeightInput) (models.Pen, error) {
	pen, err := s.store.AppendWeightRecord(penID, input)
	if err != nil {
		return models.Pen{}, err
	}
	s.logger.Debug("weight recorded",
		zap.String("pen_id", penID),
		zap.Float64("weight_per_animal", input.WeightPerAnimal))
	return pen, nil
}

// AddFeedRecord stores a feed delivery.
func (s *Service) AddFeedRecord(penID string, input memory.AppendFeedInput) (models.Pen, error) {
	pen, err := s.store.AppendFeedRecord(penID, input)
	if err != nil {
		return models.Pen{}, err
	}
	s.logger.Debug("feed recorded",
		zap.String("pen_id", penID),
		zap.Float64("amount_kg", input.Amount),
		zap.String("source", string(input.Source)))
	return pen, nil
}

// AddCostRecord stores a ledger entry.
func (s *Service) AddCostRecord(penID string, input memory.AppendCostInput) (models.Pen, error) {
	pen, err := s.store.AppendCostRecord(penID, input)
	if err != nil {
		return models.Pen{}, err
	}
	s.logger.Debug("cost recorded",
		zap.String("pen_id", penID),
		zap.String("type", string(input.Type)),
		zap.Float64("amount", input.Amount))
	return pen, nil
}

// AddSupplementCost stores a supplement purchase with its ledger entry.
func (s *Service) AddSupplementCost(penID string, input memory.AppendSupplementInput) (models.Pen, error) {
	pen, err := s.store.AppendSupplementCost(penID, input)
	if err != nil {
		return models.Pen{}, err
	}
	s.logger.Debug("supplement recorded",
		zap.String("pen_id", penID),
		zap.String("category", string(input.Category)))
	return pen, nil
}

// PenFCO derives the efficiency snapshot for one pen.
func (s *Service) PenFCO(id string) (models.FCOData, error) {
	pen, err := s.store.GetPen(id)
	if err != nil {
		return models.FCOData{}, err
	}
	return metrics.ComputeFCO(pen, s.feedCostPerKg), nil
}

// PenCostBreakdown derives the categorized cost view for one pen.
func (s *Service) PenCostBreakdown(id string) (models.PenCostBreakdown, error) {
	pen, err := s.store.GetPen(id)
	if err != nil {
		return models.PenCostBreakdown{}, err
	}
	return metrics.ComputeCostBreakdown(pen, s.feedCostPerKg), nil
}

// FleetFCO derives the efficiency snapshot for every pen.
func (s *Service) FleetFCO() []models.FCOData {
	return metrics.ComputeFCOData(s.store.Snapshot(), s.feedCostPerKg)
}

// DashboardStats derives the fleet aggregate from the current snapshot.
func (s *Service) DashboardStats() models.DashboardStats {
	pens := s.store.Snapshot()
	return metrics.ComputeDashboardStats(metrics.ComputeFCOData(pens, s.feedCostPerKg), pens)
}
