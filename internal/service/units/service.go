// Package units manages the feeding-unit registry and routes device feed
// samples into the linked pens.
package units

import (
	"go.uber.org/zap"

	"github.com/mamadbah2/feedlot/internal/domain/models"
	"github.com/mamadbah2/feedlot/internal/repository/memory"
)

// Service exposes the feeding-unit operations used by the HTTP surface and
// the scheduler's poller.
type Service struct {
	store  *memory.UnitStore
	logger *zap.Logger
}

// NewService wires a unit service over the given registry.
func NewService(store *memory.UnitStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger}
}

// ListUnits returns the current unit snapshot.
func (s *Service) ListUnits() []models.FeedingUnit {
	return s.store.Snapshot()
}

// CreateUnit registers a new feeding unit.
func (s *Service) CreateUnit(input memory.UnitInput) (models.FeedingUnit, error) {
	unit, err := s.store.CreateUnit(input)
	if err != nil {
		return models.FeedingUnit{}, err
	}
	s.logger.Info("unit created", zap.String("unit_id", unit.ID), zap.String("device_id", unit.DeviceID))
	return unit, nil
}

// UpdateUnit replaces the unit's editable fields.
func (s *Service) UpdateUnit(id string, input memory.UnitInput) (models.FeedingUnit, error) {
	unit, err := s.store.UpdateUnit(id, input)
	if err != nil {
		return models.FeedingUnit{}, err
	}
	s.logger.Info("unit updated", zap.String("unit_id", unit.ID))
	return unit, nil
}

// DeleteUnit removes the unit; the pen it fed is untouched.
func (s *Service) DeleteUnit(id string) error {
	if err := s.store.DeleteUnit(id); err != nil {
		return err
	}
	s.logger.Info("unit deleted", zap.String("unit_id", id))
	return nil
}

// LinkUnit attaches the unit to a pen.
func (s *Service) LinkUnit(id, penID string) (models.FeedingUnit, error) {
	unit, err := s.store.LinkUnit(id, penID)
	if err != nil {
		return models.FeedingUnit{}, err
	}
	s.logger.Info("unit linked", zap.String("unit_id", id), zap.String("pen_id", penID))
	return unit, nil
}

// UnlinkUnit detaches the unit from its pen.
func (s *Service) UnlinkUnit(id string) (models.FeedingUnit, error) {
	unit, err := s.store.UnlinkUnit(id)
	if err != nil {
		return models.FeedingUnit{}, err
	}
	s.logger.Info("unit unlinked", zap.String("unit_id", id))
	return unit, nil
}

// SetConnected toggles the unit's connection flag.
func (s *Service) SetConnected(id string, connected bool) (models.FeedingUnit, error) {
	unit, err := s.store.SetConnected(id, connected)
	if err != nil {
		return models.FeedingUnit{}, err
	}
	s.logger.Info("unit connection toggled", zap.String("unit_id", id), zap.Bool("connected", connected))
	return unit, nil
}

// RecordSample stores a device sample against the unit and, when linked and
// connected, appends the matching feed record to the pen.
func (s *Service) RecordSample(unitID string, sample models.FeedDataSample) (models.FeedingUnit, error) {
	unit, err := s.store.RecordFeedSample(unitID, sample)
	if err != nil {
		return models.FeedingUnit{}, err
	}
	s.logger.Debug("feed sample recorded",
		zap.String("unit_id", unitID),
		zap.Float64("feed_amount", sample.FeedAmount),
		zap.String("pen_id", unit.PenID))
	return unit, nil
}

// IngestDeviceSample resolves the reporting device and records its sample.
// This is the webhook entry point.
func (s *Service) IngestDeviceSample(deviceID string, sample models.FeedDataSample) (models.FeedingUnit, error) {
	unit, err := s.store.GetUnitByDevice(deviceID)
	if err != nil {
		return models.FeedingUnit{}, err
	}
	return s.RecordSample(unit.ID, sample)
}
