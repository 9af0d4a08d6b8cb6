package memory

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mamadbah2/feedlot/internal/domain/models"
)

// ErrConflict indicates the mutation would break a uniqueness constraint.
var ErrConflict = errors.New("conflict")

// recentSampleLimit caps how many device samples a unit keeps.
const recentSampleLimit = 10

// UnitStore holds the feeding-unit registry. Units live independently of
// pens: deleting or unlinking a unit never touches the pen it fed.
type UnitStore struct {
	mu    sync.RWMutex
	units []models.FeedingUnit
	pens  *PenStore
}

// NewUnitStore creates an empty registry backed by the given pen store.
func NewUnitStore(pens *PenStore) *UnitStore {
	return &UnitStore{pens: pens}
}

// UnitInput carries the caller-supplied fields for a feeding unit.
type UnitInput struct {
	Name       string
	PenID      string
	WebhookURL string
	DeviceID   string
}

// Snapshot returns the current unit collection; same copy-on-write
// convention as PenStore.Snapshot.
func (s *UnitStore) Snapshot() []models.FeedingUnit {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.units
}

// GetUnit returns one unit by id.
func (s *UnitStore) GetUnit(id string) (models.FeedingUnit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, unit := range s.units {
		if unit.ID == id {
			return unit, nil
		}
	}
	return models.FeedingUnit{}, fmt.Errorf("unit %s: %w", id, ErrNotFound)
}

// GetUnitByDevice returns the unit registered for the given device id.
func (s *UnitStore) GetUnitByDevice(deviceID string) (models.FeedingUnit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, unit := range s.units {
		if unit.DeviceID == deviceID {
			return unit, nil
		}
	}
	return models.FeedingUnit{}, fmt.Errorf("device %s: %w", deviceID, ErrNotFound)
}

// CreateUnit registers a new feeding unit, optionally linked to a pen.
func (s *UnitStore) CreateUnit(input UnitInput) (models.FeedingUnit, error) {
	if err := validateUnitInput(input); err != nil {
		return models.FeedingUnit{}, err
	}
	unit := models.FeedingUnit{
		ID:         uuid.NewString(),
		Name:       input.Name,
		WebhookURL: input.WebhookURL,
		DeviceID:   input.DeviceID,
		RecentData: []models.FeedDataSample{},
	}
	if input.PenID != "" {
		pen, err := s.pens.GetPen(input.PenID)
		if err != nil {
			return models.FeedingUnit{}, err
		}
		unit.PenID = pen.ID
		unit.PenName = pen.Name
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if unit.PenID != "" {
		if err := s.checkPenFree(unit.PenID, ""); err != nil {
			return models.FeedingUnit{}, err
		}
	}
	next := cloneUnits(s.units)
	next = append(next, unit)
	s.units = next
	return unit, nil
}

// UpdateUnit replaces the unit's editable fields.
func (s *UnitStore) UpdateUnit(id string, input UnitInput) (models.FeedingUnit, error) {
	if err := validateUnitInput(input); err != nil {
		return models.FeedingUnit{}, err
	}
	var penName string
	if input.PenID != "" {
		pen, err := s.pens.GetPen(input.PenID)
		if err != nil {
			return models.FeedingUnit{}, err
		}
		penName = pen.Name
	}
	return s.mutateUnit(id, func(unit *models.FeedingUnit) error {
		if input.PenID != "" {
			if err := s.checkPenFree(input.PenID, unit.ID); err != nil {
				return err
			}
		}
		unit.Name = input.Name
		unit.WebhookURL = input.WebhookURL
		unit.DeviceID = input.DeviceID
		unit.PenID = input.PenID
		unit.PenName = penName
		return nil
	})
}

// DeleteUnit removes the unit from the registry.
func (s *UnitStore) DeleteUnit(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, unit := range s.units {
		if unit.ID != id {
			continue
		}
		next := make([]models.FeedingUnit, 0, len(s.units)-1)
		next = append(next, s.units[:i]...)
		next = append(next, s.units[i+1:]...)
		s.units = next
		return nil
	}
	return fmt.Errorf("unit %s: %w", id, ErrNotFound)
}

// LinkUnit attaches the unit to a pen. A pen carries at most one unit.
func (s *UnitStore) LinkUnit(id, penID string) (models.FeedingUnit, error) {
	pen, err := s.pens.GetPen(penID)
	if err != nil {
		return models.FeedingUnit{}, err
	}
	return s.mutateUnit(id, func(unit *models.FeedingUnit) error {
		if err := s.checkPenFree(penID, unit.ID); err != nil {
			return err
		}
		unit.PenID = pen.ID
		unit.PenName = pen.Name
		return nil
	})
}

// UnlinkUnit detaches the unit from its pen.
func (s *UnitStore) UnlinkUnit(id string) (models.FeedingUnit, error) {
	return s.mutateUnit(id, func(unit *models.FeedingUnit) error {
		unit.PenID = ""
		unit.PenName = ""
		return nil
	})
}

// SetConnected toggles the unit's connection flag. Connecting stamps the
// last-update time; disconnecting clears it.
func (s *UnitStore) SetConnected(id string, connected bool) (models.FeedingUnit, error) {
	return s.mutateUnit(id, func(unit *models.FeedingUnit) error {
		unit.Connected = connected
		if connected {
			now := time.Now().UTC()
			unit.LastUpdate = &now
		} else {
			unit.LastUpdate = nil
		}
		return nil
	})
}

// RecordFeedSample stores the sample on the unit (newest first, bounded) and,
// when the unit is connected and linked, appends the matching feed record to
// the pen.
func (s *UnitStore) RecordFeedSample(id string, sample models.FeedDataSample) (models.FeedingUnit, error) {
	if sample.FeedAmount < 0 || sample.Cost < 0 {
		return models.FeedingUnit{}, fmt.Errorf("sample amount and cost must not be negative: %w", ErrInvalid)
	}
	unit, err := s.mutateUnit(id, func(unit *models.FeedingUnit) error {
		sample.UnitID = unit.ID
		sample.PenID = unit.PenID
		unit.RecentData = append([]models.FeedDataSample{sample}, unit.RecentData...)
		if len(unit.RecentData) > recentSampleLimit {
			unit.RecentData = unit.RecentData[:recentSampleLimit]
		}
		stamp := sample.Timestamp
		unit.LastUpdate = &stamp
		return nil
	})
	if err != nil {
		return models.FeedingUnit{}, err
	}

	if unit.Connected && unit.PenID != "" {
		if _, err := s.pens.AppendFeedRecord(unit.PenID, AppendFeedInput{
			Date:     sample.Timestamp,
			FeedType: sample.FeedType,
			Amount:   sample.FeedAmount,
			Cost:     sample.Cost,
			Source:   models.FeedSourceDevice,
			UnitID:   unit.ID,
		}); err != nil {
			return models.FeedingUnit{}, fmt.Errorf("append feed record for pen %s: %w", unit.PenID, err)
		}
	}
	return unit, nil
}

func (s *UnitStore) mutateUnit(id string, fn func(*models.FeedingUnit) error) (models.FeedingUnit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.units {
		if s.units[i].ID != id {
			continue
		}
		next := cloneUnits(s.units)
		if err := fn(&next[i]); err != nil {
			return models.FeedingUnit{}, err
		}
		s.units = next
		return next[i], nil
	}
	return models.FeedingUnit{}, fmt.Errorf("unit %s: %w", id, ErrNotFound)
}

// checkPenFree must be called with the lock held.
func (s *UnitStore) checkPenFree(penID, exceptUnitID string) error {
	for _, other := range s.units {
		if other.PenID == penID && other.ID != exceptUnitID {
			return fmt.Errorf("pen %s already has unit %s: %w", penID, other.ID, ErrConflict)
		}
	}
	return nil
}

func validateUnitInput(input UnitInput) error {
	switch {
	case input.Name == "":
		return fmt.Errorf("unit name must not be empty: %w", ErrInvalid)
	case input.WebhookURL == "":
		return fmt.Errorf("webhook url must not be empty: %w", ErrInvalid)
	case input.DeviceID == "":
		return fmt.Errorf("device id must not be empty: %w", ErrInvalid)
	}
	return nil
}

func cloneUnits(units []models.FeedingUnit) []models.FeedingUnit {
	next := make([]models.FeedingUnit, len(units))
	for i, unit := range units {
		clone := unit
		clone.RecentData = append([]models.FeedDataSample(nil), unit.RecentData...)
		if unit.LastUpdate != nil {
			stamp := *unit.LastUpdate
			clone.LastUpdate = &stamp
		}
		next[i] = clone
	}
	return next
}
