package memory

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mamadbah2/feedlot/internal/domain/models"
)

// ErrNotFound indicates the requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrInvalid indicates the mutation was rejected by validation.
var ErrInvalid = errors.New("invalid input")

// PenStore holds the pen collection in memory. Every mutation builds a new
// snapshot and swaps it in under the lock, so a slice handed out by Snapshot
// is never modified afterwards and readers cannot observe a half-applied
// change.
type PenStore struct {
	mu   sync.RWMutex
	pens []models.Pen
	now  func() time.Time
}

// NewPenStore creates an empty store.
func NewPenStore() *PenStore {
	return &PenStore{now: time.Now}
}

// CreatePenInput carries the caller-supplied fields for a new pen.
type CreatePenInput struct {
	Name                   string
	StartDate              time.Time
	FinishDate             *time.Time
	AnimalCount            int
	EntryWeightPerAnimal   float64
	CurrentWeightPerAnimal float64
	TargetWeightPerAnimal  *float64
	Breed                  string
	Status                 models.PenStatus
}

// UpdatePenInput carries a partial update; nil fields are left untouched.
// The current weight is deliberately absent: it only moves through
// AppendWeightRecord, so the scalar can never diverge from the weight history.
type UpdatePenInput struct {
	Name                  *string
	StartDate             *time.Time
	FinishDate            *time.Time
	ClearFinishDate       bool
	AnimalCount           *int
	EntryWeightPerAnimal  *float64
	TargetWeightPerAnimal *float64
	Breed                 *string
	Status                *models.PenStatus
}

// AppendWeightInput carries a new weighing for a pen.
type AppendWeightInput struct {
	Date            time.Time
	WeightPerAnimal float64
	Notes           string
	Source          models.WeightSource
}

// AppendFeedInput carries a new feed delivery for a pen.
type AppendFeedInput struct {
	Date     time.Time
	FeedType string
	Amount   float64
	Cost     float64
	Source   models.FeedSource
	UnitID   string
}

// AppendCostInput carries a new ledger entry for a pen.
type AppendCostInput struct {
	Date        time.Time
	Type        models.CostType
	Description string
	Amount      float64
}

// AppendSupplementInput carries a new supplement purchase for a pen.
type AppendSupplementInput struct {
	Date           time.Time
	SupplementName string
	CostPerAnimal  float64
	Dosage         string
	Frequency      string
	Notes          string
	Category       models.SupplementCategory
}

// Snapshot returns the current pen collection. The returned slice is
// immutable by convention: mutations replace it instead of editing it.
func (s *PenStore) Snapshot() []models.Pen {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pens
}

// GetPen returns one pen by id.
func (s *PenStore) GetPen(id string) (models.Pen, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, pen := range s.pens {
		if pen.ID == id {
			return pen, nil
		}
	}
	return models.Pen{}, fmt.Errorf("pen %s: %w", id, ErrNotFound)
}

// CreatePen validates the input, assigns an id and seeds the weight history
// with one record taken from the pen's current weight.
func (s *PenStore) CreatePen(input CreatePenInput) (models.Pen, error) {
	pen := models.Pen{
		ID:                     uuid.NewString(),
		Name:                   input.Name,
		StartDate:              input.StartDate,
		FinishDate:             input.FinishDate,
		AnimalCount:            input.AnimalCount,
		EntryWeightPerAnimal:   input.EntryWeightPerAnimal,
		CurrentWeightPerAnimal: input.CurrentWeightPerAnimal,
		TargetWeightPerAnimal:  input.TargetWeightPerAnimal,
		Breed:                  input.Breed,
		Status:                 input.Status,
		FeedRecords:            []models.FeedRecord{},
		CostRecords:            []models.CostRecord{},
		SupplementCosts:        []models.SupplementCost{},
	}
	if err := validatePen(pen); err != nil {
		return models.Pen{}, err
	}

	pen.WeightRecords = []models.WeightRecord{{
		ID:              uuid.NewString(),
		PenID:           pen.ID,
		Date:            s.now().UTC().Truncate(24 * time.Hour),
		WeightPerAnimal: pen.CurrentWeightPerAnimal,
		TotalWeight:     pen.CurrentWeightPerAnimal * float64(pen.AnimalCount),
		Notes:           "Initial weight entry",
		Source:          models.WeightSourceManual,
	}}

	s.mu.Lock()
	defer s.mu.Unlock()
	next := clonePens(s.pens)
	next = append(next, pen)
	s.pens = next
	return pen, nil
}

// UpdatePen applies a partial update to the pen's scalar fields.
func (s *PenStore) UpdatePen(id string, input UpdatePenInput) (models.Pen, error) {
	return s.mutatePen(id, func(pen *models.Pen) error {
		if input.Name != nil {
			pen.Name = *input.Name
		}
		if input.StartDate != nil {
			pen.StartDate = *input.StartDate
		}
		if input.ClearFinishDate {
			pen.FinishDate = nil
		} else if input.FinishDate != nil {
			finish := *input.FinishDate
			pen.FinishDate = &finish
		}
		if input.AnimalCount != nil {
			pen.AnimalCount = *input.AnimalCount
		}
		if input.EntryWeightPerAnimal != nil {
			pen.EntryWeightPerAnimal = *input.EntryWeightPerAnimal
		}
		if input.TargetWeightPerAnimal != nil {
			target := *input.TargetWeightPerAnimal
			pen.TargetWeightPerAnimal = &target
		}
		if input.Breed != nil {
			pen.Breed = *input.Breed
		}
		if input.Status != nil {
			pen.Status = *input.Status
		}
		return validatePen(*pen)
	})
}

// DeletePen removes the pen and all of its sub-records.
func (s *PenStore) DeletePen(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, pen := range s.pens {
		if pen.ID != id {
			continue
		}
		next := make([]models.Pen, 0, len(s.pens)-1)
		next = append(next, s.pens[:i]...)
		next = append(next, s.pens[i+1:]...)
		s.pens = next
		return nil
	}
	return fmt.Errorf("pen %s: %w", id, ErrNotFound)
}

// AppendWeightRecord stores a new weighing and keeps the history date-ordered
// (stable on equal dates). The pen's current weight always follows the latest
// record, so a backdated weighing never rolls it back.
func (s *PenStore) AppendWeightRecord(penID string, input AppendWeightInput) (models.Pen, error) {
	if input.WeightPerAnimal < 0 {
		return models.Pen{}, fmt.Errorf("weight per animal must not be negative: %w", ErrInvalid)
	}
	if !input.Source.Valid() {
		return models.Pen{}, fmt.Errorf("unknown weight source %q: %w", input.Source, ErrInvalid)
	}
	return s.mutatePen(penID, func(pen *models.Pen) error {
		record := models.WeightRecord{
			ID:              uuid.NewString(),
			PenID:           pen.ID,
			Date:            input.Date,
			WeightPerAnimal: input.WeightPerAnimal,
			TotalWeight:     input.WeightPerAnimal * float64(pen.AnimalCount),
			Notes:           input.Notes,
			Source:          input.Source,
		}
		pen.WeightRecords = append(pen.WeightRecords, record)
		sort.SliceStable(pen.WeightRecords, func(i, j int) bool {
			return pen.WeightRecords[i].Date.Before(pen.WeightRecords[j].Date)
		})
		pen.CurrentWeightPerAnimal = pen.WeightRecords[len(pen.WeightRecords)-1].WeightPerAnimal
		return nil
	})
}

// AppendFeedRecord stores a new feed delivery.
func (s *PenStore) AppendFeedRecord(penID string, input AppendFeedInput) (models.Pen, error) {
	if input.Amount < 0 || input.Cost < 0 {
		return models.Pen{}, fmt.Errorf("feed amount and cost must not be negative: %w", ErrInvalid)
	}
	if !input.Source.Valid() {
		return models.Pen{}, fmt.Errorf("unknown feed source %q: %w", input.Source, ErrInvalid)
	}
	return s.mutatePen(penID, func(pen *models.Pen) error {
		pen.FeedRecords = append(pen.FeedRecords, models.FeedRecord{
			ID:       uuid.NewString(),
			PenID:    pen.ID,
			Date:     input.Date,
			FeedType: input.FeedType,
			Amount:   input.Amount,
			Cost:     input.Cost,
			Source:   input.Source,
			UnitID:   input.UnitID,
		})
		return nil
	})
}

// AppendCostRecord stores a new ledger entry.
func (s *PenStore) AppendCostRecord(penID string, input AppendCostInput) (models.Pen, error) {
	if input.Amount < 0 {
		return models.Pen{}, fmt.Errorf("cost amount must not be negative: %w", ErrInvalid)
	}
	if !input.Type.Valid() {
		return models.Pen{}, fmt.Errorf("unknown cost type %q: %w", input.Type, ErrInvalid)
	}
	return s.mutatePen(penID, func(pen *models.Pen) error {
		pen.CostRecords = append(pen.CostRecords, models.CostRecord{
			ID:          uuid.NewString(),
			PenID:       pen.ID,
			Date:        input.Date,
			Type:        input.Type,
			Description: input.Description,
			Amount:      input.Amount,
		})
		return nil
	})
}

// AppendSupplementCost stores a supplement purchase and, in the same
// snapshot swap, the matching supplement ledger entry. The two collections
// can never be observed out of step.
func (s *PenStore) AppendSupplementCost(penID string, input AppendSupplementInput) (models.Pen, error) {
	if input.CostPerAnimal < 0 {
		return models.Pen{}, fmt.Errorf("cost per animal must not be negative: %w", ErrInvalid)
	}
	if !input.Category.Valid() {
		return models.Pen{}, fmt.Errorf("unknown supplement category %q: %w", input.Category, ErrInvalid)
	}
	return s.mutatePen(penID, func(pen *models.Pen) error {
		supplement := models.SupplementCost{
			ID:             uuid.NewString(),
			PenID:          pen.ID,
			Date:           input.Date,
			SupplementName: input.SupplementName,
			CostPerAnimal:  input.CostPerAnimal,
			TotalCost:      input.CostPerAnimal * float64(pen.AnimalCount),
			Dosage:         input.Dosage,
			Frequency:      input.Frequency,
			Notes:          input.Notes,
			Category:       input.Category,
		}
		pen.SupplementCosts = append(pen.SupplementCosts, supplement)
		pen.CostRecords = append(pen.CostRecords, models.CostRecord{
			ID:          uuid.NewString(),
			PenID:       pen.ID,
			Date:        input.Date,
			Type:        models.CostTypeSupplement,
			Description: input.SupplementName,
			Amount:      supplement.TotalCost,
		})
		return nil
	})
}

// mutatePen clones the collection, applies fn to the matching pen within the
// clone and swaps the clone in when fn succeeds.
func (s *PenStore) mutatePen(id string, fn func(*models.Pen) error) (models.Pen, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.pens {
		if s.pens[i].ID != id {
			continue
		}
		next := clonePens(s.pens)
		if err := fn(&next[i]); err != nil {
			return models.Pen{}, err
		}
		s.pens = next
		return next[i], nil
	}
	return models.Pen{}, fmt.Errorf("pen %s: %w", id, ErrNotFound)
}

func validatePen(pen models.Pen) error {
	switch {
	case pen.Name == "":
		return fmt.Errorf("pen name must not be empty: %w", ErrInvalid)
	case pen.AnimalCount < 0:
		return fmt.Errorf("animal count must not be negative: %w", ErrInvalid)
	case pen.EntryWeightPerAnimal < 0:
		return fmt.Errorf("entry weight must not be negative: %w", ErrInvalid)
	case pen.CurrentWeightPerAnimal < 0:
		return fmt.Errorf("current weight must not be negative: %w", ErrInvalid)
	case pen.StartDate.IsZero():
		return fmt.Errorf("start date must be set: %w", ErrInvalid)
	case !pen.Status.Valid():
		return fmt.Errorf("unknown pen status %q: %w", pen.Status, ErrInvalid)
	}
	if pen.TargetWeightPerAnimal != nil && *pen.TargetWeightPerAnimal < 0 {
		return fmt.Errorf("target weight must not be negative: %w", ErrInvalid)
	}
	if pen.FinishDate != nil && pen.FinishDate.Before(pen.StartDate) {
		return fmt.Errorf("finish date must not precede start date: %w", ErrInvalid)
	}
	return nil
}

// clonePens copies the collection deeply enough that no slice in the old
// snapshot is shared with the new one.
func clonePens(pens []models.Pen) []models.Pen {
	next := make([]models.Pen, len(pens))
	for i, pen := range pens {
		next[i] = clonePen(pen)
	}
	return next
}

func clonePen(pen models.Pen) models.Pen {
	clone := pen
	clone.FeedRecords = append([]models.FeedRecord(nil), pen.FeedRecords...)
	clone.CostRecords = append([]models.CostRecord(nil), pen.CostRecords...)
	clone.WeightRecords = append([]models.WeightRecord(nil), pen.WeightRecords...)
	clone.SupplementCosts = append([]models.SupplementCost(nil), pen.SupplementCosts...)
	if pen.FinishDate != nil {
		finish := *pen.FinishDate
		clone.FinishDate = &finish
	}
	if pen.TargetWeightPerAnimal != nil {
		target := *pen.TargetWeightPerAnimal
		clone.TargetWeightPerAnimal = &target
	}
	return clone
}
