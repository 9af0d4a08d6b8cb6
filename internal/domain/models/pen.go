package models

import "time"

// PenStatus describes where a pen is in its feeding cycle.
type PenStatus string

const (
	PenStatusActive   PenStatus = "active"
	PenStatusFinished PenStatus = "finished"
	PenStatusSold     PenStatus = "sold"
)

// Valid reports whether the status is one of the known values.
func (s PenStatus) Valid() bool {
	switch s {
	case PenStatusActive, PenStatusFinished, PenStatusSold:
		return true
	}
	return false
}

// WeightSource describes how a weight measurement was captured.
type WeightSource string

const (
	WeightSourceManual WeightSource = "manual"
	WeightSourceScale  WeightSource = "scale"
)

// Valid reports whether the source is one of the known values.
func (s WeightSource) Valid() bool {
	return s == WeightSourceManual || s == WeightSourceScale
}

// FeedSource describes how a feed delivery was recorded.
type FeedSource string

const (
	FeedSourceManual FeedSource = "manual"
	FeedSourceDevice FeedSource = "device-feed"
)

// Valid reports whether the source is one of the known values.
func (s FeedSource) Valid() bool {
	return s == FeedSourceManual || s == FeedSourceDevice
}

// CostType categorizes a cost entry.
type CostType string

const (
	CostTypeFeed       CostType = "feed"
	CostTypeMedical    CostType = "medical"
	CostTypeEquipment  CostType = "equipment"
	CostTypeSupplement CostType = "supplement"
	CostTypeOther      CostType = "other"
)

// Valid reports whether the cost type is one of the known values.
func (t CostType) Valid() bool {
	switch t {
	case CostTypeFeed, CostTypeMedical, CostTypeEquipment, CostTypeSupplement, CostTypeOther:
		return true
	}
	return false
}

// SupplementCategory groups supplements for the cost breakdown.
type SupplementCategory string

const (
	SupplementCategoryVitamin        SupplementCategory = "vitamin"
	SupplementCategoryMineral        SupplementCategory = "mineral"
	SupplementCategoryProbiotic      SupplementCategory = "probiotic"
	SupplementCategoryMedication     SupplementCategory = "medication"
	SupplementCategoryGrowthPromoter SupplementCategory = "growth-promoter"
	SupplementCategoryOther          SupplementCategory = "other"
)

// Valid reports whether the category is one of the known values.
func (c SupplementCategory) Valid() bool {
	switch c {
	case SupplementCategoryVitamin, SupplementCategoryMineral, SupplementCategoryProbiotic,
		SupplementCategoryMedication, SupplementCategoryGrowthPromoter, SupplementCategoryOther:
		return true
	}
	return false
}

// Pen is a group of animals managed as one unit for weight, feed and cost tracking.
// It owns its sub-record collections; deleting a pen discards all of them.
type Pen struct {
	ID                     string     `json:"id"`
	Name                   string     `json:"name"`
	StartDate              time.Time  `json:"startDate"`
	FinishDate             *time.Time `json:"finishDate,omitempty"`
	AnimalCount            int        `json:"animalCount"`
	EntryWeightPerAnimal   float64    `json:"entryWeightPerAnimal"`
	CurrentWeightPerAnimal float64    `json:"currentWeightPerAnimal"`
	TargetWeightPerAnimal  *float64   `json:"targetWeightPerAnimal,omitempty"`
	Breed                  string     `json:"breed,omitempty"`
	Status                 PenStatus  `json:"status"`

	FeedRecords     []FeedRecord     `json:"feedRecords"`
	CostRecords     []CostRecord     `json:"costRecords"`
	WeightRecords   []WeightRecord   `json:"weightRecords"`
	SupplementCosts []SupplementCost `json:"supplementCosts"`
}

// WeightRecord is one weighing of the pen. TotalWeight is fixed at creation
// from the pen's animal count at that time and is not recomputed later.
type WeightRecord struct {
	ID              string       `json:"id"`
	PenID           string       `json:"penId"`
	Date            time.Time    `json:"date"`
	WeightPerAnimal float64      `json:"weightPerAnimal"`
	TotalWeight     float64      `json:"totalWeight"`
	Notes           string       `json:"notes,omitempty"`
	Source          WeightSource `json:"source"`
}

// FeedRecord is one feed delivery. Amount is kilograms for the whole pen,
// not per animal.
type FeedRecord struct {
	ID       string     `json:"id"`
	PenID    string     `json:"penId"`
	Date     time.Time  `json:"date"`
	FeedType string     `json:"feedType"`
	Amount   float64    `json:"amount"`
	Cost     float64    `json:"cost"`
	Source   FeedSource `json:"source"`
	UnitID   string     `json:"unitId,omitempty"`
}

// CostRecord is one categorized expense against the pen.
type CostRecord struct {
	ID          string    `json:"id"`
	PenID       string    `json:"penId"`
	Date        time.Time `json:"date"`
	Type        CostType  `json:"type"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
}

// SupplementCost is one supplement purchase. TotalCost is fixed at creation
// as CostPerAnimal times the pen's animal count. Appending one also appends
// a matching supplement CostRecord, so the ledger view stays consistent.
type SupplementCost struct {
	ID             string             `json:"id"`
	PenID          string             `json:"penId"`
	Date           time.Time          `json:"date"`
	SupplementName string             `json:"supplementName"`
	CostPerAnimal  float64            `json:"costPerAnimal"`
	TotalCost      float64            `json:"totalCost"`
	Dosage         string             `json:"dosage,omitempty"`
	Frequency      string             `json:"frequency,omitempty"`
	Notes          string             `json:"notes,omitempty"`
	Category       SupplementCategory `json:"category"`
}
