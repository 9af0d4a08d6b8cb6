package memory

import (
	"time"

	"github.com/google/uuid"

	"github.com/mamadbah2/feedlot/internal/domain/models"
)

// Seed loads the demo feedlot: four pens with feed, cost, weight and
// supplement history. Used by the server on first boot and by tests.
func (s *PenStore) Seed() []models.Pen {
	pens := samplePens()

	s.mu.Lock()
	defer s.mu.Unlock()
	next := clonePens(s.pens)
	next = append(next, pens...)
	s.pens = next
	return pens
}

// Seed registers two demo feeding units, linking the first to the first
// seeded pen.
func (s *UnitStore) Seed(pens []models.Pen) []models.FeedingUnit {
	now := time.Now().UTC()
	units := []models.FeedingUnit{
		{
			ID:         uuid.NewString(),
			Name:       "Feeding Unit 1",
			WebhookURL: "https://feeders.example.com/webhook/unit1",
			DeviceID:   "feeder-001",
			Connected:  true,
			LastUpdate: &now,
			RecentData: []models.FeedDataSample{},
		},
		{
			ID:         uuid.NewString(),
			Name:       "Feeding Unit 2",
			WebhookURL: "https://feeders.example.com/webhook/unit2",
			DeviceID:   "feeder-002",
			RecentData: []models.FeedDataSample{},
		},
	}
	if len(pens) > 0 {
		units[0].PenID = pens[0].ID
		units[0].PenName = pens[0].Name
	}
	if len(pens) > 1 {
		units[1].PenID = pens[1].ID
		units[1].PenName = pens[1].Name
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	next := cloneUnits(s.units)
	next = append(next, units...)
	s.units = next
	return units
}

func samplePens() []models.Pen {
	penA := models.Pen{
		ID:                     uuid.NewString(),
		Name:                   "Pen A-01",
		StartDate:              day("2025-01-02"),
		FinishDate:             dayPtr("2025-03-03"),
		AnimalCount:            100,
		EntryWeightPerAnimal:   33,
		CurrentWeightPerAnimal: 50,
		TargetWeightPerAnimal:  ptr(110.0),
		Breed:                  "Angus Cross",
		Status:                 models.PenStatusFinished,
	}
	penA.FeedRecords = []models.FeedRecord{
		feedRecord(penA.ID, "2025-03-03", "Mixed Feed", 2500, 3750, models.FeedSourceDevice),
	}
	penA.SupplementCosts = []models.SupplementCost{
		supplement(penA.ID, "2025-02-15", "Vitamin B Complex", 4.50, 450, "5ml", "Weekly", models.SupplementCategoryVitamin),
		supplement(penA.ID, "2025-02-20", "Mineral Mix", 2.25, 225, "50g", "Daily", models.SupplementCategoryMineral),
	}
	penA.CostRecords = []models.CostRecord{
		cost(penA.ID, "2025-03-03", models.CostTypeFeed, "Mixed Feed - Total Pen", 3750),
		cost(penA.ID, "2025-02-15", models.CostTypeSupplement, "Vitamin B Complex", 450),
		cost(penA.ID, "2025-02-20", models.CostTypeSupplement, "Mineral Mix", 225),
	}
	penA.WeightRecords = []models.WeightRecord{
		weight(penA.ID, "2025-01-02", 33, 3300, "Entry weight", models.WeightSourceManual),
		weight(penA.ID, "2025-02-01", 42, 4200, "Monthly weighing", models.WeightSourceScale),
		weight(penA.ID, "2025-03-03", 50, 5000, "Final weight", models.WeightSourceScale),
	}

	penB := models.Pen{
		ID:                     uuid.NewString(),
		Name:                   "Pen B-01",
		StartDate:              day("2025-01-15"),
		AnimalCount:            75,
		EntryWeightPerAnimal:   35,
		CurrentWeightPerAnimal: 65,
		TargetWeightPerAnimal:  ptr(115.0),
		Breed:                  "Holstein Cross",
		Status:                 models.PenStatusActive,
	}
	penB.FeedRecords = []models.FeedRecord{
		feedRecord(penB.ID, "2025-01-15", "Starter Feed", 1800, 2700, models.FeedSourceManual),
	}
	penB.SupplementCosts = []models.SupplementCost{
		supplement(penB.ID, "2025-01-20", "Probiotic Supplement", 4.00, 300, "10g", "Daily", models.SupplementCategoryProbiotic),
	}
	penB.CostRecords = []models.CostRecord{
		cost(penB.ID, "2025-01-15", models.CostTypeFeed, "Starter Feed - Total Pen", 2700),
		cost(penB.ID, "2025-01-20", models.CostTypeSupplement, "Probiotic Supplement", 300),
	}
	penB.WeightRecords = []models.WeightRecord{
		weight(penB.ID, "2025-01-15", 35, 2625, "Entry weight", models.WeightSourceManual),
		weight(penB.ID, "2025-01-30", 65, 4875, "Current weight - good progress", models.WeightSourceScale),
	}

	penC := models.Pen{
		ID:                     uuid.NewString(),
		Name:                   "Pen C-02",
		StartDate:              day("2024-12-20"),
		AnimalCount:            120,
		EntryWeightPerAnimal:   30,
		CurrentWeightPerAnimal: 75,
		TargetWeightPerAnimal:  ptr(120.0),
		Breed:                  "Charolais Cross",
		Status:                 models.PenStatusActive,
	}
	penC.FeedRecords = []models.FeedRecord{
		feedRecord(penC.ID, "2024-12-20", "Premium Feed", 3200, 5120, models.FeedSourceDevice),
	}
	penC.SupplementCosts = []models.SupplementCost{
		supplement(penC.ID, "2025-01-05", "Growth Promoter", 6.00, 720, "2ml", "Bi-weekly", models.SupplementCategoryGrowthPromoter),
		supplement(penC.ID, "2025-01-15", "Electrolyte Mix", 2.00, 240, "25g", "As needed", models.SupplementCategoryOther),
	}
	penC.CostRecords = []models.CostRecord{
		cost(penC.ID, "2024-12-20", models.CostTypeFeed, "Premium Feed - Total Pen", 5120),
		cost(penC.ID, "2025-01-05", models.CostTypeSupplement, "Growth Promoter", 720),
		cost(penC.ID, "2025-01-15", models.CostTypeSupplement, "Electrolyte Mix", 240),
	}
	penC.WeightRecords = []models.WeightRecord{
		weight(penC.ID, "2024-12-20", 30, 3600, "Entry weight", models.WeightSourceManual),
		weight(penC.ID, "2025-01-10", 55, 6600, "Mid-period weighing", models.WeightSourceScale),
		weight(penC.ID, "2025-01-25", 75, 9000, "Latest weighing - excellent gains", models.WeightSourceScale),
	}

	penD := models.Pen{
		ID:                     uuid.NewString(),
		Name:                   "Pen D-03",
		StartDate:              day("2025-01-10"),
		AnimalCount:            90,
		EntryWeightPerAnimal:   32,
		CurrentWeightPerAnimal: 45,
		TargetWeightPerAnimal:  ptr(105.0),
		Breed:                  "Hereford Cross",
		Status:                 models.PenStatusActive,
	}
	penD.FeedRecords = []models.FeedRecord{
		feedRecord(penD.ID, "2025-01-10", "Standard Feed", 1350, 2025, models.FeedSourceDevice),
	}
	penD.SupplementCosts = []models.SupplementCost{
		supplement(penD.ID, "2025-01-25", "Mineral Supplement", 2.00, 180, "30g", "Daily", models.SupplementCategoryMineral),
	}
	penD.CostRecords = []models.CostRecord{
		cost(penD.ID, "2025-01-10", models.CostTypeFeed, "Standard Feed - Total Pen", 2025),
		cost(penD.ID, "2025-01-25", models.CostTypeSupplement, "Mineral Supplement", 180),
	}
	penD.WeightRecords = []models.WeightRecord{
		weight(penD.ID, "2025-01-10", 32, 2880, "Entry weight", models.WeightSourceManual),
		weight(penD.ID, "2025-01-25", 45, 4050, "Current weight", models.WeightSourceScale),
	}

	return []models.Pen{penA, penB, penC, penD}
}

func day(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

func dayPtr(value string) *time.Time {
	t := day(value)
	return &t
}

func ptr(v float64) *float64 { return &v }

func feedRecord(penID, date, feedType string, amount, costValue float64, source models.FeedSource) models.FeedRecord {
	return models.FeedRecord{
		ID:       uuid.NewString(),
		PenID:    penID,
		Date:     day(date),
		FeedType: feedType,
		Amount:   amount,
		Cost:     costValue,
		Source:   source,
	}
}

func cost(penID, date string, costType models.CostType, description string, amount float64) models.CostRecord {
	return models.CostRecord{
		ID:          uuid.NewString(),
		PenID:       penID,
		Date:        day(date),
		Type:        costType,
		Description: description,
		Amount:      amount,
	}
}

func weight(penID, date string, perAnimal, total float64, notes string, source models.WeightSource) models.WeightRecord {
	return models.WeightRecord{
		ID:              uuid.NewString(),
		PenID:           penID,
		Date:            day(date),
		WeightPerAnimal: perAnimal,
		TotalWeight:     total,
		Notes:           notes,
		Source:          source,
	}
}

func supplement(penID, date, name string, perAnimal, total float64, dosage, frequency string, category models.SupplementCategory) models.SupplementCost {
	return models.SupplementCost{
		ID:             uuid.NewString(),
		PenID:          penID,
		Date:           day(date),
		SupplementName: name,
		CostPerAnimal:  perAnimal,
		TotalCost:      total,
		Dosage:         dosage,
		Frequency:      frequency,
		Category:       category,
	}
}
