package pens

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/feedlot/internal/domain/models"
	"github.com/mamadbah2/feedlot/internal/repository/memory"
)

func seededService(t *testing.T) (*Service, []models.Pen) {
	t.Helper()
	store := memory.NewPenStore()
	pens := store.Seed()
	return NewService(store, 1.5, nil), pens
}

func penByName(t *testing.T, pens []models.Pen, name string) models.Pen {
	t.Helper()
	for _, pen := range pens {
		if pen.Name == name {
			return pen
		}
	}
	t.Fatalf("pen %q not in fixture", name)
	return models.Pen{}
}

func TestPenFCOOnSeededFleet(t *testing.T) {
	svc, pens := seededService(t)
	penA := penByName(t, pens, "Pen A-01")

	fco, err := svc.PenFCO(penA.ID)
	require.NoError(t, err)

	// 100 animals gaining 33 -> 50 kg on 2500 kg of feed over 60 days.
	assert.InDelta(t, 1700, fco.TotalWeightGain, 1e-9)
	assert.InDelta(t, 2500.0/1700.0, fco.CurrentFCO, 1e-9)
	assert.InDelta(t, 1700.0/2500.0, fco.FeedEfficiency, 1e-9)
	assert.Equal(t, 60, fco.DaysOnFeed)
	assert.InDelta(t, 17.0/60.0, fco.DailyGainPerAnimal, 1e-9)

	// Feed is valued at the service rate, not the stored delivery cost:
	// 2500 kg * 1.5 + 675 of supplements.
	assert.InDelta(t, 4425, fco.TotalCost, 1e-9)
	assert.InDelta(t, 44.25, fco.CostPerAnimal, 1e-9)
	assert.InDelta(t, 675, fco.TotalSupplementCost, 1e-9)
}

func TestPenCostBreakdownOnSeededFleet(t *testing.T) {
	svc, pens := seededService(t)
	penA := penByName(t, pens, "Pen A-01")

	breakdown, err := svc.PenCostBreakdown(penA.ID)
	require.NoError(t, err)

	assert.InDelta(t, 3750, breakdown.FeedCosts, 1e-9)
	assert.InDelta(t, 675, breakdown.SupplementCosts, 1e-9)
	assert.Zero(t, breakdown.MedicalCosts)
	assert.InDelta(t, 4425, breakdown.TotalCosts, 1e-9)

	require.Len(t, breakdown.SupplementBreakdown, 2)
	assert.Equal(t, models.SupplementCategoryVitamin, breakdown.SupplementBreakdown[0].Category)
	assert.InDelta(t, 450, breakdown.SupplementBreakdown[0].Cost, 1e-9)
	assert.Equal(t, models.SupplementCategoryMineral, breakdown.SupplementBreakdown[1].Category)
	assert.InDelta(t, 225, breakdown.SupplementBreakdown[1].Cost, 1e-9)
}

func TestFleetFCOCoversEveryPen(t *testing.T) {
	svc, pens := seededService(t)

	fleet := svc.FleetFCO()
	require.Len(t, fleet, len(pens))

	byName := map[string]models.FCOData{}
	for _, fco := range fleet {
		byName[fco.PenName] = fco
	}
	assert.InDelta(t, 1800.0/2250.0, byName["Pen B-01"].CurrentFCO, 1e-9)
	assert.InDelta(t, 3200.0/5400.0, byName["Pen C-02"].CurrentFCO, 1e-9)
	assert.InDelta(t, 1350.0/1170.0, byName["Pen D-03"].CurrentFCO, 1e-9)
}

func TestDashboardStatsOnSeededFleet(t *testing.T) {
	svc, _ := seededService(t)

	stats := svc.DashboardStats()

	assert.Equal(t, 4, stats.TotalPens)
	assert.Equal(t, 3, stats.ActivePens)
	assert.Equal(t, 385, stats.TotalAnimals, "totals include finished pens")
	assert.Equal(t, 285, stats.ActiveAnimals)

	assert.InDelta(t, 8850, stats.TotalFeedConsumed, 1e-9)
	assert.InDelta(t, 10520, stats.TotalWeightGain, 1e-9)
	// 8850 kg of feed at 1.5 plus 2115 of supplements.
	assert.InDelta(t, 15390, stats.TotalCost, 1e-9)

	wantAvgFCO := (2500.0/1700.0 + 1800.0/2250.0 + 3200.0/5400.0 + 1350.0/1170.0) / 4.0
	assert.InDelta(t, wantAvgFCO, stats.AverageFCO, 1e-9)
}

func TestCreatePenThenAppendRecords(t *testing.T) {
	svc, _ := seededService(t)

	pen, err := svc.CreatePen(memory.CreatePenInput{
		Name:                   "Pen E-04",
		StartDate:              mustDay("2025-02-01"),
		AnimalCount:            60,
		EntryWeightPerAnimal:   34,
		CurrentWeightPerAnimal: 34,
		Breed:                  "Wagyu Cross",
		Status:                 models.PenStatusActive,
	})
	require.NoError(t, err)

	_, err = svc.AddFeedRecord(pen.ID, memory.AppendFeedInput{
		Date: mustDay("2025-02-11"), FeedType: "Grower Mix", Amount: 600, Cost: 900,
		Source: models.FeedSourceManual,
	})
	require.NoError(t, err)
	_, err = svc.AddWeightRecord(pen.ID, memory.AppendWeightInput{
		Date: mustDay("2025-02-11"), WeightPerAnimal: 39, Source: models.WeightSourceScale,
	})
	require.NoError(t, err)
	updated, err := svc.AddCostRecord(pen.ID, memory.AppendCostInput{
		Date: mustDay("2025-02-12"), Type: models.CostTypeMedical, Description: "Vaccination round", Amount: 240,
	})
	require.NoError(t, err)
	assert.InDelta(t, 39, updated.CurrentWeightPerAnimal, 1e-9)

	fco, err := svc.PenFCO(pen.ID)
	require.NoError(t, err)
	assert.InDelta(t, 300, fco.TotalWeightGain, 1e-9)
	assert.InDelta(t, 600.0/300.0, fco.CurrentFCO, 1e-9)
	// 600 kg * 1.5 feed + 240 medical.
	assert.InDelta(t, 1140, fco.TotalCost, 1e-9)

	require.NoError(t, svc.DeletePen(pen.ID))
	_, err = svc.GetPen(pen.ID)
	require.ErrorIs(t, err, memory.ErrNotFound)
}

func TestAddSupplementCostFlowsIntoMetrics(t *testing.T) {
	svc, pens := seededService(t)
	penD := penByName(t, pens, "Pen D-03")

	updated, err := svc.AddSupplementCost(penD.ID, memory.AppendSupplementInput{
		Date:           mustDay("2025-02-01"),
		SupplementName: "Electrolyte Mix",
		CostPerAnimal:  1.50,
		Category:       models.SupplementCategoryOther,
	})
	require.NoError(t, err)
	require.Len(t, updated.SupplementCosts, 2)

	breakdown, err := svc.PenCostBreakdown(penD.ID)
	require.NoError(t, err)
	// 180 mineral + 90 * 1.50 other.
	assert.InDelta(t, 315, breakdown.SupplementCosts, 1e-9)
	require.Len(t, breakdown.SupplementBreakdown, 2)
}

func mustDay(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}
