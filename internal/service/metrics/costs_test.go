package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/feedlot/internal/domain/models"
)

func breakdownPen() models.Pen {
	return models.Pen{
		ID:                     "pen-bd",
		Name:                   "Pen A-01",
		StartDate:              day("2025-01-02"),
		AnimalCount:            100,
		EntryWeightPerAnimal:   33,
		CurrentWeightPerAnimal: 50,
		Status:                 models.PenStatusActive,
		FeedRecords: []models.FeedRecord{
			{Date: day("2025-03-03"), Amount: 2500, Cost: 3750, Source: models.FeedSourceManual},
		},
		SupplementCosts: []models.SupplementCost{
			{Date: day("2025-02-15"), SupplementName: "Vitamin B Complex", TotalCost: 450, Category: models.SupplementCategoryVitamin},
			{Date: day("2025-02-20"), SupplementName: "Mineral Mix", TotalCost: 225, Category: models.SupplementCategoryMineral},
		},
		CostRecords: []models.CostRecord{
			{Date: day("2025-03-03"), Type: models.CostTypeFeed, Amount: 3750},
			{Date: day("2025-02-15"), Type: models.CostTypeSupplement, Amount: 450},
			{Date: day("2025-02-20"), Type: models.CostTypeSupplement, Amount: 225},
			{Date: day("2025-02-10"), Type: models.CostTypeMedical, Amount: 300},
			{Date: day("2025-02-12"), Type: models.CostTypeEquipment, Amount: 120},
			{Date: day("2025-02-14"), Type: models.CostTypeOther, Amount: 80},
		},
	}
}

func TestComputeCostBreakdownCategories(t *testing.T) {
	breakdown := ComputeCostBreakdown(breakdownPen(), 1.5)

	assert.InDelta(t, 3750, breakdown.FeedCosts, 1e-9)
	assert.InDelta(t, 675, breakdown.SupplementCosts, 1e-9)
	assert.InDelta(t, 300, breakdown.MedicalCosts, 1e-9)
	assert.InDelta(t, 120, breakdown.EquipmentCosts, 1e-9)
	assert.InDelta(t, 80, breakdown.OtherCosts, 1e-9)
	assert.InDelta(t, 4925, breakdown.TotalCosts, 1e-9)
	assert.InDelta(t, 49.25, breakdown.CostPerAnimal, 1e-9)
	assert.InDelta(t, 4925.0/1700.0, breakdown.CostPerKgGained, 1e-9)
}

func TestComputeCostBreakdownSupplementNotDoubleCounted(t *testing.T) {
	breakdown := ComputeCostBreakdown(breakdownPen(), 1.5)

	// Supplement totals come from the SupplementCost collection; the ledger's
	// supplement entries must not be added on top.
	var categorySum float64
	for _, slice := range breakdown.SupplementBreakdown {
		categorySum += slice.Cost
	}
	assert.InDelta(t, breakdown.SupplementCosts, categorySum, 1e-9)
}

func TestComputeCostBreakdownSupplementCategories(t *testing.T) {
	breakdown := ComputeCostBreakdown(breakdownPen(), 1.5)

	require.Len(t, breakdown.SupplementBreakdown, 2)
	// First-appearance order.
	assert.Equal(t, models.SupplementCategoryVitamin, breakdown.SupplementBreakdown[0].Category)
	assert.InDelta(t, 450, breakdown.SupplementBreakdown[0].Cost, 1e-9)
	assert.InDelta(t, 100.0*450/675, breakdown.SupplementBreakdown[0].Percentage, 1e-6)
	assert.Equal(t, models.SupplementCategoryMineral, breakdown.SupplementBreakdown[1].Category)
	assert.InDelta(t, 225, breakdown.SupplementBreakdown[1].Cost, 1e-9)
	assert.InDelta(t, 100.0*225/675, breakdown.SupplementBreakdown[1].Percentage, 1e-6)

	var percentageSum float64
	for _, slice := range breakdown.SupplementBreakdown {
		percentageSum += slice.Percentage
	}
	assert.InDelta(t, 100, percentageSum, 1e-6)
}

func TestComputeCostBreakdownMergesRepeatedCategories(t *testing.T) {
	pen := breakdownPen()
	pen.SupplementCosts = append(pen.SupplementCosts, models.SupplementCost{
		Date: day("2025-02-25"), SupplementName: "Vitamin E", TotalCost: 75, Category: models.SupplementCategoryVitamin,
	})

	breakdown := ComputeCostBreakdown(pen, 1.5)

	require.Len(t, breakdown.SupplementBreakdown, 2)
	assert.Equal(t, models.SupplementCategoryVitamin, breakdown.SupplementBreakdown[0].Category)
	assert.InDelta(t, 525, breakdown.SupplementBreakdown[0].Cost, 1e-9)
}

func TestComputeCostBreakdownNoSupplements(t *testing.T) {
	pen := breakdownPen()
	pen.SupplementCosts = nil

	breakdown := ComputeCostBreakdown(pen, 1.5)

	assert.Zero(t, breakdown.SupplementCosts)
	assert.Empty(t, breakdown.SupplementBreakdown)
}

func TestComputeCostBreakdownZeroGuards(t *testing.T) {
	pen := models.Pen{
		ID:        "pen-zero",
		StartDate: day("2025-01-01"),
		Status:    models.PenStatusActive,
		CostRecords: []models.CostRecord{
			{Date: day("2025-01-05"), Type: models.CostTypeMedical, Amount: 100},
		},
	}

	breakdown := ComputeCostBreakdown(pen, 1.5)

	assert.Zero(t, breakdown.CostPerAnimal)
	assert.Zero(t, breakdown.CostPerKgGained)
	assert.InDelta(t, 100, breakdown.TotalCosts, 1e-9)
}
