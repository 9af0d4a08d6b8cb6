package metrics

import "github.com/mamadbah2/feedlot/internal/domain/models"

// ComputeCostBreakdown derives the categorized cost view for one pen. Feed is
// valued at feedCostPerKg, supplements come from the SupplementCost
// collection, and the remaining categories from the ledger.
func ComputeCostBreakdown(pen models.Pen, feedCostPerKg float64) models.PenCostBreakdown {
	var feedCosts float64
	for _, feed := range pen.FeedRecords {
		feedCosts += feed.Amount * feedCostPerKg
	}

	var supplementCosts float64
	for _, supplement := range pen.SupplementCosts {
		supplementCosts += supplement.TotalCost
	}

	var medicalCosts, equipmentCosts, otherCosts float64
	for _, record := range pen.CostRecords {
		switch record.Type {
		case models.CostTypeMedical:
			medicalCosts += record.Amount
		case models.CostTypeEquipment:
			equipmentCosts += record.Amount
		case models.CostTypeOther:
			otherCosts += record.Amount
		}
	}

	totalCosts := feedCosts + supplementCosts + medicalCosts + equipmentCosts + otherCosts
	totalWeightGain := float64(pen.AnimalCount) * (pen.CurrentWeightPerAnimal - pen.EntryWeightPerAnimal)

	var costPerAnimal, costPerKgGained float64
	if pen.AnimalCount > 0 {
		costPerAnimal = totalCosts / float64(pen.AnimalCount)
	}
	if totalWeightGain > 0 {
		costPerKgGained = totalCosts / totalWeightGain
	}

	return models.PenCostBreakdown{
		PenID:   pen.ID,
		PenName: pen.Name,

		FeedCosts:       feedCosts,
		SupplementCosts: supplementCosts,
		MedicalCosts:    medicalCosts,
		EquipmentCosts:  equipmentCosts,
		OtherCosts:      otherCosts,
		TotalCosts:      totalCosts,

		CostPerAnimal:   costPerAnimal,
		CostPerKgGained: costPerKgGained,

		SupplementBreakdown: supplementBreakdown(pen.SupplementCosts, supplementCosts),
	}
}

// supplementBreakdown groups supplement spend by category. Categories appear
// in order of first appearance in the pen's data; absent categories are
// omitted rather than zero-filled.
func supplementBreakdown(supplements []models.SupplementCost, total float64) []models.SupplementCategoryCost {
	breakdown := []models.SupplementCategoryCost{}
	index := map[models.SupplementCategory]int{}

	for _, supplement := range supplements {
		i, ok := index[supplement.Category]
		if !ok {
			i = len(breakdown)
			index[supplement.Category] = i
			breakdown = append(breakdown, models.SupplementCategoryCost{Category: supplement.Category})
		}
		breakdown[i].Cost += supplement.TotalCost
	}

	if total > 0 {
		for i := range breakdown {
			breakdown[i].Percentage = breakdown[i].Cost / total * 100
		}
	}
	return breakdown
}
