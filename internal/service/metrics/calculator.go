// Package metrics derives the efficiency and cost views from pen records.
// Every function here is pure: inputs are never mutated and degenerate math
// (zero denominators, empty histories) resolves to zero rather than an error,
// so a metric that cannot be computed reads as 0 on the dashboard.
package metrics

import (
	"sort"
	"time"

	"github.com/mamadbah2/feedlot/internal/domain/models"
)

// ComputeFCO derives the feed-conversion snapshot for one pen. feedCostPerKg
// is the operator-configured valuation rate; it supersedes the cost stored on
// individual feed records.
func ComputeFCO(pen models.Pen, feedCostPerKg float64) models.FCOData {
	var totalFeedConsumed float64
	for _, feed := range pen.FeedRecords {
		totalFeedConsumed += feed.Amount
	}

	weightGainPerAnimal := pen.CurrentWeightPerAnimal - pen.EntryWeightPerAnimal
	totalWeightGain := float64(pen.AnimalCount) * weightGainPerAnimal

	records := sortedWeightRecords(pen.WeightRecords)

	latestWeightDate := pen.StartDate
	var daysSinceLastWeighing int
	var weightGainSinceLastWeighing float64
	if len(records) > 0 {
		latest := records[len(records)-1]
		latestWeightDate = latest.Date
		if len(records) > 1 {
			previous := records[len(records)-2]
			daysSinceLastWeighing = daysBetween(previous.Date, latest.Date)
			weightGainSinceLastWeighing = latest.WeightPerAnimal - previous.WeightPerAnimal
		}
	}

	end := latestWeightDate
	if pen.FinishDate != nil {
		end = *pen.FinishDate
	}
	daysOnFeed := daysBetween(pen.StartDate, end)

	var dailyGainPerAnimal float64
	if daysOnFeed > 0 {
		dailyGainPerAnimal = weightGainPerAnimal / float64(daysOnFeed)
	}

	var currentFCO float64
	if totalWeightGain > 0 {
		currentFCO = totalFeedConsumed / totalWeightGain
	}
	var feedEfficiency float64
	if currentFCO > 0 {
		feedEfficiency = 1 / currentFCO
	}

	var totalSupplementCost float64
	for _, supplement := range pen.SupplementCosts {
		totalSupplementCost += supplement.TotalCost
	}

	// Supplement ledger entries are excluded: SupplementCost is the source
	// of truth for supplement spend, and feed is valued at the rate above.
	var otherCosts float64
	for _, record := range pen.CostRecords {
		if record.Type == models.CostTypeFeed || record.Type == models.CostTypeSupplement {
			continue
		}
		otherCosts += record.Amount
	}

	calculatedFeedCost := totalFeedConsumed * feedCostPerKg
	totalCost := calculatedFeedCost + totalSupplementCost + otherCosts

	var costPerKg, costPerAnimal float64
	if totalWeightGain > 0 {
		costPerKg = totalCost / totalWeightGain
	}
	if pen.AnimalCount > 0 {
		costPerAnimal = totalCost / float64(pen.AnimalCount)
	}

	var supplementCostPerAnimal, supplementCostPerKg float64
	if pen.AnimalCount > 0 {
		supplementCostPerAnimal = totalSupplementCost / float64(pen.AnimalCount)
	}
	if totalWeightGain > 0 {
		supplementCostPerKg = totalSupplementCost / totalWeightGain
	}

	return models.FCOData{
		PenID:       pen.ID,
		PenName:     pen.Name,
		AnimalCount: pen.AnimalCount,

		CurrentFCO:          currentFCO,
		FeedEfficiency:      feedEfficiency,
		TotalFeedConsumed:   totalFeedConsumed,
		TotalWeightGain:     totalWeightGain,
		WeightGainPerAnimal: weightGainPerAnimal,
		DaysOnFeed:          daysOnFeed,
		DailyGainPerAnimal:  dailyGainPerAnimal,

		LatestWeightDate:            latestWeightDate,
		WeightGainSinceLastWeighing: weightGainSinceLastWeighing,
		DaysSinceLastWeighing:       daysSinceLastWeighing,

		TotalCost:     totalCost,
		CostPerKg:     costPerKg,
		CostPerAnimal: costPerAnimal,

		TotalSupplementCost:     totalSupplementCost,
		SupplementCostPerAnimal: supplementCostPerAnimal,
		SupplementCostPerKg:     supplementCostPerKg,
	}
}

// ComputeFCOData derives the snapshot for every pen in the collection.
func ComputeFCOData(pens []models.Pen, feedCostPerKg float64) []models.FCOData {
	result := make([]models.FCOData, len(pens))
	for i, pen := range pens {
		result[i] = ComputeFCO(pen, feedCostPerKg)
	}
	return result
}

// sortedWeightRecords returns a date-ascending copy. The sort is stable so
// same-day weighings keep their insertion order.
func sortedWeightRecords(records []models.WeightRecord) []models.WeightRecord {
	sorted := append([]models.WeightRecord(nil), records...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	return sorted
}

// daysBetween counts whole calendar days from a to b, discarding any
// fractional remainder.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
