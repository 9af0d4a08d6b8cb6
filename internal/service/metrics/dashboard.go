package metrics

import "github.com/mamadbah2/feedlot/internal/domain/models"

// ComputeDashboardStats folds the per-pen snapshots into the fleet view.
// Sums and averages cover every pen regardless of status; only the active
// counts filter by it.
func ComputeDashboardStats(fcoData []models.FCOData, pens []models.Pen) models.DashboardStats {
	stats := models.DashboardStats{TotalPens: len(pens)}

	for _, pen := range pens {
		stats.TotalAnimals += pen.AnimalCount
		if pen.Status == models.PenStatusActive {
			stats.ActivePens++
			stats.ActiveAnimals += pen.AnimalCount
		}
	}

	var fcoSum, gainSum float64
	for _, data := range fcoData {
		fcoSum += data.CurrentFCO
		gainSum += data.DailyGainPerAnimal
		stats.TotalFeedConsumed += data.TotalFeedConsumed
		stats.TotalCost += data.TotalCost
		stats.TotalWeightGain += data.TotalWeightGain
	}

	if len(fcoData) > 0 {
		stats.AverageFCO = fcoSum / float64(len(fcoData))
		stats.AverageDailyGainPerAnimal = gainSum / float64(len(fcoData))
	}
	return stats
}
