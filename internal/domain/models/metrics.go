package models

import "time"

// FCOData is the derived efficiency snapshot for one pen. It is recomputed
// on demand and never stored. Every ratio with a zero denominator reads as 0.
type FCOData struct {
	PenID       string `json:"penId"`
	PenName     string `json:"penName"`
	AnimalCount int    `json:"animalCount"`

	CurrentFCO          float64 `json:"currentFCO"`
	FeedEfficiency      float64 `json:"feedEfficiency"`
	TotalFeedConsumed   float64 `json:"totalFeedConsumed"`
	TotalWeightGain     float64 `json:"totalWeightGain"`
	WeightGainPerAnimal float64 `json:"weightGainPerAnimal"`
	DaysOnFeed          int     `json:"daysOnFeed"`
	DailyGainPerAnimal  float64 `json:"dailyGainPerAnimal"`

	LatestWeightDate            time.Time `json:"latestWeightDate"`
	WeightGainSinceLastWeighing float64   `json:"weightGainSinceLastWeighing"`
	DaysSinceLastWeighing       int       `json:"daysSinceLastWeighing"`

	TotalCost     float64 `json:"totalCost"`
	CostPerKg     float64 `json:"costPerKg"`
	CostPerAnimal float64 `json:"costPerAnimal"`

	TotalSupplementCost     float64 `json:"totalSupplementCost"`
	SupplementCostPerAnimal float64 `json:"supplementCostPerAnimal"`
	SupplementCostPerKg     float64 `json:"supplementCostPerKg"`
}

// SupplementCategoryCost is one category slice of a pen's supplement spend.
type SupplementCategoryCost struct {
	Category   SupplementCategory `json:"category"`
	Cost       float64            `json:"cost"`
	Percentage float64            `json:"percentage"`
}

// PenCostBreakdown is the categorized cost view for one pen. Supplement
// totals come from the SupplementCost collection, not from the ledger's
// supplement entries, so the dual-write can never double count.
type PenCostBreakdown struct {
	PenID   string `json:"penId"`
	PenName string `json:"penName"`

	FeedCosts       float64 `json:"feedCosts"`
	SupplementCosts float64 `json:"supplementCosts"`
	MedicalCosts    float64 `json:"medicalCosts"`
	EquipmentCosts  float64 `json:"equipmentCosts"`
	OtherCosts      float64 `json:"otherCosts"`
	TotalCosts      float64 `json:"totalCosts"`

	CostPerAnimal   float64 `json:"costPerAnimal"`
	CostPerKgGained float64 `json:"costPerKgGained"`

	SupplementBreakdown []SupplementCategoryCost `json:"supplementBreakdown"`
}

// DashboardStats is the fleet-wide aggregate. Sums and averages cover every
// pen regardless of status; only the active counts filter.
type DashboardStats struct {
	TotalPens     int `json:"totalPens"`
	ActivePens    int `json:"activePens"`
	TotalAnimals  int `json:"totalAnimals"`
	ActiveAnimals int `json:"activeAnimals"`

	AverageFCO                float64 `json:"averageFCO"`
	TotalFeedConsumed         float64 `json:"totalFeedConsumed"`
	TotalCost                 float64 `json:"totalCost"`
	TotalWeightGain           float64 `json:"totalWeightGain"`
	AverageDailyGainPerAnimal float64 `json:"averageDailyGainPerAnimal"`
}

// DashboardSnapshot is a dated DashboardStats document archived by the
// scheduler.
type DashboardSnapshot struct {
	Date                      time.Time `bson:"date" json:"date"`
	TotalPens                 int       `bson:"total_pens" json:"totalPens"`
	ActivePens                int       `bson:"active_pens" json:"activePens"`
	TotalAnimals              int       `bson:"total_animals" json:"totalAnimals"`
	ActiveAnimals             int       `bson:"active_animals" json:"activeAnimals"`
	AverageFCO                float64   `bson:"average_fco" json:"averageFCO"`
	TotalFeedConsumed         float64   `bson:"total_feed_consumed" json:"totalFeedConsumed"`
	TotalCost                 float64   `bson:"total_cost" json:"totalCost"`
	TotalWeightGain           float64   `bson:"total_weight_gain" json:"totalWeightGain"`
	AverageDailyGainPerAnimal float64   `bson:"average_daily_gain_per_animal" json:"averageDailyGainPerAnimal"`
	CreatedAt                 time.Time `bson:"created_at" json:"createdAt"`
}
