package models

import "time"

// FeedingUnit is an automated feeder device. Its lifecycle is independent of
// pen lifecycle: unlinking a unit never touches the pen.
type FeedingUnit struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	PenID      string           `json:"penId,omitempty"`
	PenName    string           `json:"penName,omitempty"`
	WebhookURL string           `json:"webhookUrl"`
	DeviceID   string           `json:"deviceId"`
	Connected  bool             `json:"isConnected"`
	LastUpdate *time.Time       `json:"lastUpdate,omitempty"`
	RecentData []FeedDataSample `json:"recentData"`
}

// FeedDataSample is one feed reading reported by a feeding unit.
type FeedDataSample struct {
	Timestamp  time.Time `json:"timestamp"`
	FeedAmount float64   `json:"feedAmount"`
	FeedType   string    `json:"feedType"`
	Cost       float64   `json:"cost,omitempty"`
	UnitID     string    `json:"unitId"`
	PenID      string    `json:"penId,omitempty"`
}
