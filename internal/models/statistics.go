package models

import (
	"time"
)

// Statistics is the aggregate view served by /api/stats. Provinces maps
// every province with at least one incident to its incident count.
type Statistics struct {
	TotalIncidents      int            `json:"total_incidents"`
	VerifiedIncidents   int            `json:"verified_incidents"`
	TotalRhinosAffected int            `json:"total_rhinos_affected"`
	RecentIncidents     int            `json:"recent_incidents"`
	Provinces           map[string]int `json:"provinces"`
	LastUpdated         time.Time      `json:"last_updated"`
}
