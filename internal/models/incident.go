package models

import (
	"time"
)

// Incident is a single poaching incident report. IDs are assigned by the
// store and never change.
type Incident struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	Location     string    `json:"location,omitempty"`
	Province     string    `json:"province,omitempty"`
	DateOccurred time.Time `json:"date_occurred"`
	DateReported time.Time `json:"date_reported"`
	Source       string    `json:"source,omitempty"`
	Verified     bool      `json:"verified"`
	RhinoCount   int       `json:"rhino_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// IncidentFilter describes the optional listing filters. A nil Verified
// means the filter is absent, not false.
type IncidentFilter struct {
	Province string
	Verified *bool
	Limit    int
}
