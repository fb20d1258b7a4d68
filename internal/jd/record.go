// Package jd turns raw text-generation output into canonical job-description
// records: it normalizes provider responses, patches missing critical fields
// with deterministic pattern matching, and orchestrates the provider
// fallback chain.
package jd

import "time"

// Status describes the outcome of one extraction call.
type Status string

const (
	StatusSuccess Status = "success"
	StatusPartial Status = "partial"
	StatusFailed  Status = "failed"
)

// Record is the canonical output of one extraction call. Empty strings and
// nil slices mean the field was absent; RateMin/RateMax are pointers so a
// missing bound is distinguishable from zero.
type Record struct {
	Rate       string   `json:"bill_rate,omitempty" yaml:"bill_rate,omitempty"`
	RateMin    *float64 `json:"min_bill_rate,omitempty" yaml:"min_bill_rate,omitempty"`
	RateMax    *float64 `json:"max_bill_rate,omitempty" yaml:"max_bill_rate,omitempty"`
	Duration   string   `json:"duration,omitempty" yaml:"duration,omitempty"`
	Experience string   `json:"experience,omitempty" yaml:"experience,omitempty"`
	ExternalID string   `json:"requisition_id,omitempty" yaml:"requisition_id,omitempty"`
	Location   string   `json:"location,omitempty" yaml:"location,omitempty"`
	Skills     []string `json:"skills,omitempty" yaml:"skills,omitempty"`
	Summary    string   `json:"summary,omitempty" yaml:"summary,omitempty"`
	Contact    string   `json:"contact,omitempty" yaml:"contact,omitempty"`

	// Extraction metadata.
	Provider    string    `json:"provider_used,omitempty" yaml:"provider_used,omitempty"`
	Status      Status    `json:"status" yaml:"status"`
	ExtractedAt time.Time `json:"extracted_at" yaml:"extracted_at"`
}
