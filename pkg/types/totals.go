// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// YearTotal is the number of background checks reported for one year,
// summed over every state row tagged with that year.
type YearTotal struct {
	Year  int   `json:"year" yaml:"year"`
	Total int64 `json:"total_background_checks" yaml:"total_background_checks"`
}

// MonthTotal is the number of background checks reported for one month.
// Months past a partial year's last reported month carry zero.
type MonthTotal struct {
	Year  int   `json:"year" yaml:"year"`
	Month int   `json:"month" yaml:"month"`
	Total int64 `json:"total_background_checks" yaml:"total_background_checks"`
}

// StateTotal is one state or territory's grand total for a year.
type StateTotal struct {
	Year  int    `json:"year" yaml:"year"`
	State string `json:"state" yaml:"state"`
	Total int64  `json:"total_background_checks" yaml:"total_background_checks"`
}

// ExtractStats counts how report lines were handled.
type ExtractStats struct {
	Pages      int `json:"pages" yaml:"pages"`
	Lines      int `json:"lines" yaml:"lines"`
	Accepted   int `json:"accepted" yaml:"accepted"`
	Rejected   int `json:"rejected" yaml:"rejected"`
	Malformed  int `json:"malformed" yaml:"malformed"`
	Mismatched int `json:"mismatched" yaml:"mismatched"`
}

// Run holds the outcome of one extraction over a report PDF.
type Run struct {
	// ID is the history database row id; zero when history is disabled.
	ID int64 `json:"id,omitempty" yaml:"id,omitempty"`

	SourcePDF   string    `json:"source_pdf" yaml:"source_pdf"`
	Backend     Backend   `json:"backend" yaml:"backend"`
	ExtractedAt time.Time `json:"extracted_at" yaml:"extracted_at"`

	Years  []YearTotal  `json:"years" yaml:"years"`
	Months []MonthTotal `json:"months" yaml:"months"`
	States []StateTotal `json:"states,omitempty" yaml:"states,omitempty"`

	Stats ExtractStats `json:"stats" yaml:"stats"`
}
