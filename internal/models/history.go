package models

import "time"

// SearchRecord is the flattened per-run summary appended to the search
// history log. It carries just enough to support repeat-player aggregation
// and the history listing.
type SearchRecord struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	ReportID    string    `json:"report_id" gorm:"index"`
	URL         string    `json:"url"`
	Address     string    `json:"address"`
	CreatedAt   time.Time `json:"created_at"`
	PermitCount int       `json:"permit_count"`

	PurchasePrice *int     `json:"purchase_price"`
	ExitPrice     *int     `json:"exit_price"`
	ROIPct        *float64 `json:"roi_pct"`

	ScopeLevel string `json:"scope_level"`
	Score      int    `json:"score"`
	Grade      string `json:"grade"`

	PrimaryGC        string `json:"primary_gc"`
	PrimaryArchitect string `json:"primary_architect"`
	PrimaryEngineer  string `json:"primary_engineer"`
}

// RepeatPlayer is one party seen across multiple past searches for a role.
type RepeatPlayer struct {
	Role       string `json:"role"`
	Name       string `json:"name"`
	Properties int    `json:"properties"`
}
