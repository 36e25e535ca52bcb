package models

import (
	"strings"
	"time"
)

// PermitContact is one named party on a permit. License is empty when the
// registry showed no license number for the contact.
type PermitContact struct {
	Name    string `json:"name"`
	License string `json:"license,omitempty"`
}

// StatusEvent is one entry in a permit's status history. Date is nil when the
// registry's date text could not be parsed; the label is kept regardless.
type StatusEvent struct {
	Label string     `json:"label"`
	Date  *time.Time `json:"date"`
	Actor string     `json:"actor,omitempty"`
}

// PermitRecord is one normalized permit. Identity is PermitNumber. A permit
// with no status history is still a valid record; absent dates stay nil.
type PermitRecord struct {
	PermitNumber    string         `json:"permit_number"`
	JobNumber       string         `json:"job_number,omitempty"`
	Type            string         `json:"type"`
	SubType         string         `json:"sub_type,omitempty"`
	Status          string         `json:"status"`
	WorkDescription string         `json:"work_description"`
	IssuedDate      *time.Time     `json:"issued_date"`
	StatusDate      *time.Time     `json:"status_date"`
	Contractor      *PermitContact `json:"contractor"`
	Architect       *PermitContact `json:"architect"`
	Engineer        *PermitContact `json:"engineer"`
	StatusHistory   []StatusEvent  `json:"status_history"`
}

// PermitSet is the normalized permit-side record for one property.
type PermitSet struct {
	Permits    []PermitRecord `json:"permits"`
	SourceOK   bool           `json:"source_ok"`
	SourceNote string         `json:"source_note,omitempty"`
}

// IsApplicationLabel reports whether a status-history label marks the permit
// application/submittal step. The registry uses a handful of phrasings.
func IsApplicationLabel(label string) bool {
	l := strings.ToLower(label)
	return strings.Contains(l, "application") || strings.Contains(l, "submit")
}

// EarliestApplicationDate returns the earliest dated status event whose label
// marks a permit application, or nil when none exists. Used to validate the
// purchase candidate: a purchase after the first application is inconsistent.
func (s *PermitSet) EarliestApplicationDate() *time.Time {
	var earliest *time.Time
	for i := range s.Permits {
		for _, ev := range s.Permits[i].StatusHistory {
			if ev.Date == nil || !IsApplicationLabel(ev.Label) {
				continue
			}
			if earliest == nil || ev.Date.Before(*earliest) {
				d := *ev.Date
				earliest = &d
			}
		}
	}
	return earliest
}
