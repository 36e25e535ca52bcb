// Package analysis is the reconciliation and derived-metrics engine. Every
// function here is a pure transformation over fully-materialized normalized
// records: no I/O, no shared state, and no fabricated values. A derivation
// whose inputs are absent or inconsistent produces nil, not a guess.
package analysis

import (
	"time"

	"compintel/server/internal/models"
)

// SelectEvents picks the canonical purchase and exit events from an ordered
// timeline. Only sold events can be a purchase or an exit sale; when no sale
// exists, the most recent listing-like event stands in as the exit and the
// purchase stays absent.
//
// The purchase candidate is the second-latest sale. It is accepted only when
// no permit application predates it: construction permits filed before the
// claimed purchase are a provable inconsistency, and the candidate is
// discarded rather than reinterpreted.
func SelectEvents(timeline []models.TimelineEvent, earliestPermit *time.Time) models.SelectedEvents {
	var sold, listing []models.TimelineEvent
	for _, ev := range timeline {
		switch ev.Kind {
		case models.EventSold:
			sold = append(sold, ev)
		case models.EventListed, models.EventActive, models.EventPending:
			listing = append(listing, ev)
		}
	}

	var selected models.SelectedEvents

	if len(sold) == 0 {
		if len(listing) > 0 {
			last := listing[len(listing)-1]
			selected.Exit = &last
		}
		return selected
	}

	exit := sold[len(sold)-1]
	selected.Exit = &exit

	if len(sold) > 1 {
		candidate := sold[len(sold)-2]
		if earliestPermit == nil || !candidate.Date.After(*earliestPermit) {
			selected.Purchase = &candidate
		}
	}

	return selected
}
