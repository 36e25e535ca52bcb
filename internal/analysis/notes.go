package analysis

import "compintel/server/internal/models"

// CollectNotes inspects the engine's outputs and source flags and returns the
// itemized data-quality notes: one line per derivation that was skipped or
// degraded, and why. The list is empty only when nothing was suppressed.
func CollectNotes(property *models.PropertyRecord, permits *models.PermitSet, m models.DerivedMetrics, tl models.ProjectTimeline, costs models.CostBreakdown) []string {
	notes := []string{}

	if property != nil && !property.SourceOK {
		note := "listing source unavailable; sale timeline and property facts are empty"
		if property.SourceNote != "" {
			note += " (" + property.SourceNote + ")"
		}
		notes = append(notes, note)
	}
	if permits != nil && !permits.SourceOK {
		note := "permit source unavailable; permit analysis is empty"
		if permits.SourceNote != "" {
			note += " (" + permits.SourceNote + ")"
		}
		notes = append(notes, note)
	}

	if m.PurchasePrice == nil || m.PurchaseDate == nil {
		notes = append(notes, "purchase price/date unknown; spread, ROI, hold duration, and velocity not calculated")
	}
	if m.ExitPrice == nil && m.ExitDate == nil {
		notes = append(notes, "no exit event found in sale timeline")
	}
	if m.BuildingSFBefore == nil && m.BuildingSFAfter == nil {
		notes = append(notes, "building area missing from both listing and public record; $/SF not calculated")
	}
	if m.LotSF == nil {
		notes = append(notes, "lot size missing; FAR not calculated")
	}
	if permits != nil && permits.SourceOK && len(permits.Permits) > 0 && tl.ConstructionCompleted == nil {
		notes = append(notes, "no final/certificate-of-occupancy date found in permit history")
	}
	if costs.TotalProjectCost == nil {
		notes = append(notes, "purchase price unknown; total project cost and profit not estimated (financing modeled on construction cost only)")
	} else if costs.EstimatedProfit == nil {
		notes = append(notes, "no exit or list price; profit not estimated")
	}

	return notes
}
