package analysis

import (
	"strings"
	"time"

	"compintel/server/internal/models"
)

// AssembleTimeline mines milestone dates out of permit status history and
// builds the stage sequence between them. Only building-category permits are
// scanned; when none exist, every permit is scanned as a fallback.
//
// A stage exists only when both endpoints are known and the duration is
// non-negative. A negative span is a source inconsistency and the stage is
// dropped outright, never clamped.
func AssembleTimeline(permits []models.PermitRecord, table models.KeywordTable, purchase, exit *time.Time) models.ProjectTimeline {
	var tl models.ProjectTimeline

	scanned := buildingPermits(permits, table)
	if len(scanned) == 0 {
		scanned = permits
	}

	for i := range scanned {
		for _, ev := range scanned[i].StatusHistory {
			if ev.Date == nil {
				continue
			}
			label := strings.ToLower(ev.Label)
			switch {
			case models.IsApplicationLabel(ev.Label):
				tl.PlansSubmitted = earliestOf(tl.PlansSubmitted, ev.Date)
			case strings.Contains(label, "plan check approv"):
				tl.PlansApproved = earliestOf(tl.PlansApproved, ev.Date)
			case strings.Contains(label, "issued"):
				tl.ConstructionStart = earliestOf(tl.ConstructionStart, ev.Date)
			case strings.Contains(label, "final"), strings.Contains(label, "certificate of occupancy"):
				tl.ConstructionCompleted = earliestOf(tl.ConstructionCompleted, ev.Date)
			}
		}
	}

	tl.Stages = buildStages(purchase, exit, tl)
	return tl
}

func buildStages(purchase, exit *time.Time, tl models.ProjectTimeline) []models.Stage {
	endpoints := []struct {
		name       string
		start, end *time.Time
	}{
		{"purchase_to_plans_submitted", purchase, tl.PlansSubmitted},
		{"plans_submitted_to_approved", tl.PlansSubmitted, tl.PlansApproved},
		{"approved_to_construction_start", tl.PlansApproved, tl.ConstructionStart},
		{"construction", tl.ConstructionStart, tl.ConstructionCompleted},
		{"completed_to_exit", tl.ConstructionCompleted, exit},
	}

	var stages []models.Stage
	for _, ep := range endpoints {
		if ep.start == nil || ep.end == nil {
			continue
		}
		days := int(ep.end.Sub(*ep.start).Hours() / 24)
		if days < 0 {
			continue
		}
		stages = append(stages, models.Stage{
			Name:  ep.name,
			Days:  days,
			Start: *ep.start,
			End:   *ep.end,
		})
	}
	return stages
}

func buildingPermits(permits []models.PermitRecord, table models.KeywordTable) []models.PermitRecord {
	var out []models.PermitRecord
	for i := range permits {
		text := permitText(&permits[i])
		// Same priority order as the classifier: a permit claimed by an
		// earlier category is not a building permit.
		if matchesAny(text, table.Supplement) || matchesAny(text, table.Demolition) || matchesAny(text, table.MEP) {
			continue
		}
		if matchesAny(text, table.Building) {
			out = append(out, permits[i])
		}
	}
	return out
}

func earliestOf(current, candidate *time.Time) *time.Time {
	if candidate == nil {
		return current
	}
	if current == nil || candidate.Before(*current) {
		d := *candidate
		return &d
	}
	return current
}
