// Package narrative produces the free-text strategy bullets for a report:
// an external AI generator when configured, and a deterministic rule-based
// fallback otherwise. Both return the same structured shape, tagged with
// provenance, so a generator fault never aborts a pipeline run.
package narrative

import (
	"fmt"
	"strings"

	"compintel/server/internal/models"
)

const (
	maxTactics  = 6
	maxRisks    = 3
	maxInsights = 2
)

// Fallback builds strategy notes from the derived fields alone, using fixed
// rule thresholds. It never fails and never invents a number: every bullet
// restates something already present in the report.
func Fallback(report *models.CompReport) *models.StrategyNotes {
	cats := report.Categories
	cs := report.Construction
	m := report.Metrics

	var tactics, risks, insights []string

	switch cats.ScopeLevel {
	case models.ScopeHeavy:
		tactics = append(tactics, "Major construction project - ground-up build or substantial addition")
	case models.ScopeMedium:
		tactics = append(tactics, "Moderate scope - significant remodel or addition work")
	default:
		tactics = append(tactics, "Light scope - cosmetic or minor permitted work")
	}
	if cats.HasADU {
		tactics = append(tactics, "Added ADU to maximize density and rental income potential")
	}
	if cats.HasNewStructure {
		tactics = append(tactics, "New structure built - maximized FAR utilization")
	}
	if cs.IsNewConstruction {
		tactics = append(tactics, "Ground-up new construction on cleared lot")
	} else if cs.AddedSF != nil && *cs.AddedSF > 0 {
		tactics = append(tactics, fmt.Sprintf("Added %.0f SF to existing structure", *cs.AddedSF))
	}
	if cats.HasPool {
		tactics = append(tactics, "Pool added for market appeal in luxury segment")
	}

	if cats.HasGradingOrHillside {
		risks = append(risks, "Hillside/grading permits indicate challenging site conditions")
	}
	if cats.HasMethane {
		risks = append(risks, "Methane mitigation required - additional construction complexity")
	}
	if cats.HasFireSprinklers {
		if cats.RemovedFireSprinklers {
			risks = append(risks, "Fire sprinkler system removed - may indicate permit strategy")
		} else {
			risks = append(risks, "Fire sprinkler system required - adds to construction cost")
		}
	}
	if cats.ComplexityScore == models.ComplexityHigh {
		risks = append(risks, "High permit complexity - multiple supplements and specialty permits")
	}
	if cats.SupplementCount >= 3 {
		risks = append(risks, fmt.Sprintf("Multiple permit supplements (%d) may indicate plan changes or issues", cats.SupplementCount))
	}
	if len(risks) == 0 {
		risks = append(risks, "Standard permitting process - no unusual complexities detected")
	}

	if m.ROIPct != nil {
		if *m.ROIPct > 30 {
			insights = append(insights, fmt.Sprintf("Strong returns (%.1f%% ROI) in current market conditions", *m.ROIPct))
		} else {
			insights = append(insights, fmt.Sprintf("Moderate returns (%.1f%% ROI) for this scope of work", *m.ROIPct))
		}
	}
	if m.HoldDays != nil {
		switch {
		case *m.HoldDays <= 365:
			insights = append(insights, fmt.Sprintf("Quick turnaround (%d days) suggests efficient execution", *m.HoldDays))
		case *m.HoldDays <= 548:
			insights = append(insights, fmt.Sprintf("Standard timeline (%d days) for scope of work", *m.HoldDays))
		default:
			insights = append(insights, fmt.Sprintf("Extended hold period (%d days) may indicate permitting or market challenges", *m.HoldDays))
		}
	}
	if gc := report.Team.PrimaryGC; gc != nil && strings.Contains(strings.ToLower(gc.Name), "owner") {
		insights = append(insights, "Owner-builder project - experienced developer self-performing")
	}

	if len(tactics) == 0 {
		tactics = []string{"No specific tactics identified from permit data"}
	}
	if len(insights) == 0 {
		insights = []string{"Insufficient data for market insights"}
	}

	return &models.StrategyNotes{
		Tactics:  capList(tactics, maxTactics),
		Risks:    capList(risks, maxRisks),
		Insights: capList(insights, maxInsights),
		Source:   models.NarrativeSourceFallback,
	}
}

func capList(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
