package analysis

import "compintel/server/internal/models"

// ScoreDeal combines ROI, permit complexity, $/day velocity, and hold
// duration into a 0-100 score with letter grade. Pure function: the same
// metrics always yield the same score. Unknown inputs score their floor and
// leave a note; they are never estimated.
func ScoreDeal(m models.DerivedMetrics, cats models.PermitCategories) models.DealFitnessScore {
	var s models.DealFitnessScore

	s.Components.ROI = scoreROI(m.ROIPct, &s.Notes)
	s.Components.Complexity = scoreComplexity(cats.ComplexityScore)
	s.Components.Velocity = scoreVelocity(m.SpreadPerDay, &s.Notes)
	s.Components.HoldDuration = scoreHold(m.HoldDays, &s.Notes)

	s.Score = s.Components.ROI + s.Components.Complexity + s.Components.Velocity + s.Components.HoldDuration
	s.Grade = grade(s.Score)
	return s
}

// ROI: 0-30 points.
func scoreROI(roi *float64, notes *[]string) int {
	if roi == nil {
		*notes = append(*notes, "ROI unknown; scored 0")
		return 0
	}
	switch {
	case *roi >= 50:
		return 30
	case *roi >= 30:
		return 25
	case *roi >= 20:
		return 20
	case *roi >= 10:
		return 15
	case *roi >= 0:
		return 10
	default:
		return 0
	}
}

// Permit complexity: 0-25 points, lower complexity scores higher.
func scoreComplexity(rating string) int {
	switch rating {
	case models.ComplexityLow:
		return 25
	case models.ComplexityMedium:
		return 15
	case models.ComplexityHigh:
		return 5
	default:
		return 10
	}
}

// $/day velocity: 0-25 points.
func scoreVelocity(perDay *float64, notes *[]string) int {
	if perDay == nil {
		*notes = append(*notes, "spread per day unknown; scored 0")
		return 0
	}
	switch {
	case *perDay >= 3000:
		return 25
	case *perDay >= 2000:
		return 20
	case *perDay >= 1000:
		return 15
	case *perDay >= 500:
		return 10
	case *perDay > 0:
		return 5
	default:
		return 0
	}
}

// Hold duration: 0-20 points, shorter holds score higher.
func scoreHold(days *int, notes *[]string) int {
	if days == nil {
		*notes = append(*notes, "hold duration unknown; scored 0")
		return 0
	}
	switch {
	case *days <= 180:
		return 20
	case *days <= 365:
		return 15
	case *days <= 548:
		return 10
	case *days <= 730:
		return 5
	default:
		return 0
	}
}

func grade(score int) string {
	switch {
	case score >= 85:
		return "A"
	case score >= 70:
		return "B"
	case score >= 55:
		return "C"
	case score >= 40:
		return "D"
	default:
		return "F"
	}
}
