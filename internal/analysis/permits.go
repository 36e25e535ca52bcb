package analysis

import (
	"strings"

	"compintel/server/internal/models"
)

// ClassifyPermits categorizes every permit and derives the scope level and
// complexity rating. Classification is a pure function over the permit list
// and an externally supplied keyword table, so the rules are data, not code.
//
// Each permit lands in exactly one category, tested in priority order:
// supplement > demolition > MEP > building > other. A permit matching both
// supplement and building keywords counts as a supplement. Feature flags are
// scanned independently and are not exclusive with the category.
func ClassifyPermits(permits []models.PermitRecord, table models.KeywordTable) models.PermitCategories {
	cats := models.PermitCategories{
		TotalPermits:    len(permits),
		ScopeLevel:      models.ScopeUnknown,
		ComplexityScore: models.ComplexityUnknown,
	}

	for i := range permits {
		text := permitText(&permits[i])

		switch {
		case matchesAny(text, table.Supplement):
			cats.SupplementCount++
		case matchesAny(text, table.Demolition):
			cats.DemoCount++
		case matchesAny(text, table.MEP):
			cats.MEPCount++
		case matchesAny(text, table.Building):
			cats.BuildingCount++
		default:
			cats.OtherCount++
		}

		if matchesAny(text, table.ADU) {
			cats.HasADU = true
		}
		if matchesAny(text, table.NewStructure) {
			cats.HasNewStructure = true
		}
		if matchesAny(text, table.Addition) {
			cats.HasAddition = true
		}
		if matchesAny(text, table.MajorRemodel) {
			cats.HasMajorRemodel = true
		}
		if matchesAny(text, table.Pool) {
			cats.HasPool = true
		}
		if matchesAny(text, table.GradingHill) {
			cats.HasGradingOrHillside = true
		}
		if matchesAny(text, table.Methane) {
			cats.HasMethane = true
		}
		if matchesAny(text, table.FireSprinklers) {
			cats.HasFireSprinklers = true
		}
		if matchesAny(text, table.SprinklerOut) {
			cats.RemovedFireSprinklers = true
		}
	}

	if cats.TotalPermits > 0 {
		cats.ScopeLevel = scopeLevel(cats)
		cats.ComplexityPoints = complexityPoints(cats)
		cats.ComplexityScore = complexityRating(cats.ComplexityPoints)
	}

	return cats
}

// scopeLevel applies the decision table; first matching rule wins.
func scopeLevel(c models.PermitCategories) string {
	switch {
	case c.HasNewStructure || c.HasADU || c.BuildingCount >= 3:
		return models.ScopeHeavy
	case c.HasAddition || c.HasMajorRemodel || c.BuildingCount >= 2 || c.MEPCount >= 3:
		return models.ScopeMedium
	default:
		return models.ScopeLight
	}
}

// complexityPoints accumulates the permitting-difficulty heuristic.
func complexityPoints(c models.PermitCategories) int {
	points := 0

	switch {
	case c.TotalPermits >= 8:
		points += 3
	case c.TotalPermits >= 5:
		points += 2
	case c.TotalPermits >= 3:
		points++
	}

	switch {
	case c.SupplementCount >= 3:
		points += 2
	case c.SupplementCount >= 1:
		points++
	}

	if c.HasPool {
		points++
	}
	if c.HasMethane {
		points++
	}
	if c.HasFireSprinklers {
		points++
	}
	if c.HasGradingOrHillside {
		points += 2
	}

	return points
}

func complexityRating(points int) string {
	switch {
	case points >= 5:
		return models.ComplexityHigh
	case points >= 2:
		return models.ComplexityMedium
	default:
		return models.ComplexityLow
	}
}

func permitText(p *models.PermitRecord) string {
	return strings.ToLower(p.Type + " " + p.SubType + " " + p.WorkDescription)
}

func matchesAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(text, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
