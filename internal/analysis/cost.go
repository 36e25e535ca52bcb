package analysis

import "compintel/server/internal/models"

// EstimateCosts applies the cost schedule and financing assumptions to the
// construction summary. The construction-side figures are always produced;
// TotalProjectCost and EstimatedProfit require a known purchase price and a
// known exit or list price, and stay nil otherwise. That condition is
// surfaced downstream as a data note, never papered over.
func EstimateCosts(m models.DerivedMetrics, cs models.ConstructionSummary, cats models.PermitCategories, sched models.CostSchedule) models.CostBreakdown {
	var b models.CostBreakdown

	b.HardCost = hardCost(cs, cats, sched)
	b.SoftCost = round2(b.HardCost * sched.SoftCostPct)

	// Loan base: purchase price when known, otherwise a construction-only
	// loan over the hard cost.
	if m.PurchasePrice != nil {
		b.LoanBase = float64(*m.PurchasePrice)
	} else {
		b.LoanBase = b.HardCost
	}

	b.HoldMonthsUsed = sched.DefaultHoldMonths
	if m.HoldDays != nil && *m.HoldDays > 0 {
		b.HoldMonthsUsed = round2(float64(*m.HoldDays) / 30.44)
	}

	b.FinancingInterest = round2(b.LoanBase * sched.AnnualInterestRate * (b.HoldMonthsUsed / 12))
	b.FinancingPoints = round2(b.LoanBase * sched.LoanPointsPct)

	if m.PurchasePrice != nil {
		total := round2(float64(*m.PurchasePrice) + b.HardCost + b.SoftCost + b.FinancingInterest + b.FinancingPoints)
		b.TotalProjectCost = &total

		salePrice := m.ExitPrice
		if salePrice == nil {
			salePrice = m.ListPrice
		}
		if salePrice != nil {
			profit := round2(float64(*salePrice) - total)
			b.EstimatedProfit = &profit
		}
	}

	return b
}

func hardCost(cs models.ConstructionSummary, cats models.PermitCategories, sched models.CostSchedule) float64 {
	var hard float64

	if cs.IsNewConstruction {
		if cs.FinalSF != nil {
			hard = *cs.FinalSF * sched.NewConstructionPSF
		}
	} else {
		if cs.ExistingSF != nil {
			hard = *cs.ExistingSF * sched.RemodelPSF
		}
		if cs.AddedSF != nil && *cs.AddedSF > 0 {
			added := *cs.AddedSF
			if cats.HasADU {
				aduSF := added
				if aduSF > sched.TypicalADUSF {
					aduSF = sched.TypicalADUSF
				}
				hard += aduSF * sched.ADUPSF
				hard += (added - aduSF) * sched.AdditionPSF
			} else {
				hard += added * sched.AdditionPSF
			}
		}
	}

	hard += sched.LandscapeDemoFlat
	if cats.HasPool {
		hard += sched.PoolFlat
	}

	return round2(hard)
}
