package analysis

import (
	"math"

	"compintel/server/internal/models"
)

// DeriveMetrics computes the financial and size metrics from the selected
// events and the property record. Every purchase-dependent field is nil when
// the purchase is absent: spread, ROI, hold and velocity are never computed
// from a single unvalidated event.
//
// Area sources are explicit: "before" is the public-record (taxing authority)
// building area, "after" is the current listing area. The two are never
// merged into a single figure.
func DeriveMetrics(events models.SelectedEvents, property *models.PropertyRecord) models.DerivedMetrics {
	var m models.DerivedMetrics

	if events.Purchase != nil {
		m.PurchasePrice = events.Purchase.Price
		d := events.Purchase.Date
		m.PurchaseDate = &d
	}
	if events.Exit != nil {
		m.ExitPrice = events.Exit.Price
		d := events.Exit.Date
		m.ExitDate = &d
	}
	if property != nil {
		m.ListPrice = property.ListPrice
		m.BuildingSFBefore = property.PublicRecord.BuildingSF
		m.BuildingSFAfter = property.Listing.BuildingSF
		m.LotSF = property.PublicRecord.LotSF
		if m.LotSF == nil {
			m.LotSF = property.Listing.LotSF
		}
	}

	if m.PurchasePrice != nil && m.ExitPrice != nil {
		spread := *m.ExitPrice - *m.PurchasePrice
		m.Spread = &spread
		if *m.PurchasePrice > 0 {
			roi := round2(100.0 * float64(spread) / float64(*m.PurchasePrice))
			m.ROIPct = &roi
		}
	}

	if m.PurchaseDate != nil && m.ExitDate != nil {
		days := int(m.ExitDate.Sub(*m.PurchaseDate).Hours() / 24)
		m.HoldDays = &days
		if m.Spread != nil && days > 0 {
			perDay := round2(float64(*m.Spread) / float64(days))
			m.SpreadPerDay = &perDay
		}
	}

	if m.BuildingSFBefore != nil && m.BuildingSFAfter != nil && *m.BuildingSFBefore != *m.BuildingSFAfter {
		added := *m.BuildingSFAfter - *m.BuildingSFBefore
		m.SFAdded = &added
		if *m.BuildingSFBefore > 0 {
			pct := round2(100.0 * added / *m.BuildingSFBefore)
			m.SFAddedPct = &pct
		}
	}

	if m.LotSF != nil && *m.LotSF > 0 {
		if m.BuildingSFBefore != nil {
			far := round2(*m.BuildingSFBefore / *m.LotSF)
			m.FARBefore = &far
		}
		if m.BuildingSFAfter != nil {
			far := round2(*m.BuildingSFAfter / *m.LotSF)
			m.FARAfter = &far
		}
	}

	// $/SF: purchase uses the pre-project area; exit and list prefer the
	// post-project area and fall back to the pre-project one.
	m.PurchasePSF = pricePerSF(m.PurchasePrice, m.BuildingSFBefore)
	afterOrBefore := m.BuildingSFAfter
	if afterOrBefore == nil {
		afterOrBefore = m.BuildingSFBefore
	}
	m.ExitPSF = pricePerSF(m.ExitPrice, afterOrBefore)
	m.ListPSF = pricePerSF(m.ListPrice, afterOrBefore)

	return m
}

// BuildConstructionSummary maps the size metrics and classifier flags onto
// the physical-change summary the cost model consumes. A project is treated
// as new construction when a new-structure permit was flagged, or when no
// pre-project area exists but a final area does.
func BuildConstructionSummary(m models.DerivedMetrics, cats models.PermitCategories) models.ConstructionSummary {
	s := models.ConstructionSummary{
		ExistingSF: m.BuildingSFBefore,
		AddedSF:    m.SFAdded,
		FinalSF:    m.BuildingSFAfter,
	}
	if s.FinalSF == nil {
		s.FinalSF = m.BuildingSFBefore
	}
	s.IsNewConstruction = cats.HasNewStructure ||
		(m.BuildingSFBefore == nil && m.BuildingSFAfter != nil && cats.DemoCount > 0)
	return s
}

func pricePerSF(price *int, sf *float64) *float64 {
	if price == nil || sf == nil || *sf <= 0 {
		return nil
	}
	v := round2(float64(*price) / *sf)
	return &v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
