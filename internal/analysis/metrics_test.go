package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"compintel/server/internal/models"
)

func TestDeriveMetrics_FullFlip(t *testing.T) {
	events := models.SelectedEvents{
		Purchase: &models.TimelineEvent{Date: day(2019, 3, 1), Kind: models.EventSold, Price: intPtr(900000)},
		Exit:     &models.TimelineEvent{Date: day(2024, 7, 15), Kind: models.EventSold, Price: intPtr(1500000)},
	}
	property := &models.PropertyRecord{
		PublicRecord: models.PropertyFacts{BuildingSF: floatPtr(1200), LotSF: floatPtr(6000)},
		Listing:      models.PropertyFacts{BuildingSF: floatPtr(2400)},
	}

	m := DeriveMetrics(events, property)

	require.NotNil(t, m.Spread)
	assert.Equal(t, 600000, *m.Spread)
	require.NotNil(t, m.ROIPct)
	assert.InDelta(t, 66.67, *m.ROIPct, 0.001)
	require.NotNil(t, m.HoldDays)
	assert.Equal(t, 1963, *m.HoldDays)
	require.NotNil(t, m.SpreadPerDay)
	assert.InDelta(t, 305.65, *m.SpreadPerDay, 0.01)

	require.NotNil(t, m.SFAdded)
	assert.Equal(t, 1200.0, *m.SFAdded)
	require.NotNil(t, m.SFAddedPct)
	assert.InDelta(t, 100.0, *m.SFAddedPct, 0.001)

	require.NotNil(t, m.FARBefore)
	assert.InDelta(t, 0.2, *m.FARBefore, 0.001)
	require.NotNil(t, m.FARAfter)
	assert.InDelta(t, 0.4, *m.FARAfter, 0.001)

	require.NotNil(t, m.PurchasePSF)
	assert.InDelta(t, 750.0, *m.PurchasePSF, 0.001)
	require.NotNil(t, m.ExitPSF)
	assert.InDelta(t, 625.0, *m.ExitPSF, 0.001)
}

func TestDeriveMetrics_NoPurchase(t *testing.T) {
	events := models.SelectedEvents{
		Exit: &models.TimelineEvent{Date: day(2024, 7, 15), Kind: models.EventSold, Price: intPtr(1500000)},
	}
	property := &models.PropertyRecord{
		PublicRecord: models.PropertyFacts{BuildingSF: floatPtr(1200)},
		Listing:      models.PropertyFacts{BuildingSF: floatPtr(2400)},
	}

	m := DeriveMetrics(events, property)

	assert.Nil(t, m.PurchasePrice)
	assert.Nil(t, m.PurchaseDate)
	assert.Nil(t, m.Spread)
	assert.Nil(t, m.ROIPct)
	assert.Nil(t, m.HoldDays)
	assert.Nil(t, m.SpreadPerDay)
	assert.Nil(t, m.PurchasePSF)

	// Size metrics do not depend on the purchase.
	require.NotNil(t, m.SFAdded)
	assert.Equal(t, 1200.0, *m.SFAdded)
	require.NotNil(t, m.ExitPSF)
	assert.InDelta(t, 625.0, *m.ExitPSF, 0.001)
}

func TestDeriveMetrics_ActiveListing(t *testing.T) {
	events := models.SelectedEvents{
		Purchase: &models.TimelineEvent{Date: day(2023, 2, 1), Kind: models.EventSold, Price: intPtr(1000000)},
		Exit:     &models.TimelineEvent{Date: day(2024, 6, 1), Kind: models.EventActive, Price: intPtr(1800000)},
	}
	property := &models.PropertyRecord{
		ListPrice: intPtr(1800000),
		Listing:   models.PropertyFacts{BuildingSF: floatPtr(2000)},
	}

	m := DeriveMetrics(events, property)

	require.NotNil(t, m.Spread)
	assert.Equal(t, 800000, *m.Spread)
	require.NotNil(t, m.ListPSF)
	assert.InDelta(t, 900.0, *m.ListPSF, 0.001)
	// No public-record area, so no before/after comparison.
	assert.Nil(t, m.SFAdded)
	assert.Nil(t, m.PurchasePSF)
}

func TestDeriveMetrics_SameDayPurchaseAndExit(t *testing.T) {
	d := day(2024, 1, 1)
	events := models.SelectedEvents{
		Purchase: &models.TimelineEvent{Date: d, Kind: models.EventSold, Price: intPtr(1000000)},
		Exit:     &models.TimelineEvent{Date: d, Kind: models.EventSold, Price: intPtr(1100000)},
	}

	m := DeriveMetrics(events, nil)

	require.NotNil(t, m.HoldDays)
	assert.Equal(t, 0, *m.HoldDays)
	// Velocity is undefined over a zero-day hold.
	assert.Nil(t, m.SpreadPerDay)
	require.NotNil(t, m.Spread)
	assert.Equal(t, 100000, *m.Spread)
}

func TestDeriveMetrics_UnchangedArea(t *testing.T) {
	property := &models.PropertyRecord{
		PublicRecord: models.PropertyFacts{BuildingSF: floatPtr(1500)},
		Listing:      models.PropertyFacts{BuildingSF: floatPtr(1500)},
	}

	m := DeriveMetrics(models.SelectedEvents{}, property)
	assert.Nil(t, m.SFAdded)
	assert.Nil(t, m.SFAddedPct)
}

func TestDeriveMetrics_LotFallsBackToListing(t *testing.T) {
	property := &models.PropertyRecord{
		Listing: models.PropertyFacts{LotSF: floatPtr(7500), BuildingSF: floatPtr(1500)},
	}

	m := DeriveMetrics(models.SelectedEvents{}, property)
	require.NotNil(t, m.LotSF)
	assert.Equal(t, 7500.0, *m.LotSF)
	require.NotNil(t, m.FARAfter)
	assert.InDelta(t, 0.2, *m.FARAfter, 0.001)
}

func TestBuildConstructionSummary(t *testing.T) {
	tests := []struct {
		name    string
		metrics models.DerivedMetrics
		cats    models.PermitCategories
		wantNew bool
	}{
		{
			name:    "new structure flag",
			metrics: models.DerivedMetrics{BuildingSFBefore: floatPtr(1000), BuildingSFAfter: floatPtr(3000)},
			cats:    models.PermitCategories{HasNewStructure: true},
			wantNew: true,
		},
		{
			name:    "demo with no prior area",
			metrics: models.DerivedMetrics{BuildingSFAfter: floatPtr(3000)},
			cats:    models.PermitCategories{DemoCount: 1},
			wantNew: true,
		},
		{
			name:    "remodel",
			metrics: models.DerivedMetrics{BuildingSFBefore: floatPtr(1000), BuildingSFAfter: floatPtr(1400)},
			cats:    models.PermitCategories{BuildingCount: 2},
			wantNew: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := BuildConstructionSummary(tt.metrics, tt.cats)
			assert.Equal(t, tt.wantNew, s.IsNewConstruction)
		})
	}

	t.Run("final area falls back to existing", func(t *testing.T) {
		s := BuildConstructionSummary(models.DerivedMetrics{BuildingSFBefore: floatPtr(1000)}, models.PermitCategories{})
		require.NotNil(t, s.FinalSF)
		assert.Equal(t, 1000.0, *s.FinalSF)
	})
}
