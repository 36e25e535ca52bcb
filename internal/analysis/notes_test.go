package analysis

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"compintel/server/internal/models"
)

func hasNoteContaining(notes []string, substr string) bool {
	for _, n := range notes {
		if strings.Contains(n, substr) {
			return true
		}
	}
	return false
}

func TestCollectNotes_CompleteData(t *testing.T) {
	now := time.Now()
	property := &models.PropertyRecord{SourceOK: true}
	permits := &models.PermitSet{SourceOK: true, Permits: []models.PermitRecord{{PermitNumber: "P1"}}}
	m := models.DerivedMetrics{
		PurchasePrice:    intPtr(900000),
		PurchaseDate:     &now,
		ExitPrice:        intPtr(1500000),
		ExitDate:         &now,
		BuildingSFBefore: floatPtr(1200),
		LotSF:            floatPtr(6000),
	}
	tl := models.ProjectTimeline{ConstructionCompleted: &now}
	total := 1200000.0
	profit := 300000.0
	costs := models.CostBreakdown{TotalProjectCost: &total, EstimatedProfit: &profit}

	notes := CollectNotes(property, permits, m, tl, costs)
	assert.Empty(t, notes)
}

func TestCollectNotes_SourceFailures(t *testing.T) {
	property := &models.PropertyRecord{SourceOK: false, SourceNote: "fetch timed out"}
	permits := &models.PermitSet{SourceOK: false}

	notes := CollectNotes(property, permits, models.DerivedMetrics{}, models.ProjectTimeline{}, models.CostBreakdown{})

	assert.True(t, hasNoteContaining(notes, "listing source unavailable"))
	assert.True(t, hasNoteContaining(notes, "fetch timed out"))
	assert.True(t, hasNoteContaining(notes, "permit source unavailable"))
}

func TestCollectNotes_NoPurchase(t *testing.T) {
	notes := CollectNotes(nil, nil, models.DerivedMetrics{}, models.ProjectTimeline{}, models.CostBreakdown{})

	assert.True(t, hasNoteContaining(notes, "purchase price/date unknown"))
	assert.True(t, hasNoteContaining(notes, "no exit event"))
	assert.True(t, hasNoteContaining(notes, "building area missing"))
	assert.True(t, hasNoteContaining(notes, "lot size missing"))
	assert.True(t, hasNoteContaining(notes, "total project cost and profit not estimated"))
}

func TestCollectNotes_NoCofONote(t *testing.T) {
	permits := &models.PermitSet{SourceOK: true, Permits: []models.PermitRecord{{PermitNumber: "P1"}}}

	notes := CollectNotes(nil, permits, models.DerivedMetrics{}, models.ProjectTimeline{}, models.CostBreakdown{})
	assert.True(t, hasNoteContaining(notes, "certificate-of-occupancy"))

	// No permits at all: the absence of a final date is not noteworthy.
	empty := &models.PermitSet{SourceOK: true}
	notes = CollectNotes(nil, empty, models.DerivedMetrics{}, models.ProjectTimeline{}, models.CostBreakdown{})
	assert.False(t, hasNoteContaining(notes, "certificate-of-occupancy"))
}

func TestCollectNotes_ProfitGap(t *testing.T) {
	total := 1200000.0
	costs := models.CostBreakdown{TotalProjectCost: &total}

	notes := CollectNotes(nil, nil, models.DerivedMetrics{}, models.ProjectTimeline{}, costs)
	assert.True(t, hasNoteContaining(notes, "profit not estimated"))
	assert.False(t, hasNoteContaining(notes, "total project cost and profit not estimated"))
}
