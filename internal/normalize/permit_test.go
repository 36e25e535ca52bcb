package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"compintel/server/internal/models"
)

func TestPermits_NilInput(t *testing.T) {
	set := Permits(nil, 2020, nil)
	require.NotNil(t, set)
	assert.False(t, set.SourceOK)
	assert.Empty(t, set.Permits)
}

func TestPermits_CutoffFilter(t *testing.T) {
	raw := &models.RawPermitFeed{
		SourceOK: true,
		Permits: []models.RawPermit{
			{PermitNumber: "OLD-1", StatusDate: "06/01/2015"},
			{PermitNumber: "NEW-1", StatusDate: "06/01/2021"},
			{PermitNumber: "EDGE-1", StatusDate: "01/01/2020"},
			{PermitNumber: "UNDATED-1", StatusDate: "pending"},
		},
	}

	set := Permits(raw, 2020, nil)

	numbers := make([]string, 0, len(set.Permits))
	for _, p := range set.Permits {
		numbers = append(numbers, p.PermitNumber)
	}
	// Permits at or after the cutoff year stay; an unparseable status date is
	// not evidence of age, so the permit stays too.
	assert.Equal(t, []string{"NEW-1", "EDGE-1", "UNDATED-1"}, numbers)
}

func TestPermits_CutoffDisabled(t *testing.T) {
	raw := &models.RawPermitFeed{
		SourceOK: true,
		Permits:  []models.RawPermit{{PermitNumber: "OLD-1", StatusDate: "06/01/2015"}},
	}

	set := Permits(raw, 0, nil)
	assert.Len(t, set.Permits, 1)
}

func TestPermits_ContactParsing(t *testing.T) {
	raw := &models.RawPermitFeed{
		SourceOK: true,
		Permits: []models.RawPermit{
			{
				PermitNumber: "P-1",
				StatusDate:   "06/01/2021",
				Contacts: map[string]string{
					"Contractor":        "Contractor: Apex Builders Inc Lic. 123456",
					"Architect (Of Record)": "J Smith Design",
					"Engineer":          "Engineer:",
				},
			},
		},
	}

	set := Permits(raw, 2020, nil)
	require.Len(t, set.Permits, 1)
	p := set.Permits[0]

	require.NotNil(t, p.Contractor)
	assert.Equal(t, "Apex Builders Inc Lic. 123456", p.Contractor.Name)
	assert.Equal(t, "123456", p.Contractor.License)

	require.NotNil(t, p.Architect)
	assert.Equal(t, "J Smith Design", p.Architect.Name)
	assert.Empty(t, p.Architect.License)

	// Role label with nothing after the colon is not a contact.
	assert.Nil(t, p.Engineer)
}

func TestParseContact(t *testing.T) {
	tests := []struct {
		name        string
		in          string
		wantNil     bool
		wantName    string
		wantLicense string
	}{
		{"empty", "", true, "", ""},
		{"whitespace", "   ", true, "", ""},
		{"bare name", "Apex Builders Inc", false, "Apex Builders Inc", ""},
		{"role prefix", "Contractor: Apex Builders Inc", false, "Apex Builders Inc", ""},
		{"license in text", "Apex Builders Inc Lic. 1057382", false, "Apex Builders Inc Lic. 1057382", "1057382"},
		{"five digits is not a license", "Apex Builders 12345", false, "Apex Builders 12345", ""},
		{"nine digits is not a license", "Apex Builders 123456789", false, "Apex Builders 123456789", ""},
		{"first run wins", "Apex 123456 and 654321", false, "Apex 123456 and 654321", "123456"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := parseContact(tt.in)
			if tt.wantNil {
				assert.Nil(t, c)
				return
			}
			require.NotNil(t, c)
			assert.Equal(t, tt.wantName, c.Name)
			assert.Equal(t, tt.wantLicense, c.License)
		})
	}
}

func TestPermits_StatusHistory(t *testing.T) {
	raw := &models.RawPermitFeed{
		SourceOK: true,
		Permits: []models.RawPermit{
			{
				PermitNumber: "P-1",
				StatusDate:   "06/01/2021",
				StatusHistory: []models.RawStatusRow{
					{Event: "Application Submitted", Date: "01/15/2021", Person: "Applicant"},
					{Event: "Permit Issued", Date: "TBD"},
					{Event: "", Date: "03/01/2021"},
				},
			},
		},
	}

	set := Permits(raw, 2020, nil)
	require.Len(t, set.Permits, 1)
	history := set.Permits[0].StatusHistory

	// Undated events are kept; unlabeled rows are dropped.
	require.Len(t, history, 2)
	require.NotNil(t, history[0].Date)
	assert.Equal(t, "Applicant", history[0].Actor)
	assert.Equal(t, "Permit Issued", history[1].Label)
	assert.Nil(t, history[1].Date)
}

func TestEarliestApplicationDate(t *testing.T) {
	set := &models.PermitSet{
		Permits: []models.PermitRecord{
			{
				StatusHistory: []models.StatusEvent{
					{Label: "Application Submitted", Date: timePtr(2020, 6, 1)},
				},
			},
			{
				StatusHistory: []models.StatusEvent{
					{Label: "Submitted for Plan Check", Date: timePtr(2020, 3, 15)},
					{Label: "Permit Issued", Date: timePtr(2020, 1, 1)},
				},
			},
		},
	}

	got := set.EarliestApplicationDate()
	require.NotNil(t, got)
	assert.Equal(t, *timePtr(2020, 3, 15), *got)

	empty := &models.PermitSet{}
	assert.Nil(t, empty.EarliestApplicationDate())
}

func TestPermits_FieldsTrimmed(t *testing.T) {
	raw := &models.RawPermitFeed{
		SourceOK: true,
		Permits: []models.RawPermit{
			{
				PermitNumber:    " 21010-10000-01234 ",
				Type:            " Bldg-New ",
				WorkDescription: " New 2-story SFD ",
				IssuedDate:      "2021-02-03",
				StatusDate:      "06/01/2021",
			},
		},
	}

	set := Permits(raw, 2020, nil)
	require.Len(t, set.Permits, 1)
	p := set.Permits[0]
	assert.Equal(t, "21010-10000-01234", p.PermitNumber)
	assert.Equal(t, "Bldg-New", p.Type)
	assert.Equal(t, "New 2-story SFD", p.WorkDescription)
	require.NotNil(t, p.IssuedDate)
	assert.Equal(t, 2021, p.IssuedDate.Year())
}
