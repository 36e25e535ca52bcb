package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"compintel/server/internal/models"
)

func withContractor(name, license string) models.PermitRecord {
	return models.PermitRecord{Contractor: &models.PermitContact{Name: name, License: license}}
}

func TestExtractTeam_Empty(t *testing.T) {
	net := ExtractTeam(nil)
	assert.Nil(t, net.PrimaryGC)
	assert.Nil(t, net.PrimaryArchitect)
	assert.Nil(t, net.PrimaryEngineer)
	assert.Empty(t, net.GCLicenseURL)
}

func TestExtractTeam_PrimaryByOccurrence(t *testing.T) {
	permits := []models.PermitRecord{
		withContractor("Apex Builders Inc", "123456"),
		withContractor("Valley Plumbing Co", "654321"),
		withContractor("Apex Builders Inc", ""),
	}

	net := ExtractTeam(permits)
	require.NotNil(t, net.PrimaryGC)
	assert.Equal(t, "Apex Builders Inc", net.PrimaryGC.Name)
	assert.Equal(t, 2, net.PrimaryGC.Count)
	assert.Equal(t, "123456", net.PrimaryGC.License)

	require.Len(t, net.OtherGCs, 1)
	assert.Equal(t, "Valley Plumbing Co", net.OtherGCs[0].Name)
}

func TestExtractTeam_TieBreaksFirstSeen(t *testing.T) {
	permits := []models.PermitRecord{
		withContractor("First Seen Builders", ""),
		withContractor("Second Seen Builders", ""),
	}

	net := ExtractTeam(permits)
	require.NotNil(t, net.PrimaryGC)
	assert.Equal(t, "First Seen Builders", net.PrimaryGC.Name)
}

func TestExtractTeam_CaseInsensitiveMerge(t *testing.T) {
	permits := []models.PermitRecord{
		withContractor("Apex Builders Inc", ""),
		withContractor("APEX BUILDERS INC", "987654"),
	}

	net := ExtractTeam(permits)
	require.NotNil(t, net.PrimaryGC)
	assert.Equal(t, 2, net.PrimaryGC.Count)
	// First spelling sticks; the later license backfills.
	assert.Equal(t, "Apex Builders Inc", net.PrimaryGC.Name)
	assert.Equal(t, "987654", net.PrimaryGC.License)
	assert.Empty(t, net.OtherGCs)
}

func TestExtractTeam_FirstLicenseSticks(t *testing.T) {
	permits := []models.PermitRecord{
		withContractor("Apex Builders Inc", "111111"),
		withContractor("Apex Builders Inc", "222222"),
	}

	net := ExtractTeam(permits)
	require.NotNil(t, net.PrimaryGC)
	assert.Equal(t, "111111", net.PrimaryGC.License)
}

func TestExtractTeam_PlaceholdersRejected(t *testing.T) {
	for _, name := range []string{"", "N/A", "na", "Unknown", "NONE", "---", "  "} {
		net := ExtractTeam([]models.PermitRecord{withContractor(name, "123456")})
		assert.Nil(t, net.PrimaryGC, "name %q", name)
	}
}

func TestExtractTeam_RolesIndependent(t *testing.T) {
	permits := []models.PermitRecord{
		{
			Contractor: &models.PermitContact{Name: "Apex Builders Inc", License: "123456"},
			Architect:  &models.PermitContact{Name: "J Smith Design"},
			Engineer:   &models.PermitContact{Name: "Hillside Structural"},
		},
	}

	net := ExtractTeam(permits)
	require.NotNil(t, net.PrimaryGC)
	require.NotNil(t, net.PrimaryArchitect)
	require.NotNil(t, net.PrimaryEngineer)
	assert.Equal(t, "J Smith Design", net.PrimaryArchitect.Name)
	assert.Equal(t, "Hillside Structural", net.PrimaryEngineer.Name)
}

func TestExtractTeam_LicenseURL(t *testing.T) {
	net := ExtractTeam([]models.PermitRecord{withContractor("Apex Builders Inc", "123456")})
	assert.Equal(t,
		"https://www2.cslb.ca.gov/OnlineServices/CheckLicenseII/LicenseDetail.aspx?LicNum=123456",
		net.GCLicenseURL)

	net = ExtractTeam([]models.PermitRecord{withContractor("Apex Builders Inc", "")})
	assert.Empty(t, net.GCLicenseURL)
}
