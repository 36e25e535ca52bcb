package analysis

import (
	"fmt"
	"strings"

	"compintel/server/internal/models"
)

// ExtractTeam aggregates contractor/architect/engineer mentions across the
// permit list. Placeholder values are rejected; the primary per role is the
// highest-occurrence distinct name, ties broken by first-seen order. The
// first non-empty license seen for a name sticks to it.
func ExtractTeam(permits []models.PermitRecord) models.TeamNetwork {
	var net models.TeamNetwork

	net.PrimaryGC, net.OtherGCs = rankRole(permits, func(p *models.PermitRecord) *models.PermitContact {
		return p.Contractor
	})
	net.PrimaryArchitect, net.OtherArchitects = rankRole(permits, func(p *models.PermitRecord) *models.PermitContact {
		return p.Architect
	})
	net.PrimaryEngineer, net.OtherEngineers = rankRole(permits, func(p *models.PermitRecord) *models.PermitContact {
		return p.Engineer
	})

	if net.PrimaryGC != nil && net.PrimaryGC.License != "" {
		net.GCLicenseURL = fmt.Sprintf(models.CSLBDetailURLFormat, net.PrimaryGC.License)
	}

	return net
}

func rankRole(permits []models.PermitRecord, pick func(*models.PermitRecord) *models.PermitContact) (*models.TeamMember, []models.TeamMember) {
	var ordered []*models.TeamMember
	index := map[string]*models.TeamMember{}

	for i := range permits {
		contact := pick(&permits[i])
		if contact == nil || isPlaceholderName(contact.Name) {
			continue
		}
		key := strings.ToUpper(strings.TrimSpace(contact.Name))
		member, seen := index[key]
		if !seen {
			member = &models.TeamMember{Name: strings.TrimSpace(contact.Name)}
			index[key] = member
			ordered = append(ordered, member)
		}
		member.Count++
		if member.License == "" && contact.License != "" {
			member.License = contact.License
		}
	}

	if len(ordered) == 0 {
		return nil, nil
	}

	// Highest count wins; earlier first-seen wins ties. Stable selection
	// over the first-seen order keeps the tie-break deterministic.
	primary := ordered[0]
	for _, m := range ordered[1:] {
		if m.Count > primary.Count {
			primary = m
		}
	}

	others := make([]models.TeamMember, 0, len(ordered)-1)
	for _, m := range ordered {
		if m != primary {
			others = append(others, *m)
		}
	}
	return primary, others
}

// isPlaceholderName rejects the registry's empty-value markers.
func isPlaceholderName(name string) bool {
	n := strings.ToUpper(strings.TrimSpace(name))
	if n == "" || n == "N/A" || n == "NA" || n == "UNKNOWN" || n == "NONE" {
		return true
	}
	return strings.Trim(n, "-—– ") == ""
}
