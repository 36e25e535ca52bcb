package normalize

import (
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"

	"compintel/server/internal/models"
)

// licensePattern matches the first 6-8 digit run in a registry contact
// string. A license is recorded only when such a run is present.
var licensePattern = regexp.MustCompile(`\b(\d{6,8})\b`)

// Permits normalizes a raw permit feed into a PermitSet. Permits whose status
// date parses to a year before cutoffYear are dropped; permits with an
// unparseable status date are kept, since absence of a date is not evidence
// of age.
func Permits(raw *models.RawPermitFeed, cutoffYear int, logger *logrus.Logger) *models.PermitSet {
	if raw == nil {
		return &models.PermitSet{
			SourceOK:   false,
			SourceNote: "permit source unavailable",
		}
	}

	set := &models.PermitSet{
		Permits:    make([]models.PermitRecord, 0, len(raw.Permits)),
		SourceOK:   raw.SourceOK,
		SourceNote: raw.SourceNote,
	}

	for _, rp := range raw.Permits {
		statusDate := ParseDate(rp.StatusDate)
		if statusDate != nil && cutoffYear > 0 && statusDate.Year() < cutoffYear {
			continue
		}

		rec := models.PermitRecord{
			PermitNumber:    strings.TrimSpace(rp.PermitNumber),
			JobNumber:       strings.TrimSpace(rp.JobNumber),
			Type:            strings.TrimSpace(rp.Type),
			SubType:         strings.TrimSpace(rp.SubType),
			Status:          strings.TrimSpace(rp.Status),
			WorkDescription: strings.TrimSpace(rp.WorkDescription),
			IssuedDate:      ParseDate(rp.IssuedDate),
			StatusDate:      statusDate,
		}

		for role, info := range rp.Contacts {
			contact := parseContact(info)
			if contact == nil {
				continue
			}
			roleUpper := strings.ToUpper(role)
			switch {
			case strings.Contains(roleUpper, "CONTRACTOR"):
				if rec.Contractor == nil {
					rec.Contractor = contact
				}
			case strings.Contains(roleUpper, "ARCHITECT"):
				if rec.Architect == nil {
					rec.Architect = contact
				}
			case strings.Contains(roleUpper, "ENGINEER"):
				if rec.Engineer == nil {
					rec.Engineer = contact
				}
			}
		}

		rec.StatusHistory = normalizeStatusHistory(rp.StatusHistory, logger)
		set.Permits = append(set.Permits, rec)
	}

	return set
}

// parseContact splits a registry contact string into name and license. The
// registry sometimes prefixes the value with the role label and a colon;
// everything after the first colon is the name. The license is the first 6-8
// digit run, if any.
func parseContact(info string) *models.PermitContact {
	info = strings.TrimSpace(info)
	if info == "" {
		return nil
	}
	name := info
	if idx := strings.Index(info, ":"); idx >= 0 {
		name = strings.TrimSpace(info[idx+1:])
	}
	if name == "" {
		return nil
	}
	contact := &models.PermitContact{Name: name}
	if m := licensePattern.FindStringSubmatch(info); m != nil {
		contact.License = m[1]
	}
	return contact
}

func normalizeStatusHistory(rows []models.RawStatusRow, logger *logrus.Logger) []models.StatusEvent {
	history := make([]models.StatusEvent, 0, len(rows))
	for _, row := range rows {
		label := strings.TrimSpace(row.Event)
		if label == "" {
			continue
		}
		date := ParseDate(row.Date)
		if date == nil && logger != nil && strings.TrimSpace(row.Date) != "" {
			logger.WithFields(logrus.Fields{
				"label": label,
				"date":  row.Date,
			}).Debug("Status history date did not parse; keeping event undated")
		}
		history = append(history, models.StatusEvent{
			Label: label,
			Date:  date,
			Actor: strings.TrimSpace(row.Person),
		})
	}
	return history
}
