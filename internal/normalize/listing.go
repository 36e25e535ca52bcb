package normalize

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"compintel/server/internal/models"
)

var validEventKinds = map[string]bool{
	models.EventListed:       true,
	models.EventActive:       true,
	models.EventPending:      true,
	models.EventPriceChanged: true,
	models.EventSold:         true,
}

// Listing normalizes a raw listing-source record into a PropertyRecord.
// A nil or error-shaped input yields a degraded record with SourceOK false;
// the pipeline proceeds on the permit side alone.
func Listing(raw *models.RawListing, logger *logrus.Logger) *models.PropertyRecord {
	if raw == nil {
		return &models.PropertyRecord{
			Address:             "Unknown (listing source unavailable)",
			SourceOK:            false,
			SourceNote:          "listing source unavailable",
			CurrentSummary:      "Data not available",
			PublicRecordSummary: "Data not available",
			LotSummary:          "Lot: Data not available",
		}
	}

	rec := &models.PropertyRecord{
		URL:          raw.URL,
		Address:      raw.Address,
		PropertyType: raw.PropertyType,
		APN:          raw.APN,
		ListPrice:    raw.ListPrice,
		Listing: models.PropertyFacts{
			Beds:       raw.Beds,
			Baths:      raw.Baths,
			BuildingSF: raw.BuildingSF,
			LotSF:      raw.LotSF,
			YearBuilt:  raw.YearBuilt,
		},
		PublicRecord: models.PropertyFacts{
			Beds:       raw.PublicBeds,
			Baths:      raw.PublicBaths,
			BuildingSF: raw.PublicBuildingSF,
			LotSF:      raw.PublicLotSF,
			YearBuilt:  raw.PublicYearBuilt,
		},
		SourceOK:   raw.SourceOK,
		SourceNote: raw.SourceNote,
	}

	if rec.Address == "" {
		rec.Address = AddressFromURL(raw.URL)
	}

	rec.Timeline = normalizeTimeline(raw.Timeline, logger)

	rec.CurrentSummary = factsSummary(rec.Listing)
	rec.PublicRecordSummary = factsSummary(rec.PublicRecord)
	rec.LotSummary = lotSummary(rec.PublicRecord.LotSF, rec.Listing.LotSF)

	return rec
}

// normalizeTimeline keeps only rows with a recognized event kind, a parseable
// date, and a plausible price. Rows priced under the plausibility floor are
// dropped wholesale: a figure that low on a sale row is a tax or assessment
// amount that leaked through the scrape.
func normalizeTimeline(rows []models.RawTimelineRow, logger *logrus.Logger) []models.TimelineEvent {
	events := make([]models.TimelineEvent, 0, len(rows))
	for _, row := range rows {
		kind := strings.ToLower(strings.TrimSpace(row.Event))
		kind = strings.ReplaceAll(kind, " ", "_")
		if !validEventKinds[kind] {
			continue
		}
		date := ParseDate(row.Date)
		if date == nil {
			if logger != nil {
				logger.WithField("date", row.Date).Debug("Dropping timeline row with unparseable date")
			}
			continue
		}
		if row.Price != nil && *row.Price < models.MinPlausiblePrice {
			if logger != nil {
				logger.WithFields(logrus.Fields{
					"kind":  kind,
					"price": *row.Price,
				}).Debug("Dropping timeline row with implausible price")
			}
			continue
		}
		events = append(events, models.TimelineEvent{
			Date:      *date,
			Kind:      kind,
			Price:     row.Price,
			RawStatus: row.RawStatus,
		})
	}

	// Ascending by date; ties keep source order.
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date.Before(events[j].Date)
	})
	return events
}

// AddressFromURL extracts a readable address from a listing URL path, used as
// a display fallback when the page itself yielded no address.
func AddressFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "Unknown address"
	}
	parts := make([]string, 0, 6)
	for _, p := range strings.Split(u.Path, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) >= 3 {
		return strings.ReplaceAll(parts[2], "-", " ")
	}
	return "Unknown address"
}

func factsSummary(f models.PropertyFacts) string {
	parts := make([]string, 0, 3)
	if f.Beds != nil {
		parts = append(parts, fmt.Sprintf("%d bed", int(*f.Beds)))
	}
	if f.Baths != nil {
		parts = append(parts, fmt.Sprintf("%g bath", *f.Baths))
	}
	if f.BuildingSF != nil {
		parts = append(parts, fmt.Sprintf("%s SF", formatThousands(int(*f.BuildingSF))))
	}
	if len(parts) == 0 {
		return "Data not available"
	}
	return strings.Join(parts, ", ")
}

// lotSummary prefers the public-record lot size; the listing banner is the
// fallback. Acreage is shown once the lot is at least a tenth of an acre.
func lotSummary(publicLot, listingLot *float64) string {
	lot := publicLot
	if lot == nil {
		lot = listingLot
	}
	if lot == nil {
		return "Lot: Data not available"
	}
	s := fmt.Sprintf("Lot: %s SF", formatThousands(int(*lot)))
	acres := *lot / 43560.0
	if acres >= 0.1 {
		s += fmt.Sprintf(" (%.2f acres)", acres)
	}
	return s
}

func formatThousands(n int) string {
	s := fmt.Sprintf("%d", n)
	if n < 0 {
		return s
	}
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String()
}
