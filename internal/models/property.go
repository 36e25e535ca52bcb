package models

import "time"

// Timeline event kinds. Only rows explicitly labeled with one of these on the
// source page become events; nothing else is ever treated as a sale.
const (
	EventListed       = "listed"
	EventActive       = "active"
	EventPending      = "pending"
	EventPriceChanged = "price_changed"
	EventSold         = "sold"
)

// MinPlausiblePrice is the floor below which a parsed figure is almost
// certainly a tax or assessment amount, not a sale price.
const MinPlausiblePrice = 100000

// TimelineEvent is one validated sale/listing event. Price is nil when the
// source showed no price for the row.
type TimelineEvent struct {
	Date      time.Time `json:"date"`
	Kind      string    `json:"kind"`
	Price     *int      `json:"price"`
	RawStatus string    `json:"raw_status,omitempty"`
}

// IsSale reports whether the event is an actual sale.
func (e TimelineEvent) IsSale() bool { return e.Kind == EventSold }

// PropertyFacts holds one source's view of the physical property. The listing
// view and the public-record view are kept as separate instances and never
// merged; derived metrics name which one they used.
type PropertyFacts struct {
	Beds       *float64 `json:"beds"`
	Baths      *float64 `json:"baths"`
	BuildingSF *float64 `json:"building_sf"`
	LotSF      *float64 `json:"lot_sf"`
	YearBuilt  *int     `json:"year_built"`
}

// PropertyRecord is the normalized listing-side record for one property.
type PropertyRecord struct {
	URL          string          `json:"url"`
	Address      string          `json:"address"`
	PropertyType string          `json:"property_type"`
	APN          string          `json:"apn"`
	ListPrice    *int            `json:"list_price"`
	Listing      PropertyFacts   `json:"listing"`
	PublicRecord PropertyFacts   `json:"public_record"`
	Timeline     []TimelineEvent `json:"timeline"`

	SourceOK   bool   `json:"source_ok"`
	SourceNote string `json:"source_note,omitempty"`

	CurrentSummary      string `json:"current_summary"`
	PublicRecordSummary string `json:"public_record_summary"`
	LotSummary          string `json:"lot_summary"`
}

// SelectedEvents is the outcome of purchase/exit selection. Either side may be
// absent; absence means insufficient or inconsistent data, never an error.
type SelectedEvents struct {
	Purchase *TimelineEvent `json:"purchase"`
	Exit     *TimelineEvent `json:"exit"`
}
