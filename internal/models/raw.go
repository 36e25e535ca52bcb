package models

// Raw payload shapes delivered by the two source collaborators. The scrapers
// produce these as best-effort parsed records; the normalizers turn them into
// the typed records below. Dates arrive as text and are parsed downstream so
// an unparseable date can be dropped instead of guessed.

// RawTimelineRow is one sale-history row from the listing source. Price is nil
// when the source showed no price ("*" rows); it is never inferred.
type RawTimelineRow struct {
	Date      string `json:"date"`
	Event     string `json:"event"`
	Price     *int   `json:"price"`
	RawStatus string `json:"raw_status"`
}

// RawListing is the listing-source contract. ListPrice comes only from the
// explicit asking-price element; tax and assessment figures never appear here.
type RawListing struct {
	SourceOK   bool   `json:"source_ok"`
	SourceNote string `json:"source_note"`
	URL        string `json:"url"`
	Address    string `json:"address"`

	Beds         *float64 `json:"beds"`
	Baths        *float64 `json:"baths"`
	BuildingSF   *float64 `json:"building_sf"`
	LotSF        *float64 `json:"lot_sf"`
	YearBuilt    *int     `json:"year_built"`
	ListPrice    *int     `json:"list_price"`
	PropertyType string   `json:"property_type"`

	PublicBeds       *float64 `json:"public_beds"`
	PublicBaths      *float64 `json:"public_baths"`
	PublicBuildingSF *float64 `json:"public_building_sf"`
	PublicLotSF      *float64 `json:"public_lot_sf"`
	PublicYearBuilt  *int     `json:"public_year_built"`
	APN              string   `json:"apn"`

	Timeline []RawTimelineRow `json:"timeline"`
}

// RawStatusRow is one status-history row from a permit detail page.
type RawStatusRow struct {
	Event  string `json:"event"`
	Date   string `json:"date"`
	Person string `json:"person"`
}

// RawPermit is one permit row from the permit registry. Contacts maps the
// registry's role label (e.g. "Contractor") to the raw contact string, which
// may embed a license number.
type RawPermit struct {
	PermitNumber    string            `json:"permit_number"`
	JobNumber       string            `json:"job_number"`
	Type            string            `json:"type"`
	SubType         string            `json:"sub_type"`
	Status          string            `json:"status"`
	WorkDescription string            `json:"work_description"`
	IssuedDate      string            `json:"issued_date"`
	StatusDate      string            `json:"status_date"`
	Contacts        map[string]string `json:"contacts"`
	StatusHistory   []RawStatusRow    `json:"status_history"`
}

// RawPermitFeed is the permit-source contract.
type RawPermitFeed struct {
	SourceOK   bool        `json:"source_ok"`
	SourceNote string      `json:"source_note"`
	Permits    []RawPermit `json:"permits"`
}
