package models

// KeywordTable is the versioned rule configuration driving permit
// classification. Categories are tested in the fixed priority order
// supplement > demolition > MEP > building; flags are scanned independently.
// All matching is case-insensitive substring matching over the permit's
// concatenated type/sub-type/description text.
type KeywordTable struct {
	Version int `yaml:"version" json:"version"`

	Supplement []string `yaml:"supplement" json:"supplement"`
	Demolition []string `yaml:"demolition" json:"demolition"`
	MEP        []string `yaml:"mep" json:"mep"`
	Building   []string `yaml:"building" json:"building"`

	ADU            []string `yaml:"adu" json:"adu"`
	NewStructure   []string `yaml:"new_structure" json:"new_structure"`
	Addition       []string `yaml:"addition" json:"addition"`
	MajorRemodel   []string `yaml:"major_remodel" json:"major_remodel"`
	Pool           []string `yaml:"pool" json:"pool"`
	GradingHill    []string `yaml:"grading_hillside" json:"grading_hillside"`
	Methane        []string `yaml:"methane" json:"methane"`
	FireSprinklers []string `yaml:"fire_sprinklers" json:"fire_sprinklers"`
	SprinklerOut   []string `yaml:"sprinkler_removal" json:"sprinkler_removal"`
}

// CostSchedule is the named, overridable cost-model constant set. Rates are
// per square foot; Flat amounts are lump allowances.
type CostSchedule struct {
	Version int `yaml:"version" json:"version"`

	NewConstructionPSF float64 `yaml:"new_construction_psf" json:"new_construction_psf"`
	RemodelPSF         float64 `yaml:"remodel_psf" json:"remodel_psf"`
	AdditionPSF        float64 `yaml:"addition_psf" json:"addition_psf"`
	GaragePSF          float64 `yaml:"garage_psf" json:"garage_psf"`
	ADUPSF             float64 `yaml:"adu_psf" json:"adu_psf"`

	LandscapeDemoFlat float64 `yaml:"landscape_demo_flat" json:"landscape_demo_flat"`
	PoolFlat          float64 `yaml:"pool_flat" json:"pool_flat"`

	// TypicalADUSF caps how much of the added area is costed at the ADU rate
	// when an ADU flag is set; the remainder uses the addition rate.
	TypicalADUSF float64 `yaml:"typical_adu_sf" json:"typical_adu_sf"`

	SoftCostPct        float64 `yaml:"soft_cost_pct" json:"soft_cost_pct"`
	AnnualInterestRate float64 `yaml:"annual_interest_rate" json:"annual_interest_rate"`
	LoanPointsPct      float64 `yaml:"loan_points_pct" json:"loan_points_pct"`
	DefaultHoldMonths  float64 `yaml:"default_hold_months" json:"default_hold_months"`
}
