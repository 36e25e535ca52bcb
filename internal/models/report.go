package models

import "time"

// DerivedMetrics is the flat record of derived financial and size metrics.
// Every field is nullable: a nil field means the inputs required to derive it
// were absent or inconsistent, and a data-quality note says why. Nothing here
// is ever defaulted or estimated.
type DerivedMetrics struct {
	PurchasePrice *int       `json:"purchase_price"`
	PurchaseDate  *time.Time `json:"purchase_date"`
	ExitPrice     *int       `json:"exit_price"`
	ExitDate      *time.Time `json:"exit_date"`

	// ListPrice is the current asking price. It is tracked separately from
	// ExitPrice and never substitutes for it.
	ListPrice *int `json:"list_price"`

	Spread       *int     `json:"spread"`
	ROIPct       *float64 `json:"roi_pct"`
	HoldDays     *int     `json:"hold_days"`
	SpreadPerDay *float64 `json:"spread_per_day"`

	// Before = public-record building area, After = current listing area.
	BuildingSFBefore *float64 `json:"building_sf_before"`
	BuildingSFAfter  *float64 `json:"building_sf_after"`
	SFAdded          *float64 `json:"sf_added"`
	SFAddedPct       *float64 `json:"sf_added_pct"`

	LotSF     *float64 `json:"lot_sf"`
	FARBefore *float64 `json:"far_before"`
	FARAfter  *float64 `json:"far_after"`

	PurchasePSF *float64 `json:"purchase_psf"`
	ExitPSF     *float64 `json:"exit_psf"`
	ListPSF     *float64 `json:"list_psf"`
}

// Scope levels and complexity ratings, ordered LIGHT < MEDIUM < HEAVY.
const (
	ScopeLight   = "LIGHT"
	ScopeMedium  = "MEDIUM"
	ScopeHeavy   = "HEAVY"
	ScopeUnknown = "UNKNOWN"

	ComplexityLow     = "LOW"
	ComplexityMedium  = "MEDIUM"
	ComplexityHigh    = "HIGH"
	ComplexityUnknown = "UNKNOWN"
)

// PermitCategories is the classifier output: per-category counts, feature
// flags, and the derived scope level and complexity rating.
type PermitCategories struct {
	TotalPermits    int `json:"total_permits"`
	BuildingCount   int `json:"building_count"`
	DemoCount       int `json:"demo_count"`
	MEPCount        int `json:"mep_count"`
	SupplementCount int `json:"supplement_count"`
	OtherCount      int `json:"other_count"`

	HasADU          bool `json:"has_adu"`
	HasNewStructure bool `json:"has_new_structure"`
	HasAddition     bool `json:"has_addition"`
	HasMajorRemodel bool `json:"has_major_remodel"`

	HasPool               bool `json:"has_pool"`
	HasGradingOrHillside  bool `json:"has_grading_or_hillside"`
	HasMethane            bool `json:"has_methane"`
	HasFireSprinklers     bool `json:"has_fire_sprinklers"`
	RemovedFireSprinklers bool `json:"removed_fire_sprinklers"`

	ScopeLevel       string `json:"scope_level"`
	ComplexityScore  string `json:"permit_complexity_score"`
	ComplexityPoints int    `json:"complexity_points"`
}

// TeamMember is one distinct named party for a role, with how often it
// appeared across the property's permits.
type TeamMember struct {
	Name    string `json:"name"`
	License string `json:"license,omitempty"`
	Count   int    `json:"occurrence_count"`
}

// TeamNetwork aggregates contractor/architect/engineer mentions. Primary is
// the highest-occurrence distinct name per role; ties go to first-seen.
type TeamNetwork struct {
	PrimaryGC        *TeamMember  `json:"primary_gc"`
	PrimaryArchitect *TeamMember  `json:"primary_architect"`
	PrimaryEngineer  *TeamMember  `json:"primary_engineer"`
	OtherGCs         []TeamMember `json:"other_gcs,omitempty"`
	OtherArchitects  []TeamMember `json:"other_architects,omitempty"`
	OtherEngineers   []TeamMember `json:"other_engineers,omitempty"`

	// GCLicenseURL is the license-registry detail URL for the primary GC,
	// synthesized only when a license number was present.
	GCLicenseURL string `json:"gc_license_url,omitempty"`
}

// Stage is one non-negative span between adjacent known milestones.
type Stage struct {
	Name  string    `json:"name"`
	Days  int       `json:"days"`
	Start time.Time `json:"start_date"`
	End   time.Time `json:"end_date"`
}

// ProjectTimeline holds the milestone dates mined from permit status history
// plus the stages between them. A milestone with no matching event stays nil.
type ProjectTimeline struct {
	PlansSubmitted        *time.Time `json:"plans_submitted"`
	PlansApproved         *time.Time `json:"plans_approved"`
	ConstructionStart     *time.Time `json:"construction_start"`
	ConstructionCompleted *time.Time `json:"construction_completed"`
	Stages                []Stage    `json:"stages"`
}

// ConstructionSummary describes the physical change the project made.
type ConstructionSummary struct {
	ExistingSF        *float64 `json:"existing_sf"`
	AddedSF           *float64 `json:"added_sf"`
	FinalSF           *float64 `json:"final_sf"`
	IsNewConstruction bool     `json:"is_new_construction"`
}

// CostBreakdown is the cost-model output. TotalProjectCost and
// EstimatedProfit are nil whenever the purchase price is unknown; the
// construction-side figures are still populated.
type CostBreakdown struct {
	HardCost          float64  `json:"hard_cost"`
	SoftCost          float64  `json:"soft_cost"`
	FinancingInterest float64  `json:"financing_interest"`
	FinancingPoints   float64  `json:"financing_points"`
	LoanBase          float64  `json:"loan_base"`
	HoldMonthsUsed    float64  `json:"hold_months_used"`
	TotalProjectCost  *float64 `json:"total_project_cost"`
	EstimatedProfit   *float64 `json:"estimated_profit"`
}

// ScoreComponents are the four independently bucketed sub-scores.
type ScoreComponents struct {
	ROI          int `json:"roi"`
	Complexity   int `json:"permit_complexity"`
	Velocity     int `json:"velocity"`
	HoldDuration int `json:"hold_duration"`
}

// DealFitnessScore is the 0-100 composite score with letter grade.
type DealFitnessScore struct {
	Score      int             `json:"score"`
	Grade      string          `json:"grade"`
	Components ScoreComponents `json:"components"`
	Notes      []string        `json:"notes,omitempty"`
}

// Narrative provenance tags.
const (
	NarrativeSourceAPI      = "api"
	NarrativeSourceFallback = "fallback"
)

// StrategyNotes are the free-text narrative bullets, tagged with whether they
// came from the external generator or the deterministic fallback.
type StrategyNotes struct {
	Tactics  []string `json:"tactics"`
	Risks    []string `json:"risks"`
	Insights []string `json:"insights"`
	Source   string   `json:"source"`
}

// CSLBDetailURLFormat is the license-registry detail page for a license
// number. Only this constant needs updating if the registry moves.
const CSLBDetailURLFormat = "https://www2.cslb.ca.gov/OnlineServices/CheckLicenseII/LicenseDetail.aspx?LicNum=%s"

// LicenseDetail is the license-registry view of a contractor. Decorative
// only; it never feeds financial metrics.
type LicenseDetail struct {
	LicenseNumber string `json:"license_number"`
	BusinessName  string `json:"business_name"`
	Phone         string `json:"phone,omitempty"`
	Address       string `json:"address,omitempty"`
	DetailURL     string `json:"detail_url,omitempty"`
}

// CompReport is the combined report record: the sole externally observable
// artifact of a pipeline run.
type CompReport struct {
	ID          string    `json:"id"`
	URL         string    `json:"url"`
	Address     string    `json:"address"`
	GeneratedAt time.Time `json:"generated_at"`

	Property *PropertyRecord `json:"property"`
	Permits  *PermitSet      `json:"permits"`

	Events       SelectedEvents      `json:"events"`
	Metrics      DerivedMetrics      `json:"metrics"`
	Categories   PermitCategories    `json:"permit_categories"`
	Team         TeamNetwork         `json:"team_network"`
	Construction ConstructionSummary `json:"construction_summary"`
	Timeline     ProjectTimeline     `json:"timeline_summary"`
	Costs        CostBreakdown       `json:"cost_breakdown"`
	Fitness      DealFitnessScore    `json:"deal_fitness"`

	Strategy   *StrategyNotes `json:"strategy_notes,omitempty"`
	GCRegistry *LicenseDetail `json:"gc_registry,omitempty"`

	PermitCount int      `json:"permit_count"`
	DataNotes   []string `json:"data_notes"`
}
