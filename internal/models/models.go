package models

import "time"

// CropKind identifies the crop grown in a paddock
type CropKind string

const (
	CropWheat  CropKind = "Wheat"
	CropBarley CropKind = "Barley"
	CropOats   CropKind = "Oats"
	CropCanola CropKind = "Canola"
)

// Crops lists every supported crop
var Crops = []CropKind{CropWheat, CropBarley, CropOats, CropCanola}

// IsCereal reports whether growth stages for the crop use the Zadoks scale
func (c CropKind) IsCereal() bool {
	return c == CropWheat || c == CropBarley || c == CropOats
}

// Disease identifies a fungal disease with its own risk model
type Disease string

const (
	DiseaseSclerotinia Disease = "sclerotinia"
	DiseaseSeptoria    Disease = "septoria"
	DiseaseRust        Disease = "rust"
	DiseaseBlackleg    Disease = "blackleg"
)

// Diseases lists every disease with a risk model, in display order
var Diseases = []Disease{DiseaseSclerotinia, DiseaseSeptoria, DiseaseRust, DiseaseBlackleg}

// RiskTier is the ordered outcome of a risk model
type RiskTier string

const (
	RiskLow      RiskTier = "Low"
	RiskModerate RiskTier = "Moderate"
	RiskHigh     RiskTier = "High"
)

// Rank orders tiers so Low < Moderate < High
func (t RiskTier) Rank() int {
	switch t {
	case RiskHigh:
		return 2
	case RiskModerate:
		return 1
	default:
		return 0
	}
}

// MoAGroup is a fungicide resistance-management mode-of-action group
type MoAGroup string

const (
	Group3  MoAGroup = "3"  // DMI
	Group7  MoAGroup = "7"  // SDHI
	Group11 MoAGroup = "11" // QoI
)

// Chemistry returns the chemical class abbreviation for the group
func (g MoAGroup) Chemistry() string {
	switch g {
	case Group3:
		return "DMI"
	case Group7:
		return "SDHI"
	case Group11:
		return "QoI"
	default:
		return ""
	}
}

// WeatherSnapshot holds the weather indicators a risk model consumes
type WeatherSnapshot struct {
	TemperatureC     float64 `json:"temperature_c" yaml:"temperature_c"`
	RelativeHumidity float64 `json:"relative_humidity" yaml:"relative_humidity"`
	RainfallMM       float64 `json:"rainfall_mm" yaml:"rainfall_mm"`
	LeafWetnessHours float64 `json:"leaf_wetness_hours" yaml:"leaf_wetness_hours"`
	DaysSinceRain    int     `json:"days_since_rain" yaml:"days_since_rain"`
	RainDaysLastWeek int     `json:"rain_days_last_week" yaml:"rain_days_last_week"`
}

// CropContext describes the crop a recommendation is made for
type CropContext struct {
	Crop          CropKind `json:"crop" yaml:"crop"`
	Variety       string   `json:"variety" yaml:"variety"`
	GrowthStage   string   `json:"growth_stage" yaml:"growth_stage"`
	HasResistance bool     `json:"has_resistance" yaml:"has_resistance"`
	// ResistanceRating is the blackleg rating (R, MR, MRMS, MS, S, VS) for canola
	ResistanceRating string `json:"resistance_rating,omitempty" yaml:"resistance_rating"`
}

// TreatmentRecord lists the products already applied this season
type TreatmentRecord struct {
	SeedTreatment string   `json:"seed_treatment" yaml:"seed_treatment"`
	PriorFoliar   []string `json:"prior_foliar" yaml:"prior_foliar"`
}

// MoAUsage is the season's mode-of-action exposure derived from a TreatmentRecord
type MoAUsage struct {
	SDHIUsed     bool `json:"sdhi_used"`
	Group3Used   bool `json:"group3_used"`
	Group11Used  bool `json:"group11_used"`
	Group3Count  int  `json:"group3_count"`
	Group7Count  int  `json:"group7_count"`
	Group11Count int  `json:"group11_count"`
	// TotalSprays counts prior foliar applications plus the pending one
	TotalSprays    int        `json:"total_sprays"`
	SeedTreated    bool       `json:"seed_treated"`
	PriorApplied   bool       `json:"prior_applied"`
	PreviousGroups []MoAGroup `json:"previous_groups,omitempty"`
	Unresolved     []string   `json:"unresolved,omitempty"`
}

// BlacklegDetail carries the blackleg-specific parts of an assessment
type BlacklegDetail struct {
	SporeRisk        RiskTier `json:"spore_risk"`
	ResistanceRating string   `json:"resistance_rating"`
	ResistanceGroup  string   `json:"resistance_group"`
}

// RiskAssessment is the output of a single disease risk model
type RiskAssessment struct {
	Disease        Disease         `json:"disease"`
	Score          float64         `json:"score"`
	Tier           RiskTier        `json:"tier"`
	Recommendation string          `json:"recommendation"`
	ModelVersion   string          `json:"model_version"`
	Blackleg       *BlacklegDetail `json:"blackleg,omitempty"`
}

// Activity describes how a fungicide acts on infection
type Activity string

const (
	ActivityProtective         Activity = "protective"
	ActivityCurative           Activity = "curative"
	ActivityProtectiveCurative Activity = "protective+curative"
)

// Curative reports whether the product acts on established infection
func (a Activity) Curative() bool {
	return a == ActivityCurative || a == ActivityProtectiveCurative
}

// FungicideOption is a catalog entry
type FungicideOption struct {
	Product     string     `json:"product" yaml:"product"`
	Label       string     `json:"label" yaml:"label"`
	Groups      []MoAGroup `json:"groups" yaml:"groups"`
	Persistence string     `json:"persistence" yaml:"persistence"`
	Activity    Activity   `json:"activity" yaml:"activity"`
	Rate        string     `json:"rate,omitempty" yaml:"rate"`
	CostPerHa   *float64   `json:"cost_per_ha,omitempty" yaml:"cost_per_ha"`
	Note        string     `json:"note,omitempty" yaml:"note"`
	Economics   *Economics `json:"economics,omitempty" yaml:"-"`
}

// HasGroup reports whether the option carries the given MoA group
func (o FungicideOption) HasGroup(g MoAGroup) bool {
	for _, og := range o.Groups {
		if og == g {
			return true
		}
	}
	return false
}

// RemovedOption records a catalog entry dropped by the stewardship filter
type RemovedOption struct {
	Product string `json:"product"`
	Reason  string `json:"reason"`
}

// ComplianceWarning is a resistance-management advisory
type ComplianceWarning struct {
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// EconomicInputs are the per-hectare costs and grain price for break-even analysis
type EconomicInputs struct {
	ProductCostPerHa     float64 `json:"product_cost_per_ha" yaml:"product_cost_per_ha"`
	ApplicationCostPerHa float64 `json:"application_cost_per_ha" yaml:"application_cost_per_ha"`
	GrainPricePerTonne   float64 `json:"grain_price_per_tonne" yaml:"grain_price_per_tonne"`
	YieldPotentialTPerHa float64 `json:"yield_potential_t_per_ha,omitempty" yaml:"yield_potential_t_per_ha"`
}

// Economics is the break-even result for a spray decision
type Economics struct {
	TotalCostPerHa          float64  `json:"total_cost_per_ha"`
	BreakEvenYieldKgPerHa   float64  `json:"break_even_yield_kg_per_ha"`
	BreakEvenPercentOfYield *float64 `json:"break_even_pct_of_yield,omitempty"`
}

// RecommendationResult is the full output of one evaluation
type RecommendationResult struct {
	Disease           Disease             `json:"disease"`
	Crop              CropKind            `json:"crop"`
	Risk              RiskAssessment      `json:"risk"`
	Options           []FungicideOption   `json:"options"`
	RemovedOptions    []RemovedOption     `json:"removed_options,omitempty"`
	NoCompliantOption bool                `json:"no_compliant_option"`
	Notice            string              `json:"notice,omitempty"`
	Warnings          []ComplianceWarning `json:"warnings"`
	Economics         *Economics          `json:"economics,omitempty"`
	MoA               MoAUsage            `json:"moa"`
}

// Assessment is a stamped RecommendationResult for a paddock
type Assessment struct {
	ID          string               `json:"id"`
	Paddock     string               `json:"paddock,omitempty"`
	EvaluatedAt time.Time            `json:"evaluated_at"`
	Result      RecommendationResult `json:"result"`
}

// AssessmentSummary is a stored assessment as listed from history
type AssessmentSummary struct {
	ID             string    `json:"id"`
	Paddock        string    `json:"paddock"`
	Disease        Disease   `json:"disease"`
	Score          float64   `json:"score"`
	Tier           RiskTier  `json:"tier"`
	Recommendation string    `json:"recommendation"`
	WarningCount   int       `json:"warning_count"`
	OptionCount    int       `json:"option_count"`
	EvaluatedAt    time.Time `json:"evaluated_at"`
}

// Paddock is a managed field with its crop and stewardship history
type Paddock struct {
	ID                            int64    `json:"id"`
	Name                          string   `json:"name"`
	Crop                          CropKind `json:"crop"`
	Variety                       string   `json:"variety"`
	GrowthStage                   string   `json:"growth_stage"`
	Disease                       Disease  `json:"disease"`
	HasResistance                 bool     `json:"has_resistance"`
	ResistanceRating              string   `json:"resistance_rating"`
	SeedTreatment                 string   `json:"seed_treatment"`
	SameCropLastTwoYears          bool     `json:"same_crop_last_two_years"`
	SameResistanceGroupAsLastYear bool     `json:"same_resistance_group_as_last_year"`
}

// SprayRecord is a foliar application recorded against a paddock
type SprayRecord struct {
	ID        int64     `json:"id"`
	Paddock   string    `json:"paddock"`
	Season    int       `json:"season"`
	Product   string    `json:"product"`
	AppliedAt time.Time `json:"applied_at"`
}

// WeatherObservation is a stored snapshot for a paddock
type WeatherObservation struct {
	ID         int64           `json:"id"`
	Paddock    string          `json:"paddock"`
	ObservedAt time.Time       `json:"observed_at"`
	Snapshot   WeatherSnapshot `json:"snapshot"`
}
