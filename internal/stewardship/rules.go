package stewardship

import (
	"fmt"
	"strings"

	"sprayguard/internal/models"
)

// Season limits for resistance management
const (
	MaxSpraysPerSeason = 2
	MaxGroup3Sprays    = 2
	MaxGroup11Sprays   = 1
	RainfastHours      = 2.0
)

// WarningPrefix starts every compliance message
const WarningPrefix = "AFREN Warning: "

// Input is the evidence the rules inspect
type Input struct {
	Crop    models.CropKind
	Disease models.Disease
	Usage   models.MoAUsage
	// CurrentGroups are the MoA groups of the application being considered.
	// Planned is set when they come from a named product rather than the catalog.
	CurrentGroups                 []models.MoAGroup
	Planned                       bool
	ResistanceRating              string
	SameCropLastTwoYears          bool
	SameResistanceGroupAsLastYear bool
	DiseaseVisible                bool
	// RainForecastHours is the forecast gap between application and rain; 0 means none forecast
	RainForecastHours float64
}

// Rule is a single resistance-management check
type Rule interface {
	// ID is a stable identifier used in results and metrics
	ID() string

	// Match reports whether the rule fires for the input
	Match(in Input) bool

	// Warning builds the advisory. Only called when Match is true.
	Warning(in Input) models.ComplianceWarning
}

type rule struct {
	id      string
	match   func(in Input) bool
	message func(in Input) string
}

func (r rule) ID() string          { return r.id }
func (r rule) Match(in Input) bool { return r.match(in) }

func (r rule) Warning(in Input) models.ComplianceWarning {
	return models.ComplianceWarning{Rule: r.id, Message: WarningPrefix + r.message(in)}
}

func fixed(msg string) func(Input) string {
	return func(Input) string { return msg }
}

// rules run in declaration order. New rules are appended, never reordered.
var rules = []Rule{
	rule{
		id:      "max-sprays-per-season",
		match:   func(in Input) bool { return in.Usage.TotalSprays > MaxSpraysPerSeason },
		message: fixed("more than 2 fungicide sprays per season is not recommended."),
	},
	rule{
		id: "consecutive-sdhi",
		match: func(in Input) bool {
			return in.Usage.SDHIUsed && hasGroup(in.CurrentGroups, models.Group7)
		},
		message: fixed("consecutive SDHI applications may lead to resistance."),
	},
	rule{
		id:      "group3-limit",
		match:   func(in Input) bool { return in.Usage.Group3Count > MaxGroup3Sprays },
		message: fixed("too many Group 3 applications."),
	},
	rule{
		id:      "group11-limit",
		match:   func(in Input) bool { return in.Usage.Group11Count > MaxGroup11Sprays },
		message: fixed("limit Group 11 (QoI) fungicides to one application per season."),
	},
	rule{
		id: "same-moa-as-previous",
		match: func(in Input) bool {
			if !in.Planned {
				return false
			}
			for _, g := range in.Usage.PreviousGroups {
				if hasGroup(in.CurrentGroups, g) {
					return true
				}
			}
			return false
		},
		message: func(in Input) string {
			var shared []string
			for _, g := range in.Usage.PreviousGroups {
				if hasGroup(in.CurrentGroups, g) {
					shared = append(shared, "Group "+string(g))
				}
			}
			return fmt.Sprintf("%s also used in the previous application; rotate or mix modes of action.", strings.Join(shared, ", "))
		},
	},
	rule{
		id: "same-crop-two-years",
		match: func(in Input) bool {
			return in.Crop == models.CropCanola && in.SameCropLastTwoYears
		},
		message: fixed("canola grown in this paddock in each of the last two years raises blackleg pressure; rotate paddocks."),
	},
	rule{
		id: "same-resistance-group",
		match: func(in Input) bool {
			return in.Disease == models.DiseaseBlackleg && in.SameResistanceGroupAsLastYear
		},
		message: fixed("same blackleg resistance group as last year; rotate resistance groups."),
	},
	rule{
		id: "susceptible-variety",
		match: func(in Input) bool {
			if in.Disease != models.DiseaseBlackleg {
				return false
			}
			rating, ok := models.NormalizeRating(in.ResistanceRating)
			if !ok {
				return strings.TrimSpace(in.ResistanceRating) != ""
			}
			switch rating {
			case "S", "MS", "VS":
				return true
			}
			return false
		},
		message: func(in Input) string {
			rating, _ := models.NormalizeRating(in.ResistanceRating)
			return fmt.Sprintf("variety rated %s; fungicide is not a substitute for varietal resistance.", rating)
		},
	},
	rule{
		id:      "disease-visible",
		match:   func(in Input) bool { return in.DiseaseVisible },
		message: fixed("disease is already visible; use a product with curative activity."),
	},
	rule{
		id: "rain-before-rainfast",
		match: func(in Input) bool {
			return in.RainForecastHours > 0 && in.RainForecastHours < RainfastHours
		},
		message: func(in Input) string {
			return fmt.Sprintf("rain forecast %.1f hours after application may wash off product before it is rainfast.", in.RainForecastHours)
		},
	},
}

func hasGroup(groups []models.MoAGroup, g models.MoAGroup) bool {
	for _, x := range groups {
		if x == g {
			return true
		}
	}
	return false
}
