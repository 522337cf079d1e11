package catalog

import "sprayguard/internal/models"

// Group11SprayLimit is the season count of QoI applications at which
// further Group 11 options are withheld
const Group11SprayLimit = 1

// NoCompliantNotice accompanies an empty filtered list
const NoCompliantNotice = "no compliant option; consult a registered product list"

// Removal reasons
const (
	ReasonSDHIUsed     = "SDHI already used this season"
	ReasonGroup11Limit = "Group 11 (QoI) limit reached"
	ReasonNotCurative  = "no curative activity for visible disease"
)

// FilterInput is the season state the filter applies
type FilterInput struct {
	Usage          models.MoAUsage
	DiseaseVisible bool
}

// FilterResult holds the options that passed and those that were removed
type FilterResult struct {
	Options           []models.FungicideOption
	Removed           []models.RemovedOption
	NoCompliantOption bool
	Notice            string
}

// Filter removes options that would break stewardship limits, preserving
// catalog order. SDHI options go first when SDHI has been used, then QoI
// options once the Group 11 limit is reached, then non-curative options when
// disease is visible. An empty result sets NoCompliantOption.
func Filter(options []models.FungicideOption, in FilterInput) FilterResult {
	result := FilterResult{Options: []models.FungicideOption{}}

	for _, opt := range options {
		reason := ""
		switch {
		case in.Usage.SDHIUsed && opt.HasGroup(models.Group7):
			reason = ReasonSDHIUsed
		case in.Usage.Group11Count >= Group11SprayLimit && opt.HasGroup(models.Group11):
			reason = ReasonGroup11Limit
		case in.DiseaseVisible && !opt.Activity.Curative():
			reason = ReasonNotCurative
		}

		if reason != "" {
			result.Removed = append(result.Removed, models.RemovedOption{Product: opt.Product, Reason: reason})
			continue
		}
		result.Options = append(result.Options, opt)
	}

	if len(result.Options) == 0 {
		result.NoCompliantOption = true
		result.Notice = NoCompliantNotice
	}
	return result
}
