package treatment

import (
	"strings"

	"sprayguard/internal/models"
)

// marker is a case-insensitive label fragment that identifies an MoA group
type marker struct {
	group     models.MoAGroup
	fragments []string
}

// markers is consulted only when a product is not in the canonical table.
// Order matches the group order used for per-group counts.
var markers = []marker{
	{models.Group3, []string{"dmi", "group 3"}},
	{models.Group7, []string{"sdhi", "group 7"}},
	{models.Group11, []string{"qoi", "group 11"}},
}

// IsNone reports whether a selection means "nothing applied"
func IsNone(name string) bool {
	n := strings.TrimSpace(strings.ToLower(name))
	return n == "" || n == "none" || n == "no"
}

// GroupsFor returns the MoA groups for a product name or catalog label.
// The canonical table is consulted first, then the marker vocabulary.
// ok is false when neither identifies any group.
func GroupsFor(name string) (groups []models.MoAGroup, ok bool) {
	if g, found := products[canonicalName(name)]; found {
		return append([]models.MoAGroup(nil), g...), true
	}

	label := strings.ToLower(name)
	for _, m := range markers {
		for _, f := range m.fragments {
			if strings.Contains(label, f) {
				groups = append(groups, m.group)
				break
			}
		}
	}
	return groups, len(groups) > 0
}

// Resolve derives the season's MoA usage from a seed treatment and any prior
// foliar applications, oldest first. Unknown product names contribute no
// group and are listed in Unresolved.
func Resolve(seedTreatment string, priorFoliar ...string) models.MoAUsage {
	usage := models.MoAUsage{TotalSprays: 1}

	if !IsNone(seedTreatment) {
		usage.SeedTreated = true
		groups, ok := GroupsFor(seedTreatment)
		if !ok {
			usage.Unresolved = append(usage.Unresolved, seedTreatment)
		}
		count(&usage, groups)
	}

	for _, product := range priorFoliar {
		if IsNone(product) {
			continue
		}
		usage.PriorApplied = true
		usage.TotalSprays++

		groups, ok := GroupsFor(product)
		if !ok {
			usage.Unresolved = append(usage.Unresolved, product)
		}
		count(&usage, groups)
		usage.PreviousGroups = groups
	}

	usage.Group3Used = usage.Group3Count > 0
	usage.SDHIUsed = usage.Group7Count > 0
	usage.Group11Used = usage.Group11Count > 0
	return usage
}

func count(usage *models.MoAUsage, groups []models.MoAGroup) {
	for _, g := range groups {
		switch g {
		case models.Group3:
			usage.Group3Count++
		case models.Group7:
			usage.Group7Count++
		case models.Group11:
			usage.Group11Count++
		}
	}
}

// canonicalName lower-cases a product label and strips any parenthesised
// MoA suffix, so "Prosaro (Group 3 - DMI)" becomes "prosaro".
func canonicalName(label string) string {
	n := strings.ToLower(strings.TrimSpace(label))
	if i := strings.Index(n, "("); i >= 0 {
		n = n[:i]
	}
	return strings.TrimSpace(n)
}
