package treatment

import (
	"sort"

	"sprayguard/internal/models"
)

var (
	dmi      = []models.MoAGroup{models.Group3}
	sdhi     = []models.MoAGroup{models.Group7}
	dmiSdhi  = []models.MoAGroup{models.Group3, models.Group7}
	dmiQoi   = []models.MoAGroup{models.Group3, models.Group11}
	threeWay = []models.MoAGroup{models.Group3, models.Group7, models.Group11}
)

// products maps canonical product names to their MoA groups
var products = map[string][]models.MoAGroup{
	// foliar
	"prosaro":      dmi,
	"tilt":         dmi,
	"opus":         dmi,
	"aviator xpro": dmiQoi,
	"miravis star": dmiSdhi,
	"elatus ace":   dmiSdhi,
	"opera":        dmiQoi,
	"radial":       dmiQoi,
	"trivapro":     threeWay,

	// seed treatments
	"jockey stayer": dmi,
	"raxil":         dmi,
	"saltro":        sdhi,
	"ilevo":         sdhi,
	"evergol prime": sdhi,
}

// SeedTreatments lists the seed treatment choices offered to growers
var SeedTreatments = []string{
	"None",
	"Jockey Stayer (Group 3 - DMI)",
	"Saltro (Group 7 - SDHI)",
	"ILeVO (Group 7 - SDHI)",
	"EverGol Prime (Group 7 - SDHI)",
	"Raxil (Group 3 - DMI)",
	"Other",
}

// FoliarProducts lists the foliar fungicide choices offered to growers
var FoliarProducts = []string{
	"None",
	"Prosaro (Group 3 - DMI)",
	"Aviator Xpro (Group 3+11 - DMI+QoI)",
	"Miravis Star (Group 3+7 - DMI+SDHI)",
	"Tilt (Group 3 - DMI)",
	"Elatus Ace (Group 7+3 - SDHI+DMI)",
	"Opera (Group 11+3 - QoI+DMI)",
	"Other",
}

// KnownProducts returns the canonical product names in sorted order
func KnownProducts() []string {
	names := make([]string, 0, len(products))
	for name := range products {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
