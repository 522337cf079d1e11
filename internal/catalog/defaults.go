package catalog

import "sprayguard/internal/models"

var (
	dmi      = []models.MoAGroup{models.Group3}
	dmiSdhi  = []models.MoAGroup{models.Group3, models.Group7}
	dmiQoi   = []models.MoAGroup{models.Group3, models.Group11}
	threeWay = []models.MoAGroup{models.Group3, models.Group7, models.Group11}
)

func defaultEntries() map[models.Disease][]models.FungicideOption {
	return map[models.Disease][]models.FungicideOption{
		models.DiseaseRust: {
			{Product: "Tilt", Label: "Group 3 - DMI", Groups: dmi, Persistence: "10-14 days", Activity: models.ActivityCurative, Rate: "500 mL/ha"},
			{Product: "Elatus Ace", Label: "Group 7+3 - SDHI+DMI", Groups: dmiSdhi, Persistence: "18-24 days", Activity: models.ActivityProtectiveCurative, Rate: "500 mL/ha"},
			{Product: "Trivapro", Label: "Group 3+7+11 - DMI+SDHI+QoI", Groups: threeWay, Persistence: "21-28 days", Activity: models.ActivityProtective, Rate: "800 mL/ha", Note: "High pressure seasons"},
		},
		models.DiseaseSeptoria: {
			{Product: "Prosaro", Label: "Group 3 - DMI", Groups: dmi, Persistence: "10-14 days", Activity: models.ActivityCurative, Rate: "300 mL/ha"},
			{Product: "Opera", Label: "Group 11+3 - QoI+DMI", Groups: dmiQoi, Persistence: "12-18 days", Activity: models.ActivityProtectiveCurative, Rate: "1 L/ha"},
			{Product: "Elatus Ace", Label: "Group 7+3 - SDHI+DMI", Groups: dmiSdhi, Persistence: "18-24 days", Activity: models.ActivityProtectiveCurative, Rate: "500 mL/ha"},
			{Product: "Radial", Label: "Group 3+11 - DMI+QoI", Groups: dmiQoi, Persistence: "14-21 days", Activity: models.ActivityProtective, Rate: "840 mL/ha"},
		},
		models.DiseaseSclerotinia: {
			{Product: "Prosaro", Label: "3 (DMI)", Groups: dmi, Persistence: "14-21 days", Activity: models.ActivityCurative, Rate: "450 mL/ha", Note: "Moderate efficacy"},
			{Product: "Miravis Star", Label: "3+7 (DMI+SDHI)", Groups: dmiSdhi, Persistence: "21-28 days", Activity: models.ActivityProtective, Rate: "750 mL/ha", Note: "High efficacy"},
			{Product: "Aviator Xpro", Label: "3+11 (DMI+QoI)", Groups: dmiQoi, Persistence: "14-21 days", Activity: models.ActivityProtectiveCurative, Rate: "600 mL/ha", Note: "Moderate efficacy"},
		},
		models.DiseaseBlackleg: {
			{Product: "Prosaro", Label: "Group 3 - DMI", Groups: dmi, Persistence: "10-21 days", Activity: models.ActivityProtectiveCurative, Rate: "450 mL/ha", Note: "Apply at 4-6 leaf stage"},
			{Product: "Aviator Xpro", Label: "Group 3+11 - DMI+QoI", Groups: dmiQoi, Persistence: "10-21 days", Activity: models.ActivityProtectiveCurative, Rate: "600 mL/ha", Note: "Apply at 4-6 leaf stage"},
			{Product: "Miravis Star", Label: "Group 3+7 - DMI+SDHI", Groups: dmiSdhi, Persistence: "21-28 days", Activity: models.ActivityProtective, Rate: "750 mL/ha", Note: "Use where disease pressure is high"},
		},
	}
}

// Default returns the built-in catalog
func Default() *Catalog {
	c, err := New(defaultEntries())
	if err != nil {
		panic("catalog: invalid built-in entries: " + err.Error())
	}
	return c
}
