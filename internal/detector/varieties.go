package detector

import "strings"

// VarietyResistance is a canola variety's blackleg rating and resistance group
type VarietyResistance struct {
	Variety string `json:"variety"`
	Rating  string `json:"rating"`
	Group   string `json:"group"`
}

const otherVariety = "Other"

var canolaVarieties = []VarietyResistance{
	{"43Y92CL", "R", "ABC"},
	{"44Y94CL", "MR", "ABD"},
	{"HyTTec Trident", "MRMS", "ACD"},
	{"4540P", "R", "ACD"},
	{"4520P", "R", "ABD"},
	{"Hunter", "MR", "AC"},
	{"Emu", "MR", "AD"},
	{"Py525g", "MR", "BCD"},
	{"DG Buller", "MS", "BD"},
	{otherVariety, "MS", "AC"},
}

// LookupVariety returns the resistance entry for a variety, matching
// case-insensitively. Unlisted varieties get the "Other" entry.
func LookupVariety(name string) VarietyResistance {
	var other VarietyResistance
	for _, v := range canolaVarieties {
		if strings.EqualFold(strings.TrimSpace(name), v.Variety) {
			return v
		}
		if v.Variety == otherVariety {
			other = v
		}
	}
	return other
}

// CanolaVarieties returns a copy of the variety table
func CanolaVarieties() []VarietyResistance {
	return append([]VarietyResistance(nil), canolaVarieties...)
}
