package catalog

import (
	"fmt"
	"sort"

	"sprayguard/internal/models"
	"sprayguard/internal/treatment"
)

// Catalog holds the fungicide options for each disease. It is not modified
// after construction and every accessor returns copies, so one Catalog can
// be shared by concurrent evaluations.
type Catalog struct {
	entries map[models.Disease][]models.FungicideOption
}

// New validates the entries and builds a Catalog from a copy of them.
// Options without groups get them from the product table or their label.
func New(entries map[models.Disease][]models.FungicideOption) (*Catalog, error) {
	c := &Catalog{entries: make(map[models.Disease][]models.FungicideOption, len(entries))}
	for disease, options := range entries {
		if _, err := models.ParseDisease(string(disease)); err != nil {
			return nil, fmt.Errorf("catalog: %w", err)
		}
		copied := make([]models.FungicideOption, 0, len(options))
		for i, opt := range options {
			opt = copyOption(opt)
			if err := complete(&opt); err != nil {
				return nil, fmt.Errorf("catalog %s entry %d: %w", disease, i, err)
			}
			copied = append(copied, opt)
		}
		c.entries[disease] = copied
	}
	return c, nil
}

func complete(opt *models.FungicideOption) error {
	if opt.Product == "" {
		return fmt.Errorf("product name is required")
	}
	if len(opt.Groups) == 0 {
		groups, ok := treatment.GroupsFor(opt.Product)
		if !ok {
			groups, ok = treatment.GroupsFor(opt.Label)
		}
		if !ok {
			return fmt.Errorf("%s: cannot determine MoA groups", opt.Product)
		}
		opt.Groups = groups
	}
	switch opt.Activity {
	case models.ActivityProtective, models.ActivityCurative, models.ActivityProtectiveCurative:
	default:
		return fmt.Errorf("%s: unknown activity %q", opt.Product, opt.Activity)
	}
	return nil
}

// Options returns the catalog entries for a disease in catalog order.
// ErrNoCatalog is returned when the disease has no entries at all.
func (c *Catalog) Options(disease models.Disease) ([]models.FungicideOption, error) {
	options := c.entries[disease]
	if len(options) == 0 {
		return nil, fmt.Errorf("%w: %s", models.ErrNoCatalog, disease)
	}
	out := make([]models.FungicideOption, len(options))
	for i, opt := range options {
		out[i] = copyOption(opt)
	}
	return out, nil
}

// Groups returns the union of MoA groups across a disease's entries, in
// ascending group order.
func (c *Catalog) Groups(disease models.Disease) []models.MoAGroup {
	seen := map[models.MoAGroup]bool{}
	var groups []models.MoAGroup
	for _, opt := range c.entries[disease] {
		for _, g := range opt.Groups {
			if !seen[g] {
				seen[g] = true
				groups = append(groups, g)
			}
		}
	}
	sort.Slice(groups, func(i, j int) bool { return groupOrder(groups[i]) < groupOrder(groups[j]) })
	return groups
}

// Diseases lists the diseases with at least one entry
func (c *Catalog) Diseases() []models.Disease {
	var out []models.Disease
	for _, d := range models.Diseases {
		if len(c.entries[d]) > 0 {
			out = append(out, d)
		}
	}
	return out
}

func groupOrder(g models.MoAGroup) int {
	var n int
	fmt.Sscanf(string(g), "%d", &n)
	return n
}

func copyOption(opt models.FungicideOption) models.FungicideOption {
	opt.Groups = append([]models.MoAGroup(nil), opt.Groups...)
	if opt.CostPerHa != nil {
		cost := *opt.CostPerHa
		opt.CostPerHa = &cost
	}
	if opt.Economics != nil {
		e := *opt.Economics
		opt.Economics = &e
	}
	return opt
}
