package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"sprayguard/internal/models"
)

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func groupList(groups []models.MoAGroup) string {
	parts := make([]string, len(groups))
	for i, g := range groups {
		parts[i] = fmt.Sprintf("%s (%s)", g, g.Chemistry())
	}
	return strings.Join(parts, ", ")
}

// renderAssessment prints a human-readable summary of an assessment
func renderAssessment(w io.Writer, a *models.Assessment) {
	r := a.Result
	fmt.Fprintf(w, "Assessment %s\n", a.ID)
	if a.Paddock != "" {
		fmt.Fprintf(w, "Paddock:   %s\n", a.Paddock)
	}
	fmt.Fprintf(w, "Disease:   %s on %s\n", r.Disease, r.Crop)
	fmt.Fprintf(w, "Risk:      %s (score %.1f, model %s)\n", r.Risk.Tier, r.Risk.Score, r.Risk.ModelVersion)
	fmt.Fprintf(w, "Advice:    %s\n", r.Risk.Recommendation)
	if b := r.Risk.Blackleg; b != nil {
		fmt.Fprintf(w, "Blackleg:  spore risk %s, rating %s, group %s\n", b.SporeRisk, b.ResistanceRating, b.ResistanceGroup)
	}
	fmt.Fprintf(w, "Sprays:    %d this season\n", r.MoA.TotalSprays)
	if len(r.MoA.Unresolved) > 0 {
		fmt.Fprintf(w, "Unknown products: %s\n", strings.Join(r.MoA.Unresolved, ", "))
	}

	fmt.Fprintln(w)
	if r.NoCompliantOption {
		fmt.Fprintf(w, "Options:   %s\n", r.Notice)
	} else {
		fmt.Fprintln(w, "Options:")
		for _, opt := range r.Options {
			fmt.Fprintf(w, "  - %s [%s] %s", opt.Product, groupList(opt.Groups), opt.Activity)
			if opt.Economics != nil {
				fmt.Fprintf(w, ", break-even %.1f kg/ha", opt.Economics.BreakEvenYieldKgPerHa)
			}
			fmt.Fprintln(w)
		}
	}
	for _, removed := range r.RemovedOptions {
		fmt.Fprintf(w, "  x %s: %s\n", removed.Product, removed.Reason)
	}

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  ! %s\n", warn.Message)
		}
	}

	if e := r.Economics; e != nil {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Cost:      $%.2f/ha, break-even %.1f kg/ha", e.TotalCostPerHa, e.BreakEvenYieldKgPerHa)
		if e.BreakEvenPercentOfYield != nil {
			fmt.Fprintf(w, " (%.1f%% of yield)", *e.BreakEvenPercentOfYield)
		}
		fmt.Fprintln(w)
	}
}
