package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sprayguard/internal/catalog"
	"sprayguard/internal/detector"
	"sprayguard/internal/economics"
	"sprayguard/internal/models"
)

var catalogArgs struct {
	file string
}

var catalogCmd = &cobra.Command{
	Use:   "catalog [disease]",
	Short: "List fungicide options by disease",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, argv []string) error {
		c, err := catalog.LoadOrDefault(catalogArgs.file)
		if err != nil {
			return err
		}

		diseases := c.Diseases()
		if len(argv) == 1 {
			d, err := models.ParseDisease(argv[0])
			if err != nil {
				return err
			}
			diseases = []models.Disease{d}
		}

		out := cmd.OutOrStdout()
		for _, d := range diseases {
			opts, err := c.Options(d)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s:\n", d)
			for _, opt := range opts {
				fmt.Fprintf(out, "  %-14s [%s] %s, %s", opt.Product, groupList(opt.Groups), opt.Activity, opt.Persistence)
				if opt.Rate != "" {
					fmt.Fprintf(out, ", %s", opt.Rate)
				}
				fmt.Fprintln(out)
			}
		}
		return nil
	},
}

var breakEvenArgs models.EconomicInputs

var breakEvenCmd = &cobra.Command{
	Use:   "break-even",
	Short: "Yield response needed to pay for a spray",
	RunE: func(cmd *cobra.Command, argv []string) error {
		e, err := economics.Evaluate(breakEvenArgs)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Total cost:       $%.2f/ha\n", e.TotalCostPerHa)
		fmt.Fprintf(out, "Break-even yield: %.1f kg/ha\n", e.BreakEvenYieldKgPerHa)
		if e.BreakEvenPercentOfYield != nil {
			fmt.Fprintf(out, "Share of yield:   %.1f%%\n", *e.BreakEvenPercentOfYield)
		}
		return nil
	},
}

var varietiesCmd = &cobra.Command{
	Use:   "varieties",
	Short: "List canola blackleg resistance ratings",
	RunE: func(cmd *cobra.Command, argv []string) error {
		out := cmd.OutOrStdout()
		for _, v := range detector.CanolaVarieties() {
			fmt.Fprintf(out, "%-16s %-5s %s\n", v.Variety, v.Rating, v.Group)
		}
		return nil
	},
}

func init() {
	catalogCmd.Flags().StringVar(&catalogArgs.file, "catalog", "", "YAML catalog replacing the built-in one")

	flags := breakEvenCmd.Flags()
	flags.Float64Var(&breakEvenArgs.ProductCostPerHa, "product-cost", 0, "product cost ($/ha)")
	flags.Float64Var(&breakEvenArgs.ApplicationCostPerHa, "application-cost", 0, "application cost ($/ha)")
	flags.Float64Var(&breakEvenArgs.GrainPricePerTonne, "grain-price", 0, "grain price ($/t)")
	flags.Float64Var(&breakEvenArgs.YieldPotentialTPerHa, "yield", 0, "expected yield (t/ha), optional")
	breakEvenCmd.MarkFlagRequired("grain-price")
}
