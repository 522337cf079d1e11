package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sprayguard/internal/advisor"
	"sprayguard/internal/catalog"
	"sprayguard/internal/engine"
)

var assessArgs struct {
	file        string
	paddock     string
	catalogFile string
	output      string
}

var assessCmd = &cobra.Command{
	Use:   "assess",
	Short: "Evaluate a request file and print the recommendation",
	RunE:  runAssess,
}

func init() {
	flags := assessCmd.Flags()
	flags.StringVarP(&assessArgs.file, "file", "f", "", "YAML request file")
	flags.StringVar(&assessArgs.paddock, "paddock", "", "paddock name (overrides the file)")
	flags.StringVar(&assessArgs.catalogFile, "catalog", "", "YAML catalog replacing the built-in one")
	flags.StringVarP(&assessArgs.output, "output", "o", "text", "output format: text or json")
	assessCmd.MarkFlagRequired("file")
	assessCmd.RegisterFlagCompletionFunc("output", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"text", "json"}, cobra.ShellCompDirectiveDefault
	})
}

func runAssess(cmd *cobra.Command, argv []string) error {
	paddock, req, err := loadRequest(assessArgs.file)
	if err != nil {
		return err
	}
	if assessArgs.paddock != "" {
		paddock = assessArgs.paddock
	}

	c, err := catalog.LoadOrDefault(assessArgs.catalogFile)
	if err != nil {
		return err
	}

	a, err := advisor.New(engine.New(c), nil, nil).Assess(cmd.Context(), paddock, req)
	if err != nil {
		return err
	}

	switch assessArgs.output {
	case "json":
		return writeJSON(cmd.OutOrStdout(), a)
	case "text":
		renderAssessment(cmd.OutOrStdout(), a)
		return nil
	default:
		return fmt.Errorf("unknown output format %q", assessArgs.output)
	}
}
