package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"
)

var Cmd = &cobra.Command{
	Use:   "sprayctl",
	Short: "Disease risk and fungicide stewardship checks from the command line",
	Long: "sprayctl scores disease risk for a paddock, lists stewardship-compliant fungicide " +
		"options and records spray and weather history for batch evaluation.",
	SilenceUsage: true,
}

func init() {
	Cmd.AddCommand(assessCmd, catalogCmd, breakEvenCmd, varietiesCmd, sprayCmd, weatherCmd)
}

func main() {
	log.SetFlags(log.Flags() | log.Lshortfile)

	if err := Cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
