package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"sprayguard/internal/advisor"
	"sprayguard/internal/config"
	"sprayguard/internal/database"
	"sprayguard/internal/models"
	"sprayguard/internal/treatment"
)

const dateLayout = "2006-01-02"

var sprayArgs struct {
	paddock string
	product string
	season  int
	date    string
}

var weatherArgs struct {
	paddock  string
	snapshot models.WeatherSnapshot
}

var sprayCmd = &cobra.Command{
	Use:   "spray",
	Short: "Record and list foliar applications",
}

var sprayRecordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record a foliar application against a paddock",
	RunE: func(cmd *cobra.Command, argv []string) error {
		rec, err := sprayRecord(sprayArgs.paddock, sprayArgs.product, sprayArgs.season, sprayArgs.date)
		if err != nil {
			return err
		}
		if _, ok := treatment.GroupsFor(rec.Product); !ok {
			cmd.PrintErrf("warning: %q has no known MoA group and will not count toward group limits\n", rec.Product)
		}

		db, err := withPaddock(rec.Paddock)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.RecordSpray(rec); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Recorded %s on %s for season %d\n", rec.Product, rec.Paddock, rec.Season)
		return nil
	},
}

var sprayListCmd = &cobra.Command{
	Use:   "list",
	Short: "List a paddock's applications for a season",
	RunE: func(cmd *cobra.Command, argv []string) error {
		db, err := database.NewDB(config.GetDatabaseDSN())
		if err != nil {
			return err
		}
		defer db.Close()

		season := advisor.Season(sprayArgs.season, time.Now())
		records, err := db.GetSeasonSprays(sprayArgs.paddock, season)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s, season %d: %d applications\n", sprayArgs.paddock, season, len(records))
		for _, r := range records {
			fmt.Fprintf(out, "  %s  %s\n", r.AppliedAt.Format(dateLayout), r.Product)
		}
		return nil
	},
}

var weatherCmd = &cobra.Command{
	Use:   "weather",
	Short: "Record weather observations for batch evaluation",
}

var weatherRecordCmd = &cobra.Command{
	Use:   "record",
	Short: "Store a weather snapshot for a paddock",
	RunE: func(cmd *cobra.Command, argv []string) error {
		if err := weatherArgs.snapshot.Validate(); err != nil {
			return err
		}

		db, err := withPaddock(weatherArgs.paddock)
		if err != nil {
			return err
		}
		defer db.Close()

		obs := models.WeatherObservation{
			Paddock:    weatherArgs.paddock,
			ObservedAt: time.Now().UTC(),
			Snapshot:   weatherArgs.snapshot,
		}
		if err := db.StoreWeatherSnapshot(obs); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Stored weather for %s\n", obs.Paddock)
		return nil
	},
}

// sprayRecord validates the flags of spray record
func sprayRecord(paddock, product string, season int, date string) (models.SprayRecord, error) {
	if paddock == "" {
		return models.SprayRecord{}, fmt.Errorf("%w: --paddock is required", models.ErrInvalidInput)
	}
	if treatment.IsNone(product) {
		return models.SprayRecord{}, fmt.Errorf("%w: --product is required", models.ErrInvalidInput)
	}

	applied := time.Now().UTC()
	if date != "" {
		parsed, err := time.Parse(dateLayout, date)
		if err != nil {
			return models.SprayRecord{}, fmt.Errorf("%w: --date must be YYYY-MM-DD", models.ErrInvalidInput)
		}
		applied = parsed
	}
	if season <= 0 {
		season = applied.Year()
	}

	return models.SprayRecord{Paddock: paddock, Season: season, Product: product, AppliedAt: applied}, nil
}

// withPaddock opens the database and checks the paddock exists
func withPaddock(name string) (*database.DB, error) {
	db, err := database.NewDB(config.GetDatabaseDSN())
	if err != nil {
		return nil, err
	}
	if _, err := db.GetPaddockByName(name); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func init() {
	sprayCmd.AddCommand(sprayRecordCmd, sprayListCmd)
	weatherCmd.AddCommand(weatherRecordCmd)

	pf := sprayCmd.PersistentFlags()
	pf.StringVar(&sprayArgs.paddock, "paddock", "", "paddock name")
	pf.IntVar(&sprayArgs.season, "season", 0, "season year (defaults to the current or application year)")
	sprayCmd.MarkPersistentFlagRequired("paddock")

	rf := sprayRecordCmd.Flags()
	rf.StringVar(&sprayArgs.product, "product", "", "product applied")
	rf.StringVar(&sprayArgs.date, "date", "", "application date, YYYY-MM-DD (defaults to today)")

	wf := weatherRecordCmd.Flags()
	w := &weatherArgs.snapshot
	wf.StringVar(&weatherArgs.paddock, "paddock", "", "paddock name")
	wf.Float64Var(&w.TemperatureC, "temp", 0, "mean temperature (°C)")
	wf.Float64Var(&w.RelativeHumidity, "rh", 0, "relative humidity (%)")
	wf.Float64Var(&w.RainfallMM, "rain", 0, "rainfall (mm)")
	wf.Float64Var(&w.LeafWetnessHours, "leaf-wetness", 0, "leaf wetness (hours)")
	wf.IntVar(&w.DaysSinceRain, "days-since-rain", 0, "days since last rain")
	wf.IntVar(&w.RainDaysLastWeek, "rain-days", 0, "rain days in the last week")
	weatherRecordCmd.MarkFlagRequired("paddock")
}
