// Solve the subsidy signaling game and report its pure-strategy perfect
// Bayesian equilibria.
package main

import (
	"flag"
	"os"

	"github.com/golang/glog"

	"github.com/timpalpant/onshoring/export"
	"github.com/timpalpant/onshoring/internal/config"
	"github.com/timpalpant/onshoring/report"
	"github.com/timpalpant/onshoring/sensitivity"
	"github.com/timpalpant/onshoring/signaling"
)

func main() {
	csvDir := flag.String("csv_dir", "", "Directory to save result tables to as CSV")
	compress := flag.Bool("gzip", false, "Compress saved CSV tables")
	dbPath := flag.String("db", "", "SQLite results store to save the run to")
	sweepField := flag.String("sweep", "", "Parameter to sweep, e.g. credibility or state_budget_cost")
	sweepLo := flag.Float64("sweep_lo", 0, "Lowest value of the swept parameter")
	sweepHi := flag.Float64("sweep_hi", 1, "Highest value of the swept parameter")
	sweepN := flag.Int("sweep_n", 11, "Number of values of the swept parameter")
	flag.Parse()

	var cfg config.Signaling
	if err := config.Parse(&cfg); err != nil {
		glog.Fatal(err)
	}

	g, err := signaling.NewGame(cfg.Params())
	if err != nil {
		glog.Fatal(err)
	}

	records := g.EnumerateEquilibria()
	glog.Infof("Found %d equilibria among %d combinations", len(records), signaling.NumCandidates)
	report.Signaling(os.Stdout, g, records)

	if *sweepField != "" {
		sweeper, err := sensitivity.NewSweeper(*sweepN)
		if err != nil {
			glog.Fatal(err)
		}

		values := sensitivity.Linspace(*sweepLo, *sweepHi, *sweepN)
		points, err := sweeper.SweepSignaling(g.Params(), *sweepField, values)
		if err != nil {
			glog.Fatal(err)
		}

		report.SignalingSweep(os.Stdout, *sweepField, points)
	}

	if *csvDir != "" {
		tables := []export.Table{export.SignalingTable(records)}
		paths, err := export.SaveCSV(*csvDir, "signaling", tables, *compress)
		if err != nil {
			glog.Fatal(err)
		}

		glog.Infof("Saved tables: %v", paths)
	}

	if *dbPath != "" {
		store, err := export.Open(*dbPath)
		if err != nil {
			glog.Fatal(err)
		}
		defer store.Close()

		runID, err := store.SaveSignaling(g.Params(), records)
		if err != nil {
			glog.Fatal(err)
		}

		glog.Infof("Saved run %v to %v", runID, *dbPath)
	}
}
