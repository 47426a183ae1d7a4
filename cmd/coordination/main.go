// Solve the semiconductor cluster coordination game and report its
// pure-strategy equilibria and critical mass.
package main

import (
	"flag"
	"os"

	"github.com/golang/glog"

	"github.com/timpalpant/onshoring/coordination"
	"github.com/timpalpant/onshoring/export"
	"github.com/timpalpant/onshoring/internal/config"
	"github.com/timpalpant/onshoring/report"
	"github.com/timpalpant/onshoring/sensitivity"
)

func main() {
	csvDir := flag.String("csv_dir", "", "Directory to save result tables to as CSV")
	compress := flag.Bool("gzip", false, "Compress saved CSV tables")
	dbPath := flag.String("db", "", "SQLite results store to save the run to")
	sweepField := flag.String("sweep", "", "Parameter to sweep (one of revenue, subsidy, delta0, alpha)")
	sweepLo := flag.Float64("sweep_lo", 0, "Lowest value of the swept parameter")
	sweepHi := flag.Float64("sweep_hi", 1, "Highest value of the swept parameter")
	sweepN := flag.Int("sweep_n", 11, "Number of values of the swept parameter")
	flag.Parse()

	var cfg config.Coordination
	if err := config.Parse(&cfg); err != nil {
		glog.Fatal(err)
	}

	g, err := coordination.NewGame(cfg.Params())
	if err != nil {
		glog.Fatal(err)
	}

	glog.Infof("Enumerating %d profiles of %d players", 1<<uint(g.Params().Players), g.Params().Players)
	eqs := g.EnumerateEquilibria()
	th, thErr := g.CriticalMass()
	if thErr != nil {
		glog.Warningf("Critical mass undefined: %v", thErr)
	}

	report.Coordination(os.Stdout, g, eqs, th, thErr)

	if *sweepField != "" {
		sweeper, err := sensitivity.NewSweeper(*sweepN)
		if err != nil {
			glog.Fatal(err)
		}

		values := sensitivity.Linspace(*sweepLo, *sweepHi, *sweepN)
		points, err := sweeper.SweepCoordination(g.Params(), *sweepField, values)
		if err != nil {
			glog.Fatal(err)
		}

		report.CoordinationSweep(os.Stdout, *sweepField, points)
	}

	if *csvDir != "" {
		tables := export.CoordinationTables(g, eqs, th, thErr)
		paths, err := export.SaveCSV(*csvDir, "coordination", tables, *compress)
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

		runID, err := store.SaveCoordination(g, eqs, th, thErr)
		if err != nil {
			glog.Fatal(err)
		}

		glog.Infof("Saved run %v to %v", runID, *dbPath)
	}
}
