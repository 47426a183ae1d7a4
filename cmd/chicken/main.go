// Compare stay and move profits for a relocation scenario, with a
// Monte-Carlo sensitivity analysis over disruption probability.
package main

import (
	"flag"
	"os"
	"sort"

	"github.com/golang/glog"

	"github.com/timpalpant/onshoring/chicken"
	"github.com/timpalpant/onshoring/export"
	"github.com/timpalpant/onshoring/internal/config"
	"github.com/timpalpant/onshoring/report"
	"github.com/timpalpant/onshoring/sensitivity"
)

func main() {
	csvDir := flag.String("csv_dir", "", "Directory to save result tables to as CSV")
	compress := flag.Bool("gzip", false, "Compress saved CSV tables")
	dbPath := flag.String("db", "", "SQLite results store to save the run to")
	numBins := flag.Int("bins", sensitivity.DefaultNumBin, "Number of disruption probability bins")
	flag.Parse()

	var cfg config.Chicken
	if err := config.Parse(&cfg); err != nil {
		glog.Fatal(err)
	}

	scenarios := chicken.Scenarios()
	scenario, ok := scenarios[cfg.Scenario]
	if !ok {
		var names []string
		for name := range scenarios {
			names = append(names, name)
		}
		sort.Strings(names)
		glog.Exitf("Unknown scenario %q, expected one of %v", cfg.Scenario, names)
	}

	baseline, err := scenario.Params.Baseline(chicken.BaselineDisruptionProbabilities...)
	if err != nil {
		glog.Fatal(err)
	}

	glog.Infof("Drawing %d samples (seed %d)", cfg.Samples, cfg.Seed)
	samples, err := sensitivity.MonteCarlo(scenario, cfg.Samples, cfg.Seed)
	if err != nil {
		glog.Fatal(err)
	}

	bins, err := sensitivity.Thresholds(samples, sensitivity.DefaultBinLo, sensitivity.DefaultBinHi, *numBins)
	if err != nil {
		glog.Fatal(err)
	}

	report.Chicken(os.Stdout, scenario, baseline, bins)

	if *csvDir != "" {
		paths, err := export.SaveCSV(*csvDir, "chicken_"+scenario.Name, export.ChickenTables(baseline, bins), *compress)
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

		runID, err := store.SaveChicken(scenario, baseline, bins)
		if err != nil {
			glog.Fatal(err)
		}

		glog.Infof("Saved run %v to %v", runID, *dbPath)
	}
}
