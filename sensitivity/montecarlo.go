// Package sensitivity explores how relocation outcomes respond to their
// inputs: Monte-Carlo sampling of the stay-or-move profits, and parameter
// sweeps over the equilibrium solvers.
package sensitivity

import (
	"math/rand"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/timpalpant/onshoring"
	"github.com/timpalpant/onshoring/chicken"
)

// DefaultSeed matches the seed of the published sensitivity tables.
const DefaultSeed = 42

// Sample is one Monte-Carlo draw and the profits it implies.
type Sample struct {
	PDis       float64
	Beta       float64
	Subsidy    float64
	ProfitStay float64
	ProfitMove float64
}

// StayBetter returns whether staying is strictly more profitable.
func (s Sample) StayBetter() bool {
	return s.ProfitStay > s.ProfitMove
}

func uniform(rng *rand.Rand, r chicken.Range) float64 {
	if r.Lo == r.Hi {
		return r.Lo
	}

	return r.Lo + (r.Hi-r.Lo)*rng.Float64()
}

// MonteCarlo draws n samples uniformly from the scenario's ranges.
func MonteCarlo(scenario chicken.Scenario, n int, seed int64) ([]Sample, error) {
	if err := scenario.Params.Validate(); err != nil {
		return nil, errors.Wrapf(err, "scenario %q", scenario.Name)
	}
	if n <= 0 {
		return nil, onshoring.Invalid("samples", n, "must be > 0")
	}
	if err := onshoring.CheckUnit("p_dis.lo", scenario.PDis.Lo, false); err != nil {
		return nil, err
	}
	if err := onshoring.CheckUnit("p_dis.hi", scenario.PDis.Hi, false); err != nil {
		return nil, err
	}
	for _, r := range []chicken.Range{scenario.PDis, scenario.Beta, scenario.Subsidy} {
		if r.Lo > r.Hi {
			return nil, onshoring.Invalid("range", r, "lo must be <= hi")
		}
	}

	rng := rand.New(rand.NewSource(seed))
	result := make([]Sample, n)
	for i := range result {
		s := Sample{
			PDis:    uniform(rng, scenario.PDis),
			Beta:    uniform(rng, scenario.Beta),
			Subsidy: uniform(rng, scenario.Subsidy),
		}
		s.ProfitStay = scenario.Params.StayProfit(s.PDis)
		s.ProfitMove = scenario.Params.MoveProfit(s.Beta, s.Subsidy)
		result[i] = s
	}

	glog.V(1).Infof("Drew %d samples for scenario %q", n, scenario.Name)
	return result, nil
}

// Bin summarizes the samples whose disruption probability falls in
// (Lo, Hi]. Share is zero when the bin is empty.
type Bin struct {
	Lo, Hi          float64
	Count           int
	ShareStayBetter float64
}

// DefaultBins are the disruption probability bins of the published tables.
const (
	DefaultBinLo  = 0.05
	DefaultBinHi  = 0.40
	DefaultNumBin = 7
)

// Thresholds groups samples into numBins equal-width bins over (lo, hi]
// by disruption probability and reports the share in which staying beats
// moving. Samples outside the bins are ignored.
func Thresholds(samples []Sample, lo, hi float64, numBins int) ([]Bin, error) {
	if numBins <= 0 {
		return nil, onshoring.Invalid("bins", numBins, "must be > 0")
	}
	if !(lo < hi) {
		return nil, onshoring.Invalid("bins.hi", hi, "must be > lo")
	}

	width := (hi - lo) / float64(numBins)
	bins := make([]Bin, numBins)
	for i := range bins {
		bins[i].Lo = lo + float64(i)*width
		bins[i].Hi = lo + float64(i+1)*width
	}
	bins[numBins-1].Hi = hi

	stayBetter := make([]int, numBins)
	for _, s := range samples {
		idx := binIndex(bins, s.PDis)
		if idx < 0 {
			continue
		}

		bins[idx].Count++
		if s.StayBetter() {
			stayBetter[idx]++
		}
	}

	for i := range bins {
		if bins[i].Count > 0 {
			bins[i].ShareStayBetter = float64(stayBetter[i]) / float64(bins[i].Count)
		}
	}

	return bins, nil
}

func binIndex(bins []Bin, x float64) int {
	for i, b := range bins {
		if x > b.Lo && x <= b.Hi {
			return i
		}
	}

	return -1
}
