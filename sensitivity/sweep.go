package sensitivity

import (
	"fmt"
	"runtime"
	"sort"
	"sync"

	"github.com/golang/glog"
	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"

	"github.com/timpalpant/onshoring"
	"github.com/timpalpant/onshoring/coordination"
	"github.com/timpalpant/onshoring/signaling"
)

var signalingFields = map[string]func(p *signaling.Params, v float64){
	"grant":                func(p *signaling.Params, v float64) { p.Grant = v },
	"itc_pv":               func(p *signaling.Params, v float64) { p.ITCPresentValue = v },
	"delta_LC":             func(p *signaling.Params, v float64) { p.DeltaLowCost = v },
	"delta_HC":             func(p *signaling.Params, v float64) { p.DeltaHighCost = v },
	"npv_node":             func(p *signaling.Params, v float64) { p.NodeNPV = v },
	"signal_cost":          func(p *signaling.Params, v float64) { p.SignalCost = v },
	"clawback":             func(p *signaling.Params, v float64) { p.Clawback = v },
	"prior_LC":             func(p *signaling.Params, v float64) { p.PriorLowCost = v },
	"state_security_value": func(p *signaling.Params, v float64) { p.SecurityValue = v },
	"state_budget_cost":    func(p *signaling.Params, v float64) { p.BudgetCost = v },
	"credibility":          func(p *signaling.Params, v float64) { p.Credibility = v },
}

var coordinationFields = map[string]func(p *coordination.Params, v float64){
	"revenue": func(p *coordination.Params, v float64) { p.Revenue = v },
	"subsidy": func(p *coordination.Params, v float64) { p.Subsidy = v },
	"delta0":  func(p *coordination.Params, v float64) { p.Delta0 = v },
	"alpha":   func(p *coordination.Params, v float64) { p.Alpha = v },
}

// SignalingFields lists the parameters that SweepSignaling can vary.
func SignalingFields() []string {
	result := make([]string, 0, len(signalingFields))
	for k := range signalingFields {
		result = append(result, k)
	}

	sort.Strings(result)
	return result
}

// CoordinationFields lists the parameters that SweepCoordination can vary.
func CoordinationFields() []string {
	result := make([]string, 0, len(coordinationFields))
	for k := range coordinationFields {
		result = append(result, k)
	}

	sort.Strings(result)
	return result
}

// SignalingPoint is the solution of the signaling game at one value of
// the swept parameter.
type SignalingPoint struct {
	Value      float64
	Params     signaling.Params
	Equilibria []signaling.Record
	// Non-nil if the parameters at this point are invalid.
	Err error
}

// CoordinationPoint is the solution of the coordination game at one value
// of the swept parameter.
type CoordinationPoint struct {
	Value      float64
	Params     coordination.Params
	Equilibria []coordination.Profile
	Threshold  coordination.Threshold
	// Non-nil if the critical mass is undefined at this point.
	ThresholdErr error
	// Non-nil if the parameters at this point are invalid.
	Err error
}

// Sweeper solves games over grids of parameter values, caching solutions
// so that overlapping sweeps only solve each parameter point once.
// A Sweeper is safe for concurrent use.
type Sweeper struct {
	cache      *lru.Cache
	maxWorkers int
}

// NewSweeper creates a Sweeper that remembers up to cacheSize solutions.
func NewSweeper(cacheSize int) (*Sweeper, error) {
	cache, err := lru.New(cacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "creating solution cache")
	}

	return &Sweeper{cache: cache, maxWorkers: runtime.NumCPU()}, nil
}

// Len returns the number of cached solutions.
func (s *Sweeper) Len() int {
	return s.cache.Len()
}

// forEach runs fn(i) for i in [0, n) on up to maxWorkers goroutines.
func (s *Sweeper) forEach(n int, fn func(i int)) {
	var wg sync.WaitGroup
	sem := make(chan struct{}, s.maxWorkers)
	for i := 0; i < n; i++ {
		sem <- struct{}{}
		wg.Add(1)
		go func(i int) {
			defer func() { <-sem }()
			defer wg.Done()
			fn(i)
		}(i)
	}

	wg.Wait()
}

// SweepSignaling solves the signaling game for each value of the named
// field, holding the rest of base fixed. Points are returned in the order
// of values.
func (s *Sweeper) SweepSignaling(base signaling.Params, field string, values []float64) ([]SignalingPoint, error) {
	set, ok := signalingFields[field]
	if !ok {
		return nil, onshoring.Invalid("field", field, fmt.Sprintf("must be one of %v", SignalingFields()))
	}

	result := make([]SignalingPoint, len(values))
	s.forEach(len(values), func(i int) {
		params := base
		set(&params, values[i])
		pt := SignalingPoint{Value: values[i], Params: params}
		pt.Equilibria, pt.Err = s.solveSignaling(params)
		result[i] = pt
	})

	glog.V(1).Infof("Swept signaling %s over %d values (%d cached solutions)",
		field, len(values), s.cache.Len())
	return result, nil
}

func (s *Sweeper) solveSignaling(params signaling.Params) ([]signaling.Record, error) {
	if cached, ok := s.cache.Get(params); ok {
		return append([]signaling.Record(nil), cached.([]signaling.Record)...), nil
	}

	g, err := signaling.NewGame(params)
	if err != nil {
		return nil, err
	}

	records := g.EnumerateEquilibria()
	s.cache.Add(params, records)
	return append([]signaling.Record(nil), records...), nil
}

type coordinationSolution struct {
	equilibria   []coordination.Profile
	threshold    coordination.Threshold
	thresholdErr error
}

// clone copies the equilibria so callers cannot modify the cached solution.
func (sol coordinationSolution) clone() coordinationSolution {
	sol.equilibria = append([]coordination.Profile(nil), sol.equilibria...)
	return sol
}

// SweepCoordination solves the coordination game for each value of the
// named field, holding the rest of base fixed.
func (s *Sweeper) SweepCoordination(base coordination.Params, field string, values []float64) ([]CoordinationPoint, error) {
	set, ok := coordinationFields[field]
	if !ok {
		return nil, onshoring.Invalid("field", field, fmt.Sprintf("must be one of %v", CoordinationFields()))
	}

	result := make([]CoordinationPoint, len(values))
	s.forEach(len(values), func(i int) {
		params := base
		set(&params, values[i])
		pt := CoordinationPoint{Value: values[i], Params: params}
		sol, err := s.solveCoordination(params)
		if err != nil {
			pt.Err = err
		} else {
			pt.Equilibria = sol.equilibria
			pt.Threshold = sol.threshold
			pt.ThresholdErr = sol.thresholdErr
		}
		result[i] = pt
	})

	glog.V(1).Infof("Swept coordination %s over %d values (%d cached solutions)",
		field, len(values), s.cache.Len())
	return result, nil
}

func (s *Sweeper) solveCoordination(params coordination.Params) (coordinationSolution, error) {
	if cached, ok := s.cache.Get(params); ok {
		return cached.(coordinationSolution).clone(), nil
	}

	g, err := coordination.NewGame(params)
	if err != nil {
		return coordinationSolution{}, err
	}

	sol := coordinationSolution{equilibria: g.EnumerateEquilibria()}
	sol.threshold, sol.thresholdErr = g.CriticalMass()
	s.cache.Add(params, sol)
	return sol.clone(), nil
}

// Linspace returns n evenly spaced values over [lo, hi].
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{lo}
	}

	result := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range result {
		result[i] = lo + float64(i)*step
	}
	result[n-1] = hi
	return result
}
