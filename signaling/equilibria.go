package signaling

import (
	"github.com/golang/glog"
)

// The number of (firm strategy, state strategy) combinations examined.
const NumCandidates = NumFirmStrategies * NumStateStrategies

// Record is a pure-strategy perfect Bayesian equilibrium of the game.
type Record struct {
	Firm           FirmStrategy
	State          StateStrategy
	PayoffLowCost  float64
	PayoffHighCost float64
	// On-path posterior beliefs supporting the equilibrium.
	Beliefs Beliefs
}

// Candidates evaluates all 16 combinations of firm and state strategies,
// in enumeration order.
func (g *Game) Candidates() []Candidate {
	result := make([]Candidate, 0, NumCandidates)
	for _, fs := range FirmStrategies() {
		for _, ss := range StateStrategies() {
			result = append(result, g.Evaluate(fs, ss))
		}
	}

	return result
}

// EnumerateEquilibria returns every combination in which both firm types
// are playing best responses and the state is sequentially rational on
// path. The result may be empty.
func (g *Game) EnumerateEquilibria() []Record {
	var result []Record
	for _, c := range g.Candidates() {
		if !c.FirmIncentiveCompatible() {
			glog.V(3).Infof("Rejected firm=%v state=%v: firm deviation %v beats %v",
				c.Firm, c.State, c.Deviation, c.Payoff)
			continue
		}

		if !c.StateSequentiallyRational() {
			glog.V(3).Infof("Rejected firm=%v state=%v: state not sequentially rational %v",
				c.Firm, c.State, c.SequentiallyRational)
			continue
		}

		glog.V(2).Infof("Found equilibrium firm=%v state=%v", c.Firm, c.State)
		result = append(result, Record{
			Firm:           c.Firm,
			State:          c.State,
			PayoffLowCost:  c.Payoff[LowCost],
			PayoffHighCost: c.Payoff[HighCost],
			Beliefs:        c.Beliefs,
		})
	}

	glog.V(1).Infof("Examined %d combinations, found %d equilibria", NumCandidates, len(result))
	return result
}
