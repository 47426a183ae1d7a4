// Package signaling solves the incomplete-information relocation game:
// a LowCost or HighCost firm chooses whether to Send a costly signal, and
// the state, having updated its beliefs about the firm's type, decides
// whether to subsidize.
package signaling

// Game evaluates payoffs and equilibria for a fixed set of Params.
// A Game is immutable and safe for concurrent use.
type Game struct {
	params Params
}

// NewGame validates the given Params and returns a Game for them.
func NewGame(params Params) (*Game, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	return &Game{params: params}, nil
}

// Params returns the parameters of the game.
func (g *Game) Params() Params {
	return g.params
}

// FiscalCost is the nominal cost to the state of subsidizing one firm.
func (g *Game) FiscalCost() float64 {
	return g.params.Grant + g.params.ITCPresentValue
}

// SubsidyValue is the risk-adjusted value to a firm of being subsidized.
func (g *Game) SubsidyValue() float64 {
	return g.params.Credibility * g.FiscalCost()
}

// RelocationPenalty is the cost to a firm of the given type of relocating.
func (g *Game) RelocationPenalty(t FirmType) float64 {
	delta := g.params.DeltaLowCost
	if t == HighCost {
		delta = g.params.DeltaHighCost
	}

	return delta * g.params.NodeNPV
}

// FirmPayoff is the payoff to a firm of the given type that receives
// subsidy, having sent the signal or not.
func (g *Game) FirmPayoff(t FirmType, signaled bool, subsidy float64) float64 {
	payoff := subsidy
	if signaled {
		payoff -= g.RelocationPenalty(t)
		payoff -= g.params.SignalCost
	}
	if t == HighCost {
		payoff -= g.params.Clawback
	}

	return payoff
}

// StatePayoff is the payoff to the state from its response given the
// security value realized.
func (g *Game) StatePayoff(subsidized bool, securityValue float64) float64 {
	if subsidized {
		return securityValue - g.params.BudgetCost*g.FiscalCost()
	}

	return securityValue
}

// SecurityValue is the security benefit the state realizes from a firm that
// sent the observed signal. Only sending produces the benefit; the firm's
// type does not enter.
func (g *Game) SecurityValue(observed Signal) float64 {
	if observed == Send {
		return g.params.SecurityValue
	}

	return 0
}

// subsidyAfter is what a firm receives when the state plays ss and sees s.
func (g *Game) subsidyAfter(ss StateStrategy, s Signal) float64 {
	if ss.After(s) == Subsidize {
		return g.SubsidyValue()
	}

	return 0
}

// Beliefs are the state's posterior beliefs about the firm's type after
// each Signal, given the firms' strategy profile.
type Beliefs struct {
	// Prior probability of observing each Signal.
	ProbSignal [NumSignals]float64
	// Posterior probability that the firm is LowCost after each Signal.
	// Only meaningful when OnPath is true.
	LowCost [NumSignals]float64
	// Whether each Signal is observed with positive probability.
	OnPath [NumSignals]bool
}

// Posterior returns the belief that the firm has type t after observing s.
func (b Beliefs) Posterior(s Signal, t FirmType) float64 {
	if t == LowCost {
		return b.LowCost[s]
	}

	return 1 - b.LowCost[s]
}

// UpdateBeliefs applies Bayes' rule to the prior for the given firm
// strategy. Signals that neither type sends are left off-path.
func (g *Game) UpdateBeliefs(fs FirmStrategy) Beliefs {
	var b Beliefs
	prior := [NumFirmTypes]float64{
		LowCost:  g.params.PriorLowCost,
		HighCost: 1 - g.params.PriorLowCost,
	}

	var joint [NumSignals][NumFirmTypes]float64
	for t := LowCost; t <= HighCost; t++ {
		joint[fs.Of(t)][t] = prior[t]
	}

	for s := Send; s <= Withhold; s++ {
		b.ProbSignal[s] = joint[s][LowCost] + joint[s][HighCost]
		if b.ProbSignal[s] > 0 {
			b.OnPath[s] = true
			b.LowCost[s] = joint[s][LowCost] / b.ProbSignal[s]
		}
	}

	return b
}

// StateExpectedPayoff is the state's expected payoff from responding r to
// the observed signal, given its posterior beliefs. The state's payoff is
// the same for both types, so the posterior only weights identical terms.
func (g *Game) StateExpectedPayoff(b Beliefs, observed Signal, r Response) float64 {
	u := g.StatePayoff(r == Subsidize, g.SecurityValue(observed))
	var expected float64
	for t := LowCost; t <= HighCost; t++ {
		expected += b.Posterior(observed, t) * u
	}

	return expected
}

// Candidate is one (firm strategy, state strategy) combination together
// with everything computed while checking it.
type Candidate struct {
	Firm    FirmStrategy
	State   StateStrategy
	Beliefs Beliefs
	// Realized payoff to each FirmType.
	Payoff [NumFirmTypes]float64
	// Payoff to each FirmType from switching to the other Signal.
	Deviation [NumFirmTypes]float64
	// Whether the state's response after each Signal is sequentially
	// rational. Off-path signals are not checked and are always true.
	SequentiallyRational [NumSignals]bool
}

// FirmIncentiveCompatible returns whether neither firm type gains by
// unilaterally switching its signal.
func (c *Candidate) FirmIncentiveCompatible() bool {
	for t := LowCost; t <= HighCost; t++ {
		if c.Payoff[t] < c.Deviation[t] {
			return false
		}
	}

	return true
}

// StateSequentiallyRational returns whether the state best responds to
// every on-path signal.
func (c *Candidate) StateSequentiallyRational() bool {
	return c.SequentiallyRational[Send] && c.SequentiallyRational[Withhold]
}

// IsEquilibrium returns whether both firm incentive compatibility and state
// sequential rationality hold.
func (c *Candidate) IsEquilibrium() bool {
	return c.FirmIncentiveCompatible() && c.StateSequentiallyRational()
}

// Evaluate computes beliefs, payoffs and deviations for the combination.
func (g *Game) Evaluate(fs FirmStrategy, ss StateStrategy) Candidate {
	c := Candidate{
		Firm:    fs,
		State:   ss,
		Beliefs: g.UpdateBeliefs(fs),
	}

	for t := LowCost; t <= HighCost; t++ {
		s := fs.Of(t)
		c.Payoff[t] = g.FirmPayoff(t, s == Send, g.subsidyAfter(ss, s))
		dev := s.Other()
		c.Deviation[t] = g.FirmPayoff(t, dev == Send, g.subsidyAfter(ss, dev))
	}

	for s := Send; s <= Withhold; s++ {
		if !c.Beliefs.OnPath[s] {
			c.SequentiallyRational[s] = true
			continue
		}

		chosen := ss.After(s)
		uChosen := g.StateExpectedPayoff(c.Beliefs, s, chosen)
		uOther := g.StateExpectedPayoff(c.Beliefs, s, chosen.Other())
		c.SequentiallyRational[s] = uChosen >= uOther
	}

	return c
}
