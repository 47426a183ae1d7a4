// Package coordination solves the complete-information relocation game in
// which N identical firms choose to Stay or Move, and the payoff to moving
// improves as more complements locate at the host site.
package coordination

import (
	"math"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/timpalpant/onshoring"
)

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

// Delta is the host-site operating premium when c complements are present.
func (g *Game) Delta(c float64) float64 {
	return g.params.Delta0 * math.Exp(-g.params.Alpha*c)
}

// Complements is the number of complements available when the given total
// number of players move. Availability saturates at MaxComplements.
func (g *Game) Complements(movers int) int {
	c := g.params.Complements + movers
	if c > g.params.MaxComplements {
		return g.params.MaxComplements
	}

	return c
}

// PayoffMove is the payoff to a player who moves while othersMoving
// other players also move.
func (g *Game) PayoffMove(othersMoving int) float64 {
	c := g.Complements(othersMoving + 1)
	return g.params.Revenue*(1-g.Delta(float64(c))) + g.params.Subsidy
}

// PayoffStay is the payoff to a player who stays. It does not depend
// on how many others move.
func (g *Game) PayoffStay(othersMoving int) float64 {
	return g.params.Revenue
}

// IsMoveBestResponse returns whether Move is a (weak) best response when
// othersMoving other players move. Ties favor Move.
func (g *Game) IsMoveBestResponse(othersMoving int) bool {
	return g.PayoffMove(othersMoving) >= g.PayoffStay(othersMoving)
}

// BestResponse records the best response of a player against a given
// number of other movers.
type BestResponse struct {
	Others     int
	Action     Action
	PayoffMove float64
	PayoffStay float64
}

// BestResponseMap returns the best response against 0..N-1 other movers.
func (g *Game) BestResponseMap() []BestResponse {
	result := make([]BestResponse, g.params.Players)
	for others := range result {
		br := Stay
		if g.IsMoveBestResponse(others) {
			br = Move
		}

		result[others] = BestResponse{
			Others:     others,
			Action:     br,
			PayoffMove: g.PayoffMove(others),
			PayoffStay: g.PayoffStay(others),
		}
	}

	return result
}

// IsEquilibrium returns whether no player in the profile has a profitable
// unilateral deviation.
func (g *Game) IsEquilibrium(p Profile) bool {
	if p.Len() != g.params.Players {
		return false
	}

	total := p.NumMoving()
	for i := 0; i < p.Len(); i++ {
		a := p.Action(i)
		others := total - int(a)
		wantsMove := g.IsMoveBestResponse(others)
		if (a == Move) != wantsMove {
			glog.V(4).Infof("%v: player %d plays %v but best response to %d movers is move=%v",
				p, i, a, others, wantsMove)
			return false
		}
	}

	return true
}

// EnumerateEquilibria examines all 2^N pure-strategy profiles and returns
// those in which every player is playing a best response, in
// lexicographic order.
func (g *Game) EnumerateEquilibria() []Profile {
	var result []Profile
	examined := 0
	EnumerateProfiles(g.params.Players, func(p Profile) {
		examined++
		if g.IsEquilibrium(p) {
			glog.V(2).Infof("Found equilibrium: %v", p)
			result = append(result, p)
		}
	})

	glog.V(1).Infof("Examined %d profiles, found %d pure-strategy equilibria",
		examined, len(result))
	return result
}

// Threshold is the critical mass at which moving and staying are equally
// attractive.
type Threshold struct {
	// Premium at which a mover is indifferent: Subsidy / Revenue.
	DeltaStar float64
	// Complement level at which Delta(CStar) == DeltaStar.
	CStar float64
	// Additional movers needed to reach CStar from the current complements.
	// This is not capped by MaxComplements; see Reachable.
	MStar float64
}

// Reachable returns whether the additional movers needed fit within the
// remaining complement capacity of the host site.
func (t Threshold) Reachable(params Params) bool {
	return t.MStar <= float64(params.MaxComplements-params.Complements)
}

// CriticalMass solves Delta(c*) = Subsidy/Revenue for c*.
//
// Returns a *onshoring.DomainError if Subsidy/Revenue is not in (0, Delta0),
// since the premium never reaches such a level.
func (g *Game) CriticalMass() (Threshold, error) {
	deltaStar := g.params.Subsidy / g.params.Revenue
	if deltaStar <= 0 || deltaStar >= g.params.Delta0 {
		err := &onshoring.DomainError{
			Op:     "critical mass",
			Reason: "subsidy/revenue must be in (0, delta0)",
		}
		return Threshold{}, errors.Wrapf(err, "s/R = %g, delta0 = %g", deltaStar, g.params.Delta0)
	}

	cStar := (math.Log(g.params.Delta0) - math.Log(deltaStar)) / g.params.Alpha
	mStar := math.Max(0, cStar-float64(g.params.Complements))
	return Threshold{DeltaStar: deltaStar, CStar: cStar, MStar: mStar}, nil
}
