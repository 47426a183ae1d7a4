package coordination

import (
	"math"

	"github.com/pkg/errors"

	"github.com/timpalpant/onshoring"
)

// Params are the payoff primitives of the coordination game.
//
// Monetary fields must share a unit (e.g. US$ billion, present value).
type Params struct {
	// Number of symmetric players (firms) deciding whether to move.
	Players int
	// Revenue earned by a player regardless of where it produces.
	Revenue float64
	// Site-specific subsidy received by each player that moves.
	Subsidy float64
	// Operating premium at the host site when no complements are present.
	Delta0 float64
	// Rate at which each additional complement reduces the premium.
	Alpha float64
	// Complements already present at the host site.
	Complements int
	// Total complements available when the site is fully built out.
	MaxComplements int
}

// DefaultParams returns the calibrated semiconductor cluster scenario
// (US$ billion, five-year present value).
func DefaultParams() Params {
	return Params{
		Players:        5,
		Revenue:        40,
		Subsidy:        1,
		Delta0:         0.10,
		Alpha:          math.Ln2 / 4,
		Complements:    3,
		MaxComplements: 5,
	}
}

// Validate checks that every field lies within its domain.
func (p Params) Validate() error {
	if err := p.validate(); err != nil {
		return errors.Wrap(err, "coordination params")
	}

	return nil
}

func (p Params) validate() error {
	if err := onshoring.CheckIntRange("players", p.Players, 1, MaxPlayers); err != nil {
		return err
	}
	if err := onshoring.CheckPositive("revenue", p.Revenue); err != nil {
		return err
	}
	if err := onshoring.CheckNonNegative("subsidy", p.Subsidy); err != nil {
		return err
	}
	if err := onshoring.CheckUnit("delta0", p.Delta0, true); err != nil {
		return err
	}
	if err := onshoring.CheckPositive("alpha", p.Alpha); err != nil {
		return err
	}
	if p.MaxComplements < 0 {
		return onshoring.Invalid("max_complements", p.MaxComplements, "must be >= 0")
	}
	if err := onshoring.CheckIntRange("complements", p.Complements, 0, p.MaxComplements); err != nil {
		return err
	}

	return nil
}
