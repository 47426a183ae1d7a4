// Package config loads game parameters from environment variables.
package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"

	"github.com/timpalpant/onshoring/coordination"
	"github.com/timpalpant/onshoring/signaling"
)

// Coordination configures the coordination game (US$ billion).
type Coordination struct {
	Players int     `env:"COORD_PLAYERS" envDefault:"5"`
	Revenue float64 `env:"COORD_REVENUE" envDefault:"40"`
	Subsidy float64 `env:"COORD_SUBSIDY" envDefault:"1"`
	Delta0  float64 `env:"COORD_DELTA0" envDefault:"0.10"`
	// ln(2)/4 halves the premium every 4 complements.
	Alpha          float64 `env:"COORD_ALPHA" envDefault:"0.17328679513998632"`
	Complements    int     `env:"COORD_COMPLEMENTS" envDefault:"3"`
	MaxComplements int     `env:"COORD_MAX_COMPLEMENTS" envDefault:"5"`
}

// Params converts the configuration into game parameters.
func (c Coordination) Params() coordination.Params {
	return coordination.Params{
		Players:        c.Players,
		Revenue:        c.Revenue,
		Subsidy:        c.Subsidy,
		Delta0:         c.Delta0,
		Alpha:          c.Alpha,
		Complements:    c.Complements,
		MaxComplements: c.MaxComplements,
	}
}

// Signaling configures the signaling game (US$).
type Signaling struct {
	Grant           float64 `env:"SIG_GRANT" envDefault:"6.6e9"`
	ITCPresentValue float64 `env:"SIG_ITC_PV" envDefault:"5.0e9"`
	DeltaLowCost    float64 `env:"SIG_DELTA_LC" envDefault:"0.05"`
	DeltaHighCost   float64 `env:"SIG_DELTA_HC" envDefault:"0.15"`
	NodeNPV         float64 `env:"SIG_NPV_NODE" envDefault:"40e9"`
	SignalCost      float64 `env:"SIG_SIGNAL_COST" envDefault:"3.5e8"`
	Clawback        float64 `env:"SIG_CLAWBACK" envDefault:"2.0e9"`
	PriorLowCost    float64 `env:"SIG_PRIOR_LC" envDefault:"0.4"`
	SecurityValue   float64 `env:"SIG_STATE_SECURITY_VALUE" envDefault:"3.0e9"`
	BudgetCost      float64 `env:"SIG_STATE_BUDGET_COST" envDefault:"1.0"`
	Credibility     float64 `env:"SIG_CREDIBILITY" envDefault:"0.9"`
}

// Params converts the configuration into game parameters.
func (c Signaling) Params() signaling.Params {
	return signaling.Params{
		Grant:           c.Grant,
		ITCPresentValue: c.ITCPresentValue,
		DeltaLowCost:    c.DeltaLowCost,
		DeltaHighCost:   c.DeltaHighCost,
		NodeNPV:         c.NodeNPV,
		SignalCost:      c.SignalCost,
		Clawback:        c.Clawback,
		PriorLowCost:    c.PriorLowCost,
		SecurityValue:   c.SecurityValue,
		BudgetCost:      c.BudgetCost,
		Credibility:     c.Credibility,
	}
}

// Chicken configures the relocation chicken game sensitivity analysis.
type Chicken struct {
	Scenario string `env:"CHICKEN_SCENARIO" envDefault:"base"`
	Samples  int    `env:"CHICKEN_SAMPLES" envDefault:"10000"`
	Seed     int64  `env:"CHICKEN_SEED" envDefault:"42"`
}

// Parse loads target from the process environment.
func Parse(target interface{}) error {
	if err := env.Parse(target); err != nil {
		return errors.Wrap(err, "parse env")
	}

	return nil
}

// ParseFrom loads target from the given environment, ignoring the
// process environment.
func ParseFrom(environ map[string]string, target interface{}) error {
	if err := env.ParseWithOptions(target, env.Options{Environment: environ}); err != nil {
		return errors.Wrap(err, "parse env")
	}

	return nil
}
