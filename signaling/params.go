package signaling

import (
	"github.com/pkg/errors"

	"github.com/timpalpant/onshoring"
)

// Params are the payoff primitives of the signaling game.
//
// Monetary fields are present values and must share a unit.
type Params struct {
	// Direct grant promised by the state.
	Grant float64
	// Present value of the investment tax credit.
	ITCPresentValue float64
	// Relocation penalty rate of each type, applied to NodeNPV.
	DeltaLowCost  float64
	DeltaHighCost float64
	// Net present value of the production node being relocated.
	NodeNPV float64
	// Cost of sending the signal.
	SignalCost float64
	// Expected repayment faced by high-cost firms.
	Clawback float64
	// Prior probability that a firm is LowCost.
	PriorLowCost float64
	// Security benefit to the state when a firm sends.
	SecurityValue float64
	// Fiscal disutility to the state per unit of subsidy.
	BudgetCost float64
	// Probability that a promised subsidy is actually paid out.
	Credibility float64
}

// DefaultParams returns the documented CHIPS Act calibration (US$).
func DefaultParams() Params {
	return Params{
		Grant:           6.6e9,
		ITCPresentValue: 5.0e9,
		DeltaLowCost:    0.05,
		DeltaHighCost:   0.15,
		NodeNPV:         40e9,
		SignalCost:      3.5e8,
		Clawback:        2.0e9,
		PriorLowCost:    0.4,
		SecurityValue:   3.0e9,
		BudgetCost:      1.0,
		Credibility:     0.9,
	}
}

// Validate checks that every field lies within its domain.
func (p Params) Validate() error {
	if err := p.validate(); err != nil {
		return errors.Wrap(err, "signaling params")
	}

	return nil
}

func (p Params) validate() error {
	nonNegative := []struct {
		field string
		value float64
	}{
		{"grant", p.Grant},
		{"itc_pv", p.ITCPresentValue},
		{"npv_node", p.NodeNPV},
		{"signal_cost", p.SignalCost},
		{"clawback", p.Clawback},
		{"state_security_value", p.SecurityValue},
		{"state_budget_cost", p.BudgetCost},
	}
	for _, f := range nonNegative {
		if err := onshoring.CheckNonNegative(f.field, f.value); err != nil {
			return err
		}
	}

	if err := onshoring.CheckUnit("delta_LC", p.DeltaLowCost, false); err != nil {
		return err
	}
	if err := onshoring.CheckUnit("delta_HC", p.DeltaHighCost, false); err != nil {
		return err
	}
	if p.DeltaLowCost >= p.DeltaHighCost {
		return onshoring.Invalid("delta_LC", p.DeltaLowCost, "must be < delta_HC")
	}
	if err := onshoring.CheckOpenUnit("prior_LC", p.PriorLowCost); err != nil {
		return err
	}
	if err := onshoring.CheckUnit("credibility", p.Credibility, true); err != nil {
		return err
	}

	return nil
}
