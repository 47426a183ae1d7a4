// Package chicken models the single-firm relocation decision as a
// comparison of stay and move profits under a risk of disruption at home.
package chicken

import (
	"github.com/pkg/errors"

	"github.com/timpalpant/onshoring"
)

const daysPerYear = 365

// Params are the primitives of the stay-or-move decision (US$ million).
type Params struct {
	// Revenue earned at either site.
	Revenue float64
	// Capital expenditure to build at home.
	HomeCapex float64
	// Capital expenditure to build at the host site.
	HostCapex float64
	// Multiplier applied to revenue when producing at the host site.
	CostPremium float64
	// Loss per day of downtime following a disruption at home.
	DowntimeLossPerDay float64
	// Subsidy offsetting host site capex.
	Subsidy float64
}

// Validate checks that every field lies within its domain.
func (p Params) Validate() error {
	fields := []struct {
		field string
		value float64
		check func(string, float64) error
	}{
		{"revenue", p.Revenue, onshoring.CheckPositive},
		{"home_capex", p.HomeCapex, onshoring.CheckNonNegative},
		{"host_capex", p.HostCapex, onshoring.CheckNonNegative},
		{"beta", p.CostPremium, onshoring.CheckPositive},
		{"downtime_loss_per_day", p.DowntimeLossPerDay, onshoring.CheckNonNegative},
		{"subsidy", p.Subsidy, onshoring.CheckNonNegative},
	}

	for _, f := range fields {
		if err := f.check(f.field, f.value); err != nil {
			return errors.Wrap(err, "chicken params")
		}
	}

	return nil
}

// StayProfit is the profit from staying home when a disruption occurs
// with probability pDis.
func (p Params) StayProfit(pDis float64) float64 {
	return p.Revenue - pDis*p.DowntimeLossPerDay*daysPerYear - p.HomeCapex
}

// MoveProfit is the profit from moving with the given cost premium
// multiplier and subsidy.
func (p Params) MoveProfit(beta, subsidy float64) float64 {
	return beta*p.Revenue - (p.HostCapex - subsidy)
}

// BaselineRow compares both profits at one disruption probability.
type BaselineRow struct {
	PDis       float64
	ProfitStay float64
	ProfitMove float64
}

// StayBetter returns whether staying is strictly more profitable.
func (r BaselineRow) StayBetter() bool {
	return r.ProfitStay > r.ProfitMove
}

// Baseline evaluates both profits at each disruption probability using the
// calibrated cost premium and subsidy.
func (p Params) Baseline(pDis ...float64) ([]BaselineRow, error) {
	result := make([]BaselineRow, 0, len(pDis))
	for _, pd := range pDis {
		if err := onshoring.CheckUnit("p_dis", pd, false); err != nil {
			return nil, err
		}

		result = append(result, BaselineRow{
			PDis:       pd,
			ProfitStay: p.StayProfit(pd),
			ProfitMove: p.MoveProfit(p.CostPremium, p.Subsidy),
		})
	}

	return result, nil
}

// IndifferencePDis is the disruption probability at which staying and
// moving are equally profitable. Above it, moving is better.
func (p Params) IndifferencePDis() (float64, error) {
	if p.DowntimeLossPerDay == 0 {
		return 0, &onshoring.DomainError{
			Op:     "indifference probability",
			Reason: "stay profit does not depend on disruption without downtime loss",
		}
	}

	gap := p.StayProfit(0) - p.MoveProfit(p.CostPremium, p.Subsidy)
	return gap / (p.DowntimeLossPerDay * daysPerYear), nil
}
