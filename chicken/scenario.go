package chicken

import "math"

// BaselineDisruptionProbabilities are the disruption probabilities at
// which the deterministic baseline is reported.
var BaselineDisruptionProbabilities = []float64{0.10, 0.25}

// Range is a closed interval sampled uniformly. Lo == Hi fixes the value.
type Range struct {
	Lo, Hi float64
}

// Fixed returns a Range containing only v.
func Fixed(v float64) Range {
	return Range{Lo: v, Hi: v}
}

// Scenario is a calibration together with the ranges explored by the
// Monte-Carlo sensitivity analysis.
type Scenario struct {
	Name    string
	Params  Params
	PDis    Range
	Beta    Range
	Subsidy Range
}

// PresentValueFactor returns the sum of discount factors 1/(1+rate)^t
// for t = 1..years.
func PresentValueFactor(rate float64, years int) float64 {
	return GrowthPresentValueFactor(0, rate, years)
}

// GrowthPresentValueFactor returns sum_{t=1..years} (1+growth)^t / (1+rate)^t.
func GrowthPresentValueFactor(growth, rate float64, years int) float64 {
	var total float64
	for t := 1; t <= years; t++ {
		total += math.Pow(1+growth, float64(t)) / math.Pow(1+rate, float64(t))
	}

	return total
}

const (
	chipsGrant  = 6600
	hostCapex   = 65000
	annualSales = 10000
	itcRate     = 0.25
	discount    = 0.08
	horizon     = 5
)

// BaseRun is the original single-year calibration.
func BaseRun() Scenario {
	return Scenario{
		Name: "base",
		Params: Params{
			Revenue:            annualSales,
			HomeCapex:          30000,
			HostCapex:          hostCapex,
			CostPremium:        1.10,
			DowntimeLossPerDay: 24,
			Subsidy:            chipsGrant,
		},
		PDis:    Range{Lo: 0.10, Hi: 0.25},
		Beta:    Fixed(1.10),
		Subsidy: Fixed(chipsGrant),
	}
}

// FiveYearHorizon values revenue over five discounted years, counts only
// incremental home capex, and adds the full investment tax credit.
func FiveYearHorizon() Scenario {
	subsidy := chipsGrant + itcRate*hostCapex
	return Scenario{
		Name: "five-year",
		Params: Params{
			Revenue:            annualSales * PresentValueFactor(discount, horizon),
			HomeCapex:          20000,
			HostCapex:          hostCapex,
			CostPremium:        1.10,
			DowntimeLossPerDay: 24,
			Subsidy:            subsidy,
		},
		PDis:    Range{Lo: 0.05, Hi: 0.40},
		Beta:    Range{Lo: 1.10, Hi: 1.20},
		Subsidy: Range{Lo: subsidy, Hi: 30000},
	}
}

// EnhancedSubsidy adds 10% annual revenue growth, doubles downtime losses
// and widens the subsidy range.
func EnhancedSubsidy() Scenario {
	subsidy := chipsGrant + itcRate*hostCapex
	return Scenario{
		Name: "enhanced",
		Params: Params{
			Revenue:            annualSales * GrowthPresentValueFactor(0.10, discount, horizon),
			HomeCapex:          20000,
			HostCapex:          hostCapex,
			CostPremium:        1.10,
			DowntimeLossPerDay: 48,
			Subsidy:            subsidy,
		},
		PDis:    Range{Lo: 0.05, Hi: 0.40},
		Beta:    Range{Lo: 1.05, Hi: 1.15},
		Subsidy: Range{Lo: subsidy, Hi: 35000},
	}
}

// Scenarios returns every calibration by name.
func Scenarios() map[string]Scenario {
	result := make(map[string]Scenario)
	for _, s := range []Scenario{BaseRun(), FiveYearHorizon(), EnhancedSubsidy()} {
		result[s.Name] = s
	}

	return result
}
