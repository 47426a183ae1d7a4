package chicken

import (
	"math"
	"testing"

	"github.com/timpalpant/onshoring"
)

func TestBaseline(t *testing.T) {
	s := BaseRun()
	rows, err := s.Params.Baseline(BaselineDisruptionProbabilities...)
	if err != nil {
		t.Fatal(err)
	}

	expected := []BaselineRow{
		{PDis: 0.10, ProfitStay: -20876, ProfitMove: -47400},
		{PDis: 0.25, ProfitStay: -22190, ProfitMove: -47400},
	}
	if len(rows) != len(expected) {
		t.Fatalf("got %d rows, expected %d", len(rows), len(expected))
	}
	for i, row := range rows {
		want := expected[i]
		if math.Abs(row.ProfitStay-want.ProfitStay) > 1e-6 || math.Abs(row.ProfitMove-want.ProfitMove) > 1e-6 {
			t.Errorf("row %d: got %+v, expected %+v", i, row, want)
		}
		if !row.StayBetter() {
			t.Errorf("row %d: expected staying to be better", i)
		}
	}
}

func TestBaseline_InvalidProbability(t *testing.T) {
	_, err := BaseRun().Params.Baseline(0.1, 1.5)
	if !onshoring.IsValidation(err) {
		t.Errorf("expected validation error, got: %v", err)
	}
}

func TestIndifferencePDis(t *testing.T) {
	for name, s := range Scenarios() {
		p, err := s.Params.IndifferencePDis()
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}

		stay := s.Params.StayProfit(p)
		move := s.Params.MoveProfit(s.Params.CostPremium, s.Params.Subsidy)
		if math.Abs(stay-move) > 1e-6 {
			t.Errorf("%s: at p=%v stay=%v, move=%v", name, p, stay, move)
		}
	}

	params := BaseRun().Params
	params.DowntimeLossPerDay = 0
	if _, err := params.IndifferencePDis(); !onshoring.IsDomain(err) {
		t.Errorf("expected domain error, got: %v", err)
	}
}

func TestPresentValueFactor(t *testing.T) {
	var expected float64
	for i := 1; i <= 5; i++ {
		expected += 1 / math.Pow(1.08, float64(i))
	}

	got := PresentValueFactor(0.08, 5)
	if math.Abs(got-expected) > 1e-12 {
		t.Errorf("PV factor = %v, expected %v", got, expected)
	}
	if math.Abs(got-3.99271) > 1e-5 {
		t.Errorf("PV factor = %v, expected ~3.99271", got)
	}

	if PresentValueFactor(0.08, 0) != 0 {
		t.Error("PV factor over no years should be 0")
	}
	if GrowthPresentValueFactor(0.08, 0.08, 5) != 5 {
		t.Errorf("growth equal to discount should give %d, got %v", 5, GrowthPresentValueFactor(0.08, 0.08, 5))
	}
}

func TestScenariosValid(t *testing.T) {
	scenarios := Scenarios()
	if len(scenarios) != 3 {
		t.Errorf("got %d scenarios, expected 3", len(scenarios))
	}

	for name, s := range scenarios {
		if err := s.Params.Validate(); err != nil {
			t.Errorf("%s: %v", name, err)
		}
		for _, r := range []Range{s.PDis, s.Beta, s.Subsidy} {
			if r.Lo > r.Hi {
				t.Errorf("%s: invalid range %+v", name, r)
			}
		}
	}
}
