package coordination

import (
	"math"
	"reflect"
	"testing"

	"github.com/timpalpant/onshoring"
)

const eps = 1e-9

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func newTestGame(t *testing.T, params Params) *Game {
	g, err := NewGame(params)
	if err != nil {
		t.Fatal(err)
	}

	return g
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name   string
		modify func(p *Params)
	}{
		{"no players", func(p *Params) { p.Players = 0 }},
		{"too many players", func(p *Params) { p.Players = MaxPlayers + 1 }},
		{"zero revenue", func(p *Params) { p.Revenue = 0 }},
		{"negative subsidy", func(p *Params) { p.Subsidy = -1 }},
		{"zero delta0", func(p *Params) { p.Delta0 = 0 }},
		{"delta0 above one", func(p *Params) { p.Delta0 = 1.5 }},
		{"zero alpha", func(p *Params) { p.Alpha = 0 }},
		{"negative alpha", func(p *Params) { p.Alpha = -0.1 }},
		{"NaN alpha", func(p *Params) { p.Alpha = math.NaN() }},
		{"complements above cap", func(p *Params) { p.Complements = p.MaxComplements + 1 }},
		{"negative complements", func(p *Params) { p.Complements = -1 }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := DefaultParams()
			tc.modify(&p)
			_, err := NewGame(p)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !onshoring.IsValidation(err) {
				t.Errorf("expected validation error, got: %v", err)
			}
		})
	}

	if err := DefaultParams().Validate(); err != nil {
		t.Errorf("default params invalid: %v", err)
	}
}

func TestDelta(t *testing.T) {
	g := newTestGame(t, DefaultParams())
	if g.Delta(0) != g.Params().Delta0 {
		t.Errorf("delta(0) = %v, expected %v", g.Delta(0), g.Params().Delta0)
	}

	// alpha = ln(2)/4 halves the premium every 4 complements.
	if !approxEqual(g.Delta(4), 0.05, eps) {
		t.Errorf("delta(4) = %v, expected 0.05", g.Delta(4))
	}
	if !approxEqual(g.Delta(8), 0.025, eps) {
		t.Errorf("delta(8) = %v, expected 0.025", g.Delta(8))
	}

	// Premium relative to the complements already present.
	c0 := float64(g.Params().Complements)
	expected := map[float64]float64{0: 0.1000, 1: 0.0841, 2: 0.0707}
	for extra, want := range expected {
		got := g.Delta(c0+extra) / g.Delta(c0) * g.Params().Delta0
		if !approxEqual(got, want, 5e-5) {
			t.Errorf("premium after %v new complements = %.4f, expected %.4f", extra, got, want)
		}
	}

	prev := g.Delta(0)
	for c := 0.5; c <= 20; c += 0.5 {
		d := g.Delta(c)
		if d >= prev {
			t.Errorf("delta not strictly decreasing: delta(%v) = %v >= %v", c, d, prev)
		}
		if d <= 0 {
			t.Errorf("delta(%v) = %v is not positive", c, d)
		}
		prev = d
	}
}

func TestComplements(t *testing.T) {
	g := newTestGame(t, DefaultParams())
	p := g.Params()
	prev := -1
	for movers := 0; movers <= 10; movers++ {
		c := g.Complements(movers)
		want := p.Complements + movers
		if want > p.MaxComplements {
			want = p.MaxComplements
		}
		if c != want {
			t.Errorf("complements(%d) = %d, expected %d", movers, c, want)
		}
		if c < prev {
			t.Errorf("complements(%d) = %d decreased from %d", movers, c, prev)
		}
		prev = c
	}
}

func TestBestResponseMap(t *testing.T) {
	g := newTestGame(t, DefaultParams())
	// Hand-computed for R=40, s=1, c0=3, C_MAX=5:
	//   others=0: c=4, delta=0.05     => 40*0.95 + 1 = 39.0
	//   others>0: c=5, delta=0.1*2^(-5/4) => ~39.318
	expectedMove := []float64{
		39.0,
		40*(1-0.1*math.Pow(2, -1.25)) + 1,
		40*(1-0.1*math.Pow(2, -1.25)) + 1,
		40*(1-0.1*math.Pow(2, -1.25)) + 1,
		40*(1-0.1*math.Pow(2, -1.25)) + 1,
	}

	brs := g.BestResponseMap()
	if len(brs) != 5 {
		t.Fatalf("best response map has %d entries, expected 5", len(brs))
	}
	for others, br := range brs {
		if br.Others != others {
			t.Errorf("entry %d has others=%d", others, br.Others)
		}
		if !approxEqual(br.PayoffMove, expectedMove[others], 1e-9) {
			t.Errorf("others=%d: payoff move = %v, expected %v", others, br.PayoffMove, expectedMove[others])
		}
		if br.PayoffStay != 40 {
			t.Errorf("others=%d: payoff stay = %v, expected 40", others, br.PayoffStay)
		}
		if br.Action != Stay || g.IsMoveBestResponse(others) {
			t.Errorf("others=%d: best response is %v, expected Stay", others, br.Action)
		}
	}
}

func TestIsMoveBestResponseTie(t *testing.T) {
	p := DefaultParams()
	p.Players = 2
	p.Complements = 0
	p.MaxComplements = 0
	// With no complements the premium is delta0, so R*(1-delta0) + s == R.
	p.Delta0 = 0.5
	p.Subsidy = 20
	g := newTestGame(t, p)
	if !g.IsMoveBestResponse(0) {
		t.Errorf("expected ties to favor Move: move=%v, stay=%v", g.PayoffMove(0), g.PayoffStay(0))
	}
}

func TestEnumerateEquilibria_Default(t *testing.T) {
	g := newTestGame(t, DefaultParams())
	eqs := g.EnumerateEquilibria()
	allStay := NewProfile(Stay, Stay, Stay, Stay, Stay)
	if len(eqs) != 1 || eqs[0] != allStay {
		t.Errorf("expected only %v, got: %v", allStay, eqs)
	}
}

func TestEnumerateEquilibria_Coordination(t *testing.T) {
	// A generous subsidy with strong complementarities creates two equilibria:
	// nobody moves, or everybody moves.
	p := Params{
		Players:        4,
		Revenue:        40,
		Subsidy:        2.5,
		Delta0:         0.10,
		Alpha:          math.Ln2 / 2,
		Complements:    0,
		MaxComplements: 10,
	}
	g := newTestGame(t, p)
	eqs := g.EnumerateEquilibria()
	assertEquilibriaConsistent(t, g, eqs)

	// Best responses: others=0 => c=1, delta~0.0707 => 39.67 < 40 (Stay)
	//                 others>0 => c>=2, delta<=0.05 => >= 40.5 (Move)
	// so either nobody moves or everybody moves.
	expected := []Profile{
		NewProfile(Stay, Stay, Stay, Stay),
		NewProfile(Move, Move, Move, Move),
	}
	if !reflect.DeepEqual(eqs, expected) {
		t.Errorf("expected: %v, got: %v", expected, eqs)
	}
}

func TestEnumerateEquilibria_Symmetry(t *testing.T) {
	params := []Params{
		DefaultParams(),
		{Players: 6, Revenue: 10, Subsidy: 0.6, Delta0: 0.2, Alpha: 0.3, Complements: 1, MaxComplements: 4},
		{Players: 5, Revenue: 10, Subsidy: 1.5, Delta0: 0.2, Alpha: 0.1, Complements: 0, MaxComplements: 10},
		{Players: 7, Revenue: 1, Subsidy: 0.2, Delta0: 0.2, Alpha: 1, Complements: 0, MaxComplements: 2},
	}

	for _, p := range params {
		g := newTestGame(t, p)
		eqs := g.EnumerateEquilibria()
		assertEquilibriaConsistent(t, g, eqs)

		isEq := make(map[Profile]bool, len(eqs))
		eqCounts := make(map[int]bool)
		for _, eq := range eqs {
			isEq[eq] = true
			eqCounts[eq.NumMoving()] = true
		}

		EnumerateProfiles(p.Players, func(prof Profile) {
			if eqCounts[prof.NumMoving()] != isEq[prof] {
				t.Errorf("%+v: profile %v equilibrium=%v but another with %d movers is %v",
					p, prof, isEq[prof], prof.NumMoving(), eqCounts[prof.NumMoving()])
			}
		})
	}
}

func TestEnumerateEquilibria_Idempotent(t *testing.T) {
	g := newTestGame(t, Params{
		Players: 5, Revenue: 10, Subsidy: 1.5, Delta0: 0.2, Alpha: 0.1,
		Complements: 0, MaxComplements: 10,
	})

	first := g.EnumerateEquilibria()
	second := g.EnumerateEquilibria()
	if len(first) != len(second) {
		t.Fatalf("got %d then %d equilibria", len(first), len(second))
	}

	seen := make(map[Profile]bool)
	for _, p := range first {
		seen[p] = true
	}
	for _, p := range second {
		if !seen[p] {
			t.Errorf("equilibrium %v missing from first result", p)
		}
	}
}

// assertEquilibriaConsistent brute-force checks each returned profile
// against every possible unilateral deviation.
func assertEquilibriaConsistent(t *testing.T, g *Game, eqs []Profile) {
	t.Helper()
	returned := make(map[Profile]bool)
	for _, p := range eqs {
		returned[p] = true
	}

	EnumerateProfiles(g.Params().Players, func(p Profile) {
		stable := true
		for i := 0; i < p.Len(); i++ {
			others := p.NumMoving() - int(p.Action(i))
			current, deviation := g.PayoffStay(others), g.PayoffMove(others)
			if p.Action(i) == Move {
				current, deviation = deviation, current
			}
			// Ties favor Move, so a Stay player facing a tie deviates.
			if deviation > current || (deviation == current && p.Action(i) == Stay) {
				stable = false
			}
		}

		if stable != returned[p] {
			t.Errorf("profile %v: stable=%v, returned=%v", p, stable, returned[p])
		}
	})
}

func TestCriticalMass(t *testing.T) {
	g := newTestGame(t, DefaultParams())
	th, err := g.CriticalMass()
	if err != nil {
		t.Fatal(err)
	}

	if !approxEqual(th.DeltaStar, 0.025, eps) {
		t.Errorf("delta* = %v, expected 0.025", th.DeltaStar)
	}
	if !approxEqual(th.CStar, 8, 1e-9) {
		t.Errorf("c* = %v, expected 8", th.CStar)
	}
	if !approxEqual(th.MStar, 5, 1e-9) {
		t.Errorf("m* = %v, expected 5", th.MStar)
	}
	if !approxEqual(g.Delta(th.CStar), th.DeltaStar, eps) {
		t.Errorf("delta(c*) = %v, expected %v", g.Delta(th.CStar), th.DeltaStar)
	}
	if th.Reachable(g.Params()) {
		t.Errorf("threshold m*=%v should be unreachable with cap %d",
			th.MStar, g.Params().MaxComplements-g.Params().Complements)
	}
}

func TestCriticalMass_AlreadyReached(t *testing.T) {
	p := DefaultParams()
	p.Complements = 10
	p.MaxComplements = 12
	g := newTestGame(t, p)
	th, err := g.CriticalMass()
	if err != nil {
		t.Fatal(err)
	}
	if th.MStar != 0 {
		t.Errorf("m* = %v, expected 0 when c0 > c*", th.MStar)
	}
	if !th.Reachable(p) {
		t.Error("threshold should be reachable")
	}
}

func TestCriticalMass_DomainError(t *testing.T) {
	testCases := []struct {
		name    string
		subsidy float64
	}{
		{"zero subsidy", 0},
		{"subsidy at delta0", 4},
		{"subsidy above delta0", 10},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := DefaultParams()
			p.Subsidy = tc.subsidy
			g := newTestGame(t, p)
			_, err := g.CriticalMass()
			if !onshoring.IsDomain(err) {
				t.Errorf("expected domain error, got: %v", err)
			}
		})
	}
}

func TestExhaustiveness(t *testing.T) {
	for n := 1; n <= 12; n++ {
		examined := 0
		EnumerateProfiles(n, func(p Profile) { examined++ })
		if examined != 1<<uint(n) {
			t.Errorf("n=%d: examined %d profiles, expected %d", n, examined, 1<<uint(n))
		}
	}
}

func BenchmarkEnumerateEquilibria(b *testing.B) {
	p := DefaultParams()
	p.Players = 12
	g, err := NewGame(p)
	if err != nil {
		b.Fatal(err)
	}

	for i := 0; i < b.N; i++ {
		g.EnumerateEquilibria()
	}
}
