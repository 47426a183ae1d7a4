package report

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timpalpant/onshoring/chicken"
	"github.com/timpalpant/onshoring/coordination"
	"github.com/timpalpant/onshoring/sensitivity"
	"github.com/timpalpant/onshoring/signaling"
)

func init() {
	color.NoColor = true
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "2.5000%", Percent(0.025))
	assert.Equal(t, "10.44", Billions(1.044e10))
	assert.Equal(t, "-2", Billions(-2e9))
	assert.Equal(t, "-47,400", Millions(-47400))
}

func TestCoordination(t *testing.T) {
	g, err := coordination.NewGame(coordination.DefaultParams())
	require.NoError(t, err)
	th, thErr := g.CriticalMass()
	require.NoError(t, thErr)

	var buf bytes.Buffer
	Coordination(&buf, g, g.EnumerateEquilibria(), th, thErr)
	out := buf.String()
	assert.Contains(t, out, "delta* = s/R = 2.5000%")
	assert.Contains(t, out, "m* = 5.00 (cap 2)")
	assert.Contains(t, out, "Threshold unreachable")
	assert.Contains(t, out, "count=1")
	assert.Contains(t, out, "(0,0,0,0,0)")
	assert.Contains(t, out, "delta(4)=5.0000%")
}

func TestSignaling(t *testing.T) {
	g, err := signaling.NewGame(signaling.DefaultParams())
	require.NoError(t, err)

	var buf bytes.Buffer
	Signaling(&buf, g, g.EnumerateEquilibria())
	out := buf.String()
	assert.Contains(t, out, "10.44 bn")
	assert.Contains(t, out, "(Withhold, Withhold)")
	assert.Contains(t, out, "off-path")

	buf.Reset()
	Signaling(&buf, g, nil)
	assert.Contains(t, buf.String(), "No pure-strategy equilibria found.")
}

func TestSweeps(t *testing.T) {
	s, err := sensitivity.NewSweeper(16)
	require.NoError(t, err)

	sigPoints, err := s.SweepSignaling(signaling.DefaultParams(), "prior_LC", []float64{0, 0.5})
	require.NoError(t, err)
	var buf bytes.Buffer
	SignalingSweep(&buf, "prior_LC", sigPoints)
	assert.Contains(t, buf.String(), "prior_LC")
	assert.Contains(t, buf.String(), "must be in (0, 1)")

	coordPoints, err := s.SweepCoordination(coordination.DefaultParams(), "subsidy", []float64{0, 1})
	require.NoError(t, err)
	buf.Reset()
	CoordinationSweep(&buf, "subsidy", coordPoints)
	assert.Contains(t, buf.String(), "undefined")
	assert.Contains(t, buf.String(), "5.00")
}

func TestChicken(t *testing.T) {
	scenario := chicken.BaseRun()
	baseline, err := scenario.Params.Baseline(chicken.BaselineDisruptionProbabilities...)
	require.NoError(t, err)
	bins := []sensitivity.Bin{
		{Lo: 0.05, Hi: 0.10, Count: 0},
		{Lo: 0.10, Hi: 0.15, Count: 10, ShareStayBetter: 1},
	}

	var buf bytes.Buffer
	Chicken(&buf, scenario, baseline, bins)
	out := buf.String()
	assert.Contains(t, out, "-20,876")
	assert.Contains(t, out, "-47,400")
	assert.Contains(t, out, "n/a")
	assert.Contains(t, out, "1.000")
}
