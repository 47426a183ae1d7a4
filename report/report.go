// Package report prints solver results as aligned text tables.
package report

import (
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/timpalpant/onshoring/chicken"
	"github.com/timpalpant/onshoring/coordination"
	"github.com/timpalpant/onshoring/sensitivity"
	"github.com/timpalpant/onshoring/signaling"
)

const ruleWidth = 72

var (
	titleColor = color.New(color.FgCyan, color.Bold)
	warnColor  = color.New(color.FgYellow)
)

func title(w io.Writer, s string) {
	rule := strings.Repeat("=", ruleWidth)
	fmt.Fprintln(w, rule)
	titleColor.Fprintln(w, s)
	fmt.Fprintln(w, rule)
}

func section(w io.Writer) {
	fmt.Fprintln(w, strings.Repeat("-", ruleWidth))
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

// Percent formats a fraction as a percentage with 4 decimals.
func Percent(v float64) string {
	return fmt.Sprintf("%.4f%%", 100*v)
}

// Billions formats a US$ amount in billions with 2 decimals.
func Billions(v float64) string {
	return humanize.CommafWithDigits(math.Round(v/1e7)/100, 2)
}

// Millions formats a US$ million amount with thousands separators.
func Millions(v float64) string {
	return humanize.CommafWithDigits(math.Round(v), 0)
}

// Coordination prints the coordination game calibration, critical mass,
// equilibria and best response map.
func Coordination(w io.Writer, g *coordination.Game, eqs []coordination.Profile, th coordination.Threshold, thErr error) {
	p := g.Params()
	title(w, "Coordination Game - Semiconductor Cluster")
	fmt.Fprintf(w, "N=%d, R=%.2f, s=%.2f, delta0=%.3f, alpha=%.6f\n",
		p.Players, p.Revenue, p.Subsidy, p.Delta0, p.Alpha)
	fmt.Fprintf(w, "c0=%d, C_MAX=%d\n", p.Complements, p.MaxComplements)

	var deltas []string
	for c := p.Complements; c <= p.MaxComplements; c++ {
		deltas = append(deltas, fmt.Sprintf("delta(%d)=%s", c, Percent(g.Delta(float64(c)))))
	}
	fmt.Fprintln(w, strings.Join(deltas, ", "))

	if thErr != nil {
		warnColor.Fprintf(w, "Critical mass undefined: %v\n", thErr)
	} else {
		fmt.Fprintf(w, "Indifference premium delta* = s/R = %s\n", Percent(th.DeltaStar))
		fmt.Fprintf(w, "Complement threshold c* = %.2f -> movers needed m* = %.2f (cap %d)\n",
			th.CStar, th.MStar, p.MaxComplements-p.Complements)
		if !th.Reachable(p) {
			warnColor.Fprintln(w, "Threshold unreachable given the complement cap")
		}
	}

	section(w)
	if len(eqs) == 0 {
		fmt.Fprintln(w, "No pure-strategy Nash equilibria found.")
	} else {
		fmt.Fprintf(w, "Pure-strategy Nash equilibria (1=Move, 0=Stay), count=%d:\n", len(eqs))
		for _, eq := range eqs {
			fmt.Fprintf(w, "  %v\n", eq)
		}
	}

	section(w)
	fmt.Fprintln(w, "Best response map:")
	tw := newTable(w)
	fmt.Fprintln(tw, "others moving\tbest response\tpi_move\tpi_stay")
	for _, br := range g.BestResponseMap() {
		fmt.Fprintf(tw, "%d\t%v\t%.2f\t%.2f\n", br.Others, br.Action, br.PayoffMove, br.PayoffStay)
	}
	tw.Flush()
}

func formatBelief(b signaling.Beliefs, s signaling.Signal) string {
	if !b.OnPath[s] {
		return "off-path"
	}

	return fmt.Sprintf("%.2f", b.LowCost[s])
}

// Signaling prints the signaling game equilibria. Payoffs are in US$ billion.
func Signaling(w io.Writer, g *signaling.Game, records []signaling.Record) {
	title(w, "Signaling Game - Subsidy Screening")
	fmt.Fprintf(w, "Expected subsidy value: %s bn (credibility %.2f)\n",
		Billions(g.SubsidyValue()), g.Params().Credibility)
	section(w)

	if len(records) == 0 {
		fmt.Fprintln(w, "No pure-strategy equilibria found.")
		return
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "firm strategy (LC, HC)\tstate strategy (Send, Withhold)\tpayoff LC\tpayoff HC\tP(LC|Send)\tP(LC|Withhold)")
	for _, r := range records {
		fmt.Fprintf(tw, "%v\t%v\t%s\t%s\t%s\t%s\n", r.Firm, r.State,
			Billions(r.PayoffLowCost), Billions(r.PayoffHighCost),
			formatBelief(r.Beliefs, signaling.Send), formatBelief(r.Beliefs, signaling.Withhold))
	}
	tw.Flush()
}

// SignalingSweep prints the number and kind of equilibria at each point of
// a sweep.
func SignalingSweep(w io.Writer, field string, points []sensitivity.SignalingPoint) {
	title(w, "Signaling Game - sweep over "+field)
	tw := newTable(w)
	fmt.Fprintf(tw, "%s\tequilibria\tstrategies\n", field)
	for _, pt := range points {
		if pt.Err != nil {
			fmt.Fprintf(tw, "%g\t-\t%v\n", pt.Value, pt.Err)
			continue
		}

		var strategies []string
		for _, r := range pt.Equilibria {
			strategies = append(strategies, r.Firm.String()+"/"+r.State.String())
		}
		fmt.Fprintf(tw, "%g\t%d\t%s\n", pt.Value, len(pt.Equilibria), strings.Join(strategies, " "))
	}
	tw.Flush()
}

// CoordinationSweep prints the equilibria and critical mass at each point
// of a sweep.
func CoordinationSweep(w io.Writer, field string, points []sensitivity.CoordinationPoint) {
	title(w, "Coordination Game - sweep over "+field)
	tw := newTable(w)
	fmt.Fprintf(tw, "%s\tequilibria\tmovers\tm*\n", field)
	for _, pt := range points {
		if pt.Err != nil {
			fmt.Fprintf(tw, "%g\t-\t-\t%v\n", pt.Value, pt.Err)
			continue
		}

		var movers []string
		for _, eq := range pt.Equilibria {
			movers = append(movers, fmt.Sprint(eq.NumMoving()))
		}
		mStar := "undefined"
		if pt.ThresholdErr == nil {
			mStar = fmt.Sprintf("%.2f", pt.Threshold.MStar)
		}
		fmt.Fprintf(tw, "%g\t%d\t%s\t%s\n", pt.Value, len(pt.Equilibria), strings.Join(movers, ","), mStar)
	}
	tw.Flush()
}

// Chicken prints the deterministic baseline and Monte-Carlo thresholds of
// a relocation scenario (US$ million).
func Chicken(w io.Writer, scenario chicken.Scenario, baseline []chicken.BaselineRow, bins []sensitivity.Bin) {
	title(w, "Relocation Chicken Game - "+scenario.Name)
	tw := newTable(w)
	fmt.Fprintln(tw, "P_dis\tProfit_Stay\tProfit_Move")
	for _, row := range baseline {
		fmt.Fprintf(tw, "%.2f\t%s\t%s\n", row.PDis, Millions(row.ProfitStay), Millions(row.ProfitMove))
	}
	tw.Flush()

	section(w)
	fmt.Fprintln(w, "Share of simulations where staying beats moving, by disruption-probability bin:")
	tw = newTable(w)
	fmt.Fprintln(tw, "P_dis bin\tsamples\tshare stay better")
	for _, b := range bins {
		share := "n/a"
		if b.Count > 0 {
			share = fmt.Sprintf("%.3f", b.ShareStayBetter)
		}
		fmt.Fprintf(tw, "(%.2f, %.2f]\t%d\t%s\n", b.Lo, b.Hi, b.Count, share)
	}
	tw.Flush()
}
