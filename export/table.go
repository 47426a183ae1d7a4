// Package export writes solver results as tables: CSV files, optionally
// gzip compressed, and a SQLite results store.
package export

import (
	"strconv"

	"github.com/timpalpant/onshoring/chicken"
	"github.com/timpalpant/onshoring/coordination"
	"github.com/timpalpant/onshoring/sensitivity"
	"github.com/timpalpant/onshoring/signaling"
)

// Table is a named sheet of string cells.
type Table struct {
	Name   string
	Header []string
	Rows   [][]string
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// CoordinationTables tabulates the coordination game equilibria, best
// responses and critical mass.
func CoordinationTables(g *coordination.Game, eqs []coordination.Profile, th coordination.Threshold, thErr error) []Table {
	equilibria := Table{
		Name:   "Equilibria",
		Header: []string{"profile", "movers"},
	}
	for _, p := range eqs {
		equilibria.Rows = append(equilibria.Rows, []string{p.String(), strconv.Itoa(p.NumMoving())})
	}

	brs := Table{
		Name:   "BestResponses",
		Header: []string{"others_moving", "best_response", "payoff_move", "payoff_stay"},
	}
	for _, br := range g.BestResponseMap() {
		brs.Rows = append(brs.Rows, []string{
			strconv.Itoa(br.Others),
			br.Action.String(),
			formatFloat(br.PayoffMove),
			formatFloat(br.PayoffStay),
		})
	}

	critical := Table{
		Name:   "CriticalMass",
		Header: []string{"delta_star", "c_star", "m_star", "reachable", "error"},
	}
	if thErr != nil {
		critical.Rows = append(critical.Rows, []string{"", "", "", "", thErr.Error()})
	} else {
		critical.Rows = append(critical.Rows, []string{
			formatFloat(th.DeltaStar),
			formatFloat(th.CStar),
			formatFloat(th.MStar),
			strconv.FormatBool(th.Reachable(g.Params())),
			"",
		})
	}

	return []Table{equilibria, brs, critical}
}

func formatBelief(b signaling.Beliefs, s signaling.Signal) string {
	if !b.OnPath[s] {
		return ""
	}

	return formatFloat(b.LowCost[s])
}

// SignalingTable tabulates the signaling game equilibria.
func SignalingTable(records []signaling.Record) Table {
	t := Table{
		Name: "Equilibria",
		Header: []string{
			"firm_LC", "firm_HC", "state_after_send", "state_after_withhold",
			"payoff_LC", "payoff_HC", "belief_LC_send", "belief_LC_withhold",
		},
	}

	for _, r := range records {
		t.Rows = append(t.Rows, []string{
			r.Firm.Of(signaling.LowCost).String(),
			r.Firm.Of(signaling.HighCost).String(),
			r.State.After(signaling.Send).String(),
			r.State.After(signaling.Withhold).String(),
			formatFloat(r.PayoffLowCost),
			formatFloat(r.PayoffHighCost),
			formatBelief(r.Beliefs, signaling.Send),
			formatBelief(r.Beliefs, signaling.Withhold),
		})
	}

	return t
}

// ChickenTables tabulates the deterministic baseline and the Monte-Carlo
// threshold bins.
func ChickenTables(baseline []chicken.BaselineRow, bins []sensitivity.Bin) []Table {
	b := Table{
		Name:   "Baseline",
		Header: []string{"P_dis", "Profit_Stay", "Profit_Move"},
	}
	for _, row := range baseline {
		b.Rows = append(b.Rows, []string{
			formatFloat(row.PDis),
			formatFloat(row.ProfitStay),
			formatFloat(row.ProfitMove),
		})
	}

	th := Table{
		Name:   "Thresholds",
		Header: []string{"P_dis_lo", "P_dis_hi", "Count", "Share_Stay_Better"},
	}
	for _, bin := range bins {
		th.Rows = append(th.Rows, []string{
			formatFloat(bin.Lo),
			formatFloat(bin.Hi),
			strconv.Itoa(bin.Count),
			formatFloat(bin.ShareStayBetter),
		})
	}

	return []Table{b, th}
}
