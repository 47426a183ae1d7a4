package export

import (
	"encoding/json"
	"time"

	"github.com/golang/glog"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"github.com/timpalpant/onshoring/chicken"
	"github.com/timpalpant/onshoring/coordination"
	"github.com/timpalpant/onshoring/sensitivity"
	"github.com/timpalpant/onshoring/signaling"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	game TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL,
	params_json TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS coordination_equilibria (
	run_id TEXT NOT NULL REFERENCES runs(id),
	idx INTEGER NOT NULL,
	profile TEXT NOT NULL,
	movers INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS coordination_best_responses (
	run_id TEXT NOT NULL REFERENCES runs(id),
	others_moving INTEGER NOT NULL,
	best_response TEXT NOT NULL,
	payoff_move REAL NOT NULL,
	payoff_stay REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS coordination_critical_mass (
	run_id TEXT NOT NULL REFERENCES runs(id),
	delta_star REAL,
	c_star REAL,
	m_star REAL,
	reachable INTEGER,
	error TEXT
);

CREATE TABLE IF NOT EXISTS signaling_equilibria (
	run_id TEXT NOT NULL REFERENCES runs(id),
	idx INTEGER NOT NULL,
	firm_lc TEXT NOT NULL,
	firm_hc TEXT NOT NULL,
	state_after_send TEXT NOT NULL,
	state_after_withhold TEXT NOT NULL,
	payoff_lc REAL NOT NULL,
	payoff_hc REAL NOT NULL,
	belief_lc_send REAL,
	belief_lc_withhold REAL
);

CREATE TABLE IF NOT EXISTS chicken_baseline (
	run_id TEXT NOT NULL REFERENCES runs(id),
	p_dis REAL NOT NULL,
	profit_stay REAL NOT NULL,
	profit_move REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS chicken_thresholds (
	run_id TEXT NOT NULL REFERENCES runs(id),
	p_dis_lo REAL NOT NULL,
	p_dis_hi REAL NOT NULL,
	count INTEGER NOT NULL,
	share_stay_better REAL NOT NULL
);
`

// Run identifies one solver invocation saved to the Store.
type Run struct {
	ID         string    `db:"id"`
	Game       string    `db:"game"`
	CreatedAt  time.Time `db:"created_at"`
	ParamsJSON string    `db:"params_json"`
}

// SignalingRow is one signaling equilibrium as stored.
type SignalingRow struct {
	RunID              string   `db:"run_id"`
	Idx                int      `db:"idx"`
	FirmLowCost        string   `db:"firm_lc"`
	FirmHighCost       string   `db:"firm_hc"`
	StateAfterSend     string   `db:"state_after_send"`
	StateAfterWithhold string   `db:"state_after_withhold"`
	PayoffLowCost      float64  `db:"payoff_lc"`
	PayoffHighCost     float64  `db:"payoff_hc"`
	BeliefSend         *float64 `db:"belief_lc_send"`
	BeliefWithhold     *float64 `db:"belief_lc_withhold"`
}

// CoordinationRow is one coordination equilibrium as stored.
type CoordinationRow struct {
	RunID   string `db:"run_id"`
	Idx     int    `db:"idx"`
	Profile string `db:"profile"`
	Movers  int    `db:"movers"`
}

type bestResponseRow struct {
	RunID        string  `db:"run_id"`
	OthersMoving int     `db:"others_moving"`
	BestResponse string  `db:"best_response"`
	PayoffMove   float64 `db:"payoff_move"`
	PayoffStay   float64 `db:"payoff_stay"`
}

type criticalMassRow struct {
	RunID     string   `db:"run_id"`
	DeltaStar *float64 `db:"delta_star"`
	CStar     *float64 `db:"c_star"`
	MStar     *float64 `db:"m_star"`
	Reachable *bool    `db:"reachable"`
	Error     *string  `db:"error"`
}

type baselineRow struct {
	RunID      string  `db:"run_id"`
	PDis       float64 `db:"p_dis"`
	ProfitStay float64 `db:"profit_stay"`
	ProfitMove float64 `db:"profit_move"`
}

type thresholdRow struct {
	RunID           string  `db:"run_id"`
	Lo              float64 `db:"p_dis_lo"`
	Hi              float64 `db:"p_dis_hi"`
	Count           int     `db:"count"`
	ShareStayBetter float64 `db:"share_stay_better"`
}

// Store saves solver results to a SQLite database.
type Store struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite results store at the given path.
func Open(path string) (*Store, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, errors.Wrapf(err, "opening %v", path)
	}

	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "migrating results store")
	}

	return &Store{conn: conn}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

// insertRun records a new run in tx and returns its ID.
func insertRun(tx *sqlx.Tx, game string, params interface{}) (string, error) {
	buf, err := json.Marshal(params)
	if err != nil {
		return "", errors.Wrap(err, "encoding params")
	}

	run := Run{
		ID:         uuid.New().String(),
		Game:       game,
		CreatedAt:  time.Now().UTC(),
		ParamsJSON: string(buf),
	}
	_, err = tx.NamedExec(`INSERT INTO runs (id, game, created_at, params_json)
		VALUES (:id, :game, :created_at, :params_json)`, run)
	if err != nil {
		return "", errors.Wrap(err, "inserting run")
	}

	return run.ID, nil
}

// withTx runs fn in a transaction, committing if it succeeds.
func (s *Store) withTx(fn func(tx *sqlx.Tx) error) error {
	tx, err := s.conn.Beginx()
	if err != nil {
		return errors.Wrap(err, "beginning transaction")
	}

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return errors.Wrap(tx.Commit(), "committing")
}

func optional(v float64) *float64 {
	return &v
}

// SaveCoordination saves the results of solving the coordination game and
// returns the new run ID.
func (s *Store) SaveCoordination(g *coordination.Game, eqs []coordination.Profile, th coordination.Threshold, thErr error) (string, error) {
	var runID string
	err := s.withTx(func(tx *sqlx.Tx) error {
		var err error
		runID, err = insertRun(tx, "coordination", g.Params())
		if err != nil {
			return err
		}

		for i, p := range eqs {
			row := CoordinationRow{RunID: runID, Idx: i, Profile: p.String(), Movers: p.NumMoving()}
			if _, err := tx.NamedExec(`INSERT INTO coordination_equilibria (run_id, idx, profile, movers)
				VALUES (:run_id, :idx, :profile, :movers)`, row); err != nil {
				return errors.Wrap(err, "inserting equilibrium")
			}
		}

		for _, br := range g.BestResponseMap() {
			row := bestResponseRow{
				RunID:        runID,
				OthersMoving: br.Others,
				BestResponse: br.Action.String(),
				PayoffMove:   br.PayoffMove,
				PayoffStay:   br.PayoffStay,
			}
			if _, err := tx.NamedExec(`INSERT INTO coordination_best_responses
				(run_id, others_moving, best_response, payoff_move, payoff_stay)
				VALUES (:run_id, :others_moving, :best_response, :payoff_move, :payoff_stay)`, row); err != nil {
				return errors.Wrap(err, "inserting best response")
			}
		}

		cm := criticalMassRow{RunID: runID}
		if thErr != nil {
			msg := thErr.Error()
			cm.Error = &msg
		} else {
			reachable := th.Reachable(g.Params())
			cm.DeltaStar = optional(th.DeltaStar)
			cm.CStar = optional(th.CStar)
			cm.MStar = optional(th.MStar)
			cm.Reachable = &reachable
		}
		_, err = tx.NamedExec(`INSERT INTO coordination_critical_mass
			(run_id, delta_star, c_star, m_star, reachable, error)
			VALUES (:run_id, :delta_star, :c_star, :m_star, :reachable, :error)`, cm)
		return errors.Wrap(err, "inserting critical mass")
	})
	if err != nil {
		return "", err
	}

	glog.V(1).Infof("Saved coordination run %v (%d equilibria)", runID, len(eqs))
	return runID, nil
}

// SaveSignaling saves the signaling game equilibria and returns the new
// run ID.
func (s *Store) SaveSignaling(params signaling.Params, records []signaling.Record) (string, error) {
	var runID string
	err := s.withTx(func(tx *sqlx.Tx) error {
		var err error
		runID, err = insertRun(tx, "signaling", params)
		if err != nil {
			return err
		}

		for i, r := range records {
			row := SignalingRow{
				RunID:              runID,
				Idx:                i,
				FirmLowCost:        r.Firm.Of(signaling.LowCost).String(),
				FirmHighCost:       r.Firm.Of(signaling.HighCost).String(),
				StateAfterSend:     r.State.After(signaling.Send).String(),
				StateAfterWithhold: r.State.After(signaling.Withhold).String(),
				PayoffLowCost:      r.PayoffLowCost,
				PayoffHighCost:     r.PayoffHighCost,
			}
			if r.Beliefs.OnPath[signaling.Send] {
				row.BeliefSend = optional(r.Beliefs.LowCost[signaling.Send])
			}
			if r.Beliefs.OnPath[signaling.Withhold] {
				row.BeliefWithhold = optional(r.Beliefs.LowCost[signaling.Withhold])
			}

			if _, err := tx.NamedExec(`INSERT INTO signaling_equilibria
				(run_id, idx, firm_lc, firm_hc, state_after_send, state_after_withhold,
				 payoff_lc, payoff_hc, belief_lc_send, belief_lc_withhold)
				VALUES (:run_id, :idx, :firm_lc, :firm_hc, :state_after_send, :state_after_withhold,
				 :payoff_lc, :payoff_hc, :belief_lc_send, :belief_lc_withhold)`, row); err != nil {
				return errors.Wrap(err, "inserting equilibrium")
			}
		}

		return nil
	})
	if err != nil {
		return "", err
	}

	glog.V(1).Infof("Saved signaling run %v (%d equilibria)", runID, len(records))
	return runID, nil
}

// SaveChicken saves the baseline and threshold tables of a chicken game
// scenario and returns the new run ID.
func (s *Store) SaveChicken(scenario chicken.Scenario, baseline []chicken.BaselineRow, bins []sensitivity.Bin) (string, error) {
	var runID string
	err := s.withTx(func(tx *sqlx.Tx) error {
		var err error
		runID, err = insertRun(tx, "chicken", scenario)
		if err != nil {
			return err
		}

		for _, b := range baseline {
			row := baselineRow{RunID: runID, PDis: b.PDis, ProfitStay: b.ProfitStay, ProfitMove: b.ProfitMove}
			if _, err := tx.NamedExec(`INSERT INTO chicken_baseline (run_id, p_dis, profit_stay, profit_move)
				VALUES (:run_id, :p_dis, :profit_stay, :profit_move)`, row); err != nil {
				return errors.Wrap(err, "inserting baseline")
			}
		}

		for _, b := range bins {
			row := thresholdRow{RunID: runID, Lo: b.Lo, Hi: b.Hi, Count: b.Count, ShareStayBetter: b.ShareStayBetter}
			if _, err := tx.NamedExec(`INSERT INTO chicken_thresholds
				(run_id, p_dis_lo, p_dis_hi, count, share_stay_better)
				VALUES (:run_id, :p_dis_lo, :p_dis_hi, :count, :share_stay_better)`, row); err != nil {
				return errors.Wrap(err, "inserting threshold")
			}
		}

		return nil
	})
	if err != nil {
		return "", err
	}

	glog.V(1).Infof("Saved chicken run %v", runID)
	return runID, nil
}

// Runs lists the saved runs, oldest first.
func (s *Store) Runs() ([]Run, error) {
	var runs []Run
	err := s.conn.Select(&runs, `SELECT id, game, created_at, params_json FROM runs ORDER BY created_at, id`)
	return runs, errors.Wrap(err, "listing runs")
}

// SignalingEquilibria returns the stored equilibria of a signaling run.
func (s *Store) SignalingEquilibria(runID string) ([]SignalingRow, error) {
	var rows []SignalingRow
	err := s.conn.Select(&rows, `SELECT * FROM signaling_equilibria WHERE run_id = ? ORDER BY idx`, runID)
	return rows, errors.Wrap(err, "listing signaling equilibria")
}

// CoordinationEquilibria returns the stored equilibria of a coordination run.
func (s *Store) CoordinationEquilibria(runID string) ([]CoordinationRow, error) {
	var rows []CoordinationRow
	err := s.conn.Select(&rows, `SELECT * FROM coordination_equilibria WHERE run_id = ? ORDER BY idx`, runID)
	return rows, errors.Wrap(err, "listing coordination equilibria")
}
