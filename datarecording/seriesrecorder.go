package datarecording

import (
	"context"
	"database/sql"
	"fmt"
	"math"

	"github.com/rs/xid"

	"github.com/sarchlab/sirda/model"
	"github.com/sarchlab/sirda/sim"
)

// Names of the tables written by a SeriesRecorder.
const (
	RunTable   = "sirda_run"
	StateTable = "sirda_state"
)

// RunEntry is the row describing one run.
type RunEntry struct {
	RunID   string
	T0      int
	TEnd    int
	Alpha   float64
	Beta    float64
	Gamma   float64
	Epsilon float64
	Zeta    float64
	Lambda  float64
	Rho     float64
	Kappa   float64
}

// StateEntry is the row describing the population on one day of a run.
// SQLite stores NaN as NULL, so NaN values are written as NULL explicitly
// and read back as NaN.
type StateEntry struct {
	RunID string
	Day   int
	S     sql.NullFloat64
	I     sql.NullFloat64
	D     sql.NullFloat64
	A     sql.NullFloat64
	R     sql.NullFloat64
	Sum   sql.NullFloat64
}

func newStateEntry(runID string, sample sim.Sample) StateEntry {
	return StateEntry{
		RunID: runID,
		Day:   sample.Day,
		S:     nullable(sample.State.S),
		I:     nullable(sample.State.I),
		D:     nullable(sample.State.D),
		A:     nullable(sample.State.A),
		R:     nullable(sample.State.R),
		Sum:   nullable(sample.State.Sum()),
	}
}

func (e StateEntry) toState() model.State {
	return model.State{
		S: orNaN(e.S),
		I: orNaN(e.I),
		D: orNaN(e.D),
		A: orNaN(e.A),
		R: orNaN(e.R),
	}
}

func nullable(v float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: v, Valid: !math.IsNaN(v)}
}

func orNaN(v sql.NullFloat64) float64 {
	if !v.Valid {
		return math.NaN()
	}

	return v.Float64
}

// SeriesRecorder is a hook that records every run of a simulator into a
// DataRecorder. Each run gets a fresh ID so that one database can hold many
// runs.
type SeriesRecorder struct {
	recorder DataRecorder
	runID    string
	runIDs   []string
}

// NewSeriesRecorder creates a SeriesRecorder and the tables it writes to.
func NewSeriesRecorder(recorder DataRecorder) *SeriesRecorder {
	recorder.CreateTable(RunTable, RunEntry{})
	recorder.CreateTable(StateTable, StateEntry{})

	return &SeriesRecorder{recorder: recorder}
}

// RunIDs returns the IDs of the runs recorded so far.
func (r *SeriesRecorder) RunIDs() []string {
	return r.runIDs
}

// LastRunID returns the ID of the latest run, or an empty string.
func (r *SeriesRecorder) LastRunID() string {
	return r.runID
}

// Func records the run configuration, each day, and flushes at the end of
// the run.
func (r *SeriesRecorder) Func(ctx sim.HookCtx) {
	switch ctx.Pos {
	case sim.HookPosRunStart:
		cfg, ok := ctx.Item.(sim.Config)
		if !ok {
			return
		}

		r.startRun(cfg)
	case sim.HookPosAfterStep:
		sample, ok := ctx.Item.(sim.Sample)
		if !ok || r.runID == "" {
			return
		}

		r.recorder.InsertData(StateTable, newStateEntry(r.runID, sample))
	case sim.HookPosRunEnd:
		r.recorder.Flush()
	}
}

func (r *SeriesRecorder) startRun(cfg sim.Config) {
	r.runID = xid.New().String()
	r.runIDs = append(r.runIDs, r.runID)

	p := cfg.Params
	r.recorder.InsertData(RunTable, RunEntry{
		RunID:   r.runID,
		T0:      cfg.T0,
		TEnd:    cfg.TEnd,
		Alpha:   p.Alpha,
		Beta:    p.Beta,
		Gamma:   p.Gamma,
		Epsilon: p.Epsilon,
		Zeta:    p.Zeta,
		Lambda:  p.Lambda,
		Rho:     p.Rho,
		Kappa:   p.Kappa,
	})
}

// ReadSeries loads the series of a recorded run.
func ReadSeries(
	ctx context.Context,
	reader DataReader,
	runID string,
) (sim.Series, error) {
	reader.MapTable(StateTable, StateEntry{})

	rows, _, err := reader.Query(ctx, StateTable, QueryParams{
		Where:   "RunID = ?",
		Args:    []any{runID},
		OrderBy: "Day ASC",
	})
	if err != nil {
		return sim.Series{}, err
	}

	if len(rows) == 0 {
		return sim.Series{}, fmt.Errorf("run %s not found", runID)
	}

	var series sim.Series
	for _, row := range rows {
		e := row.(*StateEntry)
		series.Append(e.Day, e.toState())
	}

	return series, nil
}

// ListRuns returns every recorded run, oldest first.
func ListRuns(ctx context.Context, reader DataReader) ([]RunEntry, error) {
	reader.MapTable(RunTable, RunEntry{})

	rows, _, err := reader.Query(ctx, RunTable, QueryParams{
		OrderBy: "rowid ASC",
	})
	if err != nil {
		return nil, err
	}

	runs := make([]RunEntry, 0, len(rows))
	for _, row := range rows {
		runs = append(runs, *row.(*RunEntry))
	}

	return runs, nil
}
