package runner

import (
	"simgen/internal/generator"
	"simgen/internal/oracle"
	"simgen/internal/report"
	"simgen/internal/util"

	"github.com/pkg/errors"
)

// ReplayOutcome compares a re-run iteration with its recorded case.
type ReplayOutcome struct {
	Iteration     Iteration
	SameTable     bool
	SameOracle    bool
	SamePredicate bool
	// StillFails is true when the regenerated result is again a failure.
	StillFails bool
	// RecordedTruth is the recorded predicate evaluated on the recorded
	// row, when both exist.
	RecordedTruth *oracle.Truth
}

// Replay re-runs the iteration recorded in cf with its own config and seed.
func Replay(cf report.CaseFile) (ReplayOutcome, error) {
	r := New(cf.Config, cf.Worker, nil)
	if _, ok := oracle.ByName(r.oracles, cf.Oracle); !ok && cf.Oracle != noOracle {
		return ReplayOutcome{}, errors.Wrapf(util.ErrMalformedInput, "unknown oracle %q", cf.Oracle)
	}
	it := r.RunIteration(cf.Seed, cf.Iteration, cf.Remaining)
	out := ReplayOutcome{
		Iteration:  it,
		SameTable:  sameTable(it, cf),
		SameOracle: it.Result.Oracle == cf.Oracle,
		StillFails: !it.Result.OK,
	}
	switch {
	case cf.Predicate == nil && it.Result.Predicate == nil:
		out.SamePredicate = true
	case cf.Predicate != nil && it.Result.Predicate != nil:
		out.SamePredicate = cf.Predicate.SQLString() == it.Result.Predicate.SQLString()
	}
	if cf.Predicate != nil && cf.RowIndex >= 0 && cf.RowIndex < len(cf.Table.Rows) {
		truth, err := oracle.Eval(cf.Table, cf.Table.Rows[cf.RowIndex], *cf.Predicate)
		if err != nil {
			return out, err
		}
		out.RecordedTruth = &truth
	}
	return out, nil
}

func sameTable(it Iteration, cf report.CaseFile) bool {
	if generator.CreateTableSQL(it.Table) != generator.CreateTableSQL(cf.Table) {
		return false
	}
	if len(it.Table.Rows) != len(cf.Table.Rows) {
		return false
	}
	for i := range it.Table.Rows {
		if it.Table.Rows[i].String() != cf.Table.Rows[i].String() {
			return false
		}
	}
	return true
}
