package oracle

import (
	"simgen/internal/generator"
	"simgen/internal/schema"
)

// Result captures an oracle check outcome.
// OK is false only when a generated artifact broke its guarantee.
type Result struct {
	OK        bool
	Oracle    string
	SQL       []string
	Expected  string
	Actual    string
	Details   map[string]any
	Err       error
	RowIndex  int
	Predicate *generator.Predicate
}

// Input is the per-iteration state handed to an oracle.
type Input struct {
	Table     schema.Table
	Remaining generator.Remaining
}

// Oracle checks one generator guarantee against an in-memory table.
type Oracle interface {
	Name() string
	Run(gen *generator.Generator, in Input) Result
}

func skipResult(name string, reason string, err error) Result {
	return Result{
		OK:       true,
		Oracle:   name,
		Err:      err,
		RowIndex: -1,
		Details:  map[string]any{"skip_reason": reason},
	}
}

// Skipped reports whether the oracle declined to check anything.
func (r Result) Skipped() bool {
	if r.Details == nil {
		return false
	}
	_, ok := r.Details["skip_reason"]
	return ok
}

// SkipReason returns the skip reason, if any.
func (r Result) SkipReason() string {
	if r.Details == nil {
		return ""
	}
	reason, _ := r.Details["skip_reason"].(string)
	return reason
}
