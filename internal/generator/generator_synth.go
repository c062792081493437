package generator

import (
	"simgen/internal/schema"
	"simgen/internal/util"
)

// labeledPredicate pairs a predicate with its known truth for the target row.
type labeledPredicate struct {
	truth bool
	pred  Predicate
}

// foldRule tags the three ways a window is folded into the accumulator.
type foldRule int

const (
	// acc absorbs the window combined with the absorbing connective.
	foldAbsorbSame foldRule = iota
	// acc absorbs the window combined with the other connective.
	foldAbsorbOther
	// acc is kept and the window is shaped by its labels.
	foldKeep
	foldRuleCount
)

// SynthesizeTrue builds a predicate that evaluates to true for row.
func (g *Generator) SynthesizeTrue(tbl schema.Table, row schema.Row) (Predicate, error) {
	return g.synthesize(tbl, row, true)
}

// SynthesizeFalse builds a predicate that evaluates to false for row.
func (g *Generator) SynthesizeFalse(tbl schema.Table, row schema.Row) (Predicate, error) {
	return g.synthesize(tbl, row, false)
}

// synthesize folds a shuffled mix of leaves into an accumulator that
// always evaluates to outcome for row.
//
// For outcome true the accumulator is absorbed by OR and kept by AND; the
// false case is the De Morgan dual with AND and OR swapped.
func (g *Generator) synthesize(tbl schema.Table, row schema.Row, outcome bool) (Predicate, error) {
	if err := tbl.ValidateRow(row); err != nil {
		return Predicate{}, err
	}
	primary := make([]Predicate, 1+g.Rand.Intn(g.Config.Synth.TrueMax))
	for i := range primary {
		p, err := g.RowPredicate(tbl, row, outcome)
		if err != nil {
			return Predicate{}, err
		}
		primary[i] = p
	}
	secondary := make([]Predicate, g.Rand.Intn(g.Config.Synth.FalseMax+1))
	for i := range secondary {
		p, err := g.RowPredicate(tbl, row, !outcome)
		if err != nil {
			return Predicate{}, err
		}
		secondary[i] = p
	}

	acc := primary[len(primary)-1]
	primary = primary[:len(primary)-1]

	pending := make([]labeledPredicate, 0, len(primary)+len(secondary))
	for _, p := range primary {
		pending = append(pending, labeledPredicate{truth: outcome, pred: p})
	}
	for _, p := range secondary {
		pending = append(pending, labeledPredicate{truth: !outcome, pred: p})
	}
	g.Rand.Shuffle(len(pending), func(i, j int) {
		pending[i], pending[j] = pending[j], pending[i]
	})

	for len(pending) > 0 {
		size := g.Rand.Intn(min(g.Config.Synth.WindowMax, len(pending)) + 1)
		window := pending[:size]
		pending = pending[size:]
		acc = foldWindow(acc, window, foldRule(g.Rand.Intn(int(foldRuleCount))), outcome)
	}
	return acc, nil
}

// foldWindow combines acc, which evaluates to outcome, with window so that
// the result still evaluates to outcome.
func foldWindow(acc Predicate, window []labeledPredicate, rule foldRule, outcome bool) Predicate {
	absorb, keep := Or, And
	neutral := True()
	if !outcome {
		absorb, keep = And, Or
		neutral = False()
	}
	preds := make([]Predicate, 0, len(window)+1)
	matching := 0
	for _, lp := range window {
		preds = append(preds, lp.pred)
		if lp.truth == outcome {
			matching++
		}
	}
	switch rule {
	case foldAbsorbSame:
		return absorb(acc, absorb(preds...))
	case foldAbsorbOther:
		return absorb(acc, keep(preds...))
	default:
		switch {
		case matching == len(window):
			return keep(acc, keep(preds...))
		case matching > 0:
			return keep(acc, absorb(preds...))
		default:
			return keep(acc, absorb(append(preds, neutral)...))
		}
	}
}

// RowPredicate builds a single comparison on a random non-NULL column of
// row that evaluates to truth. A row with only NULLs yields True or False.
func (g *Generator) RowPredicate(tbl schema.Table, row schema.Row, truth bool) (Predicate, error) {
	if err := tbl.ValidateRow(row); err != nil {
		return Predicate{}, err
	}
	candidates := make([]int, 0, len(row))
	for i, v := range row {
		if !v.Null {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return constantLeaf(truth), nil
	}
	idx, err := util.Pick(g.Rand, candidates)
	if err != nil {
		return Predicate{}, err
	}
	col := tbl.Columns[idx]
	v := row[idx]

	w := make([]int, kindCount)
	w[kindEq], w[kindNeq] = 1, 1
	if truth {
		w[kindGt] = boolWeight(CanLess(v))
		w[kindLt] = boolWeight(CanGreater(v))
	} else {
		w[kindGt] = boolWeight(CanGreater(v))
		w[kindLt] = boolWeight(CanLess(v))
	}
	kind, err := util.PickWeighted(g.Rand, w)
	if err != nil {
		return Predicate{}, err
	}
	return g.rowComparison(comparisonKind(kind), col.Name, v, truth)
}

func (g *Generator) rowComparison(kind comparisonKind, column string, v schema.Value, truth bool) (Predicate, error) {
	switch {
	case kind == kindEq && truth:
		return Eq(column, v), nil
	case kind == kindEq:
		other, err := g.DifferentValue(v)
		return Eq(column, other), err
	case kind == kindNeq && truth:
		other, err := g.DifferentValue(v)
		return Neq(column, other), err
	case kind == kindNeq:
		return Neq(column, v), nil
	case kind == kindGt && truth:
		lower, err := g.LessThan(v)
		return Gt(column, lower), err
	case kind == kindGt:
		upper, err := g.GreaterThan(v)
		return Gt(column, upper), err
	case truth:
		upper, err := g.GreaterThan(v)
		return Lt(column, upper), err
	default:
		lower, err := g.LessThan(v)
		return Lt(column, lower), err
	}
}
