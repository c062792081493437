package generator

import (
	"simgen/internal/schema"
	"simgen/internal/util"

	"github.com/pkg/errors"
)

// SimplePredicate is a single comparison and the index of its column.
type SimplePredicate struct {
	Predicate   Predicate
	ColumnIndex int
}

// comparisonKind tags the leaf shapes a generator can choose between.
type comparisonKind int

const (
	kindEq comparisonKind = iota
	kindNeq
	kindGt
	kindLt
	kindCount
)

// GenerateSimplePredicate builds a comparison on a random column whose
// truth over the column's values matches outcome: when outcome is true at
// least one row satisfies it, when false no row does. When no column admits
// such a comparison the predicate is the constant TRUE or FALSE.
func (g *Generator) GenerateSimplePredicate(tbl schema.Table, outcome bool) (SimplePredicate, error) {
	if err := tbl.Validate(); err != nil {
		return SimplePredicate{}, err
	}
	colWeights := make([]int, len(tbl.Columns))
	for i := range tbl.Columns {
		if feasible(columnWeights(tbl.ColumnValues(i), outcome)) {
			colWeights[i] = 1
		}
	}
	if !feasible(colWeights) {
		// No comparison can honor outcome, e.g. a bool column holding both
		// values asked for false. The constant leaf still does.
		return SimplePredicate{Predicate: constantLeaf(outcome), ColumnIndex: g.Rand.Intn(len(tbl.Columns))}, nil
	}
	idx, err := util.PickWeighted(g.Rand, colWeights)
	if err != nil {
		return SimplePredicate{}, err
	}
	col := tbl.Columns[idx]
	values := tbl.ColumnValues(idx)
	kind, err := util.PickWeighted(g.Rand, columnWeights(values, outcome))
	if err != nil {
		return SimplePredicate{}, err
	}
	pred, err := g.columnComparison(comparisonKind(kind), col, values, outcome)
	if err != nil {
		return SimplePredicate{}, err
	}
	return SimplePredicate{Predicate: pred, ColumnIndex: idx}, nil
}

// columnWeights returns per-kind weights for a column-level comparison.
// Kinds that cannot honor the outcome get 0.
func columnWeights(values []schema.Value, outcome bool) []int {
	w := make([]int, kindCount)
	observed := nonNull(values)
	if len(observed) == 0 {
		if outcome {
			w[kindEq], w[kindGt], w[kindLt] = 1, 1, 1
		} else {
			w[kindNeq], w[kindGt], w[kindLt] = 1, 1, 1
		}
		return w
	}
	lo, hi, err := minMax(observed)
	if err != nil {
		return w
	}
	if outcome {
		w[kindEq] = 1
		w[kindGt] = boolWeight(CanLess(hi))
		w[kindLt] = boolWeight(CanGreater(lo))
		return w
	}
	w[kindNeq] = boolWeight(allEqual(observed))
	w[kindGt] = boolWeight(CanGreater(hi))
	w[kindLt] = boolWeight(CanLess(lo))
	return w
}

func (g *Generator) columnComparison(kind comparisonKind, col schema.Column, values []schema.Value, outcome bool) (Predicate, error) {
	observed := nonNull(values)
	if len(observed) == 0 {
		switch kind {
		case kindEq:
			return Eq(col.Name, g.ArbitraryValue(col.Type)), nil
		case kindNeq:
			return Neq(col.Name, g.ArbitraryValue(col.Type)), nil
		case kindGt:
			return Gt(col.Name, g.ArbitraryValue(col.Type)), nil
		default:
			return Lt(col.Name, g.ArbitraryValue(col.Type)), nil
		}
	}
	lo, hi, err := minMax(observed)
	if err != nil {
		return Predicate{}, err
	}
	switch {
	case kind == kindEq:
		return Eq(col.Name, g.ArbitraryValueFrom(col.Type, observed)), nil
	case kind == kindNeq:
		return Neq(col.Name, observed[0]), nil
	case kind == kindGt && outcome:
		v, err := g.LessThan(hi)
		return Gt(col.Name, v), err
	case kind == kindGt:
		v, err := g.GreaterThanAll(col.Type, observed)
		return Gt(col.Name, v), err
	case outcome:
		v, err := g.GreaterThan(lo)
		return Lt(col.Name, v), err
	default:
		v, err := g.LessThanAll(col.Type, observed)
		return Lt(col.Name, v), err
	}
}

// GenerateCompoundPredicate combines 0-3 simple predicates with AND or OR
// so that the labels of the children produce outcome. A false outcome
// guarantees that no row of tbl satisfies the result.
func (g *Generator) GenerateCompoundPredicate(tbl schema.Table, outcome bool) (Predicate, error) {
	if err := tbl.Validate(); err != nil {
		return Predicate{}, err
	}
	isAnd := util.Chance(g.Rand, g.Config.Weights.Predicate.AndProb)
	var labels []bool
	switch {
	case isAnd == outcome:
		// AND of trues or OR of falses: every child carries the outcome.
		labels = make([]bool, g.Rand.Intn(CompoundFanoutMax+1))
		for i := range labels {
			labels[i] = outcome
		}
	default:
		// AND for false or OR for true needs at least one child with the outcome;
		// an empty AND is true and an empty OR is false.
		labels = make([]bool, 1+g.Rand.Intn(CompoundFanoutMax))
		hit := false
		for i := range labels {
			labels[i] = util.Chance(g.Rand, CompoundLabelTrueProb)
			hit = hit || labels[i] == outcome
		}
		if !hit {
			labels[g.Rand.Intn(len(labels))] = outcome
		}
	}
	children := make([]Predicate, 0, len(labels))
	for _, label := range labels {
		sp, err := g.GenerateSimplePredicate(tbl, label)
		if err != nil {
			return Predicate{}, err
		}
		children = append(children, sp.Predicate)
	}
	if isAnd {
		return And(children...), nil
	}
	return Or(children...), nil
}

// GeneratePredicate builds a compound predicate with a random outcome.
func (g *Generator) GeneratePredicate(tbl schema.Table) (Predicate, error) {
	return g.GenerateCompoundPredicate(tbl, g.Rand.Intn(2) == 0)
}

// GenerateComparisonPredicate builds a comparison on column that holds for v.
func (g *Generator) GenerateComparisonPredicate(column string, v schema.Value) (Predicate, error) {
	w := make([]int, kindCount)
	w[kindEq] = boolWeight(!v.Null)
	w[kindGt] = boolWeight(CanLess(v))
	w[kindLt] = boolWeight(CanGreater(v))
	kind, err := util.PickWeighted(g.Rand, w)
	if err != nil {
		return Predicate{}, errors.Wrapf(err, "comparison on %s for %s", column, v.SQLLiteral())
	}
	switch comparisonKind(kind) {
	case kindEq:
		return Eq(column, v), nil
	case kindGt:
		lower, err := g.LessThan(v)
		return Gt(column, lower), err
	default:
		upper, err := g.GreaterThan(v)
		return Lt(column, upper), err
	}
}

func constantLeaf(outcome bool) Predicate {
	if outcome {
		return True()
	}
	return False()
}

func feasible(weights []int) bool {
	for _, w := range weights {
		if w > 0 {
			return true
		}
	}
	return false
}

func boolWeight(ok bool) int {
	if ok {
		return 1
	}
	return 0
}
