package oracle

import (
	"simgen/internal/config"
	"simgen/internal/validator"
)

// Weighted pairs an oracle with its selection weight.
type Weighted struct {
	Oracle Oracle
	Weight int
}

// FromConfig builds the oracle set in a stable order.
func FromConfig(w config.OracleWeights, v *validator.Validator) []Weighted {
	return []Weighted{
		{Oracle: RowTruth{}, Weight: w.RowTruth},
		{Oracle: SimpleColumn{}, Weight: w.SimpleColumn},
		{Oracle: CompoundFalse{}, Weight: w.CompoundFalse},
		{Oracle: QuerySyntax{Validator: v}, Weight: w.QuerySyntax},
	}
}

// ByName returns the oracle with the given name.
func ByName(oracles []Weighted, name string) (Oracle, bool) {
	for _, o := range oracles {
		if o.Oracle.Name() == name {
			return o.Oracle, true
		}
	}
	return nil, false
}
