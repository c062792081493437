// Package util provides shared helper utilities.
//
//revive:disable:var-naming // Package name follows project convention.
package util

import (
	"math/rand"

	"github.com/pkg/errors"
)

// PickWeighted selects an index based on integer weights.
// Entries with a weight <= 0 are never selected.
func PickWeighted(r *rand.Rand, weights []int) (int, error) {
	total := 0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total == 0 {
		return 0, errors.Wrapf(ErrEmptyChoiceSet, "%d weights, none positive", len(weights))
	}
	roll := r.Intn(total)
	sum := 0
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		sum += w
		if roll < sum {
			return i, nil
		}
	}
	return lastPositive(len(weights), func(i int) bool { return weights[i] > 0 }), nil
}

// PickWeightedFloat selects an index based on fractional weights, such as
// the budget quotas handed in by the simulation driver.
func PickWeightedFloat(r *rand.Rand, weights []float64) (int, error) {
	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return 0, errors.Wrapf(ErrEmptyChoiceSet, "%d weights, none positive", len(weights))
	}
	roll := r.Float64() * total
	sum := 0.0
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		sum += w
		if roll < sum {
			return i, nil
		}
	}
	// float rounding can leave roll == total
	return lastPositive(len(weights), func(i int) bool { return weights[i] > 0 }), nil
}

func lastPositive(n int, positive func(int) bool) int {
	for i := n - 1; i >= 0; i-- {
		if positive(i) {
			return i
		}
	}
	return n - 1
}

// PickIndex returns a uniform index in [0, n).
func PickIndex(r *rand.Rand, n int) (int, error) {
	if n <= 0 {
		return 0, errors.Wrap(ErrEmptyChoiceSet, "uniform pick over no candidates")
	}
	return r.Intn(n), nil
}

// Pick returns a uniformly chosen element of items.
func Pick[T any](r *rand.Rand, items []T) (T, error) {
	idx, err := PickIndex(r, len(items))
	if err != nil {
		var zero T
		return zero, err
	}
	return items[idx], nil
}

// Chance returns true with a given percent chance.
func Chance(r *rand.Rand, percent int) bool {
	if percent <= 0 {
		return false
	}
	if percent >= 100 {
		return true
	}
	return r.Intn(100) < percent
}
