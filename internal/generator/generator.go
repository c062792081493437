// Package generator synthesizes queries and predicates with known truth values.
package generator

import (
	"fmt"
	"math/rand"
	"time"

	"simgen/internal/config"
)

// Generator creates queries and predicates from table state.
// A Generator is not safe for concurrent use; give each goroutine its own.
type Generator struct {
	Rand     *rand.Rand
	Config   config.Config
	Seed     int64
	tableSeq int
}

// New constructs a Generator with a seed.
func New(cfg config.Config, seed int64) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return NewWithRand(cfg, rand.New(rand.NewSource(seed)), seed)
}

// NewWithRand constructs a Generator around an existing random source.
// seed is only recorded for reporting.
func NewWithRand(cfg config.Config, r *rand.Rand, seed int64) *Generator {
	return &Generator{
		Rand:   r,
		Config: cfg,
		Seed:   seed,
	}
}

// NextTableName returns the next generated table name.
func (g *Generator) NextTableName() string {
	name := fmt.Sprintf("t%d", g.tableSeq)
	g.tableSeq++
	return name
}
