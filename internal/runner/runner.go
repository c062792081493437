package runner

import (
	"context"
	"fmt"
	"time"

	"simgen/internal/config"
	"simgen/internal/generator"
	"simgen/internal/oracle"
	"simgen/internal/report"
	"simgen/internal/schema"
	"simgen/internal/uploader"
	"simgen/internal/util"
	"simgen/internal/validator"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// seedStride separates the seeds of consecutive iterations so that
// workers never share one.
const seedStride = 1 << 16

// noOracle names results produced before any oracle could be picked.
const noOracle = "none"

// Runner drives property checks for one worker.
type Runner struct {
	cfg       config.Config
	worker    int
	validator *validator.Validator
	reporter  *report.Reporter
	uploader  uploader.Uploader
	oracles   []oracle.Weighted
	stats     *Stats
}

// Iteration is the full state of one seeded check.
type Iteration struct {
	Seed      int64
	Index     int
	Remaining generator.Remaining
	Table     schema.Table
	Result    oracle.Result
}

// New builds a runner for worker. stats may be shared between workers.
func New(cfg config.Config, worker int, stats *Stats) *Runner {
	up, err := uploader.New(cfg.Storage)
	if err != nil {
		util.Warnf("uploader init failed, cases stay local: %v", err)
		up = uploader.NoopUploader{}
	}
	if stats == nil {
		stats = NewStats()
	}
	v := validator.New()
	rep := report.New(cfg.Report.OutputDir)
	rep.UseUUIDPath = cfg.Report.UseUUIDPath
	if cfg.Workers > 1 {
		rep.Prefix = fmt.Sprintf("w%d_", worker)
	}
	return &Runner{
		cfg:       cfg,
		worker:    worker,
		validator: v,
		reporter:  rep,
		uploader:  up,
		oracles:   oracle.FromConfig(cfg.Weights.Oracles, v),
		stats:     stats,
	}
}

// IterationSeed derives the seed of iteration i for worker.
func IterationSeed(base int64, i int, worker int) int64 {
	seed := base + int64(i)*seedStride + int64(worker)
	if seed == 0 {
		// Zero asks the generator for a time-based seed.
		seed = 1
	}
	return seed
}

// RemainingAt returns the budget weights at iteration i: the configured
// statement weights decayed linearly over the run.
func RemainingAt(cfg config.Config, i int) generator.Remaining {
	q := cfg.Weights.Queries
	scale := 1.0
	if cfg.Iterations > 0 {
		scale = float64(cfg.Iterations-i) / float64(cfg.Iterations)
	}
	if scale < 0 {
		scale = 0
	}
	return generator.Remaining{
		Create: float64(q.Create) * scale,
		Read:   float64(q.Select) * scale,
		Write:  float64(q.Insert) * scale,
	}
}

// Run executes cfg.Iterations checks for this worker. It stops between
// iterations when ctx is canceled.
func (r *Runner) Run(ctx context.Context) error {
	util.Infof("runner start worker=%d iterations=%d seed=%d", r.worker, r.cfg.Iterations, r.cfg.Seed)
	for i := 0; i < r.cfg.Iterations; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		it := r.RunIteration(IterationSeed(r.cfg.Seed, i, r.worker), i, RemainingAt(r.cfg, i))
		r.stats.record(it.Result)
		if !it.Result.OK {
			r.handleFailure(ctx, it)
		} else if !it.Result.Skipped() {
			util.Debugf("worker=%d iter=%d oracle=%s ok sql=%v", r.worker, i, it.Result.Oracle, it.Result.SQL)
		}
	}
	return nil
}

// RunIteration replays one seeded iteration: a fresh generator builds a
// table and its rows, then one oracle is picked by weight and run.
func (r *Runner) RunIteration(seed int64, index int, remaining generator.Remaining) Iteration {
	gen := generator.New(r.cfg, seed)
	it := Iteration{Seed: seed, Index: index, Remaining: remaining}
	tbl := gen.GenerateTable()
	tbl.Rows = gen.GenerateRows(tbl, gen.Rand.Intn(r.cfg.MaxRowsPerTable+1))
	it.Table = tbl

	weights := make([]int, len(r.oracles))
	for i, o := range r.oracles {
		weights[i] = o.Weight
	}
	idx, err := util.PickWeighted(gen.Rand, weights)
	if err != nil {
		it.Result = oracle.Result{OK: false, Oracle: noOracle, Err: errors.Wrap(err, "oracle weights"), RowIndex: -1}
		return it
	}
	it.Result = r.oracles[idx].Oracle.Run(gen, oracle.Input{Table: tbl, Remaining: remaining})
	return it
}

// RunAll runs cfg.Workers runners concurrently and returns their shared
// stats. The first worker error cancels the others.
func RunAll(ctx context.Context, cfg config.Config) (*Stats, error) {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
		util.Infof("seed not set, using %d", cfg.Seed)
	}
	stats := NewStats()
	stop := startStatsLogger(stats, time.Duration(cfg.Logging.ReportIntervalSeconds)*time.Second)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < cfg.Workers; w++ {
		r := New(cfg, w, stats)
		g.Go(func() error {
			return r.Run(gctx)
		})
	}
	err := g.Wait()
	snap := stats.Snapshot()
	util.Infof("run done checks=%d failures=%d skips=%d", snap.Total, snap.Failures, snap.Skips)
	return stats, err
}
