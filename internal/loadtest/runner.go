package loadtest

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Runner spawns virtual users and drives them until the context ends.
type Runner struct {
	cfg    Config
	stats  *Stats
	logger *slog.Logger
}

// NewRunner creates a runner; the logger defaults to slog.Default.
func NewRunner(cfg Config, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{cfg: cfg, stats: NewStats(), logger: logger}
}

// Stats returns the run's stats collector.
func (r *Runner) Stats() *Stats { return r.stats }

// Run starts cfg.Users virtual users, pacing their startup at cfg.SpawnRate
// per second, and blocks until the context is canceled or RunTime elapses.
// Individual task failures are recorded and never abort the run.
func (r *Runner) Run(ctx context.Context) error {
	if time.Duration(r.cfg.RunTime) > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(r.cfg.RunTime))
		defer cancel()
	}

	spawn := rate.NewLimiter(rate.Limit(r.cfg.SpawnRate), 1)
	g, ctx := errgroup.WithContext(ctx)

	for i := 0; i < r.cfg.Users; i++ {
		if err := spawn.Wait(ctx); err != nil {
			break // run window closed while still spawning
		}
		seed := time.Now().UnixNano() + int64(i)
		g.Go(func() error {
			r.runUser(ctx, rand.New(rand.NewSource(seed)))
			return nil
		})
	}

	return g.Wait()
}

// runUser is one virtual user's lifetime: authenticate, then loop weighted
// tasks with a bounded random think time in between.
func (r *Runner) runUser(ctx context.Context, rng *rand.Rand) {
	client := NewClient(r.cfg.Host)

	start := time.Now()
	err := Login(ctx, client)
	r.stats.Record("POST /api/v1/auth/login", time.Since(start), err)
	if err != nil {
		r.logger.Debug("login failed, user continues unauthenticated", "err", err)
	}

	tasks := Tasks(rng)
	for {
		task := pickTask(rng, tasks)
		start := time.Now()
		err := task.Run(ctx, client)
		if ctx.Err() != nil {
			return
		}
		r.stats.Record(task.Name, time.Since(start), err)
		if err != nil {
			r.logger.Debug("task failed", "task", task.Name, "err", err)
		}

		wait := r.waitInterval(rng)
		select {
		case <-ctx.Done():
			return
		case <-time.After(wait):
		}
	}
}

func (r *Runner) waitInterval(rng *rand.Rand) time.Duration {
	min := time.Duration(r.cfg.WaitMin)
	max := time.Duration(r.cfg.WaitMax)
	if max <= min {
		return min
	}
	return min + time.Duration(rng.Int63n(int64(max-min)))
}
