package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"donationsrv/internal/bootstrap"
	"donationsrv/internal/domain"
	"donationsrv/internal/infra"
)

type jobs interface {
	BackfillThankYous(ctx context.Context, limit, concurrency int) (int, error)
	RunAnalytics(ctx context.Context, from, to any) (*domain.Analytics, error)
}

type worker struct {
	svc         jobs
	logger      infra.Logger
	interval    time.Duration
	backfill    int
	concurrency int
}

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := bootstrap.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("worker: startup failed")
	}
	defer rt.Close()

	w := &worker{
		svc:         rt.Service,
		logger:      logger,
		interval:    cfg.WorkerInterval,
		backfill:    cfg.WorkerBackfill,
		concurrency: cfg.WorkerConcurrency,
	}
	logger.Info().
		Dur("interval", w.interval).
		Int("backfill", w.backfill).
		Int("concurrency", w.concurrency).
		Str("textgen", rt.Provider).
		Msg("worker started")
	w.run(ctx)
	logger.Info().Msg("worker stopped")
}

// run ticks until ctx is done. Each tick backfills thank-you messages and
// refreshes the trailing twelve month analytics.
func (w *worker) run(ctx context.Context) {
	ticker := time.NewTicker(w.tickInterval())
	defer ticker.Stop()

	for {
		w.tick(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// tickInterval falls back to the default for a worker built without a
// positive interval; time.NewTicker panics otherwise.
func (w *worker) tickInterval() time.Duration {
	if w.interval <= 0 {
		return infra.DefaultWorkerInterval
	}
	return w.interval
}

func (w *worker) tick(ctx context.Context) {
	if w.backfill > 0 {
		n, err := w.svc.BackfillThankYous(ctx, w.backfill, w.concurrency)
		if err != nil && ctx.Err() == nil {
			w.logger.Error().Err(err).Msg("worker: backfill failed")
		} else if n > 0 {
			w.logger.Info().Int("stored", n).Msg("worker: thank-you messages backfilled")
		}
	}
	if ctx.Err() != nil {
		return
	}
	if _, err := w.svc.RunAnalytics(ctx, nil, nil); err != nil && ctx.Err() == nil {
		w.logger.Error().Err(err).Msg("worker: analytics refresh failed")
	}
}
