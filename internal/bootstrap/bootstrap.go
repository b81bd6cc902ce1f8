// Package bootstrap wires configuration, storage, text generation and
// messaging into a ready service for the binaries.
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"donationsrv/internal/adapter/events"
	"donationsrv/internal/adapter/repo"
	"donationsrv/internal/infra"
	"donationsrv/internal/infra/geoip"
	"donationsrv/internal/narrative"
	"donationsrv/internal/providers/textgen"
	"donationsrv/internal/service"
)

// Runtime holds the long-lived resources of a process.
type Runtime struct {
	Pool     *pgxpool.Pool
	Service  *service.Donations
	Provider string

	closers []func() error
}

// Close releases resources in reverse order of acquisition.
func (rt *Runtime) Close() error {
	var errs []error
	for i := len(rt.closers) - 1; i >= 0; i-- {
		if err := rt.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ComposerHooks logs every composition outcome.
func ComposerHooks(logger zerolog.Logger) narrative.Hooks {
	return narrative.Hooks{
		OnGenerated: func(kind string) {
			logger.Debug().Str("kind", kind).Msg("narrative generated")
		},
		OnFallback: func(kind, reason string, err error) {
			logger.Warn().Err(err).Str("kind", kind).Str("reason", reason).Msg("narrative fallback used")
		},
	}
}

// New connects to the database and builds the service. Migrations run first
// when cfg.MigrateOnStart is set. GeoIP and AMQP are skipped when not
// configured.
func New(ctx context.Context, cfg *infra.Config, logger zerolog.Logger) (*Runtime, error) {
	rt := &Runtime{}

	if cfg.MigrateOnStart {
		if err := infra.RunMigrations(cfg.DatabaseURL); err != nil {
			return nil, err
		}
		logger.Info().Msg("migrations applied")
	}

	pool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		return nil, err
	}
	rt.Pool = pool
	rt.closers = append(rt.closers, func() error { pool.Close(); return nil })

	runner := infra.NewSQLRunner(pool, logger)

	gen, provider := textgen.New(ctx, cfg, logger)
	rt.Provider = provider
	composer := narrative.NewComposer(gen, narrative.Options{Hooks: ComposerHooks(logger)})

	var cities geoip.CityResolver
	resolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip disabled")
	} else if resolver != nil {
		cities = resolver
		rt.closers = append(rt.closers, resolver.Close)
	}

	var publisher events.Publisher = events.Noop{}
	if cfg.AMQPURL != "" {
		p, err := events.Dial(cfg.AMQPURL, cfg.AMQPExchange, logger)
		if err != nil {
			rt.Close()
			return nil, fmt.Errorf("events: %w", err)
		}
		publisher = p
		rt.closers = append(rt.closers, p.Close)
		logger.Info().Str("exchange", cfg.AMQPExchange).Msg("event publishing enabled")
	}

	rt.Service = service.New(service.Deps{
		Donations: repo.NewDonationRepository(runner),
		Donors:    repo.NewDonorRepository(runner),
		Analytics: repo.NewAnalyticsRepository(runner),
		Composer:  composer,
		Events:    publisher,
		Cities:    cities,
		Logger:    logger,
	})
	return rt, nil
}
