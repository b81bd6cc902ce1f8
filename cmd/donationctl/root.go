package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"donationsrv/internal/bootstrap"
	"donationsrv/internal/domain"
	"donationsrv/internal/infra"
	"donationsrv/internal/narrative"
)

// operations is the slice of the service the commands need.
type operations interface {
	GenerateThankYou(ctx context.Context, id string) (narrative.Outcome, error)
	RunAnalytics(ctx context.Context, from, to any) (*domain.Analytics, error)
	BackfillThankYous(ctx context.Context, limit, concurrency int) (int, error)
}

// connectFunc opens the service and returns a release func.
type connectFunc func(ctx context.Context) (operations, func(), error)

func connect(ctx context.Context) (operations, func(), error) {
	cfg, err := infra.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	logger := infra.NewLogger(cfg.AppEnv)
	rt, err := bootstrap.New(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return rt.Service, func() { _ = rt.Close() }, nil
}

func newRootCmd() *cobra.Command {
	return newRootCmdWith(connect)
}

func newRootCmdWith(open connectFunc) *cobra.Command {
	root := &cobra.Command{
		Use:           "donationctl",
		Short:         "Operate the donation service from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newAnalyticsCmd(open),
		newThankYouCmd(open),
		newBackfillCmd(open),
		newMigrateCmd(),
	)
	return root
}

func newAnalyticsCmd(open connectFunc) *cobra.Command {
	var from, to string
	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "Compute and store analytics for a period (default: trailing twelve months)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ops, release, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			rec, err := ops.RunAnalytics(cmd.Context(), optionalFlag(from), optionalFlag(to))
			if err != nil {
				return err
			}
			return printAnalytics(cmd.OutOrStdout(), rec)
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "period start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "period end (YYYY-MM-DD)")
	return cmd
}

func newThankYouCmd(open connectFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "thank-you <donation-id>",
		Short: "Compose and store a thank-you message for a donation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ops, release, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			out, err := ops.GenerateThankYou(cmd.Context(), args[0])
			if err != nil {
				if errors.Is(err, domain.ErrDonorRequired) {
					return fmt.Errorf("donation %s has no donor", args[0])
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "[%s]\n%s\n", out.Source, out.Text)
			return nil
		},
	}
}

func newBackfillCmd(open connectFunc) *cobra.Command {
	var limit, concurrency int
	cmd := &cobra.Command{
		Use:   "backfill",
		Short: "Compose thank-you messages for donations that have none",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ops, release, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			n, err := ops.BackfillThankYous(cmd.Context(), limit, concurrency)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "stored %d thank-you messages\n", n)
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 50, "maximum donations to process")
	cmd.Flags().IntVar(&concurrency, "concurrency", 4, "parallel compositions")
	return cmd
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := infra.LoadConfig()
			if err != nil {
				return err
			}
			if err := infra.RunMigrations(cfg.DatabaseURL); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}
}

func optionalFlag(v string) any {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return v
}

func printAnalytics(w io.Writer, rec *domain.Analytics) error {
	fmt.Fprintf(w, "analytics %s (%s to %s, %s)\n\n%s\n\n", rec.ID, rec.PeriodFrom, rec.PeriodTo, rec.NarrativeSource, rec.Narrative)
	var stats any
	if err := json.Unmarshal(rec.Stats, &stats); err != nil {
		return fmt.Errorf("decode stats: %w", err)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(stats)
}
