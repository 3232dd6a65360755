package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"hotel_merge/internal/adapters/observability"
	"hotel_merge/internal/adapters/supplier"
	"hotel_merge/internal/app"
	"hotel_merge/internal/bootstrap"
	"hotel_merge/internal/domain"
	"hotel_merge/internal/shared"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("ingestion failed")
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "ingestor",
		Short:         "Fetch the supplier feeds, reconcile them and replace the stored hotels",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}
	cmd.Flags().Bool("dry-run", false, "print the reconciled hotels as JSON instead of persisting them")
	cmd.Flags().String("log-level", "", "log level: debug, info, warn, error")
	_ = viper.BindPFlag("DRY_RUN", cmd.Flags().Lookup("dry-run"))
	_ = viper.BindPFlag("LOG_LEVEL", cmd.Flags().Lookup("log-level"))
	return cmd
}

func run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg := shared.Load()

	// initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)
	observability.RegisterDefault()
	observability.Serve(cfg.MetricsAddr)

	sups, err := newSuppliers(cfg)
	if err != nil {
		return err
	}
	log.Info().
		Str("acme", cfg.AcmeURL).
		Str("patagonia", cfg.PatagoniaURL).
		Str("paperflies", cfg.PaperfliesURL).
		Bool("dry_run", cfg.DryRun).
		Msg("ingestor starting")

	if cfg.DryRun {
		rep, err := app.NewIngestionService(sups, nil, nil).DryRun(true).Run(ctx)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(rep.Hotels)
	}

	store, db, err := bootstrap.OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	cache, closeCache := bootstrap.OpenCache(cfg)
	defer closeCache()

	rep, err := app.NewIngestionService(sups, store, cache).Run(ctx)
	if err != nil {
		return err
	}
	for name, st := range rep.Sources {
		log.Info().
			Str("supplier", string(name)).
			Bool("available", st.Available).
			Int("records", st.Records).
			Int("skipped", st.Skipped).
			Msg("supplier summary")
	}
	log.Info().Int("hotels", rep.Count).Dur("duration", rep.Duration).Msg("ingestion completed")
	return nil
}

func newSuppliers(cfg shared.Config) (app.Suppliers, error) {
	mk := func(name, url string) (domain.SupplierClient, error) {
		return supplier.New(name, url, cfg.SupplierRPS, supplier.WithTimeout(cfg.FetchTimeout))
	}
	var (
		s   app.Suppliers
		err error
	)
	if s.Acme, err = mk("acme", cfg.AcmeURL); err != nil {
		return s, err
	}
	if s.Patagonia, err = mk("patagonia", cfg.PatagoniaURL); err != nil {
		return s, err
	}
	if s.Paperflies, err = mk("paperflies", cfg.PaperfliesURL); err != nil {
		return s, err
	}
	return s, nil
}
