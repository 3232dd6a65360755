package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	server "hotel_merge/internal/adapters/http_server"
	"hotel_merge/internal/adapters/observability"
	"hotel_merge/internal/app"
	"hotel_merge/internal/bootstrap"
	"hotel_merge/internal/shared"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("api failed")
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "api",
		Short:         "Serve the reconciled hotels over HTTP",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve,
	}
	cmd.Flags().String("http-addr", "", "listen address (default from HTTP_ADDR)")
	cmd.Flags().String("log-level", "", "log level: debug, info, warn, error")
	_ = viper.BindPFlag("HTTP_ADDR", cmd.Flags().Lookup("http-addr"))
	_ = viper.BindPFlag("LOG_LEVEL", cmd.Flags().Lookup("log-level"))
	return cmd
}

func serve(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	store, db, err := bootstrap.OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	cache, closeCache := bootstrap.OpenCache(cfg)
	defer closeCache()

	q := app.NewQueryService(store, cache, cfg.CacheTTL)

	srv := server.New(15 * time.Second)
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Q: q})

	httpSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Mux(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpSrv.Shutdown(sctx)
}
