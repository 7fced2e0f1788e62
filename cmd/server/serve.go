package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hperssn/spinwheel/internal/config"
	httpapi "github.com/hperssn/spinwheel/internal/http"
	"github.com/hperssn/spinwheel/internal/logging"
	"github.com/hperssn/spinwheel/internal/metrics"
	"github.com/hperssn/spinwheel/internal/storage"
	"github.com/hperssn/spinwheel/internal/wheel"
)

func serveCmd() *cobra.Command {
	var cfgPath string
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Address = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runServer(ctx, cfg)
		},
	}

	cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "config file (default ./config.yaml or ./config/config.yaml)")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides server.address")

	return cmd
}

func runServer(ctx context.Context, cfg *config.Config) error {
	ln, err := net.Listen("tcp", cfg.Server.Address)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.Server.Address, err)
	}
	return serve(ctx, cfg, ln)
}

// serve runs the API on ln until ctx is done, then shuts down gracefully.
// Open spin event streams are ended so they do not hold up shutdown.
func serve(ctx context.Context, cfg *config.Config, ln net.Listener) error {
	defer ln.Close()

	logger := logging.New(cfg.Log.Level)
	defer func() { _ = logger.Sync() }()

	repo, err := storage.Open(cfg.Storage)
	if err != nil {
		return fmt.Errorf("open %s storage: %w", cfg.Storage.Driver, err)
	}
	defer repo.Close()

	if cfg.Wheel.SeedDefaults {
		if err := storage.Seed(ctx, repo); err != nil {
			return fmt.Errorf("seed storage: %w", err)
		}
	}

	m := metrics.New()
	hub := wheel.NewHub()
	svc := wheel.NewService(repo, stdRNG{}, hub, m, wheel.Limits{
		MinSegments: cfg.Wheel.MinSegments,
		MaxSegments: cfg.Wheel.MaxSegments,
	})
	// Prime the segment gauge.
	if _, err := svc.ListSegments(ctx); err != nil {
		return err
	}

	srv := &http.Server{
		Handler: httpapi.NewRouter(httpapi.Deps{
			Service:   svc,
			Hub:       hub,
			Logger:    logger,
			Metrics:   m,
			StaticDir: cfg.Server.StaticDir,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}
	srv.RegisterOnShutdown(hub.Close)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening",
			zap.String("addr", ln.Addr().String()),
			zap.String("storage", cfg.Storage.Driver),
		)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
