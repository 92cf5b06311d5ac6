package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/healthtracker/internal/auth"
	"github.com/mmynk/healthtracker/internal/calculator"
	"github.com/mmynk/healthtracker/internal/chart"
	"github.com/mmynk/healthtracker/internal/metrics"
	"github.com/mmynk/healthtracker/internal/service"
	"github.com/mmynk/healthtracker/internal/storage/sqlite"
	"github.com/mmynk/healthtracker/internal/web"
)

const (
	shutdownTimeout = 10 * time.Second
	chartWidth      = 640
	chartHeight     = 320
)

func newServeCmd(st *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, st)
		},
	}
}

func runServe(ctx context.Context, st *cliState) (err error) {
	cfg, logger := st.cfg, st.logger

	store, err := sqlite.New(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() {
		err = multierr.Append(err, store.Close())
	}()
	logger.Info("Storage initialized", "database", cfg.DBPath)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.NewManager("healthtracker", "server", reg)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.SessionTTL)
	authenticator := auth.NewPasswordAuthenticator(store, cfg.BcryptCost)

	srv, err := web.NewServer(web.Deps{
		Auth:         service.NewAuthService(authenticator, jwtManager, m, logger),
		Tracker:      service.NewTrackerService(store, calculator.Default(), m, logger),
		JWT:          jwtManager,
		Charts:       chart.NewRenderer(chartWidth, chartHeight),
		Metrics:      m,
		Gatherer:     reg,
		Logger:       logger,
		CookieSecure: cfg.CookieSecure,
	})
	if err != nil {
		return err
	}

	// h2c serves HTTP/2 without TLS for clients behind a terminating proxy.
	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           h2c.NewHandler(srv.Routes(), &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("HTTP server starting", "address", httpServer.Addr, "env", cfg.Env)
		serveErr <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down", "timeout", shutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
