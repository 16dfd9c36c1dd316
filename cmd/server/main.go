package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/ethereum/go-ethereum/common"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	apphttp "github.com/amakane-hakari/cappedset/internal/api/http"
	"github.com/amakane-hakari/cappedset/internal/cappedset"
	"github.com/amakane-hakari/cappedset/internal/config"
	ilog "github.com/amakane-hakari/cappedset/internal/log"
	"github.com/amakane-hakari/cappedset/internal/metrics"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger, err := ilog.New(ilog.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	mx := metrics.NewProm(cfg.MetricsNamespace, reg)

	st, err := cappedset.New[common.Address](cfg.Capacity,
		cappedset.WithLogger(logger.With("component", "cappedset")),
		cappedset.WithMetrics(mx),
		cappedset.WithTracker(cfg.TrackerKind()),
	)
	if err != nil {
		return fmt.Errorf("cappedset: %w", err)
	}

	router := apphttp.NewRouter(st,
		apphttp.WithRouterLogger(logger.With("component", "http")),
		apphttp.WithGatherer(reg),
	)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}

	logger.Info("starting server", "addr", cfg.HTTPAddr, "capacity", cfg.Capacity, "tracker", cfg.TrackerKind().String())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case serveErr = <-errCh:
		logger.Error("server error", "err", serveErr)
	}

	apphttp.SetDraining(true)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "err", err)
		return errors.Join(serveErr, err)
	}
	logger.Info("server stopped")
	return serveErr
}
