package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"syscall"
	"time"

	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/finopslab/eipreaper/config"
	"github.com/finopslab/eipreaper/internal/daemon"
	awsprovider "github.com/finopslab/eipreaper/providers/aws"
	"github.com/finopslab/eipreaper/reconciler"
	"github.com/finopslab/eipreaper/telemetry"
)

var daemonDryRun bool

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Run reconciliation continuously on an interval",
	Long: `Run reconciliation on the interval from the config file (default 1h),
exposing Prometheus metrics on /metrics and liveness on /healthz.

A fatal auth error stops the daemon: every subsequent pass would fail
the same way.`,
	RunE: runDaemon,
}

func init() {
	rootCmd.AddCommand(daemonCmd)
	daemonCmd.Flags().BoolVar(&daemonDryRun, "dry-run", true, "Log decisions without releasing anything")
}

func runDaemon(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	setLogLevel(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	provider, err := awsprovider.New(ctx, cfg.Region)
	if err != nil {
		return err
	}

	logger := telemetry.NewLogger("eipreaper")

	otelProvider, err := telemetry.NewProvider(ctx, cfg.OTEL)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := otelProvider.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("telemetry shutdown failed")
		}
	}()

	opts := config.Resolve(&daemonDryRun)

	d := daemon.New(cfg.Daemon.Interval, func(runCtx context.Context) error {
		return runPass(runCtx, provider, logger, otelProvider, opts, cfg.Region)
	})

	logger.Info().
		Str("region", cfg.Region).
		Dur("interval", cfg.Daemon.Interval).
		Str("metrics_addr", cfg.Daemon.MetricsAddr).
		Bool("dry_run", opts.Policy.DryRun).
		Msg("daemon starting")

	var g run.Group
	g.Add(run.SignalHandler(ctx, syscall.SIGINT, syscall.SIGTERM))

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(d.Health())
	})
	srv := &http.Server{Addr: cfg.Daemon.MetricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	g.Add(func() error {
		return srv.ListenAndServe()
	}, func(error) {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		_ = srv.Shutdown(shutdownCtx)
	})

	g.Add(func() error {
		return d.Start(ctx)
	}, func(error) {
		cancel()
	})

	err = g.Run()
	var sig run.SignalError
	if errors.As(err, &sig) {
		logger.Info().Str("signal", sig.Signal.String()).Msg("shutting down")
		return nil
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// runPass executes one daemon reconciliation pass and records its OTEL
// metrics. Recoverable per-address errors are already absorbed into the
// counters; only fatal classifications surface here.
func runPass(ctx context.Context, provider *awsprovider.Provider, logger *telemetry.Logger, otelProvider *telemetry.Provider, opts config.Options, region string) error {
	spanCtx, span := otelProvider.StartRunSpan(ctx)
	defer span.End()

	start := time.Now()

	eips, err := provider.ListElasticIPs(spanCtx)
	if err != nil {
		logger.WithContext(spanCtx).Error().Err(err).Msg("address discovery failed")
		return err
	}

	rec := reconciler.New(provider, *logger.WithContext(spanCtx))
	counters, runErr := rec.Run(spanCtx, eips, opts.Policy)

	status := "ok"
	if runErr != nil {
		status = "fatal"
	}
	otelProvider.RecordRun(spanCtx, region, status, time.Since(start), counters)

	return runErr
}
