package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/finopslab/eipreaper/config"
	awsprovider "github.com/finopslab/eipreaper/providers/aws"
	"github.com/finopslab/eipreaper/reconciler"
	"github.com/finopslab/eipreaper/telemetry"
)

var runDryRun bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one reconciliation pass and exit",
	Example: `  eipreaper run                  # dry-run, log what would be released
  eipreaper run --dry-run=false  # actually release
  eipreaper run --region eu-west-1`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolVar(&runDryRun, "dry-run", true, "Log decisions without releasing anything")
}

func runRun(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	setLogLevel(cfg)

	provider, err := awsprovider.New(ctx, cfg.Region)
	if err != nil {
		return err
	}

	logger := telemetry.NewLogger("eipreaper")
	opts := config.Resolve(&runDryRun)

	logger.Info().
		Bool("dry_run", opts.Policy.DryRun).
		Str("region", cfg.Region).
		Str("managed_tag_key", opts.Policy.ManagedTagKey).
		Str("managed_tag_value", opts.Policy.ManagedTagValue).
		Str("protect_tag_key", opts.Policy.ProtectTagKey).
		Str("protect_tag_value", opts.Policy.ProtectTagValue).
		Msg("run start")

	eips, err := provider.ListElasticIPs(ctx)
	if err != nil {
		return err
	}

	rec := reconciler.New(provider, logger.Logger)
	counters, runErr := rec.Run(ctx, eips, opts.Policy)

	if opts.MetricsEnabled {
		emf := telemetry.NewEMFEmitter()
		dimensions := map[string]string{"FunctionName": "eipreaper"}
		if err := emf.Emit(opts.MetricsNamespace, dimensions, counters.ToMetrics()); err != nil {
			logger.Error().Err(err).Msg("emf emission failed")
		}
	}

	return runErr
}
