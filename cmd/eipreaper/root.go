package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/finopslab/eipreaper/config"
)

var (
	version = "0.1.0"

	flagRegion string
	flagConfig string
	flagDebug  bool

	rootCmd = &cobra.Command{
		Use:   "eipreaper",
		Short: "Elastic IP reclamation engine",
		Long: `Eipreaper releases idle Elastic IPs.

Only addresses carrying the management tag pair are in scope, addresses
with the protection tag pair are never touched, and associated addresses
are left alone. Dry-run mode logs every decision without releasing
anything.`,
		Version: version,
	}
)

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagRegion, "region", "", "AWS region (overrides config file)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to YAML config file")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
}

// loadConfig reads the optional config file and applies flag overrides.
func loadConfig() (*config.File, error) {
	var cfg *config.File
	if flagConfig != "" {
		loaded, err := config.LoadFile(flagConfig)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		cfg = config.DefaultFile()
	}

	if flagRegion != "" {
		cfg.Region = flagRegion
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setLogLevel(cfg *config.File) {
	level := zerolog.InfoLevel
	if parsed, err := zerolog.ParseLevel(cfg.Log.Level); err == nil {
		level = parsed
	}
	if flagDebug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
}
