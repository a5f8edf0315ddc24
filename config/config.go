// Package config collects runtime configuration into explicit structs.
// Environment variables are read once, at run start, never at arbitrary
// points during reconciliation.
package config

import (
	"os"
	"strings"

	"github.com/finopslab/eipreaper/policy"
)

// Environment variable keys recognized by Resolve.
const (
	EnvDryRun           = "DRY_RUN"
	EnvManagedTagKey    = "MANAGED_TAG_KEY"
	EnvManagedTagValue  = "MANAGED_TAG_VALUE"
	EnvProtectTagKey    = "PROTECT_TAG_KEY"
	EnvProtectTagValue  = "PROTECT_TAG_VALUE"
	EnvMetricsEnabled   = "METRICS_ENABLED"
	EnvMetricsNamespace = "METRICS_NAMESPACE"
)

// Defaults applied when neither payload nor environment provides a value.
const (
	DefaultManagedTagKey    = "ManagedBy"
	DefaultManagedTagValue  = "ManageEIPs"
	DefaultProtectTagKey    = "Protection"
	DefaultProtectTagValue  = "DoNotRelease"
	DefaultMetricsNamespace = "Custom/FinOps"
)

// Options is the resolved configuration for one run.
type Options struct {
	Policy           policy.Policy
	MetricsEnabled   bool
	MetricsNamespace string
}

// Resolve builds Options from the environment, with an optional payload
// override for the dry-run flag. Precedence for dry-run: payload, then
// DRY_RUN, then false. A nil payloadDryRun means the payload omitted it.
func Resolve(payloadDryRun *bool) Options {
	return resolve(os.Getenv, payloadDryRun)
}

// resolve is the testable core: getenv is injected so precedence rules can
// be exercised without touching the process environment.
func resolve(getenv func(string) string, payloadDryRun *bool) Options {
	dryRun := TruthyString(getenv(EnvDryRun))
	if payloadDryRun != nil {
		dryRun = *payloadDryRun
	}

	metricsEnabled := true
	if v := getenv(EnvMetricsEnabled); v != "" {
		metricsEnabled = TruthyString(v)
	}

	return Options{
		Policy: policy.Policy{
			ManagedTagKey:   envOrDefault(getenv, EnvManagedTagKey, DefaultManagedTagKey),
			ManagedTagValue: envOrDefault(getenv, EnvManagedTagValue, DefaultManagedTagValue),
			ProtectTagKey:   envOrDefault(getenv, EnvProtectTagKey, DefaultProtectTagKey),
			ProtectTagValue: envOrDefault(getenv, EnvProtectTagValue, DefaultProtectTagValue),
			DryRun:          dryRun,
		},
		MetricsEnabled:   metricsEnabled,
		MetricsNamespace: envOrDefault(getenv, EnvMetricsNamespace, DefaultMetricsNamespace),
	}
}

// TruthyString coerces a configuration string to bool by case-insensitive
// comparison to "true". Anything else, including empty, is false.
func TruthyString(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "true")
}

func envOrDefault(getenv func(string) string, key, fallback string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return fallback
}
