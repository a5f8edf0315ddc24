// Package reconciler walks one batch of discovered Elastic IPs, applies the
// release policy to each, performs or simulates the release, and accumulates
// the run counters. Strictly sequential: each address is fully handled
// before the next is examined.
package reconciler

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/finopslab/eipreaper/policy"
	"github.com/finopslab/eipreaper/types"
)

// Releaser is the external collaborator that performs the destructive call
// and classifies its failures.
type Releaser interface {
	ReleaseElasticIP(ctx context.Context, allocationID string) error
	Classify(err error) types.ErrorClass
	ErrorCode(err error) string
}

// Reconciler runs the per-address decision loop.
type Reconciler struct {
	releaser Releaser
	logger   zerolog.Logger
}

// New creates a reconciler.
func New(releaser Releaser, logger zerolog.Logger) *Reconciler {
	return &Reconciler{releaser: releaser, logger: logger}
}

// Run consumes the discovered addresses in order and returns the run
// counters. A fatal classification aborts the loop immediately; counters
// accumulated up to and including the failing address are still returned,
// and the summary is logged best-effort before the error propagates.
// Recoverable failures are counted and the loop continues.
func (r *Reconciler) Run(ctx context.Context, eips []types.ElasticIP, pol policy.Policy) (types.RunCounters, error) {
	var counters types.RunCounters

	for _, eip := range eips {
		counters.Scanned++

		disposition := policy.Evaluate(eip, pol)

		if disposition == types.Released {
			// Live release candidate: the disposition holds only if the
			// side effect succeeds.
			if fatal := r.release(ctx, eip, &counters); fatal != nil {
				r.logSummary(counters, pol.DryRun)
				return counters, fatal
			}
			continue
		}

		if err := counters.Record(disposition); err != nil {
			r.logSummary(counters, pol.DryRun)
			return counters, err
		}
		r.logSkip(eip, disposition, pol.DryRun)
	}

	r.logSummary(counters, pol.DryRun)
	return counters, nil
}

// release performs one release attempt. Returns a non-nil error only for
// fatal classifications; recoverable failures are absorbed into counters.
func (r *Reconciler) release(ctx context.Context, eip types.ElasticIP, counters *types.RunCounters) error {
	r.logger.Info().
		Str("allocation_id", eip.AllocationID).
		Str("action", "release").
		Bool("dry_run", false).
		Msg("releasing unassociated elastic IP")

	err := r.releaser.ReleaseElasticIP(ctx, eip.AllocationID)
	if err == nil {
		counters.Released++
		return nil
	}

	class := r.releaser.Classify(err)
	r.logger.Error().
		Err(err).
		Str("allocation_id", eip.AllocationID).
		Str("error_code", r.releaser.ErrorCode(err)).
		Str("error_class", string(class)).
		Msg("release failed")

	if class.Fatal() {
		return fmt.Errorf("release %s: %w", eip.AllocationID, err)
	}

	counters.PerResourceErrors++
	return nil
}

// logSkip records non-destructive dispositions. Protected skips and dry-run
// intents are logged per address; the high-volume buckets are summary-only.
func (r *Reconciler) logSkip(eip types.ElasticIP, d types.Disposition, dryRun bool) {
	switch d {
	case types.SkippedProtected:
		r.logger.Info().
			Str("allocation_id", eip.AllocationID).
			Str("action", "skip").
			Str("reason", "protected").
			Bool("dry_run", dryRun).
			Msg("skipping protected elastic IP")
	case types.WouldRelease:
		r.logger.Info().
			Str("allocation_id", eip.AllocationID).
			Str("action", "release").
			Bool("dry_run", true).
			Msg("elastic IP would be released (dry-run)")
	}
}

func (r *Reconciler) logSummary(c types.RunCounters, dryRun bool) {
	r.logger.Info().
		Bool("dry_run", dryRun).
		Int64("scanned", c.Scanned).
		Int64("skipped_not_managed", c.SkippedNotManaged).
		Int64("skipped_protected", c.SkippedProtected).
		Int64("associated", c.Associated).
		Int64("would_release", c.WouldRelease).
		Int64("released", c.Released).
		Int64("per_resource_errors", c.PerResourceErrors).
		Msg("reconciliation completed")
}
