// Package handler is the Lambda entrypoint: it resolves configuration,
// runs one reconciliation pass, and emits the summary metrics record.
package handler

import (
	"context"

	"github.com/aws/aws-lambda-go/lambdacontext"

	"github.com/finopslab/eipreaper/config"
	"github.com/finopslab/eipreaper/providers"
	"github.com/finopslab/eipreaper/reconciler"
	"github.com/finopslab/eipreaper/telemetry"
)

// Response is the acknowledgement returned on normal completion. On fatal
// abort the error propagates to the runtime instead.
type Response struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

const responseBody = "Processed elastic IPs."

// Handler runs reconciliation passes triggered by Lambda invocations.
type Handler struct {
	provider providers.Provider
	logger   *telemetry.Logger
	emf      *telemetry.EMFEmitter
}

// New creates a handler.
func New(provider providers.Provider, logger *telemetry.Logger, emf *telemetry.EMFEmitter) *Handler {
	return &Handler{provider: provider, logger: logger, emf: emf}
}

// Handle processes one invocation. The invocation payload's dry_run flag
// overrides the DRY_RUN environment variable when present.
func (h *Handler) Handle(ctx context.Context, event Event) (Response, error) {
	opts := config.Resolve(event.DryRunOverride())

	functionName := "ManageEIPs"
	requestID := ""
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		requestID = lc.AwsRequestID
	}
	if lambdacontext.FunctionName != "" {
		functionName = lambdacontext.FunctionName
	}

	h.logger.Info().
		Bool("dry_run", opts.Policy.DryRun).
		Str("function_name", functionName).
		Str("request_id", requestID).
		Str("managed_tag_key", opts.Policy.ManagedTagKey).
		Str("managed_tag_value", opts.Policy.ManagedTagValue).
		Str("protect_tag_key", opts.Policy.ProtectTagKey).
		Str("protect_tag_value", opts.Policy.ProtectTagValue).
		Bool("metrics_enabled", opts.MetricsEnabled).
		Str("metrics_namespace", opts.MetricsNamespace).
		Msg("run start")

	eips, err := h.provider.ListElasticIPs(ctx)
	if err != nil {
		h.logger.Error().Err(err).Msg("address discovery failed")
		return Response{}, err
	}

	rec := reconciler.New(h.provider, h.logger.Logger)
	counters, runErr := rec.Run(ctx, eips, opts.Policy)

	// Metrics are a best-effort side channel: emitted even when the run
	// aborted, so the partial counters are still observable.
	if opts.MetricsEnabled {
		dimensions := map[string]string{"FunctionName": functionName}
		if err := h.emf.Emit(opts.MetricsNamespace, dimensions, counters.ToMetrics()); err != nil {
			h.logger.Error().Err(err).Msg("emf emission failed")
		}
	}

	if runErr != nil {
		return Response{}, runErr
	}
	return Response{StatusCode: 200, Body: responseBody}, nil
}
