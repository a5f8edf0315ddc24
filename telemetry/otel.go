package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/finopslab/eipreaper/config"
	"github.com/finopslab/eipreaper/types"
)

// Provider wraps the OTEL tracer and meter providers for daemon mode.
// Metrics are always exposed through the Prometheus reader; when an OTLP
// endpoint is configured, traces and metrics are pushed there as well.
type Provider struct {
	tracerProvider *sdktrace.TracerProvider
	meterProvider  *sdkmetric.MeterProvider
	tracer         trace.Tracer
	meter          metric.Meter

	runs         metric.Int64Counter
	runDuration  metric.Float64Histogram
	dispositions metric.Int64Counter
}

// NewProvider creates a telemetry provider.
func NewProvider(ctx context.Context, cfg config.OTELFile) (*Provider, error) {
	res, err := sdkresource.New(ctx,
		sdkresource.WithAttributes(
			semconv.ServiceName(cfg.ServiceName),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("create resource: %w", err)
	}

	p := &Provider{}

	if err := p.setupTracing(ctx, cfg, res); err != nil {
		return nil, err
	}

	if err := p.setupMetrics(ctx, cfg, res); err != nil {
		if p.tracerProvider != nil {
			_ = p.tracerProvider.Shutdown(ctx)
		}
		return nil, err
	}

	if err := p.initInstruments(); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *Provider) setupTracing(ctx context.Context, cfg config.OTELFile, res *sdkresource.Resource) error {
	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(res),
	}

	if cfg.Endpoint != "" {
		expOpts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(cfg.Endpoint)}
		if cfg.Insecure {
			expOpts = append(expOpts, otlptracegrpc.WithInsecure())
		}
		exp, err := otlptracegrpc.New(ctx, expOpts...)
		if err != nil {
			return fmt.Errorf("create trace exporter: %w", err)
		}
		opts = append(opts, sdktrace.WithBatcher(exp))
	}

	p.tracerProvider = sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(p.tracerProvider)
	p.tracer = p.tracerProvider.Tracer("eipreaper")

	return nil
}

func (p *Provider) setupMetrics(ctx context.Context, cfg config.OTELFile, res *sdkresource.Resource) error {
	promReader, err := promexporter.New()
	if err != nil {
		return fmt.Errorf("create prometheus exporter: %w", err)
	}

	opts := []sdkmetric.Option{
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(promReader),
	}

	if cfg.Endpoint != "" {
		expOpts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithEndpoint(cfg.Endpoint)}
		if cfg.Insecure {
			expOpts = append(expOpts, otlpmetricgrpc.WithInsecure())
		}
		exp, err := otlpmetricgrpc.New(ctx, expOpts...)
		if err != nil {
			return fmt.Errorf("create metric exporter: %w", err)
		}
		opts = append(opts, sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp)))
	}

	p.meterProvider = sdkmetric.NewMeterProvider(opts...)
	otel.SetMeterProvider(p.meterProvider)
	p.meter = p.meterProvider.Meter("eipreaper")

	return nil
}

func (p *Provider) initInstruments() error {
	var err error

	p.runs, err = p.meter.Int64Counter(
		"eipreaper_runs_total",
		metric.WithDescription("Total reconciliation runs"),
	)
	if err != nil {
		return fmt.Errorf("create runs counter: %w", err)
	}

	p.runDuration, err = p.meter.Float64Histogram(
		"eipreaper_run_duration_seconds",
		metric.WithDescription("Duration of reconciliation runs"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return fmt.Errorf("create run_duration histogram: %w", err)
	}

	p.dispositions, err = p.meter.Int64Counter(
		"eipreaper_dispositions_total",
		metric.WithDescription("Per-address dispositions by bucket"),
	)
	if err != nil {
		return fmt.Errorf("create dispositions counter: %w", err)
	}

	return nil
}

// Tracer returns the tracer.
func (p *Provider) Tracer() trace.Tracer { return p.tracer }

// StartRunSpan starts a span covering one reconciliation run.
func (p *Provider) StartRunSpan(ctx context.Context) (context.Context, trace.Span) {
	return p.tracer.Start(ctx, "eipreaper.run")
}

// RecordRun records one completed run and its counters.
func (p *Provider) RecordRun(ctx context.Context, region string, status string, d time.Duration, c types.RunCounters) {
	attrs := metric.WithAttributes(
		attribute.String("cloud.region", region),
		attribute.String("status", status),
	)
	p.runs.Add(ctx, 1, attrs)
	p.runDuration.Record(ctx, d.Seconds(), attrs)

	for bucket, count := range map[string]int64{
		"scanned":             c.Scanned,
		"skipped_not_managed": c.SkippedNotManaged,
		"skipped_protected":   c.SkippedProtected,
		"associated":          c.Associated,
		"would_release":       c.WouldRelease,
		"released":            c.Released,
		"per_resource_errors": c.PerResourceErrors,
	} {
		p.dispositions.Add(ctx, count, metric.WithAttributes(
			attribute.String("cloud.region", region),
			attribute.String("bucket", bucket),
		))
	}
}

// Shutdown flushes and shuts down the providers.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p.tracerProvider != nil {
		if err := p.tracerProvider.Shutdown(ctx); err != nil {
			return fmt.Errorf("shutdown tracer: %w", err)
		}
	}
	if p.meterProvider != nil {
		if err := p.meterProvider.Shutdown(ctx); err != nil {
			return fmt.Errorf("shutdown meter: %w", err)
		}
	}
	return nil
}
