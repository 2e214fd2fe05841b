package infrastructure

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.28.0"
	"go.opentelemetry.io/otel/trace"

	"censuscli/internal/config"
)

const (
	ServiceName    = "censusprep"
	ServiceVersion = "1.0.0"
	MeterName      = "censuscli"
)

// OTelProviders holds the OpenTelemetry providers of one run
type OTelProviders struct {
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *sdkmetric.MeterProvider
	Tracer         trace.Tracer
	Meter          metric.Meter
	// Registry collects the metrics exported through the prometheus bridge.
	Registry *promclient.Registry
	Logger   *slog.Logger

	traceOut    io.WriteCloser
	metricsFile string
}

// InitializeOTel sets up tracing to a JSON trace file and metrics to a
// Prometheus registry, as enabled in cfg. Disabled signals fall back to the
// global no-op providers.
func InitializeOTel(ctx context.Context, cfg config.TelemetryConfig, runID string, logger *slog.Logger) (*OTelProviders, error) {
	if logger == nil {
		logger = slog.Default()
	}

	logger.InfoContext(ctx, "Initializing OpenTelemetry",
		slog.String("service", ServiceName),
		slog.String("environment", cfg.Environment),
		slog.Bool("tracing_enabled", cfg.EnableTracing),
		slog.Bool("metrics_enabled", cfg.EnableMetrics))

	res, err := createResource(cfg, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	providers := &OTelProviders{Logger: logger}

	if cfg.EnableTracing {
		if err := initializeTracing(cfg, res, providers); err != nil {
			return nil, fmt.Errorf("failed to initialize tracing: %w", err)
		}
	} else {
		providers.Tracer = otel.Tracer(MeterName)
	}

	if cfg.EnableMetrics {
		if err := initializeMetrics(cfg, res, providers); err != nil {
			return nil, fmt.Errorf("failed to initialize metrics: %w", err)
		}
	} else {
		providers.Meter = otel.GetMeterProvider().Meter(MeterName)
	}

	return providers, nil
}

// createResource creates the OpenTelemetry resource
func createResource(cfg config.TelemetryConfig, runID string) (*resource.Resource, error) {
	return resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(ServiceName),
		semconv.ServiceVersion(ServiceVersion),
		semconv.DeploymentEnvironmentName(cfg.Environment),
		attribute.String("census.run_id", runID),
	), nil
}

// initializeTracing writes spans synchronously to the configured trace file
func initializeTracing(cfg config.TelemetryConfig, res *resource.Resource, providers *OTelProviders) error {
	if err := os.MkdirAll(filepath.Dir(cfg.TraceFile), 0755); err != nil {
		return fmt.Errorf("failed to create trace directory: %w", err)
	}
	out, err := os.Create(cfg.TraceFile)
	if err != nil {
		return fmt.Errorf("failed to create trace file: %w", err)
	}

	exporter, err := stdouttrace.New(
		stdouttrace.WithWriter(out),
		stdouttrace.WithPrettyPrint(),
	)
	if err != nil {
		out.Close()
		return fmt.Errorf("failed to create trace exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SampleRatio))),
	)

	providers.TracerProvider = tp
	providers.Tracer = tp.Tracer(MeterName, trace.WithInstrumentationVersion(ServiceVersion))
	providers.traceOut = out
	otel.SetTracerProvider(tp)

	providers.Logger.Info("Tracing initialized",
		slog.String("trace_file", cfg.TraceFile),
		slog.Float64("sample_ratio", cfg.SampleRatio))
	return nil
}

// initializeMetrics bridges OpenTelemetry instruments into a private
// Prometheus registry that is written out as a textfile on shutdown
func initializeMetrics(cfg config.TelemetryConfig, res *resource.Resource, providers *OTelProviders) error {
	registry := promclient.NewRegistry()

	exporter, err := otelprom.New(
		otelprom.WithRegisterer(registry),
		otelprom.WithoutTargetInfo(),
	)
	if err != nil {
		return fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
	)

	providers.MeterProvider = mp
	providers.Meter = mp.Meter(MeterName, metric.WithInstrumentationVersion(ServiceVersion))
	providers.Registry = registry
	providers.metricsFile = cfg.MetricsFile
	otel.SetMeterProvider(mp)

	providers.Logger.Info("Metrics initialized",
		slog.String("metrics_file", cfg.MetricsFile))
	return nil
}

// WriteMetrics writes the current metric values in the Prometheus text
// format to path
func (p *OTelProviders) WriteMetrics(path string) error {
	if p.Registry == nil {
		return fmt.Errorf("metrics are not enabled")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create metrics directory: %w", err)
	}
	return promclient.WriteToTextfile(path, p.Registry)
}

// Shutdown flushes spans, writes the metrics textfile and shuts down the
// providers
func (p *OTelProviders) Shutdown(ctx context.Context) error {
	var errs []error

	if p.TracerProvider != nil {
		if err := p.TracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer provider shutdown: %w", err))
		}
	}
	if p.traceOut != nil {
		if err := p.traceOut.Close(); err != nil {
			errs = append(errs, fmt.Errorf("trace file close: %w", err))
		}
	}

	if p.MeterProvider != nil {
		if p.metricsFile != "" {
			if err := p.WriteMetrics(p.metricsFile); err != nil {
				errs = append(errs, fmt.Errorf("metrics textfile: %w", err))
			}
		}
		if err := p.MeterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter provider shutdown: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("opentelemetry shutdown errors: %v", errs)
	}

	p.Logger.InfoContext(ctx, "OpenTelemetry shutdown complete")
	return nil
}

// PipelineMetrics holds the instruments recorded while loading and preparing
// the census table
type PipelineMetrics struct {
	RowsLoaded        metric.Int64Counter
	SentinelsReplaced metric.Int64Counter
	LookupMisses      metric.Int64Counter
	CoercedIncomes    metric.Int64Counter
	StepDuration      metric.Float64Histogram
}

// CreatePipelineMetrics creates the pipeline instruments on meter
func CreatePipelineMetrics(meter metric.Meter) (*PipelineMetrics, error) {
	rowsLoaded, err := meter.Int64Counter(
		"census_rows_loaded",
		metric.WithDescription("Total number of data records loaded"),
	)
	if err != nil {
		return nil, err
	}

	sentinels, err := meter.Int64Counter(
		"census_sentinels_replaced",
		metric.WithDescription("Total number of '?' values replaced with absent values"),
	)
	if err != nil {
		return nil, err
	}

	misses, err := meter.Int64Counter(
		"census_lookup_misses",
		metric.WithDescription("Total number of rows a derived column could not group"),
	)
	if err != nil {
		return nil, err
	}

	coerced, err := meter.Int64Counter(
		"census_incomes_coerced",
		metric.WithDescription("Total number of out-of-domain income labels coerced to absent"),
	)
	if err != nil {
		return nil, err
	}

	stepDuration, err := meter.Float64Histogram(
		"census_step_duration_seconds",
		metric.WithDescription("Preparation step duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &PipelineMetrics{
		RowsLoaded:        rowsLoaded,
		SentinelsReplaced: sentinels,
		LookupMisses:      misses,
		CoercedIncomes:    coerced,
		StepDuration:      stepDuration,
	}, nil
}

// RecordRowsLoaded adds n loaded rows
func (m *PipelineMetrics) RecordRowsLoaded(ctx context.Context, n int) {
	if m == nil {
		return
	}
	m.RowsLoaded.Add(ctx, int64(n))
}

// RecordSentinels adds n replaced sentinels for column
func (m *PipelineMetrics) RecordSentinels(ctx context.Context, column string, n int) {
	if m == nil {
		return
	}
	m.SentinelsReplaced.Add(ctx, int64(n), metric.WithAttributes(attribute.String("column", column)))
}

// RecordLookupMisses adds n ungrouped rows for the derived column
func (m *PipelineMetrics) RecordLookupMisses(ctx context.Context, column string, n int) {
	if m == nil {
		return
	}
	m.LookupMisses.Add(ctx, int64(n), metric.WithAttributes(attribute.String("column", column)))
}

// RecordCoercedIncomes adds n coerced income labels
func (m *PipelineMetrics) RecordCoercedIncomes(ctx context.Context, n int) {
	if m == nil {
		return
	}
	m.CoercedIncomes.Add(ctx, int64(n))
}

// RecordStep records the duration and outcome of one preparation step
func (m *PipelineMetrics) RecordStep(ctx context.Context, step string, d time.Duration, success bool) {
	if m == nil {
		return
	}
	status := "success"
	if !success {
		status = "failure"
	}
	m.StepDuration.Record(ctx, d.Seconds(), metric.WithAttributes(
		attribute.String("step", step),
		attribute.String("status", status),
	))
}
