package metrics

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

// Recorder is the narrow surface the rest of the bot records through.
// *MetricExporter satisfies it.
type Recorder interface {
	RecordCounter(ctx context.Context, name, description, unit string, value int64, attributes map[string]string) error
	RecordHistogram(ctx context.Context, name, description, unit string, value float64, attributes map[string]string) error
}

// MetricExporter pushes counters and histograms to an OTLP collector.
type MetricExporter struct {
	meterProvider    *sdkmetric.MeterProvider
	meter            metric.Meter
	resource         *resource.Resource
	reader           sdkmetric.Reader
	serviceName      string
	serviceNamespace string
	serviceVersion   string
	otlpEndpoint     string
	otlpGRPCEndpoint string
	environment      string
	exportInterval   time.Duration

	mu         sync.Mutex
	counters   map[string]metric.Int64Counter
	histograms map[string]metric.Float64Histogram
}

// Option is a function that configures a MetricExporter
type Option func(*MetricExporter)

func WithServiceName(name string) Option {
	return func(mc *MetricExporter) {
		mc.serviceName = name
	}
}

func WithServiceNamespace(namespace string) Option {
	return func(mc *MetricExporter) {
		mc.serviceNamespace = namespace
	}
}

func WithServiceVersion(version string) Option {
	return func(mc *MetricExporter) {
		mc.serviceVersion = version
	}
}

// WithOTLPEndpoint sets the OTLP HTTP endpoint
func WithOTLPEndpoint(endpoint string) Option {
	return func(mc *MetricExporter) {
		mc.otlpEndpoint = endpoint
	}
}

// WithOTLPGRPCEndpoint sets the OTLP gRPC endpoint. It wins over HTTP.
func WithOTLPGRPCEndpoint(endpoint string) Option {
	return func(mc *MetricExporter) {
		mc.otlpGRPCEndpoint = endpoint
	}
}

func WithEnvironment(env string) Option {
	return func(mc *MetricExporter) {
		mc.environment = env
	}
}

func WithExportInterval(interval time.Duration) Option {
	return func(mc *MetricExporter) {
		if interval > 0 {
			mc.exportInterval = interval
		}
	}
}

// WithReader replaces the OTLP pipeline with the given reader.
// No exporter is built and no endpoint is required.
func WithReader(reader sdkmetric.Reader) Option {
	return func(mc *MetricExporter) {
		mc.reader = reader
	}
}

func defaultConfig() *MetricExporter {
	return &MetricExporter{
		serviceName:      "xe-bot",
		serviceNamespace: "default",
		serviceVersion:   "1.0.0",
		otlpEndpoint:     "localhost:4318",
		otlpGRPCEndpoint: "",
		environment:      "development",
		exportInterval:   10 * time.Second,
		counters:         map[string]metric.Int64Counter{},
		histograms:       map[string]metric.Float64Histogram{},
	}
}

// NewMetricExporter creates a new metric exporter instance
func NewMetricExporter(opts ...Option) (*MetricExporter, func(), error) {
	mc := defaultConfig()
	for _, opt := range opts {
		opt(mc)
	}

	if mc.reader == nil && mc.otlpGRPCEndpoint == "" && mc.otlpEndpoint == "" {
		return nil, nil, fmt.Errorf("OTLP HTTP endpoint is required when gRPC endpoint is not configured")
	}

	res, err := resource.New(context.Background(),
		resource.WithAttributes(
			semconv.ServiceName(mc.serviceName),
			semconv.ServiceNamespace(mc.serviceNamespace),
			semconv.ServiceVersion(mc.serviceVersion),
			semconv.DeploymentEnvironment(mc.environment),
		),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create resource: %w", err)
	}

	reader := mc.reader
	if reader == nil {
		exporter, err := mc.newExporter()
		if err != nil {
			return nil, nil, err
		}
		reader = sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(mc.exportInterval))
	}

	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(reader),
	)
	otel.SetMeterProvider(meterProvider)

	mc.meterProvider = meterProvider
	mc.meter = meterProvider.Meter(mc.serviceName)
	mc.resource = res

	return mc, func() {
		_ = mc.meterProvider.Shutdown(context.Background())
	}, nil
}

func (mc *MetricExporter) newExporter() (sdkmetric.Exporter, error) {
	if mc.otlpGRPCEndpoint != "" {
		exporter, err := otlpmetricgrpc.New(context.Background(),
			otlpmetricgrpc.WithEndpoint(mc.otlpGRPCEndpoint),
			otlpmetricgrpc.WithInsecure(),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create OTLP gRPC exporter: %w", err)
		}
		return exporter, nil
	}

	exporter, err := otlpmetrichttp.New(context.Background(),
		otlpmetrichttp.WithEndpoint(mc.otlpEndpoint),
		otlpmetrichttp.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP HTTP exporter: %w", err)
	}
	return exporter, nil
}

// Close gracefully shuts down the metric exporter
func (mc *MetricExporter) Close(ctx context.Context) error {
	return mc.meterProvider.Shutdown(ctx)
}

// RecordCounter adds value to the named counter, creating it on first use.
func (mc *MetricExporter) RecordCounter(ctx context.Context, name, description, unit string, value int64, attributes map[string]string) error {
	counter, err := instrument(&mc.mu, mc.counters, name, func() (metric.Int64Counter, error) {
		return mc.meter.Int64Counter(name, metric.WithDescription(description), metric.WithUnit(unit))
	})
	if err != nil {
		return fmt.Errorf("counter %s: %w", name, err)
	}
	counter.Add(ctx, value, metric.WithAttributes(toAttributes(attributes)...))
	return nil
}

// RecordHistogram records value on the named histogram, creating it on first use.
func (mc *MetricExporter) RecordHistogram(ctx context.Context, name, description, unit string, value float64, attributes map[string]string) error {
	histogram, err := instrument(&mc.mu, mc.histograms, name, func() (metric.Float64Histogram, error) {
		return mc.meter.Float64Histogram(name, metric.WithDescription(description), metric.WithUnit(unit))
	})
	if err != nil {
		return fmt.Errorf("histogram %s: %w", name, err)
	}
	histogram.Record(ctx, value, metric.WithAttributes(toAttributes(attributes)...))
	return nil
}

// instrument returns the cached instrument for name or creates and caches it.
func instrument[T any](mu *sync.Mutex, cache map[string]T, name string, create func() (T, error)) (T, error) {
	mu.Lock()
	defer mu.Unlock()

	if inst, ok := cache[name]; ok {
		return inst, nil
	}
	inst, err := create()
	if err != nil {
		return inst, err
	}
	cache[name] = inst
	return inst, nil
}

func toAttributes(attributes map[string]string) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, len(attributes))
	for k, v := range attributes {
		attrs = append(attrs, attribute.String(k, v))
	}
	return attrs
}
