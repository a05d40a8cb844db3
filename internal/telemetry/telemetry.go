package telemetry

import (
	"context"
	"fmt"

	"github.com/NilFoundation/solforge/common/logging"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

type Meter = metric.Meter

// Init starts the prometheus endpoint and the OTLP metric export configured in config.
// A nil config disables telemetry.
func Init(ctx context.Context, config *Config, logger logging.Logger) error {
	if config == nil {
		return nil
	}

	StartPrometheusServer(ctx, config.PrometheusPort, logger)

	if !config.ExportMetrics {
		return nil
	}

	opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithInsecure()}
	if config.GrpcEndpoint != "" {
		opts = append(opts, otlpmetricgrpc.WithEndpoint(config.GrpcEndpoint))
	}
	exporter, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return fmt.Errorf("failed to initialize exporter: %w", err)
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(semconv.SchemaURL, semconv.ServiceName(serviceName(config.ServiceName))),
	)
	if err != nil {
		return fmt.Errorf("failed to initialize metric provider: %w", err)
	}

	interval := config.ExportInterval
	if interval <= 0 {
		interval = DefaultExportInterval
	}
	otel.SetMeterProvider(sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(interval))),
		sdkmetric.WithResource(res),
	))
	logger.Info().Str(logging.FieldUrl, config.GrpcEndpoint).Msg("Metric export enabled")
	return nil
}

// Shutdown flushes pending metrics if export was initialized.
func Shutdown(ctx context.Context) {
	mp, ok := otel.GetMeterProvider().(*sdkmetric.MeterProvider)
	if !ok {
		return
	}
	_ = mp.Shutdown(context.WithoutCancel(ctx))
}

func NewMeter(name string) Meter {
	return otel.Meter(name)
}
