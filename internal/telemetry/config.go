package telemetry

import (
	"os"
	"time"
)

const DefaultExportInterval = 10 * time.Second

type Config struct {
	ServiceName string `yaml:"serviceName,omitempty"`

	ExportMetrics  bool          `yaml:"exportMetrics,omitempty"`
	GrpcEndpoint   string        `yaml:"grpcEndpoint,omitempty"`
	ExportInterval time.Duration `yaml:"exportInterval,omitempty"`

	// PrometheusPort enables the /metrics endpoint when non-zero.
	PrometheusPort int `yaml:"prometheusPort,omitempty"`
}

func NewDefaultConfig() *Config {
	return &Config{
		ServiceName:    serviceName(""),
		ExportInterval: DefaultExportInterval,
	}
}

// https://opentelemetry.io/docs/languages/sdk-configuration/general/#otel_service_name
func serviceName(configured string) string {
	if configured != "" {
		return configured
	}
	if name := os.Getenv("OTEL_SERVICE_NAME"); name != "" {
		return name
	}
	return os.Args[0]
}
