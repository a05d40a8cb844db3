package compilation

import (
	"time"

	"github.com/NilFoundation/solforge/internal/imports"
	"github.com/NilFoundation/solforge/internal/solc"
	"github.com/NilFoundation/solforge/internal/telemetry"
	"github.com/spf13/viper"
)

type Config struct {
	Endpoint           string   `yaml:"endpoint,omitempty"`
	CorsAllowedOrigins []string `yaml:"cors-allowed-origins,omitempty"` //nolint:tagliatelle
	// VirtualHosts limits the accepted Host headers. Empty accepts any host, "*" as well.
	VirtualHosts []string `yaml:"virtual-hosts,omitempty"` //nolint:tagliatelle

	ManifestUrl string `yaml:"manifest-url,omitempty"` //nolint:tagliatelle

	DependencyNamespace string        `yaml:"dependency-namespace,omitempty"` //nolint:tagliatelle
	DependencyVersion   string        `yaml:"dependency-version,omitempty"`   //nolint:tagliatelle
	MirrorUrl           string        `yaml:"mirror-url,omitempty"`           //nolint:tagliatelle
	FetchTimeout        time.Duration `yaml:"fetch-timeout,omitempty"`        //nolint:tagliatelle
	SourceCacheSize     int           `yaml:"source-cache-size,omitempty"`    //nolint:tagliatelle
	// SourceCachePath enables the persistent dependency cache when set.
	SourceCachePath string `yaml:"source-cache-path,omitempty"` //nolint:tagliatelle
	// SourcesDir serves local sources before the mirror is asked.
	SourcesDir string `yaml:"sources-dir,omitempty"` //nolint:tagliatelle

	Telemetry telemetry.Config `yaml:"telemetry,omitempty"`
}

const (
	EndpointDefault     = "127.0.0.1:8531"
	FetchTimeoutDefault = 30 * time.Second
)

func NewDefaultConfig() *Config {
	c := &Config{}
	c.ResetToDefault()
	return c
}

func (c *Config) ResetToDefault() {
	c.Endpoint = EndpointDefault
	c.CorsAllowedOrigins = nil
	c.VirtualHosts = []string{"localhost"}
	c.ManifestUrl = solc.DefaultManifestUrl()
	c.DependencyNamespace = imports.DefaultNamespace
	c.DependencyVersion = imports.DefaultDependencyVersion
	c.MirrorUrl = imports.DefaultMirrorUrl
	c.FetchTimeout = FetchTimeoutDefault
	c.SourceCacheSize = imports.DefaultCacheSize
	c.SourceCachePath = ""
	c.SourcesDir = ""
	c.Telemetry = *telemetry.NewDefaultConfig()
}

// InitFromFile overrides the settings present in the file. On a read failure the defaults are restored.
func (c *Config) InitFromFile(cfgFile string) bool {
	if cfgFile == "" {
		return false
	}
	v := viper.New()
	v.SetConfigFile(cfgFile)
	if err := v.ReadInConfig(); err != nil {
		c.ResetToDefault()
		return false
	}

	setString := func(key string, dst *string) {
		if v.IsSet(key) {
			*dst = v.GetString(key)
		}
	}
	setString("endpoint", &c.Endpoint)
	setString("manifest-url", &c.ManifestUrl)
	setString("dependency-namespace", &c.DependencyNamespace)
	setString("dependency-version", &c.DependencyVersion)
	setString("mirror-url", &c.MirrorUrl)
	setString("source-cache-path", &c.SourceCachePath)
	setString("sources-dir", &c.SourcesDir)
	setString("telemetry.serviceName", &c.Telemetry.ServiceName)
	setString("telemetry.grpcEndpoint", &c.Telemetry.GrpcEndpoint)

	if v.IsSet("cors-allowed-origins") {
		c.CorsAllowedOrigins = v.GetStringSlice("cors-allowed-origins")
	}
	if v.IsSet("virtual-hosts") {
		c.VirtualHosts = v.GetStringSlice("virtual-hosts")
	}
	if v.IsSet("fetch-timeout") {
		c.FetchTimeout = v.GetDuration("fetch-timeout")
	}
	if v.IsSet("source-cache-size") {
		c.SourceCacheSize = v.GetInt("source-cache-size")
	}
	if v.IsSet("telemetry.exportMetrics") {
		c.Telemetry.ExportMetrics = v.GetBool("telemetry.exportMetrics")
	}
	if v.IsSet("telemetry.exportInterval") {
		c.Telemetry.ExportInterval = v.GetDuration("telemetry.exportInterval")
	}
	if v.IsSet("telemetry.prometheusPort") {
		c.Telemetry.PrometheusPort = v.GetInt("telemetry.prometheusPort")
	}
	return true
}
