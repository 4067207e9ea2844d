package app

import (
	"os"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
)

// Config holds the complete application configuration, loadable from
// environment variables (CATALOG_ prefix), flags, or YAML config files.
type Config struct {
	Addr     string `default:"0.0.0.0:8080" usage:"API server listen address"`
	Upstream UpstreamConfig
	Catalog  CatalogConfig
	CORS     CORSConfig
	Graceful GracefulConfig
}

// UpstreamConfig controls the connection to the third-party catalog API.
type UpstreamConfig struct {
	BaseURL  string        `default:"https://dummyjson.com" usage:"Base URL of the upstream catalog API" flag:"upstream-base-url"`
	Timeout  time.Duration `default:"10s" usage:"Per-request timeout for upstream fetches" flag:"upstream-timeout"`
	PageSize int           `default:"100" usage:"Page size for upstream bulk fetches" flag:"upstream-page-size"`
}

// CatalogConfig controls the query pipeline and insight aggregation defaults.
type CatalogConfig struct {
	DefaultPageSize   int `default:"20" usage:"Listing page size when none is requested" flag:"default-page-size"`
	LowStockThreshold int `default:"10" usage:"Stock strictly below this counts as low" flag:"low-stock-threshold"`
	TopRatedCount     int `default:"5"  usage:"Number of products in the top-rated insight" flag:"top-rated-count"`
}

// CORSConfig controls Cross-Origin Resource Sharing headers.
type CORSConfig struct {
	Origins []string `default:"*" usage:"Allowed CORS origins"`
	MaxAge  int      `default:"86400" usage:"Preflight cache lifetime in seconds" flag:"cors-max-age"`
}

// GracefulConfig controls graceful shutdown timing.
type GracefulConfig struct {
	ReadinessDelay  time.Duration `default:"3s"  usage:"Delay after readiness=false before shutdown" flag:"readiness-delay"`
	ShutdownTimeout time.Duration `default:"15s" usage:"Maximum shutdown duration" flag:"shutdown-timeout"`
}

// LoadConfig loads configuration from environment variables, YAML config
// files, and applies platform-specific defaults.
func LoadConfig() (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "CATALOG",
		Files:     []string{"config.yaml", "/etc/catalog-gateway/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	cfg.applyPlatformDefaults()

	if cfg.Upstream.BaseURL == "" {
		return nil, errors.New("upstream base URL is required: set CATALOG_UPSTREAM_BASE_URL")
	}

	return &cfg, nil
}

// applyPlatformDefaults maps platform-provided environment variables
// (Railway, Render, etc.) that use standard names like PORT onto the
// CATALOG_-prefixed configuration.
func (c *Config) applyPlatformDefaults() {
	if port := os.Getenv("PORT"); port != "" && c.Addr == "0.0.0.0:8080" {
		c.Addr = "0.0.0.0:" + port
	}
}
