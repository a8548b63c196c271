package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Agriflow AgriflowConfig `yaml:"agriflow"`
	Source   SourceConfig   `yaml:"source"`
	Engine   EngineConfig   `yaml:"engine"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type AgriflowConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

type SourceConfig struct {
	Kamis KamisSourceConfig `yaml:"kamis"`
}

// KamisSourceConfig describes the upstream quote endpoint. CertKey and
// CertID are credentials issued by the provider; they are always taken
// from the environment when set there.
type KamisSourceConfig struct {
	URL               string `yaml:"url"`
	CertKey           string `yaml:"cert_key"`
	CertID            string `yaml:"cert_id"`
	RowsPerPage       int    `yaml:"rows_per_page"`
	MaxPages          int    `yaml:"max_pages"`
	TimeoutMs         int    `yaml:"timeout_ms"`
	RequestsPerSecond int    `yaml:"requests_per_second"`
	BurstSize         int    `yaml:"burst_size"`
}

// RequestTimeout converts the configured per-request timeout.
func (k KamisSourceConfig) RequestTimeout() time.Duration {
	return time.Duration(k.TimeoutMs) * time.Millisecond
}

// EngineConfig carries the normalization tables. Every table has a
// compiled-in default (tables.go); a yaml entry overrides its key only,
// the other defaults stay in place.
type EngineConfig struct {
	Timezone           string              `yaml:"timezone"`
	HighPriceThreshold int                 `yaml:"high_price_threshold"`
	GradeAware         bool                `yaml:"grade_aware"`
	FieldCandidates    map[string][]string `yaml:"field_candidates"`
	RegionKeywords     map[string][]string `yaml:"region_keywords"`
	CountSoldKeywords  []string            `yaml:"count_sold_keywords"`
}

type MetricsConfig struct {
	CloudWatch bool   `yaml:"cloudwatch"`
	Region     string `yaml:"region"`
	Namespace  string `yaml:"namespace"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
	MaxAge int    `yaml:"max_age"`
}

// LoadConfig reads and validates the yaml configuration file. A missing
// provider credential is the only error class that is allowed to stop
// the engine from starting; everything downstream degrades per call.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := defaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if v := os.Getenv("KAMIS_CERT_KEY"); v != "" {
		config.Source.Kamis.CertKey = strings.TrimSpace(v)
	}
	if v := os.Getenv("KAMIS_CERT_ID"); v != "" {
		config.Source.Kamis.CertID = strings.TrimSpace(v)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

func defaultConfig() *Config {
	return &Config{
		Agriflow: AgriflowConfig{Name: "agriflow"},
		Source: SourceConfig{
			Kamis: KamisSourceConfig{
				RowsPerPage:       100,
				MaxPages:          5,
				TimeoutMs:         10000,
				RequestsPerSecond: 5,
				BurstSize:         1,
			},
		},
		Engine: EngineConfig{
			Timezone:           "Asia/Seoul",
			HighPriceThreshold: DefaultHighPriceThreshold,
			GradeAware:         true,
			FieldCandidates:    DefaultFieldCandidates(),
			RegionKeywords:     DefaultRegionKeywords(),
			CountSoldKeywords:  DefaultCountSoldKeywords(),
		},
		Logging: LoggingConfig{Level: "info", Format: "json", Output: "stdout"},
	}
}

func validateConfig(cfg *Config) error {
	src := &cfg.Source.Kamis
	if src.URL == "" {
		return fmt.Errorf("source.kamis.url is required")
	}
	if parsed, err := url.Parse(src.URL); err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("source.kamis.url %q is not an absolute URL", src.URL)
	}
	if src.CertKey == "" && IsProductionLike(AppEnvironment()) {
		return fmt.Errorf("source.kamis.cert_key is required (set KAMIS_CERT_KEY)")
	}
	if src.RowsPerPage <= 0 {
		return fmt.Errorf("source.kamis.rows_per_page must be positive")
	}
	if src.MaxPages <= 0 {
		return fmt.Errorf("source.kamis.max_pages must be positive")
	}
	if src.TimeoutMs <= 0 {
		return fmt.Errorf("source.kamis.timeout_ms must be positive")
	}
	if cfg.Engine.HighPriceThreshold <= 0 {
		return fmt.Errorf("engine.high_price_threshold must be positive")
	}
	if _, err := time.LoadLocation(cfg.Engine.Timezone); err != nil {
		return fmt.Errorf("engine.timezone %q: %w", cfg.Engine.Timezone, err)
	}
	for field := range cfg.Engine.FieldCandidates {
		if !isCanonicalField(field) {
			return fmt.Errorf("engine.field_candidates has unknown field %q", field)
		}
	}
	return nil
}

// Location resolves the configured timezone. Validation already proved
// it loads.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Engine.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
