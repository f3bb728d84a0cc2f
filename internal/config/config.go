package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "cbpmetrics/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server" envconfig:"SERVER"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Analysis  AnalysisConfig  `yaml:"analysis" envconfig:"ANALYSIS"`
	Export    ExportConfig    `yaml:"export" envconfig:"EXPORT"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
	RateLimit RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string        `yaml:"host" envconfig:"HOST"`
	Port            int           `yaml:"port" envconfig:"PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
	RequestTimeout  time.Duration `yaml:"request_timeout" envconfig:"REQUEST_TIMEOUT"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes" envconfig:"MAX_BODY_BYTES"`
}

// Addr returns the listen address
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level       string `yaml:"level" envconfig:"LEVEL"`
	Output      string `yaml:"output" envconfig:"OUTPUT"`
	FilePath    string `yaml:"file_path" envconfig:"FILE_PATH"`
	Development bool   `yaml:"development" envconfig:"DEVELOPMENT"`
}

// AnalysisConfig describes the layout of CBP extracts and how they are analysed
type AnalysisConfig struct {
	TotalCode       string `yaml:"total_code" envconfig:"TOTAL_CODE"`
	ValueColumn     string `yaml:"value_column" envconfig:"VALUE_COLUMN"`
	IndustryColumn  string `yaml:"industry_column" envconfig:"INDUSTRY_COLUMN"`
	GeographyColumn string `yaml:"geography_column" envconfig:"GEOGRAPHY_COLUMN"`
	IndustryLevel   string `yaml:"industry_level" envconfig:"INDUSTRY_LEVEL"`
	MaxConcurrency  int    `yaml:"max_concurrency" envconfig:"MAX_CONCURRENCY"`
}

// ExportConfig controls report files
type ExportConfig struct {
	Dir      string `yaml:"dir" envconfig:"DIR"`
	WriteBOM bool   `yaml:"write_bom" envconfig:"WRITE_BOM"`
	XLSX     bool   `yaml:"xlsx" envconfig:"XLSX"`
}

// TelemetryConfig contains OpenTelemetry configuration
type TelemetryConfig struct {
	ServiceName    string  `yaml:"service_name" envconfig:"SERVICE_NAME"`
	Environment    string  `yaml:"environment" envconfig:"ENVIRONMENT"`
	TraceExporter  string  `yaml:"trace_exporter" envconfig:"TRACE_EXPORTER"`
	MetricExporter string  `yaml:"metric_exporter" envconfig:"METRIC_EXPORTER"`
	SampleRatio    float64 `yaml:"sample_ratio" envconfig:"SAMPLE_RATIO"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED"`
	RPS     float64 `yaml:"rps" envconfig:"RPS"`
	Burst   int     `yaml:"burst" envconfig:"BURST"`
}

// Load loads the configuration from defaults, the first config file found and
// the environment.
func Load() (*Config, error) {
	return LoadFile(getConfigFilePath())
}

// LoadFile is Load with an explicit config file. An empty path skips the file.
func LoadFile(path string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := Default()

	if path != "" {
		if err := loadFromFile(path, cfg); err != nil {
			return nil, apperrors.NewConfigError(fmt.Sprintf("failed to load config from %s", path), err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, apperrors.NewConfigError("failed to load config from env", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, apperrors.NewConfigError("config validation failed", err)
	}

	return cfg, nil
}

// loadFromFile overlays the YAML file onto cfg
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// validate validates the configuration
func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server read and write timeouts must be positive")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("server max body bytes must be positive")
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log level: %q", c.Logging.Level)
	}
	switch c.Logging.Output {
	case "console", "file", "both":
	default:
		return fmt.Errorf("invalid log output: %q", c.Logging.Output)
	}
	if c.Logging.Output != "console" && c.Logging.FilePath == "" {
		return fmt.Errorf("log file path required for output %q", c.Logging.Output)
	}

	a := c.Analysis
	if a.TotalCode == "" {
		return fmt.Errorf("analysis total code must not be empty")
	}
	if a.ValueColumn == "" || a.IndustryColumn == "" || a.GeographyColumn == "" {
		return fmt.Errorf("analysis column names must not be empty")
	}
	switch a.IndustryLevel {
	case LevelAll, LevelTwoDigit, LevelThreeDigit:
	default:
		return fmt.Errorf("invalid industry level: %q", a.IndustryLevel)
	}
	if a.MaxConcurrency < 1 {
		return fmt.Errorf("analysis max concurrency must be at least 1, got %d", a.MaxConcurrency)
	}

	switch c.Telemetry.TraceExporter {
	case "stdout", "none":
	default:
		return fmt.Errorf("unsupported trace exporter: %q", c.Telemetry.TraceExporter)
	}
	switch c.Telemetry.MetricExporter {
	case "prometheus", "none":
	default:
		return fmt.Errorf("unsupported metric exporter: %q", c.Telemetry.MetricExporter)
	}
	if c.Telemetry.SampleRatio < 0 || c.Telemetry.SampleRatio > 1 {
		return fmt.Errorf("sample ratio must be within [0, 1], got %v", c.Telemetry.SampleRatio)
	}

	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("rate limit rps and burst must be positive when enabled")
	}
	return nil
}

// getConfigFilePath returns the config file to use, or "" when there is none
func getConfigFilePath() string {
	if path := os.Getenv(EnvPrefix + "_CONFIG_FILE"); path != "" {
		return path
	}

	for _, location := range []string{"config.yaml", "configs/config.yaml"} {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}
	return ""
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            DefaultPort,
			ReadTimeout:     DefaultReadTimeout,
			WriteTimeout:    DefaultWriteTimeout,
			IdleTimeout:     DefaultIdleTimeout,
			ShutdownTimeout: DefaultShutdownTimeout,
			RequestTimeout:  DefaultRequestTimeout,
			MaxBodyBytes:    DefaultMaxBodyBytes,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Output:   "console",
			FilePath: "logs/app.log",
		},
		Analysis: AnalysisConfig{
			TotalCode:       DefaultTotalCode,
			ValueColumn:     DefaultValueColumn,
			IndustryColumn:  DefaultIndustryColumn,
			GeographyColumn: DefaultGeographyColumn,
			IndustryLevel:   LevelAll,
			MaxConcurrency:  DefaultMaxConcurrency,
		},
		Export: ExportConfig{
			Dir:      DefaultReportsDir,
			WriteBOM: true,
			XLSX:     true,
		},
		Telemetry: TelemetryConfig{
			ServiceName:    AppName,
			Environment:    "development",
			TraceExporter:  "none",
			MetricExporter: "prometheus",
			SampleRatio:    1.0,
		},
		RateLimit: RateLimitConfig{
			Enabled: true,
			RPS:     100,
			Burst:   50,
		},
	}
}
