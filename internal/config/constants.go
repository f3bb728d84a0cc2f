package config

import "time"

// Application info
const (
	AppName    = "cbp-metrics"
	AppVersion = "1.0.0"
	EnvPrefix  = "CBP"
)

// Defaults for County Business Patterns extracts
const (
	DefaultTotalCode       = "00"
	DefaultValueColumn     = "EMP"
	DefaultIndustryColumn  = "NAICS2012"
	DefaultGeographyColumn = "county"
	DefaultMaxConcurrency  = 4
)

// Industry levels accepted by Analysis.IndustryLevel
const (
	LevelAll        = "all"
	LevelTwoDigit   = "two_digit"
	LevelThreeDigit = "three_digit"
)

// Server defaults
const (
	DefaultPort            = 8080
	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 30 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
	DefaultRequestTimeout  = 30 * time.Second
	DefaultMaxBodyBytes    = 10 << 20
)

// Directories relative to the base directory
const (
	DefaultReportsDir = "reports"
)
