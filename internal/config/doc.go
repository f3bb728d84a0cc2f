// Package config loads the configuration of the CBP metrics tools.
//
// # Sources
//
// Values are layered, later sources winning:
//
//	1. Built-in defaults (Default)
//	2. An optional YAML file (config.yaml, configs/config.yaml or CBP_CONFIG_FILE)
//	3. Environment variables, optionally seeded from a .env file
//
// # Environment Variables
//
// Variables use the CBP_ prefix followed by the section and field name:
//
//	CBP_SERVER_PORT=8080
//	CBP_LOGGING_LEVEL=debug
//	CBP_ANALYSIS_TOTAL_CODE=00
//	CBP_ANALYSIS_VALUE_COLUMN=ESTAB
//	CBP_RATE_LIMIT_RPS=20
//
// # Validation
//
// Load rejects out-of-range ports, non-positive timeouts, empty column names and
// unknown enumerations with a CONFIG AppError.
package config
