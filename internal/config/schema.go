// Package config provides configuration loading and validation for giscleanup.
// It supports TOML configuration files with environment variable expansion,
// default values, and validation.
//
// Configuration structure:
//   - [portal]: Portal URL and credentials for the GIS organization
//   - [thresholds]: Year counts for the unviewed/inactive/unmodified cutoffs
//   - [limits]: Result caps for user and content searches
//   - [output]: Directory for generated CSV and report artifacts
//   - [logging]: Logging level, format, and output
//
// Environment variables can be referenced using ${VAR} or ${VAR:default}
// syntax. For example: password = "${PORTAL_PASSWORD}"
package config

// Config represents the main application configuration.
type Config struct {
	Portal     PortalConfig     `toml:"portal"`
	Thresholds ThresholdsConfig `toml:"thresholds"`
	Limits     LimitsConfig     `toml:"limits"`
	Output     OutputConfig     `toml:"output"`
	Logging    LoggingConfig    `toml:"logging"`
}

// PortalConfig describes the connection to the GIS portal.
type PortalConfig struct {
	URL            string `toml:"url"`
	Username       string `toml:"username"`
	Password       string `toml:"password"`
	Token          string `toml:"token"` // pre-issued token, skips generateToken
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// ThresholdsConfig holds the three year counts the cutoffs are derived from.
type ThresholdsConfig struct {
	YearsUnviewed   int `toml:"years_unviewed"`
	YearsInactive   int `toml:"years_inactive"`
	YearsUnmodified int `toml:"years_unmodified"`
}

// LimitsConfig caps the size of a single directory or content fetch.
// Defaults reproduce the original bounded run (1000 users, 100 items).
type LimitsConfig struct {
	MaxUsers        int `toml:"max_users"`
	MaxItemsPerUser int `toml:"max_items_per_user"`
}

// OutputConfig controls where run artifacts are written.
type OutputConfig struct {
	Dir string `toml:"dir"`
}

// LoggingConfig controls the logger.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	Output string `toml:"output"`
}
