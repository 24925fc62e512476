// Package config provides configuration management for the tripprep
// CLI. Values are merged from defaults, a tripprep.yaml file, TRIPPREP_*
// environment variables, and command-line flags, in increasing
// precedence.
package config

// Config holds all CLI configuration options.
type Config struct {
	// Database is the path to the SQLite trips database.
	Database string `koanf:"database" yaml:"database"`
	// Limit caps the number of trip rows loaded; zero loads all.
	Limit int `koanf:"limit" yaml:"limit"`

	// TargetColumn is the label column separated before splitting.
	TargetColumn string `koanf:"target_column" yaml:"target_column"`
	// TestFraction is the proportion of rows assigned to the test
	// partition.
	TestFraction float64 `koanf:"test_fraction" yaml:"test_fraction"`
	// Seed fixes the shuffle; negative means non-deterministic.
	Seed int64 `koanf:"seed" yaml:"seed"`

	// MissingStrategy is one of mean, median, most_frequent,
	// constant, drop.
	MissingStrategy string `koanf:"missing_strategy" yaml:"missing_strategy"`
	// FillConstant is the value used with the constant strategy.
	FillConstant float64 `koanf:"fill_constant" yaml:"fill_constant"`
	// OutlierThreshold is the absolute z-score above which training
	// rows are removed; zero disables removal.
	OutlierThreshold float64 `koanf:"outlier_threshold" yaml:"outlier_threshold"`

	Verbose bool `koanf:"verbose" yaml:"verbose"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Database:         "trips.db",
		Limit:            0,
		TargetColumn:     "fare_amount",
		TestFraction:     0.2,
		Seed:             -1,
		MissingStrategy:  "drop",
		FillConstant:     0,
		OutlierThreshold: 4,
		Verbose:          false,
	}
}
