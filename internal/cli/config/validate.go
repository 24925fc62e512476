package config

import "fmt"

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Database == "" {
		return fmt.Errorf("database is required")
	}
	if c.TargetColumn == "" {
		return fmt.Errorf("target_column is required")
	}
	if c.TestFraction <= 0 || c.TestFraction >= 1 {
		return fmt.Errorf("test_fraction must be strictly between 0 and 1, got %v", c.TestFraction)
	}
	switch c.MissingStrategy {
	case "mean", "median", "most_frequent", "constant", "drop":
	default:
		return fmt.Errorf("unknown missing_strategy %q", c.MissingStrategy)
	}
	return nil
}
