package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "trips.db", cfg.Database)
	assert.Equal(t, 0.2, cfg.TestFraction)
	assert.Equal(t, "drop", cfg.MissingStrategy)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dir := chdirTemp(t)

	path := filepath.Join(dir, "tripprep.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"database: january.db\ntest_fraction: 0.3\nseed: 42\n"), 0o600))

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "january.db", cfg.Database)
	assert.Equal(t, 0.3, cfg.TestFraction)
	assert.Equal(t, int64(42), cfg.Seed)
	// Untouched keys keep their defaults.
	assert.Equal(t, "fare_amount", cfg.TargetColumn)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tripprep.yaml"),
		[]byte("database: january.db\n"), 0o600))

	t.Setenv("TRIPPREP_DATABASE", "february.db")

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "february.db", cfg.Database)
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	chdirTemp(t)
	t.Setenv("TRIPPREP_DATABASE", "february.db")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("database", "", "")
	flags.Float64("test_fraction", 0, "")
	require.NoError(t, flags.Parse([]string{"--database=march.db", "--test_fraction=0.4"}))

	cfg, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, "march.db", cfg.Database)
	assert.Equal(t, 0.4, cfg.TestFraction)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		wantOK bool
	}{
		{"defaults", func(*Config) {}, true},
		{"empty database", func(c *Config) { c.Database = "" }, false},
		{"empty target", func(c *Config) { c.TargetColumn = "" }, false},
		{"fraction zero", func(c *Config) { c.TestFraction = 0 }, false},
		{"fraction one", func(c *Config) { c.TestFraction = 1 }, false},
		{"bad strategy", func(c *Config) { c.MissingStrategy = "knn" }, false},
		{"constant strategy", func(c *Config) { c.MissingStrategy = "constant" }, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.wantOK {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

// chdirTemp switches the working directory to a temp dir so config
// file discovery is hermetic.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
	return dir
}
