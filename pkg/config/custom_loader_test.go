package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dmitrymomot/taskkit/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type CustomEnvConfig struct {
	TestString string   `env:"TEST_CUSTOM_STRING"`
	TestInt    int      `env:"TEST_CUSTOM_INT"`
	TestArray  []string `env:"TEST_CUSTOM_ARRAY" envSeparator:","`
}

type ReloadConfig struct {
	Required string `env:"RELOAD_REQUIRED,required"`
}

func writeEnvFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadEnv_CustomPath(t *testing.T) {
	os.Unsetenv("TEST_CUSTOM_STRING")
	os.Unsetenv("TEST_CUSTOM_INT")
	os.Unsetenv("TEST_CUSTOM_ARRAY")
	config.ResetCache()

	path := writeEnvFile(t, ".env.custom",
		"TEST_CUSTOM_STRING=custom_value\nTEST_CUSTOM_INT=1234\nTEST_CUSTOM_ARRAY=item1,item2,item3\n")
	require.NoError(t, config.LoadEnv(path))

	var cfg CustomEnvConfig
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, "custom_value", cfg.TestString)
	assert.Equal(t, 1234, cfg.TestInt)
	assert.Equal(t, []string{"item1", "item2", "item3"}, cfg.TestArray)
}

func TestLoadEnv_MultiplePaths(t *testing.T) {
	os.Unsetenv("TEST_CUSTOM_STRING")
	os.Unsetenv("TEST_CUSTOM_INT")
	os.Unsetenv("TEST_CUSTOM_ARRAY")
	config.ResetCache()

	base := writeEnvFile(t, ".env.base",
		"TEST_CUSTOM_STRING=base_value\nTEST_CUSTOM_INT=1\n")
	override := writeEnvFile(t, ".env.override",
		"TEST_CUSTOM_STRING=override_value\nTEST_CUSTOM_INT=9999\n")

	// Order matters for precedence: later files win.
	require.NoError(t, config.LoadEnv(base, override))

	var cfg CustomEnvConfig
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, "override_value", cfg.TestString)
	assert.Equal(t, 9999, cfg.TestInt)
}

func TestLoadEnv_NonExistentPath(t *testing.T) {
	err := config.LoadEnv(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err, "LoadEnv should return error with non-existent file")
}

func TestMustLoadEnv(t *testing.T) {
	path := writeEnvFile(t, ".env.ok", "MUST_LOAD_VALUE=1\n")

	assert.NotPanics(t, func() {
		config.MustLoadEnv(path)
	}, "MustLoadEnv should not panic with valid file")

	assert.Panics(t, func() {
		config.MustLoadEnv(filepath.Join(t.TempDir(), "missing.env"))
	}, "MustLoadEnv should panic with non-existent file")
}

func TestForceReloadConfig(t *testing.T) {
	os.Unsetenv("RELOAD_REQUIRED")
	config.ResetCache()

	var cfg ReloadConfig
	err := config.Load(&cfg)
	require.Error(t, err, "Load should error when required field is missing")

	t.Setenv("RELOAD_REQUIRED", "required_value")

	// The failed load is not cached, but the type's once already fired, so a
	// plain Load would not retry. ForceReloadConfig parses regardless.
	var reloaded ReloadConfig
	err = config.ForceReloadConfig(&reloaded)
	require.NoError(t, err, "Load should succeed after setting required value")
	assert.Equal(t, "required_value", reloaded.Required)
}
