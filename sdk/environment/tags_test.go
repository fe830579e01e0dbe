package environment_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jrazmi/tasktracker/sdk/environment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleConfig struct {
	Port     string        `env:"PORT" default:":3000"`
	MaxConns int           `env:"MAX_CONNS" default:"25"`
	Debug    bool          `env:"DEBUG" default:"false"`
	Timeout  time.Duration `env:"TIMEOUT" default:"5s"`
	Origins  []string      `env:"ORIGINS" separator:";"`
	internal string        `env:"INTERNAL"`
	Untagged string
}

func TestParseEnvTags_Defaults(t *testing.T) {
	var cfg sampleConfig
	require.NoError(t, environment.ParseEnvTags("ENVTEST", &cfg))

	assert.Equal(t, ":3000", cfg.Port)
	assert.Equal(t, 25, cfg.MaxConns)
	assert.False(t, cfg.Debug)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Nil(t, cfg.Origins)
	assert.Empty(t, cfg.internal)
}

func TestParseEnvTags_Overrides(t *testing.T) {
	t.Setenv("ENVTEST_PORT", ":9090")
	t.Setenv("ENVTEST_MAX_CONNS", "7")
	t.Setenv("ENVTEST_DEBUG", "true")
	t.Setenv("ENVTEST_TIMEOUT", "250ms")
	t.Setenv("ENVTEST_ORIGINS", "http://a.test; http://b.test;")

	var cfg sampleConfig
	require.NoError(t, environment.ParseEnvTags("ENVTEST", &cfg))

	assert.Equal(t, ":9090", cfg.Port)
	assert.Equal(t, 7, cfg.MaxConns)
	assert.True(t, cfg.Debug)
	assert.Equal(t, 250*time.Millisecond, cfg.Timeout)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Origins)
}

func TestParseEnvTags_Errors(t *testing.T) {
	t.Run("not a pointer", func(t *testing.T) {
		err := environment.ParseEnvTags("", sampleConfig{})
		require.Error(t, err)
	})

	t.Run("bad int", func(t *testing.T) {
		t.Setenv("ENVTEST_MAX_CONNS", "many")
		var cfg sampleConfig
		err := environment.ParseEnvTags("ENVTEST", &cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ENVTEST_MAX_CONNS")
	})

	t.Run("required missing", func(t *testing.T) {
		var cfg struct {
			Key string `env:"SIGNING_KEY" required:"true"`
		}
		err := environment.ParseEnvTags("ENVTEST", &cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ENVTEST_SIGNING_KEY")
	})
}

func TestLoadPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("ENVTEST_FROM_FILE=yes\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("ENVTEST_FROM_FILE") })

	require.NoError(t, environment.LoadPath(path))
	assert.Equal(t, "yes", environment.GetEnvOrDefault("ENVTEST_FROM_FILE", "no"))

	require.NoError(t, environment.LoadPath(filepath.Join(dir, "missing.env")))
}

func TestGetEnvKeyPrefix(t *testing.T) {
	assert.Equal(t, "TASKS_PORT", environment.GetEnvKeyPrefix("TASKS", "PORT"))
	assert.Equal(t, "PORT", environment.GetEnvKeyPrefix("", "PORT"))
}
