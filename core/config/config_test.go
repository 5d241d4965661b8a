package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streaminghub/catalog/core/config"
)

type cachedConfig struct {
	Name  string   `env:"CONFIG_TEST_CACHED_NAME" envDefault:"catalog"`
	Roots []string `env:"CONFIG_TEST_CACHED_ROOTS" envSeparator:","`
}

type requiredConfig struct {
	URL string `env:"CONFIG_TEST_REQUIRED_URL,required"`
}

type parsedConfig struct {
	Port int `env:"CONFIG_TEST_PARSED_PORT" envDefault:"3000"`
}

func TestLoad(t *testing.T) {
	t.Setenv("CONFIG_TEST_CACHED_NAME", "first")
	t.Setenv("CONFIG_TEST_CACHED_ROOTS", ".,./public")

	var cfg cachedConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "first", cfg.Name)
	assert.Equal(t, []string{".", "./public"}, cfg.Roots)

	t.Setenv("CONFIG_TEST_CACHED_NAME", "second")
	var again cachedConfig
	require.NoError(t, config.Load(&again))
	assert.Equal(t, "first", again.Name, "second load must come from the cache")

	config.Reset()
	var reloaded cachedConfig
	require.NoError(t, config.Load(&reloaded))
	assert.Equal(t, "second", reloaded.Name)
}

func TestLoadRequiredMissing(t *testing.T) {
	var cfg requiredConfig
	err := config.Load(&cfg)
	require.Error(t, err)

	assert.Panics(t, func() { config.MustLoad(&cfg) })
}

func TestLoadRejectsNonStruct(t *testing.T) {
	var n int
	assert.ErrorIs(t, config.Load(&n), config.ErrNotStructPointer)

	var nilCfg *cachedConfig
	assert.ErrorIs(t, config.Load(nilCfg), config.ErrNotStructPointer)
}

func TestParse(t *testing.T) {
	t.Setenv("CONFIG_TEST_PARSED_PORT", "8081")

	var cfg parsedConfig
	require.NoError(t, config.Parse(&cfg))
	assert.Equal(t, 8081, cfg.Port)
}

func TestLoadYAML(t *testing.T) {
	t.Parallel()

	type layout struct {
		Roots     []string `yaml:"roots"`
		Protected struct {
			Prefix string `yaml:"prefix"`
		} `yaml:"protected"`
	}

	dir := t.TempDir()

	t.Run("decodes", func(t *testing.T) {
		t.Parallel()
		p := filepath.Join(dir, "ok.yaml")
		require.NoError(t, os.WriteFile(p, []byte("roots: [., ./public]\nprotected:\n  prefix: /_hidden\n"), 0o644))

		var l layout
		require.NoError(t, config.LoadYAML(p, &l))
		assert.Equal(t, []string{".", "./public"}, l.Roots)
		assert.Equal(t, "/_hidden", l.Protected.Prefix)
	})

	t.Run("unknown_key", func(t *testing.T) {
		t.Parallel()
		p := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(p, []byte("rootz: [.]\n"), 0o644))

		var l layout
		assert.Error(t, config.LoadYAML(p, &l))
	})

	t.Run("missing_file", func(t *testing.T) {
		t.Parallel()
		var l layout
		assert.Error(t, config.LoadYAML(filepath.Join(dir, "nope.yaml"), &l))
	})
}
