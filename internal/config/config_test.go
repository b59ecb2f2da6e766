package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	flags := Flags()
	require.NoError(t, flags.Parse(nil))

	cfg, err := Load(flags)
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "vocadue.db", cfg.DBPath)
	assert.Equal(t, "UTC", cfg.Timezone)
	assert.Equal(t, "Default", cfg.DefaultScheduleName)
	assert.Equal(t, []int{1, 7, 30, 365}, cfg.DefaultIntervals)
}

func TestLoadFlagsOverride(t *testing.T) {
	flags := Flags()
	require.NoError(t, flags.Parse([]string{
		"--addr", ":9090",
		"--timezone", "Europe/Dublin",
		"--default_intervals", "2,5,13",
	}))

	cfg, err := Load(flags)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "Europe/Dublin", cfg.Timezone)
	assert.Equal(t, []int{2, 5, 13}, cfg.DefaultIntervals)
	assert.Equal(t, "Europe/Dublin", cfg.Location().String())
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("addr: \":7070\"\ndb: /tmp/vocab.db\n"), 0o644))

	flags := Flags()
	require.NoError(t, flags.Parse([]string{"--config", path}))

	cfg, err := Load(flags)
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Addr)
	assert.Equal(t, "/tmp/vocab.db", cfg.DBPath)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("VOCADUE_ADDR", ":6060")

	flags := Flags()
	require.NoError(t, flags.Parse(nil))

	cfg, err := Load(flags)
	require.NoError(t, err)
	assert.Equal(t, ":6060", cfg.Addr)
}

func TestLoadRejectsBadValues(t *testing.T) {
	flags := Flags()
	require.NoError(t, flags.Parse([]string{"--timezone", "Mars/Olympus"}))
	_, err := Load(flags)
	assert.Error(t, err)

	flags = Flags()
	require.NoError(t, flags.Parse([]string{"--default_intervals", "1,0,7"}))
	_, err = Load(flags)
	assert.Error(t, err)
}
