package appconf

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 4000, cfg.Port)
	assert.Equal(t, "development", cfg.EnvName)
	assert.Equal(t, Development, cfg.Env)
	assert.Equal(t, "citybus.db", cfg.DBPath)
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "port: 8080\nenv: production\ndb_path: /var/lib/citybus.db\nosm_file: topology.json\nlog_level: debug\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, Production, cfg.Env)
	assert.Equal(t, "/var/lib/citybus.db", cfg.DBPath)
	assert.Equal(t, "topology.json", cfg.OSMFile)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
}

func TestLoadMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestEnvOverridesBeatFile(t *testing.T) {
	t.Setenv("CITYBUS_PORT", "9090")
	t.Setenv("CITYBUS_ENV", "test")
	t.Setenv("CITYBUS_SCHEDULE_FILE", "schedule.json")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, Test, cfg.Env)
	assert.Equal(t, "schedule.json", cfg.ScheduleFile)
}

func TestEnvFlagToEnvironment(t *testing.T) {
	assert.Equal(t, Production, EnvFlagToEnvironment("production"))
	assert.Equal(t, Test, EnvFlagToEnvironment("test"))
	assert.Equal(t, Development, EnvFlagToEnvironment("development"))
	assert.Equal(t, Development, EnvFlagToEnvironment("staging"))
}
