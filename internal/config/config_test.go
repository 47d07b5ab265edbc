package config

import (
	"os"
	"path/filepath"
	"testing"

	aw "github.com/deanishe/awgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFromTOML(t *testing.T) {
	path := writeFile(t, "config.toml", `
timezone = "Europe/Berlin"
day_first = true
output = "json"
icon = "clock.png"
`)
	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, &Config{
		Timezone: "Europe/Berlin",
		DayFirst: true,
		Output:   "json",
		Icon:     "clock.png",
	}, cfg)
}

func TestLoadFromYAML(t *testing.T) {
	path := writeFile(t, "config.yml", "timezone: Asia/Seoul\ndebug: true\n")
	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "Asia/Seoul", cfg.Timezone)
	assert.True(t, cfg.Debug)
	assert.False(t, cfg.DayFirst)
}

func TestLoadFromMalformed(t *testing.T) {
	_, err := LoadFrom(writeFile(t, "bad.toml", "timezone = \n"))
	assert.ErrorContains(t, err, "failed to parse config")

	_, err = LoadFrom(writeFile(t, "bad.yaml", "timezone: [unterminated\n"))
	assert.ErrorContains(t, err, "failed to parse config")

	_, err = LoadFrom(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config")
}

func TestLoadMissingDefault(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)
}

func TestLoadDefaultXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	path := filepath.Join(dir, ".config", "alfred-time", "config.toml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(`timezone = "UTC"`), 0o644))

	assert.Equal(t, path, DefaultPath())
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "UTC", cfg.Timezone)
}

func TestApplyWorkflow(t *testing.T) {
	cfg := &Config{Timezone: "Europe/Berlin", Output: "text", DayFirst: true}
	cfg.ApplyWorkflow(aw.NewConfig(aw.MapEnv{
		VarTimezone: "America/Chicago",
		VarDayFirst: "false",
		VarIcon:     "icons/time.png",
		VarBundleID: "net.c2nes.time",
	}))

	assert.Equal(t, &Config{
		Timezone: "America/Chicago",
		DayFirst: false,
		Output:   "text",
		Icon:     "icons/time.png",
		BundleID: "net.c2nes.time",
	}, cfg)
}

func TestApplyWorkflowEmpty(t *testing.T) {
	cfg := &Config{Timezone: "Europe/Berlin", Debug: true}
	cfg.ApplyWorkflow(aw.NewConfig(aw.MapEnv{VarTimezone: ""}))
	assert.Equal(t, &Config{Timezone: "Europe/Berlin", Debug: true}, cfg)
}
