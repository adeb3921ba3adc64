package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mcdev12/teamsheet/go/internal/imports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfigDefaultsWhenFileMissing(t *testing.T) {
	t.Setenv("NATS_URL", "")
	t.Setenv("PUSHGATEWAY_URL", "")

	cfg, err := loadConfig(filepath.Join(t.TempDir(), "config.yaml"), false)
	require.NoError(t, err)

	assert.Equal(t, "/data.xlsx", cfg.Import.Source)
	assert.Equal(t, "teams", cfg.Import.TeamsSheet)
	assert.Equal(t, "players", cfg.Import.PlayersSheet)
	assert.Equal(t, ".", cfg.Assets.Root)
	assert.Equal(t, 30*time.Second, cfg.Assets.Timeout)
	assert.Equal(t, imports.DefaultRetention, cfg.History.Retention)
	assert.Empty(t, cfg.natsURL)
}

func TestLoadConfigExplicitMissingFile(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "nope.yaml"), true)
	assert.Error(t, err)
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	t.Setenv("NATS_URL", "nats://broker:4222")
	t.Setenv("PUSHGATEWAY_URL", "http://gateway:9091")

	path := writeConfig(t, t.TempDir(), `
import:
  source: /imports/clubs.xlsx
  teams_sheet: clubs
assets:
  root: /srv/assets
  timeout: 5s
history:
  retention: 10
`)
	cfg, err := loadConfig(path, true)
	require.NoError(t, err)

	assert.Equal(t, "/imports/clubs.xlsx", cfg.Import.Source)
	assert.Equal(t, "clubs", cfg.Import.TeamsSheet)
	assert.Equal(t, "players", cfg.Import.PlayersSheet, "unset keys keep their default")
	assert.Equal(t, "/srv/assets", cfg.Assets.Root)
	assert.Equal(t, 5*time.Second, cfg.Assets.Timeout)
	assert.Equal(t, 10, cfg.History.Retention)
	assert.Equal(t, "nats://broker:4222", cfg.natsURL)
	assert.Equal(t, "nats://broker:4222", cfg.Events.URL)
	assert.Equal(t, "http://gateway:9091", cfg.pushgatewayURL)
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	tests := map[string]string{
		"same sheet":       "import:\n  teams_sheet: data\n  players_sheet: data\n",
		"empty source":     "import:\n  source: \"\"\n",
		"no asset store":   "assets:\n  root: \"\"\n",
		"not yaml":         "import: [",
		"negative timeout": "assets:\n  timeout: -1s\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := loadConfig(writeConfig(t, t.TempDir(), body), true)
			assert.Error(t, err)
		})
	}
}
