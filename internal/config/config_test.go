package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"gentourney/internal/strategy"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gentourney.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 10, cfg.Tournament.Encounters)
	assert.Equal(t, 5, cfg.Payoff.Temptation)
	assert.Empty(t, cfg.Store.Kind, "empty kind defers to the build default")

	kinds, err := cfg.StrategyKinds()
	require.NoError(t, err)
	assert.Equal(t, []strategy.Kind{strategy.KindReactive, strategy.KindMemoryOne}, kinds)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
tournament:
  generations: 3
  workers: 4
population:
  size: 12
  kinds: [tit_for_tat, always_defect]
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Tournament.Generations)
	assert.Equal(t, 4, cfg.Tournament.Workers)
	assert.Equal(t, 10, cfg.Tournament.Encounters, "unset fields keep defaults")
	assert.Equal(t, []string{"tit_for_tat", "always_defect"}, cfg.Population.Kinds)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"negative generations": "tournament:\n  generations: -1\n",
		"negative encounters":  "tournament:\n  encounters: -2\n",
		"unknown kind":         "population:\n  kinds: [grudger]\n",
		"mutation rate":        "population:\n  mutation_rate: 1.5\n",
		"payoff ordering":      "payoff:\n  temptation: 1\n",
		"store kind":           "store:\n  kind: postgres\n",
		"sqlite without path":  "store:\n  kind: sqlite\n  sqlite_path: \"\"\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestMarshalRoundTrip(t *testing.T) {
	data, err := Default().Marshal()
	require.NoError(t, err)

	var decoded Config
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, Default(), decoded)
}

func TestSlogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, LogConfig{Level: "debug"}.SlogLevel())
	assert.Equal(t, slog.LevelInfo, LogConfig{}.SlogLevel())
	assert.Equal(t, slog.LevelError, LogConfig{Level: "ERROR"}.SlogLevel())
}
