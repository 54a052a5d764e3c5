package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"gentourney/internal/config"
	"gentourney/pkg/gentourney"
)

// inWorkdir runs the test from an empty directory so the default sqlite
// path never touches the package tree.
func inWorkdir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCmd(&stdout, &stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), err
}

func TestRunCommandPrintsStandings(t *testing.T) {
	inWorkdir(t)
	out, err := execute(t, "run",
		"--store", "memory",
		"--generations", "2",
		"--encounters", "5",
		"--population", "10",
		"--seed", "3",
		"--workers", "2",
		"--kinds", "reactive,tit_for_tat",
	)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "generations=2 survivors=2")
	assert.True(t, strings.HasPrefix(lines[1], "rank=1 "), lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "rank=2 "), lines[2])
}

func TestRunCommandJSON(t *testing.T) {
	inWorkdir(t)
	out, err := execute(t, "run", "--json", "--generations", "1", "--population", "6", "--encounters", "3")
	require.NoError(t, err)

	var summary gentourney.RunSummary
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	assert.NotEmpty(t, summary.RunID)
	require.Len(t, summary.Generations, 1)
	assert.Equal(t, 15, summary.Generations[0].Games)
	assert.Len(t, summary.Standings, 2)
}

func TestRunCommandUsesConfigFile(t *testing.T) {
	inWorkdir(t)
	path := filepath.Join(t.TempDir(), "tournament.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tournament:\n  generations: 0\npopulation:\n  size: 4\n"), 0o644))

	out, err := execute(t, "run", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "generations=0 survivors=0")
}

func TestRunCommandRejectsInvalidSettings(t *testing.T) {
	inWorkdir(t)
	_, err := execute(t, "run", "--generations", "-1")
	assert.Error(t, err)

	_, err = execute(t, "run", "--kinds", "grudger")
	assert.Error(t, err)

	_, err = execute(t, "run", "--store", "postgres")
	assert.Error(t, err)

	_, err = execute(t, "run", "extra")
	assert.Error(t, err)
}

func TestRunsCommandWithEmptyArchive(t *testing.T) {
	inWorkdir(t)
	out, err := execute(t, "runs", "--store", "memory")
	require.NoError(t, err)
	assert.Equal(t, "no runs found\n", out)

	_, err = execute(t, "runs", "--limit", "0")
	assert.Error(t, err)
}

func TestStandingsCommandRequiresRunSelector(t *testing.T) {
	inWorkdir(t)
	_, err := execute(t, "standings")
	assert.Error(t, err)

	_, err = execute(t, "standings", "--run-id", "abc", "--latest")
	assert.Error(t, err)

	_, err = execute(t, "generations", "--latest")
	assert.ErrorContains(t, err, "no runs available")

	_, err = execute(t, "export", "--latest", "--out", t.TempDir())
	assert.ErrorContains(t, err, "no runs available")
}

func TestConfigCommandPrintsEffectiveConfig(t *testing.T) {
	inWorkdir(t)
	out, err := execute(t, "config", "--log-level", "debug", "--db-path", "other.db")
	require.NoError(t, err)

	var cfg config.Config
	require.NoError(t, yaml.Unmarshal([]byte(out), &cfg))
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "other.db", cfg.Store.SQLitePath)
	assert.Equal(t, config.Default().Tournament, cfg.Tournament)
}

func TestUnknownCommand(t *testing.T) {
	inWorkdir(t)
	err := run(context.Background(), []string{"tournament"})
	assert.Error(t, err)
}
