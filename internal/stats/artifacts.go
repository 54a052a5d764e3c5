// Package stats writes archived runs out as report files.
package stats

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"gentourney/internal/model"
)

const (
	configFile         = "config.json"
	standingsFile      = "standings.json"
	generationsFile    = "generations.json"
	standingsCSVFile   = "standings.csv"
	generationsCSVFile = "generation_series.csv"
)

// StandingRow is one line of standings.csv.
type StandingRow struct {
	Rank       int    `csv:"rank"`
	StrategyID string `csv:"strategy_id"`
	Kind       string `csv:"kind"`
	Genome     string `csv:"genome"`
	Points     int    `csv:"points"`
}

// GenerationRow is one line of generation_series.csv.
type GenerationRow struct {
	Generation     int     `csv:"generation"`
	PopulationSize int     `csv:"population_size"`
	Games          int     `csv:"games"`
	Survivors      int     `csv:"survivors"`
	Culled         int     `csv:"culled"`
	Offspring      int     `csv:"offspring"`
	BestPoints     int     `csv:"best_points"`
	MeanPoints     float64 `csv:"mean_points"`
	StdDevPoints   float64 `csv:"stddev_points"`
}

type runConfigFile struct {
	RunID        string          `json:"run_id"`
	CreatedAtUTC string          `json:"created_at_utc"`
	Config       model.RunConfig `json:"config"`
}

// ExportRun writes run into outDir/<run id> and returns that directory.
func ExportRun(outDir string, run model.RunRecord) (string, error) {
	if run.ID == "" {
		return "", fmt.Errorf("run id is required")
	}

	runDir := filepath.Join(outDir, run.ID)
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return "", err
	}

	if err := writeJSON(filepath.Join(runDir, configFile), runConfigFile{
		RunID:        run.ID,
		CreatedAtUTC: run.CreatedAtUTC,
		Config:       run.Config,
	}); err != nil {
		return "", err
	}
	if err := writeJSON(filepath.Join(runDir, standingsFile), run.Standings); err != nil {
		return "", err
	}
	if err := writeJSON(filepath.Join(runDir, generationsFile), run.Generations); err != nil {
		return "", err
	}
	if err := writeCSV(filepath.Join(runDir, standingsCSVFile), StandingRows(run.Standings)); err != nil {
		return "", fmt.Errorf("writing standings: %w", err)
	}
	if err := writeCSV(filepath.Join(runDir, generationsCSVFile), GenerationRows(run.Generations)); err != nil {
		return "", fmt.Errorf("writing generation series: %w", err)
	}
	return runDir, nil
}

func StandingRows(standings []model.Standing) []StandingRow {
	rows := make([]StandingRow, 0, len(standings))
	for _, s := range standings {
		rows = append(rows, StandingRow(s))
	}
	return rows
}

func GenerationRows(summaries []model.GenerationSummary) []GenerationRow {
	rows := make([]GenerationRow, 0, len(summaries))
	for _, g := range summaries {
		rows = append(rows, GenerationRow(g))
	}
	return rows
}

// ReadGenerationSeries loads generation_series.csv from an exported run.
func ReadGenerationSeries(runDir string) ([]GenerationRow, bool, error) {
	file, err := os.Open(filepath.Join(runDir, generationsCSVFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer file.Close()

	var rows []GenerationRow
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, false, err
	}
	return rows, true, nil
}

func writeJSON(path string, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}

func writeCSV(path string, rows any) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := gocsv.MarshalFile(rows, file); err != nil {
		return err
	}
	return file.Sync()
}
