// Package gentourney runs evolutionary dilemma tournaments and queries the
// archive of finished runs.
package gentourney

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"gentourney/internal/game"
	"gentourney/internal/model"
	"gentourney/internal/platform"
	"gentourney/internal/stats"
	"gentourney/internal/storage"
	"gentourney/internal/strategy"
	"gentourney/internal/tournament"
)

const (
	defaultDBPath     = "gentourney.db"
	defaultExportsDir = "exports"
)

type Options struct {
	StoreKind  string
	DBPath     string
	ExportsDir string
	Logger     *slog.Logger
}

// Client is safe for concurrent use.
type Client struct {
	store storage.Store

	mu         sync.Mutex
	polis      *platform.Polis
	logger     *slog.Logger
	exportsDir string
}

// RunRequest describes one tournament. Generations, Encounters and
// Population are taken as given, zero included. Empty Kinds, a zero Payoff
// and Workers <= 0 fall back to reactive strategies, the default payoff
// and a single worker.
type RunRequest struct {
	Generations  int
	Encounters   int
	Population   int
	Kinds        []string
	MutationRate float64
	Seed         int64
	Workers      int
	Payoff       game.Payoff
}

type RunSummary struct {
	RunID       string
	Standings   []model.Standing
	Generations []model.GenerationSummary
}

type RunsRequest struct {
	Limit int
}

type RunItem struct {
	RunID        string
	CreatedAtUTC string
	Generations  int
	Encounters   int
	Population   int
	Seed         int64
	Survivors    int
	BestPoints   int
}

type StandingsRequest struct {
	RunID  string
	Latest bool
	Limit  int
}

type GenerationsRequest struct {
	RunID  string
	Latest bool
}

type ExportRequest struct {
	RunID  string
	Latest bool
	OutDir string
}

type ExportSummary struct {
	RunID     string
	Directory string
}

func New(opts Options) (*Client, error) {
	storeKind := opts.StoreKind
	if storeKind == "" {
		storeKind = storage.DefaultStoreKind()
	}
	dbPath := opts.DBPath
	if dbPath == "" {
		dbPath = defaultDBPath
	}
	exportsDir := opts.ExportsDir
	if exportsDir == "" {
		exportsDir = defaultExportsDir
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	store, err := storage.NewStore(storeKind, dbPath)
	if err != nil {
		return nil, err
	}
	return &Client{store: store, logger: logger, exportsDir: exportsDir}, nil
}

func (c *Client) Close() error {
	return storage.CloseIfSupported(c.store)
}

func (c *Client) Init(ctx context.Context) error {
	_, err := c.ensurePolis(ctx)
	return err
}

func (c *Client) Run(ctx context.Context, req RunRequest) (RunSummary, error) {
	if req.Population < 0 {
		return RunSummary{}, errors.New("population must be >= 0")
	}
	if req.Workers <= 0 {
		req.Workers = 1
	}
	if req.Payoff == (game.Payoff{}) {
		req.Payoff = game.DefaultPayoff()
	}
	kinds := make([]strategy.Kind, 0, len(req.Kinds))
	for _, name := range req.Kinds {
		kind, err := strategy.ParseKind(name)
		if err != nil {
			return RunSummary{}, err
		}
		kinds = append(kinds, kind)
	}
	if len(kinds) == 0 {
		kinds = []strategy.Kind{strategy.KindReactive}
	}

	dilemma, err := game.NewDilemma(req.Payoff)
	if err != nil {
		return RunSummary{}, err
	}
	factory, err := strategy.NewFactory(req.Seed, req.MutationRate)
	if err != nil {
		return RunSummary{}, err
	}
	initial, err := factory.Population(req.Population, kinds)
	if err != nil {
		return RunSummary{}, err
	}

	p, err := c.ensurePolis(ctx)
	if err != nil {
		return RunSummary{}, err
	}
	result, err := p.RunTournament(ctx, platform.TournamentConfig{
		Game:        dilemma,
		Generations: req.Generations,
		Encounters:  req.Encounters,
		Workers:     req.Workers,
		Initial:     initial,
		Record:      runConfigRecord(req, kinds),
	})
	if err != nil {
		return RunSummary{}, err
	}
	return RunSummary{
		RunID:       result.RunID,
		Standings:   result.Standings,
		Generations: result.Generations,
	}, nil
}

func (c *Client) Runs(ctx context.Context, req RunsRequest) ([]RunItem, error) {
	if req.Limit <= 0 {
		req.Limit = 20
	}
	if _, err := c.ensurePolis(ctx); err != nil {
		return nil, err
	}
	runs, err := c.store.ListRuns(ctx, req.Limit)
	if err != nil {
		return nil, err
	}

	out := make([]RunItem, 0, len(runs))
	for _, run := range runs {
		item := RunItem{
			RunID:        run.ID,
			CreatedAtUTC: run.CreatedAtUTC,
			Generations:  run.Config.Generations,
			Encounters:   run.Config.Encounters,
			Population:   run.Config.PopulationSize,
			Seed:         run.Config.Seed,
			Survivors:    len(run.Standings),
		}
		if len(run.Standings) > 0 {
			item.BestPoints = run.Standings[0].Points
		}
		out = append(out, item)
	}
	return out, nil
}

func (c *Client) Standings(ctx context.Context, req StandingsRequest) ([]model.Standing, error) {
	if req.Limit < 0 {
		return nil, errors.New("limit must be >= 0")
	}
	run, err := c.lookupRun(ctx, req.RunID, req.Latest)
	if err != nil {
		return nil, err
	}
	standings := run.Standings
	if req.Limit > 0 && len(standings) > req.Limit {
		standings = standings[:req.Limit]
	}
	return standings, nil
}

func (c *Client) Generations(ctx context.Context, req GenerationsRequest) ([]model.GenerationSummary, error) {
	run, err := c.lookupRun(ctx, req.RunID, req.Latest)
	if err != nil {
		return nil, err
	}
	return run.Generations, nil
}

// Export writes the report of one archived run as JSON and CSV files.
func (c *Client) Export(ctx context.Context, req ExportRequest) (ExportSummary, error) {
	if req.OutDir == "" {
		req.OutDir = c.exportsDir
	}
	run, err := c.lookupRun(ctx, req.RunID, req.Latest)
	if err != nil {
		return ExportSummary{}, err
	}
	dir, err := stats.ExportRun(req.OutDir, run)
	if err != nil {
		return ExportSummary{}, err
	}
	return ExportSummary{RunID: run.ID, Directory: filepath.Clean(dir)}, nil
}

func (c *Client) lookupRun(ctx context.Context, runID string, latest bool) (model.RunRecord, error) {
	if runID != "" && latest {
		return model.RunRecord{}, errors.New("use either run id or latest")
	}
	if runID == "" && !latest {
		return model.RunRecord{}, errors.New("requires run id or latest")
	}
	if _, err := c.ensurePolis(ctx); err != nil {
		return model.RunRecord{}, err
	}

	if latest {
		runs, err := c.store.ListRuns(ctx, 1)
		if err != nil {
			return model.RunRecord{}, err
		}
		if len(runs) == 0 {
			return model.RunRecord{}, errors.New("no runs available")
		}
		return runs[0], nil
	}

	run, ok, err := c.store.GetRun(ctx, runID)
	if err != nil {
		return model.RunRecord{}, err
	}
	if !ok {
		return model.RunRecord{}, fmt.Errorf("run not found: %s", runID)
	}
	return run, nil
}

func (c *Client) ensurePolis(ctx context.Context) (*platform.Polis, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.polis != nil {
		return c.polis, nil
	}
	p := platform.NewPolis(platform.Config{Store: c.store, Logger: c.logger})
	if err := p.Init(ctx); err != nil {
		return nil, err
	}
	c.polis = p
	return c.polis, nil
}

func runConfigRecord(req RunRequest, kinds []strategy.Kind) model.RunConfig {
	names := make([]string, 0, len(kinds))
	for _, kind := range kinds {
		names = append(names, string(kind))
	}
	return model.RunConfig{
		Generations:    req.Generations,
		Encounters:     req.Encounters,
		PopulationSize: req.Population,
		Kinds:          names,
		MutationRate:   req.MutationRate,
		Seed:           req.Seed,
		Workers:        req.Workers,
		Payoff: model.Payoff{
			Temptation: req.Payoff.Temptation,
			Reward:     req.Payoff.Reward,
			Punishment: req.Payoff.Punishment,
			Sucker:     req.Payoff.Sucker,
		},
	}
}

// IsInvalidConfig reports whether err came from rejected tournament settings.
func IsInvalidConfig(err error) bool {
	return errors.Is(err, tournament.ErrInvalidConfig)
}
