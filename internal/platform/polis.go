package platform

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"gentourney/internal/model"
	"gentourney/internal/storage"
	"gentourney/internal/strategy"
	"gentourney/internal/tournament"
)

type Config struct {
	Store  storage.Store
	Logger *slog.Logger
	// Now stamps archived runs; defaults to time.Now.
	Now func() time.Time
}

type TournamentConfig struct {
	RunID       string
	Game        tournament.Game
	Generations int
	Encounters  int
	Workers     int
	Initial     []tournament.Strategy
	// Record is archived with the run as a description of its inputs.
	Record model.RunConfig
}

type TournamentResult struct {
	RunID       string
	Snapshot    tournament.Population
	Standings   []model.Standing
	Generations []model.GenerationSummary
}

// Polis owns the run archive and executes tournaments against it.
type Polis struct {
	store  storage.Store
	logger *slog.Logger
	now    func() time.Time

	mu      sync.RWMutex
	started bool
}

func NewPolis(cfg Config) *Polis {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Polis{
		store:  cfg.Store,
		logger: logger,
		now:    now,
	}
}

func (p *Polis) Init(ctx context.Context) error {
	if p.store == nil {
		return fmt.Errorf("store is required")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started {
		return nil
	}
	if err := p.store.Init(ctx); err != nil {
		return err
	}
	p.started = true
	return nil
}

func (p *Polis) Started() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.started
}

// RunTournament runs the engine and archives its report. The archive holds
// standings and generation summaries only; it cannot resume a population.
func (p *Polis) RunTournament(ctx context.Context, cfg TournamentConfig) (TournamentResult, error) {
	if !p.Started() {
		return TournamentResult{}, fmt.Errorf("polis is not initialized")
	}

	runID := cfg.RunID
	if runID == "" {
		runID = uuid.NewString()
	}
	logger := p.logger.With("run_id", runID)

	// Standings are described when the snapshot is taken; the final
	// generation mutates its survivors afterwards.
	standings := []model.Standing{}
	engine, err := tournament.NewEngine(tournament.Config{
		Game:        cfg.Game,
		Generations: cfg.Generations,
		Encounters:  cfg.Encounters,
		Workers:     cfg.Workers,
		Logger:      logger,
		OnSnapshot: func(snapshot tournament.Population) {
			standings = toModelStandings(snapshot)
		},
	})
	if err != nil {
		return TournamentResult{}, err
	}

	result, err := engine.Run(ctx, cfg.Initial)
	if err != nil {
		return TournamentResult{}, fmt.Errorf("run %s: %w", runID, err)
	}

	generations := toModelGenerations(result.Generations)
	record := model.RunRecord{
		VersionedRecord: storage.CurrentVersion(),
		ID:              runID,
		CreatedAtUTC:    p.now().UTC().Format(time.RFC3339Nano),
		Config:          cfg.Record,
		Standings:       standings,
		Generations:     generations,
	}
	if err := p.store.SaveRun(ctx, record); err != nil {
		return TournamentResult{}, fmt.Errorf("save run %s: %w", runID, err)
	}
	logger.Info("run archived", "standings", len(standings), "generations", len(generations))

	return TournamentResult{
		RunID:       runID,
		Snapshot:    result.Snapshot,
		Standings:   standings,
		Generations: generations,
	}, nil
}

func toModelStandings(snapshot tournament.Population) []model.Standing {
	ranked := tournament.Rank(snapshot)
	out := make([]model.Standing, 0, len(ranked))
	for i, entry := range ranked {
		kind, genome := strategy.Describe(entry.Strategy)
		out = append(out, model.Standing{
			Rank:       i + 1,
			StrategyID: entry.Strategy.ID(),
			Kind:       string(kind),
			Genome:     genome,
			Points:     entry.Points,
		})
	}
	return out
}

func toModelGenerations(summaries []tournament.GenerationSummary) []model.GenerationSummary {
	out := make([]model.GenerationSummary, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, model.GenerationSummary{
			Generation:     s.Generation,
			PopulationSize: s.PopulationSize,
			Games:          s.Games,
			Survivors:      s.Survivors,
			Culled:         s.Culled,
			Offspring:      s.Offspring,
			BestPoints:     s.BestPoints,
			MeanPoints:     s.MeanPoints,
			StdDevPoints:   s.StdDevPoints,
		})
	}
	return out
}
