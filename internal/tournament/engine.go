package tournament

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var ErrInvalidConfig = errors.New("invalid tournament config")

type Config struct {
	Game        Game
	Generations int
	// Encounters is the repetition count passed to every game.
	Encounters int
	Workers    int
	Selection  SelectionPolicy
	Logger     *slog.Logger
	// OnSnapshot is called with the snapshot as soon as it is taken, before
	// the final generation breeds and mutates its survivors.
	OnSnapshot func(Population)
	// TracerProvider overrides the global provider for engine spans.
	TracerProvider trace.TracerProvider
}

type RunResult struct {
	// Snapshot holds the survivors of the final generation with the scores
	// they were ranked by. It is empty when no generation ran.
	Snapshot    Population
	Generations []GenerationSummary
}

// Engine runs the generation loop: round, merge, rank, select, breed.
type Engine struct {
	cfg       Config
	scheduler Scheduler
	logger    *slog.Logger
	tracer    trace.Tracer
}

func NewEngine(cfg Config) (*Engine, error) {
	if cfg.Game == nil {
		return nil, fmt.Errorf("%w: game is required", ErrInvalidConfig)
	}
	if cfg.Generations < 0 {
		return nil, fmt.Errorf("%w: generations must be >= 0, got %d", ErrInvalidConfig, cfg.Generations)
	}
	if cfg.Encounters < 0 {
		return nil, fmt.Errorf("%w: encounters must be >= 0, got %d", ErrInvalidConfig, cfg.Encounters)
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.Selection == nil {
		cfg.Selection = TruncationSelection{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	engineTracer := tracer
	if cfg.TracerProvider != nil {
		engineTracer = cfg.TracerProvider.Tracer(tracerName)
	}

	return &Engine{
		cfg:       cfg,
		scheduler: Scheduler{Game: cfg.Game, Workers: cfg.Workers},
		logger:    logger.With("component", "tournament"),
		tracer:    engineTracer,
	}, nil
}

// Run evolves initial for the configured number of generations and returns
// the snapshot taken after selection in the last one.
func (e *Engine) Run(ctx context.Context, initial []Strategy) (RunResult, error) {
	ctx, span := e.tracer.Start(ctx, "tournament.Run", trace.WithAttributes(
		attribute.Int("generations", e.cfg.Generations),
		attribute.Int("encounters", e.cfg.Encounters),
		attribute.Int("initial_population", len(initial)),
	))
	defer span.End()

	population := NewPopulation(initial)
	snapshot := Population{}
	summaries := make([]GenerationSummary, 0, e.cfg.Generations)

	e.logger.Info("tournament started",
		"generations", e.cfg.Generations,
		"encounters", e.cfg.Encounters,
		"population", population.Len(),
		"selection", e.cfg.Selection.Name(),
	)

	for gen := 0; gen < e.cfg.Generations; gen++ {
		if err := ctx.Err(); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "cancelled")
			return RunResult{}, err
		}

		var summary GenerationSummary
		var err error
		population, snapshot, summary, err = e.runGeneration(ctx, gen, population, snapshot)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "generation failed")
			return RunResult{}, fmt.Errorf("generation %d: %w", gen, err)
		}
		summaries = append(summaries, summary)
	}

	e.logger.Info("tournament finished",
		"generations", len(summaries),
		"survivors", snapshot.Len(),
	)
	return RunResult{Snapshot: snapshot, Generations: summaries}, nil
}

func (e *Engine) runGeneration(ctx context.Context, gen int, population, snapshot Population) (Population, Population, GenerationSummary, error) {
	ctx, span := e.tracer.Start(ctx, "tournament.generation", trace.WithAttributes(
		attribute.Int("generation", gen),
		attribute.Int("population", population.Len()),
	))
	defer span.End()

	start := time.Now()
	populationSize.Set(float64(population.Len()))

	round, err := e.scheduler.RunRound(ctx, population.Strategies(), e.cfg.Encounters)
	if err != nil {
		return Population{}, Population{}, GenerationSummary{}, err
	}
	merged := Merge(population, round)
	ranked := Rank(merged)
	survivors, culled := e.cfg.Selection.Select(ranked)

	if gen == e.cfg.Generations-1 {
		snapshot = populationFromEntries(survivors)
		if e.cfg.OnSnapshot != nil {
			e.cfg.OnSnapshot(snapshot)
		}
	}

	mutated, offspring, err := Breed(survivors)
	if err != nil {
		return Population{}, Population{}, GenerationSummary{}, err
	}
	next := NextGeneration(mutated, offspring)

	summary := summarizeGeneration(gen, ranked, len(survivors), len(culled), len(offspring))
	generationsCompleted.Inc()
	generationDuration.Observe(time.Since(start).Seconds())
	span.SetAttributes(
		attribute.Int("survivors", summary.Survivors),
		attribute.Int("offspring", summary.Offspring),
	)
	e.logger.Debug("generation complete",
		"generation", gen,
		"population", summary.PopulationSize,
		"games", summary.Games,
		"survivors", summary.Survivors,
		"culled", summary.Culled,
		"offspring", summary.Offspring,
		"best", summary.BestPoints,
	)
	return next, snapshot, summary, nil
}
