package tournament

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Pair indexes two population members; I is always less than J.
type Pair struct {
	I int
	J int
}

// Pairs enumerates every unordered pair of an n-member population in
// row-major order: (0,1), (0,2), ..., (1,2), ...
func Pairs(n int) []Pair {
	if n < 2 {
		return nil
	}
	out := make([]Pair, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			out = append(out, Pair{I: i, J: j})
		}
	}
	return out
}

// Scheduler plays round-robin rounds.
type Scheduler struct {
	Game    Game
	Workers int
}

// RunRound plays one game per unordered pair of population members and
// returns each strategy's summed points. With Workers > 1 games run
// concurrently, but outcomes are merged in pair order so the result matches a
// sequential round.
func (s Scheduler) RunRound(ctx context.Context, population []Strategy, encounters int) (RoundOutcome, error) {
	if s.Game == nil {
		return RoundOutcome{}, fmt.Errorf("%w: game is required", ErrInvalidConfig)
	}
	if encounters < 0 {
		return RoundOutcome{}, fmt.Errorf("%w: encounters must be >= 0, got %d", ErrInvalidConfig, encounters)
	}

	pairs := Pairs(len(population))
	outcomes := make([]Outcome, len(pairs))

	if s.Workers <= 1 {
		for idx, pair := range pairs {
			if err := ctx.Err(); err != nil {
				return RoundOutcome{}, err
			}
			outcome, err := s.Game.Play(ctx, population[pair.I], population[pair.J], encounters)
			if err != nil {
				return RoundOutcome{}, fmt.Errorf("play %s vs %s: %w", population[pair.I].ID(), population[pair.J].ID(), err)
			}
			outcomes[idx] = outcome
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(s.Workers)
		for idx, pair := range pairs {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				a, b := population[pair.I], population[pair.J]
				outcome, err := s.Game.Play(gctx, a, b, encounters)
				if err != nil {
					return fmt.Errorf("play %s vs %s: %w", a.ID(), b.ID(), err)
				}
				outcomes[idx] = outcome
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return RoundOutcome{}, err
		}
	}

	var round RoundOutcome
	for idx, pair := range pairs {
		round.add(population[pair.I], outcomes[idx].A)
		round.add(population[pair.J], outcomes[idx].B)
	}
	gamesPlayed.Add(float64(len(pairs)))
	return round, nil
}
