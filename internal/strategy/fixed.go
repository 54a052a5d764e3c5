package strategy

import (
	"gentourney/internal/game"
	"gentourney/internal/tournament"
)

// Fixed is a baseline strategy that never changes. Mating yields another
// strategy of the same kind and mutation does nothing.
type Fixed struct {
	id      string
	kind    Kind
	factory *Factory
}

func (f *Factory) fixed(kind Kind) *Fixed {
	return &Fixed{id: f.newID(), kind: kind, factory: f}
}

func (s *Fixed) ID() string { return s.id }
func (s *Fixed) Kind() Kind { return s.kind }

func (s *Fixed) Genome() string {
	switch s.kind {
	case KindAlwaysCooperate:
		return "C"
	case KindAlwaysDefect:
		return "D"
	default:
		return "CCD"
	}
}

func (s *Fixed) Respond(history []game.Exchange) game.Move {
	switch s.kind {
	case KindAlwaysCooperate:
		return game.Cooperate
	case KindAlwaysDefect:
		return game.Defect
	default:
		if len(history) == 0 {
			return game.Cooperate
		}
		return history[len(history)-1].Opponent
	}
}

func (s *Fixed) Mate(tournament.Strategy) tournament.Strategy {
	return s.factory.fixed(s.kind)
}

func (s *Fixed) Mutate() {}
