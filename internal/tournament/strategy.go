package tournament

import "context"

// Strategy is a competitor in the tournament.
//
// Implementations must be pointer types. The interface value is used as a map
// key, so two strategies with identical genes are still two competitors.
type Strategy interface {
	ID() string
	// Mate produces a new strategy from the receiver and other.
	Mate(other Strategy) Strategy
	// Mutate changes the receiver in place.
	Mutate()
}

// Outcome holds the points earned by each side of one game.
type Outcome struct {
	A int
	B int
}

// Game plays repeated encounters between two strategies.
type Game interface {
	Play(ctx context.Context, a, b Strategy, repetitions int) (Outcome, error)
}
