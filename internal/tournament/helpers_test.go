package tournament

import (
	"context"
	"fmt"
	"sync"
)

type stubStrategy struct {
	name      string
	power     int
	mutations int
	nilChild  bool
}

func (s *stubStrategy) ID() string { return s.name }

func (s *stubStrategy) Mate(other Strategy) Strategy {
	if s.nilChild {
		return nil
	}
	o := other.(*stubStrategy)
	return &stubStrategy{name: s.name + "+" + o.name, power: (s.power + o.power) / 2}
}

func (s *stubStrategy) Mutate() { s.mutations++ }

func newStubs(powers ...int) []Strategy {
	out := make([]Strategy, 0, len(powers))
	for i, power := range powers {
		out = append(out, &stubStrategy{name: fmt.Sprintf("s%d", i), power: power})
	}
	return out
}

// powerGame awards each side its power for every encounter.
type powerGame struct {
	mu    sync.Mutex
	calls []string
	fail  string
}

func (g *powerGame) Play(_ context.Context, a, b Strategy, repetitions int) (Outcome, error) {
	g.mu.Lock()
	g.calls = append(g.calls, a.ID()+"|"+b.ID())
	g.mu.Unlock()
	if g.fail != "" && (a.ID() == g.fail || b.ID() == g.fail) {
		return Outcome{}, fmt.Errorf("forced failure")
	}
	return Outcome{
		A: a.(*stubStrategy).power * repetitions,
		B: b.(*stubStrategy).power * repetitions,
	}, nil
}

func (g *powerGame) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.calls)
}

// tableGame returns a fixed outcome per ordered pair of ids.
type tableGame struct {
	outcomes map[string]Outcome
}

func (g tableGame) Play(_ context.Context, a, b Strategy, _ int) (Outcome, error) {
	outcome, ok := g.outcomes[a.ID()+"|"+b.ID()]
	if !ok {
		return Outcome{}, fmt.Errorf("unexpected pairing %s vs %s", a.ID(), b.ID())
	}
	return outcome, nil
}
