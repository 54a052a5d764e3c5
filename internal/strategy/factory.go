// Package strategy provides the dilemma-playing strategies bred by the
// tournament engine.
package strategy

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/google/uuid"

	"gentourney/internal/game"
	"gentourney/internal/tournament"
)

type Kind string

const (
	KindReactive        Kind = "reactive"
	KindMemoryOne       Kind = "memory_one"
	KindAlwaysCooperate Kind = "always_cooperate"
	KindAlwaysDefect    Kind = "always_defect"
	KindTitForTat       Kind = "tit_for_tat"
)

func Kinds() []Kind {
	return []Kind{KindReactive, KindMemoryOne, KindAlwaysCooperate, KindAlwaysDefect, KindTitForTat}
}

func ParseKind(name string) (Kind, error) {
	normalized := Kind(strings.ToLower(strings.TrimSpace(name)))
	for _, kind := range Kinds() {
		if kind == normalized {
			return kind, nil
		}
	}
	return "", fmt.Errorf("unsupported strategy kind: %s", name)
}

// Descriptor is implemented by every strategy in this package.
type Descriptor interface {
	Kind() Kind
	Genome() string
}

// Describe returns the kind and genome of s, or empty strings for strategies
// from other packages.
func Describe(s tournament.Strategy) (Kind, string) {
	d, ok := s.(Descriptor)
	if !ok {
		return "", ""
	}
	return d.Kind(), d.Genome()
}

// Factory creates strategies and owns the random source used to build,
// mate, and mutate them. It is not safe for concurrent use; the engine
// breeds on a single goroutine.
type Factory struct {
	rng          *rand.Rand
	mutationRate float64
}

func NewFactory(seed int64, mutationRate float64) (*Factory, error) {
	if mutationRate < 0 || mutationRate > 1 {
		return nil, fmt.Errorf("mutation rate must be in [0, 1], got %v", mutationRate)
	}
	return &Factory{
		rng:          rand.New(rand.NewSource(seed)),
		mutationRate: mutationRate,
	}, nil
}

// New creates one strategy of the given kind with random genes.
func (f *Factory) New(kind Kind) (tournament.Strategy, error) {
	switch kind {
	case KindReactive:
		return f.reactive(f.randomGenes(reactiveGeneCount)), nil
	case KindMemoryOne:
		return f.memoryOne(f.randomGenes(memoryOneGeneCount)), nil
	case KindAlwaysCooperate, KindAlwaysDefect, KindTitForTat:
		return f.fixed(kind), nil
	default:
		return nil, fmt.Errorf("unsupported strategy kind: %s", kind)
	}
}

// Population creates size strategies, cycling through kinds.
func (f *Factory) Population(size int, kinds []Kind) ([]tournament.Strategy, error) {
	if size < 0 {
		return nil, fmt.Errorf("population size must be >= 0, got %d", size)
	}
	if len(kinds) == 0 {
		kinds = []Kind{KindReactive}
	}
	out := make([]tournament.Strategy, 0, size)
	for i := 0; i < size; i++ {
		s, err := f.New(kinds[i%len(kinds)])
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// newID draws ids from the seeded source so a run is reproducible end to end.
func (f *Factory) newID() string {
	id, err := uuid.NewRandomFromReader(f.rng)
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

type genes []game.Move

func (g genes) String() string {
	var b strings.Builder
	for _, m := range g {
		b.WriteString(m.String())
	}
	return b.String()
}

func (f *Factory) randomGenes(n int) genes {
	out := make(genes, n)
	for i := range out {
		out[i] = game.Move(f.rng.Intn(2))
	}
	return out
}

// crossover picks every gene from either parent with equal probability.
func (f *Factory) crossover(a, b genes) genes {
	out := make(genes, len(a))
	for i := range out {
		if i < len(b) && f.rng.Intn(2) == 1 {
			out[i] = b[i]
		} else {
			out[i] = a[i]
		}
	}
	return out
}

func (f *Factory) mutate(g genes) {
	for i := range g {
		if f.rng.Float64() < f.mutationRate {
			g[i] = g[i].Flip()
		}
	}
}
