package strategy

import (
	"gentourney/internal/game"
	"gentourney/internal/tournament"
)

const (
	reactiveGeneCount  = 3
	memoryOneGeneCount = 5
)

// Reactive answers the opponent's previous move.
// Genes: opening, reply to cooperate, reply to defect.
type Reactive struct {
	id      string
	genes   genes
	factory *Factory
}

func (f *Factory) reactive(g genes) *Reactive {
	return &Reactive{id: f.newID(), genes: g, factory: f}
}

func (s *Reactive) ID() string     { return s.id }
func (s *Reactive) Kind() Kind     { return KindReactive }
func (s *Reactive) Genome() string { return s.genes.String() }

func (s *Reactive) Respond(history []game.Exchange) game.Move {
	if len(history) == 0 {
		return s.genes[0]
	}
	return s.genes[1+int(history[len(history)-1].Opponent)]
}

// Mate crosses genes with another Reactive. Any other partner yields a copy
// of the receiver.
func (s *Reactive) Mate(other tournament.Strategy) tournament.Strategy {
	partner, ok := other.(*Reactive)
	if !ok {
		return s.factory.reactive(append(genes(nil), s.genes...))
	}
	return s.factory.reactive(s.factory.crossover(s.genes, partner.genes))
}

func (s *Reactive) Mutate() {
	s.factory.mutate(s.genes)
}

// MemoryOne answers the previous exchange as a whole.
// Genes: opening, then replies to CC, CD, DC, DD (own move first).
type MemoryOne struct {
	id      string
	genes   genes
	factory *Factory
}

func (f *Factory) memoryOne(g genes) *MemoryOne {
	return &MemoryOne{id: f.newID(), genes: g, factory: f}
}

func (s *MemoryOne) ID() string     { return s.id }
func (s *MemoryOne) Kind() Kind     { return KindMemoryOne }
func (s *MemoryOne) Genome() string { return s.genes.String() }

func (s *MemoryOne) Respond(history []game.Exchange) game.Move {
	if len(history) == 0 {
		return s.genes[0]
	}
	last := history[len(history)-1]
	return s.genes[1+2*int(last.Own)+int(last.Opponent)]
}

func (s *MemoryOne) Mate(other tournament.Strategy) tournament.Strategy {
	partner, ok := other.(*MemoryOne)
	if !ok {
		return s.factory.memoryOne(append(genes(nil), s.genes...))
	}
	return s.factory.memoryOne(s.factory.crossover(s.genes, partner.genes))
}

func (s *MemoryOne) Mutate() {
	s.factory.mutate(s.genes)
}
