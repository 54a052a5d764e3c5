package tournament

import (
	"errors"
	"testing"
)

func TestBreedMatesAdjacentRankedPairs(t *testing.T) {
	s := newStubs(8, 6, 4, 2)
	survivors := []RankedEntry{
		{Strategy: s[2], Points: 40},
		{Strategy: s[0], Points: 30},
		{Strategy: s[3], Points: 20},
		{Strategy: s[1], Points: 10},
	}

	mutated, offspring, err := Breed(survivors)
	if err != nil {
		t.Fatalf("breed: %v", err)
	}
	if len(offspring) != 3 {
		t.Fatalf("expected k-1=3 offspring, got %d", len(offspring))
	}
	wantChildren := []string{"s2+s0", "s0+s3", "s3+s1"}
	for i, child := range offspring {
		if child.ID() != wantChildren[i] {
			t.Fatalf("offspring %d: got %s want %s", i, child.ID(), wantChildren[i])
		}
	}
	if len(mutated) != 4 {
		t.Fatalf("expected 4 mutated survivors, got %d", len(mutated))
	}
	for i, strategy := range mutated {
		if strategy != survivors[i].Strategy {
			t.Fatalf("mutated survivor %d changed identity", i)
		}
		if strategy.(*stubStrategy).mutations != 1 {
			t.Fatalf("survivor %s mutated %d times", strategy.ID(), strategy.(*stubStrategy).mutations)
		}
	}
	for _, child := range offspring {
		if child.(*stubStrategy).mutations != 0 {
			t.Fatalf("offspring %s should not be mutated", child.ID())
		}
	}
}

func TestBreedSmallSurvivorSets(t *testing.T) {
	mutated, offspring, err := Breed(nil)
	if err != nil || len(mutated) != 0 || len(offspring) != 0 {
		t.Fatalf("empty breed: mutated=%d offspring=%d err=%v", len(mutated), len(offspring), err)
	}

	solo := &stubStrategy{name: "solo"}
	mutated, offspring, err = Breed([]RankedEntry{{Strategy: solo, Points: 3}})
	if err != nil {
		t.Fatalf("breed: %v", err)
	}
	if len(offspring) != 0 || len(mutated) != 1 || solo.mutations != 1 {
		t.Fatalf("single survivor: mutated=%d offspring=%d mutations=%d", len(mutated), len(offspring), solo.mutations)
	}
}

func TestBreedRejectsNilOffspring(t *testing.T) {
	parent := &stubStrategy{name: "p", nilChild: true}
	other := &stubStrategy{name: "q"}
	_, _, err := Breed([]RankedEntry{{Strategy: parent}, {Strategy: other}})
	if !errors.Is(err, ErrNilOffspring) {
		t.Fatalf("expected ErrNilOffspring, got %v", err)
	}
}

func TestNextGenerationResetsScores(t *testing.T) {
	s := newStubs(1, 2, 3)
	next := NextGeneration(s[:2], s[2:])
	if next.Len() != 3 {
		t.Fatalf("expected 3 members, got %d", next.Len())
	}
	for i, entry := range next.Entries() {
		if entry.Strategy != s[i] {
			t.Fatalf("member %d out of order", i)
		}
		if entry.Points != 0 {
			t.Fatalf("member %s score=%d want 0", entry.Strategy.ID(), entry.Points)
		}
	}
}
