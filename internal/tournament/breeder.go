package tournament

import (
	"errors"
	"fmt"
)

var ErrNilOffspring = errors.New("mate returned nil offspring")

// Breed mates each adjacent pair of ranked survivors and then mutates every
// survivor in place. k survivors yield k-1 offspring.
func Breed(survivors []RankedEntry) (mutated []Strategy, offspring []Strategy, err error) {
	if len(survivors) > 1 {
		offspring = make([]Strategy, 0, len(survivors)-1)
	}
	for j := 0; j < len(survivors)-1; j++ {
		parent := survivors[j].Strategy
		child := parent.Mate(survivors[j+1].Strategy)
		if child == nil {
			return nil, nil, fmt.Errorf("%w: parents %s and %s", ErrNilOffspring, parent.ID(), survivors[j+1].Strategy.ID())
		}
		offspring = append(offspring, child)
	}

	mutated = make([]Strategy, 0, len(survivors))
	for _, entry := range survivors {
		entry.Strategy.Mutate()
		mutated = append(mutated, entry.Strategy)
	}
	return mutated, offspring, nil
}

// NextGeneration returns survivors followed by offspring, every one scored
// zero.
func NextGeneration(mutated, offspring []Strategy) Population {
	members := make([]Strategy, 0, len(mutated)+len(offspring))
	members = append(members, mutated...)
	members = append(members, offspring...)
	return NewPopulation(members)
}
