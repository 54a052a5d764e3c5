package tournament

// scoreTable is an insertion-ordered strategy to points mapping.
type scoreTable struct {
	order  []Strategy
	points map[Strategy]int
}

func (t *scoreTable) add(s Strategy, points int) {
	if t.points == nil {
		t.points = make(map[Strategy]int)
	}
	if _, ok := t.points[s]; !ok {
		t.order = append(t.order, s)
	}
	t.points[s] += points
}

func (t scoreTable) clone() scoreTable {
	out := scoreTable{
		order:  append([]Strategy(nil), t.order...),
		points: make(map[Strategy]int, len(t.points)),
	}
	for s, points := range t.points {
		out.points[s] = points
	}
	return out
}

// Len reports the number of strategies with an entry.
func (t scoreTable) Len() int {
	return len(t.order)
}

// Points returns the score recorded for s.
func (t scoreTable) Points(s Strategy) (int, bool) {
	points, ok := t.points[s]
	return points, ok
}

// Strategies returns the strategies in insertion order.
func (t scoreTable) Strategies() []Strategy {
	return append([]Strategy(nil), t.order...)
}

// Entries returns (strategy, points) pairs in insertion order.
func (t scoreTable) Entries() []RankedEntry {
	out := make([]RankedEntry, 0, len(t.order))
	for _, s := range t.order {
		out = append(out, RankedEntry{Strategy: s, Points: t.points[s]})
	}
	return out
}

// Map returns a copy of the scores keyed by strategy.
func (t scoreTable) Map() map[Strategy]int {
	out := make(map[Strategy]int, len(t.points))
	for s, points := range t.points {
		out[s] = points
	}
	return out
}

// Population maps every living strategy to its accumulated points.
// Values are never modified after construction; every step of a generation
// builds a new Population.
type Population struct {
	scoreTable
}

// RoundOutcome holds the points earned by each strategy in a single round.
type RoundOutcome struct {
	scoreTable
}

// NewPopulation returns a population with every strategy scored zero.
// Repeated strategies are kept once, at their first position.
func NewPopulation(strategies []Strategy) Population {
	var p Population
	for _, s := range strategies {
		if s == nil {
			continue
		}
		p.add(s, 0)
	}
	return p
}

func populationFromEntries(entries []RankedEntry) Population {
	var p Population
	for _, entry := range entries {
		p.add(entry.Strategy, entry.Points)
	}
	return p
}

// Merge adds the round points in outcome to the scores in pop. Strategies
// absent from outcome keep their score; strategies absent from pop start at
// zero. Neither argument is modified.
func Merge(pop Population, outcome RoundOutcome) Population {
	next := Population{scoreTable: pop.clone()}
	for _, s := range outcome.order {
		next.add(s, outcome.points[s])
	}
	return next
}
