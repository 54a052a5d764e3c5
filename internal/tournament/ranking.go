package tournament

import "sort"

// RankedEntry pairs a strategy with its score.
type RankedEntry struct {
	Strategy Strategy
	Points   int
}

// Rank orders pop by points, highest first. Equal scores keep their
// population order.
func Rank(pop Population) []RankedEntry {
	ranked := pop.Entries()
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Points > ranked[j].Points
	})
	return ranked
}

// SelectionPolicy splits a ranked population into survivors and culled.
type SelectionPolicy interface {
	Name() string
	Select(ranked []RankedEntry) (survivors, culled []RankedEntry)
}

// TruncationSelection removes every entry from index n/2-1 onward, so a
// population of n keeps its top n/2-1 members. Populations of three or fewer
// have no survivors.
type TruncationSelection struct{}

func (TruncationSelection) Name() string {
	return "truncation"
}

func (TruncationSelection) Select(ranked []RankedEntry) ([]RankedEntry, []RankedEntry) {
	return Truncate(ranked)
}

// CutIndex returns the first culled position for a ranked list of size n.
func CutIndex(n int) int {
	cut := n/2 - 1
	if cut < 0 {
		return 0
	}
	return cut
}

// Truncate applies truncation selection to ranked.
func Truncate(ranked []RankedEntry) (survivors, culled []RankedEntry) {
	cut := CutIndex(len(ranked))
	survivors = append([]RankedEntry(nil), ranked[:cut]...)
	culled = append([]RankedEntry(nil), ranked[cut:]...)
	return survivors, culled
}
