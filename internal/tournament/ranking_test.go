package tournament

import "testing"

func TestRankOrdersByPointsDescending(t *testing.T) {
	a := &stubStrategy{name: "A"}
	b := &stubStrategy{name: "B"}
	c := &stubStrategy{name: "C"}
	pop := populationFromEntries([]RankedEntry{
		{Strategy: a, Points: 5},
		{Strategy: b, Points: 9},
		{Strategy: c, Points: 1},
	})

	ranked := Rank(pop)
	want := []string{"B", "A", "C"}
	for i, entry := range ranked {
		if entry.Strategy.ID() != want[i] {
			t.Fatalf("rank %d: got %s want %s", i, entry.Strategy.ID(), want[i])
		}
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i].Points > ranked[i-1].Points {
			t.Fatalf("ranking not non-increasing at %d", i)
		}
	}
}

func TestRankTiesKeepPopulationOrder(t *testing.T) {
	s := newStubs(0, 0, 0, 0)
	pop := populationFromEntries([]RankedEntry{
		{Strategy: s[0], Points: 3},
		{Strategy: s[1], Points: 7},
		{Strategy: s[2], Points: 3},
		{Strategy: s[3], Points: 7},
	})

	ranked := Rank(pop)
	want := []Strategy{s[1], s[3], s[0], s[2]}
	for i := range want {
		if ranked[i].Strategy != want[i] {
			t.Fatalf("rank %d: got %s want %s", i, ranked[i].Strategy.ID(), want[i].ID())
		}
	}
}

func TestCutIndexBoundary(t *testing.T) {
	cases := []struct {
		size      int
		survivors int
	}{
		{size: 0, survivors: 0},
		{size: 1, survivors: 0},
		{size: 2, survivors: 0},
		{size: 3, survivors: 0},
		{size: 4, survivors: 1},
		{size: 5, survivors: 1},
		{size: 6, survivors: 2},
		{size: 7, survivors: 2},
		{size: 10, survivors: 4},
		{size: 11, survivors: 4},
	}
	for _, tc := range cases {
		if got := CutIndex(tc.size); got != tc.survivors {
			t.Fatalf("size=%d: cut=%d want=%d", tc.size, got, tc.survivors)
		}
	}
}

func TestTruncateKeepsStrictTopEntries(t *testing.T) {
	s := newStubs(0, 0, 0, 0, 0, 0, 0, 0, 0, 0)
	ranked := make([]RankedEntry, 0, len(s))
	for i, strategy := range s {
		ranked = append(ranked, RankedEntry{Strategy: strategy, Points: 100 - i})
	}

	survivors, culled := TruncationSelection{}.Select(ranked)
	if len(survivors) != 4 || len(culled) != 6 {
		t.Fatalf("size 10: survivors=%d culled=%d", len(survivors), len(culled))
	}
	for i := range survivors {
		if survivors[i].Strategy != s[i] {
			t.Fatalf("survivor %d is %s", i, survivors[i].Strategy.ID())
		}
	}

	survivors, culled = Truncate(ranked[:5])
	if len(survivors) != 1 || survivors[0].Strategy != s[0] || len(culled) != 4 {
		t.Fatalf("size 5: survivors=%+v culled=%d", survivors, len(culled))
	}
}

func TestTruncateDegenerateSizes(t *testing.T) {
	survivors, culled := Truncate(nil)
	if len(survivors) != 0 || len(culled) != 0 {
		t.Fatalf("empty: survivors=%d culled=%d", len(survivors), len(culled))
	}

	single := []RankedEntry{{Strategy: &stubStrategy{name: "solo"}, Points: 4}}
	survivors, culled = Truncate(single)
	if len(survivors) != 0 || len(culled) != 1 {
		t.Fatalf("single: survivors=%d culled=%d", len(survivors), len(culled))
	}
}
