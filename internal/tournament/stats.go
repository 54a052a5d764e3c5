package tournament

import "gonum.org/v1/gonum/stat"

// GenerationSummary describes one completed generation.
type GenerationSummary struct {
	Generation     int
	PopulationSize int
	Games          int
	Survivors      int
	Culled         int
	Offspring      int
	BestPoints     int
	MeanPoints     float64
	StdDevPoints   float64
}

func summarizeGeneration(generation int, ranked []RankedEntry, survivors, culled, offspring int) GenerationSummary {
	summary := GenerationSummary{
		Generation:     generation,
		PopulationSize: len(ranked),
		Games:          len(Pairs(len(ranked))),
		Survivors:      survivors,
		Culled:         culled,
		Offspring:      offspring,
	}
	if len(ranked) == 0 {
		return summary
	}

	points := make([]float64, len(ranked))
	for i, entry := range ranked {
		points[i] = float64(entry.Points)
	}
	summary.BestPoints = ranked[0].Points
	summary.MeanPoints = stat.Mean(points, nil)
	// StdDev is undefined below two samples.
	if len(points) > 1 {
		summary.StdDevPoints = stat.StdDev(points, nil)
	}
	return summary
}
