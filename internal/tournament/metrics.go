package tournament

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
)

const tracerName = "gentourney.tournament"

var tracer = otel.Tracer(tracerName)

var (
	gamesPlayed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gentourney_games_total",
		Help: "Total round-robin games played",
	})

	generationsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gentourney_generations_total",
		Help: "Total generations completed",
	})

	generationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "gentourney_generation_duration_seconds",
		Help:    "Wall time of one generation (round, rank, select, breed)",
		Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 1, 10},
	})

	populationSize = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "gentourney_population_size",
		Help: "Population size entering the most recent generation",
	})
)
