package model

// VersionedRecord captures schema and codec evolution for persistent data.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

// RunRecord archives the report of one finished tournament. It is not a
// resumable population: strategies are stored as descriptions only.
type RunRecord struct {
	VersionedRecord
	ID           string              `json:"id"`
	CreatedAtUTC string              `json:"created_at_utc"`
	Config       RunConfig           `json:"config"`
	Standings    []Standing          `json:"standings"`
	Generations  []GenerationSummary `json:"generations"`
}

type RunConfig struct {
	Generations    int      `json:"generations"`
	Encounters     int      `json:"encounters"`
	PopulationSize int      `json:"population_size"`
	Kinds          []string `json:"kinds"`
	MutationRate   float64  `json:"mutation_rate"`
	Seed           int64    `json:"seed"`
	Workers        int      `json:"workers"`
	Payoff         Payoff   `json:"payoff"`
}

type Payoff struct {
	Temptation int `json:"temptation"`
	Reward     int `json:"reward"`
	Punishment int `json:"punishment"`
	Sucker     int `json:"sucker"`
}

// Standing is one entry of the final snapshot.
type Standing struct {
	Rank       int    `json:"rank"`
	StrategyID string `json:"strategy_id"`
	Kind       string `json:"kind,omitempty"`
	Genome     string `json:"genome,omitempty"`
	Points     int    `json:"points"`
}

type GenerationSummary struct {
	Generation     int     `json:"generation"`
	PopulationSize int     `json:"population_size"`
	Games          int     `json:"games"`
	Survivors      int     `json:"survivors"`
	Culled         int     `json:"culled"`
	Offspring      int     `json:"offspring"`
	BestPoints     int     `json:"best_points"`
	MeanPoints     float64 `json:"mean_points"`
	StdDevPoints   float64 `json:"stddev_points"`
}
