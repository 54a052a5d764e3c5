package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"gentourney/pkg/gentourney"
)

func newRunCmd(flags *globalFlags) *cobra.Command {
	var (
		generations int
		encounters  int
		population  int
		seed        int64
		workers     int
		kinds       []string
		mutation    float64
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a tournament and archive its report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			fs := cmd.Flags()
			if fs.Changed("generations") {
				cfg.Tournament.Generations = generations
			}
			if fs.Changed("encounters") {
				cfg.Tournament.Encounters = encounters
			}
			if fs.Changed("workers") {
				cfg.Tournament.Workers = workers
			}
			if fs.Changed("population") {
				cfg.Population.Size = population
			}
			if fs.Changed("seed") {
				cfg.Population.Seed = seed
			}
			if fs.Changed("kinds") {
				cfg.Population.Kinds = kinds
			}
			if fs.Changed("mutation-rate") {
				cfg.Population.MutationRate = mutation
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			client, err := openClient(cmd, cfg)
			if err != nil {
				return err
			}
			defer client.Close()

			summary, err := client.Run(cmd.Context(), gentourney.RunRequest{
				Generations:  cfg.Tournament.Generations,
				Encounters:   cfg.Tournament.Encounters,
				Population:   cfg.Population.Size,
				Kinds:        cfg.Population.Kinds,
				MutationRate: cfg.Population.MutationRate,
				Seed:         cfg.Population.Seed,
				Workers:      cfg.Tournament.Workers,
				Payoff:       cfg.Payoff,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if flags.jsonOut {
				return writeJSON(out, summary)
			}
			fmt.Fprintf(out, "run_id=%s generations=%d survivors=%d\n", summary.RunID, len(summary.Generations), len(summary.Standings))
			for _, s := range summary.Standings {
				fmt.Fprintf(out, "rank=%d id=%s kind=%s genome=%s points=%d\n", s.Rank, s.StrategyID, s.Kind, s.Genome, s.Points)
			}
			return nil
		},
	}
	fs := cmd.Flags()
	fs.IntVar(&generations, "generations", 0, "generations to run")
	fs.IntVar(&encounters, "encounters", 0, "encounters per pairing")
	fs.IntVar(&population, "population", 0, "initial population size")
	fs.Int64Var(&seed, "seed", 0, "random seed")
	fs.IntVar(&workers, "workers", 0, "concurrent pairings")
	fs.StringSliceVar(&kinds, "kinds", nil, "strategy kinds, cycled over the population")
	fs.Float64Var(&mutation, "mutation-rate", 0, "per-gene mutation probability")
	return cmd
}

func newRunsCmd(flags *globalFlags) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List archived runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if limit <= 0 {
				return fmt.Errorf("limit must be > 0")
			}
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			client, err := openClient(cmd, cfg)
			if err != nil {
				return err
			}
			defer client.Close()

			items, err := client.Runs(cmd.Context(), gentourney.RunsRequest{Limit: limit})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if flags.jsonOut {
				return writeJSON(out, items)
			}
			if len(items) == 0 {
				fmt.Fprintln(out, "no runs found")
				return nil
			}
			for _, item := range items {
				fmt.Fprintf(out, "run_id=%s created_at=%s population=%d generations=%d seed=%d survivors=%d best=%d\n",
					item.RunID, item.CreatedAtUTC, item.Population, item.Generations, item.Seed, item.Survivors, item.BestPoints)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "max runs to list")
	return cmd
}

func newStandingsCmd(flags *globalFlags) *cobra.Command {
	var (
		runID  string
		latest bool
		limit  int
	)
	cmd := &cobra.Command{
		Use:   "standings",
		Short: "Show the final snapshot of a run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			client, err := openClient(cmd, cfg)
			if err != nil {
				return err
			}
			defer client.Close()

			standings, err := client.Standings(cmd.Context(), gentourney.StandingsRequest{RunID: runID, Latest: latest, Limit: limit})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if flags.jsonOut {
				return writeJSON(out, standings)
			}
			for _, s := range standings {
				fmt.Fprintf(out, "rank=%d id=%s kind=%s genome=%s points=%d\n", s.Rank, s.StrategyID, s.Kind, s.Genome, s.Points)
			}
			return nil
		},
	}
	addRunSelector(cmd, &runID, &latest)
	cmd.Flags().IntVar(&limit, "limit", 0, "max standings to show, 0 for all")
	return cmd
}

func newGenerationsCmd(flags *globalFlags) *cobra.Command {
	var (
		runID  string
		latest bool
	)
	cmd := &cobra.Command{
		Use:   "generations",
		Short: "Show per-generation summaries of a run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			client, err := openClient(cmd, cfg)
			if err != nil {
				return err
			}
			defer client.Close()

			summaries, err := client.Generations(cmd.Context(), gentourney.GenerationsRequest{RunID: runID, Latest: latest})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if flags.jsonOut {
				return writeJSON(out, summaries)
			}
			for _, g := range summaries {
				fmt.Fprintf(out, "generation=%d population=%d games=%d survivors=%d culled=%d offspring=%d best=%d mean=%.3f stddev=%.3f\n",
					g.Generation, g.PopulationSize, g.Games, g.Survivors, g.Culled, g.Offspring, g.BestPoints, g.MeanPoints, g.StdDevPoints)
			}
			return nil
		},
	}
	addRunSelector(cmd, &runID, &latest)
	return cmd
}

func newExportCmd(flags *globalFlags) *cobra.Command {
	var (
		runID  string
		latest bool
		outDir string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a run report as JSON and CSV files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			client, err := openClient(cmd, cfg)
			if err != nil {
				return err
			}
			defer client.Close()

			exported, err := client.Export(cmd.Context(), gentourney.ExportRequest{RunID: runID, Latest: latest, OutDir: outDir})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported run_id=%s dir=%s\n", exported.RunID, exported.Directory)
			return nil
		},
	}
	addRunSelector(cmd, &runID, &latest)
	cmd.Flags().StringVar(&outDir, "out", "", "export directory, defaults to ./exports")
	return cmd
}

func newConfigCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			data, err := cfg.Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func addRunSelector(cmd *cobra.Command, runID *string, latest *bool) {
	cmd.Flags().StringVar(runID, "run-id", "", "run id")
	cmd.Flags().BoolVar(latest, "latest", false, "use the newest run")
	cmd.MarkFlagsMutuallyExclusive("run-id", "latest")
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
