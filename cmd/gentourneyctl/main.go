package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"gentourney/internal/config"
	"gentourney/pkg/gentourney"
)

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	root := newRootCmd(os.Stdout, os.Stderr)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// globalFlags are shared by every command.
type globalFlags struct {
	configPath string
	storeKind  string
	dbPath     string
	logLevel   string
	jsonOut    bool
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	flags := &globalFlags{}
	root := &cobra.Command{
		Use:           "gentourneyctl",
		Short:         "Run evolutionary dilemma tournaments",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "YAML config file")
	pf.StringVar(&flags.storeKind, "store", "", "run archive backend: memory|sqlite")
	pf.StringVar(&flags.dbPath, "db-path", "", "sqlite database path")
	pf.StringVar(&flags.logLevel, "log-level", "", "debug|info|warn|error")
	pf.BoolVar(&flags.jsonOut, "json", false, "emit JSON output")

	root.AddCommand(
		newRunCmd(flags),
		newRunsCmd(flags),
		newStandingsCmd(flags),
		newGenerationsCmd(flags),
		newExportCmd(flags),
		newConfigCmd(flags),
	)
	return root
}

// loadConfig reads --config and applies the global overrides.
func (f *globalFlags) loadConfig() (config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if f.storeKind != "" {
		cfg.Store.Kind = f.storeKind
	}
	if f.dbPath != "" {
		cfg.Store.SQLitePath = f.dbPath
	}
	if f.logLevel != "" {
		cfg.Log.Level = f.logLevel
	}
	return cfg, cfg.Validate()
}

func newLogger(w io.Writer, cfg config.Config) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: cfg.Log.SlogLevel()}))
}

func openClient(cmd *cobra.Command, cfg config.Config) (*gentourney.Client, error) {
	client, err := gentourney.New(gentourney.Options{
		StoreKind: cfg.Store.Kind,
		DBPath:    cfg.Store.SQLitePath,
		Logger:    newLogger(cmd.ErrOrStderr(), cfg),
	})
	if err != nil {
		return nil, err
	}
	if err := client.Init(cmd.Context()); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}
