// Package config loads tournament settings from YAML.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"gentourney/internal/game"
	"gentourney/internal/strategy"
)

//go:embed defaults.yaml
var defaultsYAML []byte

var validate = validator.New()

// Config holds every setting of a tournament run.
type Config struct {
	Tournament TournamentConfig `yaml:"tournament"`
	Population PopulationConfig `yaml:"population"`
	Payoff     game.Payoff      `yaml:"payoff"`
	Store      StoreConfig      `yaml:"store"`
	Log        LogConfig        `yaml:"log"`
}

type TournamentConfig struct {
	Generations int `yaml:"generations" validate:"gte=0"`
	Encounters  int `yaml:"encounters" validate:"gte=0"`
	Workers     int `yaml:"workers" validate:"gte=1,lte=1024"`
}

type PopulationConfig struct {
	Size         int      `yaml:"size" validate:"gte=0"`
	Kinds        []string `yaml:"kinds" validate:"min=1,dive,oneof=reactive memory_one always_cooperate always_defect tit_for_tat"`
	MutationRate float64  `yaml:"mutation_rate" validate:"gte=0,lte=1"`
	Seed         int64    `yaml:"seed"`
}

type StoreConfig struct {
	Kind       string `yaml:"kind" validate:"omitempty,oneof=memory sqlite"`
	SQLitePath string `yaml:"sqlite_path" validate:"required_if=Kind sqlite"`
}

type LogConfig struct {
	Level string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
}

// Default returns the embedded defaults.
func Default() Config {
	var cfg Config
	if err := yaml.Unmarshal(defaultsYAML, &cfg); err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// Load reads path over the defaults and validates the result. An empty path
// returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, cfg.Validate()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(fields, ", "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := c.Payoff.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// StrategyKinds parses the configured kind names.
func (c Config) StrategyKinds() ([]strategy.Kind, error) {
	kinds := make([]strategy.Kind, 0, len(c.Population.Kinds))
	for _, name := range c.Population.Kinds {
		kind, err := strategy.ParseKind(name)
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, kind)
	}
	return kinds, nil
}

// Marshal renders c as YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// SlogLevel maps the configured level name.
func (c LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
