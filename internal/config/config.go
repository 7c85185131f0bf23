// Package config loads the sandbox configuration from a yaml file with
// environment-variable overrides on top.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config is the full configuration for the CLI and its subsystems.
type Config struct {
	DataDir   string `yaml:"data_dir" env:"POKEMONML_DATA_DIR"`
	ModelsDir string `yaml:"models_dir" env:"POKEMONML_MODELS_DIR"`
	DBPath    string `yaml:"db_path" env:"POKEMONML_DB_PATH"`

	PokemonCSV   string `yaml:"pokemon_csv"`
	MovesCSV     string `yaml:"moves_csv"`
	TypeChartCSV string `yaml:"type_chart_csv"`

	Battle   BattleConfig   `yaml:"battle"`
	Training TrainingConfig `yaml:"training"`
}

// BattleConfig bounds battle simulations.
type BattleConfig struct {
	DefaultLevel int `yaml:"default_level"`
	MaxTurns     int `yaml:"max_turns"`
}

// TrainingConfig carries the hyperparameters for model training and
// dataset generation.
type TrainingConfig struct {
	Samples      int     `yaml:"samples"`
	Epochs       int     `yaml:"epochs"`
	LearningRate float64 `yaml:"learning_rate"`
	HiddenSize   int     `yaml:"hidden_size"`
	HoldoutRatio float64 `yaml:"holdout_ratio"`
	Seed         int64   `yaml:"seed"`
	Workers      int     `yaml:"workers"`
}

// Default returns the configuration used when no config file is present.
func Default() Config {
	return Config{
		DataDir:      "data",
		ModelsDir:    "models",
		DBPath:       "pokemonml.db",
		PokemonCSV:   "pokemon.csv",
		MovesCSV:     "moves.csv",
		TypeChartCSV: "chart.csv",
		Battle: BattleConfig{
			DefaultLevel: 50,
			MaxTurns:     100,
		},
		Training: TrainingConfig{
			Samples:      2000,
			Epochs:       200,
			LearningRate: 0.05,
			HiddenSize:   16,
			HoldoutRatio: 0.2,
			Seed:         12345,
			Workers:      8,
		},
	}
}

// Load reads the yaml config at path and applies environment overrides.
// A missing file is not an error; the defaults are used instead.
func Load(path string) (Config, error) {
	cfg := Default()

	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// defaults only
	case err != nil:
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// PokemonPath returns the full path to the Pokémon CSV.
func (c Config) PokemonPath() string { return filepath.Join(c.DataDir, c.PokemonCSV) }

// MovesPath returns the full path to the moves CSV.
func (c Config) MovesPath() string { return filepath.Join(c.DataDir, c.MovesCSV) }

// TypeChartPath returns the full path to the type chart CSV.
func (c Config) TypeChartPath() string { return filepath.Join(c.DataDir, c.TypeChartCSV) }
