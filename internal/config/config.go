package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Config holds runtime settings read from the environment. Command-line flags
// override individual fields after parsing.
type Config struct {
	DataDir        string `env:"RAWDEAL_DATA_DIR" envDefault:"data"`
	CardsFile      string `env:"RAWDEAL_CARDS_FILE" envDefault:"cards.json"`
	SuperstarsFile string `env:"RAWDEAL_SUPERSTARS_FILE" envDefault:"superstar.json"`
	EffectsFile    string `env:"RAWDEAL_EFFECTS_FILE"`
	DecksDir       string `env:"RAWDEAL_DECKS_DIR" envDefault:"decks"`
	LogLevel       string `env:"RAWDEAL_LOG_LEVEL" envDefault:"warn"`
	LogFormat      string `env:"RAWDEAL_LOG_FORMAT" envDefault:"console"`
	Shuffle        bool   `env:"RAWDEAL_SHUFFLE" envDefault:"false"`
	Seed           int64  `env:"RAWDEAL_SEED" envDefault:"0"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses a Config from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// CardsPath resolves the card table path. Relative file names live under DataDir.
func (c Config) CardsPath() string {
	return c.dataPath(c.CardsFile)
}

// SuperstarsPath resolves the superstar table path.
func (c Config) SuperstarsPath() string {
	return c.dataPath(c.SuperstarsFile)
}

func (c Config) dataPath(name string) string {
	if name == "" || filepath.IsAbs(name) || filepath.Dir(name) != "." {
		return name
	}
	return filepath.Join(c.DataDir, name)
}

// Exitf writes a formatted error message to stderr and exits with code 1.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
