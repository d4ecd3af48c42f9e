// Package config loads runtime settings from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	DBPath     string `env:"SIDEQUEST_DB"`
	PlayerName string `env:"SIDEQUEST_PLAYER" envDefault:"Adventurer"`
	// Seed makes quest generation reproducible when non-zero.
	Seed    uint64 `env:"SIDEQUEST_SEED" envDefault:"0"`
	Verbose bool   `env:"SIDEQUEST_VERBOSE" envDefault:"false"`
}

// Load reads envFile (when it exists) into the process environment and then
// parses the environment. Variables already set win over the file.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Logger returns a stderr logger when verbose and a silent one otherwise.
func (c Config) Logger() *log.Logger {
	if !c.Verbose {
		return log.New(io.Discard, "", 0)
	}
	return log.New(os.Stderr, "sq: ", log.LstdFlags)
}
