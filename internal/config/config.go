// Package config loads runtime settings from an optional YAML file and the
// environment. Environment variables win over the file; the file wins over
// defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/robalobadob/wordle/apps/go-engine/internal/game"
	"github.com/robalobadob/wordle/apps/go-engine/internal/store"
)

// Config is the full runtime configuration.
type Config struct {
	Port         string `yaml:"port"`
	LogLevel     string `yaml:"log_level"`
	ClientOrigin string `yaml:"client_origin"`
	JWTSecret    string `yaml:"jwt_secret"`
	DailySalt    string `yaml:"daily_salt"`
	WordsFile    string `yaml:"words_file"`

	Board Board `yaml:"board"`
	Store Store `yaml:"store"`
	Theme Theme `yaml:"theme"`
}

// Board holds the grid dimensions: Cols is the word length, Rows the attempts.
type Board struct {
	Cols int `yaml:"cols"`
	Rows int `yaml:"rows"`
}

// Store selects the session backend.
type Store struct {
	Backend       string        `yaml:"backend"`
	RedisAddr     string        `yaml:"redis_addr"`
	RedisPassword string        `yaml:"redis_password"`
	RedisDB       int           `yaml:"redis_db"`
	SQLitePath    string        `yaml:"sqlite_path"`
	TTL           time.Duration `yaml:"ttl"`
}

// Theme holds hex colours keyed by what they paint.
type Theme struct {
	RightSpot string `yaml:"right_spot"`
	WrongSpot string `yaml:"wrong_spot"`
	NotInWord string `yaml:"not_in_word"`
	Tile      string `yaml:"tile"`
	Key       string `yaml:"key"`
	Letter    string `yaml:"letter"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Port:         "5175",
		LogLevel:     "info",
		ClientOrigin: "http://localhost:5173",
		JWTSecret:    "dev_secret_change_me",
		DailySalt:    "local_dev_salt",
		Board:        Board{Cols: game.DefaultCols, Rows: game.DefaultRows},
		Store: Store{
			Backend:    store.BackendMemory,
			RedisAddr:  "localhost:6379",
			SQLitePath: "./data/sessions.db",
			TTL:        24 * time.Hour,
		},
		Theme: Theme{
			RightSpot: "#6aaa64",
			WrongSpot: "#c9b458",
			NotInWord: "#787c7e",
			Tile:      "#d3d6da",
			Key:       "#818384",
			Letter:    "#ffffff",
		},
	}
}

// Load builds a Config from defaults, then path (if non-empty and present),
// then the environment, and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			// no file: defaults + env
		case err != nil:
			return Config{}, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse %s: %w", path, err)
			}
		}
	}
	if err := cfg.applyEnv(os.Getenv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	str := func(k string, dst *string) {
		if v := getenv(k); v != "" {
			*dst = v
		}
	}
	num := func(k string, dst *int) error {
		if v := getenv(k); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s: %w", k, err)
			}
			*dst = n
		}
		return nil
	}

	str("PORT", &c.Port)
	str("LOG_LEVEL", &c.LogLevel)
	str("CLIENT_ORIGIN", &c.ClientOrigin)
	str("JWT_SECRET", &c.JWTSecret)
	str("DAILY_SALT", &c.DailySalt)
	str("WORDS_ANSWERS_FILE", &c.WordsFile)
	str("STORE_BACKEND", &c.Store.Backend)
	str("REDIS_ADDR", &c.Store.RedisAddr)
	str("REDIS_PASSWORD", &c.Store.RedisPassword)
	str("SQLITE_PATH", &c.Store.SQLitePath)

	for k, dst := range map[string]*int{
		"BOARD_COLS": &c.Board.Cols,
		"BOARD_ROWS": &c.Board.Rows,
		"REDIS_DB":   &c.Store.RedisDB,
	} {
		if err := num(k, dst); err != nil {
			return err
		}
	}

	if v := getenv("SESSION_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("SESSION_TTL: %w", err)
		}
		c.Store.TTL = d
	}
	return nil
}

// Validate checks ranges and enumerations.
func (c Config) Validate() error {
	var errs []error
	if c.Board.Cols < 1 || c.Board.Cols > 12 {
		errs = append(errs, fmt.Errorf("board.cols must be 1–12, got %d", c.Board.Cols))
	}
	if c.Board.Rows < 1 || c.Board.Rows > 12 {
		errs = append(errs, fmt.Errorf("board.rows must be 1–12, got %d", c.Board.Rows))
	}
	switch c.Store.Backend {
	case store.BackendMemory, store.BackendRedis, store.BackendSQLite:
	default:
		errs = append(errs, fmt.Errorf("store.backend %q is not one of memory, redis, sqlite", c.Store.Backend))
	}
	if c.Store.TTL < 0 {
		errs = append(errs, errors.New("store.ttl must not be negative"))
	}
	for name, v := range map[string]string{
		"right_spot": c.Theme.RightSpot, "wrong_spot": c.Theme.WrongSpot,
		"not_in_word": c.Theme.NotInWord, "tile": c.Theme.Tile,
		"key": c.Theme.Key, "letter": c.Theme.Letter,
	} {
		if !isHexColor(v) {
			errs = append(errs, fmt.Errorf("theme.%s: %q is not a #rrggbb colour", name, v))
		}
	}
	return errors.Join(errs...)
}

// StoreConfig converts to the store package's options.
func (c Config) StoreConfig() store.Config {
	return store.Config{
		Backend:       c.Store.Backend,
		RedisAddr:     c.Store.RedisAddr,
		RedisPassword: c.Store.RedisPassword,
		RedisDB:       c.Store.RedisDB,
		SQLitePath:    c.Store.SQLitePath,
		TTL:           c.Store.TTL,
	}
}

func isHexColor(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for _, r := range strings.ToLower(s[1:]) {
		if !(r >= '0' && r <= '9' || r >= 'a' && r <= 'f') {
			return false
		}
	}
	return true
}
