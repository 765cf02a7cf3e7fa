package config

import (
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
	"pokertable-server/internal/util"
)

// store backends
const (
	StorePostgres = "postgres"
	StoreRedis    = "redis"
)

// Config provides configuration for the poker table server
type Config struct {
	loaded         bool
	ListenAddr     string `yaml:"listenAddr" envconfig:"listen_addr"`
	Store          string `yaml:"store"`
	PGDSN          string `yaml:"pgDsn" envconfig:"pg_dsn"`
	MigrationsPath string `yaml:"migrationsPath" envconfig:"migrations_path"`
	Redis          struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		Prefix   string `yaml:"prefix"`
	}
	Log struct {
		Level             string `yaml:"level"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	}
	// SaveRetries is how many times a conflicting room update is retried
	SaveRetries int `yaml:"saveRetries" envconfig:"save_retries"`
	Table       struct {
		BuyIn      int `yaml:"buyIn" envconfig:"buy_in"`
		SmallBlind int `yaml:"smallBlind" envconfig:"small_blind"`
		BigBlind   int `yaml:"bigBlind" envconfig:"big_blind"`
		// DeckSeed makes every shuffle reproducible when non-zero; never set it in production
		DeckSeed int64 `yaml:"deckSeed" envconfig:"deck_seed"`
	}
	CORSOrigins []string `yaml:"corsOrigins" envconfig:"cors_origins"`
}

var config Config

// DefaultConfig returns the configuration used when no file overrides a value
func DefaultConfig() Config {
	cfg := Config{
		ListenAddr:     ":5000",
		Store:          StorePostgres,
		PGDSN:          "postgres://postgres@localhost:5432/postgres?sslmode=disable",
		MigrationsPath: "file://sql",
		SaveRetries:    3,
		CORSOrigins:    []string{"http://localhost:3000"},
	}

	cfg.Redis.Addr = "localhost:6379"
	cfg.Redis.Prefix = "pokertable"
	cfg.Log.Level = "info"
	cfg.Table.BuyIn = 1000
	cfg.Table.SmallBlind = 5
	cfg.Table.BigBlind = 10

	return cfg
}

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration
// Values are layered: defaults, then the YAML file, then POKER_* environment variables
func Load() error {
	cfg := DefaultConfig()

	configFile := util.Getenv("POKER_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	if file != nil {
		defer file.Close()

		if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
			return err
		}
	}

	if err := envconfig.Process("poker", &cfg); err != nil {
		return err
	}

	config = cfg
	config.loaded = true
	return nil
}
