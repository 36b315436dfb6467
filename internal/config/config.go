package config

import (
	"os"

	"bigtwo-server/internal/util"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config provides configuration for the Big Two server
type Config struct {
	loaded         bool
	PGDSN          string `yaml:"pgDsn" envconfig:"pg_dsn"`
	MigrationsPath string `yaml:"migrationsPath" envconfig:"migrations_path"`
	JWT            struct {
		PublicKey  string `yaml:"publicKey" envconfig:"public_key"`
		PrivateKey string `yaml:"privateKey" envconfig:"private_key"`
	}
	// StartGameDelay is the number of seconds between the startGame request and the deal
	StartGameDelay int `yaml:"startGameDelay" envconfig:"start_game_delay"`
	Log            struct {
		Level             string `yaml:"level"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	}
	Game struct {
		Balance            bool `yaml:"balance"`
		MaxTwos            int  `yaml:"maxTwos" envconfig:"max_twos"`
		BalanceMin         int  `yaml:"balanceMin" envconfig:"balance_min"`
		BalanceMax         int  `yaml:"balanceMax" envconfig:"balance_max"`
		MaxShuffleAttempts int  `yaml:"maxShuffleAttempts" envconfig:"max_shuffle_attempts"`
		// AllowSeed lets a startGame message fix the deal with a seed. Only for local testing
		AllowSeed bool `yaml:"allowSeed" envconfig:"allow_seed"`
	}
	Rating struct {
		// Storage is "postgres" or "memory"
		Storage string `yaml:"storage"`
		Initial int    `yaml:"initial"`
	}
}

// DefaultConfig returns the defaults that apply when a value is missing from the config file
func DefaultConfig() Config {
	var c Config
	c.PGDSN = "postgres://postgres@localhost:5432/postgres?sslmode=disable"
	c.MigrationsPath = "./sql"
	c.JWT.PublicKey = ".keys/public.pem"
	c.JWT.PrivateKey = ".keys/private.key"
	c.StartGameDelay = 3
	c.Log.Level = "info"
	c.Game.Balance = true
	c.Game.MaxTwos = 2
	c.Game.BalanceMin = 650
	c.Game.BalanceMax = 900
	c.Game.MaxShuffleAttempts = 1000
	c.Rating.Storage = "postgres"
	c.Rating.Initial = 10000

	return c
}

var config Config

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
// The YAML file is read over the defaults, and BIGTWO_* environment variables are read over the file
func Load() error {
	c := DefaultConfig()

	configFile := util.Getenv("BIGTWO_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err != nil {
		if !os.IsNotExist(err) {
			return err
		}
	} else {
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(&c); err != nil {
			return err
		}
	}

	if err := envconfig.Process("bigtwo", &c); err != nil {
		return err
	}

	c.loaded = true
	config = c
	return nil
}
