package config

import (
	"flag"
	"os"
	"sync"
	"time"
)

const (
	defaultServerAddress    = ":8080"
	defaultDatabaseDSN      = ""
	defaultLogLevel         = "debug"
	defaultReminderInterval = time.Hour
	defaultReminderMaxAge   = 24 * time.Hour
)

type Config struct {
	ServerAddr       string
	DatabaseDSN      string
	LogLevel         string
	ReminderInterval time.Duration
	ReminderMaxAge   time.Duration
}

var (
	once      sync.Once
	singleton *Config
)

// New returns new Config. It parses command line and environment variables only once.
func New() (*Config, error) {
	once.Do(func() {
		cfg := Config{}

		// initialize flags
		flag.StringVar(&cfg.ServerAddr, "a", defaultServerAddress, "wholemart server address")
		flag.StringVar(&cfg.DatabaseDSN, "d", defaultDatabaseDSN, "wholemart database DSN")
		flag.StringVar(&cfg.LogLevel, "l", defaultLogLevel, "log level")
		flag.DurationVar(&cfg.ReminderInterval, "i", defaultReminderInterval, "payment reminder sweep interval")
		flag.DurationVar(&cfg.ReminderMaxAge, "m", defaultReminderMaxAge, "age after which an unpaid order gets a reminder")

		flag.Parse()

		// if environment variable is set, then using it
		if runAddrEnv := os.Getenv("RUN_ADDRESS"); runAddrEnv != "" {
			cfg.ServerAddr = runAddrEnv
		}
		if dataBaseURIEnv := os.Getenv("DATABASE_URI"); dataBaseURIEnv != "" {
			cfg.DatabaseDSN = dataBaseURIEnv
		}
		if logLevelEnv := os.Getenv("LOG_LEVEL"); logLevelEnv != "" {
			cfg.LogLevel = logLevelEnv
		}
		if intervalEnv := os.Getenv("REMINDER_INTERVAL"); intervalEnv != "" {
			if d, err := time.ParseDuration(intervalEnv); err == nil {
				cfg.ReminderInterval = d
			}
		}
		if maxAgeEnv := os.Getenv("REMINDER_MAX_AGE"); maxAgeEnv != "" {
			if d, err := time.ParseDuration(maxAgeEnv); err == nil {
				cfg.ReminderMaxAge = d
			}
		}

		singleton = &cfg
	})

	return singleton, nil
}
