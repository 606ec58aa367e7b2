package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Global configuration variables
var (
	// APIKey is the optional Google Books API key
	APIKey string
	// APIBaseURL is the root of the Google Books API
	APIBaseURL string
	// OffsetStrategy selects how the random result page is chosen ("clamp" or "modulo")
	OffsetStrategy string
	// RatePerSecond paces requests to the API; zero disables pacing
	RatePerSecond float64
	// Timeout bounds every HTTP request
	Timeout time.Duration
	// Proxy is an optional SOCKS5 proxy address (host:port)
	Proxy string
	// HistoryEnabled records every picked book in the history database
	HistoryEnabled bool
	// HistoryDBFile is the path of the history SQLite database
	HistoryDBFile string
)

// SetDefaults registers the default value for every key.
func SetDefaults() {
	viper.SetDefault("api.baseurl", "https://www.googleapis.com/books/v1")
	viper.SetDefault("api.offset_strategy", "clamp")
	viper.SetDefault("api.rate_per_second", 2.0)
	viper.SetDefault("api.timeout", "10s")
	viper.SetDefault("api.proxy", "")

	viper.SetDefault("history.enabled", false)
	viper.SetDefault("history.dbfile", "./bookdice.db")
}

// InitConfig initializes the global configuration from viper
func InitConfig() {
	SetDefaults()

	APIKey = viper.GetString("api.key")
	APIBaseURL = viper.GetString("api.baseurl")
	OffsetStrategy = viper.GetString("api.offset_strategy")
	RatePerSecond = viper.GetFloat64("api.rate_per_second")
	Proxy = viper.GetString("api.proxy")
	HistoryEnabled = viper.GetBool("history.enabled")
	HistoryDBFile = viper.GetString("history.dbfile")

	timeout, err := time.ParseDuration(viper.GetString("api.timeout"))
	if err != nil || timeout <= 0 {
		slog.Warn("Invalid api.timeout, using default", "timeout", viper.GetString("api.timeout"), "error", err)
		timeout = 10 * time.Second
	}
	Timeout = timeout
}

// LoadDotEnv loads environment variables from the given .env files (or
// ./.env when none are given). Missing files are not an error.
func LoadDotEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Debug("No .env file found, using process environment")
			return nil
		}
		return err
	}
	return nil
}

// SetHistory overrides the history settings
func SetHistory(enabled bool, dbFile string) {
	HistoryEnabled = enabled
	if dbFile != "" {
		HistoryDBFile = dbFile
	}
}
