package testutil

import (
	"testing"
	"time"

	"github.com/lepinkainen/bookdice/internal/config"
	"github.com/spf13/viper"
)

// ConfigState holds the state of the config package variables.
type ConfigState struct {
	APIKey         string
	APIBaseURL     string
	OffsetStrategy string
	RatePerSecond  float64
	Timeout        time.Duration
	Proxy          string
	HistoryEnabled bool
	HistoryDBFile  string
}

// SaveConfigState captures the current state of config package variables.
func SaveConfigState() ConfigState {
	return ConfigState{
		APIKey:         config.APIKey,
		APIBaseURL:     config.APIBaseURL,
		OffsetStrategy: config.OffsetStrategy,
		RatePerSecond:  config.RatePerSecond,
		Timeout:        config.Timeout,
		Proxy:          config.Proxy,
		HistoryEnabled: config.HistoryEnabled,
		HistoryDBFile:  config.HistoryDBFile,
	}
}

// RestoreConfigState restores the config package variables to a saved state.
func RestoreConfigState(state ConfigState) {
	config.APIKey = state.APIKey
	config.APIBaseURL = state.APIBaseURL
	config.OffsetStrategy = state.OffsetStrategy
	config.RatePerSecond = state.RatePerSecond
	config.Timeout = state.Timeout
	config.Proxy = state.Proxy
	config.HistoryEnabled = state.HistoryEnabled
	config.HistoryDBFile = state.HistoryDBFile
}

// SetTestConfig resets viper, points the API at baseURL with pacing off and
// history disabled, and restores everything when the test completes.
func SetTestConfig(t *testing.T, baseURL string) {
	t.Helper()

	state := SaveConfigState()
	viper.Reset()

	config.APIKey = ""
	config.APIBaseURL = baseURL
	config.OffsetStrategy = "clamp"
	config.RatePerSecond = 0
	config.Timeout = 5 * time.Second
	config.Proxy = ""
	config.HistoryEnabled = false
	config.HistoryDBFile = ""

	t.Cleanup(func() {
		RestoreConfigState(state)
		viper.Reset()
	})
}
