package game

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"
)

// Environment variables read by LoadConfig.
const (
	EnvSeed      = "WAVEMASTER_SEED"
	EnvDataDir   = "WAVEMASTER_DATA_DIR"
	EnvLogFile   = "WAVEMASTER_LOG_FILE"
	EnvLogLevel  = "WAVEMASTER_LOG_LEVEL"
	EnvTickHz    = "WAVEMASTER_TICK_HZ"
	EnvTelemetry = "WAVEMASTER_TELEMETRY"
	EnvTraceRate = "WAVEMASTER_TRACE_RATE"
)

// MaxFrameDelta caps the time one tick may simulate.
const MaxFrameDelta = 100 * time.Millisecond

// Config holds session and process options.
type Config struct {
	// Seed for the dodge projectile generator. A seed of 0 means a random
	// seed will be generated.
	Seed int64

	// DataDir holds the leaderboard. Empty means the XDG data directory.
	DataDir string

	// LogFile receives the structured log. The terminal belongs to the
	// front end, so logs never go to stderr while playing.
	LogFile  string
	LogLevel slog.Level

	// TickHz is the frame loop rate.
	TickHz int

	// Telemetry enables OTLP trace export. TraceRate is the fraction of
	// root spans kept; zero keeps all of them.
	Telemetry bool
	TraceRate float64
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		LogFile:  "wavemaster.log",
		LogLevel: slog.LevelInfo,
		TickHz:   30,
	}
}

// TickInterval returns the frame loop period.
func (c Config) TickInterval() time.Duration {
	if c.TickHz <= 0 {
		return time.Second / 30
	}
	return time.Second / time.Duration(c.TickHz)
}

// LoadConfig builds a Config from environment lookups, starting from the
// defaults. Unset variables keep their default; malformed ones are errors.
func LoadConfig(getenv func(string) string) (Config, error) {
	cfg := DefaultConfig()

	if v := getenv(EnvSeed); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvSeed, err)
		}
		cfg.Seed = seed
	}
	if v := getenv(EnvDataDir); v != "" {
		cfg.DataDir = v
	}
	if v := getenv(EnvLogFile); v != "" {
		cfg.LogFile = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(strings.ToUpper(v))); err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvLogLevel, err)
		}
	}
	if v := getenv(EnvTickHz); v != "" {
		hz, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvTickHz, err)
		}
		if hz < 1 || hz > 240 {
			return cfg, fmt.Errorf("%s: %d out of range 1-240", EnvTickHz, hz)
		}
		cfg.TickHz = hz
	}
	if v := getenv(EnvTelemetry); v != "" {
		on, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvTelemetry, err)
		}
		cfg.Telemetry = on
	}
	if v := getenv(EnvTraceRate); v != "" {
		rate, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvTraceRate, err)
		}
		if rate < 0 || rate > 1 {
			return cfg, fmt.Errorf("%s: %v out of range 0-1", EnvTraceRate, rate)
		}
		cfg.TraceRate = rate
	}

	return cfg, nil
}
