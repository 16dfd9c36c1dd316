package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/amakane-hakari/cappedset/internal/cappedset"
)

// DefaultCapacity はデプロイ時の既定容量です。
const DefaultCapacity = 1024

type Config struct {
	HTTPAddr          string
	Capacity          int
	Tracker           string
	LogLevel          string
	LogFormat         string
	MetricsNamespace  string
	ShutdownTimeout   time.Duration
	ReadHeaderTimeout time.Duration
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseIntEnv(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func parseDurationEnv(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

// Load は環境変数を既定値としてフラグを解析します。フラグが環境変数より優先されます。
func Load(args []string) (*Config, error) {
	var c Config
	fs := flag.NewFlagSet("cappedset", flag.ContinueOnError)

	fs.StringVar(&c.HTTPAddr, "http-addr", envOr("CAPPEDSET_HTTP_ADDR", ":8080"), "HTTP listen address")
	fs.IntVar(&c.Capacity, "capacity", parseIntEnv("CAPPEDSET_CAPACITY", DefaultCapacity), "Maximum number of entries")
	fs.StringVar(&c.Tracker, "tracker", envOr("CAPPEDSET_TRACKER", "heap"), "Minimum tracker (heap|scan)")
	fs.StringVar(&c.LogLevel, "log-level", envOr("LOG_LEVEL", "info"), "Log level (debug|info|warn|error)")
	fs.StringVar(&c.LogFormat, "log-format", envOr("LOG_FORMAT", "text"), "Log format (text|json)")
	fs.StringVar(&c.MetricsNamespace, "metrics-namespace", envOr("CAPPEDSET_METRICS_NAMESPACE", "cappedset"), "Prometheus namespace")
	fs.DurationVar(&c.ShutdownTimeout, "shutdown-timeout", parseDurationEnv("CAPPEDSET_SHUTDOWN_TIMEOUT", 5*time.Second), "Graceful shutdown timeout")
	fs.DurationVar(&c.ReadHeaderTimeout, "read-header-timeout", parseDurationEnv("CAPPEDSET_READ_HEADER_TIMEOUT", 5*time.Second), "HTTP read header timeout")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate は設定値を検証します。
func (c *Config) Validate() error {
	var errs []error
	if c.Capacity <= 0 {
		errs = append(errs, fmt.Errorf("capacity must be positive, got %d", c.Capacity))
	}
	if _, err := cappedset.ParseTrackerKind(c.Tracker); err != nil {
		errs = append(errs, err)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q", c.LogFormat))
	}
	if c.HTTPAddr == "" {
		errs = append(errs, errors.New("http address must not be empty"))
	}
	return errors.Join(errs...)
}

// TrackerKind は Tracker を cappedset.TrackerKind に変換します。
func (c *Config) TrackerKind() cappedset.TrackerKind {
	k, _ := cappedset.ParseTrackerKind(c.Tracker)
	return k
}
