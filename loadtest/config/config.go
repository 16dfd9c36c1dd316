package config

import (
	"flag"
	"os"
	"strconv"
	"time"
)

type Config struct {
	BaseURL     string
	Keys        int
	ReadRatio   float64
	RemoveRatio float64
	Rate        int
	Duration    time.Duration
	MaxValue    uint64
	Output      string
	Timeout     time.Duration
	Name        string
	MinSuccess  float64
	Seed        int64
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseFloatEnv(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
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

func parseUintEnv(key string, def uint64) uint64 {
	if v := os.Getenv(key); v != "" {
		if u, err := strconv.ParseUint(v, 10, 64); err == nil {
			return u
		}
	}
	return def
}

func Load() *Config {
	var c Config

	dur, _ := time.ParseDuration(envOr("LT_DURATION", "30s"))
	to, _ := time.ParseDuration(envOr("LT_TIMEOUT", "5s"))

	flag.StringVar(&c.BaseURL, "base-url", envOr("LT_BASE_URL", "http://localhost:8080"), "Base URL of the capped set server")
	flag.IntVar(&c.Keys, "keys", parseIntEnv("LT_KEYS", 2048), "Number of distinct addresses to use")
	flag.Float64Var(&c.ReadRatio, "read-ratio", parseFloatEnv("LT_READ_RATIO", 0.5), "Ratio of GET /minimum requests")
	flag.Float64Var(&c.RemoveRatio, "remove-ratio", parseFloatEnv("LT_REMOVE_RATIO", 0.2), "Ratio of DELETE among write requests")
	flag.IntVar(&c.Rate, "rate", parseIntEnv("LT_RATE", 100), "Requests per second")
	flag.DurationVar(&c.Duration, "duration", dur, "Duration of the load test")
	flag.Uint64Var(&c.MaxValue, "max-value", parseUintEnv("LT_MAX_VALUE", 1000), "Upper bound (exclusive) of generated values")
	flag.StringVar(&c.Output, "output", envOr("LT_OUTPUT", "vegeta_results.bin"), "Result file")
	flag.DurationVar(&c.Timeout, "timeout", to, "Request timeout")
	flag.StringVar(&c.Name, "name", envOr("LT_NAME", "mixed"), "Name of the load test")
	flag.Float64Var(&c.MinSuccess, "min-success", parseFloatEnv("LT_MIN_SUCCESS", 0), "Fail if success ratio is below this value")
	flag.Int64Var(&c.Seed, "seed", int64(parseIntEnv("LT_SEED", 0)), "Random seed (0 = time based)")

	flag.Parse()
	return &c
}
