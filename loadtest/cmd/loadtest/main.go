// Package main は 負荷試験ツールのエントリーポイントを提供します。
package main

import (
	"fmt"
	"os"

	"github.com/amakane-hakari/cappedset/loadtest/attacker"
	"github.com/amakane-hakari/cappedset/loadtest/config"
	"github.com/amakane-hakari/cappedset/loadtest/scenario"
)

func main() {
	cfg := config.Load()

	fmt.Printf("[INFO] base-url=%s rate=%d duration=%s read-ratio=%.2f remove-ratio=%.2f keys=%d max-value=%d\n",
		cfg.BaseURL, cfg.Rate, cfg.Duration, cfg.ReadRatio, cfg.RemoveRatio, cfg.Keys, cfg.MaxValue)

	addrs, err := scenario.RandomAddresses(cfg.Keys)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}

	gen := scenario.NewGenerator(
		cfg.BaseURL,
		addrs,
		cfg.ReadRatio,
		cfg.RemoveRatio,
		cfg.MaxValue,
		cfg.Seed,
	)

	r := attacker.Runner{
		Rate:       cfg.Rate,
		Duration:   cfg.Duration,
		Timeout:    cfg.Timeout,
		Name:       cfg.Name,
		Output:     cfg.Output,
		MinSuccess: cfg.MinSuccess,
	}

	if _, err := r.Run(gen.Targeter()); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}
