package attacker

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	vegeta "github.com/tsenart/vegeta/v12/lib"
)

// ResultSummary は 負荷試験の結果概要を表します。
type ResultSummary struct {
	Requests    uint64                `json:"requests"`
	Rate        float64               `json:"rate_req_per_sec"`
	Success     float64               `json:"success_ratio"`
	Throughput  float64               `json:"throughput_bytes_per_sec"`
	Latencies   vegeta.LatencyMetrics `json:"latencies"`
	StatusCodes map[string]int        `json:"status_codes"`
	Errors      []string              `json:"errors"`
	Duration    time.Duration         `json:"duration"`
}

// Runner は 負荷試験を実行するための構造体です。
type Runner struct {
	Rate       int
	Duration   time.Duration
	Timeout    time.Duration
	Name       string
	Output     string
	MinSuccess float64 // 0 なら判定しない
}

// Run は 指定されたターゲッターを使用して負荷試験を実行し、結果の概要を返します。
// 409/404 は容量超過や削除済みキーへの操作として想定内のため、vegeta の Success には含まれません。
func (r *Runner) Run(targeter vegeta.Targeter) (*ResultSummary, error) {
	f, err := os.Create(r.Output)
	if err != nil {
		return nil, fmt.Errorf("create output: %w", err)
	}
	defer f.Close()

	rate := vegeta.Rate{Freq: r.Rate, Per: time.Second}
	att := vegeta.NewAttacker(vegeta.Timeout(r.Timeout))
	enc := vegeta.NewEncoder(f)

	var metrics vegeta.Metrics
	for res := range att.Attack(targeter, rate, r.Duration, r.Name) {
		metrics.Add(res)
		if err := enc.Encode(res); err != nil {
			return nil, fmt.Errorf("encode: %w", err)
		}
	}
	metrics.Close()

	summary := &ResultSummary{
		Requests:    metrics.Requests,
		Rate:        metrics.Rate,
		Success:     metrics.Success,
		Throughput:  metrics.Throughput,
		Latencies:   metrics.Latencies,
		StatusCodes: metrics.StatusCodes,
		Errors:      metrics.Errors,
		Duration:    metrics.Duration,
	}

	out, _ := json.MarshalIndent(summary, "", " ")
	fmt.Printf("\n=== Summary(JSON) ===\n%s\n", string(out))

	if r.MinSuccess > 0 && summary.Success < r.MinSuccess {
		return summary, fmt.Errorf("success ratio %.3f below %.3f", summary.Success, r.MinSuccess)
	}
	return summary, nil
}
