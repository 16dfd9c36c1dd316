package cappedset

import (
	"github.com/amakane-hakari/cappedset/internal/metrics"
)

type logLike interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Error(msg string, args ...any)
}

// Config はセットの設定を表します。
type Config struct {
	Logger  logLike
	Metrics metrics.Interface
	Tracker TrackerKind // 既定は TrackerHeap
}

// Option はセットのオプションを設定する関数です。
type Option func(*Config)

// WithLogger はセットのロガーを設定するオプションです。
func WithLogger(l logLike) Option {
	return func(c *Config) { c.Logger = l }
}

// WithMetrics はセットのメトリクスを設定するオプションです。
func WithMetrics(m metrics.Interface) Option {
	return func(c *Config) { c.Metrics = m }
}

// WithTracker は最小値追跡の実装を選択するオプションです。
func WithTracker(k TrackerKind) Option {
	return func(c *Config) { c.Tracker = k }
}
