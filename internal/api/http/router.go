package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	ilog "github.com/amakane-hakari/cappedset/internal/log"
)

// RouterOption はルーターのオプションを設定する関数です。
type RouterOption func(*routerConfig)

type routerConfig struct {
	logger   ilog.Logger
	gatherer prometheus.Gatherer
}

// WithRouterLogger はアクセスログとパニックログの出力先を設定します。
func WithRouterLogger(l ilog.Logger) RouterOption {
	return func(c *routerConfig) { c.logger = l }
}

// WithGatherer は /metrics で公開する Gatherer を設定します。未設定なら /metrics は公開しません。
func WithGatherer(g prometheus.Gatherer) RouterOption {
	return func(c *routerConfig) { c.gatherer = g }
}

// NewRouter はルーターを作成します。
func NewRouter(reg Registry, opts ...RouterOption) http.Handler {
	var cfg routerConfig
	for _, o := range opts {
		o(&cfg)
	}

	r := chi.NewRouter()
	r.Use(RequestIDMiddleware())
	r.Use(AccessLog(cfg.logger))
	r.Use(RecoverMiddleware(cfg.logger))

	r.Get("/health", healthHandler)
	if cfg.gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(cfg.gatherer, promhttp.HandlerOpts{}))
	}

	h := &entriesHandler{reg: reg}
	h.mount(r)

	r.NotFound(HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) error {
		return NotFound("route not found")
	}).ServeHTTP)
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, NewAppError(http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed", nil))
	})
	return r
}
