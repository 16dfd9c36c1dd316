package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Prom は Prometheus を使ったメトリクス実装です。
type Prom struct {
	inserts    prometheus.Counter
	updates    prometheus.Counter
	removes    prometheus.Counter
	rejected   *prometheus.CounterVec
	minChanged prometheus.Counter
	size       prometheus.Gauge
	capacity   prometheus.Gauge
}

// NewProm は Prometheus を使ったメトリクス実装を初期化し、reg に登録します。
// reg が nil の場合は prometheus.DefaultRegisterer を使います。
func NewProm(namespace string, reg prometheus.Registerer) *Prom {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	makeC := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		})
	}
	makeG := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		})
	}

	p := &Prom{
		inserts: makeC("insert_total", "Number of entries inserted"),
		updates: makeC("update_total", "Number of entries updated"),
		removes: makeC("remove_total", "Number of entries removed"),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rejected_total",
			Help:      "Number of rejected operations by reason",
		}, []string{"reason"}),
		minChanged: makeC("min_changed_total", "Number of times the minimum entry changed"),
		size:       makeG("entries", "Current number of entries"),
		capacity:   makeG("capacity", "Maximum number of entries"),
	}

	// 同じ Registerer に 2 回登録すると panic するので呼び出し側で 1 回だけ作る
	reg.MustRegister(
		p.inserts, p.updates, p.removes, p.rejected, p.minChanged, p.size, p.capacity,
	)
	return p
}

// IncInsert は挿入をカウントします。
func (p *Prom) IncInsert() { p.inserts.Inc() }

// IncUpdate は更新をカウントします。
func (p *Prom) IncUpdate() { p.updates.Inc() }

// IncRemove は削除をカウントします。
func (p *Prom) IncRemove() { p.removes.Inc() }

// IncRejected は拒否された操作を理由ごとにカウントします。
func (p *Prom) IncRejected(reason string) { p.rejected.WithLabelValues(reason).Inc() }

// IncMinChanged は最小値エントリの変化をカウントします。
func (p *Prom) IncMinChanged() { p.minChanged.Inc() }

// SetSize は現在のサイズを設定します。
func (p *Prom) SetSize(n int) {
	if n >= 0 {
		p.size.Set(float64(n))
	}
}

// SetCapacity は容量を設定します。
func (p *Prom) SetCapacity(n int) {
	if n >= 0 {
		p.capacity.Set(float64(n))
	}
}
