package metrics

import (
	"sync"
	"sync/atomic"
)

// Interface はメトリクス更新用抽象
type Interface interface {
	IncInsert()
	IncUpdate()
	IncRemove()
	IncRejected(reason string)
	IncMinChanged()
	SetSize(n int)
	SetCapacity(n int)
}

// Noop は何もしないメトリクス実装
type Noop struct{}

// IncInsert は何もしないメトリクス実装
func (Noop) IncInsert() {}

// IncUpdate は何もしないメトリクス実装
func (Noop) IncUpdate() {}

// IncRemove は何もしないメトリクス実装
func (Noop) IncRemove() {}

// IncRejected は何もしないメトリクス実装
func (Noop) IncRejected(_ string) {}

// IncMinChanged は何もしないメトリクス実装
func (Noop) IncMinChanged() {}

// SetSize は何もしないメトリクス実装
func (Noop) SetSize(_ int) {}

// SetCapacity は何もしないメトリクス実装
func (Noop) SetCapacity(_ int) {}

// Simple はシンプルなメトリクス実装です。
type Simple struct {
	Inserts    atomic.Uint64
	Updates    atomic.Uint64
	Removes    atomic.Uint64
	MinChanged atomic.Uint64
	Size       atomic.Uint64
	Capacity   atomic.Uint64

	mu       sync.Mutex
	rejected map[string]uint64
}

// NewSimple は新しい Simple メトリクスを作成します。
func NewSimple() *Simple { return &Simple{rejected: make(map[string]uint64)} }

// IncInsert は挿入をカウントします。
func (m *Simple) IncInsert() { m.Inserts.Add(1) }

// IncUpdate は更新をカウントします。
func (m *Simple) IncUpdate() { m.Updates.Add(1) }

// IncRemove は削除をカウントします。
func (m *Simple) IncRemove() { m.Removes.Add(1) }

// IncRejected は拒否された操作を理由ごとにカウントします。
func (m *Simple) IncRejected(reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.rejected == nil {
		m.rejected = make(map[string]uint64)
	}
	m.rejected[reason]++
}

// Rejected は理由ごとの拒否数を返します。
func (m *Simple) Rejected(reason string) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rejected[reason]
}

// IncMinChanged は最小値エントリの変化をカウントします。
func (m *Simple) IncMinChanged() { m.MinChanged.Add(1) }

// SetSize は現在のサイズを設定します。
func (m *Simple) SetSize(n int) {
	if n >= 0 {
		m.Size.Store(uint64(n))
	}
}

// SetCapacity は容量を設定します。
func (m *Simple) SetCapacity(n int) {
	if n >= 0 {
		m.Capacity.Store(uint64(n))
	}
}
