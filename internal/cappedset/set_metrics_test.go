package cappedset

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"github.com/amakane-hakari/cappedset/internal/metrics"
)

func TestSet_MetricsBasic(t *testing.T) {
	m := metrics.NewSimple()
	s, err := New[common.Address](2, WithMetrics(m))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	_ = s.Insert(k1, u(5)) // min: k1
	_ = s.Insert(k2, u(3)) // min: k2
	_ = s.Insert(k3, u(1)) // capacity
	_ = s.Insert(k1, u(1)) // duplicate
	_ = s.Update(k1, u(1)) // min: k1
	_ = s.Update(k1, u(1)) // 同値
	_ = s.Update(k4, u(1)) // not found
	_ = s.Remove(k1)       // min: k2
	_, _, _ = s.Min()

	if got := m.Inserts.Load(); got != 2 {
		t.Fatalf("Inserts want 2 got %d", got)
	}
	if got := m.Updates.Load(); got != 2 {
		t.Fatalf("Updates want 2 got %d", got)
	}
	if got := m.Removes.Load(); got != 1 {
		t.Fatalf("Removes want 1 got %d", got)
	}
	if got := m.MinChanged.Load(); got != 4 {
		t.Fatalf("MinChanged want 4 got %d", got)
	}
	if got := m.Size.Load(); got != 1 {
		t.Fatalf("Size want 1 got %d", got)
	}
	if got := m.Capacity.Load(); got != 2 {
		t.Fatalf("Capacity want 2 got %d", got)
	}
	if got := m.Rejected("capacity_exceeded"); got != 1 {
		t.Fatalf("capacity_exceeded want 1 got %d", got)
	}
	if got := m.Rejected("duplicate_key"); got != 1 {
		t.Fatalf("duplicate_key want 1 got %d", got)
	}
	if got := m.Rejected("key_not_found"); got != 1 {
		t.Fatalf("key_not_found want 1 got %d", got)
	}
}
