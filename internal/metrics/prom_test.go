package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestProm_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewProm("cs", reg)

	p.IncInsert()
	p.IncInsert()
	p.IncUpdate()
	p.IncRemove()
	p.IncRejected("duplicate_key")
	p.IncRejected("duplicate_key")
	p.IncRejected("capacity_exceeded")
	p.IncMinChanged()
	p.SetSize(3)
	p.SetCapacity(8)
	p.SetSize(-1) // 無視される

	if got := testutil.ToFloat64(p.inserts); got != 2 {
		t.Fatalf("inserts want 2 got %v", got)
	}
	if got := testutil.ToFloat64(p.rejected.WithLabelValues("duplicate_key")); got != 2 {
		t.Fatalf("duplicate_key want 2 got %v", got)
	}
	if got := testutil.ToFloat64(p.size); got != 3 {
		t.Fatalf("size want 3 got %v", got)
	}
	if got := testutil.ToFloat64(p.capacity); got != 8 {
		t.Fatalf("capacity want 8 got %v", got)
	}
	n, err := testutil.GatherAndCount(reg)
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if n != 8 {
		t.Fatalf("expected 8 series, got %d", n)
	}
}

func TestSimple_Rejected(t *testing.T) {
	var s Simple // ゼロ値でも使える
	s.IncRejected("empty")
	if s.Rejected("empty") != 1 || s.Rejected("other") != 0 {
		t.Fatalf("unexpected rejected counts")
	}
}
