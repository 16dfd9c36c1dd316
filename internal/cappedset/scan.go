package cappedset

import "github.com/holiman/uint256"

// ScanTracker は線形走査で最小値を追跡します。
// 現在の最小値をキャッシュし、それが削除されたか値が上がった場合のみ全体を走査します。
type ScanTracker[K comparable] struct {
	entries map[K]entry
	minKey  K
	hasMin  bool
}

// NewScanTracker は新しい ScanTracker を作成します。
func NewScanTracker[K comparable](capacity int) *ScanTracker[K] {
	if capacity < 0 {
		capacity = 0
	}
	return &ScanTracker[K]{entries: make(map[K]entry, capacity)}
}

// OnInsert はキーを追加し、必要ならキャッシュを差し替えます。
func (t *ScanTracker[K]) OnInsert(key K, v uint256.Int, stamp uint64) {
	e := entry{val: v, stamp: stamp}
	t.entries[key] = e
	t.offer(key, e)
}

// OnUpdate はキーの値を差し替えます。
func (t *ScanTracker[K]) OnUpdate(key K, v uint256.Int, stamp uint64) {
	if _, ok := t.entries[key]; !ok {
		return
	}
	e := entry{val: v, stamp: stamp}
	t.entries[key] = e
	if t.hasMin && t.minKey == key {
		// 最小値が上がった可能性があるので再走査
		t.rescan()
		return
	}
	t.offer(key, e)
}

// OnDelete はキーを取り除きます。
func (t *ScanTracker[K]) OnDelete(key K) {
	if _, ok := t.entries[key]; !ok {
		return
	}
	delete(t.entries, key)
	if t.hasMin && t.minKey == key {
		t.rescan()
	}
}

// Min はキャッシュされた最小値を返します。
func (t *ScanTracker[K]) Min() (K, uint256.Int, bool) {
	if !t.hasMin {
		var zero K
		return zero, uint256.Int{}, false
	}
	return t.minKey, t.entries[t.minKey].val, true
}

// Len は追跡中のキー数を返します。
func (t *ScanTracker[K]) Len() int { return len(t.entries) }

func (t *ScanTracker[K]) offer(key K, e entry) {
	if !t.hasMin {
		t.minKey, t.hasMin = key, true
		return
	}
	cur := t.entries[t.minKey]
	if less(&e, &cur) {
		t.minKey = key
	}
}

func (t *ScanTracker[K]) rescan() {
	var zero K
	t.minKey, t.hasMin = zero, false
	var best entry
	for k, e := range t.entries {
		if !t.hasMin || less(&e, &best) {
			t.minKey, best, t.hasMin = k, e, true
		}
	}
}
