package cappedset

import (
	"container/heap"

	"github.com/holiman/uint256"
)

type heapItem[K comparable] struct {
	key   K
	e     entry
	index int
}

// minHeap は heap.Interface の実装。index は Swap で常に同期される。
type minHeap[K comparable] []*heapItem[K]

func (h minHeap[K]) Len() int           { return len(h) }
func (h minHeap[K]) Less(i, j int) bool { return less(&h[i].e, &h[j].e) }

func (h minHeap[K]) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *minHeap[K]) Push(x any) {
	it := x.(*heapItem[K])
	it.index = len(*h)
	*h = append(*h, it)
}

func (h *minHeap[K]) Pop() any {
	old := *h
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	it.index = -1
	*h = old[:n-1]
	return it
}

// HeapTracker は索引付き二分ヒープで最小値を追跡します。
// 追加・更新・削除は O(log n)、Min は O(1) です。
type HeapTracker[K comparable] struct {
	items  minHeap[K]
	lookup map[K]*heapItem[K]
}

// NewHeapTracker は新しい HeapTracker を作成します。
func NewHeapTracker[K comparable](capacity int) *HeapTracker[K] {
	if capacity < 0 {
		capacity = 0
	}
	return &HeapTracker[K]{
		items:  make(minHeap[K], 0, capacity),
		lookup: make(map[K]*heapItem[K], capacity),
	}
}

// OnInsert はヒープにキーを追加します。
func (t *HeapTracker[K]) OnInsert(key K, v uint256.Int, stamp uint64) {
	it := &heapItem[K]{key: key, e: entry{val: v, stamp: stamp}}
	heap.Push(&t.items, it)
	t.lookup[key] = it
}

// OnUpdate はキーの値を差し替え、ヒープ内の位置を修正します。
func (t *HeapTracker[K]) OnUpdate(key K, v uint256.Int, stamp uint64) {
	it, ok := t.lookup[key]
	if !ok {
		return
	}
	it.e = entry{val: v, stamp: stamp}
	heap.Fix(&t.items, it.index)
}

// OnDelete はヒープからキーを取り除きます。
func (t *HeapTracker[K]) OnDelete(key K) {
	it, ok := t.lookup[key]
	if !ok {
		return
	}
	heap.Remove(&t.items, it.index)
	delete(t.lookup, key)
}

// Min はヒープの根を返します。
func (t *HeapTracker[K]) Min() (K, uint256.Int, bool) {
	if len(t.items) == 0 {
		var zero K
		return zero, uint256.Int{}, false
	}
	root := t.items[0]
	return root.key, root.e.val, true
}

// Len はヒープの要素数を返します。
func (t *HeapTracker[K]) Len() int { return len(t.items) }
