package cappedset

import (
	"fmt"
	"strings"

	"github.com/holiman/uint256"
)

// Tracker は最小値エントリを追跡する索引のインターフェースを表します。
// Set が排他ロックを保持した状態で呼び出すため、実装側での同期は不要です。
type Tracker[K comparable] interface {
	// 新しいキーが追加された後に呼ぶ。
	OnInsert(key K, v uint256.Int, stamp uint64)
	// 既存キーの値が変わった後に呼ぶ。stamp は新しい論理時刻。
	OnUpdate(key K, v uint256.Int, stamp uint64)
	// キーが削除された後に呼ぶ。
	OnDelete(key K)
	// 最小値エントリを返す（空なら ok=false）
	Min() (key K, v uint256.Int, ok bool)
	Len() int
}

// TrackerKind は Tracker の実装種別です。
type TrackerKind int

const (
	// TrackerHeap は索引付き二分ヒープ（既定）
	TrackerHeap TrackerKind = iota
	// TrackerScan は線形走査
	TrackerScan
)

func (k TrackerKind) String() string {
	switch k {
	case TrackerHeap:
		return "heap"
	case TrackerScan:
		return "scan"
	default:
		return fmt.Sprintf("TrackerKind(%d)", int(k))
	}
}

// ParseTrackerKind は設定文字列から TrackerKind を取得します。
func ParseTrackerKind(s string) (TrackerKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "heap":
		return TrackerHeap, nil
	case "scan", "linear":
		return TrackerScan, nil
	default:
		return 0, fmt.Errorf("unknown tracker %q", s)
	}
}

func newTracker[K comparable](kind TrackerKind, capacity int) Tracker[K] {
	if kind == TrackerScan {
		return NewScanTracker[K](capacity)
	}
	return NewHeapTracker[K](capacity)
}
