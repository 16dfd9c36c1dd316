package cappedset

import "github.com/holiman/uint256"

type entry struct {
	val   uint256.Int
	stamp uint64 // 値が確定した論理時刻。同値の場合は小さい方が優先
}

// less は (値, stamp) の辞書順で a が b より前かを返します。
func less(a, b *entry) bool {
	if c := a.val.Cmp(&b.val); c != 0 {
		return c < 0
	}
	return a.stamp < b.stamp
}

// Stats はセットの状態のスナップショットです。
type Stats struct {
	Size     int    `json:"size"`
	Capacity int    `json:"capacity"`
	Inserts  uint64 `json:"inserts"`
	Updates  uint64 `json:"updates"`
	Removes  uint64 `json:"removes"`
}
