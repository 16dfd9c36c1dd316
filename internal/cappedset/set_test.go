package cappedset

import (
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	k1 = common.HexToAddress("0xA5eF618165ED017c8fb1ACA3FC35749626AbdC9E")
	k2 = common.HexToAddress("0x5CC3cEBBf5e6386E5827Cc90a2D5C8a06BB6e912")
	k3 = common.HexToAddress("0x5215cbeCc900220f7112b3ec1545e015cAd1405A")
	k4 = common.HexToAddress("0x2eAEf6DDA7e0E718DE7D863a790bEB49Cc895a01")
	k5 = common.HexToAddress("0xe85acDfBFe27aE37Df3D680bBBbAec25be1e5A48")
	k6 = common.HexToAddress("0xd542842dfe028500b1c351f84B1c5Dfb89b53893")
)

func u(x uint64) uint256.Int { return *uint256.NewInt(x) }

var trackerKinds = []TrackerKind{TrackerHeap, TrackerScan}

// forEachTracker は同じテストを全ての Tracker 実装で実行します。
func forEachTracker(t *testing.T, fn func(t *testing.T, kind TrackerKind)) {
	t.Helper()
	for _, kind := range trackerKinds {
		t.Run(kind.String(), func(t *testing.T) {
			fn(t, kind)
		})
	}
}

func newSet(t *testing.T, capacity int, kind TrackerKind) *Set[common.Address] {
	t.Helper()
	s, err := New[common.Address](capacity, WithTracker(kind))
	require.NoError(t, err)
	return s
}

func requireMin(t *testing.T, s *Set[common.Address], wantKey common.Address, want uint64) {
	t.Helper()
	k, v, err := s.Min()
	require.NoError(t, err)
	assert.Equal(t, wantKey, k, "min key")
	assert.Equal(t, want, v.Uint64(), "min value")
}

func TestNew_InvalidCapacity(t *testing.T) {
	for _, c := range []int{0, -1} {
		s, err := New[common.Address](c)
		require.ErrorIs(t, err, ErrInvalidCapacity)
		require.Nil(t, s)
	}
}

func TestNew_Empty(t *testing.T) {
	forEachTracker(t, func(t *testing.T, kind TrackerKind) {
		s := newSet(t, 4, kind)
		assert.Equal(t, 0, s.Len())
		assert.Equal(t, 4, s.Cap())
		_, _, err := s.Min()
		require.ErrorIs(t, err, ErrEmpty)
	})
}

func TestSet_Scenarios(t *testing.T) {
	forEachTracker(t, func(t *testing.T, kind TrackerKind) {
		// A
		s := newSet(t, 3, kind)
		require.NoError(t, s.Insert(k1, u(10)))
		require.NoError(t, s.Insert(k2, u(50)))
		require.NoError(t, s.Insert(k3, u(25)))
		requireMin(t, s, k1, 10)

		// B
		require.NoError(t, s.Update(k1, u(1000)))
		requireMin(t, s, k3, 25)

		// C
		require.NoError(t, s.Remove(k3))
		requireMin(t, s, k2, 50)
		assert.Equal(t, 2, s.Len())
	})
}

func TestSet_TieKeepsEarliest(t *testing.T) {
	forEachTracker(t, func(t *testing.T, kind TrackerKind) {
		// D
		s := newSet(t, 2, kind)
		require.NoError(t, s.Insert(k1, u(5)))
		require.NoError(t, s.Insert(k2, u(5)))
		requireMin(t, s, k1, 5)
	})
}

func TestSet_TieOnUpdate(t *testing.T) {
	forEachTracker(t, func(t *testing.T, kind TrackerKind) {
		s := newSet(t, 3, kind)
		require.NoError(t, s.Insert(k1, u(5)))
		require.NoError(t, s.Insert(k2, u(9)))

		// 後から同値になったエントリは現在の最小値を置き換えない
		require.NoError(t, s.Update(k2, u(5)))
		requireMin(t, s, k1, 5)

		// 同値への更新は順序を変えない
		require.NoError(t, s.Update(k1, u(5)))
		requireMin(t, s, k1, 5)

		// 最小値が外れたら、次に早く同値を持った k2
		require.NoError(t, s.Update(k1, u(6)))
		requireMin(t, s, k2, 5)

		// k1 が再び 5 になっても k2 の方が先
		require.NoError(t, s.Update(k1, u(5)))
		requireMin(t, s, k2, 5)

		require.NoError(t, s.Remove(k2))
		requireMin(t, s, k1, 5)
	})
}

func TestSet_CapacityAndDuplicate(t *testing.T) {
	forEachTracker(t, func(t *testing.T, kind TrackerKind) {
		// E
		s := newSet(t, 1, kind)
		require.NoError(t, s.Insert(k1, u(1)))

		err := s.Insert(k2, u(2))
		require.ErrorIs(t, err, ErrCapacityExceeded)

		// 満杯でも重複は重複として報告される
		err = s.Insert(k1, u(99))
		require.ErrorIs(t, err, ErrDuplicateKey)
		var ke *KeyError[common.Address]
		require.True(t, errors.As(err, &ke))
		assert.Equal(t, k1, ke.Key)
		assert.Equal(t, "insert", ke.Op)

		requireMin(t, s, k1, 1)
		assert.Equal(t, 1, s.Len())
	})
}

func TestSet_KeyNotFound(t *testing.T) {
	forEachTracker(t, func(t *testing.T, kind TrackerKind) {
		// F
		s := newSet(t, 2, kind)
		for _, err := range []error{s.Remove(k1), s.Update(k1, u(1))} {
			require.ErrorIs(t, err, ErrKeyNotFound)
			var ke *KeyError[common.Address]
			require.True(t, errors.As(err, &ke))
			assert.Equal(t, k1, ke.Key)
		}

		require.NoError(t, s.Insert(k1, u(1)))
		require.NoError(t, s.Insert(k2, u(2)))
		require.ErrorIs(t, s.Remove(k4), ErrKeyNotFound)
		require.ErrorIs(t, s.Update(k4, u(111)), ErrKeyNotFound)
		assert.Equal(t, 2, s.Len())
	})
}

func TestSet_FailedOpsLeaveStateUnchanged(t *testing.T) {
	forEachTracker(t, func(t *testing.T, kind TrackerKind) {
		s := newSet(t, 2, kind)
		require.NoError(t, s.Insert(k1, u(7)))
		require.NoError(t, s.Insert(k2, u(3)))
		before := s.Stats()

		require.Error(t, s.Insert(k3, u(1)))
		require.Error(t, s.Insert(k1, u(1)))
		require.Error(t, s.Update(k3, u(1)))
		require.Error(t, s.Remove(k3))

		assert.Equal(t, before, s.Stats())
		requireMin(t, s, k2, 3)
		v, ok := s.Get(k1)
		require.True(t, ok)
		assert.Equal(t, uint64(7), v.Uint64())
	})
}

func TestSet_InsertRemoveRoundTrip(t *testing.T) {
	forEachTracker(t, func(t *testing.T, kind TrackerKind) {
		s := newSet(t, 3, kind)
		require.NoError(t, s.Insert(k1, u(10)))
		require.NoError(t, s.Insert(k2, u(20)))

		require.NoError(t, s.Insert(k3, u(1)))
		requireMin(t, s, k3, 1)
		require.NoError(t, s.Remove(k3))

		assert.Equal(t, 2, s.Len())
		assert.False(t, s.Contains(k3))
		requireMin(t, s, k1, 10)
	})
}

func TestSet_ManualData(t *testing.T) {
	data := []struct {
		key common.Address
		val uint64
	}{
		{k1, 10}, {k2, 50}, {k3, 25}, {k4, 12}, {k5, 8}, {k6, 80},
	}
	forEachTracker(t, func(t *testing.T, kind TrackerKind) {
		s := newSet(t, len(data), kind)
		for _, d := range data {
			require.NoError(t, s.Insert(d.key, u(d.val)))
		}
		requireMin(t, s, k5, 8)

		require.ErrorIs(t, s.Insert(common.HexToAddress("0x01"), u(10)), ErrCapacityExceeded)

		// 最小値を順に削除
		require.NoError(t, s.Remove(k5))
		requireMin(t, s, k1, 10)
		require.NoError(t, s.Remove(k1))
		requireMin(t, s, k4, 12)

		// 既存キーを最小値未満に更新
		require.NoError(t, s.Update(k6, u(11)))
		requireMin(t, s, k6, 11)

		// 全削除で空に戻る
		for _, k := range []common.Address{k2, k3, k4, k6} {
			require.NoError(t, s.Remove(k))
		}
		_, _, err := s.Min()
		require.ErrorIs(t, err, ErrEmpty)
	})
}

func TestSet_FullWidthValues(t *testing.T) {
	forEachTracker(t, func(t *testing.T, kind TrackerKind) {
		s := newSet(t, 2, kind)
		maxU := *new(uint256.Int).SetAllOne()
		big := *new(uint256.Int).Lsh(uint256.NewInt(1), 200)

		require.NoError(t, s.Insert(k1, maxU))
		require.NoError(t, s.Insert(k2, big))
		k, v, err := s.Min()
		require.NoError(t, err)
		assert.Equal(t, k2, k)
		assert.True(t, v.Eq(&big))

		require.NoError(t, s.Update(k2, maxU))
		k, _, err = s.Min()
		require.NoError(t, err)
		assert.Equal(t, k1, k, "tie at max value keeps the earlier entry")
	})
}

func TestSet_Stats(t *testing.T) {
	s := newSet(t, 4, TrackerHeap)
	require.NoError(t, s.Insert(k1, u(1)))
	require.NoError(t, s.Insert(k2, u(2)))
	require.NoError(t, s.Update(k1, u(3)))
	require.NoError(t, s.Remove(k2))

	assert.Equal(t, Stats{Size: 1, Capacity: 4, Inserts: 2, Updates: 1, Removes: 1}, s.Stats())
}

func TestParseTrackerKind(t *testing.T) {
	for in, want := range map[string]TrackerKind{"": TrackerHeap, "heap": TrackerHeap, "SCAN": TrackerScan, "linear": TrackerScan} {
		got, err := ParseTrackerKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseTrackerKind("tree")
	require.Error(t, err)
}
