// Package cappedset は容量上限付きのキー付きコンテナを提供します。
// 最大 capacity 個の (キー, 値) を保持し、最小値を持つエントリを O(1) で返します。
//
// 同値のエントリが複数ある場合は、その値を先に持ったエントリが最小として扱われます。
// 同じ値への Update は順序を変えません。
package cappedset

import (
	"sync"

	"github.com/holiman/uint256"

	"github.com/amakane-hakari/cappedset/internal/metrics"
)

// Set は容量上限付きのキー付きコンテナです。全操作は単一の排他ロックで直列化されます。
type Set[K comparable] struct {
	mu       sync.Mutex
	cfg      Config
	capacity int
	entries  map[K]entry
	tracker  Tracker[K]
	clock    uint64

	inserts uint64
	updates uint64
	removes uint64
}

// New は新しい Set を作成します。capacity が 0 以下なら ErrInvalidCapacity を返します。
func New[K comparable](capacity int, opts ...Option) (*Set[K], error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	cfg := Config{Tracker: TrackerHeap}
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.Noop{}
	}

	s := &Set[K]{
		cfg:      cfg,
		capacity: capacity,
		entries:  make(map[K]entry, capacity),
		tracker:  newTracker[K](cfg.Tracker, capacity),
	}
	s.cfg.Metrics.SetCapacity(capacity)
	s.cfg.Metrics.SetSize(0)
	if s.cfg.Logger != nil {
		s.cfg.Logger.Debug("cappedset.new", "capacity", capacity, "tracker", cfg.Tracker.String())
	}
	return s, nil
}

// Insert は新しいキーと値を追加します。
// 重複チェックは容量チェックより先に行われます。
func (s *Set[K]) Insert(key K, v uint256.Int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[key]; exists {
		return s.reject(&KeyError[K]{Op: "insert", Key: key, Err: ErrDuplicateKey})
	}
	if len(s.entries) >= s.capacity {
		return s.reject(ErrCapacityExceeded)
	}

	prevKey, prevVal, hadMin := s.tracker.Min()
	s.clock++
	s.entries[key] = entry{val: v, stamp: s.clock}
	s.tracker.OnInsert(key, v, s.clock)
	s.inserts++

	s.cfg.Metrics.IncInsert()
	s.cfg.Metrics.SetSize(len(s.entries))
	if s.cfg.Logger != nil {
		s.cfg.Logger.Debug("cappedset.insert", "key", key, "value", v.Dec(), "size", len(s.entries))
	}
	s.observeMin(prevKey, prevVal, hadMin)
	return nil
}

// Update は既存キーの値を置き換えます。
func (s *Set[K]) Update(key K, v uint256.Int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, exists := s.entries[key]
	if !exists {
		return s.reject(&KeyError[K]{Op: "update", Key: key, Err: ErrKeyNotFound})
	}

	s.updates++
	s.cfg.Metrics.IncUpdate()
	if cur.val.Eq(&v) {
		// 同値なら stamp を維持し、順序も変えない
		if s.cfg.Logger != nil {
			s.cfg.Logger.Debug("cappedset.update", "key", key, "value", v.Dec(), "unchanged", true)
		}
		return nil
	}

	prevKey, prevVal, hadMin := s.tracker.Min()
	s.clock++
	s.entries[key] = entry{val: v, stamp: s.clock}
	s.tracker.OnUpdate(key, v, s.clock)

	if s.cfg.Logger != nil {
		s.cfg.Logger.Debug("cappedset.update", "key", key, "value", v.Dec())
	}
	s.observeMin(prevKey, prevVal, hadMin)
	return nil
}

// Remove はキーを削除します。
func (s *Set[K]) Remove(key K) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[key]; !exists {
		return s.reject(&KeyError[K]{Op: "remove", Key: key, Err: ErrKeyNotFound})
	}

	prevKey, prevVal, hadMin := s.tracker.Min()
	delete(s.entries, key)
	s.tracker.OnDelete(key)
	s.removes++

	s.cfg.Metrics.IncRemove()
	s.cfg.Metrics.SetSize(len(s.entries))
	if s.cfg.Logger != nil {
		s.cfg.Logger.Debug("cappedset.remove", "key", key, "size", len(s.entries))
	}
	s.observeMin(prevKey, prevVal, hadMin)
	return nil
}

// Min は最小値を持つエントリのキーと値を返します。空なら ErrEmpty を返します。
func (s *Set[K]) Min() (K, uint256.Int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k, v, ok := s.tracker.Min()
	if !ok {
		return k, v, ErrEmpty
	}
	return k, v, nil
}

// Get はキーに対応する値を返します。
func (s *Set[K]) Get(key K) (uint256.Int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	return e.val, ok
}

// Contains はキーが存在するかを返します。
func (s *Set[K]) Contains(key K) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.entries[key]
	return ok
}

// Len は現在のエントリ数を返します。
func (s *Set[K]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Cap は容量を返します。
func (s *Set[K]) Cap() int {
	// capacity は不変なのでロック不要
	return s.capacity
}

// Stats は現在の状態のスナップショットを返します。
func (s *Set[K]) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{
		Size:     len(s.entries),
		Capacity: s.capacity,
		Inserts:  s.inserts,
		Updates:  s.updates,
		Removes:  s.removes,
	}
}

func (s *Set[K]) reject(err error) error {
	reason := Reason(err)
	s.cfg.Metrics.IncRejected(reason)
	if s.cfg.Logger != nil {
		s.cfg.Logger.Debug("cappedset.reject", "reason", reason, "err", err.Error())
	}
	return err
}

func (s *Set[K]) observeMin(prevKey K, prevVal uint256.Int, hadMin bool) {
	k, v, ok := s.tracker.Min()
	if ok == hadMin && (!ok || (k == prevKey && v.Eq(&prevVal))) {
		return
	}
	s.cfg.Metrics.IncMinChanged()
	if s.cfg.Logger == nil {
		return
	}
	if !ok {
		s.cfg.Logger.Info("cappedset.min.changed", "empty", true)
		return
	}
	s.cfg.Logger.Info("cappedset.min.changed", "key", k, "value", v.Dec())
}
