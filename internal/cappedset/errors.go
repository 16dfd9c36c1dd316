package cappedset

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCapacity は容量に 0 以下が指定されたことを表します。
	ErrInvalidCapacity = errors.New("cappedset: capacity must be positive")
	// ErrDuplicateKey は既に存在するキーを挿入しようとしたことを表します。
	ErrDuplicateKey = errors.New("cappedset: key already exists")
	// ErrCapacityExceeded は満杯のセットに新しいキーを挿入しようとしたことを表します。
	ErrCapacityExceeded = errors.New("cappedset: capacity exceeded")
	// ErrKeyNotFound は存在しないキーを更新・削除しようとしたことを表します。
	ErrKeyNotFound = errors.New("cappedset: key not found")
	// ErrEmpty は空のセットに対して最小値を問い合わせたことを表します。
	ErrEmpty = errors.New("cappedset: set is empty")
)

// KeyError は特定のキーに起因するエラーです。Err は ErrDuplicateKey か ErrKeyNotFound。
type KeyError[K comparable] struct {
	Op  string
	Key K
	Err error
}

func (e *KeyError[K]) Error() string {
	return fmt.Sprintf("%s %v: %v", e.Op, e.Key, e.Err)
}

func (e *KeyError[K]) Unwrap() error { return e.Err }

// Reason はエラーをメトリクス用の短いラベルに変換します。
func Reason(err error) string {
	switch {
	case errors.Is(err, ErrDuplicateKey):
		return "duplicate_key"
	case errors.Is(err, ErrCapacityExceeded):
		return "capacity_exceeded"
	case errors.Is(err, ErrKeyNotFound):
		return "key_not_found"
	case errors.Is(err, ErrEmpty):
		return "empty"
	case errors.Is(err, ErrInvalidCapacity):
		return "invalid_capacity"
	default:
		return "unknown"
	}
}
