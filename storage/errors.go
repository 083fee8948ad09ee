package storage

import "errors"

var (
	// ErrInvalidInterval signals interval construction with negative bounds.
	ErrInvalidInterval = errors.New("storage: invalid interval")
	// ErrOutOfRange signals access outside the storage capacity.
	ErrOutOfRange = errors.New("storage: access out of range")
	// ErrStorageFull signals that an allocation exceeds the remaining capacity.
	ErrStorageFull = errors.New("storage: capacity exhausted")
)

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
