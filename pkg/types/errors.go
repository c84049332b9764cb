package types

import (
	"errors"
	"fmt"
)

// Store lifecycle errors.
var (
	// ErrStorageClosed is returned when a data operation requiring an open
	// storage handle runs while the store is closed. The storage engine is
	// never reached in this case.
	ErrStorageClosed = errors.New("database is closed")

	// ErrStoreStopped is returned for operations submitted after Shutdown.
	ErrStoreStopped = errors.New("tab store is stopped")
)

// OpError wraps a storage engine failure with the name of the operation that
// produced it. The underlying error is preserved for errors.Is/As.
type OpError struct {
	Op  string
	Err error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}
