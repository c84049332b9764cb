package tabstore

import (
	"log/slog"
	"slices"
	"sync"

	"github.com/mesh-intelligence/tabvault/pkg/types"
)

// jobQueueDepth bounds the dispatch queue. Submission blocks (preserving
// FIFO order) once the queue is full.
const jobQueueDepth = 16

// Store is the public surface of the tab storage system. At most one
// operation touches lifecycle state or the storage handle at any time, and
// operations execute in submission order.
//
// OpenIfClosed and ForceClose block the caller until the transition has
// taken effect; the data operations return immediately with a Pending
// result that resolves once the dispatch goroutine processes them.
type Store struct {
	logger *slog.Logger

	mu      sync.Mutex // guards jobs and stopped across submit/Shutdown
	stopped bool
	jobs    chan func()
	done    chan struct{} // closed when the dispatch goroutine exits

	// lc is touched only from the dispatch goroutine.
	lc lifecycle
}

// New returns a Store in the closed state, backed by the given engine
// opener. The store owns a dispatch goroutine until Shutdown is called.
// A nil logger falls back to slog.Default.
func New(cfg types.Config, open Opener, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{
		logger: logger,
		jobs:   make(chan func(), jobQueueDepth),
		done:   make(chan struct{}),
		lc:     lifecycle{open: open, config: cfg},
	}
	go s.dispatch()
	return s
}

// dispatch drains the job queue, one job at a time, in submission order.
func (s *Store) dispatch() {
	defer close(s.done)
	for job := range s.jobs {
		job()
	}
}

// submit enqueues fn for the dispatch goroutine. It reports false when the
// store has been shut down, in which case fn will never run.
func (s *Store) submit(fn func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return false
	}
	s.jobs <- fn
	return true
}

// transition runs fn on the dispatch goroutine and blocks the caller until
// it completes. Used by the lifecycle operations, whose callers depend on
// the transition having taken effect before their next call.
func (s *Store) transition(fn func() error) error {
	errc := make(chan error, 1)
	if !s.submit(func() { errc <- fn() }) {
		return types.ErrStoreStopped
	}
	return <-errc
}

// enqueue submits an asynchronous operation and returns its Pending result.
// After shutdown the Pending completes immediately with ErrStoreStopped.
func enqueue[T any](s *Store, fn func() (T, error)) *Pending[T] {
	p := newPending[T]()
	ok := s.submit(func() {
		p.complete(fn())
	})
	if !ok {
		var zero T
		p.complete(zero, types.ErrStoreStopped)
	}
	return p
}

// OpenIfClosed opens the storage handle if it is not already open. Opening
// while open is a no-op, not an error. Blocks until the transition has
// taken effect.
func (s *Store) OpenIfClosed() error {
	return s.transition(func() error {
		if s.lc.isOpen() {
			return nil
		}
		return s.lc.openHandle()
	})
}

// ForceClose closes the storage handle if it is open. Closing while closed
// is a no-op, not an error. Blocks until the transition has taken effect.
func (s *Store) ForceClose() error {
	return s.transition(s.lc.closeHandle)
}

// IsOpen reports the lifecycle state as observed from inside the dispatch
// goroutine. After shutdown it reports false.
func (s *Store) IsOpen() bool {
	open := false
	_ = s.transition(func() error {
		open = s.lc.isOpen()
		return nil
	})
	return open
}

// Sync pushes local tabs to and pulls remote tabs from the remote service.
// Requires the store to be open. Engine failures are tagged with the
// operation, logged at warning severity, and delivered through the result.
func (s *Store) Sync(unlock types.UnlockInfo) *Pending[struct{}] {
	return enqueue(s, func() (struct{}, error) {
		if !s.lc.isOpen() {
			return struct{}{}, types.ErrStorageClosed
		}
		if err := s.lc.handle.Sync(unlock); err != nil {
			wrapped := &types.OpError{Op: "sync", Err: err}
			s.logger.Warn("tab sync failed", "error", wrapped)
			return struct{}{}, wrapped
		}
		return struct{}{}, nil
	})
}

// ResetSync discards synced remote state and sync bookkeeping. Requires the
// store to be open.
func (s *Store) ResetSync() *Pending[struct{}] {
	return enqueue(s, func() (struct{}, error) {
		if !s.lc.isOpen() {
			return struct{}{}, types.ErrStorageClosed
		}
		if err := s.lc.handle.Reset(); err != nil {
			return struct{}{}, &types.OpError{Op: "reset", Err: err}
		}
		return struct{}{}, nil
	})
}

// SetLocalTabs replaces the local client's stored tabs with recs and
// completes with the number of records written. The slice is snapshotted at
// call time; later mutation by the caller is not observed. An empty input
// succeeds with a count of 0.
func (s *Store) SetLocalTabs(recs []types.TabRecord) *Pending[int] {
	recs = slices.Clone(recs)
	return enqueue(s, func() (int, error) {
		if !s.lc.isOpen() {
			return 0, types.ErrStorageClosed
		}
		if err := s.lc.handle.ReplaceLocalTabs(recs); err != nil {
			return 0, &types.OpError{Op: "write local tabs", Err: err}
		}
		return len(recs), nil
	})
}

// GetAll reads every stored client bundle and maps it to caller-facing
// client+tabs pairings. Requires the store to be open.
func (s *Store) GetAll() *Pending[[]types.ClientTabs] {
	return enqueue(s, func() ([]types.ClientTabs, error) {
		if !s.lc.isOpen() {
			return nil, types.ErrStorageClosed
		}
		raw, err := s.lc.handle.ReadAll()
		if err != nil {
			return nil, &types.OpError{Op: "read all", Err: err}
		}
		bundles := make([]types.ClientTabs, 0, len(raw))
		for _, rec := range raw {
			owner := types.ClientInfo{
				ID:         rec.ClientID,
				Name:       rec.ClientName,
				DeviceType: rec.DeviceType,
			}
			bundles = append(bundles, types.ClientTabsFromRecord(rec, owner))
		}
		return bundles, nil
	})
}

// Shutdown closes the handle if open and stops the dispatch goroutine after
// all previously submitted operations have completed. Safe to call more
// than once; operations submitted afterwards complete with ErrStoreStopped.
func (s *Store) Shutdown() error {
	closed := make(chan error, 1)

	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		<-s.done
		return nil
	}
	s.stopped = true
	s.jobs <- func() { closed <- s.lc.closeHandle() }
	close(s.jobs)
	s.mu.Unlock()

	err := <-closed
	<-s.done
	return err
}
