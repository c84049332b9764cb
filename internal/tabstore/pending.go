package tabstore

import "sync"

// result packages the outcome of an asynchronous operation. Success and
// failure travel through the same channel; there is no out-of-band path.
type result[T any] struct {
	value T
	err   error
}

// Pending is a one-shot handle to the result of an operation enqueued on
// the store's dispatch goroutine. The zero value is not usable; Pending
// values are created by the store.
type Pending[T any] struct {
	ch   chan result[T]
	once sync.Once
	res  result[T]
}

func newPending[T any]() *Pending[T] {
	return &Pending[T]{ch: make(chan result[T], 1)}
}

// complete delivers the outcome. Called exactly once, off the caller's
// goroutine.
func (p *Pending[T]) complete(value T, err error) {
	p.ch <- result[T]{value: value, err: err}
}

// Wait blocks until the operation completes and returns its outcome.
// Subsequent calls return the same outcome without blocking.
func (p *Pending[T]) Wait() (T, error) {
	p.once.Do(func() {
		p.res = <-p.ch
	})
	return p.res.value, p.res.err
}
