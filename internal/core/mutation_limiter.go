package core

// mutation_limiter.go implements concurrency control for remote mutations.
//
// A semaphore restricts how many create/update calls may be in flight against
// the catalog API at once. When all slots are occupied, new requests wait up
// to maxWait before failing with ErrTooManyMutations.
//
// Updates to the same product id are additionally serialized through a
// per-record lock, so two edits of one record cannot race each other's
// responses back into the working copy.
//
// WaitForDrain blocks until all in-flight mutations complete and is used
// during graceful shutdown.

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrTooManyMutations is returned when all mutation slots are occupied and the
// wait timeout expires. Clients should retry after a short delay.
var ErrTooManyMutations = errors.New("too many concurrent mutations, please try again later")

// DefaultMaxConcurrentMutations is the default limit for parallel mutations.
const DefaultMaxConcurrentMutations = 4

// DefaultMaxWaitTime is how long to wait for a slot before rejecting.
const DefaultMaxWaitTime = 10 * time.Second

// MutationLimiter bounds concurrent remote mutations.
type MutationLimiter struct {
	semaphore chan struct{}
	maxWait   time.Duration

	mu      sync.RWMutex
	active  int
	records map[int]*recordLock
}

// recordLock is a one-slot semaphore for a single product id. waiters counts
// holders plus queued callers so the entry can be dropped when unused.
type recordLock struct {
	ch      chan struct{}
	waiters int
}

// NewMutationLimiter creates a limiter that allows at most maxConcurrent
// simultaneous mutations. Requests that cannot acquire a slot within maxWait
// receive ErrTooManyMutations.
func NewMutationLimiter(maxConcurrent int, maxWait time.Duration) *MutationLimiter {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrentMutations
	}
	if maxWait <= 0 {
		maxWait = DefaultMaxWaitTime
	}

	return &MutationLimiter{
		semaphore: make(chan struct{}, maxConcurrent),
		maxWait:   maxWait,
		records:   make(map[int]*recordLock),
	}
}

// Acquire attempts to acquire a mutation slot.
// The caller MUST call Release() when the mutation completes (use defer).
func (l *MutationLimiter) Acquire(ctx context.Context) error {
	waitCtx, cancel := context.WithTimeout(ctx, l.maxWait)
	defer cancel()

	select {
	case l.semaphore <- struct{}{}:
		l.mu.Lock()
		l.active++
		l.mu.Unlock()
		return nil

	case <-waitCtx.Done():
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return ErrTooManyMutations
	}
}

// Release releases a previously acquired slot.
// Must be called exactly once for each successful Acquire.
func (l *MutationLimiter) Release() {
	l.mu.Lock()
	l.active--
	l.mu.Unlock()

	<-l.semaphore
}

// AcquireRecord acquires a global slot and then the lock for product id.
// On success the returned release func frees both and must be called exactly
// once.
func (l *MutationLimiter) AcquireRecord(ctx context.Context, id int) (release func(), err error) {
	waitCtx, cancel := context.WithTimeout(ctx, l.maxWait)
	defer cancel()

	l.mu.Lock()
	rl, ok := l.records[id]
	if !ok {
		rl = &recordLock{ch: make(chan struct{}, 1)}
		l.records[id] = rl
	}
	rl.waiters++
	l.mu.Unlock()

	select {
	case rl.ch <- struct{}{}:
	case <-waitCtx.Done():
		l.dropRecord(id, rl)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, ErrTooManyMutations
	}

	if err := l.Acquire(ctx); err != nil {
		<-rl.ch
		l.dropRecord(id, rl)
		return nil, err
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			l.Release()
			<-rl.ch
			l.dropRecord(id, rl)
		})
	}, nil
}

func (l *MutationLimiter) dropRecord(id int, rl *recordLock) {
	l.mu.Lock()
	defer l.mu.Unlock()

	rl.waiters--
	if rl.waiters == 0 && l.records[id] == rl {
		delete(l.records, id)
	}
}

// ActiveCount returns the number of in-flight mutations.
func (l *MutationLimiter) ActiveCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.active
}

// MaxConcurrent returns the maximum allowed concurrent mutations.
func (l *MutationLimiter) MaxConcurrent() int {
	return cap(l.semaphore)
}

// Available returns the number of free slots.
func (l *MutationLimiter) Available() int {
	return cap(l.semaphore) - len(l.semaphore)
}

// WaitForDrain blocks until all in-flight mutations complete or ctx is done.
func (l *MutationLimiter) WaitForDrain(ctx context.Context) error {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		if l.ActiveCount() == 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// MutationStatus is a snapshot of the limiter's state.
type MutationStatus struct {
	Active        int `json:"active"`
	Available     int `json:"available"`
	MaxConcurrent int `json:"max_concurrent"`
	LockedRecords int `json:"locked_records"`
}

// Status returns the current limiter state for health reporting.
func (l *MutationLimiter) Status() MutationStatus {
	l.mu.RLock()
	active := l.active
	locked := len(l.records)
	l.mu.RUnlock()

	return MutationStatus{
		Active:        active,
		Available:     cap(l.semaphore) - len(l.semaphore),
		MaxConcurrent: cap(l.semaphore),
		LockedRecords: locked,
	}
}
