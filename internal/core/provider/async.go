// Package provider implements the asynchronous status and entitlement
// providers. Both share Async: a value fetched in the background whose
// loading state is a first-class input to gate decisions.
package provider

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/edusaas/portal-gate/internal/core/domain"
	"github.com/edusaas/portal-gate/internal/metrics"
)

// Fetcher loads the provider's value.
type Fetcher[T any] func(ctx context.Context) (T, error)

// KeepFunc reports whether data already held may survive a failed fetch.
// attempted is the partial value the failed fetch returned.
type KeepFunc[T any] func(current, attempted T) bool

// Async holds a value of T together with its load state.
//
// Before the first fetch settles the state is LoadLoading and the data is the
// initial default. A failed fetch moves the state to LoadFailed and keeps
// whatever data was there, unless the keep predicate rejects it, in which case
// the fetch's partial value replaces it. Concurrent fetches are not ordered:
// the last one to finish wins.
type Async[T any] struct {
	name  string
	fetch Fetcher[T]
	keep  KeepFunc[T]
	log   zerolog.Logger

	mu      sync.RWMutex
	state   domain.LoadState
	data    T
	err     error
	settled chan struct{}

	mountOnce sync.Once
}

// NewAsync returns a provider in the loading state holding initial.
func NewAsync[T any](name string, initial T, fetch Fetcher[T], log zerolog.Logger) *Async[T] {
	return &Async[T]{
		name:    name,
		fetch:   fetch,
		log:     log.With().Str("provider", name).Logger(),
		state:   domain.LoadLoading,
		data:    initial,
		settled: make(chan struct{}),
	}
}

// KeepOnError sets the predicate consulted when a fetch fails. Without one the
// current data is always kept. It must be called before Mount.
func (a *Async[T]) KeepOnError(keep KeepFunc[T]) *Async[T] {
	a.keep = keep
	return a
}

// Mount issues the initial fetch in the background. Only the first call has
// an effect. The fetch is detached from ctx cancellation so that a finished
// request does not abort it.
func (a *Async[T]) Mount(ctx context.Context) {
	a.mountOnce.Do(func() {
		go a.Refresh(context.WithoutCancel(ctx))
	})
}

// Reload puts the provider back into the loading state and fetches again in
// the background.
func (a *Async[T]) Reload(ctx context.Context) {
	a.mountOnce.Do(func() {})

	a.mu.Lock()
	a.state = domain.LoadLoading
	a.err = nil
	a.settled = make(chan struct{})
	a.mu.Unlock()

	go a.Refresh(context.WithoutCancel(ctx))
}

// Refresh fetches synchronously and returns the resulting state. Readers keep
// seeing the previous data while the fetch runs.
func (a *Async[T]) Refresh(ctx context.Context) (T, domain.LoadState, error) {
	start := time.Now()
	v, err := a.fetch(ctx)
	elapsed := time.Since(start)

	a.mu.Lock()
	if err != nil {
		a.state = domain.LoadFailed
		a.err = err
		if a.keep != nil && !a.keep(a.data, v) {
			a.data = v
		}
	} else {
		a.state = domain.LoadReady
		a.data = v
		a.err = nil
	}
	select {
	case <-a.settled:
	default:
		close(a.settled)
	}
	data, state := a.data, a.state
	a.mu.Unlock()

	result := "ok"
	if err != nil {
		result = "error"
		a.log.Warn().Err(err).Dur("elapsed", elapsed).Msg("fetch failed, keeping current data")
	} else {
		a.log.Debug().Dur("elapsed", elapsed).Msg("fetch completed")
	}
	metrics.ProviderFetchTotal.WithLabelValues(a.name, result).Inc()
	metrics.ProviderFetchDuration.WithLabelValues(a.name).Observe(elapsed.Seconds())

	return data, state, err
}

// State returns the current data, load state and last error.
func (a *Async[T]) State() (T, domain.LoadState, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.data, a.state, a.err
}

// Settled is closed once the current load cycle has produced a result.
func (a *Async[T]) Settled() <-chan struct{} {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.settled
}
