// Marvin - MaNGA Survey Data Browser and API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marvin

package database

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/marvin/internal/cube"
	"github.com/tomtom215/marvin/internal/logging"
	"github.com/tomtom215/marvin/internal/metrics"
)

// BreakerSettings configures the circuit breaker around cube lookups.
type BreakerSettings struct {
	Name string
	// MaxRequests allowed through while half-open.
	MaxRequests uint32
	// Interval after which failure counts reset while closed.
	Interval time.Duration
	// Timeout before an open circuit moves to half-open.
	Timeout time.Duration
	// ConsecutiveFailures that open the circuit.
	ConsecutiveFailures uint32
}

// DefaultBreakerSettings returns the production breaker configuration.
func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		Name:                "cube-store",
		MaxRequests:         3,
		Interval:            time.Minute,
		Timeout:             30 * time.Second,
		ConsecutiveFailures: 5,
	}
}

// BreakerStore wraps a cube.Store with a circuit breaker. While the circuit
// is open, lookups fail immediately with gobreaker.ErrOpenState.
//
// Lookups that find no record are successes as far as the breaker is
// concerned, as are cancelled requests.
type BreakerStore struct {
	store cube.Store
	cb    *gobreaker.CircuitBreaker[*cube.Record]
	name  string
}

// NewBreakerStore wraps store.
func NewBreakerStore(store cube.Store, s BreakerSettings) *BreakerStore {
	metrics.CircuitBreakerState.WithLabelValues(s.Name).Set(0) // 0 = closed

	cb := gobreaker.NewCircuitBreaker[*cube.Record](gobreaker.Settings{
		Name:        s.Name,
		MaxRequests: s.MaxRequests,
		Interval:    s.Interval,
		Timeout:     s.Timeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.ConsecutiveFailures < s.ConsecutiveFailures {
				return false
			}
			logging.Warn().Uint32("consecutive_failures", counts.ConsecutiveFailures).Msg("[CIRCUIT BREAKER] Opening circuit")
			return true
		},

		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, cube.ErrNoRecord) ||
				errors.Is(err, context.Canceled)
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)

			logging.Info().Str("breaker", name).Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
		},
	})

	return &BreakerStore{store: store, cb: cb, name: s.Name}
}

// CubeByPlateIFU implements cube.Store.
func (b *BreakerStore) CubeByPlateIFU(ctx context.Context, plateifu string) (*cube.Record, error) {
	return b.execute(func() (*cube.Record, error) {
		return b.store.CubeByPlateIFU(ctx, plateifu)
	})
}

// CubeByMangaID implements cube.Store.
func (b *BreakerStore) CubeByMangaID(ctx context.Context, mangaid string) (*cube.Record, error) {
	return b.execute(func() (*cube.Record, error) {
		return b.store.CubeByMangaID(ctx, mangaid)
	})
}

// State returns the current breaker state.
func (b *BreakerStore) State() gobreaker.State {
	return b.cb.State()
}

func (b *BreakerStore) execute(fn func() (*cube.Record, error)) (*cube.Record, error) {
	rec, err := b.cb.Execute(fn)

	switch {
	case err == nil, errors.Is(err, cube.ErrNoRecord):
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
		logging.Warn().Err(err).Str("breaker", b.name).Msg("[CIRCUIT BREAKER] Request rejected")
	default:
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "failure").Inc()
	}
	return rec, err
}

// stateToFloat converts circuit breaker state to numeric value for metrics
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// stateToString converts circuit breaker state to string for logging
func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
