// Package service is the aggregate root of the cooperative core. It owns the
// store and delegates balance work to the ledger engine, state transitions to
// the workflow engine, and reads to the query engine, so callers get one
// atomic operation per action and never observe partial states.
package service

import (
	"fmt"
	"log/slog"
	"time"

	"tontine/internal/platform/metrics"
	"tontine/internal/tontine/ledger"
	"tontine/internal/tontine/query"
	"tontine/internal/tontine/store"
	"tontine/internal/tontine/workflow"
	"tontine/pkg/domain"
)

type Service struct {
	store    *store.Store
	ids      *domain.Allocator
	ledger   *ledger.Engine
	workflow *workflow.Engine
	query    *query.Engine
	metrics  *metrics.Metrics
	logger   *slog.Logger
	now      func() time.Time
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithClock overrides the time source for the service and every engine it
// builds. Tests use it to pin timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func New(st *store.Store, opts ...Option) (*Service, error) {
	if st == nil {
		return nil, fmt.Errorf("store is required")
	}

	s := &Service{
		store:  st,
		ids:    domain.NewAllocator(),
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.ledger = ledger.New(s.ids, ledger.WithClock(s.now))
	s.workflow = workflow.New(s.ids, s.ledger, workflow.WithClock(s.now))
	s.query = query.New(query.WithClock(s.now))
	return s, nil
}

// Store state is only safe to touch under its lock, so every operation clones
// what it returns before the closure ends. cloneAll and clonePage cover the
// slice and paged cases.

func cloneAll[T interface{ Clone() T }](items []T) []T {
	out := make([]T, len(items))
	for i, item := range items {
		out[i] = item.Clone()
	}
	return out
}

func clonePage[T interface{ Clone() T }](p query.Page[T]) query.Page[T] {
	p.Items = cloneAll(p.Items)
	return p
}
