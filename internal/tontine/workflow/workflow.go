// Package workflow implements the three review state machines of the
// cooperative: identity verification, penalties, and field-agent submissions.
// Each operates over the shared store state so a review and its side effects
// commit as a single step.
package workflow

import (
	"time"

	"tontine/internal/tontine/ledger"
	"tontine/pkg/domain"
)

type Engine struct {
	ids    *domain.Allocator
	ledger *ledger.Engine
	now    func() time.Time
}

type Option func(*Engine)

func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func New(ids *domain.Allocator, ledgerEngine *ledger.Engine, opts ...Option) *Engine {
	e := &Engine{ids: ids, ledger: ledgerEngine, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}
