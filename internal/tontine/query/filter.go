// Package query is the stateless read side: filtered views, pagination, and
// aggregate statistics over the collections owned by the store. It never
// mutates; callers run it inside a store View so every computation sees one
// consistent snapshot.
package query

import (
	"sort"
	"strings"
	"time"

	"tontine/internal/tontine/models"
	"tontine/internal/tontine/store"
)

type Engine struct {
	now func() time.Time
}

type Option func(*Engine)

func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func New(opts ...Option) *Engine {
	e := &Engine{now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Timeframe buckets a filter relative to the current instant using calendar
// semantics. Weeks start on Monday.
type Timeframe string

const (
	TimeframeAll   Timeframe = ""
	TimeframeDay   Timeframe = "day"
	TimeframeWeek  Timeframe = "week"
	TimeframeMonth Timeframe = "month"
	TimeframeYear  Timeframe = "year"
)

// bounds returns the half-open interval [start, end) covered by the timeframe
// around now, or ok=false when the timeframe does not constrain.
func (tf Timeframe) bounds(now time.Time) (start, end time.Time, ok bool) {
	y, m, d := now.Date()
	loc := now.Location()
	switch tf {
	case TimeframeDay:
		start = time.Date(y, m, d, 0, 0, 0, 0, loc)
		return start, start.AddDate(0, 0, 1), true
	case TimeframeWeek:
		weekday := int(now.Weekday())
		if weekday == 0 {
			weekday = 7 // Sunday closes the week
		}
		start = time.Date(y, m, d, 0, 0, 0, 0, loc).AddDate(0, 0, -(weekday - 1))
		return start, start.AddDate(0, 0, 7), true
	case TimeframeMonth:
		start = time.Date(y, m, 1, 0, 0, 0, 0, loc)
		return start, start.AddDate(0, 1, 0), true
	case TimeframeYear:
		start = time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
		return start, start.AddDate(1, 0, 0), true
	default:
		return time.Time{}, time.Time{}, false
	}
}

// TransactionFilter is a predicate set; zero values mean "no constraint".
type TransactionFilter struct {
	Type      models.TransactionType
	Status    models.TransactionStatus
	Timeframe Timeframe
	// Search matches case-insensitively against member name, transaction id,
	// and member id.
	Search string
}

// FilterTransactions returns matching journal entries, newest first, ties
// broken by id for a stable order.
func (e *Engine) FilterTransactions(st *store.State, f TransactionFilter) []*models.Transaction {
	start, end, bounded := f.Timeframe.bounds(e.now())
	needle := strings.ToLower(f.Search)

	var out []*models.Transaction
	for _, tx := range st.Journal() {
		if f.Type != "" && tx.Type != f.Type {
			continue
		}
		if f.Status != "" && tx.Status != f.Status {
			continue
		}
		if bounded && (tx.CreatedAt.Before(start) || !tx.CreatedAt.Before(end)) {
			continue
		}
		if needle != "" && !matchesSearch(st, tx, needle) {
			continue
		}
		out = append(out, tx)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func matchesSearch(st *store.State, tx *models.Transaction, needle string) bool {
	if strings.Contains(strings.ToLower(string(tx.ID)), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(string(tx.MemberID)), needle) {
		return true
	}
	if member, err := st.Member(tx.MemberID); err == nil {
		if strings.Contains(strings.ToLower(member.Name), needle) {
			return true
		}
	}
	return false
}

// PenaltyFilter narrows penalty listings.
type PenaltyFilter struct {
	Status   models.PenaltyStatus
	MemberID string
}

// FilterPenalties returns matching penalties, newest first, ties by id.
func (e *Engine) FilterPenalties(st *store.State, f PenaltyFilter) []*models.Penalty {
	var out []*models.Penalty
	for _, p := range st.Penalties {
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		if f.MemberID != "" && string(p.MemberID) != f.MemberID {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// SubmissionFilter narrows field-submission listings.
type SubmissionFilter struct {
	Status  models.SubmissionStatus
	Type    models.SubmissionType
	AgentID string
}

// FilterSubmissions returns matching submissions, newest first, ties by id.
func (e *Engine) FilterSubmissions(st *store.State, f SubmissionFilter) []*models.FieldSubmission {
	var out []*models.FieldSubmission
	for _, sub := range st.Submissions {
		if f.Status != "" && sub.Status != f.Status {
			continue
		}
		if f.Type != "" && sub.Type != f.Type {
			continue
		}
		if f.AgentID != "" && string(sub.AgentID) != f.AgentID {
			continue
		}
		out = append(out, sub)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].SubmittedAt.Equal(out[j].SubmittedAt) {
			return out[i].SubmittedAt.After(out[j].SubmittedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// DocumentsByStatus lists KYC documents in a given state, oldest submission
// first so reviewers work the backlog in order.
func (e *Engine) DocumentsByStatus(st *store.State, status models.DocumentStatus) []*models.KYCDocument {
	var out []*models.KYCDocument
	for _, doc := range st.Documents {
		if status != "" && doc.Status != status {
			continue
		}
		out = append(out, doc)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].SubmittedAt.Equal(out[j].SubmittedAt) {
			return out[i].SubmittedAt.Before(out[j].SubmittedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}
