// Package store holds every collection of the cooperative core behind one
// transactional boundary. All mutations run through Update under a single
// writer lock; all reads run through View under the shared lock, so a reader
// always observes a consistent snapshot across collections.
package store

import (
	"context"
	"sort"
	"sync"

	"tontine/internal/tontine/models"
	"tontine/pkg/domain"
	"tontine/pkg/platform/sentinel"
)

// State is the in-memory aggregate. Engines receive it inside an Update or
// View closure and must not retain references past the closure's return.
//
// Closures passed to Update must validate every precondition before the first
// mutation: there is no rollback, so "all sub-updates or none" holds only as
// long as nothing is written after a check can still fail.
type State struct {
	Members      map[domain.MemberID]*models.Member
	Groups       map[domain.GroupID]*models.Group
	Penalties    map[domain.PenaltyID]*models.Penalty
	Agents       map[domain.AgentID]*models.Agent
	Submissions  map[domain.SubmissionID]*models.FieldSubmission
	Documents    map[domain.DocumentID]*models.KYCDocument
	Messages     map[domain.GroupID][]*models.GroupMessage
	Settings     models.Settings
	journal      []*models.Transaction
	journalIndex map[domain.TransactionID]*models.Transaction
}

// Store serializes all access to the aggregate state.
type Store struct {
	mu    sync.RWMutex
	state *State
}

func New(settings models.Settings) *Store {
	return &Store{state: &State{
		Members:      make(map[domain.MemberID]*models.Member),
		Groups:       make(map[domain.GroupID]*models.Group),
		Penalties:    make(map[domain.PenaltyID]*models.Penalty),
		Agents:       make(map[domain.AgentID]*models.Agent),
		Submissions:  make(map[domain.SubmissionID]*models.FieldSubmission),
		Documents:    make(map[domain.DocumentID]*models.KYCDocument),
		Messages:     make(map[domain.GroupID][]*models.GroupMessage),
		Settings:     settings,
		journalIndex: make(map[domain.TransactionID]*models.Transaction),
	}}
}

// Update runs fn with exclusive access to the state. Two concurrent updates
// never interleave, which is what keeps read-modify-write of balances safe.
func (s *Store) Update(ctx context.Context, fn func(*State) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.state)
}

// View runs fn with shared access to the state. A concurrent Update is either
// fully visible or not visible at all.
func (s *Store) View(ctx context.Context, fn func(*State) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.state)
}

// Member resolves a member or reports sentinel.ErrNotFound.
func (st *State) Member(id domain.MemberID) (*models.Member, error) {
	if m, ok := st.Members[id]; ok {
		return m, nil
	}
	return nil, sentinel.ErrNotFound
}

func (st *State) Group(id domain.GroupID) (*models.Group, error) {
	if g, ok := st.Groups[id]; ok {
		return g, nil
	}
	return nil, sentinel.ErrNotFound
}

func (st *State) Penalty(id domain.PenaltyID) (*models.Penalty, error) {
	if p, ok := st.Penalties[id]; ok {
		return p, nil
	}
	return nil, sentinel.ErrNotFound
}

func (st *State) Agent(id domain.AgentID) (*models.Agent, error) {
	if a, ok := st.Agents[id]; ok {
		return a, nil
	}
	return nil, sentinel.ErrNotFound
}

func (st *State) Submission(id domain.SubmissionID) (*models.FieldSubmission, error) {
	if sub, ok := st.Submissions[id]; ok {
		return sub, nil
	}
	return nil, sentinel.ErrNotFound
}

// Transaction resolves a journal entry by id.
func (st *State) Transaction(id domain.TransactionID) (*models.Transaction, error) {
	if tx, ok := st.journalIndex[id]; ok {
		return tx, nil
	}
	return nil, sentinel.ErrNotFound
}

// AppendTransaction adds an entry to the journal. The journal is append-only;
// nothing is ever removed from it.
func (st *State) AppendTransaction(tx *models.Transaction) error {
	if _, exists := st.journalIndex[tx.ID]; exists {
		return sentinel.ErrConflict
	}
	st.journal = append(st.journal, tx)
	st.journalIndex[tx.ID] = tx
	return nil
}

// Journal returns the journal in append order. Callers must treat the slice
// as read-only.
func (st *State) Journal() []*models.Transaction { return st.journal }

// JournalFor returns the member's journal entries in append order.
func (st *State) JournalFor(id domain.MemberID) []*models.Transaction {
	var out []*models.Transaction
	for _, tx := range st.journal {
		if tx.MemberID == id {
			out = append(out, tx)
		}
	}
	return out
}

// DocumentsFor returns the member's KYC documents ordered by submission time,
// then id, for determinism.
func (st *State) DocumentsFor(id domain.MemberID) []*models.KYCDocument {
	var out []*models.KYCDocument
	for _, doc := range st.Documents {
		if doc.MemberID == id {
			out = append(out, doc)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].SubmittedAt.Equal(out[j].SubmittedAt) {
			return out[i].SubmittedAt.Before(out[j].SubmittedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}
