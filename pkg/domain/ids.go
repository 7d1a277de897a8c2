// Package domain holds the typed identifiers shared across the module and the
// allocator that issues them. Distinct ID types keep a MemberID from ever
// being passed where a GroupID is expected; the compiler enforces it.
package domain

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	dErrors "tontine/pkg/domain-errors"
)

type (
	MemberID      string
	GroupID       string
	TransactionID string
	PenaltyID     string
	AgentID       string
	SubmissionID  string
	DocumentID    string
	MessageID     string
)

// Kind is the entity-kind prefix baked into every issued identifier.
type Kind string

const (
	KindMember      Kind = "mem"
	KindGroup       Kind = "grp"
	KindTransaction Kind = "txn"
	KindPenalty     Kind = "pen"
	KindAgent       Kind = "agt"
	KindSubmission  Kind = "sub"
	KindDocument    Kind = "doc"
	KindMessage     Kind = "msg"
)

// Allocator issues collision-free identifiers under concurrent callers. Each
// ID combines a per-kind monotonic sequence (uniqueness is deterministic, not
// probabilistic) with a random token so IDs are not enumerable.
type Allocator struct {
	mu  sync.Mutex
	seq map[Kind]uint64
}

func NewAllocator() *Allocator {
	return &Allocator{seq: make(map[Kind]uint64)}
}

func (a *Allocator) next(kind Kind) string {
	a.mu.Lock()
	a.seq[kind]++
	n := a.seq[kind]
	a.mu.Unlock()
	token := strings.SplitN(uuid.NewString(), "-", 2)[0]
	return fmt.Sprintf("%s_%06d_%s", kind, n, token)
}

func (a *Allocator) MemberID() MemberID           { return MemberID(a.next(KindMember)) }
func (a *Allocator) GroupID() GroupID             { return GroupID(a.next(KindGroup)) }
func (a *Allocator) TransactionID() TransactionID { return TransactionID(a.next(KindTransaction)) }
func (a *Allocator) PenaltyID() PenaltyID         { return PenaltyID(a.next(KindPenalty)) }
func (a *Allocator) AgentID() AgentID             { return AgentID(a.next(KindAgent)) }
func (a *Allocator) SubmissionID() SubmissionID   { return SubmissionID(a.next(KindSubmission)) }
func (a *Allocator) DocumentID() DocumentID       { return DocumentID(a.next(KindDocument)) }
func (a *Allocator) MessageID() MessageID         { return MessageID(a.next(KindMessage)) }

// ParseMemberID validates an externally supplied member identifier at the
// trust boundary. IDs must be non-empty and carry the member kind prefix.
func ParseMemberID(raw string) (MemberID, error) {
	if err := checkKind(raw, KindMember); err != nil {
		return "", err
	}
	return MemberID(raw), nil
}

func ParseGroupID(raw string) (GroupID, error) {
	if err := checkKind(raw, KindGroup); err != nil {
		return "", err
	}
	return GroupID(raw), nil
}

func ParseTransactionID(raw string) (TransactionID, error) {
	if err := checkKind(raw, KindTransaction); err != nil {
		return "", err
	}
	return TransactionID(raw), nil
}

func ParsePenaltyID(raw string) (PenaltyID, error) {
	if err := checkKind(raw, KindPenalty); err != nil {
		return "", err
	}
	return PenaltyID(raw), nil
}

func ParseAgentID(raw string) (AgentID, error) {
	if err := checkKind(raw, KindAgent); err != nil {
		return "", err
	}
	return AgentID(raw), nil
}

func ParseSubmissionID(raw string) (SubmissionID, error) {
	if err := checkKind(raw, KindSubmission); err != nil {
		return "", err
	}
	return SubmissionID(raw), nil
}

func checkKind(raw string, kind Kind) error {
	if raw == "" {
		return dErrors.New(dErrors.CodeBadRequest, "identifier must not be empty")
	}
	if !strings.HasPrefix(raw, string(kind)+"_") {
		return dErrors.New(dErrors.CodeBadRequest, fmt.Sprintf("identifier is not a %s id", kind))
	}
	return nil
}
