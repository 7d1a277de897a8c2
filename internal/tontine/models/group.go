package models

import (
	"time"

	"tontine/pkg/domain"
)

// Group is a savings circle. MemberIDs is an ordered set; uniqueness is
// enforced on every mutation and the member count is always derived from it,
// never stored separately.
type Group struct {
	ID           domain.GroupID    `json:"id"`
	Name         string            `json:"name"`
	Description  string            `json:"description,omitempty"`
	TargetAmount int64             `json:"target_amount"`
	MemberIDs    []domain.MemberID `json:"member_ids"`
	CreatedAt    time.Time         `json:"created_at"`
}

// MemberCount is derived from the member set by construction.
func (g *Group) MemberCount() int { return len(g.MemberIDs) }

// Contains reports whether the member already belongs to the group.
func (g *Group) Contains(id domain.MemberID) bool {
	for _, m := range g.MemberIDs {
		if m == id {
			return true
		}
	}
	return false
}

// GroupMessage is one entry of a group's append-only message log. Ordering is
// by posting time; there are no edits or deletions.
type GroupMessage struct {
	ID       domain.MessageID `json:"id"`
	GroupID  domain.GroupID   `json:"group_id"`
	Author   string           `json:"author"`
	Body     string           `json:"body"`
	PostedAt time.Time        `json:"posted_at"`
}
