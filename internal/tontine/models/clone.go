package models

import "tontine/pkg/domain"

// Clone methods return detached copies for handing records across the store
// boundary. Store state stays behind its lock; callers get snapshots they can
// read or encode without synchronization.

func (m *Member) Clone() *Member {
	out := *m
	return &out
}

func (g *Group) Clone() *Group {
	out := *g
	out.MemberIDs = append([]domain.MemberID(nil), g.MemberIDs...)
	return &out
}

func (m *GroupMessage) Clone() *GroupMessage {
	out := *m
	return &out
}

func (t *Transaction) Clone() *Transaction {
	out := *t
	return &out
}

func (p *Penalty) Clone() *Penalty {
	out := *p
	return &out
}

func (a *Agent) Clone() *Agent {
	out := *a
	return &out
}

func (s *FieldSubmission) Clone() *FieldSubmission {
	out := *s
	return &out
}

func (d *KYCDocument) Clone() *KYCDocument {
	out := *d
	return &out
}
