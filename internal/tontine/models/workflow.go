package models

import (
	"time"

	"tontine/pkg/domain"
)

// PenaltyStatus has exactly one legal transition: active to resolved.
type PenaltyStatus string

const (
	PenaltyActive   PenaltyStatus = "active"
	PenaltyResolved PenaltyStatus = "resolved"
)

func (s PenaltyStatus) IsValid() bool {
	return s == PenaltyActive || s == PenaltyResolved
}

// Penalty is a punitive charge against a member. Resolution is recorded in
// the journal as an audit entry but never moves money on its own.
type Penalty struct {
	ID         domain.PenaltyID `json:"id"`
	MemberID   domain.MemberID  `json:"member_id"`
	Amount     int64            `json:"amount"`
	Reason     string           `json:"reason"`
	Status     PenaltyStatus    `json:"status"`
	CreatedAt  time.Time        `json:"created_at"`
	ResolvedAt *time.Time       `json:"resolved_at,omitempty"`
	ResolvedBy string           `json:"resolved_by,omitempty"`
}

type AgentStatus string

const (
	AgentActive   AgentStatus = "active"
	AgentInactive AgentStatus = "inactive"
)

func (s AgentStatus) IsValid() bool {
	return s == AgentActive || s == AgentInactive
}

// Agent is a field agent filing submissions from a zone.
type Agent struct {
	ID              domain.AgentID `json:"id"`
	Name            string         `json:"name"`
	Zone            string         `json:"zone"`
	Status          AgentStatus    `json:"status"`
	SubmissionCount int            `json:"submission_count"`
	CreatedAt       time.Time      `json:"created_at"`
}

type SubmissionType string

const (
	SubmissionNewRegistration SubmissionType = "new_registration"
	SubmissionDailyCollection SubmissionType = "daily_collection"
	SubmissionLoanRequest     SubmissionType = "loan_request"
)

func (t SubmissionType) IsValid() bool {
	switch t {
	case SubmissionNewRegistration, SubmissionDailyCollection, SubmissionLoanRequest:
		return true
	}
	return false
}

type SubmissionStatus string

const (
	SubmissionPending  SubmissionStatus = "pending"
	SubmissionApproved SubmissionStatus = "approved"
	SubmissionRejected SubmissionStatus = "rejected"
)

func (s SubmissionStatus) IsValid() bool {
	switch s {
	case SubmissionPending, SubmissionApproved, SubmissionRejected:
		return true
	}
	return false
}

// FieldSubmission is an agent's report of in-person activity. MemberID links
// the subject member; for new registrations it is filled in at approval time,
// when the member record is created. Approving a monetary collection credits
// the ledger in the same operation.
type FieldSubmission struct {
	ID          domain.SubmissionID `json:"id"`
	AgentID     domain.AgentID      `json:"agent_id"`
	MemberID    domain.MemberID     `json:"member_id,omitempty"`
	ClientName  string              `json:"client_name"`
	ClientPhone string              `json:"client_phone"`
	Type        SubmissionType      `json:"type"`
	Amount      int64               `json:"amount,omitempty"`
	Location    string              `json:"location,omitempty"`
	Status      SubmissionStatus    `json:"status"`
	Notes       string              `json:"notes,omitempty"`
	SubmittedAt time.Time           `json:"submitted_at"`
	ReviewedAt  *time.Time          `json:"reviewed_at,omitempty"`
}

type DocumentStatus string

const (
	DocumentPending  DocumentStatus = "pending"
	DocumentApproved DocumentStatus = "approved"
	DocumentRejected DocumentStatus = "rejected"
)

func (s DocumentStatus) IsValid() bool {
	switch s {
	case DocumentPending, DocumentApproved, DocumentRejected:
		return true
	}
	return false
}

// KYCDocument is one identity document on file for a member. A member may
// hold several; a review decision resolves all of the member's pending
// documents as one batch.
type KYCDocument struct {
	ID              domain.DocumentID `json:"id"`
	MemberID        domain.MemberID   `json:"member_id"`
	DocumentType    string            `json:"document_type"`
	StorageRef      string            `json:"storage_ref"`
	Status          DocumentStatus    `json:"status"`
	SubmittedAt     time.Time         `json:"submitted_at"`
	ReviewedAt      *time.Time        `json:"reviewed_at,omitempty"`
	ReviewerID      string            `json:"reviewer_id,omitempty"`
	RejectionReason string            `json:"rejection_reason,omitempty"`
}
