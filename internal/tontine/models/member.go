package models

import (
	"time"

	"tontine/pkg/domain"
)

// AccountStatus gates whether a member may transact. Members are never
// deleted; they are suspended instead so the journal keeps referring to a
// live record.
type AccountStatus string

const (
	AccountActive    AccountStatus = "active"
	AccountSuspended AccountStatus = "suspended"
)

func (s AccountStatus) IsValid() bool {
	switch s {
	case AccountActive, AccountSuspended:
		return true
	}
	return false
}

// KYCStatus is the member-level identity-verification state. It is coarser
// than the per-document status and is kept in sync by the KYC workflow.
type KYCStatus string

const (
	KYCNotSubmitted KYCStatus = "not_submitted"
	KYCPending      KYCStatus = "pending"
	KYCVerified     KYCStatus = "verified"
	KYCRejected     KYCStatus = "rejected"
)

func (s KYCStatus) IsValid() bool {
	switch s {
	case KYCNotSubmitted, KYCPending, KYCVerified, KYCRejected:
		return true
	}
	return false
}

// CanSubmit reports whether a member in this state may file documents.
// Resubmission after rejection is allowed; resubmission while pending or
// after verification is not.
func (s KYCStatus) CanSubmit() bool {
	return s == KYCNotSubmitted || s == KYCRejected
}

// CanReview reports whether a review decision may be applied.
func (s KYCStatus) CanReview() bool {
	return s == KYCPending
}

// Member is a cooperative member. Balance is in minor currency units and is
// mutated exclusively by the ledger engine; kyc status, account status and
// loan eligibility are mutated exclusively by the workflow engine and the
// member service's audited toggles.
type Member struct {
	ID             domain.MemberID `json:"id"`
	Name           string          `json:"name"`
	Phone          string          `json:"phone"`
	Email          string          `json:"email,omitempty"`
	Balance        int64           `json:"balance"`
	OpeningBalance int64           `json:"opening_balance"`
	AccountStatus  AccountStatus   `json:"account_status"`
	LoanEligible   bool            `json:"loan_eligible"`
	KYCStatus      KYCStatus       `json:"kyc_status"`
	JoinedAt       time.Time       `json:"joined_at"`
	CredentialHash string          `json:"-"`
}
