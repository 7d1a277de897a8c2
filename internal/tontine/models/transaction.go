package models

import (
	"time"

	"tontine/pkg/domain"
)

// TransactionType distinguishes monetary journal entries from zero-amount
// audit entries.
type TransactionType string

const (
	TxDeposit           TransactionType = "deposit"
	TxWithdrawal        TransactionType = "withdrawal"
	TxEligibilityChange TransactionType = "eligibility_change"
	TxStatusChange      TransactionType = "status_change"
)

func (t TransactionType) IsValid() bool {
	switch t {
	case TxDeposit, TxWithdrawal, TxEligibilityChange, TxStatusChange:
		return true
	}
	return false
}

// IsMonetary reports whether entries of this type move balance.
func (t TransactionType) IsMonetary() bool {
	return t == TxDeposit || t == TxWithdrawal
}

type TransactionStatus string

const (
	TxSuccess TransactionStatus = "success"
	TxPending TransactionStatus = "pending"
	TxFailed  TransactionStatus = "failed"
)

func (s TransactionStatus) IsValid() bool {
	switch s {
	case TxSuccess, TxPending, TxFailed:
		return true
	}
	return false
}

// Transaction is one journal entry. The journal is append-only: once created,
// only Status and Reason may change, through the ledger engine's status
// revision, and the balance delta for a monetary entry is applied exactly
// while its status is success.
type Transaction struct {
	ID            domain.TransactionID `json:"id"`
	MemberID      domain.MemberID      `json:"member_id"`
	Type          TransactionType      `json:"type"`
	Amount        int64                `json:"amount"`
	Status        TransactionStatus    `json:"status"`
	Reason        string               `json:"reason"`
	PaymentMethod string               `json:"payment_method,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
}

// Delta is the signed balance effect of this entry when its status is
// success. Non-monetary entries always report zero.
func (t *Transaction) Delta() int64 {
	switch t.Type {
	case TxDeposit:
		return t.Amount
	case TxWithdrawal:
		return -t.Amount
	default:
		return 0
	}
}
