// Package ledger owns member balances and the append-only transaction
// journal. It is the only code path permitted to change a balance, and it
// never does so without a matching journal entry.
package ledger

import (
	"errors"
	"time"

	"tontine/internal/tontine/models"
	"tontine/internal/tontine/store"
	"tontine/pkg/domain"
	dErrors "tontine/pkg/domain-errors"
	"tontine/pkg/platform/sentinel"
)

// Engine methods operate on a *store.State handed to them inside a store
// closure, so every balance change and journal append commits as one step
// with whatever else the enclosing operation does.
type Engine struct {
	ids *domain.Allocator
	now func() time.Time
}

type Option func(*Engine)

// WithClock overrides the engine's time source. Tests use it to place journal
// entries at known instants.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func New(ids *domain.Allocator, opts ...Option) *Engine {
	e := &Engine{ids: ids, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Deposit credits the member and appends a success deposit entry. The two
// writes are inseparable: a failed precondition means neither happened.
func (e *Engine) Deposit(st *store.State, memberID domain.MemberID, amount int64, note, paymentMethod string) (*models.Transaction, error) {
	if amount <= 0 {
		return nil, dErrors.New(dErrors.CodeInvalidAmount, "deposit amount must be positive")
	}
	member, err := st.Member(memberID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeNotFound, "member not found")
	}

	tx := &models.Transaction{
		ID:            e.ids.TransactionID(),
		MemberID:      memberID,
		Type:          models.TxDeposit,
		Amount:        amount,
		Status:        models.TxSuccess,
		Reason:        note,
		PaymentMethod: paymentMethod,
		CreatedAt:     e.now(),
	}
	if err := st.AppendTransaction(tx); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInvariantViolation, "journal append failed")
	}
	member.Balance += amount
	return tx, nil
}

// Withdraw debits the member symmetrically to Deposit. The balance never goes
// negative.
func (e *Engine) Withdraw(st *store.State, memberID domain.MemberID, amount int64, note, paymentMethod string) (*models.Transaction, error) {
	if amount <= 0 {
		return nil, dErrors.New(dErrors.CodeInvalidAmount, "withdrawal amount must be positive")
	}
	member, err := st.Member(memberID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeNotFound, "member not found")
	}
	if member.Balance-amount < 0 {
		return nil, dErrors.New(dErrors.CodeInsufficientFunds, "withdrawal exceeds balance")
	}

	tx := &models.Transaction{
		ID:            e.ids.TransactionID(),
		MemberID:      memberID,
		Type:          models.TxWithdrawal,
		Amount:        amount,
		Status:        models.TxSuccess,
		Reason:        note,
		PaymentMethod: paymentMethod,
		CreatedAt:     e.now(),
	}
	if err := st.AppendTransaction(tx); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInvariantViolation, "journal append failed")
	}
	member.Balance -= amount
	return tx, nil
}

// RecordPending appends a monetary entry awaiting administrative settlement.
// No balance moves until the entry is revised to success.
func (e *Engine) RecordPending(st *store.State, memberID domain.MemberID, txType models.TransactionType, amount int64, note, paymentMethod string) (*models.Transaction, error) {
	if !txType.IsMonetary() {
		return nil, dErrors.New(dErrors.CodeValidation, "pending entries must be monetary")
	}
	if amount <= 0 {
		return nil, dErrors.New(dErrors.CodeInvalidAmount, "amount must be positive")
	}
	if _, err := st.Member(memberID); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeNotFound, "member not found")
	}

	tx := &models.Transaction{
		ID:            e.ids.TransactionID(),
		MemberID:      memberID,
		Type:          txType,
		Amount:        amount,
		Status:        models.TxPending,
		Reason:        note,
		PaymentMethod: paymentMethod,
		CreatedAt:     e.now(),
	}
	if err := st.AppendTransaction(tx); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInvariantViolation, "journal append failed")
	}
	return tx, nil
}

// RecordAudit appends a zero-amount success entry for a non-monetary member
// mutation, so eligibility and status toggles stay traceable in the journal.
func (e *Engine) RecordAudit(st *store.State, memberID domain.MemberID, txType models.TransactionType, reason string) (*models.Transaction, error) {
	if txType.IsMonetary() || !txType.IsValid() {
		return nil, dErrors.New(dErrors.CodeValidation, "audit entries must use a non-monetary type")
	}
	if _, err := st.Member(memberID); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeNotFound, "member not found")
	}

	tx := &models.Transaction{
		ID:        e.ids.TransactionID(),
		MemberID:  memberID,
		Type:      txType,
		Amount:    0,
		Status:    models.TxSuccess,
		Reason:    reason,
		CreatedAt: e.now(),
	}
	if err := st.AppendTransaction(tx); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInvariantViolation, "journal append failed")
	}
	return tx, nil
}

// ReviseStatus is the administrative correction path. Status and Reason are
// the only fields that may change after creation. The balance delta of a
// monetary entry is applied while the entry is success and reversed when it
// leaves success, so applying is idempotent: re-marking success is a no-op.
func (e *Engine) ReviseStatus(st *store.State, txID domain.TransactionID, newStatus models.TransactionStatus, reason string) (*models.Transaction, error) {
	if !newStatus.IsValid() {
		return nil, dErrors.New(dErrors.CodeValidation, "unknown transaction status")
	}
	tx, err := st.Transaction(txID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeNotFound, "transaction not found")
	}
	if tx.Status == newStatus {
		return tx, nil
	}

	if tx.Type.IsMonetary() {
		member, err := st.Member(tx.MemberID)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				// Members are never deleted, so a journal entry pointing at a
				// missing member means the store is corrupt.
				return nil, dErrors.New(dErrors.CodeInvariantViolation, "journal entry references unknown member")
			}
			return nil, err
		}

		switch {
		case newStatus == models.TxSuccess:
			// Entering success: apply the delta now, exactly once.
			if member.Balance+tx.Delta() < 0 {
				return nil, dErrors.New(dErrors.CodeInsufficientFunds, "applying revision would overdraw balance")
			}
			member.Balance += tx.Delta()
		case tx.Status == models.TxSuccess:
			// Leaving success: reverse the delta that was applied.
			if member.Balance-tx.Delta() < 0 {
				return nil, dErrors.New(dErrors.CodeInsufficientFunds, "reversing revision would overdraw balance")
			}
			member.Balance -= tx.Delta()
		}
	}

	tx.Status = newStatus
	if reason != "" {
		tx.Reason = reason
	}
	return tx, nil
}
