package workflow

import (
	"fmt"

	"tontine/internal/tontine/models"
	"tontine/internal/tontine/store"
	"tontine/pkg/domain"
	dErrors "tontine/pkg/domain-errors"
)

// CreatePenalty assesses a charge against a member. Penalties start active
// and are independent of the deposit/withdrawal ledger.
func (e *Engine) CreatePenalty(st *store.State, memberID domain.MemberID, amount int64, reason string) (*models.Penalty, error) {
	if amount <= 0 {
		return nil, dErrors.New(dErrors.CodeInvalidAmount, "penalty amount must be positive")
	}
	if _, err := st.Member(memberID); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeNotFound, "member not found")
	}
	if reason == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "penalty reason is required")
	}

	penalty := &models.Penalty{
		ID:        e.ids.PenaltyID(),
		MemberID:  memberID,
		Amount:    amount,
		Reason:    reason,
		Status:    models.PenaltyActive,
		CreatedAt: e.now(),
	}
	st.Penalties[penalty.ID] = penalty
	return penalty, nil
}

// ResolvePenalty marks the penalty settled. Active to resolved is the only
// transition; a resolved penalty is never reopened. An audit entry records
// who resolved it, but no money moves.
func (e *Engine) ResolvePenalty(st *store.State, penaltyID domain.PenaltyID, resolvedBy string) (*models.Penalty, error) {
	penalty, err := st.Penalty(penaltyID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeNotFound, "penalty not found")
	}
	if resolvedBy == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "resolver is required")
	}
	if penalty.Status != models.PenaltyActive {
		return nil, dErrors.New(dErrors.CodeInvalidTransition, "penalty is already resolved")
	}

	if _, err := e.ledger.RecordAudit(st, penalty.MemberID, models.TxStatusChange,
		fmt.Sprintf("penalty %s resolved by %s", penalty.ID, resolvedBy)); err != nil {
		return nil, err
	}

	now := e.now()
	penalty.Status = models.PenaltyResolved
	penalty.ResolvedAt = &now
	penalty.ResolvedBy = resolvedBy
	return penalty, nil
}
