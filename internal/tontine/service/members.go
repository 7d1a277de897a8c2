package service

import (
	"context"
	"fmt"
	"sort"

	"tontine/internal/tontine/models"
	"tontine/internal/tontine/store"
	"tontine/pkg/domain"
	dErrors "tontine/pkg/domain-errors"
	"tontine/pkg/platform/secrets"
)

// CreateMemberParams carries the registration form.
type CreateMemberParams struct {
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	Email          string `json:"email,omitempty"`
	OpeningBalance int64  `json:"opening_balance,omitempty"`
}

func (p CreateMemberParams) validate() error {
	if p.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "member name is required")
	}
	if p.Phone == "" {
		return dErrors.New(dErrors.CodeValidation, "member phone is required")
	}
	if p.OpeningBalance < 0 {
		return dErrors.New(dErrors.CodeInvalidAmount, "opening balance cannot be negative")
	}
	return nil
}

// CreateMember registers a member. The opening balance sits outside the
// journal; only subsequent ledger activity is journalled.
func (s *Service) CreateMember(ctx context.Context, p CreateMemberParams) (*models.Member, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	member := &models.Member{
		ID:             s.ids.MemberID(),
		Name:           p.Name,
		Phone:          p.Phone,
		Email:          p.Email,
		Balance:        p.OpeningBalance,
		OpeningBalance: p.OpeningBalance,
		AccountStatus:  models.AccountActive,
		KYCStatus:      models.KYCNotSubmitted,
		JoinedAt:       s.now(),
	}
	err := s.store.Update(ctx, func(st *store.State) error {
		// The store keeps its own copy; the caller's record stays detached.
		st.Members[member.ID] = member.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncrementMembersCreated()
	s.logger.InfoContext(ctx, "member created", "member_id", member.ID)
	return member, nil
}

// ListMembers returns all members ordered by name, then id.
func (s *Service) ListMembers(ctx context.Context) ([]*models.Member, error) {
	var out []*models.Member
	err := s.store.View(ctx, func(st *store.State) error {
		for _, m := range st.Members {
			out = append(out, m.Clone())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// DepositParams carries a cash-in. Pending entries await administrative
// settlement through transaction status revision.
type DepositParams struct {
	MemberID      domain.MemberID `json:"member_id"`
	Amount        int64           `json:"amount"`
	Note          string          `json:"note,omitempty"`
	PaymentMethod string          `json:"payment_method,omitempty"`
	Pending       bool            `json:"pending,omitempty"`
}

func (s *Service) Deposit(ctx context.Context, p DepositParams) (*models.Transaction, error) {
	var tx *models.Transaction
	err := s.store.Update(ctx, func(st *store.State) error {
		var created *models.Transaction
		var err error
		if p.Pending {
			created, err = s.ledger.RecordPending(st, p.MemberID, models.TxDeposit, p.Amount, p.Note, p.PaymentMethod)
		} else {
			created, err = s.ledger.Deposit(st, p.MemberID, p.Amount, p.Note, p.PaymentMethod)
		}
		if err != nil {
			return err
		}
		tx = created.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.ObserveTransaction(string(tx.Type), txVolume(tx), true)
	s.logger.InfoContext(ctx, "deposit recorded",
		"member_id", p.MemberID, "transaction_id", tx.ID, "amount", p.Amount, "status", tx.Status)
	return tx, nil
}

// WithdrawParams mirrors DepositParams; withdrawals are always settled
// immediately.
type WithdrawParams struct {
	MemberID      domain.MemberID `json:"member_id"`
	Amount        int64           `json:"amount"`
	Note          string          `json:"note,omitempty"`
	PaymentMethod string          `json:"payment_method,omitempty"`
}

func (s *Service) Withdraw(ctx context.Context, p WithdrawParams) (*models.Transaction, error) {
	var tx *models.Transaction
	err := s.store.Update(ctx, func(st *store.State) error {
		created, err := s.ledger.Withdraw(st, p.MemberID, p.Amount, p.Note, p.PaymentMethod)
		if err != nil {
			return err
		}
		tx = created.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.ObserveTransaction(string(tx.Type), txVolume(tx), false)
	s.logger.InfoContext(ctx, "withdrawal recorded",
		"member_id", p.MemberID, "transaction_id", tx.ID, "amount", p.Amount)
	return tx, nil
}

func txVolume(tx *models.Transaction) int64 {
	if tx.Status == models.TxSuccess {
		return tx.Amount
	}
	return 0
}

// SetLoanEligible toggles eligibility with an audit entry. When settings
// require verified identity, eligibility cannot be granted before the KYC
// workflow verifies the member.
func (s *Service) SetLoanEligible(ctx context.Context, memberID domain.MemberID, eligible bool) (*models.Member, error) {
	var member *models.Member
	err := s.store.Update(ctx, func(st *store.State) error {
		m, err := st.Member(memberID)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeNotFound, "member not found")
		}
		if eligible && st.Settings.RequireVerifiedKYC && m.KYCStatus != models.KYCVerified {
			return dErrors.New(dErrors.CodeValidation, "loan eligibility requires verified identity")
		}
		if m.LoanEligible == eligible {
			member = m.Clone()
			return nil
		}
		reason := fmt.Sprintf("loan eligibility set to %t", eligible)
		if _, err := s.ledger.RecordAudit(st, memberID, models.TxEligibilityChange, reason); err != nil {
			return err
		}
		m.LoanEligible = eligible
		member = m.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "loan eligibility changed", "member_id", memberID, "eligible", eligible)
	return member, nil
}

// SetAccountStatus suspends or reactivates a member with an audit entry.
// Members are never deleted.
func (s *Service) SetAccountStatus(ctx context.Context, memberID domain.MemberID, status models.AccountStatus) (*models.Member, error) {
	if !status.IsValid() {
		return nil, dErrors.New(dErrors.CodeValidation, "unknown account status")
	}

	var member *models.Member
	err := s.store.Update(ctx, func(st *store.State) error {
		m, err := st.Member(memberID)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeNotFound, "member not found")
		}
		if m.AccountStatus == status {
			member = m.Clone()
			return nil
		}
		reason := fmt.Sprintf("account status set to %s", status)
		if _, err := s.ledger.RecordAudit(st, memberID, models.TxStatusChange, reason); err != nil {
			return err
		}
		m.AccountStatus = status
		member = m.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "account status changed", "member_id", memberID, "status", status)
	return member, nil
}

// ResetCredential issues a fresh random credential, stores only its hash, and
// journals the reset. The plaintext is returned exactly once.
func (s *Service) ResetCredential(ctx context.Context, memberID domain.MemberID) (string, error) {
	secret, err := secrets.Generate()
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "could not generate credential")
	}
	hash, err := secrets.Hash(secret)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "could not hash credential")
	}

	err = s.store.Update(ctx, func(st *store.State) error {
		m, err := st.Member(memberID)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeNotFound, "member not found")
		}
		if _, err := s.ledger.RecordAudit(st, memberID, models.TxStatusChange, "credential reset"); err != nil {
			return err
		}
		m.CredentialHash = hash
		return nil
	})
	if err != nil {
		return "", err
	}

	s.logger.InfoContext(ctx, "credential reset", "member_id", memberID)
	return secret, nil
}

// MemberTransactions returns the member's journal, newest first.
func (s *Service) MemberTransactions(ctx context.Context, memberID domain.MemberID) ([]*models.Transaction, error) {
	var out []*models.Transaction
	err := s.store.View(ctx, func(st *store.State) error {
		if _, err := st.Member(memberID); err != nil {
			return dErrors.Wrap(err, dErrors.CodeNotFound, "member not found")
		}
		entries := st.JournalFor(memberID)
		out = make([]*models.Transaction, len(entries))
		for i, tx := range entries {
			out[len(entries)-1-i] = tx.Clone()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
