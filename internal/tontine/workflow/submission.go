package workflow

import (
	"fmt"

	"tontine/internal/tontine/models"
	"tontine/internal/tontine/store"
	"tontine/pkg/domain"
	dErrors "tontine/pkg/domain-errors"
)

// SubmissionInput describes a field report being filed by an agent.
type SubmissionInput struct {
	MemberID    domain.MemberID       `json:"member_id,omitempty"`
	ClientName  string                `json:"client_name"`
	ClientPhone string                `json:"client_phone"`
	Type        models.SubmissionType `json:"type"`
	Amount      int64                 `json:"amount,omitempty"`
	Location    string                `json:"location,omitempty"`
	Notes       string                `json:"notes,omitempty"`
}

// FileSubmission records a pending field report and bumps the agent's
// running count. Collections and loan requests must reference an existing
// member; new registrations must carry the client's contact details instead.
func (e *Engine) FileSubmission(st *store.State, agentID domain.AgentID, in SubmissionInput) (*models.FieldSubmission, error) {
	agent, err := st.Agent(agentID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeNotFound, "agent not found")
	}
	if agent.Status != models.AgentActive {
		return nil, dErrors.New(dErrors.CodeInvalidTransition, "inactive agents cannot file submissions")
	}
	if !in.Type.IsValid() {
		return nil, dErrors.New(dErrors.CodeValidation, "unknown submission type")
	}

	switch in.Type {
	case models.SubmissionNewRegistration:
		if in.ClientName == "" || in.ClientPhone == "" {
			return nil, dErrors.New(dErrors.CodeValidation, "new registrations require client name and phone")
		}
	case models.SubmissionDailyCollection:
		if in.Amount <= 0 {
			return nil, dErrors.New(dErrors.CodeInvalidAmount, "collection amount must be positive")
		}
		fallthrough
	case models.SubmissionLoanRequest:
		// The requested principal is optional but feeds interest revenue, so
		// it can never be negative.
		if in.Amount < 0 {
			return nil, dErrors.New(dErrors.CodeInvalidAmount, "loan amount cannot be negative")
		}
		if _, err := st.Member(in.MemberID); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeNotFound, "submission member not found")
		}
	}

	sub := &models.FieldSubmission{
		ID:          e.ids.SubmissionID(),
		AgentID:     agentID,
		MemberID:    in.MemberID,
		ClientName:  in.ClientName,
		ClientPhone: in.ClientPhone,
		Type:        in.Type,
		Amount:      in.Amount,
		Location:    in.Location,
		Status:      models.SubmissionPending,
		Notes:       in.Notes,
		SubmittedAt: e.now(),
	}
	st.Submissions[sub.ID] = sub
	agent.SubmissionCount++
	return sub, nil
}

// ReviewSubmission applies an approval or rejection to a pending report.
// Approving a monetary registration or collection credits the member's
// ledger in the same step, so approved field activity and the journal can
// never diverge. Approving a new registration creates the member record.
func (e *Engine) ReviewSubmission(st *store.State, submissionID domain.SubmissionID, decision models.SubmissionStatus, reason string) (*models.FieldSubmission, error) {
	sub, err := st.Submission(submissionID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeNotFound, "submission not found")
	}
	if decision != models.SubmissionApproved && decision != models.SubmissionRejected {
		return nil, dErrors.New(dErrors.CodeValidation, "decision must be approved or rejected")
	}
	if sub.Status != models.SubmissionPending {
		return nil, dErrors.New(dErrors.CodeInvalidTransition,
			fmt.Sprintf("cannot review a submission that is %s", sub.Status))
	}

	now := e.now()
	if decision == models.SubmissionApproved {
		switch sub.Type {
		case models.SubmissionNewRegistration:
			member := &models.Member{
				ID:            e.ids.MemberID(),
				Name:          sub.ClientName,
				Phone:         sub.ClientPhone,
				AccountStatus: models.AccountActive,
				KYCStatus:     models.KYCNotSubmitted,
				JoinedAt:      now,
			}
			st.Members[member.ID] = member
			sub.MemberID = member.ID
			if sub.Amount > 0 {
				note := fmt.Sprintf("field registration %s", sub.ID)
				if _, err := e.ledger.Deposit(st, member.ID, sub.Amount, note, "field"); err != nil {
					return nil, err
				}
			}
		case models.SubmissionDailyCollection:
			note := fmt.Sprintf("field collection %s", sub.ID)
			if _, err := e.ledger.Deposit(st, sub.MemberID, sub.Amount, note, "field"); err != nil {
				return nil, err
			}
		}
	}

	sub.Status = decision
	sub.ReviewedAt = &now
	if reason != "" {
		if sub.Notes != "" {
			sub.Notes += "; "
		}
		sub.Notes += reason
	}
	return sub, nil
}
