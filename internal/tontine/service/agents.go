package service

import (
	"context"

	"tontine/internal/tontine/models"
	"tontine/internal/tontine/query"
	"tontine/internal/tontine/store"
	"tontine/internal/tontine/workflow"
	"tontine/pkg/domain"
	dErrors "tontine/pkg/domain-errors"
)

// CreateAgentParams registers a field agent for a zone.
type CreateAgentParams struct {
	Name string `json:"name"`
	Zone string `json:"zone"`
}

func (s *Service) CreateAgent(ctx context.Context, p CreateAgentParams) (*models.Agent, error) {
	if p.Name == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "agent name is required")
	}
	if p.Zone == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "agent zone is required")
	}

	agent := &models.Agent{
		ID:        s.ids.AgentID(),
		Name:      p.Name,
		Zone:      p.Zone,
		Status:    models.AgentActive,
		CreatedAt: s.now(),
	}
	err := s.store.Update(ctx, func(st *store.State) error {
		st.Agents[agent.ID] = agent.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "agent created", "agent_id", agent.ID, "zone", p.Zone)
	return agent, nil
}

func (s *Service) SetAgentStatus(ctx context.Context, agentID domain.AgentID, status models.AgentStatus) (*models.Agent, error) {
	if !status.IsValid() {
		return nil, dErrors.New(dErrors.CodeValidation, "unknown agent status")
	}

	var agent *models.Agent
	err := s.store.Update(ctx, func(st *store.State) error {
		a, err := st.Agent(agentID)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeNotFound, "agent not found")
		}
		a.Status = status
		agent = a.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "agent status changed", "agent_id", agentID, "status", status)
	return agent, nil
}

// FileSubmission records a pending field report for later review.
func (s *Service) FileSubmission(ctx context.Context, agentID domain.AgentID, in workflow.SubmissionInput) (*models.FieldSubmission, error) {
	var sub *models.FieldSubmission
	err := s.store.Update(ctx, func(st *store.State) error {
		filed, err := s.workflow.FileSubmission(st, agentID, in)
		if err != nil {
			return err
		}
		sub = filed.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "submission filed",
		"submission_id", sub.ID, "agent_id", agentID, "type", sub.Type)
	return sub, nil
}

// ReviewSubmission approves or rejects a field report. Approval of monetary
// activity credits the member's ledger in the same atomic step.
func (s *Service) ReviewSubmission(ctx context.Context, submissionID domain.SubmissionID, decision models.SubmissionStatus, reason string) (*models.FieldSubmission, error) {
	var sub *models.FieldSubmission
	err := s.store.Update(ctx, func(st *store.State) error {
		reviewed, err := s.workflow.ReviewSubmission(st, submissionID, decision, reason)
		if err != nil {
			return err
		}
		sub = reviewed.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.ObserveReview("submission", string(decision))
	if decision == models.SubmissionApproved && sub.Type != models.SubmissionLoanRequest && sub.Amount > 0 {
		s.metrics.ObserveTransaction(string(models.TxDeposit), sub.Amount, true)
	}
	s.logger.InfoContext(ctx, "submission reviewed",
		"submission_id", submissionID, "decision", decision)
	return sub, nil
}

// ListSubmissions returns one page of the filtered submissions, newest first.
func (s *Service) ListSubmissions(ctx context.Context, filter query.SubmissionFilter, page, pageSize int) (query.Page[*models.FieldSubmission], error) {
	var result query.Page[*models.FieldSubmission]
	err := s.store.View(ctx, func(st *store.State) error {
		result = clonePage(query.Paginate(s.query.FilterSubmissions(st, filter), page, pageSize))
		return nil
	})
	if err != nil {
		return query.Page[*models.FieldSubmission]{}, err
	}
	return result, nil
}
