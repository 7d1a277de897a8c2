package service

import (
	"context"

	"tontine/internal/tontine/models"
	"tontine/internal/tontine/store"
	"tontine/internal/tontine/workflow"
	"tontine/pkg/domain"
)

// SubmitKYC files identity documents for review.
func (s *Service) SubmitKYC(ctx context.Context, memberID domain.MemberID, docs []workflow.DocumentInput) ([]*models.KYCDocument, error) {
	var created []*models.KYCDocument
	err := s.store.Update(ctx, func(st *store.State) error {
		filed, err := s.workflow.SubmitKYC(st, memberID, docs)
		if err != nil {
			return err
		}
		created = cloneAll(filed)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "kyc submitted", "member_id", memberID, "documents", len(created))
	return created, nil
}

// ReviewKYC applies a verification decision; the member status and every
// pending document resolve in one atomic step.
func (s *Service) ReviewKYC(ctx context.Context, memberID domain.MemberID, decision models.KYCStatus, reviewerID, reason string) (*models.Member, error) {
	var member *models.Member
	err := s.store.Update(ctx, func(st *store.State) error {
		m, err := s.workflow.ReviewKYC(st, memberID, decision, reviewerID, reason)
		if err != nil {
			return err
		}
		member = m.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.ObserveReview("kyc", string(decision))
	s.logger.InfoContext(ctx, "kyc reviewed",
		"member_id", memberID, "decision", decision, "reviewer", reviewerID)
	return member, nil
}

// ListKYCByStatus lists documents in a given state, oldest first.
func (s *Service) ListKYCByStatus(ctx context.Context, status models.DocumentStatus) ([]*models.KYCDocument, error) {
	var out []*models.KYCDocument
	err := s.store.View(ctx, func(st *store.State) error {
		out = cloneAll(s.query.DocumentsByStatus(st, status))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
