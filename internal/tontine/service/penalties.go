package service

import (
	"context"

	"tontine/internal/tontine/models"
	"tontine/internal/tontine/query"
	"tontine/internal/tontine/store"
	"tontine/pkg/domain"
)

func (s *Service) CreatePenalty(ctx context.Context, memberID domain.MemberID, amount int64, reason string) (*models.Penalty, error) {
	var penalty *models.Penalty
	err := s.store.Update(ctx, func(st *store.State) error {
		p, err := s.workflow.CreatePenalty(st, memberID, amount, reason)
		if err != nil {
			return err
		}
		penalty = p.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "penalty created",
		"penalty_id", penalty.ID, "member_id", memberID, "amount", amount)
	return penalty, nil
}

func (s *Service) ResolvePenalty(ctx context.Context, penaltyID domain.PenaltyID, resolvedBy string) (*models.Penalty, error) {
	var penalty *models.Penalty
	err := s.store.Update(ctx, func(st *store.State) error {
		p, err := s.workflow.ResolvePenalty(st, penaltyID, resolvedBy)
		if err != nil {
			return err
		}
		penalty = p.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.ObserveReview("penalty", "resolved")
	s.logger.InfoContext(ctx, "penalty resolved", "penalty_id", penaltyID, "resolved_by", resolvedBy)
	return penalty, nil
}

// ListPenalties returns one page of the filtered penalties, newest first.
func (s *Service) ListPenalties(ctx context.Context, filter query.PenaltyFilter, page, pageSize int) (query.Page[*models.Penalty], error) {
	var result query.Page[*models.Penalty]
	err := s.store.View(ctx, func(st *store.State) error {
		result = clonePage(query.Paginate(s.query.FilterPenalties(st, filter), page, pageSize))
		return nil
	})
	if err != nil {
		return query.Page[*models.Penalty]{}, err
	}
	return result, nil
}
