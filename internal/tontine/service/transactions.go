package service

import (
	"context"

	"tontine/internal/tontine/models"
	"tontine/internal/tontine/query"
	"tontine/internal/tontine/store"
	"tontine/pkg/domain"
)

// ListTransactions returns one page of the filtered journal, newest first.
func (s *Service) ListTransactions(ctx context.Context, filter query.TransactionFilter, page, pageSize int) (query.Page[*models.Transaction], error) {
	var result query.Page[*models.Transaction]
	err := s.store.View(ctx, func(st *store.State) error {
		result = clonePage(query.Paginate(s.query.FilterTransactions(st, filter), page, pageSize))
		return nil
	})
	if err != nil {
		return query.Page[*models.Transaction]{}, err
	}
	return result, nil
}

// ReviseTransactionStatus is the administrative correction path; the balance
// delta is applied or reversed exactly at the status boundary.
func (s *Service) ReviseTransactionStatus(ctx context.Context, txID domain.TransactionID, status models.TransactionStatus, reason string) (*models.Transaction, error) {
	var tx *models.Transaction
	err := s.store.Update(ctx, func(st *store.State) error {
		revised, err := s.ledger.ReviseStatus(st, txID, status, reason)
		if err != nil {
			return err
		}
		tx = revised.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "transaction status revised",
		"transaction_id", txID, "status", status)
	return tx, nil
}
