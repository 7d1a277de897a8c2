package service

import (
	"context"

	"tontine/internal/tontine/models"
	"tontine/internal/tontine/query"
	"tontine/internal/tontine/store"
)

// GlobalStats computes the aggregate snapshot under one consistent read of
// all collections.
func (s *Service) GlobalStats(ctx context.Context) (query.StatsSnapshot, error) {
	var snap query.StatsSnapshot
	err := s.store.View(ctx, func(st *store.State) error {
		snap = s.query.GlobalStats(st)
		return nil
	})
	if err != nil {
		return query.StatsSnapshot{}, err
	}
	return snap, nil
}

// TotalBalance sums every member's balance.
func (s *Service) TotalBalance(ctx context.Context) (int64, error) {
	var total int64
	err := s.store.View(ctx, func(st *store.State) error {
		total = s.query.TotalBalance(st)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}

// GetSettings returns the current configuration record.
func (s *Service) GetSettings(ctx context.Context) (models.Settings, error) {
	var settings models.Settings
	err := s.store.View(ctx, func(st *store.State) error {
		settings = st.Settings
		return nil
	})
	if err != nil {
		return models.Settings{}, err
	}
	return settings, nil
}

// ReplaceSettings swaps the configuration record wholesale; partial updates
// are deliberately not offered.
func (s *Service) ReplaceSettings(ctx context.Context, settings models.Settings) (models.Settings, error) {
	if err := settings.Validate(); err != nil {
		return models.Settings{}, err
	}

	err := s.store.Update(ctx, func(st *store.State) error {
		st.Settings = settings
		return nil
	})
	if err != nil {
		return models.Settings{}, err
	}

	s.logger.InfoContext(ctx, "settings replaced", "currency", settings.Currency)
	return settings, nil
}
