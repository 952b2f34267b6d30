package settings

import "log/slog"

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) Get() (*Settings, error) {
	return s.repo.Get()
}

func (s *Service) Upsert(dto UpdateSettingsDTO) (*Settings, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	cfg := &Settings{
		InventoryLimit:       dto.InventoryLimit,
		NotificationsEnabled: dto.NotificationsEnabled,
		ExpiryDays:           dto.ExpiryDays,
	}

	if err := s.repo.Upsert(cfg); err != nil {
		s.logger.Error("failed to upsert settings", "error", err)
		return nil, err
	}

	s.logger.Info("settings updated", "inventory_limit", cfg.InventoryLimit, "expiry_days", cfg.ExpiryDays)
	return cfg, nil
}
