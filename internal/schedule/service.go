package schedule

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

func (s *Service) Create(userID int64, dto CreateScheduleDTO) (*Schedule, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	sched := &Schedule{
		UserID: userID,
		Date:   dto.Date,
		Shift:  dto.Shift,
	}

	if err := s.repo.Create(sched); err != nil {
		s.logger.Error("failed to create schedule", "error", err, "user_id", userID, "date", dto.Date)
		return nil, err
	}

	s.logger.Info("schedule created", "schedule_id", sched.ID, "user_id", userID, "date", dto.Date)
	return sched, nil
}

func (s *Service) ListForUser(userID int64) ([]*Schedule, error) {
	return s.repo.ListForUser(userID)
}

func (s *Service) ListAll() ([]*Schedule, error) {
	return s.repo.ListAll()
}
