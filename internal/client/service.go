package client

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

func (s *Service) Create(dto CreateClientDTO) (*Client, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		Name:   dto.Name,
		Email:  dto.Email,
		Phone:  dto.Phone,
		Gender: dto.Gender,
	}

	if err := s.repo.Create(c); err != nil {
		s.logger.Error("failed to create client", "error", err, "email", dto.Email)
		return nil, err
	}

	s.logger.Info("client created", "client_id", c.ID, "email", c.Email)
	return c, nil
}

func (s *Service) GetByID(id int64) (*Client, error) {
	return s.repo.GetByID(id)
}

func (s *Service) ListAll() ([]*Client, error) {
	return s.repo.ListAll()
}

func (s *Service) ListForEmployee(employeeID int64) ([]*Client, error) {
	return s.repo.ListForEmployee(employeeID)
}
