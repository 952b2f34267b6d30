package user

import (
	"encoding/json"
	"log/slog"
)

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

func (s *Service) GetProfile(userID int64) (*User, error) {
	return s.repo.GetByID(userID)
}

func (s *Service) UpdateProfile(userID int64, dto UpdateProfileDTO) (*User, error) {
	return s.Update(userID, dto)
}

func (s *Service) ListAll() ([]*User, error) {
	return s.repo.ListAll()
}

func (s *Service) GetByID(id int64) (*User, error) {
	return s.repo.GetByID(id)
}

// Update applies only the fields present in the DTO.
func (s *Service) Update(id int64, dto UpdateProfileDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if dto.FirstName != nil {
		u.FirstName = *dto.FirstName
	}
	if dto.LastName != nil {
		u.LastName = *dto.LastName
	}
	if dto.Phone != nil {
		u.Phone = *dto.Phone
	}
	if dto.Email != nil {
		u.Email = *dto.Email
	}

	if err := s.repo.Update(u); err != nil {
		s.logger.Error("failed to update user", "error", err, "user_id", id)
		return nil, err
	}

	s.logger.Info("user updated", "user_id", id)
	return u, nil
}

func (s *Service) Delete(id int64) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.logger.Info("user deleted", "user_id", id)
	return nil
}

// AssignRole validates against the closed role set before writing.
func (s *Service) AssignRole(id int64, role string) (*User, error) {
	parsed, err := parseRole(role)
	if err != nil {
		return nil, err
	}

	u, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	u.Role = string(parsed)
	if err := s.repo.Update(u); err != nil {
		s.logger.Error("failed to assign role", "error", err, "user_id", id)
		return nil, err
	}

	s.logger.Info("role assigned", "user_id", id, "role", parsed)
	return u, nil
}

func (s *Service) UpdatePermissions(id int64, permissions []string) (*User, error) {
	u, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if permissions == nil {
		permissions = []string{}
	}
	raw, err := json.Marshal(permissions)
	if err != nil {
		return nil, err
	}

	u.Permissions = string(raw)
	if err := s.repo.Update(u); err != nil {
		s.logger.Error("failed to update permissions", "error", err, "user_id", id)
		return nil, err
	}

	s.logger.Info("permissions updated", "user_id", id, "count", len(permissions))
	return u, nil
}
