package service

import (
	"context"
	"fmt"
	"strings"

	"arenda/internal/database"
	"arenda/internal/domain"
	"arenda/internal/models"

	"github.com/rs/zerolog"
)

// UserService owns the identity directory: registration, lookups,
// partial updates and the existence check the other services rely on.
type UserService struct {
	repo   domain.Repository
	logger *zerolog.Logger
}

func NewUserService(repo domain.Repository, logger *zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

func (s *UserService) Create(ctx context.Context, name, email string) (*models.User, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("name: %w", database.ErrBlankField)
	}
	if strings.TrimSpace(email) == "" {
		return nil, fmt.Errorf("email: %w", database.ErrBlankField)
	}

	existing, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("email %s: %w", email, database.ErrEmailTaken)
	}

	user := &models.User{Name: name, Email: email}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("user_id", user.ID).Msg("user registered")
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return s.repo.GetUser(ctx, id)
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.repo.ListUsers(ctx)
}

func (s *UserService) Update(ctx context.Context, id int64, update models.UpdateUser) (*models.User, error) {
	user, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil && strings.TrimSpace(*update.Name) != "" {
		user.Name = *update.Name
	}
	if update.Email != nil && strings.TrimSpace(*update.Email) != "" {
		existing, err := s.repo.GetUserByEmail(ctx, *update.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, fmt.Errorf("email %s: %w", *update.Email, database.ErrEmailTaken)
		}
		user.Email = *update.Email
	}

	if err := s.repo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete refuses to remove a user who still owns items or has bookings;
// no cascade semantics are defined for those.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.GetUser(ctx, id); err != nil {
		return err
	}

	hasData, err := s.repo.UserHasData(ctx, id)
	if err != nil {
		return err
	}
	if hasData {
		return fmt.Errorf("user %d: %w", id, database.ErrUserHasData)
	}

	return s.repo.DeleteUser(ctx, id)
}

// RequireExists is the shared existence check used by other services.
func (s *UserService) RequireExists(ctx context.Context, id int64) (*models.User, error) {
	return s.repo.GetUser(ctx, id)
}
