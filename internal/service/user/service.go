package user

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"usersvc/internal/model"
)

// ErrUserNotFound is returned when no row matches the requested id.
var ErrUserNotFound = errors.New("user not found")

// Store is the persistence surface the service translates onto.
type Store interface {
	List(ctx context.Context) ([]model.User, error)
	Create(ctx context.Context, u *model.User) error
	GetByID(ctx context.Context, id int) (*model.User, error)
	Update(ctx context.Context, u *model.User) error
	Delete(ctx context.Context, id int) error
}

type Service struct {
	store  Store
	logger *zap.Logger
}

func NewService(store Store, logger *zap.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
	}
}

// List returns all users, unfiltered and unpaginated.
func (s *Service) List(ctx context.Context) ([]model.User, error) {
	users, err := s.store.List(ctx)
	if err != nil {
		s.logger.Error("failed to list users", zap.Error(err))
		return nil, err
	}
	return users, nil
}

// Create inserts a new user; the store assigns the id.
func (s *Service) Create(ctx context.Context, name, email, password string) (*model.User, error) {
	u := &model.User{
		Name:     name,
		Email:    email,
		Password: password,
	}
	if err := s.store.Create(ctx, u); err != nil {
		s.logger.Error("failed to create user", zap.Error(err))
		return nil, err
	}
	return u, nil
}

// GetByID returns the user for id, or ErrUserNotFound.
func (s *Service) GetByID(ctx context.Context, id int) (*model.User, error) {
	u, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("failed to get user", zap.Int("id", id), zap.Error(err))
		return nil, err
	}
	return u, nil
}

// Update fetches the row and overwrites every field unconditionally.
// Partial patches are not supported.
func (s *Service) Update(ctx context.Context, id int, name, email, password string) (*model.User, error) {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	u.Name = name
	u.Email = email
	u.Password = password

	if err := s.store.Update(ctx, u); err != nil {
		s.logger.Error("failed to update user", zap.Int("id", id), zap.Error(err))
		return nil, err
	}
	return u, nil
}

// Delete removes the row and returns its last state.
func (s *Service) Delete(ctx context.Context, id int) (*model.User, error) {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.store.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete user", zap.Int("id", id), zap.Error(err))
		return nil, err
	}
	return u, nil
}
