package service

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"time"

	"github.com/rs/zerolog"

	"shop-service/internal/entity"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// UserStore is the slice of the repository the user service needs.
type UserStore interface {
	GetUsers(ctx context.Context, skip, limit int) ([]*entity.User, error)
	GetUserByID(ctx context.Context, id int) (*entity.User, error)
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	CreateUser(ctx context.Context, user *entity.User) (*entity.User, error)
	UpdateUser(ctx context.Context, user *entity.User) (*entity.User, error)
	DeleteUser(ctx context.Context, id int) (bool, error)
	CountUsers(ctx context.Context) (int, error)
}

type UserService struct {
	repo UserStore
}

// NewUserService creates a new instance of UserService.
func NewUserService(repo UserStore) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) ListUsers(ctx context.Context, skip, limit int) ([]*entity.User, error) {
	users, err := s.repo.GetUsers(ctx, skip, limit)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing users")
		return nil, err
	}

	return users, nil
}

// CreateUser persists a new user unless the email is already registered.
// The uniqueness check is read-then-write, so concurrent creates can race.
func (s *UserService) CreateUser(ctx context.Context, in entity.UserCreate) (*entity.User, error) {
	_, err := s.repo.GetUserByEmail(ctx, in.Email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, sql.ErrNoRows) {
		logger.Error().Err(err).Msg("Error checking email")
		return nil, err
	}

	now := time.Now()
	user := &entity.User{
		Username:  in.Username,
		Email:     in.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}

	createdUser, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		logger.Error().Err(err).Msg("Error creating user")
		return nil, err
	}

	return createdUser, nil
}

func (s *UserService) GetUser(ctx context.Context, id int) (*entity.User, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Msgf("Error getting user by ID %d", id)
		return nil, err
	}

	return user, nil
}

// UpdateUser applies the supplied fields on top of the stored row.
func (s *UserService) UpdateUser(ctx context.Context, id int, in entity.UserUpdate) (*entity.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	in.Apply(user)
	user.UpdatedAt = time.Now()

	updatedUser, err := s.repo.UpdateUser(ctx, user)
	if err != nil {
		logger.Error().Err(err).Msgf("Error updating user %d", id)
		return nil, err
	}

	return updatedUser, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id int) error {
	deleted, err := s.repo.DeleteUser(ctx, id)
	if err != nil {
		logger.Error().Err(err).Msgf("Error deleting user %d", id)
		return err
	}
	if !deleted {
		return ErrNotFound
	}

	return nil
}

func (s *UserService) CountUsers(ctx context.Context) (int, error) {
	return s.repo.CountUsers(ctx)
}
