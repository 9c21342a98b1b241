package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/interviewace/interviewace/internal/auth"
	"github.com/interviewace/interviewace/internal/models"
	"github.com/interviewace/interviewace/internal/repositories/memory"
	"github.com/interviewace/interviewace/internal/utils"
)

type UserService interface {
	Register(ctx context.Context, email, password string) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	Logout(ctx context.Context)
	Profile(ctx context.Context, userID string) (*models.User, error)
}

type userService struct {
	users  memory.UserRepository
	tokens *auth.TokenManager
	bus    *auth.Broadcaster
}

func NewUserService(users memory.UserRepository, tokens *auth.TokenManager, bus *auth.Broadcaster) UserService {
	return &userService{users: users, tokens: tokens, bus: bus}
}

func (s *userService) Register(ctx context.Context, email, password string) (*models.User, string, error) {
	const op = "UserService.Register"

	if email == "" || password == "" {
		return nil, "", utils.E(utils.CodeInvalidArgument, op, "email and password are required", nil)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, "", utils.E(utils.CodeInternal, op, "failed to hash password", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if utils.IsCode(err, utils.CodeConflict) {
			return nil, "", utils.E(utils.CodeConflict, op, "user already exists", err)
		}
		return nil, "", utils.E(utils.CodeInternal, op, "failed to create user", err)
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}

	// a fresh registration signs the user in
	s.bus.Publish(user.Email)
	return user, token, nil
}

func (s *userService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	const op = "UserService.Login"

	if email == "" || password == "" {
		return nil, "", utils.E(utils.CodeInvalidArgument, op, "email and password are required", nil)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			// same message as a bad password: don't leak which one failed
			return nil, "", utils.E(utils.CodeUnauthorized, op, "invalid credentials", err)
		}
		return nil, "", utils.E(utils.CodeInternal, op, "failed to look up user", err)
	}
	if err := utils.CheckPassword(user.PasswordHash, password); err != nil {
		return nil, "", utils.E(utils.CodeUnauthorized, op, "invalid credentials", err)
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}

	s.bus.Publish(user.Email)
	return user, token, nil
}

func (s *userService) Logout(_ context.Context) {
	s.bus.Publish("")
}

func (s *userService) Profile(ctx context.Context, userID string) (*models.User, error) {
	const op = "UserService.Profile"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "user not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get user", err)
	}
	return user, nil
}
