package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/auth"
	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/platform/logger"
	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/user/domain"
	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/user/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrUserAlreadyExists  = errors.New("user with this email already exists")
)

// ActivityRecorder receives audit entries for mutating operations. A nil
// recorder disables auditing; recording never fails the operation.
type ActivityRecorder interface {
	Record(ctx context.Context, userID int, action, detail string)
}

type UserService interface {
	Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error)
	CreateUser(ctx context.Context, actorID int, req domain.CreateUserRequest) (*domain.User, error)
	GetUser(ctx context.Context, id int) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	UpdateUser(ctx context.Context, actorID, id int, req domain.UpdateUserRequest) (*domain.User, error)
	DeleteUser(ctx context.Context, actorID, id int) error
}

type userServiceImpl struct {
	repo     repository.UserRepository
	tokens   *auth.TokenManager
	activity ActivityRecorder
}

func NewUserService(repo repository.UserRepository, tokens *auth.TokenManager, activity ActivityRecorder) UserService {
	return &userServiceImpl{repo: repo, tokens: tokens, activity: activity}
}

func (s *userServiceImpl) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		logger.Error("Login: failed to get user by email", err, nil)
		return nil, ErrInvalidCredentials
	}
	if user.Status != domain.StatusActive {
		return nil, ErrUserInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user.ID, user.Email, user.Name, user.Role)
	if err != nil {
		logger.Error("Login: failed to sign token", err, nil)
		return nil, fmt.Errorf("could not generate token: %w", err)
	}

	s.record(ctx, user.ID, "auth.login", fmt.Sprintf("Inicio de sesión de %s", user.Email))

	user.PasswordHash = "" // strip before returning
	return &domain.LoginResponse{User: *user, Token: token}, nil
}

func (s *userServiceImpl) CreateUser(ctx context.Context, actorID int, req domain.CreateUserRequest) (*domain.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("CreateUser: failed to hash password", err, nil)
		return nil, fmt.Errorf("could not process user creation: %w", err)
	}

	user := &domain.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.TrimSpace(strings.ToLower(req.Email)),
		Role:         req.Role,
		PasswordHash: string(hashedPassword),
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUserConflict) {
			return nil, ErrUserAlreadyExists
		}
		logger.Error("CreateUser: failed to create user in repo", err, nil)
		return nil, fmt.Errorf("could not save user: %w", err)
	}

	s.record(ctx, actorID, "usuario.crear", fmt.Sprintf("Usuario %s (id %d) creado con rol %s", user.Email, user.ID, user.Role))

	user.PasswordHash = ""
	return user, nil
}

func (s *userServiceImpl) GetUser(ctx context.Context, id int) (*domain.User, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

func (s *userServiceImpl) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.repo.ListUsers(ctx)
}

func (s *userServiceImpl) UpdateUser(ctx context.Context, actorID, id int, req domain.UpdateUserRequest) (*domain.User, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Name = strings.TrimSpace(req.Name)
	user.Role = req.Role
	user.Status = req.Status

	if err := s.repo.UpdateUser(ctx, user); err != nil {
		logger.Error("UpdateUser: repo error", err, nil)
		return nil, err
	}
	s.record(ctx, actorID, "usuario.actualizar", fmt.Sprintf("Usuario %d actualizado", id))

	user.PasswordHash = ""
	return user, nil
}

func (s *userServiceImpl) DeleteUser(ctx context.Context, actorID, id int) error {
	if err := s.repo.DeleteUser(ctx, id); err != nil {
		return err
	}
	s.record(ctx, actorID, "usuario.eliminar", fmt.Sprintf("Usuario %d eliminado", id))
	return nil
}

func (s *userServiceImpl) record(ctx context.Context, actorID int, action, detail string) {
	if s.activity == nil {
		return
	}
	s.activity.Record(ctx, actorID, action, detail)
}
