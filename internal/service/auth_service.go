package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/devdesk/queue-api/internal/auth"
	"github.com/devdesk/queue-api/internal/config"
	"github.com/devdesk/queue-api/internal/domain"
	"github.com/devdesk/queue-api/internal/events"
	"github.com/devdesk/queue-api/internal/repository"
	apperrors "github.com/devdesk/queue-api/pkg/util"
)

// AuthService coordinates registration, login and logout.
type AuthService struct {
	users       repository.UserRepository
	revocations repository.TokenRevocationRepository
	tokens      *auth.TokenManager
	bcryptCost  int
	events      eventPublisher
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	UserRepo       repository.UserRepository
	RevocationRepo repository.TokenRevocationRepository
	Tokens         *auth.TokenManager
	Dispatcher     events.Dispatcher
	Logger         *zap.Logger
}

// RegisterInput is the raw registration request.
type RegisterInput struct {
	Username string
	Password string
	Role     string
}

// AuthResult is returned by register and login.
type AuthResult struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	tokens := deps.Tokens
	if tokens == nil {
		tokens = auth.NewTokenManager(cfg)
	}
	return &AuthService{
		users:       deps.UserRepo,
		revocations: deps.RevocationRepo,
		tokens:      tokens,
		bcryptCost:  cfg.BcryptCost,
		events:      newEventPublisher(deps.Dispatcher, deps.Logger),
	}
}

// Register creates an account and signs a token for it.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	username := strings.TrimSpace(input.Username)
	missing := []string{}
	if username == "" {
		missing = append(missing, "username")
	}
	if input.Password == "" {
		missing = append(missing, "password")
	}
	if strings.TrimSpace(input.Role) == "" {
		missing = append(missing, "role")
	}
	if len(missing) > 0 {
		return nil, apperrors.NewValidationError("missing required fields", map[string]any{"missing": missing})
	}

	role, err := domain.ParseRole(strings.TrimSpace(input.Role))
	if err != nil {
		return nil, apperrors.NewValidationError("role must be student or helper", map[string]any{"role": input.Role})
	}

	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return nil, usernameTaken(username)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewInternalError(err)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if errors.Is(err, auth.ErrPasswordTooLong) {
		return nil, apperrors.NewValidationError("invalid field values", map[string]any{
			"password": "must be at most 72 bytes",
		})
	}
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{Username: username, PasswordHash: hash, Role: role}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return nil, usernameTaken(username)
		}
		return nil, apperrors.NewInternalError(err)
	}

	result, err := s.issue(user)
	if err != nil {
		return nil, err
	}
	s.events.publish(ctx, events.Event{
		Type:    events.EventUserRegistered,
		Actor:   events.ActorFrom(user.Identity()),
		Payload: events.UserRegisteredPayload{Username: user.Username, Role: user.Role},
	})
	return result, nil
}

// Login verifies credentials. Unknown users and wrong passwords are
// indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, invalidCredentials()
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, invalidCredentials()
		}
		return nil, apperrors.NewInternalError(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, invalidCredentials()
		}
		return nil, apperrors.NewInternalError(err)
	}
	return s.issue(user)
}

// Logout revokes the presented token until it would have expired.
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	if s.revocations == nil || claims.ID == "" {
		return nil
	}
	if err := s.revocations.Revoke(ctx, claims.ID, claims.ExpiresAtTime()); err != nil {
		return apperrors.NewInternalError(err)
	}
	return nil
}

func (s *AuthService) issue(user *domain.User) (*AuthResult, error) {
	token, exp, err := s.tokens.Issue(user)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &AuthResult{User: user, Token: token, ExpiresAt: exp}, nil
}

func usernameTaken(username string) error {
	return apperrors.NewConflict("username already taken", map[string]any{"username": username})
}

func invalidCredentials() error {
	return apperrors.NewUnauthorized("invalid credentials")
}
