package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/eventsphere/eventsphere-api/internal/core/domain"
	"github.com/eventsphere/eventsphere-api/internal/core/ports"
)

// LoginLimiter throttles repeated login attempts against one identity.
// Allow returns domain.ErrTooManyAttempts when the caller must back off;
// infrastructure failures inside the limiter must not block logins.
type LoginLimiter interface {
	Allow(ctx context.Context, kind domain.PrincipalKind, email string) error
}

// AuthService implements registration, login and profile lookups for both
// identity kinds over a single repository.
type AuthService struct {
	repo    ports.IdentityRepository
	tokens  ports.TokenService
	limiter LoginLimiter
	log     zerolog.Logger
}

func NewAuthService(repo ports.IdentityRepository, tokens ports.TokenService, limiter LoginLimiter, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, limiter: limiter, log: log}
}

// Register creates an identity of the given kind and issues a token for it.
// The plaintext password is hashed before storage and never logged.
func (s *AuthService) Register(ctx context.Context, kind domain.PrincipalKind, email, fullName, password string) (string, *domain.Principal, error) {
	email = strings.TrimSpace(email)
	fullName = strings.TrimSpace(fullName)

	if !kind.Valid() {
		return "", nil, fmt.Errorf("%w: unknown identity kind", domain.ErrValidation)
	}
	if email == "" || password == "" {
		return "", nil, fmt.Errorf("%w: email and password are required", domain.ErrValidation)
	}
	if kind == domain.KindUser && fullName == "" {
		return "", nil, fmt.Errorf("%w: fullName is required", domain.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, fmt.Errorf("hash password: %w", err)
	}

	principal := &domain.Principal{
		Kind:         kind,
		Email:        email,
		FullName:     fullName,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, principal)
	if err != nil {
		return "", nil, err
	}

	token, err := s.tokens.Issue(created.ID, created.Kind)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}

	s.log.Info().Str("kind", string(kind)).Str("id", created.ID).Msg("identity registered")
	return token, created, nil
}

// Login authenticates by (kind, email, password) and returns a fresh token.
// Unknown email and wrong password both yield ErrInvalidCredentials so the
// response never reveals whether the email exists.
func (s *AuthService) Login(ctx context.Context, kind domain.PrincipalKind, email, password string) (string, *domain.Principal, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	if s.limiter != nil {
		if err := s.limiter.Allow(ctx, kind, email); err != nil {
			return "", nil, err
		}
	}

	principal, err := s.repo.FindByEmail(ctx, kind, email)
	if err != nil {
		if errors.Is(err, domain.ErrIdentityNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(principal.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(principal.ID, principal.Kind)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}

	return token, principal, nil
}

// Profile fetches the caller's own identity record. The password hash stays
// on the struct but is never serialized (json:"-").
func (s *AuthService) Profile(ctx context.Context, kind domain.PrincipalKind, id string) (*domain.Principal, error) {
	return s.repo.FindByID(ctx, kind, id)
}

// ListUsers returns every registered user. An empty collection surfaces as
// ErrIdentityNotFound, matching the public contract (404 on no users).
func (s *AuthService) ListUsers(ctx context.Context) ([]*domain.Principal, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, domain.ErrIdentityNotFound
	}
	return users, nil
}
