package ports

import (
	"context"

	"github.com/eventsphere/eventsphere-api/internal/core/domain"
)

// AuthService implements signup, login and profile lookups for both
// identity kinds. Register and Login return a signed bearer token alongside
// the principal; the token is issued at signup as well as at login.
type AuthService interface {
	Register(ctx context.Context, kind domain.PrincipalKind, email, fullName, password string) (string, *domain.Principal, error)
	Login(ctx context.Context, kind domain.PrincipalKind, email, password string) (string, *domain.Principal, error)
	Profile(ctx context.Context, kind domain.PrincipalKind, id string) (*domain.Principal, error)
	ListUsers(ctx context.Context) ([]*domain.Principal, error)
}
