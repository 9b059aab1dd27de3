package ports

import (
	"context"

	"github.com/eventsphere/eventsphere-api/internal/core/domain"
)

// IdentityRepository defines persistence for the two identity collections.
// Every operation is scoped by kind; email uniqueness is per collection.
type IdentityRepository interface {
	Create(ctx context.Context, p *domain.Principal) (*domain.Principal, error)
	FindByEmail(ctx context.Context, kind domain.PrincipalKind, email string) (*domain.Principal, error)
	FindByID(ctx context.Context, kind domain.PrincipalKind, id string) (*domain.Principal, error)
	// ListUsers returns all regular users. Admins are never listed.
	ListUsers(ctx context.Context) ([]*domain.Principal, error)
}
