package ports

import (
	"context"

	"github.com/eventsphere/eventsphere-api/internal/core/domain"
)

// EventRepository defines persistence operations for events.
type EventRepository interface {
	Create(ctx context.Context, e *domain.Event) (*domain.Event, error)
	FindByID(ctx context.Context, id string) (*domain.Event, error)
	// FindAll returns every event in insertion order.
	FindAll(ctx context.Context) ([]*domain.Event, error)
	FindByCreator(ctx context.Context, principalID string) ([]*domain.Event, error)
	// Update replaces the stored document for e.ID.
	Update(ctx context.Context, e *domain.Event) (*domain.Event, error)
	Delete(ctx context.Context, id string) error
}
