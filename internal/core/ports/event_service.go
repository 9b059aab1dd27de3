package ports

import (
	"context"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/eventsphere/eventsphere-api/internal/core/domain"
)

// ImageUpload carries an uploaded image file from the transport layer.
// The reader is consumed at most once, by the asset store.
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// EventInput is the DTO passed from the transport layer for create and
// update. Image is optional; on update a nil Image retains the stored one.
type EventInput struct {
	Name            string
	Description     string
	Date            time.Time
	NumberOfTickets int
	TicketPrice     decimal.Decimal
	Image           *ImageUpload
}

// EventService owns the event CRUD lifecycle and enforces creator-only
// mutation rights.
type EventService interface {
	Create(ctx context.Context, creatorID string, in EventInput) (*domain.Event, error)
	List(ctx context.Context) ([]*domain.Event, error)
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	ListByCreator(ctx context.Context, principalID string) ([]*domain.Event, error)
	Update(ctx context.Context, principalID, id string, in EventInput) (*domain.Event, error)
	Delete(ctx context.Context, principalID, id string) error
}
