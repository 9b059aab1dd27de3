package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/eventsphere/eventsphere-api/internal/core/domain"
	"github.com/eventsphere/eventsphere-api/internal/core/ports"
)

// EventService implements the event CRUD lifecycle. Reads are public;
// create requires an authenticated principal; update and delete are
// restricted to the event's creator.
type EventService struct {
	repo   ports.EventRepository
	assets ports.AssetStore
	log    zerolog.Logger
}

func NewEventService(repo ports.EventRepository, assets ports.AssetStore, log zerolog.Logger) *EventService {
	return &EventService{repo: repo, assets: assets, log: log}
}

func validateEventInput(in ports.EventInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if strings.TrimSpace(in.Description) == "" {
		return fmt.Errorf("%w: description is required", domain.ErrValidation)
	}
	if in.Date.IsZero() {
		return fmt.Errorf("%w: date is required", domain.ErrValidation)
	}
	if in.NumberOfTickets < 0 {
		return fmt.Errorf("%w: numberOfTickets cannot be negative", domain.ErrValidation)
	}
	if in.TicketPrice.IsNegative() {
		return fmt.Errorf("%w: ticketPrice cannot be negative", domain.ErrValidation)
	}
	return nil
}

// Create validates the input, stores an optional image asset, and persists
// the event with CreatedBy fixed to the caller. The image write is a
// synchronous side effect and is not rolled back if the insert fails, so an
// orphaned file is possible.
func (s *EventService) Create(ctx context.Context, creatorID string, in ports.EventInput) (*domain.Event, error) {
	if err := validateEventInput(in); err != nil {
		return nil, err
	}

	imagePath := ""
	if in.Image != nil {
		path, err := s.assets.Save(ctx, in.Image)
		if err != nil {
			return nil, err
		}
		imagePath = path
	}

	event := &domain.Event{
		Name:            strings.TrimSpace(in.Name),
		Description:     in.Description,
		Image:           imagePath,
		Date:            in.Date,
		NumberOfTickets: in.NumberOfTickets,
		TicketPrice:     in.TicketPrice,
		CreatedBy:       creatorID,
		CreatedAt:       time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, event)
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	s.log.Info().Str("event_id", created.ID).Str("created_by", creatorID).Msg("event created")
	return created, nil
}

func (s *EventService) List(ctx context.Context) ([]*domain.Event, error) {
	return s.repo.FindAll(ctx)
}

func (s *EventService) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	return s.repo.FindByID(ctx, id)
}

// ListByCreator returns events created by the given principal. No events is
// reported as ErrEventNotFound, matching the public contract.
func (s *EventService) ListByCreator(ctx context.Context, principalID string) ([]*domain.Event, error) {
	events, err := s.repo.FindByCreator(ctx, principalID)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, domain.ErrEventNotFound
	}
	return events, nil
}

// Update replaces all scalar fields of the event. The image is merged by
// field: a new upload replaces the stored path, no upload retains it. Only
// the creator may update.
func (s *EventService) Update(ctx context.Context, principalID, id string, in ports.EventInput) (*domain.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !event.OwnedBy(principalID) {
		return nil, domain.ErrForbidden
	}

	if err := validateEventInput(in); err != nil {
		return nil, err
	}

	if in.Image != nil {
		path, err := s.assets.Save(ctx, in.Image)
		if err != nil {
			return nil, err
		}
		event.Image = path
	}

	event.Name = strings.TrimSpace(in.Name)
	event.Description = in.Description
	event.Date = in.Date
	event.NumberOfTickets = in.NumberOfTickets
	event.TicketPrice = in.TicketPrice

	updated, err := s.repo.Update(ctx, event)
	if err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}

	s.log.Info().Str("event_id", id).Msg("event updated")
	return updated, nil
}

// Delete removes the event permanently. Only the creator may delete; a
// second delete of the same id reports ErrEventNotFound.
func (s *EventService) Delete(ctx context.Context, principalID, id string) error {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !event.OwnedBy(principalID) {
		return domain.ErrForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}

	s.log.Info().Str("event_id", id).Msg("event deleted")
	return nil
}
