package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eventsphere/eventsphere-api/internal/api/metrics"
	"github.com/eventsphere/eventsphere-api/internal/core/domain"
	"github.com/eventsphere/eventsphere-api/internal/core/ports"
)

// EventHandler handles HTTP requests for the event lifecycle.
type EventHandler struct {
	service ports.EventService
}

func NewEventHandler(service ports.EventService) *EventHandler {
	return &EventHandler{service: service}
}

// Create handles POST /events. Multipart form with an optional image.
//
// @Summary      Create an event
// @Tags         events
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        name             formData  string  true   "Event name"
// @Param        description      formData  string  true   "Event description"
// @Param        date             formData  string  true   "Event date (RFC 3339 or YYYY-MM-DD)"
// @Param        numberOfTickets  formData  int     true   "Tickets available"
// @Param        ticketPrice      formData  number  true   "Price per ticket"
// @Param        image            formData  file    false  "Event image"
// @Success      201  {object}  eventEnvelope
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /events [post]
func (h *EventHandler) Create(c echo.Context) error {
	principalID, _, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	in, err := parseEventForm(c)
	if err != nil {
		return err
	}
	defer closeUpload(in.Image)

	event, err := h.service.Create(c.Request().Context(), principalID, in)
	if err != nil {
		return err
	}

	metrics.EventsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, eventEnvelope{Message: "Event created successfully", Event: event})
}

// List handles GET /events. Public, returns all events.
//
// @Summary      List events
// @Tags         events
// @Produce      json
// @Success      200  {array}  domain.Event
// @Router       /events [get]
func (h *EventHandler) List(c echo.Context) error {
	events, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return c.JSON(http.StatusOK, events)
}

// GetByID handles GET /events/:id. Public.
//
// @Summary      Fetch one event
// @Tags         events
// @Produce      json
// @Param        id   path      string  true  "Event id"
// @Success      200  {object}  domain.Event
// @Failure      404  {object}  map[string]string
// @Router       /events/{id} [get]
func (h *EventHandler) GetByID(c echo.Context) error {
	event, err := h.service.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, event)
}

// MyEvents handles GET /my-events, the events created by the caller.
//
// @Summary      List own events
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Event
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /my-events [get]
func (h *EventHandler) MyEvents(c echo.Context) error {
	principalID, _, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	events, err := h.service.ListByCreator(c.Request().Context(), principalID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, events)
}

// Update handles PUT /events/:id. Creator only, multipart form. A new
// image replaces the stored one; no image retains it.
//
// @Summary      Update an event
// @Tags         events
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Event id"
// @Success      200  {object}  eventEnvelope
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /events/{id} [put]
func (h *EventHandler) Update(c echo.Context) error {
	principalID, _, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	in, err := parseEventForm(c)
	if err != nil {
		return err
	}
	defer closeUpload(in.Image)

	event, err := h.service.Update(c.Request().Context(), principalID, c.Param("id"), in)
	metrics.EventMutationsTotal.WithLabelValues("update", mutationResult(err)).Inc()
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, eventEnvelope{Message: "Event updated successfully", Event: event})
}

// Delete handles DELETE /events/:id. Creator only, permanent.
//
// @Summary      Delete an event
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Event id"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /events/{id} [delete]
func (h *EventHandler) Delete(c echo.Context) error {
	principalID, _, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	err = h.service.Delete(c.Request().Context(), principalID, c.Param("id"))
	metrics.EventMutationsTotal.WithLabelValues("delete", mutationResult(err)).Inc()
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "Event deleted successfully"})
}

func closeUpload(upload *ports.ImageUpload) {
	if upload == nil {
		return
	}
	if closer, ok := upload.Reader.(io.Closer); ok {
		_ = closer.Close()
	}
}

func mutationResult(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrForbidden):
		return "forbidden"
	case errors.Is(err, domain.ErrEventNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrValidation):
		return "invalid"
	default:
		return "error"
	}
}
