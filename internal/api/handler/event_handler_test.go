package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/eventsphere/eventsphere-api/internal/api/middleware"
	"github.com/eventsphere/eventsphere-api/internal/core/domain"
	"github.com/eventsphere/eventsphere-api/internal/core/ports"
)

type stubEventService struct {
	createFn        func(ctx context.Context, creatorID string, in ports.EventInput) (*domain.Event, error)
	listFn          func(ctx context.Context) ([]*domain.Event, error)
	getByIDFn       func(ctx context.Context, id string) (*domain.Event, error)
	listByCreatorFn func(ctx context.Context, principalID string) ([]*domain.Event, error)
	updateFn        func(ctx context.Context, principalID, id string, in ports.EventInput) (*domain.Event, error)
	deleteFn        func(ctx context.Context, principalID, id string) error
}

func (s *stubEventService) Create(ctx context.Context, creatorID string, in ports.EventInput) (*domain.Event, error) {
	return s.createFn(ctx, creatorID, in)
}

func (s *stubEventService) List(ctx context.Context) ([]*domain.Event, error) {
	return s.listFn(ctx)
}

func (s *stubEventService) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	return s.getByIDFn(ctx, id)
}

func (s *stubEventService) ListByCreator(ctx context.Context, principalID string) ([]*domain.Event, error) {
	return s.listByCreatorFn(ctx, principalID)
}

func (s *stubEventService) Update(ctx context.Context, principalID, id string, in ports.EventInput) (*domain.Event, error) {
	return s.updateFn(ctx, principalID, id, in)
}

func (s *stubEventService) Delete(ctx context.Context, principalID, id string) error {
	return s.deleteFn(ctx, principalID, id)
}

// eventForm builds a multipart request body with the given fields and an
// optional image part.
func eventForm(t *testing.T, fields map[string]string, imageName string) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	if imageName != "" {
		fw, err := w.CreateFormFile("image", imageName)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := fw.Write([]byte("fake image bytes")); err != nil {
			t.Fatalf("write image: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}

func validEventFields() map[string]string {
	return map[string]string{
		"name":            "GopherCon",
		"description":     "A conference",
		"date":            "2026-10-01",
		"numberOfTickets": "100",
		"ticketPrice":     "49.99",
	}
}

func authedContext(e *echo.Echo, req *http.Request, rec *httptest.ResponseRecorder, principalID string) echo.Context {
	c := e.NewContext(req, rec)
	c.Set(middleware.PrincipalIDKey, principalID)
	c.Set(middleware.PrincipalKindKey, "user")
	return c
}

func TestEventHandler_Create_Success(t *testing.T) {
	e := newEcho()
	stub := &stubEventService{
		createFn: func(ctx context.Context, creatorID string, in ports.EventInput) (*domain.Event, error) {
			if creatorID != "u1" {
				t.Fatalf("unexpected creator: %s", creatorID)
			}
			if in.Name != "GopherCon" || in.NumberOfTickets != 100 {
				t.Fatalf("unexpected input: %+v", in)
			}
			if !in.TicketPrice.Equal(decimal.RequireFromString("49.99")) {
				t.Fatalf("unexpected price: %s", in.TicketPrice)
			}
			if in.Date != time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC) {
				t.Fatalf("unexpected date: %s", in.Date)
			}
			if in.Image == nil || in.Image.Filename != "poster.png" {
				t.Fatalf("expected image upload, got %+v", in.Image)
			}
			return &domain.Event{ID: "ev1", Name: in.Name, CreatedBy: creatorID}, nil
		},
	}
	h := NewEventHandler(stub)

	body, contentType := eventForm(t, validEventFields(), "poster.png")
	req := httptest.NewRequest(http.MethodPost, "/events", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "u1")

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if _, ok := resp["event"]; !ok {
		t.Fatalf("expected event in response: %+v", resp)
	}
}

func TestEventHandler_Create_NoAuthClaims(t *testing.T) {
	e := newEcho()
	h := NewEventHandler(&stubEventService{})

	body, contentType := eventForm(t, validEventFields(), "")
	req := httptest.NewRequest(http.MethodPost, "/events", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestEventHandler_Create_BadNumber(t *testing.T) {
	e := newEcho()
	h := NewEventHandler(&stubEventService{
		createFn: func(ctx context.Context, creatorID string, in ports.EventInput) (*domain.Event, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	})

	fields := validEventFields()
	fields["numberOfTickets"] = "lots"
	body, contentType := eventForm(t, fields, "")
	req := httptest.NewRequest(http.MethodPost, "/events", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "u1")

	err := h.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestEventHandler_List_EmptyIsArray(t *testing.T) {
	e := newEcho()
	h := NewEventHandler(&stubEventService{
		listFn: func(ctx context.Context) ([]*domain.Event, error) { return nil, nil },
	})

	req := httptest.NewRequest(http.MethodGet, "/events", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if body := bytes.TrimSpace(rec.Body.Bytes()); string(body) != "[]" {
		t.Fatalf("expected empty array, got %s", body)
	}
}

func TestEventHandler_GetByID_NotFound(t *testing.T) {
	e := newEcho()
	h := NewEventHandler(&stubEventService{
		getByIDFn: func(ctx context.Context, id string) (*domain.Event, error) {
			return nil, domain.ErrEventNotFound
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/events/missing", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("missing")

	if err := h.GetByID(c); !errors.Is(err, domain.ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound to propagate, got %v", err)
	}
}

func TestEventHandler_Update_Forbidden(t *testing.T) {
	e := newEcho()
	h := NewEventHandler(&stubEventService{
		updateFn: func(ctx context.Context, principalID, id string, in ports.EventInput) (*domain.Event, error) {
			return nil, domain.ErrForbidden
		},
	})

	body, contentType := eventForm(t, validEventFields(), "")
	req := httptest.NewRequest(http.MethodPut, "/events/ev1", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "u2")
	c.SetParamNames("id")
	c.SetParamValues("ev1")

	if err := h.Update(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden to propagate, got %v", err)
	}
}

func TestEventHandler_Delete_Success(t *testing.T) {
	e := newEcho()
	deleted := false
	h := NewEventHandler(&stubEventService{
		deleteFn: func(ctx context.Context, principalID, id string) error {
			if principalID != "u1" || id != "ev1" {
				t.Fatalf("unexpected args: %s %s", principalID, id)
			}
			deleted = true
			return nil
		},
	})

	req := httptest.NewRequest(http.MethodDelete, "/events/ev1", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "u1")
	c.SetParamNames("id")
	c.SetParamValues("ev1")

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !deleted {
		t.Fatalf("service not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestEventHandler_MyEvents(t *testing.T) {
	e := newEcho()
	h := NewEventHandler(&stubEventService{
		listByCreatorFn: func(ctx context.Context, principalID string) ([]*domain.Event, error) {
			if principalID != "u1" {
				t.Fatalf("unexpected principal: %s", principalID)
			}
			return []*domain.Event{{ID: "ev1", CreatedBy: "u1"}}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/my-events", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "u1")

	if err := h.MyEvents(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
