package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/eventsphere/eventsphere-api/internal/core/domain"
	"github.com/eventsphere/eventsphere-api/internal/core/ports"
)

type eventEnvelope struct {
	Message string        `json:"message"`
	Event   *domain.Event `json:"event,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// parseEventForm reads the multipart form fields shared by create and
// update. Missing fields stay zero; the service decides whether that is a
// validation failure. The image reader belongs to the request and is closed
// when the request finishes.
func parseEventForm(c echo.Context) (ports.EventInput, error) {
	var in ports.EventInput

	in.Name = c.FormValue("name")
	in.Description = c.FormValue("description")

	if raw := c.FormValue("date"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			return in, echo.NewHTTPError(http.StatusBadRequest, "date must be RFC 3339 or YYYY-MM-DD")
		}
		in.Date = t
	}

	if raw := c.FormValue("numberOfTickets"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return in, echo.NewHTTPError(http.StatusBadRequest, "numberOfTickets must be an integer")
		}
		in.NumberOfTickets = n
	}

	if raw := c.FormValue("ticketPrice"); raw != "" {
		p, err := decimal.NewFromString(raw)
		if err != nil {
			return in, echo.NewHTTPError(http.StatusBadRequest, "ticketPrice must be a decimal number")
		}
		in.TicketPrice = p
	}

	fh, err := c.FormFile("image")
	if err == nil && fh != nil {
		f, err := fh.Open()
		if err != nil {
			return in, echo.NewHTTPError(http.StatusBadRequest, "unreadable image upload")
		}
		in.Image = &ports.ImageUpload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Reader:      f,
		}
	}

	return in, nil
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
