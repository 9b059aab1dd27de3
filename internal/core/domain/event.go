package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var ErrEventNotFound = errors.New("event not found")
var ErrIdentityNotFound = errors.New("identity not found")
var ErrIdentityExists = errors.New("identity already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrInvalidToken = errors.New("invalid token")
var ErrForbidden = errors.New("access forbidden")
var ErrValidation = errors.New("validation failed")
var ErrTooManyAttempts = errors.New("too many attempts")

// Event is a bookable event published by a user. CreatedBy is fixed at
// creation and never reassigned; mutation rights belong to the creator only.
type Event struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Image           string          `json:"image,omitempty"`
	Date            time.Time       `json:"date"`
	NumberOfTickets int             `json:"numberOfTickets"`
	TicketPrice     decimal.Decimal `json:"ticketPrice"`
	CreatedBy       string          `json:"createdBy"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// OwnedBy reports whether principalID is the event's creator. This is the
// single authorization invariant behind update and delete.
func (e *Event) OwnedBy(principalID string) bool {
	return e.CreatedBy == principalID
}
