package domain

import "time"

// PrincipalKind discriminates the two independent identity collections.
type PrincipalKind string

const (
	KindUser  PrincipalKind = "user"
	KindAdmin PrincipalKind = "admin"
)

// Valid reports whether k names a known identity collection.
func (k PrincipalKind) Valid() bool {
	return k == KindUser || k == KindAdmin
}

// Principal models an authenticated actor: a regular user or an admin.
// The Kind tag replaces two duplicated identity models; users and admins
// still live in separate collections and may share an email.
type Principal struct {
	ID           string        `json:"id"`
	Kind         PrincipalKind `json:"kind"`
	Email        string        `json:"email"`
	FullName     string        `json:"fullName,omitempty"`
	PasswordHash string        `json:"-"`
	CreatedAt    time.Time     `json:"createdAt"`
}
