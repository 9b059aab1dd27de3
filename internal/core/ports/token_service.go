package ports

import "github.com/eventsphere/eventsphere-api/internal/core/domain"

// TokenClaims is the identity a verified bearer token resolves to. Only the
// claims embedded in the token are available; callers needing fresh profile
// data must query the credential store explicitly.
type TokenClaims struct {
	PrincipalID string
	Kind        domain.PrincipalKind
}

// TokenService issues and verifies signed, time-limited bearer tokens.
// Verification failures are opaque: expired and tampered tokens surface as
// the same domain.ErrInvalidToken, never distinguished to callers.
type TokenService interface {
	Issue(principalID string, kind domain.PrincipalKind) (string, error)
	Verify(token string) (*TokenClaims, error)
}
