package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/eventsphere/eventsphere-api/internal/core/domain"
	"github.com/eventsphere/eventsphere-api/internal/core/ports"
)

// tokenTTL is the fixed lifetime of every issued token. There is no
// revocation: a token stays valid until expiry even if credentials change.
const tokenTTL = time.Hour

// TokenService issues and verifies HS256-signed bearer tokens. The signing
// key is process-wide configuration, loaded once at startup.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: tokenTTL, now: time.Now}
}

func (s *TokenService) Issue(principalID string, kind domain.PrincipalKind) (string, error) {
	now := s.now().UTC()
	claims := jwt.MapClaims{
		"sub":  principalID,
		"kind": string(kind),
		"iat":  now.Unix(),
		"exp":  now.Add(s.ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Verify resolves a token to its embedded claims. Bad signature and expiry
// both surface as domain.ErrInvalidToken; callers cannot tell them apart.
func (s *TokenService) Verify(token string) (*ports.TokenClaims, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !parsed.Valid {
		return nil, domain.ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	kindStr, _ := claims["kind"].(string)
	kind := domain.PrincipalKind(kindStr)
	if sub == "" || !kind.Valid() {
		return nil, domain.ErrInvalidToken
	}

	return &ports.TokenClaims{PrincipalID: sub, Kind: kind}, nil
}
