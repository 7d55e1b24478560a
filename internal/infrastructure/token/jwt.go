package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/attendr/attendance-api/internal/core/domain"
)

const (
	issuer     = "attendance-api"
	defaultTTL = 24 * 24 * time.Hour
)

// Claims is the JWT payload. The subject holds the user ID.
type Claims struct {
	Role           string `json:"role"`
	OrganizationID string `json:"organization_id,omitempty"`
	jwt.RegisteredClaims
}

// JWTService issues and verifies HS256 bearer tokens. There is no revocation
// list; a token stays valid until it expires or the secret is rotated.
type JWTService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewJWTService(secret string, ttl time.Duration) *JWTService {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &JWTService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token for the user's identity, role and organization.
func (s *JWTService) Issue(user *domain.User) (string, error) {
	now := s.now()
	claims := Claims{
		Role:           user.Role,
		OrganizationID: user.OrganizationID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Verify checks signature and expiry and returns the embedded identity.
func (s *JWTService) Verify(raw string) (*domain.TokenClaims, error) {
	var claims Claims
	tkn, err := jwt.ParseWithClaims(raw, &claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, domain.ErrMalformedToken
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, domain.ErrExpiredToken
		default:
			return nil, domain.ErrInvalidToken
		}
	}
	if !tkn.Valid || claims.Subject == "" {
		return nil, domain.ErrInvalidToken
	}

	return &domain.TokenClaims{
		UserID:         claims.Subject,
		Role:           claims.Role,
		OrganizationID: claims.OrganizationID,
		ExpiresAt:      claims.ExpiresAt.Time,
	}, nil
}
