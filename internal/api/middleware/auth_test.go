package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/attendr/attendance-api/internal/core/domain"
)

type stubVerifier struct {
	claims *domain.TokenClaims
	err    error
}

func (s *stubVerifier) Verify(token string) (*domain.TokenClaims, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.claims, nil
}

type stubResolver struct {
	users map[string]*domain.User
	err   error
}

func (s *stubResolver) FindByID(_ context.Context, id string) (*domain.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

var alice = &domain.User{ID: "u1", Name: "Alice", Role: domain.RoleAdmin, OrganizationID: "org-1"}

func runAuth(t *testing.T, header string, v *stubVerifier, r *stubResolver) (*httptest.ResponseRecorder, *domain.User) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen *domain.User
	handler := Auth(v, r, zerolog.Nop())(func(c echo.Context) error {
		seen, _ = CurrentUser(c)
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, seen
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	v := &stubVerifier{claims: &domain.TokenClaims{UserID: "u1", Role: domain.RoleEmployee}}
	r := &stubResolver{users: map[string]*domain.User{"u1": alice}}

	rec, user := runAuth(t, "Bearer abc", v, r)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if user == nil || user.ID != "u1" {
		t.Fatalf("user not injected: %+v", user)
	}
	if user.Role != domain.RoleAdmin {
		t.Errorf("role must come from the stored record, got %q", user.Role)
	}
}

func TestAuthMiddleware_LowercaseScheme(t *testing.T) {
	v := &stubVerifier{claims: &domain.TokenClaims{UserID: "u1"}}
	r := &stubResolver{users: map[string]*domain.User{"u1": alice}}

	if rec, _ := runAuth(t, "bearer abc", v, r); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	valid := &stubVerifier{claims: &domain.TokenClaims{UserID: "u1"}}
	known := &stubResolver{users: map[string]*domain.User{"u1": alice}}

	tests := []struct {
		name   string
		header string
		v      *stubVerifier
		r      *stubResolver
	}{
		{"missing header", "", valid, known},
		{"wrong scheme", "Token abc", valid, known},
		{"empty token", "Bearer ", valid, known},
		{"invalid token", "Bearer abc", &stubVerifier{err: domain.ErrInvalidToken}, known},
		{"expired token", "Bearer abc", &stubVerifier{err: domain.ErrExpiredToken}, known},
		{"malformed token", "Bearer abc", &stubVerifier{err: domain.ErrMalformedToken}, known},
		{"deleted user", "Bearer abc", valid, &stubResolver{users: map[string]*domain.User{}}},
		{"store failure", "Bearer abc", valid, &stubResolver{err: errors.New("mongo down")}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec, user := runAuth(t, tc.header, tc.v, tc.r)
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
			if user != nil {
				t.Errorf("next must not run")
			}
		})
	}
}

func TestCurrentUser_Missing(t *testing.T) {
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	if _, ok := CurrentUser(c); ok {
		t.Fatal("expected no user")
	}
}
