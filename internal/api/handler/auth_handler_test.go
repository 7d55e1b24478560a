package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/attendr/attendance-api/internal/core/domain"
	"github.com/attendr/attendance-api/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterOrganizationInput) (*ports.RegistrationResult, error)
	loginFn    func(ctx context.Context, email, password, role string) (string, *domain.User, error)
}

func (s *stubAuthService) RegisterOrganization(ctx context.Context, in ports.RegisterOrganizationInput) (*ports.RegistrationResult, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password, role string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password, role)
}

// newContext builds an echo context with the validator wired like the router.
func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
	}
	return resp
}

func httpCode(t *testing.T, err error) int {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected *echo.HTTPError, got %T: %v", err, err)
	}
	return he.Code
}

func TestAuthHandler_RegisterOrganization_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterOrganizationInput) (*ports.RegistrationResult, error) {
			if in.Email != "admin@acme.com" || in.OrganizationName != "Acme" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &ports.RegistrationResult{
				Organization: &domain.Organization{ID: "org-1", Name: "Acme"},
				Admin:        &domain.User{ID: "u1", Name: "Alice", Email: in.Email, PasswordHash: "hash", Role: domain.RoleAdmin, OrganizationID: "org-1"},
				Token:        "token123",
			}, nil
		},
	}
	c, rec := newContext(http.MethodPost, "/api/auth/register-organization",
		`{"name":"Alice","email":"admin@acme.com","password":"pw123","organizationName":"Acme"}`)

	if err := NewAuthHandler(stub).RegisterOrganization(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	resp := decode(t, rec)
	if resp["token"] != "token123" || resp["message"] == "" {
		t.Fatalf("unexpected response: %v", resp)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user in response")
	}
	if user["organizationId"] != "org-1" || user["role"] != "admin" {
		t.Errorf("unexpected user payload: %+v", user)
	}
	if _, leaked := user["passwordHash"]; leaked || strings.Contains(rec.Body.String(), "hash") {
		t.Errorf("password hash leaked: %s", rec.Body.String())
	}
}

func TestAuthHandler_RegisterOrganization_Validation(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterOrganizationInput) (*ports.RegistrationResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	c, _ := newContext(http.MethodPost, "/api/auth/register-organization", `{"email":"not-an-email"}`)

	err := NewAuthHandler(stub).RegisterOrganization(c)
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	want := map[string]bool{"name is required": true, "email must be a valid email": true, "password is required": true}
	if len(ve.Details) != len(want) {
		t.Fatalf("unexpected details: %v", ve.Details)
	}
	for _, d := range ve.Details {
		if !want[d] {
			t.Errorf("unexpected detail %q", d)
		}
	}
}

func TestAuthHandler_RegisterOrganization_ServiceError(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterOrganizationInput) (*ports.RegistrationResult, error) {
			return nil, domain.ErrUserExists
		},
	}
	c, _ := newContext(http.MethodPost, "/", `{"name":"A","email":"a@a.com","password":"x"}`)

	if err := NewAuthHandler(stub).RegisterOrganization(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthHandler_RegisterOrganization_InvalidPayload(t *testing.T) {
	c, _ := newContext(http.MethodPost, "/", "not-json")

	err := NewAuthHandler(&stubAuthService{}).RegisterOrganization(c)
	if httpCode(t, err) != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password, role string) (string, *domain.User, error) {
			if email != "emp@acme.com" || password != "pw456" || role != "employee" {
				t.Fatalf("unexpected args: %s %s %s", email, password, role)
			}
			return "token123", &domain.User{ID: "u2", Role: role}, nil
		},
	}
	c, rec := newContext(http.MethodPost, "/api/auth/login", `{"email":"emp@acme.com","password":"pw456","role":"employee"}`)

	if err := NewAuthHandler(stub).Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	resp := decode(t, rec)
	if resp["token"] != "token123" {
		t.Fatalf("expected token, got %v", resp["token"])
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["role"] != "employee" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
}

func TestAuthHandler_Login_PropagatesServiceErrors(t *testing.T) {
	for _, want := range []error{domain.ErrInvalidCredentials, domain.ErrForbidden, domain.ErrTooManyAttempts} {
		stub := &stubAuthService{
			loginFn: func(ctx context.Context, email, password, role string) (string, *domain.User, error) {
				return "", nil, want
			},
		}
		c, _ := newContext(http.MethodPost, "/", `{"email":"a@a.com","password":"x","role":"admin"}`)

		if err := NewAuthHandler(stub).Login(c); !errors.Is(err, want) {
			t.Errorf("expected %v, got %v", want, err)
		}
	}
}
