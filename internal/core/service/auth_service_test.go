package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/attendr/attendance-api/internal/core/domain"
	"github.com/attendr/attendance-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stubs shared by the service tests
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byID      map[string]*domain.User
	seq       int
	createErr error
	findErr   error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	for _, u := range r.byID {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.seq++
	created := cloneUser(user)
	created.ID = fmt.Sprintf("user-%d", r.seq)
	r.byID[created.ID] = cloneUser(created)
	return created, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, u := range r.byID {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) ListByOrganization(_ context.Context, orgID, role string) ([]*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	var out []*domain.User
	for _, u := range r.byID {
		if u.OrganizationID == orgID && u.Role == role {
			out = append(out, cloneUser(u))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubUserRepo) FindOrganizationAdmin(_ context.Context, orgID string) (*domain.User, error) {
	for _, u := range r.byID {
		if u.OrganizationID == orgID && u.Role == domain.RoleAdmin {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

type stubOrgRepo struct {
	byID      map[string]*domain.Organization
	seq       int
	createErr error
	deleteErr error
	deleted   []string
}

func newStubOrgRepo() *stubOrgRepo {
	return &stubOrgRepo{byID: make(map[string]*domain.Organization)}
}

func (r *stubOrgRepo) Create(_ context.Context, org *domain.Organization) (*domain.Organization, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	for _, existing := range r.byID {
		if org.Email != "" && existing.Email == org.Email {
			return nil, domain.ErrOrganizationExists
		}
	}
	r.seq++
	clone := *org
	clone.ID = fmt.Sprintf("org-%d", r.seq)
	stored := clone
	r.byID[clone.ID] = &stored
	return &clone, nil
}

func (r *stubOrgRepo) FindByID(_ context.Context, id string) (*domain.Organization, error) {
	org, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrOrganizationNotFound
	}
	clone := *org
	return &clone, nil
}

func (r *stubOrgRepo) Delete(_ context.Context, id string) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	delete(r.byID, id)
	r.deleted = append(r.deleted, id)
	return nil
}

type stubTokens struct {
	err    error
	issued []*domain.User
}

func (s *stubTokens) Issue(user *domain.User) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.issued = append(s.issued, cloneUser(user))
	return "token-" + user.ID, nil
}

type stubLimiter struct {
	blocked  bool
	allowErr error
	failures map[string]int
	resets   []string
}

func newStubLimiter() *stubLimiter {
	return &stubLimiter{failures: make(map[string]int)}
}

func (l *stubLimiter) Allow(_ context.Context, email string) (bool, error) {
	return !l.blocked, l.allowErr
}

func (l *stubLimiter) RecordFailure(_ context.Context, email string) error {
	l.failures[email]++
	return nil
}

func (l *stubLimiter) Reset(_ context.Context, email string) error {
	l.resets = append(l.resets, email)
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

type authFixture struct {
	users   *stubUserRepo
	orgs    *stubOrgRepo
	tokens  *stubTokens
	limiter *stubLimiter
	svc     *AuthService
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		users:   newStubUserRepo(),
		orgs:    newStubOrgRepo(),
		tokens:  &stubTokens{},
		limiter: newStubLimiter(),
	}
	f.svc = NewAuthService(f.users, f.orgs, f.tokens, f.limiter, discardLogger)
	return f
}

func acmeInput() ports.RegisterOrganizationInput {
	return ports.RegisterOrganizationInput{
		Name:             "Alice Admin",
		Email:            "admin@acme.com",
		Password:         "pw123",
		OrganizationName: "Acme",
	}
}

// ---------------------------------------------------------------------------
// RegisterOrganization
// ---------------------------------------------------------------------------

func TestAuthService_RegisterOrganization_Success(t *testing.T) {
	f := newAuthFixture()

	res, err := f.svc.RegisterOrganization(context.Background(), acmeInput())
	if err != nil {
		t.Fatalf("RegisterOrganization returned error: %v", err)
	}

	if res.Organization.Name != "Acme" {
		t.Errorf("unexpected organization name: %q", res.Organization.Name)
	}
	if res.Admin.OrganizationID != res.Organization.ID {
		t.Errorf("admin organization %q does not match created organization %q", res.Admin.OrganizationID, res.Organization.ID)
	}
	if res.Admin.Role != domain.RoleAdmin {
		t.Errorf("expected admin role, got %q", res.Admin.Role)
	}
	if res.Token != "token-"+res.Admin.ID {
		t.Errorf("unexpected token: %q", res.Token)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(res.Admin.PasswordHash), []byte("pw123")); err != nil {
		t.Errorf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_RegisterOrganization_NormalizesEmailAndDefaultsName(t *testing.T) {
	f := newAuthFixture()
	in := acmeInput()
	in.Email = "  Admin@ACME.com "
	in.OrganizationName = ""

	res, err := f.svc.RegisterOrganization(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Admin.Email != "admin@acme.com" {
		t.Errorf("expected normalized email, got %q", res.Admin.Email)
	}
	if res.Organization.Name != "Alice Admin" {
		t.Errorf("expected organization name to default to admin name, got %q", res.Organization.Name)
	}
}

func TestAuthService_RegisterOrganization_DuplicateEmail(t *testing.T) {
	f := newAuthFixture()
	if _, err := f.svc.RegisterOrganization(context.Background(), acmeInput()); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}

	_, err := f.svc.RegisterOrganization(context.Background(), acmeInput())
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	if len(f.orgs.byID) != 1 {
		t.Errorf("expected no second organization, got %d", len(f.orgs.byID))
	}
}

func TestAuthService_RegisterOrganization_EmailHeldByOrganizationOnly(t *testing.T) {
	f := newAuthFixture()
	res, err := f.svc.RegisterOrganization(context.Background(), acmeInput())
	if err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	delete(f.users.byID, res.Admin.ID)

	_, err = f.svc.RegisterOrganization(context.Background(), acmeInput())
	if !errors.Is(err, domain.ErrOrganizationExists) {
		t.Fatalf("expected ErrOrganizationExists, got %v", err)
	}
	if err.Error() != domain.ErrOrganizationExists.Error() {
		t.Errorf("expected the bare sentinel message, got %q", err.Error())
	}
	if len(f.users.byID) != 0 {
		t.Errorf("no admin must be created when the organization insert is rejected")
	}
}

func TestAuthService_RegisterOrganization_Validation(t *testing.T) {
	f := newAuthFixture()

	_, err := f.svc.RegisterOrganization(context.Background(), ports.RegisterOrganizationInput{Email: "nope"})
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(ve.Details) != 3 {
		t.Errorf("expected 3 details, got %v", ve.Details)
	}
	if len(f.orgs.byID) != 0 {
		t.Errorf("validation failure must not create an organization")
	}
}

func TestAuthService_RegisterOrganization_RollsBackOrganization(t *testing.T) {
	f := newAuthFixture()
	f.users.createErr = errors.New("mongo unavailable")

	_, err := f.svc.RegisterOrganization(context.Background(), acmeInput())
	if err == nil {
		t.Fatal("expected error when admin insert fails")
	}
	if len(f.orgs.deleted) != 1 {
		t.Fatalf("expected organization to be rolled back, deleted=%v", f.orgs.deleted)
	}
	if len(f.orgs.byID) != 0 {
		t.Errorf("expected no orphaned organization, got %d", len(f.orgs.byID))
	}
}

func TestAuthService_RegisterOrganization_RaceOnEmailStillRollsBack(t *testing.T) {
	f := newAuthFixture()
	f.users.createErr = domain.ErrUserExists

	_, err := f.svc.RegisterOrganization(context.Background(), acmeInput())
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	if len(f.orgs.deleted) != 1 {
		t.Errorf("expected rollback on duplicate key, deleted=%v", f.orgs.deleted)
	}
}

func TestAuthService_RegisterOrganization_OrganizationInsertFails(t *testing.T) {
	f := newAuthFixture()
	f.orgs.createErr = errors.New("boom")

	if _, err := f.svc.RegisterOrganization(context.Background(), acmeInput()); err == nil {
		t.Fatal("expected error")
	}
	if len(f.users.byID) != 0 {
		t.Errorf("admin must not be created without an organization")
	}
}

// ---------------------------------------------------------------------------
// Login
// ---------------------------------------------------------------------------

func registerAcme(t *testing.T, f *authFixture) *ports.RegistrationResult {
	t.Helper()
	res, err := f.svc.RegisterOrganization(context.Background(), acmeInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	return res
}

func TestAuthService_Login_Success(t *testing.T) {
	f := newAuthFixture()
	res := registerAcme(t, f)

	token, user, err := f.svc.Login(context.Background(), "ADMIN@acme.com", "pw123", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected token")
	}
	if user.ID != res.Admin.ID {
		t.Errorf("unexpected user: %+v", user)
	}
	if len(f.limiter.resets) != 1 {
		t.Errorf("expected throttle reset on success")
	}
}

func TestAuthService_Login_UnknownEmailAndWrongPasswordLookTheSame(t *testing.T) {
	f := newAuthFixture()
	registerAcme(t, f)

	_, _, errUnknown := f.svc.Login(context.Background(), "ghost@acme.com", "pw123", domain.RoleAdmin)
	_, _, errWrong := f.svc.Login(context.Background(), "admin@acme.com", "bad", domain.RoleAdmin)

	if errUnknown != domain.ErrInvalidCredentials || errWrong != domain.ErrInvalidCredentials {
		t.Fatalf("expected identical ErrInvalidCredentials, got %v and %v", errUnknown, errWrong)
	}
	if f.limiter.failures["ghost@acme.com"] != 1 || f.limiter.failures["admin@acme.com"] != 1 {
		t.Errorf("expected both failures recorded, got %v", f.limiter.failures)
	}
}

func TestAuthService_Login_RoleMismatchIsGenericForbidden(t *testing.T) {
	f := newAuthFixture()
	registerAcme(t, f)

	_, _, err := f.svc.Login(context.Background(), "admin@acme.com", "pw123", domain.RoleEmployee)
	if err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if len(f.tokens.issued) != 1 { // only the registration token
		t.Errorf("no token must be issued on role mismatch")
	}
}

func TestAuthService_Login_Throttled(t *testing.T) {
	f := newAuthFixture()
	registerAcme(t, f)
	f.limiter.blocked = true

	_, _, err := f.svc.Login(context.Background(), "admin@acme.com", "pw123", domain.RoleAdmin)
	if !errors.Is(err, domain.ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}

func TestAuthService_Login_ThrottleErrorIsNonFatal(t *testing.T) {
	f := newAuthFixture()
	registerAcme(t, f)
	f.limiter.allowErr = errors.New("redis timeout")

	if _, _, err := f.svc.Login(context.Background(), "admin@acme.com", "pw123", domain.RoleAdmin); err != nil {
		t.Fatalf("expected login to proceed when throttle errors, got %v", err)
	}
}

func TestAuthService_Login_WithoutLimiter(t *testing.T) {
	users := newStubUserRepo()
	svc := NewAuthService(users, newStubOrgRepo(), &stubTokens{}, nil, discardLogger)

	if _, _, err := svc.Login(context.Background(), "ghost@acme.com", "pw", domain.RoleEmployee); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_EmptyFields(t *testing.T) {
	f := newAuthFixture()
	if _, _, err := f.svc.Login(context.Background(), "", "", domain.RoleAdmin); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_StoreFailure(t *testing.T) {
	f := newAuthFixture()
	f.users.findErr = errors.New("mongo down")

	_, _, err := f.svc.Login(context.Background(), "admin@acme.com", "pw123", domain.RoleAdmin)
	if err == nil || errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
}
