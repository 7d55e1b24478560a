package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/attendr/attendance-api/internal/core/domain"
	"github.com/attendr/attendance-api/internal/core/ports"
	"github.com/attendr/attendance-api/internal/pkg/metrics"
)

// LoginLimiter abstracts the failed-login throttle (Redis).
type LoginLimiter interface {
	Allow(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}

// AuthService implements organization registration and login.
type AuthService struct {
	users   ports.UserRepository
	orgs    ports.OrganizationRepository
	tokens  ports.TokenIssuer
	limiter LoginLimiter
	log     zerolog.Logger

	// dummyHash is compared against when the email is unknown so both
	// failure paths cost one bcrypt comparison.
	dummyHash []byte
}

// NewAuthService wires the auth use cases. limiter may be nil, in which case
// logins are never throttled.
func NewAuthService(
	users ports.UserRepository,
	orgs ports.OrganizationRepository,
	tokens ports.TokenIssuer,
	limiter LoginLimiter,
	log zerolog.Logger,
) *AuthService {
	dummy, _ := bcrypt.GenerateFromPassword([]byte("attendance-dummy-password"), bcrypt.DefaultCost)
	return &AuthService{
		users:     users,
		orgs:      orgs,
		tokens:    tokens,
		limiter:   limiter,
		log:       log,
		dummyHash: dummy,
	}
}

// RegisterOrganization creates an organization and its first admin. The two
// inserts are not atomic, so a failed admin insert deletes the organization
// again.
func (s *AuthService) RegisterOrganization(ctx context.Context, in ports.RegisterOrganizationInput) (*ports.RegistrationResult, error) {
	in.Email = domain.NormalizeEmail(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	in.OrganizationName = strings.TrimSpace(in.OrganizationName)
	if in.OrganizationName == "" {
		in.OrganizationName = in.Name
	}
	if err := validateAccountFields(in.Name, in.Email, in.Password); err != nil {
		return nil, err
	}

	if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("register organization: lookup email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("register organization: hash password: %w", err)
	}

	now := time.Now().UTC()
	org, err := s.orgs.Create(ctx, &domain.Organization{
		Name:      in.OrganizationName,
		Email:     in.Email,
		CreatedAt: now,
	})
	if err != nil {
		// Organization emails outlive their admin user, so this can fire with no matching user.
		if errors.Is(err, domain.ErrOrganizationExists) {
			return nil, err
		}
		return nil, fmt.Errorf("register organization: %w", err)
	}

	admin, err := s.users.Create(ctx, &domain.User{
		Name:           in.Name,
		Email:          in.Email,
		PasswordHash:   string(hash),
		Role:           domain.RoleAdmin,
		OrganizationID: org.ID,
		CreatedAt:      now,
	})
	if err != nil {
		s.compensateOrganization(ctx, org.ID, err)
		if errors.Is(err, domain.ErrUserExists) {
			return nil, err
		}
		return nil, fmt.Errorf("register organization: create admin: %w", err)
	}

	token, err := s.tokens.Issue(admin)
	if err != nil {
		return nil, fmt.Errorf("register organization: issue token: %w", err)
	}

	metrics.RegistrationsTotal.WithLabelValues("organization").Inc()
	s.log.Info().
		Str("organization_id", org.ID).
		Str("admin_id", admin.ID).
		Msg("organization registered")

	return &ports.RegistrationResult{Organization: org, Admin: admin, Token: token}, nil
}

func (s *AuthService) compensateOrganization(ctx context.Context, orgID string, cause error) {
	// The request context may already be cancelled; the rollback must still run.
	rollbackCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	if err := s.orgs.Delete(rollbackCtx, orgID); err != nil {
		s.log.Error().Err(err).AnErr("cause", cause).
			Str("organization_id", orgID).
			Msg("failed to roll back organization after admin insert failure")
		return
	}
	s.log.Warn().AnErr("cause", cause).
		Str("organization_id", orgID).
		Msg("organization rolled back after admin insert failure")
}

// Login authenticates by email, then checks the requested role. Unknown email
// and wrong password return the same error.
func (s *AuthService) Login(ctx context.Context, email, password, role string) (string, *domain.User, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	if s.limiter != nil {
		allowed, err := s.limiter.Allow(ctx, email)
		if err != nil {
			s.log.Warn().Err(err).Msg("login throttle check failed, continuing")
		} else if !allowed {
			metrics.LoginsTotal.WithLabelValues("throttled").Inc()
			return "", nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return "", nil, fmt.Errorf("login: %w", err)
	}

	if user == nil {
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		s.recordFailure(ctx, email)
		return "", nil, domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.recordFailure(ctx, email)
		return "", nil, domain.ErrInvalidCredentials
	}

	if user.Role != role {
		metrics.LoginsTotal.WithLabelValues("forbidden").Inc()
		return "", nil, domain.ErrForbidden
	}

	if s.limiter != nil {
		if err := s.limiter.Reset(ctx, email); err != nil {
			s.log.Warn().Err(err).Msg("failed to reset login throttle")
		}
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", nil, fmt.Errorf("login: issue token: %w", err)
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return token, user, nil
}

func (s *AuthService) recordFailure(ctx context.Context, email string) {
	metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
	if s.limiter == nil {
		return
	}
	if err := s.limiter.RecordFailure(ctx, email); err != nil {
		s.log.Warn().Err(err).Msg("failed to record login failure")
	}
}

// validateAccountFields is the service-level guard for callers that bypass
// the HTTP validator.
func validateAccountFields(name, email, password string) error {
	var details []string
	if name == "" {
		details = append(details, "name is required")
	}
	if email == "" {
		details = append(details, "email is required")
	} else if !strings.Contains(email, "@") {
		details = append(details, "email must be a valid email")
	}
	if password == "" {
		details = append(details, "password is required")
	}
	if len(details) > 0 {
		return domain.NewValidationError(details...)
	}
	return nil
}
