package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/attendr/attendance-api/docs"
	"github.com/attendr/attendance-api/internal/api/handler"
	"github.com/attendr/attendance-api/internal/api/middleware"
	"github.com/attendr/attendance-api/internal/core/domain"
	"github.com/attendr/attendance-api/internal/core/ports"
	"github.com/attendr/attendance-api/internal/core/service"
)

// TokenService both issues and verifies bearer tokens.
type TokenService interface {
	ports.TokenIssuer
	ports.TokenVerifier
}

// Dependencies are the collaborators the router wires into services and
// handlers.
type Dependencies struct {
	Logger         zerolog.Logger
	AllowedOrigins []string

	Tokens     TokenService
	Users      ports.UserRepository
	Orgs       ports.OrganizationRepository
	Attendance ports.AttendanceRepository
	// Limiter is optional; nil disables login throttling.
	Limiter service.LoginLimiter

	// HealthChecks are run by /health/ready, keyed by dependency name.
	HealthChecks map[string]handler.Check
	// Registry receives the HTTP metrics. Nil means the default registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	var registerer prometheus.Registerer = prometheus.DefaultRegisterer
	var gatherer prometheus.Gatherer = prometheus.DefaultGatherer
	if deps.Registry != nil {
		registerer, gatherer = deps.Registry, deps.Registry
	}

	origins := deps.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.RequestLogger(deps.Logger))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: origins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "attendance",
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Dependencies ---
	authService := service.NewAuthService(deps.Users, deps.Orgs, deps.Tokens, deps.Limiter, deps.Logger)
	adminService := service.NewAdminService(deps.Users, deps.Attendance, deps.Logger)
	attendanceService := service.NewAttendanceService(deps.Attendance, deps.Logger)
	profileService := service.NewProfileService(deps.Users, deps.Orgs)

	authHandler := handler.NewAuthHandler(authService)
	adminHandler := handler.NewAdminHandler(adminService)
	attendanceHandler := handler.NewAttendanceHandler(attendanceService)
	profileHandler := handler.NewProfileHandler(profileService)
	healthHandler := handler.NewHealthHandler(deps.HealthChecks)

	requireAuth := middleware.Auth(deps.Tokens, deps.Users, deps.Logger)

	// --- Operational routes ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")
	api.GET("/test", healthHandler.Ping)

	// --- Auth routes ---
	auth := api.Group("/auth")
	auth.POST("/register-organization", authHandler.RegisterOrganization)
	auth.POST("/login", authHandler.Login)

	// --- Admin routes ---
	admin := api.Group("/admin", requireAuth, middleware.RequireRole(domain.RoleAdmin))
	admin.POST("/register-employee", adminHandler.RegisterEmployee)
	admin.GET("/employees", adminHandler.ListEmployees)
	admin.GET("/employee-attendance/:employeeId", adminHandler.EmployeeAttendance)

	// --- Any authenticated user ---
	attendance := api.Group("/attendance", requireAuth)
	attendance.POST("/mark-attendance", attendanceHandler.Mark)
	attendance.GET("/attendance-history", attendanceHandler.History)

	api.GET("/user/details", profileHandler.UserDetails, requireAuth)
	api.GET("/organization/:id", profileHandler.Organization, requireAuth)

	return e
}
