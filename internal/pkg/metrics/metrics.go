// Package metrics defines and registers the custom Prometheus metrics of the
// attendance API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry at package
// init through promauto; the /metrics route exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "attendance"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "invalid_credentials", "forbidden" or "throttled"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts created accounts.
// Label:
//   - kind: "organization" (org + admin) or "employee"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of successful registrations, by kind.",
	},
	[]string{"kind"},
)

// ── Attendance metrics ────────────────────────────────────────────────────────

// AttendanceMarkedTotal counts persisted attendance records.
// Label:
//   - role: role of the caller who marked attendance
var AttendanceMarkedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "attendance_marked_total",
		Help:      "Total number of attendance records created.",
	},
	[]string{"role"},
)

// AttendanceRejectedTotal counts mark-attendance calls rejected by validation.
// Label:
//   - reason: "location_required" or "invalid_coordinates"
var AttendanceRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "attendance_rejected_total",
		Help:      "Total number of attendance marks rejected before persistence.",
	},
	[]string{"reason"},
)

// ── Tenant isolation ──────────────────────────────────────────────────────────

// CrossTenantLookupsTotal counts admin lookups that targeted a user outside
// the admin's organization and were answered with not-found.
var CrossTenantLookupsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cross_tenant_lookups_total",
		Help:      "Total number of admin lookups denied because the target belongs to another organization.",
	},
)
