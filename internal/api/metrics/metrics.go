// Package metrics defines and registers all custom Prometheus metrics for
// the travel request API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default registry via promauto at package
// load; the /metrics route exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "travel_requests"

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts new identities by provisioning path.
// Label:
//   - method: "local" (email/password) or "github" (OAuth)
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of user registrations, by method.",
	},
	[]string{"method"},
)

// TokenVerificationsTotal counts bearer-token checks in the auth middleware.
// Label:
//   - result: "success" or "failure"
var TokenVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_verifications_total",
		Help:      "Total number of bearer token verifications, by result.",
	},
	[]string{"result"},
)

// RequestOperationsTotal counts successful trip-request mutations.
// Label:
//   - operation: "create", "update" or "delete"
var RequestOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "request_operations_total",
		Help:      "Total number of successful trip request operations.",
	},
	[]string{"operation"},
)

// OAuthExchangesTotal counts GitHub code exchanges by outcome.
// Label:
//   - result: "success" or "failure"
var OAuthExchangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "oauth_exchanges_total",
		Help:      "Total number of GitHub OAuth code exchanges, by result.",
	},
	[]string{"result"},
)
