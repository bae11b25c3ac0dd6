// Package metrics defines the custom Prometheus metrics of the blog API.
// HTTP request metrics come from echoprometheus; everything here counts
// domain outcomes.
//
// All metrics register with the default registry on package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "blog"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// SignupsTotal counts signup attempts.
// Label:
//   - result: "created", "conflict" or "invalid"
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of signup attempts, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "unknown_user", "bad_password" or "invalid"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ThrottledRequestsTotal counts requests rejected by a throttle.
// Label:
//   - scope: the throttled endpoint group (e.g. "login")
var ThrottledRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "throttled_requests_total",
		Help:      "Total number of requests rejected for exceeding an attempt budget.",
	},
	[]string{"scope"},
)

// ── Authorization metrics ─────────────────────────────────────────────────────

// RequestFailuresTotal counts requests that ended in a domain error.
// Label:
//   - kind: "conflict", "not_found", "invalid_credential", "unauthenticated",
//     "permission_denied", "invalid_token", "invalid_input", "too_many_attempts"
//     or "internal"
var RequestFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "request_failures_total",
		Help:      "Total number of requests that failed, by error kind.",
	},
	[]string{"kind"},
)

// ── Post metrics ──────────────────────────────────────────────────────────────

// DraftsCreatedTotal counts newly created drafts.
var DraftsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "drafts_created_total",
		Help:      "Total number of drafts created.",
	},
)

// PostViewsTotal counts recorded post views.
var PostViewsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "post_views_total",
		Help:      "Total number of post views recorded.",
	},
)
