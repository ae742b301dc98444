// Package metrics exposes the portal's Prometheus counters.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Logins counts portal login attempts by kind (staff/student) and
	// outcome (success/captcha/not_found).
	Logins = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_logins_total",
		Help: "Mock portal login attempts.",
	}, []string{"kind", "outcome"})

	// AuthCalls counts calls to the external auth provider by operation and
	// outcome.
	AuthCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_auth_provider_calls_total",
		Help: "External authentication provider calls.",
	}, []string{"op", "outcome"})

	// Saves counts record save commits by outcome.
	Saves = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_record_saves_total",
		Help: "Student record save attempts.",
	}, []string{"outcome"})

	// MirrorMessages counts docstore mirror messages by stage
	// (published/consumed/failed).
	MirrorMessages = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_mirror_messages_total",
		Help: "Record mirror pipeline messages.",
	}, []string{"stage"})
)
