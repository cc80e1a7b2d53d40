// Package metrics defines the Prometheus counters of the registration bot.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "regbot"

// Callback outcomes.
const (
	OutcomeDone              = "done"
	OutcomeIgnored           = "ignored"
	OutcomeDenied            = "denied"
	OutcomeAlreadyRegistered = "already_registered"
	OutcomeRegistered        = "registered"
)

// Metrics groups the bot counters. A nil *Metrics records nothing.
type Metrics struct {
	Events        *prometheus.CounterVec
	Callbacks     *prometheus.CounterVec
	GroupBindings prometheus.Counter
	Invitations   prometheus.Counter
	DMReady       prometheus.Counter
}

// New creates the counters and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Events: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "Inbound chat events by kind.",
		}, []string{"kind"}),
		Callbacks: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "callbacks_total",
			Help:      "Button presses by outcome.",
		}, []string{"outcome"}),
		GroupBindings: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "group_bindings_total",
			Help:      "Group bindings created by this process.",
		}),
		Invitations: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invitations_total",
			Help:      "Welcome messages with a registration button sent.",
		}),
		DMReady: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dm_ready_total",
			Help:      "Private chat /start commands recorded.",
		}),
	}
}

func (m *Metrics) Event(kind string) {
	if m == nil {
		return
	}
	m.Events.WithLabelValues(kind).Inc()
}

func (m *Metrics) Callback(outcome string) {
	if m == nil {
		return
	}
	m.Callbacks.WithLabelValues(outcome).Inc()
}

func (m *Metrics) GroupBound() {
	if m == nil {
		return
	}
	m.GroupBindings.Inc()
}

func (m *Metrics) InvitationSent() {
	if m == nil {
		return
	}
	m.Invitations.Inc()
}

func (m *Metrics) DMEnabled() {
	if m == nil {
		return
	}
	m.DMReady.Inc()
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
