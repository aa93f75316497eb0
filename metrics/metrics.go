package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registration outcomes
const (
	OutcomeSuccess   = "success"
	OutcomeDuplicate = "duplicate"
	OutcomeInvalid   = "invalid"
	OutcomeError     = "error"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	Registrations     *prometheus.CounterVec
	CampaignsCreated  prometheus.Counter
	Approvals         prometheus.Counter
	NotificationLinks prometheus.Counter
	LoginAttempts     *prometheus.CounterVec
	RequestDuration   *prometheus.HistogramVec
}

// New creates the metrics and registers them with reg
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Registrations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "campaign_registrations_total",
			Help: "Registration attempts by outcome",
		}, []string{"outcome"}),
		CampaignsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "campaigns_created_total",
			Help: "Total number of campaigns created",
		}),
		Approvals: factory.NewCounter(prometheus.CounterOpts{
			Name: "participant_approvals_total",
			Help: "Total number of approve requests that succeeded",
		}),
		NotificationLinks: factory.NewCounter(prometheus.CounterOpts{
			Name: "notification_links_generated_total",
			Help: "Total number of WhatsApp links generated",
		}),
		LoginAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "admin_login_attempts_total",
			Help: "Admin login attempts by result",
		}, []string{"result"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by route and status",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

func (m *Metrics) ObserveRegistration(outcome string) {
	m.Registrations.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveLogin(ok bool) {
	result := "failure"
	if ok {
		result = "success"
	}
	m.LoginAttempts.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	m.RequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}
