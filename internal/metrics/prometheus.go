package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Consultation metrics
	ConsultationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "themis_consultations_total",
			Help: "Total number of multi-agent consultations",
		},
		[]string{"status"}, // status: success|error
	)

	ConsultationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "themis_consultation_duration_seconds",
			Help:    "End-to-end consultation duration in seconds",
			Buckets: []float64{1, 2, 5, 10, 20, 30, 60, 120},
		},
	)

	// Role invocation metrics
	RoleInvocations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "themis_role_invocations_total",
			Help: "Total number of role invocations against the completion service",
		},
		[]string{"role", "status"},
	)

	RoleLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "themis_role_latency_seconds",
			Help:    "Single role invocation latency in seconds",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60},
		},
		[]string{"role"},
	)

	RoleTokens = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "themis_role_tokens_total",
			Help: "Total tokens consumed per role",
		},
		[]string{"role"},
	)

	// Document pipeline metrics
	DocumentsProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "themis_documents_processed_total",
			Help: "Total documents classified or summarized",
		},
		[]string{"operation", "status"}, // operation: classify|summarize
	)

	DraftsGenerated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "themis_drafts_generated_total",
			Help: "Total draft documents generated",
		},
		[]string{"template", "status"},
	)

	// HTTP metrics
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "themis_http_requests_total",
			Help: "Total HTTP requests by endpoint",
		},
		[]string{"endpoint", "status"},
	)

	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "themis_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
		},
		[]string{"endpoint"},
	)
)

func init() {
	prometheus.MustRegister(
		ConsultationsTotal,
		ConsultationDuration,
		RoleInvocations,
		RoleLatency,
		RoleTokens,
		DocumentsProcessed,
		DraftsGenerated,
		HTTPRequests,
		HTTPDuration,
	)
}

// Handler returns Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordConsultation records one consultation outcome
func RecordConsultation(duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	ConsultationsTotal.WithLabelValues(status).Inc()
	ConsultationDuration.Observe(duration.Seconds())
}

// RecordRoleInvocation records a single role invocation
func RecordRoleInvocation(role string, latency time.Duration, tokens int, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	RoleInvocations.WithLabelValues(role, status).Inc()
	RoleLatency.WithLabelValues(role).Observe(latency.Seconds())

	if tokens > 0 {
		RoleTokens.WithLabelValues(role).Add(float64(tokens))
	}
}

// RecordDocumentOperation records a classify/summarize outcome
func RecordDocumentOperation(operation string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	DocumentsProcessed.WithLabelValues(operation, status).Inc()
}

// RecordDraft records a draft generation outcome
func RecordDraft(template string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	DraftsGenerated.WithLabelValues(template, status).Inc()
}

// RecordHTTPRequest records an HTTP request outcome
func RecordHTTPRequest(endpoint string, status string, duration time.Duration) {
	HTTPRequests.WithLabelValues(endpoint, status).Inc()
	HTTPDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}
