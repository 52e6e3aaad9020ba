package metrics

import "github.com/prometheus/client_golang/prometheus"

// LeadMetrics exposes counters/histograms for the submission pipeline.
type LeadMetrics struct {
	submissionsTotal  *prometheus.CounterVec
	submissionSeconds *prometheus.HistogramVec
	notifyFailures    *prometheus.CounterVec
}

func NewLeadMetrics(reg prometheus.Registerer) *LeadMetrics {
	m := &LeadMetrics{
		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "eventdesk",
			Subsystem: "leads",
			Name:      "submissions_total",
			Help:      "Total lead submissions by form and outcome",
		}, []string{"form", "outcome"}),
		submissionSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "eventdesk",
			Subsystem: "leads",
			Name:      "submission_seconds",
			Help:      "Latency of lead submission processing",
			Buckets:   prometheus.DefBuckets,
		}, []string{"form"}),
		notifyFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "eventdesk",
			Subsystem: "leads",
			Name:      "notify_failures_total",
			Help:      "Total notification sends that failed (best-effort, never fatal)",
		}, []string{"form"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.submissionsTotal, m.submissionSeconds, m.notifyFailures)
	return m
}

func (m *LeadMetrics) ObserveSubmission(form, outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.submissionsTotal.WithLabelValues(form, outcome).Inc()
	m.submissionSeconds.WithLabelValues(form).Observe(seconds)
}

func (m *LeadMetrics) ObserveNotifyFailure(form string) {
	if m == nil {
		return
	}
	m.notifyFailures.WithLabelValues(form).Inc()
}
