package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	sellerApplications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seller_applications_total",
			Help: "Seller applications by outcome (accepted, already_pending, too_soon, invalid)",
		},
		[]string{"outcome"},
	)

	sellerDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seller_decisions_total",
			Help: "Admin decisions on seller applications",
		},
		[]string{"decision"},
	)

	eventSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "event_submissions_total",
			Help: "Event submissions by outcome (accepted, not_seller, invalid)",
		},
		[]string{"outcome"},
	)

	submissionDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "submission_decisions_total",
			Help: "Admin decisions on event submissions",
		},
		[]string{"decision"},
	)

	eventsPublished = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "events_published_total",
			Help: "Events materialized from approved submissions",
		},
	)
)

func TrackSellerApplication(outcome string) {
	sellerApplications.WithLabelValues(outcome).Inc()
}

func TrackSellerDecision(decision string) {
	sellerDecisions.WithLabelValues(decision).Inc()
}

func TrackEventSubmission(outcome string) {
	eventSubmissions.WithLabelValues(outcome).Inc()
}

func TrackSubmissionDecision(decision string) {
	submissionDecisions.WithLabelValues(decision).Inc()
}

func TrackEventPublished() {
	eventsPublished.Inc()
}
