package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OTPIssued = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "trackjob",
		Name:      "otp_issued_total",
		Help:      "One-time codes issued, by purpose.",
	}, []string{"purpose"})

	OTPValidations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "trackjob",
		Name:      "otp_validations_total",
		Help:      "One-time code validation attempts, by result.",
	}, []string{"result"})

	EmailDispatchFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "trackjob",
		Name:      "email_dispatch_failures_total",
		Help:      "Emails the configured sender failed to deliver.",
	})

	SubscriptionPurchases = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "trackjob",
		Name:      "subscription_purchases_total",
		Help:      "Subscription purchases, by outcome.",
	}, []string{"outcome"})

	RateLimited = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "trackjob",
		Name:      "rate_limited_requests_total",
		Help:      "Requests refused by a per-IP limiter, by limiter name.",
	}, []string{"limiter"})
)
