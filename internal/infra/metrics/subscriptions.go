package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	register(
		subscriptionsStartedTotal,
		subscriptionChecksTotal,
	)
}

var (
	subscriptionsStartedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "subscriptions_started_total",
			Help: "Total number of subscribe calls that replaced or created a window.",
		},
	)

	subscriptionChecksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "subscription_checks_total",
			Help: "Activity checks by result (true/false).",
		},
		[]string{"active"},
	)
)

func IncSubscriptionStarted() {
	subscriptionsStartedTotal.Inc()
}

func IncSubscriptionCheck(active bool) {
	subscriptionChecksTotal.WithLabelValues(strconv.FormatBool(active)).Inc()
}
