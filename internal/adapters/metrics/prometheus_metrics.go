// Package metrics provides Prometheus instrumentation for the daemon.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	untrustedAddresses = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "muppet_untrusted_addresses",
		Help: "Number of inventory addresses classified as untrusted at startup",
	})

	inventorySkipsCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "muppet_inventory_entries_skipped_total",
		Help: "Total NIC inventory entries skipped during parsing",
	}, []string{"reason"}) // reason: bad_address, no_addresses

	membershipEventsCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: "muppet_membership_events_total",
		Help: "Total service-membership snapshots received from the registrar watch",
	})

	reloadsCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "muppet_lb_reloads_total",
		Help: "Total load balancer reloads triggered by membership changes",
	}, []string{"result"}) // result: success, failure
)

// SetUntrustedAddresses records the size of the classified untrusted set.
func SetUntrustedAddresses(n int) {
	untrustedAddresses.Set(float64(n))
}

// RecordInventorySkip records a skipped NIC inventory entry.
func RecordInventorySkip(reason string) {
	inventorySkipsCounter.WithLabelValues(reason).Inc()
}

// RecordMembershipEvent records one membership snapshot from the watch.
func RecordMembershipEvent() {
	membershipEventsCounter.Inc()
}

// RecordReload records a reload attempt and its outcome.
func RecordReload(err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	reloadsCounter.WithLabelValues(result).Inc()
}
