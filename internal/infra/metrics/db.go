package metrics

import "github.com/prometheus/client_golang/prometheus"

var storeConns = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "preference_store_connections",
		Help: "Connections held by the preference store, by driver and state.",
	},
	[]string{"driver", "state"}, // state: idle, in_use, total
)

func init() { register(storeConns) }

// SetStoreConns publishes one pool snapshot; total is idle plus in use.
func SetStoreConns(driver string, idle, inUse int) {
	storeConns.WithLabelValues(driver, "idle").Set(float64(idle))
	storeConns.WithLabelValues(driver, "in_use").Set(float64(inUse))
	storeConns.WithLabelValues(driver, "total").Set(float64(idle + inUse))
}
