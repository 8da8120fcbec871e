package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() { register(warmJobsProcessedTotal) }

var warmJobsProcessedTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "news_warm_jobs_processed_total",
		Help: "Total number of cache warm-up jobs processed, labeled by status.",
	},
	[]string{"status"}, // 'completed', 'failed'
)

func IncWarmJob(status string) {
	warmJobsProcessedTotal.WithLabelValues(norm(status)).Inc()
}
