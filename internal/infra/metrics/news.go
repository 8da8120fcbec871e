package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func init() { register(newsFetchTotal, newsFetchLatencyMs) }

var (
	newsFetchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "news_fetch_total",
			Help: "Requests made to the news API, by source and result.",
		},
		[]string{"source", "result"}, // result: ok|error
	)

	newsFetchLatencyMs = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "news_fetch_latency_ms",
			Help:    "Latency of news API requests in milliseconds.",
			Buckets: []float64{25, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
		},
		[]string{"source"},
	)
)

func ObserveNewsFetch(source string, took time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	newsFetchTotal.WithLabelValues(norm(source), result).Inc()
	newsFetchLatencyMs.WithLabelValues(norm(source)).Observe(float64(took.Milliseconds()))
}
