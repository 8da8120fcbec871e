package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() { register(pagesRenderedTotal, fullListsRenderedTotal) }

var (
	pagesRenderedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pagination_pages_rendered_total",
			Help: "Paginated news pages rendered, by source.",
		},
		[]string{"source"},
	)

	fullListsRenderedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pagination_full_lists_rendered_total",
			Help: "Unpaginated category listings rendered, by source.",
		},
		[]string{"source"},
	)
)

func IncPageRendered(source string) {
	pagesRenderedTotal.WithLabelValues(norm(source)).Inc()
}

func IncFullListRendered(source string) {
	fullListsRenderedTotal.WithLabelValues(norm(source)).Inc()
}
