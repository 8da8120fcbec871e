package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		preferenceUpdatesTotal,
		telegramCommandsReceivedTotal,
		telegramCallbacksTotal,
		telegramRateLimitTriggeredTotal,
	)
}

var (
	preferenceUpdatesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "preference_updates_total",
			Help: "Pagination preference writes, by stored status.",
		},
		[]string{"status"},
	)

	telegramCommandsReceivedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "telegram_commands_received_total",
			Help: "Counts incoming messages and commands from users.",
		},
		[]string{"command"},
	)

	telegramCallbacksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "telegram_callbacks_total",
			Help: "Counts inline button presses, by route kind.",
		},
		[]string{"kind"},
	)

	telegramRateLimitTriggeredTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "telegram_rate_limit_triggered_total",
			Help: "Total number of times users have been rate-limited.",
		},
	)
)

func IncPreferenceUpdate(status string) {
	preferenceUpdatesTotal.WithLabelValues(norm(status)).Inc()
}

func IncTelegramCommand(command string) {
	telegramCommandsReceivedTotal.WithLabelValues(norm(command)).Inc()
}

func IncTelegramCallback(kind string) {
	telegramCallbacksTotal.WithLabelValues(norm(kind)).Inc()
}

func IncRateLimitTriggered() {
	telegramRateLimitTriggeredTotal.Inc()
}
