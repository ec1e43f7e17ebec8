package utils

import (
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"inventara/logging"
	"inventara/metrics"
)

// NewBreaker membuat circuit breaker untuk panggilan HTTP keluar (push webhook,
// status ping). Terbuka setelah 5 kegagalan beruntun, dicoba lagi setelah 1 menit.
func NewBreaker(name string) *gobreaker.CircuitBreaker[struct{}] {
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	return gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker berubah state")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(float64(to))
		},
	})
}
