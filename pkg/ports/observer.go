package ports

import "time"

// Outcome labels for observed requests.
const (
	OutcomeOK        = "ok"
	OutcomeDetail    = "detail"
	OutcomeTransport = "transport_error"
	OutcomeMalformed = "malformed"
)

// Observer receives client-side events for monitoring.
type Observer interface {
	ObserveRequest(route, outcome string, elapsed time.Duration)
	ObserveDiscard(operation string)
}

// NopObserver ignores everything.
type NopObserver struct{}

func (NopObserver) ObserveRequest(string, string, time.Duration) {}
func (NopObserver) ObserveDiscard(string)                        {}
