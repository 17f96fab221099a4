package decrypt

import (
	"context"
	"time"
)

// Observation summarises a finished request for metrics and the audit trail.
// It never carries the password or document bytes.
type Observation struct {
	RequestID  string
	Kind       Kind
	Status     int
	InputBytes int
	Pages      int
	Duration   time.Duration
}

// Observer receives one Observation per request. Implementations must not
// block for long and must not fail the request.
type Observer interface {
	ObserveOutcome(ctx context.Context, o Observation)
}

// Observers fans an Observation out to each observer in order.
type Observers []Observer

func (list Observers) ObserveOutcome(ctx context.Context, o Observation) {
	for _, ob := range list {
		if ob != nil {
			ob.ObserveOutcome(ctx, o)
		}
	}
}
