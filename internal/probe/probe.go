package probe

import (
	"context"
	"fmt"
)

const (
	// StatusAlive indicates the bot replied to the probe.
	StatusAlive = "alive"
	// StatusDead indicates the bot accepted the probe but never replied.
	StatusDead = "dead"
	// StatusError indicates the probe could not be delivered.
	StatusError = "error"
)

// Outcome is the result of one liveness probe. Protocol-level errors are
// folded into Status/Detail here so callers never handle transport error
// types directly.
type Outcome struct {
	Status string
	Detail string
}

// Alive reports whether the probed bot responded.
func (o Outcome) Alive() bool {
	return o.Status == StatusAlive
}

// Errorf builds an error outcome with a formatted detail.
func Errorf(format string, args ...any) Outcome {
	return Outcome{Status: StatusError, Detail: fmt.Sprintf(format, args...)}
}

// Prober sends one liveness probe to a bot handle and reports the outcome.
type Prober interface {
	Probe(ctx context.Context, handle string) Outcome
}
