package pipeline

import (
	"context"
	"errors"
)

// ErrConfiguration is the only error class allowed to stop the engine
// from being constructed. Every per-call failure is absorbed into the
// empty result instead.
var ErrConfiguration = errors.New("engine configuration error")

// absorbedStage classifies an absorbed per-call error by the pipeline
// stage name used in logs and counters.
func absorbedStage(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return "timeout"
	default:
		return "transport"
	}
}
