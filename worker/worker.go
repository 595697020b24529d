package worker

import (
	"context"
	"errors"
	"time"

	"github.com/fox-one/pkg/logger"
)

// ErrNoWork returned by a tick with nothing to do, the worker backs off
var ErrNoWork = errors.New("EOF")

// Worker long running job
type Worker interface {
	Run(ctx context.Context) error
}

// TickWorker calls a tick function until the context is done. Delay is the
// pause after a successful tick and ErrDelay the pause after a failed one.
type TickWorker struct {
	Delay    time.Duration
	ErrDelay time.Duration
}

// StartTick run onTick repeatedly, returns when ctx is done
func (w *TickWorker) StartTick(ctx context.Context, onTick func(ctx context.Context) error) error {
	delay, errDelay := w.Delay, w.ErrDelay
	if delay <= 0 {
		delay = 100 * time.Millisecond
	}

	if errDelay <= 0 {
		errDelay = time.Second
	}

	dur := time.Millisecond
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(dur):
			if err := onTick(ctx); err != nil {
				if !errors.Is(err, ErrNoWork) {
					logger.FromContext(ctx).WithError(err).Debugln("tick")
				}

				dur = errDelay
			} else {
				dur = delay
			}
		}
	}
}
