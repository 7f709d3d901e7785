package dispatch

import (
	"context"
	"time"

	"go.uber.org/zap"
	"maxim-atlas/backend/internal/constants"
)

// Emit delivers an update to the client. A returned error stops the loop.
type Emit func(Update) error

// Loop feeds events to a Handler one at a time. Search input is debounced:
// a newer value replaces the pending one and Escape drops it.
type Loop struct {
	handler  Handler
	debounce time.Duration
	logger   *zap.Logger
}

// NewLoop creates a loop. A zero debounce dispatches search input immediately.
func NewLoop(handler Handler, debounce time.Duration, logger *zap.Logger) *Loop {
	if debounce < 0 {
		debounce = constants.DefaultSearchDebounce
	}
	return &Loop{handler: handler, debounce: debounce, logger: logger}
}

// Run processes events until ctx is done or events is closed. A search still
// pending when events closes is dispatched before returning.
func (l *Loop) Run(ctx context.Context, events <-chan Event, emit Emit) error {
	var (
		timer   *time.Timer
		fire    <-chan time.Time
		pending Event
	)
	cancelPending := func() {
		if timer != nil {
			timer.Stop()
		}
		timer, fire = nil, nil
	}
	defer cancelPending()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-fire:
			timer, fire = nil, nil
			if err := l.handle(pending, emit); err != nil {
				return err
			}

		case ev, ok := <-events:
			if !ok {
				if fire != nil {
					cancelPending()
					return l.handle(pending, emit)
				}
				return nil
			}

			switch {
			case ev.Type == EventSearchInput && l.debounce > 0:
				cancelPending()
				pending = ev
				timer = time.NewTimer(l.debounce)
				fire = timer.C
				continue
			case ev.Type == EventKeyDown && ev.Key == constants.EscapeKey:
				cancelPending()
			}

			if err := l.handle(ev, emit); err != nil {
				return err
			}
		}
	}
}

func (l *Loop) handle(ev Event, emit Emit) error {
	update, err := l.handler.Dispatch(ev)
	if err != nil {
		l.logger.Debug("Event rejected",
			zap.String("type", string(ev.Type)),
			zap.Error(err),
		)
		return emit(ErrorUpdate(err))
	}
	return emit(update)
}
