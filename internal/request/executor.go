package request

import (
	"context"
	"log/slog"

	"github.com/lazymystic/instafake-go/internal/api"
	"github.com/lazymystic/instafake-go/internal/models"
	"github.com/lazymystic/instafake-go/internal/notify"
)

// Operation is one remote call wrapped by the executor.
type Operation func(ctx context.Context) (*models.Envelope, error)

// Executor runs remote calls with the uniform contract every screen relies
// on: the loading flag is set before the call and cleared afterwards no
// matter what, and a failure surfaces exactly one error notification and a
// nil result. Success emits nothing; callers own their success messages.
type Executor struct {
	notifier notify.Notifier
	inflight *Keys
	log      *slog.Logger
}

func NewExecutor(notifier notify.Notifier, log *slog.Logger) *Executor {
	return &Executor{
		notifier: notifier,
		inflight: NewKeys(),
		log:      log,
	}
}

// Do runs fn, toggling setLoading around it. setLoading may be nil.
func (e *Executor) Do(ctx context.Context, setLoading func(bool), fn Operation) *models.Envelope {
	if setLoading != nil {
		setLoading(true)
		defer setLoading(false)
	}

	envelope, err := fn(ctx)
	if err != nil {
		e.log.Debug("request error", "error", err)
		e.notifier.Error(api.UserMessage(err))
		return nil
	}
	return envelope
}

// DoGuarded is Do behind an in-flight key: while the key is held the call is
// a no-op returning nil, and the key is released whatever the outcome.
func (e *Executor) DoGuarded(ctx context.Context, key ActionKey, setLoading func(bool), fn Operation) *models.Envelope {
	if !e.inflight.TryAcquire(key) {
		return nil
	}
	defer e.inflight.Release(key)

	return e.Do(ctx, setLoading, fn)
}

// InFlight reports whether the key is currently held.
func (e *Executor) InFlight(key ActionKey) bool {
	return e.inflight.Held(key)
}
