// Package scene guards the action lifecycle of a Boundary.
//
// A Boundary processes one action at a time.
// A trigger that arrives while an earlier action is not yet Displayed is dropped with scenes.ErrBusy.
package scene

import (
	"context"
	"sync"

	uuid "github.com/satori/go.uuid"
	"go.llib.dev/frameless/pkg/contextkit"
	"go.llib.dev/frameless/pkg/logger"
	"go.llib.dev/frameless/pkg/logging"

	"scenes"
)

// Gate owns the Idle -> Requested -> Processing -> Responded -> Displayed state machine of one Boundary.
// The zero value is ready to use.
type Gate struct {
	// Name is used as the "scene" logging field.
	Name string

	mutex   sync.Mutex
	phase   scenes.Phase
	current *Action
	closed  bool
}

// Action is a single trigger that passed the Gate.
type Action struct {
	ID string

	origin  context.Context
	ctx     context.Context
	cancel  context.CancelFunc
	unwatch func() bool
	done    chan struct{}
	once    sync.Once
}

// Context is cancelled when the Action reached Displayed, was aborted, or the Gate got closed.
func (a *Action) Context() context.Context { return a.ctx }

// Done is closed when the Action is over for any reason.
func (a *Action) Done() <-chan struct{} { return a.done }

func (a *Action) finish() {
	a.once.Do(func() {
		if a.unwatch != nil {
			a.unwatch()
		}
		a.cancel()
		close(a.done)
	})
}

type ctxKeyAction struct{}

var actionContext contextkit.ValueHandler[ctxKeyAction, *Action]

// Begin admits a new action.
// When ctx is cancelled before the action is Displayed, the action is aborted and the Gate returns to Idle.
func (g *Gate) Begin(ctx context.Context) (*Action, error) {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	if g.closed {
		return nil, scenes.ErrClosed
	}
	if g.current != nil {
		logger.Debug(ctx, "scene action dropped",
			logging.Field("scene", g.Name),
			logging.Field("phase", g.phase.String()))
		return nil, scenes.ErrBusy
	}
	a := &Action{
		ID:     uuid.NewV4().String(),
		origin: ctx,
		done:   make(chan struct{}),
	}
	ctx = logging.ContextWith(ctx,
		logging.Field("scene", g.Name),
		logging.Field("action_id", a.ID))
	ctx = actionContext.ContextWith(ctx, a)
	a.ctx, a.cancel = context.WithCancel(ctx)
	a.unwatch = context.AfterFunc(a.ctx, func() { g.Abort(a.ctx) })
	g.current = a
	g.phase = scenes.Requested
	logger.Debug(a.ctx, "scene action requested")
	return a, nil
}

// Advance moves the action found in ctx to the given phase.
// Callbacks of a stale action, or transitions out of order, are ignored.
func (g *Gate) Advance(ctx context.Context, to scenes.Phase) bool {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	a, ok := actionContext.Lookup(ctx)
	if !ok || a != g.current {
		return false
	}
	next, ok := g.phase.Next()
	if !ok || next != to {
		logger.Warn(ctx, "scene phase transition ignored",
			logging.Field("from", g.phase.String()),
			logging.Field("to", to.String()))
		return false
	}
	g.phase = to
	logger.Debug(ctx, "scene action "+to.String())
	if to == scenes.Displayed {
		g.current = nil
		a.finish()
	}
	return true
}

// Abort ends the action found in ctx without displaying anything, and returns the Gate to Idle.
func (g *Gate) Abort(ctx context.Context) {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	a, ok := actionContext.Lookup(ctx)
	if !ok || a != g.current {
		return
	}
	logger.Debug(ctx, "scene action aborted", logging.Field("phase", g.phase.String()))
	g.current = nil
	g.phase = scenes.Idle
	a.finish()
}

// Phase is the current lifecycle state.
func (g *Gate) Phase() scenes.Phase {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	return g.phase
}

// Close tears the Gate down.
// The in-flight action is cancelled, and every later Begin fails with scenes.ErrClosed.
func (g *Gate) Close() {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	if g.closed {
		return
	}
	g.closed = true
	if g.current != nil {
		g.current.finish()
		g.current = nil
	}
	g.phase = scenes.Idle
}

// Closed reports whether Close was called.
func (g *Gate) Closed() bool {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	return g.closed
}

// Origin returns the context that was passed to Begin for the action found in ctx.
// It carries neither the action nor its logging fields.
// Without an action, ctx itself is returned.
func Origin(ctx context.Context) context.Context {
	a, ok := actionContext.Lookup(ctx)
	if !ok {
		return ctx
	}
	return a.origin
}

// ActionID returns the id of the action that ctx belongs to.
func ActionID(ctx context.Context) (string, bool) {
	a, ok := actionContext.Lookup(ctx)
	if !ok {
		return "", false
	}
	return a.ID, true
}
