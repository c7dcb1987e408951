// Package scenes holds the role contracts of a scene.
//
// A scene is one screen worth of use cases, split into four roles:
//
//	Boundary   receives a trigger, builds a Request, renders whichever ViewModel comes back
//	Interactor owns the business rules, consults the Service, produces exactly one Response
//	Presenter  maps a Response into a ViewModel, formatting only
//	Router     navigates after an action, called by the Boundary only
//
// Data flows one way per action:
//
//	Boundary -> Interactor -> (Service) -> Interactor -> Presenter -> Boundary
//
// No role calls back two hops upstream.
// The Presenter reaches the Boundary only through a non-owning back-link,
// so a Boundary that has been torn down simply stops receiving callbacks.
package scenes

import (
	"context"

	"go.llib.dev/frameless/pkg/errorkit"
)

// Display is the render surface of a Boundary.
// Exactly one of its methods is called per action.
//
// The ViewModel is display-ready data produced by a Presenter.
// A Display must not interpret it beyond rendering.
type Display[VM any] interface {
	DisplaySuccess(ctx context.Context, vm VM)
	DisplayFailure(ctx context.Context, vm VM)
}

// DisplayFuncs helps convert plain functions into a valid Display.
// A nil function is a no-op.
type DisplayFuncs[VM any] struct {
	Success func(ctx context.Context, vm VM)
	Failure func(ctx context.Context, vm VM)
}

func (fns DisplayFuncs[VM]) DisplaySuccess(ctx context.Context, vm VM) {
	if fns.Success != nil {
		fns.Success(ctx, vm)
	}
}

func (fns DisplayFuncs[VM]) DisplayFailure(ctx context.Context, vm VM) {
	if fns.Failure != nil {
		fns.Failure(ctx, vm)
	}
}

// Presenter maps a Response into a ViewModel and hands it to a Display.
//
// Scope:
//
//	formatting only, no business rules, no navigation, no external calls
//
// Given the same Response, a Presenter always produces the same ViewModel.
type Presenter[Response any] interface {
	Present(ctx context.Context, resp Response)
}

// PresenterFunc is a wrapper to convert standalone functions into a Presenter.
type PresenterFunc[Response any] func(ctx context.Context, resp Response)

// Present implements the Presenter interface.
func (fn PresenterFunc[Response]) Present(ctx context.Context, resp Response) {
	fn(ctx, resp)
}

// Outcome is implemented by Responses that carry a business level success flag.
// The Presenter uses it to pick the Display callback.
type Outcome interface {
	Succeeded() bool
}

// Render picks the Display callback based on the outcome of the Response.
func Render[VM any](ctx context.Context, d Display[VM], o Outcome, vm VM) {
	if o.Succeeded() {
		d.DisplaySuccess(ctx, vm)
		return
	}
	d.DisplayFailure(ctx, vm)
}

// Phase is the lifecycle state of a single Boundary action.
//
//	Idle -> Requested -> Processing -> Responded -> Displayed
//
// Displayed is terminal; the next action starts again from Idle.
type Phase int

const (
	Idle Phase = iota
	Requested
	Processing
	Responded
	Displayed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Requested:
		return "requested"
	case Processing:
		return "processing"
	case Responded:
		return "responded"
	case Displayed:
		return "displayed"
	default:
		return "unknown"
	}
}

// Next reports the phase that legally follows p.
func (p Phase) Next() (Phase, bool) {
	switch p {
	case Idle, Displayed:
		return Requested, true
	case Requested:
		return Processing, true
	case Processing:
		return Responded, true
	case Responded:
		return Displayed, true
	default:
		return p, false
	}
}

const (
	// ErrBusy is returned when a trigger arrives while an earlier action of the same Boundary is still in flight.
	// The new trigger is dropped.
	ErrBusy errorkit.Error = "scenes: an action is already in progress"
	// ErrClosed is returned when a trigger arrives after the Boundary has been torn down.
	ErrClosed errorkit.Error = "scenes: boundary is closed"
)
