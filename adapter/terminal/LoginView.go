package terminal

import (
	"context"

	"go.llib.dev/frameless/pkg/contextkit"
	"go.llib.dev/frameless/pkg/logger"
	"go.llib.dev/frameless/pkg/logging"

	"scenes"
	"scenes/pkg/backref"
	"scenes/pkg/mainloop"
	"scenes/pkg/scene"
	"scenes/usecase/login"
)

// LoginView is the login Boundary.
type LoginView struct {
	Screen     *Screen
	Executor   mainloop.Executor
	Interactor login.BusinessLogic
	Router     login.RoutingLogic

	gate    scene.Gate
	display *backref.Ref[scenes.Display[login.ViewModel]]
}

var _ scenes.Display[login.ViewModel] = (*LoginView)(nil)

// Login triggers a login action.
// The returned Action is done once the outcome was rendered.
func (v *LoginView) Login(ctx context.Context, email, password string) (*scene.Action, error) {
	req := login.Request{Email: email, Password: password}
	return trigger(ctx, &v.gate, v.Executor, func(ctx context.Context) {
		v.Interactor.Login(ctx, req)
	})
}

func (v *LoginView) DisplaySuccess(ctx context.Context, vm login.ViewModel) {
	if !v.gate.Advance(ctx, scenes.Responded) {
		return
	}
	v.Screen.Success(ctx, vm.Message)
	if v.Router != nil {
		// the navigation outlives this action and is not part of it
		v.Router.NavigateToHome(contextkit.Detach(scene.Origin(ctx)))
	}
	v.gate.Advance(ctx, scenes.Displayed)
}

func (v *LoginView) DisplayFailure(ctx context.Context, vm login.ViewModel) {
	if !v.gate.Advance(ctx, scenes.Responded) {
		return
	}
	v.Screen.Failure(ctx, vm.Message)
	v.gate.Advance(ctx, scenes.Displayed)
}

func (v *LoginView) Phase() scenes.Phase { return v.gate.Phase() }

// Close tears the view down.
// An outstanding login finishes silently.
func (v *LoginView) Close() {
	v.gate.Close()
	v.display.Release()
}

// trigger admits an action through the gate and starts it on the owning executor.
func trigger(ctx context.Context, gate *scene.Gate, exec mainloop.Executor, start func(ctx context.Context)) (*scene.Action, error) {
	if exec == nil {
		exec = mainloop.Inline{}
	}
	a, err := gate.Begin(ctx)
	if err != nil {
		return nil, err
	}
	err = exec.Post(func() {
		if !gate.Advance(a.Context(), scenes.Processing) {
			return
		}
		start(a.Context())
	})
	if err != nil {
		logger.Warn(a.Context(), "scene action could not be started", logging.ErrField(err))
		gate.Abort(a.Context())
		return nil, err
	}
	return a, nil
}
