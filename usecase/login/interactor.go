package login

import (
	"context"

	"go.llib.dev/frameless/pkg/logger"
	"go.llib.dev/frameless/pkg/logging"
	"go.llib.dev/frameless/pkg/validate"

	"scenes"
	"scenes/domain/auth"
	"scenes/pkg/mainloop"
)

type Interactor struct {
	Authenticator auth.Authenticator
	Presenter     scenes.Presenter[Response]
	// Executor is the owning context the Presenter is called on.
	//
	// default: mainloop.Inline
	Executor mainloop.Executor
}

var _ BusinessLogic = (*Interactor)(nil)

func (i *Interactor) Login(ctx context.Context, req Request) {
	if err := validate.Value(ctx, req); err != nil {
		logger.Debug(ctx, "login request is invalid", logging.ErrField(err))
		i.present(ctx, Response{Success: false, Message: MessageMissingFields})
		return
	}
	mainloop.Await(ctx, i.Executor,
		func(ctx context.Context) (bool, error) {
			return i.Authenticator.Authenticate(ctx, req.Credentials())
		},
		func(ok bool, err error) {
			if err != nil {
				logger.Warn(ctx, "authentication failed", logging.ErrField(err))
				ok = false
			}
			i.present(ctx, makeResponse(ok))
		})
}

func makeResponse(ok bool) Response {
	if ok {
		return Response{Success: true, Message: MessageSuccess}
	}
	return Response{Success: false, Message: MessageInvalidCredentials}
}

func (i *Interactor) present(ctx context.Context, resp Response) {
	if i.Presenter == nil {
		return
	}
	i.Presenter.Present(ctx, resp)
}
