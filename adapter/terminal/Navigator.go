package terminal

import (
	"context"

	"go.llib.dev/frameless/pkg/logger"

	"scenes/pkg/backref"
	"scenes/usecase/login"
)

// Host switches between scenes.
type Host interface {
	ShowTasks(ctx context.Context)
}

// Navigator is the login Router.
// It reaches its Host through a non-owning link, so a navigation after the Host was closed is dropped.
type Navigator struct {
	Host *backref.Ref[Host]
}

var _ login.RoutingLogic = Navigator{}

func (n Navigator) NavigateToHome(ctx context.Context) {
	if !n.Host.Do(func(h Host) { h.ShowTasks(ctx) }) {
		logger.Debug(ctx, "navigation dropped, host is gone")
	}
}
