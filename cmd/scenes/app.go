package main

import (
	"context"
	"io"

	"go.llib.dev/frameless/adapter/memory"
	"go.llib.dev/frameless/pkg/errorkit"
	"go.llib.dev/frameless/pkg/logger"
	"go.llib.dev/frameless/pkg/logging"
	"go.llib.dev/frameless/pkg/synckit"
	"go.llib.dev/frameless/pkg/tasker"

	"scenes/adapter/inmem"
	"scenes/adapter/terminal"
	"scenes/domain/auth"
	"scenes/pkg/mainloop"
)

// app is one process worth of scenes sharing a single main loop.
type app struct {
	loop  *mainloop.Loop
	shell *terminal.Shell
}

func newApp(ctx context.Context, cfg Config, out io.Writer) (*app, error) {
	m := memory.NewMemory()

	authService := &inmem.AuthService{Memory: m, Latency: cfg.ServiceLatency}
	if err := authService.Register(ctx, auth.Credentials{Email: cfg.DemoEmail, Password: cfg.DemoPassword}); err != nil {
		return nil, err
	}
	taskService, err := inmem.NewTaskService(ctx, m)
	if err != nil {
		return nil, err
	}
	taskService.Latency = cfg.ServiceLatency

	loop := &mainloop.Loop{}
	return &app{
		loop:  loop,
		shell: terminal.NewShell(out, loop, authService, taskService),
	}, nil
}

// Run serves the main loop for as long as fn works with the shell.
func (a *app) Run(ctx context.Context, fn func(ctx context.Context, sh *terminal.Shell) error) error {
	return tasker.Main(ctx, func(ctx context.Context) (rErr error) {
		loop := synckit.Go(ctx, a.loop.Run)
		defer func() {
			loop.Cancel()
			rErr = errorkit.Merge(rErr, loop.Wait())
		}()
		defer a.shell.Close()
		logger.Debug(ctx, "scenes started")
		err := fn(ctx, a.shell)
		if err != nil {
			logger.Debug(ctx, "scenes command failed", logging.ErrField(err))
		}
		return err
	})
}
