// Package terminal renders the scenes as plain text lines and drives them from a command shell.
package terminal

import (
	"context"
	"fmt"
	"io"
	"sync"

	"go.llib.dev/frameless/pkg/logger"
	"go.llib.dev/frameless/pkg/logging"
)

const (
	markSuccess = "✔"
	markFailure = "✘"
	noTasks     = "no tasks"
)

// Screen is the line oriented output shared by every view.
type Screen struct {
	Out io.Writer

	mutex sync.Mutex
}

func (s *Screen) Println(ctx context.Context, a ...any) {
	if s == nil || s.Out == nil {
		return
	}
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if _, err := fmt.Fprintln(s.Out, a...); err != nil {
		logger.Warn(ctx, "terminal write failed", logging.ErrField(err))
	}
}

func (s *Screen) Success(ctx context.Context, msg string) {
	s.Println(ctx, markSuccess, msg)
}

func (s *Screen) Failure(ctx context.Context, msg string) {
	s.Println(ctx, markFailure, msg)
}
