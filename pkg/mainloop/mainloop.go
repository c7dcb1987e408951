// Package mainloop provides the single owning execution context of a scene.
//
// Interactors, Presenters and Displays run on the owner.
// Work that may block, like a Service call, runs off the owner through Await,
// and its continuation is posted back, so the owner never waits on I/O
// and never runs two jobs at the same time.
package mainloop

import (
	"context"
	"fmt"
	"sync"

	"go.llib.dev/frameless/pkg/errorkit"
	"go.llib.dev/frameless/pkg/logger"
	"go.llib.dev/frameless/pkg/logging"
)

const (
	ErrStopped        errorkit.Error = "mainloop: stopped"
	ErrAlreadyRunning errorkit.Error = "mainloop: already running"
	// ErrPanic is what resume receives when work panicked.
	ErrPanic errorkit.Error = "mainloop: work panicked"
)

// Executor is an owning execution context.
type Executor interface {
	// Post schedules job on the owning context.
	Post(job func()) error
	// Go runs work away from the owning context.
	Go(work func())
}

// Loop is an Executor backed by a single goroutine that runs posted jobs in FIFO order.
// The zero value is ready to use; jobs posted before Run are kept until Run picks them up.
type Loop struct {
	mutex   sync.Mutex
	queue   []func()
	wake    chan struct{}
	running bool
	stopped bool
}

func (l *Loop) Post(job func()) error {
	if job == nil {
		return nil
	}
	l.mutex.Lock()
	defer l.mutex.Unlock()
	if l.stopped {
		return ErrStopped
	}
	l.queue = append(l.queue, job)
	l.signal()
	return nil
}

func (l *Loop) Go(work func()) { go work() }

// Run serves posted jobs until ctx is done.
// Jobs still queued at that point are discarded, and later Post calls report ErrStopped.
func (l *Loop) Run(ctx context.Context) error {
	l.mutex.Lock()
	if l.running {
		l.mutex.Unlock()
		return ErrAlreadyRunning
	}
	if l.stopped {
		l.mutex.Unlock()
		return ErrStopped
	}
	l.running = true
	wake := l.getWake()
	l.mutex.Unlock()

	defer l.shutdown(ctx)

	for {
		for {
			job, ok := l.pop()
			if !ok {
				break
			}
			l.exec(ctx, job)
			if ctx.Err() != nil {
				return nil
			}
		}
		select {
		case <-ctx.Done():
			return nil
		case <-wake:
		}
	}
}

// Stopped reports whether the Loop finished serving.
func (l *Loop) Stopped() bool {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	return l.stopped
}

func (l *Loop) pop() (func(), bool) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	if len(l.queue) == 0 {
		return nil, false
	}
	job := l.queue[0]
	l.queue[0] = nil
	l.queue = l.queue[1:]
	return job, true
}

func (l *Loop) exec(ctx context.Context, job func()) {
	defer errorkit.RecoverWith(func(r any) {
		logger.Error(ctx, "mainloop job panicked", logging.Field("panic", fmt.Sprint(r)))
	})
	job()
}

func (l *Loop) shutdown(ctx context.Context) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	if n := len(l.queue); 0 < n {
		logger.Debug(ctx, "mainloop discarded pending jobs", logging.Field("count", n))
	}
	l.queue = nil
	l.running = false
	l.stopped = true
}

// signal must be called while holding the mutex.
func (l *Loop) signal() {
	select {
	case l.getWake() <- struct{}{}:
	default:
	}
}

func (l *Loop) getWake() chan struct{} {
	if l.wake == nil {
		l.wake = make(chan struct{}, 1)
	}
	return l.wake
}

// Inline is an Executor that runs everything on the caller's goroutine.
// It turns the asynchronous flow into a plain synchronous call chain.
type Inline struct{}

func (Inline) Post(job func()) error {
	if job != nil {
		job()
	}
	return nil
}

func (Inline) Go(work func()) { work() }

// Await runs work away from the owner and resumes on the owner with its result.
//
// When ctx is done before resume could run, resume is skipped.
// This makes callbacks of a torn down scene silent no-ops.
// A panic in work reaches resume as an ErrPanic error.
func Await[T any](ctx context.Context, exec Executor, work func(context.Context) (T, error), resume func(T, error)) {
	if exec == nil {
		exec = Inline{}
	}
	exec.Go(func() {
		v, err := call(ctx, work)
		if ctx.Err() != nil {
			logger.Debug(ctx, "mainloop await result dropped", logging.ErrField(ctx.Err()))
			return
		}
		postErr := exec.Post(func() {
			if ctx.Err() != nil {
				return
			}
			resume(v, err)
		})
		if postErr != nil {
			logger.Debug(ctx, "mainloop await result dropped", logging.ErrField(postErr))
		}
	})
}

func call[T any](ctx context.Context, work func(context.Context) (T, error)) (v T, err error) {
	defer errorkit.RecoverWith(func(r any) {
		logger.Error(ctx, "mainloop await work panicked", logging.Field("panic", fmt.Sprint(r)))
		err = ErrPanic.F("%v", r)
	})
	return work(ctx)
}
