package mainloop_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.llib.dev/frameless/pkg/synckit"
	"go.llib.dev/testcase/assert"

	"scenes/pkg/mainloop"
)

var (
	_ mainloop.Executor = &mainloop.Loop{}
	_ mainloop.Executor = mainloop.Inline{}
)

const timeout = time.Second

func startLoop(tb testing.TB) *mainloop.Loop {
	tb.Helper()
	loop := &mainloop.Loop{}
	stop := run(loop)
	tb.Cleanup(func() { assert.NoError(tb, stop()) })
	return loop
}

func run(loop *mainloop.Loop) func() error {
	job := synckit.Go(context.Background(), loop.Run)
	return func() error {
		job.Cancel()
		return job.Wait()
	}
}

func wait(tb testing.TB, ch <-chan struct{}) {
	tb.Helper()
	select {
	case <-ch:
	case <-time.After(timeout):
		tb.Fatal("timed out")
	}
}

func TestLoop_fifo(t *testing.T) {
	loop := startLoop(t)

	var (
		got  []int
		done = make(chan struct{})
	)
	for i := 0; i < 100; i++ {
		i := i
		assert.NoError(t, loop.Post(func() { got = append(got, i) }))
	}
	assert.NoError(t, loop.Post(func() { close(done) }))
	wait(t, done)

	exp := make([]int, 100)
	for i := range exp {
		exp[i] = i
	}
	assert.Equal(t, exp, got)
}

func TestLoop_postBeforeRunIsKept(t *testing.T) {
	loop := &mainloop.Loop{}
	done := make(chan struct{})
	assert.NoError(t, loop.Post(func() { close(done) }))

	stop := run(loop)
	defer stop()
	wait(t, done)
}

func TestLoop_postFromInsideAJob(t *testing.T) {
	loop := startLoop(t)

	var (
		order []string
		done  = make(chan struct{})
	)
	assert.NoError(t, loop.Post(func() {
		order = append(order, "outer-begin")
		assert.NoError(t, loop.Post(func() {
			order = append(order, "inner")
			close(done)
		}))
		order = append(order, "outer-end")
	}))
	wait(t, done)
	assert.Equal(t, []string{"outer-begin", "outer-end", "inner"}, order)
}

func TestLoop_panicInAJobDoesNotStopTheLoop(t *testing.T) {
	loop := startLoop(t)

	done := make(chan struct{})
	assert.NoError(t, loop.Post(func() { panic("boom") }))
	assert.NoError(t, loop.Post(func() { close(done) }))
	wait(t, done)
}

func TestLoop_stop(t *testing.T) {
	loop := &mainloop.Loop{}
	stop := run(loop)

	ready := make(chan struct{})
	assert.NoError(t, loop.Post(func() { close(ready) }))
	wait(t, ready)

	assert.ErrorIs(t, mainloop.ErrAlreadyRunning, loop.Run(context.Background()))

	assert.NoError(t, stop())
	assert.True(t, loop.Stopped())
	assert.ErrorIs(t, mainloop.ErrStopped, loop.Post(func() {}))
	assert.ErrorIs(t, mainloop.ErrStopped, loop.Run(context.Background()))
}

func TestInline(t *testing.T) {
	var n int
	assert.NoError(t, mainloop.Inline{}.Post(func() { n++ }))
	mainloop.Inline{}.Go(func() { n++ })
	assert.NoError(t, mainloop.Inline{}.Post(nil))
	assert.Equal(t, 2, n)
}

func TestAwait(t *testing.T) {
	t.Run("inline executor resumes synchronously", func(t *testing.T) {
		var (
			got    int
			gotErr error
		)
		mainloop.Await(context.Background(), mainloop.Inline{},
			func(ctx context.Context) (int, error) { return 42, nil },
			func(v int, err error) { got, gotErr = v, err })
		assert.Equal(t, 42, got)
		assert.NoError(t, gotErr)
	})

	t.Run("nil executor behaves inline", func(t *testing.T) {
		expErr := errors.New("boom")
		var gotErr error
		mainloop.Await(context.Background(), nil,
			func(ctx context.Context) (string, error) { return "", expErr },
			func(_ string, err error) { gotErr = err })
		assert.ErrorIs(t, expErr, gotErr)
	})

	t.Run("loop executor resumes on the loop", func(t *testing.T) {
		loop := startLoop(t)

		var (
			m       sync.Mutex
			onLoop  bool
			release = make(chan struct{})
			done    = make(chan struct{})
		)
		// a job that holds the loop until the work finished proves
		// that work does not run on the loop
		assert.NoError(t, loop.Post(func() {
			mainloop.Await(context.Background(), loop,
				func(ctx context.Context) (string, error) {
					close(release)
					return "ok", nil
				},
				func(v string, err error) {
					m.Lock()
					defer m.Unlock()
					onLoop = v == "ok" && err == nil
					close(done)
				})
			wait(t, release)
		}))
		wait(t, done)

		m.Lock()
		defer m.Unlock()
		assert.True(t, onLoop)
	})

	t.Run("cancelled context skips resume", func(t *testing.T) {
		loop := startLoop(t)

		ctx, cancel := context.WithCancel(context.Background())
		var (
			started  = make(chan struct{})
			finished = make(chan struct{})
			proceed  = make(chan struct{})
		)
		mainloop.Await(ctx, loop,
			func(ctx context.Context) (int, error) {
				close(started)
				<-proceed
				defer close(finished)
				return 1, nil
			},
			func(int, error) { t.Error("resume must not run after cancellation") })

		wait(t, started)
		cancel()
		close(proceed)
		wait(t, finished)

		flushed := make(chan struct{})
		assert.NoError(t, loop.Post(func() { close(flushed) }))
		wait(t, flushed)
	})

	t.Run("panicking work resumes with an error on the loop", func(t *testing.T) {
		loop := startLoop(t)

		var (
			gotV   int
			gotErr error
			done   = make(chan struct{})
		)
		mainloop.Await(context.Background(), loop,
			func(ctx context.Context) (int, error) { panic("boom") },
			func(v int, err error) {
				gotV, gotErr = v, err
				close(done)
			})
		wait(t, done)
		assert.Equal(t, 0, gotV)
		assert.ErrorIs(t, mainloop.ErrPanic, gotErr)

		flushed := make(chan struct{})
		assert.NoError(t, loop.Post(func() { close(flushed) }))
		wait(t, flushed)
	})

	t.Run("panicking work resumes with an error inline", func(t *testing.T) {
		var gotErr error
		mainloop.Await(context.Background(), mainloop.Inline{},
			func(ctx context.Context) (string, error) { panic(errors.New("boom")) },
			func(_ string, err error) { gotErr = err })
		assert.ErrorIs(t, mainloop.ErrPanic, gotErr)
	})

	t.Run("stopped loop drops the result", func(t *testing.T) {
		loop := &mainloop.Loop{}
		stop := run(loop)
		assert.NoError(t, stop())

		finished := make(chan struct{})
		mainloop.Await(context.Background(), loop,
			func(ctx context.Context) (int, error) {
				defer close(finished)
				return 1, nil
			},
			func(int, error) { t.Error("resume must not run on a stopped loop") })
		wait(t, finished)
	})
}
