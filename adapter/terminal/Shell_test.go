package terminal_test

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"go.llib.dev/frameless/pkg/synckit"
	"go.llib.dev/testcase"
	"go.llib.dev/testcase/assert"

	"scenes"
	"scenes/adapter/inmem"
	"scenes/adapter/terminal"
	"scenes/domain/auth"
	"scenes/pkg/mainloop"
)

const (
	email    = "test@example.com"
	password = "password123"
)

func newAuthService(tb testing.TB) *inmem.AuthService {
	svc := &inmem.AuthService{MemoryKiB: 64}
	assert.NoError(tb, svc.Register(context.Background(), auth.Credentials{Email: email, Password: password}))
	return svc
}

func newTaskService(tb testing.TB, latency time.Duration) *inmem.TaskService {
	svc, err := inmem.NewTaskService(context.Background(), nil)
	assert.NoError(tb, err)
	svc.Latency = latency
	return svc
}

func startLoop(tb testing.TB) *mainloop.Loop {
	loop := &mainloop.Loop{}
	job := synckit.Go(context.Background(), loop.Run)
	tb.Cleanup(func() {
		job.Cancel()
		assert.NoError(tb, job.Wait())
	})
	return loop
}

func TestShell(t *testing.T) {
	s := testcase.NewSpec(t)

	var (
		out  = testcase.Let(s, func(t *testcase.T) *bytes.Buffer { return &bytes.Buffer{} })
		exec = testcase.Let[mainloop.Executor](s, func(t *testcase.T) mainloop.Executor {
			return mainloop.Inline{}
		})
		shell = testcase.Let(s, func(t *testcase.T) *terminal.Shell {
			sh := terminal.NewShell(out.Get(t), exec.Get(t), newAuthService(t), newTaskService(t, 0))
			t.Cleanup(sh.Close)
			return sh
		})
	)
	ctx := context.Background()

	suite := func(s *testcase.Spec) {
		s.Describe(".Login", func(s *testcase.Spec) {
			s.Then("a successful login navigates to the task list", func(t *testcase.T) {
				assert.NoError(t, shell.Get(t).Login(ctx, email, password))
				assert.Equal(t, "✔ Login successful!\n"+
					"1. Buy groceries\n"+
					"2. Walk the dog\n"+
					"3. Finish homework\n", out.Get(t).String())
			})

			s.Then("missing fields are reported", func(t *testcase.T) {
				assert.NoError(t, shell.Get(t).Login(ctx, "", ""))
				assert.Equal(t, "✘ Please fill in all the fields.\n", out.Get(t).String())
			})

			s.Then("wrong credentials stay on the login scene", func(t *testcase.T) {
				assert.NoError(t, shell.Get(t).Login(ctx, email, "wrong"))
				assert.Equal(t, "✘ Invalid credentials.\n", out.Get(t).String())
			})
		})

		s.Describe(".DeleteTask", func(s *testcase.Spec) {
			s.Then("the remaining tasks are rendered", func(t *testcase.T) {
				assert.NoError(t, shell.Get(t).DeleteTask(ctx, "2"))
				assert.Equal(t, "1. Buy groceries\n3. Finish homework\n", out.Get(t).String())
			})

			s.Then("an empty selection is reported", func(t *testcase.T) {
				assert.NoError(t, shell.Get(t).DeleteTask(ctx, ""))
				assert.Equal(t, "✘ Please select a task.\n", out.Get(t).String())
			})

			s.Then("deleting everything leaves no tasks", func(t *testcase.T) {
				for _, id := range []string{"1", "2", "3"} {
					assert.NoError(t, shell.Get(t).DeleteTask(ctx, id))
				}
				assert.True(t, strings.HasSuffix(out.Get(t).String(), "no tasks\n"))
			})
		})

		s.Describe(".Exec", func(s *testcase.Spec) {
			s.Then("tasks lists the tasks", func(t *testcase.T) {
				assert.NoError(t, shell.Get(t).Exec(ctx, "tasks"))
				assert.Contains(t, out.Get(t).String(), "2. Walk the dog")
			})

			s.Then("quit ends the session", func(t *testcase.T) {
				assert.ErrorIs(t, io.EOF, shell.Get(t).Exec(ctx, "quit"))
			})

			s.Then("an unknown command is rejected", func(t *testcase.T) {
				assert.ErrorIs(t, terminal.ErrUnknownCommand, shell.Get(t).Exec(ctx, "dance"))
			})

			s.Then("a blank line is ignored", func(t *testcase.T) {
				assert.NoError(t, shell.Get(t).Exec(ctx, "   "))
				assert.Empty(t, out.Get(t).String())
			})
		})
	}

	s.When("scenes run inline", func(s *testcase.Spec) {
		suite(s)
	})

	s.When("scenes run on a main loop", func(s *testcase.Spec) {
		exec.Let(s, func(t *testcase.T) mainloop.Executor {
			return startLoop(t)
		})
		suite(s)
	})
}

func TestShell_Run(t *testing.T) {
	var out bytes.Buffer
	sh := terminal.NewShell(&out, startLoop(t), newAuthService(t), newTaskService(t, 0))
	defer sh.Close()

	script := strings.Join([]string{
		"help",
		"login " + email + " " + password,
		"delete 1",
		"jump",
		"quit",
		"tasks",
	}, "\n")
	assert.NoError(t, sh.Run(context.Background(), strings.NewReader(script)))

	got := out.String()
	assert.Contains(t, got, "commands:")
	assert.Contains(t, got, "✔ Login successful!\n1. Buy groceries\n2. Walk the dog\n3. Finish homework\n")
	assert.Contains(t, got, "2. Walk the dog\n3. Finish homework\n✘ unknown command, try help\n")
	assert.True(t, strings.Count(got, "Walk the dog") == 2, "nothing is expected to run after quit")
}

func TestTaskListView_teardownWhileLoading(t *testing.T) {
	var out bytes.Buffer
	loop := startLoop(t)
	view := terminal.AssembleTaskList(&terminal.Screen{Out: &out}, loop, newTaskService(t, 50*time.Millisecond))

	a, err := view.Load(context.Background())
	assert.NoError(t, err)
	view.Close()

	select {
	case <-a.Done():
	case <-time.After(time.Second):
		t.Fatal("closing the view expected to end the action")
	}
	time.Sleep(100 * time.Millisecond)
	flushed := make(chan struct{})
	assert.NoError(t, loop.Post(func() { close(flushed) }))
	<-flushed

	assert.Equal(t, "", out.String())
	_, err = view.Load(context.Background())
	assert.ErrorIs(t, scenes.ErrClosed, err)
}

func TestTaskListView_callerCancelsWhileLoading(t *testing.T) {
	var out bytes.Buffer
	view := terminal.AssembleTaskList(&terminal.Screen{Out: &out}, startLoop(t), newTaskService(t, 50*time.Millisecond))
	defer view.Close()

	ctx, cancel := context.WithCancel(context.Background())
	first, err := view.Load(ctx)
	assert.NoError(t, err)
	cancel()

	select {
	case <-first.Done():
	case <-time.After(time.Second):
		t.Fatal("cancelling the caller context expected to end the action")
	}
	assert.Equal(t, scenes.Idle, view.Phase())

	next, err := view.Load(context.Background())
	assert.NoError(t, err)
	select {
	case <-next.Done():
	case <-time.After(time.Second):
		t.Fatal("timed out")
	}
	assert.Equal(t, "1. Buy groceries\n2. Walk the dog\n3. Finish homework\n", out.String())
	assert.Equal(t, scenes.Displayed, view.Phase())
}

func TestTaskListView_overlappingTriggersAreDropped(t *testing.T) {
	var out bytes.Buffer
	view := terminal.AssembleTaskList(&terminal.Screen{Out: &out}, startLoop(t), newTaskService(t, 50*time.Millisecond))
	defer view.Close()

	first, err := view.Load(context.Background())
	assert.NoError(t, err)
	_, err = view.Delete(context.Background(), "1")
	assert.ErrorIs(t, scenes.ErrBusy, err)

	select {
	case <-first.Done():
	case <-time.After(time.Second):
		t.Fatal("timed out")
	}
	assert.Equal(t, "1. Buy groceries\n2. Walk the dog\n3. Finish homework\n", out.String())
	assert.Equal(t, scenes.Displayed, view.Phase())
}
