package terminal

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"sync"

	"go.llib.dev/frameless/pkg/errorkit"
	"go.llib.dev/frameless/pkg/logger"
	"go.llib.dev/frameless/pkg/logging"

	"scenes"
	"scenes/domain/auth"
	"scenes/domain/task"
	"scenes/pkg/backref"
	"scenes/pkg/mainloop"
	"scenes/pkg/scene"
)

const ErrUnknownCommand errorkit.Error = "terminal: unknown command"

const help = `commands:
  login <email> <password>   log in
  tasks                      list the tasks
  delete <id>                delete a task
  help                       show this help
  quit                       leave the shell`

// Shell hosts the login and task list scenes.
// Every command waits until its action, and the navigation it caused, has been rendered.
type Shell struct {
	screen *Screen
	login  *LoginView
	tasks  *TaskListView
	host   *backref.Ref[Host]

	mutex   sync.Mutex
	pending []*scene.Action
}

var _ Host = (*Shell)(nil)

func NewShell(out io.Writer, exec mainloop.Executor, authenticator auth.Authenticator, service task.Service) *Shell {
	sh := &Shell{screen: &Screen{Out: out}}
	sh.host = backref.To[Host](sh)
	sh.login = AssembleLogin(sh.screen, exec, authenticator, Navigator{Host: sh.host})
	sh.tasks = AssembleTaskList(sh.screen, exec, service)
	return sh
}

func (sh *Shell) Login(ctx context.Context, email, password string) error {
	return sh.await(ctx)(sh.login.Login(ctx, email, password))
}

func (sh *Shell) ListTasks(ctx context.Context) error {
	return sh.await(ctx)(sh.tasks.Load(ctx))
}

func (sh *Shell) DeleteTask(ctx context.Context, id string) error {
	return sh.await(ctx)(sh.tasks.Delete(ctx, id))
}

// ShowTasks switches to the task list scene.
func (sh *Shell) ShowTasks(ctx context.Context) {
	a, err := sh.tasks.Load(ctx)
	if err != nil {
		logger.Warn(ctx, "task list could not be shown", logging.ErrField(err))
		return
	}
	sh.mutex.Lock()
	defer sh.mutex.Unlock()
	sh.pending = append(sh.pending, a)
}

// Exec runs a single command line.
// It reports io.EOF for quit.
func (sh *Shell) Exec(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	cmd, args := fields[0], fields[1:]
	switch {
	case cmd == "login" && len(args) <= 2:
		args = append(args, "", "")
		return sh.Login(ctx, args[0], args[1])
	case cmd == "tasks" && len(args) == 0:
		return sh.ListTasks(ctx)
	case cmd == "delete" && len(args) <= 1:
		args = append(args, "")
		return sh.DeleteTask(ctx, args[0])
	case cmd == "help":
		sh.screen.Println(ctx, help)
		return nil
	case cmd == "quit" || cmd == "exit":
		return io.EOF
	default:
		return ErrUnknownCommand
	}
}

// Run reads commands from in until quit, end of input, or ctx is done.
func (sh *Shell) Run(ctx context.Context, in io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			logger.Warn(ctx, "reading commands failed", logging.ErrField(err))
		}
	}()

	sh.screen.Println(ctx, `type "help" for the list of commands`)
	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			err := sh.Exec(ctx, line)
			switch {
			case err == nil:
			case errors.Is(err, io.EOF):
				return nil
			case errors.Is(err, ErrUnknownCommand):
				sh.screen.Failure(ctx, "unknown command, try help")
			case errors.Is(err, scenes.ErrBusy):
				sh.screen.Failure(ctx, "busy, try again")
			default:
				return err
			}
		}
	}
}

// Close tears down both scenes.
// Actions still in flight finish without rendering.
func (sh *Shell) Close() {
	sh.host.Release()
	sh.login.Close()
	sh.tasks.Close()
}

func (sh *Shell) await(ctx context.Context) func(*scene.Action, error) error {
	return func(a *scene.Action, err error) error {
		if err != nil {
			return err
		}
		for a != nil {
			select {
			case <-a.Done():
			case <-ctx.Done():
				return ctx.Err()
			}
			a = sh.nextPending()
		}
		return nil
	}
}

func (sh *Shell) nextPending() *scene.Action {
	sh.mutex.Lock()
	defer sh.mutex.Unlock()
	if len(sh.pending) == 0 {
		return nil
	}
	a := sh.pending[0]
	sh.pending = sh.pending[1:]
	return a
}
