package terminal

import (
	"scenes"
	"scenes/domain/auth"
	"scenes/domain/task"
	"scenes/pkg/backref"
	"scenes/pkg/mainloop"
	"scenes/usecase/login"
	"scenes/usecase/tasklist"
)

// AssembleLogin wires a LoginView with its Interactor, Presenter and Router.
// The router is optional.
func AssembleLogin(screen *Screen, exec mainloop.Executor, authenticator auth.Authenticator, router login.RoutingLogic) *LoginView {
	v := &LoginView{Screen: screen, Executor: exec, Router: router}
	v.gate.Name = "login"
	v.display = backref.To[scenes.Display[login.ViewModel]](v)
	v.Interactor = &login.Interactor{
		Authenticator: authenticator,
		Presenter:     login.Presenter{Display: v.display},
		Executor:      exec,
	}
	return v
}

// AssembleTaskList wires a TaskListView with its Interactor and Presenter.
func AssembleTaskList(screen *Screen, exec mainloop.Executor, service task.Service) *TaskListView {
	v := &TaskListView{Screen: screen, Executor: exec}
	v.gate.Name = "tasklist"
	v.display = backref.To[scenes.Display[tasklist.ViewModel]](v)
	v.Interactor = &tasklist.Interactor{
		Service:   service,
		Presenter: tasklist.Presenter{Display: v.display},
		Executor:  exec,
	}
	return v
}
