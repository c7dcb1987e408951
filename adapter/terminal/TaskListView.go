package terminal

import (
	"context"
	"fmt"

	"scenes"
	"scenes/domain/task"
	"scenes/pkg/backref"
	"scenes/pkg/mainloop"
	"scenes/pkg/scene"
	"scenes/usecase/tasklist"
)

// TaskListView is the task list Boundary.
type TaskListView struct {
	Screen     *Screen
	Executor   mainloop.Executor
	Interactor tasklist.BusinessLogic

	gate    scene.Gate
	display *backref.Ref[scenes.Display[tasklist.ViewModel]]
}

var _ scenes.Display[tasklist.ViewModel] = (*TaskListView)(nil)

func (v *TaskListView) Load(ctx context.Context) (*scene.Action, error) {
	return trigger(ctx, &v.gate, v.Executor, v.Interactor.FetchTasks)
}

func (v *TaskListView) Delete(ctx context.Context, id string) (*scene.Action, error) {
	req := tasklist.DeleteRequest{TaskID: task.ID(id)}
	return trigger(ctx, &v.gate, v.Executor, func(ctx context.Context) {
		v.Interactor.DeleteTask(ctx, req)
	})
}

func (v *TaskListView) DisplaySuccess(ctx context.Context, vm tasklist.ViewModel) {
	if !v.gate.Advance(ctx, scenes.Responded) {
		return
	}
	if len(vm.Tasks) == 0 {
		v.Screen.Println(ctx, noTasks)
	}
	for _, t := range vm.Tasks {
		v.Screen.Println(ctx, fmt.Sprintf("%s. %s", t.ID, t.Name))
	}
	v.gate.Advance(ctx, scenes.Displayed)
}

func (v *TaskListView) DisplayFailure(ctx context.Context, vm tasklist.ViewModel) {
	if !v.gate.Advance(ctx, scenes.Responded) {
		return
	}
	v.Screen.Failure(ctx, vm.Message)
	v.gate.Advance(ctx, scenes.Displayed)
}

func (v *TaskListView) Phase() scenes.Phase { return v.gate.Phase() }

func (v *TaskListView) Close() {
	v.gate.Close()
	v.display.Release()
}
