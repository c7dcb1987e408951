// Package tasklist is the task list scene: listing tasks and deleting one by its ID.
package tasklist

import (
	"context"

	"go.llib.dev/frameless/pkg/errorkit"

	"scenes/domain/task"
)

const (
	MessageLoadFailed   = "Could not load tasks."
	MessageDeleteFailed = "Could not delete task."
	MessageMissingTask  = "Please select a task."
)

const ErrMissingTaskID errorkit.Error = "tasklist: missing task id"

type DeleteRequest struct {
	TaskID task.ID
}

// Validate implements the validate.Validatable interface.
func (r DeleteRequest) Validate(context.Context) error {
	if r.TaskID == "" {
		return ErrMissingTaskID
	}
	return nil
}

// Response carries the current listing, or the reason it could not be produced.
type Response struct {
	Tasks   []task.Task
	Failure string
}

func (r Response) Succeeded() bool { return r.Failure == "" }

type TaskViewModel struct {
	ID   string
	Name string
}

type ViewModel struct {
	Tasks   []TaskViewModel
	Message string
}

// BusinessLogic is what a task list Boundary may ask from its Interactor.
type BusinessLogic interface {
	FetchTasks(ctx context.Context)
	DeleteTask(ctx context.Context, req DeleteRequest)
}
