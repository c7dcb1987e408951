package tasklist

import (
	"context"
	"slices"

	"go.llib.dev/frameless/pkg/logger"
	"go.llib.dev/frameless/pkg/logging"
	"go.llib.dev/frameless/pkg/validate"

	"scenes"
	"scenes/domain/task"
	"scenes/pkg/mainloop"
)

type Interactor struct {
	Service   task.Service
	Presenter scenes.Presenter[Response]
	// Executor is the owning context the Presenter is called on.
	//
	// default: mainloop.Inline
	Executor mainloop.Executor
}

var _ BusinessLogic = (*Interactor)(nil)

func (i *Interactor) FetchTasks(ctx context.Context) {
	mainloop.Await(ctx, i.Executor, i.Service.List, func(tasks []task.Task, err error) {
		i.presentListing(ctx, tasks, err)
	})
}

// DeleteTask deletes a task, then presents the listing as it is after the deletion.
func (i *Interactor) DeleteTask(ctx context.Context, req DeleteRequest) {
	if err := validate.Value(ctx, req); err != nil {
		logger.Debug(ctx, "delete task request is invalid", logging.ErrField(err))
		i.present(ctx, Response{Failure: MessageMissingTask})
		return
	}
	mainloop.Await(ctx, i.Executor,
		func(ctx context.Context) (struct{}, error) {
			return struct{}{}, i.Service.Delete(ctx, req.TaskID)
		},
		func(_ struct{}, err error) {
			if err != nil {
				logger.Warn(ctx, "task deletion failed",
					logging.Field("task_id", string(req.TaskID)),
					logging.ErrField(err))
				i.present(ctx, Response{Failure: MessageDeleteFailed})
				return
			}
			i.FetchTasks(ctx)
		})
}

func (i *Interactor) presentListing(ctx context.Context, tasks []task.Task, err error) {
	if err != nil {
		logger.Warn(ctx, "task listing failed", logging.ErrField(err))
		i.present(ctx, Response{Failure: MessageLoadFailed})
		return
	}
	i.present(ctx, Response{Tasks: slices.Clone(tasks)})
}

func (i *Interactor) present(ctx context.Context, resp Response) {
	if i.Presenter == nil {
		return
	}
	i.Presenter.Present(ctx, resp)
}
