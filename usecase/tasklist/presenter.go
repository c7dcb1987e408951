package tasklist

import (
	"context"

	"scenes"
	"scenes/pkg/backref"
)

type Presenter struct {
	Display *backref.Ref[scenes.Display[ViewModel]]
}

var _ scenes.Presenter[Response] = Presenter{}

func (p Presenter) Present(ctx context.Context, resp Response) {
	vm := ViewModel{Message: resp.Failure}
	if resp.Succeeded() {
		vm.Tasks = make([]TaskViewModel, 0, len(resp.Tasks))
		for _, t := range resp.Tasks {
			vm.Tasks = append(vm.Tasks, TaskViewModel{ID: string(t.ID), Name: t.Name})
		}
	}
	p.Display.Do(func(d scenes.Display[ViewModel]) {
		scenes.Render(ctx, d, resp, vm)
	})
}
