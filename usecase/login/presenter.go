package login

import (
	"context"

	"scenes"
	"scenes/pkg/backref"
)

// Presenter formats login Responses.
// It reaches the Display through a non-owning link,
// so nothing is rendered once the Boundary is gone.
type Presenter struct {
	Display *backref.Ref[scenes.Display[ViewModel]]
}

var _ scenes.Presenter[Response] = Presenter{}

func (p Presenter) Present(ctx context.Context, resp Response) {
	vm := ViewModel{Message: resp.Message}
	p.Display.Do(func(d scenes.Display[ViewModel]) {
		scenes.Render(ctx, d, resp, vm)
	})
}
