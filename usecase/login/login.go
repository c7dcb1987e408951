// Package login is the login scene.
//
// The Interactor validates the Request, asks the auth.Authenticator,
// and hands exactly one Response to the Presenter.
// The Presenter turns it into a ViewModel for the Boundary's Display.
package login

import (
	"context"

	"go.llib.dev/frameless/pkg/errorkit"

	"scenes/domain/auth"
)

const (
	MessageMissingFields      = "Please fill in all the fields."
	MessageSuccess            = "Login successful!"
	MessageInvalidCredentials = "Invalid credentials."
)

const ErrMissingFields errorkit.Error = "login: missing required field"

type Request struct {
	Email    string
	Password string
}

// Validate implements the validate.Validatable interface.
func (r Request) Validate(context.Context) error {
	if r.Email == "" || r.Password == "" {
		return ErrMissingFields
	}
	return nil
}

func (r Request) Credentials() auth.Credentials {
	return auth.Credentials{Email: r.Email, Password: r.Password}
}

type Response struct {
	Success bool
	Message string
}

func (r Response) Succeeded() bool { return r.Success }

type ViewModel struct {
	Message string
}

// BusinessLogic is what a login Boundary may ask from its Interactor.
type BusinessLogic interface {
	Login(ctx context.Context, req Request)
}

// RoutingLogic is the navigation a login Boundary may perform after a successful login.
type RoutingLogic interface {
	NavigateToHome(ctx context.Context)
}
