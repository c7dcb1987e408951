// Package task holds the task entity and the capability the task list use case consumes.
package task

//go:generate mockgen -package taskmock -destination taskmock/taskmock.go scenes/domain/task Service

import (
	"context"

	"go.llib.dev/frameless/port/crud"
)

type ID string

type Task struct {
	ID   ID `ext:"id"`
	Name string
}

// Service owns the task records.
// Callers only read them or ask for deletion by ID.
type Service interface {
	// List returns the tasks in a stable order.
	List(ctx context.Context) ([]Task, error)
	// Delete removes the task with the given ID.
	// Deleting an unknown ID is not an error and leaves the listing unchanged.
	Delete(ctx context.Context, id ID) error
}

type Repository interface {
	crud.Creator[Task]
	crud.ByIDFinder[Task, ID]
	crud.ByIDDeleter[ID]
}

// Defaults is the listing a fresh task Service starts with.
func Defaults() []Task {
	return []Task{
		{ID: "1", Name: "Buy groceries"},
		{ID: "2", Name: "Walk the dog"},
		{ID: "3", Name: "Finish homework"},
	}
}
