package inmem

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"go.llib.dev/frameless/adapter/memory"
	"go.llib.dev/frameless/pkg/logger"
	"go.llib.dev/frameless/pkg/logging"

	"scenes/domain/task"
)

// TaskService keeps tasks in memory and lists them in insertion order.
type TaskService struct {
	// Memory [optional] is the backing store of the task repository.
	//
	// default: memory.NewMemory()
	Memory *memory.Memory
	// Latency [optional] delays every List and Delete call.
	Latency time.Duration

	mutex sync.Mutex
	tasks task.Repository
	order []task.ID
}

var _ task.Service = (*TaskService)(nil)

// NewTaskService returns a TaskService seeded with task.Defaults.
func NewTaskService(ctx context.Context, m *memory.Memory) (*TaskService, error) {
	s := &TaskService{Memory: m}
	if err := s.Seed(ctx, task.Defaults()...); err != nil {
		return nil, err
	}
	return s, nil
}

// Seed appends tasks to the end of the listing.
func (s *TaskService) Seed(ctx context.Context, tasks ...task.Task) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	for _, t := range tasks {
		if err := s.repository().Create(ctx, &t); err != nil {
			return fmt.Errorf("seed task %q: %w", t.ID, err)
		}
		s.order = append(s.order, t.ID)
	}
	return nil
}

func (s *TaskService) List(ctx context.Context) ([]task.Task, error) {
	if err := wait(ctx, s.Latency); err != nil {
		return nil, err
	}
	s.mutex.Lock()
	defer s.mutex.Unlock()
	tasks := make([]task.Task, 0, len(s.order))
	for _, id := range s.order {
		t, found, err := s.repository().FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if !found {
			continue
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func (s *TaskService) Delete(ctx context.Context, id task.ID) error {
	if err := wait(ctx, s.Latency); err != nil {
		return err
	}
	s.mutex.Lock()
	defer s.mutex.Unlock()
	_, found, err := s.repository().FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		logger.Debug(ctx, "task to delete not found", logging.Field("task_id", string(id)))
		return nil
	}
	if err := s.repository().DeleteByID(ctx, id); err != nil {
		return err
	}
	s.order = slices.DeleteFunc(s.order, func(v task.ID) bool { return v == id })
	logger.Debug(ctx, "task deleted", logging.Field("task_id", string(id)))
	return nil
}

// repository must be called while holding the mutex.
func (s *TaskService) repository() task.Repository {
	if s.tasks == nil {
		s.tasks = memory.NewRepository[task.Task, task.ID](s.Memory)
	}
	return s.tasks
}
