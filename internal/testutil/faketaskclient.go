package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/TWRT/task-board/internal/client"
	"github.com/TWRT/task-board/internal/models"
)

// FakeTaskClient is an in-memory client.TaskClient for testing the view.
type FakeTaskClient struct {
	mu     sync.Mutex
	tasks  []models.Task
	nextID int

	// Calls records the operations in order: "list", "create", "update", "delete".
	Calls   []string
	Updates []models.TaskUpdate

	// Error injection for testing
	ListErr   error
	CreateErr error
	UpdateErr error
	DeleteErr error
}

func NewFakeTaskClient(tasks ...models.Task) *FakeTaskClient {
	return &FakeTaskClient{tasks: append([]models.Task(nil), tasks...)}
}

// Tasks returns the fake's current server-side state.
func (f *FakeTaskClient) Tasks() []models.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Task{}, f.tasks...)
}

func (f *FakeTaskClient) ListTasks(ctx context.Context) ([]models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, "list")
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	return append([]models.Task{}, f.tasks...), nil
}

func (f *FakeTaskClient) CreateTask(ctx context.Context, title, description string) (*models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, "create")
	if f.CreateErr != nil {
		return nil, f.CreateErr
	}
	f.nextID++
	task := models.Task{ID: fmt.Sprintf("task-%d", f.nextID), Title: title, Description: description}
	f.tasks = append(f.tasks, task)
	return &task, nil
}

func (f *FakeTaskClient) UpdateTask(ctx context.Context, update models.TaskUpdate) (*models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, "update")
	f.Updates = append(f.Updates, update)
	if f.UpdateErr != nil {
		return nil, f.UpdateErr
	}
	for i := range f.tasks {
		if f.tasks[i].ID == update.ID {
			update.Apply(&f.tasks[i])
			task := f.tasks[i]
			return &task, nil
		}
	}
	return nil, &client.APIError{StatusCode: 404, Message: "Task not found"}
}

func (f *FakeTaskClient) DeleteTask(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, "delete")
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return &client.APIError{StatusCode: 404, Message: "Task not found"}
}

var _ client.TaskClient = (*FakeTaskClient)(nil)
