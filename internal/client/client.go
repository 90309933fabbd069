package client

import (
	"context"
	"fmt"

	"github.com/TWRT/task-board/internal/models"
)

type TaskClient interface {
	ListTasks(ctx context.Context) ([]models.Task, error)
	CreateTask(ctx context.Context, title, description string) (*models.Task, error)
	UpdateTask(ctx context.Context, update models.TaskUpdate) (*models.Task, error)
	DeleteTask(ctx context.Context, id string) error
}

// APIError is a non-success response from the task API. Transport failures
// are returned as plain errors instead.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("API error status: %d", e.StatusCode)
	}
	return fmt.Sprintf("API error status %d: %s", e.StatusCode, e.Message)
}
