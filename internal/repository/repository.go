package repository

import (
	"context"
	"errors"

	"github.com/TWRT/task-board/internal/models"
	"github.com/google/uuid"
)

var ErrTaskNotFound = errors.New("task not found")

// TaskRepository stores each user's tasks as an ordered sequence.
type TaskRepository interface {
	List(ctx context.Context, userID string) ([]models.Task, error)
	Create(ctx context.Context, userID, title, description string) (models.Task, error)
	Update(ctx context.Context, userID string, update models.TaskUpdate) (models.Task, error)
	Delete(ctx context.Context, userID, id string) error
}

type IDGenerator func() string

// NewTaskID returns a random (v4) UUID string.
func NewTaskID() string {
	return uuid.NewString()
}
