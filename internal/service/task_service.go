package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/TWRT/task-board/internal/models"
	"github.com/TWRT/task-board/internal/repository"
)

var ErrInvalidInput = errors.New("invalid input")

type TaskService struct {
	taskRepo repository.TaskRepository
	logger   *slog.Logger
}

func NewTaskService(taskRepo repository.TaskRepository, logger *slog.Logger) *TaskService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskService{
		taskRepo: taskRepo,
		logger:   logger,
	}
}

func (s *TaskService) ListTasks(ctx context.Context, userID string) ([]models.Task, error) {
	tasks, err := s.taskRepo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (s *TaskService) CreateTask(ctx context.Context, userID, title, description string) (models.Task, error) {
	if title == "" {
		return models.Task{}, fmt.Errorf("%w: missing task title", ErrInvalidInput)
	}

	task, err := s.taskRepo.Create(ctx, userID, title, description)
	if err != nil {
		return models.Task{}, fmt.Errorf("create task: %w", err)
	}

	s.logger.Debug("task created", "user", userID, "task", task.ID)
	return task, nil
}

func (s *TaskService) UpdateTask(ctx context.Context, userID string, update models.TaskUpdate) (models.Task, error) {
	if update.ID == "" {
		return models.Task{}, fmt.Errorf("%w: missing task id", ErrInvalidInput)
	}
	if update.Title != nil && *update.Title == "" {
		return models.Task{}, fmt.Errorf("%w: task title cannot be empty", ErrInvalidInput)
	}

	task, err := s.taskRepo.Update(ctx, userID, update)
	if err != nil {
		return models.Task{}, fmt.Errorf("update task %s: %w", update.ID, err)
	}

	s.logger.Debug("task updated", "user", userID, "task", task.ID)
	return task, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, userID, id string) error {
	if id == "" {
		return fmt.Errorf("%w: missing task id", ErrInvalidInput)
	}

	if err := s.taskRepo.Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("delete task %s: %w", id, err)
	}

	s.logger.Debug("task deleted", "user", userID, "task", id)
	return nil
}
