package repository

import (
	"context"
	"slices"
	"sync"

	"github.com/TWRT/task-board/internal/models"
)

type userTasks struct {
	mu    sync.Mutex
	tasks []models.Task
}

// MemoryTaskRepository keeps tasks in process memory. Everything is lost
// when the process exits.
type MemoryTaskRepository struct {
	mu    sync.RWMutex
	users map[string]*userTasks
	newID IDGenerator
}

type MemoryOption func(*MemoryTaskRepository)

func WithIDGenerator(gen IDGenerator) MemoryOption {
	return func(r *MemoryTaskRepository) {
		r.newID = gen
	}
}

func NewMemoryTaskRepository(opts ...MemoryOption) *MemoryTaskRepository {
	r := &MemoryTaskRepository{
		users: make(map[string]*userTasks),
		newID: NewTaskID,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// lookup returns the user's sequence, or nil if the user never created a task.
func (r *MemoryTaskRepository) lookup(userID string) *userTasks {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.users[userID]
}

func (r *MemoryTaskRepository) lookupOrCreate(userID string) *userTasks {
	if ut := r.lookup(userID); ut != nil {
		return ut
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	ut, ok := r.users[userID]
	if !ok {
		ut = &userTasks{}
		r.users[userID] = ut
	}
	return ut
}

func (r *MemoryTaskRepository) List(ctx context.Context, userID string) ([]models.Task, error) {
	ut := r.lookup(userID)
	if ut == nil {
		return []models.Task{}, nil
	}
	ut.mu.Lock()
	defer ut.mu.Unlock()
	tasks := make([]models.Task, len(ut.tasks))
	copy(tasks, ut.tasks)
	return tasks, nil
}

func (r *MemoryTaskRepository) Create(ctx context.Context, userID, title, description string) (models.Task, error) {
	task := models.Task{
		ID:          r.newID(),
		Title:       title,
		Description: description,
		Completed:   false,
	}

	ut := r.lookupOrCreate(userID)
	ut.mu.Lock()
	defer ut.mu.Unlock()
	ut.tasks = append(ut.tasks, task)
	return task, nil
}

func (r *MemoryTaskRepository) Update(ctx context.Context, userID string, update models.TaskUpdate) (models.Task, error) {
	ut := r.lookup(userID)
	if ut == nil {
		return models.Task{}, ErrTaskNotFound
	}
	ut.mu.Lock()
	defer ut.mu.Unlock()

	i := indexOf(ut.tasks, update.ID)
	if i < 0 {
		return models.Task{}, ErrTaskNotFound
	}
	update.Apply(&ut.tasks[i])
	return ut.tasks[i], nil
}

func (r *MemoryTaskRepository) Delete(ctx context.Context, userID, id string) error {
	ut := r.lookup(userID)
	if ut == nil {
		return ErrTaskNotFound
	}
	ut.mu.Lock()
	defer ut.mu.Unlock()

	i := indexOf(ut.tasks, id)
	if i < 0 {
		return ErrTaskNotFound
	}
	ut.tasks = slices.Delete(ut.tasks, i, i+1)
	return nil
}

func indexOf(tasks []models.Task, id string) int {
	return slices.IndexFunc(tasks, func(t models.Task) bool {
		return t.ID == id
	})
}
