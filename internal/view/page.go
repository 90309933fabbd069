// Package view holds the client-side state of the task list: the loaded
// tasks, the draft being typed and the task being edited. Every mutation
// goes straight to the API and is followed by a full reload.
package view

import (
	"context"
	"errors"
	"strings"

	"github.com/TWRT/task-board/internal/client"
	"github.com/TWRT/task-board/internal/models"
)

// Alerter shows a blocking message to the user.
type Alerter interface {
	Alert(message string)
}

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(message string) bool
}

type Page struct {
	client  client.TaskClient
	alerts  Alerter
	confirm Confirmer

	Tasks       []models.Task
	Title       string
	Description string
	Editing     *models.Task
	Loading     bool
}

func NewPage(taskClient client.TaskClient, alerts Alerter, confirm Confirmer) *Page {
	return &Page{
		client:  taskClient,
		alerts:  alerts,
		confirm: confirm,
		Tasks:   []models.Task{},
	}
}

// Load replaces the task list with the server's copy.
func (p *Page) Load(ctx context.Context) {
	p.Loading = true
	defer func() { p.Loading = false }()
	p.fetch(ctx)
}

func (p *Page) fetch(ctx context.Context) {
	tasks, err := p.client.ListTasks(ctx)
	if err != nil {
		p.alerts.Alert("Failed to fetch tasks.")
		return
	}
	p.Tasks = tasks
}

// Submit creates a task from the draft, or updates the task being edited.
func (p *Page) Submit(ctx context.Context) {
	if strings.TrimSpace(p.Title) == "" {
		p.alerts.Alert("Title is required")
		return
	}

	p.Loading = true
	defer func() { p.Loading = false }()

	var err error
	failure := "Failed to add task"
	if p.Editing != nil {
		failure = "Failed to update task"
		title, description := p.Title, p.Description
		_, err = p.client.UpdateTask(ctx, models.TaskUpdate{
			ID:          p.Editing.ID,
			Title:       &title,
			Description: &description,
		})
	} else {
		_, err = p.client.CreateTask(ctx, p.Title, p.Description)
	}
	if err != nil {
		p.alertFor(err, failure, "Error saving task")
		return
	}

	p.fetch(ctx)
	p.resetDraft()
}

func (p *Page) StartEdit(task models.Task) {
	p.Editing = &task
	p.Title = task.Title
	p.Description = task.Description
}

func (p *Page) CancelEdit() {
	p.resetDraft()
}

func (p *Page) ToggleComplete(ctx context.Context, task models.Task) {
	p.Loading = true
	defer func() { p.Loading = false }()

	completed := !task.Completed
	_, err := p.client.UpdateTask(ctx, models.TaskUpdate{ID: task.ID, Completed: &completed})
	if err != nil {
		p.alertFor(err, "Failed to update task", "Error updating task")
		return
	}
	p.fetch(ctx)
}

// Delete removes a task after the user confirms.
func (p *Page) Delete(ctx context.Context, id string) {
	if p.confirm != nil && !p.confirm.Confirm("Are you sure to delete this task?") {
		return
	}

	p.Loading = true
	defer func() { p.Loading = false }()

	if err := p.client.DeleteTask(ctx, id); err != nil {
		p.alertFor(err, "Failed to delete task", "Error deleting task")
		return
	}
	p.fetch(ctx)
}

// Find returns the loaded task with the given id.
func (p *Page) Find(id string) (models.Task, bool) {
	for _, t := range p.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return models.Task{}, false
}

func (p *Page) resetDraft() {
	p.Editing = nil
	p.Title = ""
	p.Description = ""
}

// alertFor picks the message for a rejected request or a transport failure.
func (p *Page) alertFor(err error, rejected, failed string) {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		p.alerts.Alert(rejected)
		return
	}
	p.alerts.Alert(failed)
}
