package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/TWRT/task-board/internal/auth"
	"github.com/TWRT/task-board/internal/models"
	"github.com/TWRT/task-board/internal/repository"
	"github.com/TWRT/task-board/internal/service"
)

const maxBodyBytes = 1 << 20

type TaskHandler struct {
	taskService *service.TaskService
	sessions    auth.SessionProvider
	logger      *slog.Logger
}

func NewTaskHandler(taskService *service.TaskService, sessions auth.SessionProvider, logger *slog.Logger) *TaskHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskHandler{
		taskService: taskService,
		sessions:    sessions,
		logger:      logger,
	}
}

func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	tasks, err := h.taskService.ListTasks(r.Context(), userID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	body, ok := decodeBody(w, r)
	if !ok {
		return
	}

	title, _ := body["title"].(string)
	if title == "" {
		writeError(w, http.StatusBadRequest, "Missing task title")
		return
	}
	description, _ := body["description"].(string)

	task, err := h.taskService.CreateTask(r.Context(), userID, title, description)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	body, ok := decodeBody(w, r)
	if !ok {
		return
	}

	id, _ := body["id"].(string)
	if id == "" {
		writeError(w, http.StatusBadRequest, "Missing task id")
		return
	}

	update := models.TaskUpdate{ID: id}
	if title, ok := body["title"].(string); ok {
		update.Title = &title
	}
	if description, ok := body["description"].(string); ok {
		update.Description = &description
	}
	if completed, ok := body["completed"].(bool); ok {
		update.Completed = &completed
	}

	task, err := h.taskService.UpdateTask(r.Context(), userID, update)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	body, ok := decodeBody(w, r)
	if !ok {
		return
	}

	id, _ := body["id"].(string)
	if id == "" {
		writeError(w, http.StatusBadRequest, "Missing task id")
		return
	}

	if err := h.taskService.DeleteTask(r.Context(), userID, id); err != nil {
		h.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// currentUser resolves the caller's user id, answering 401 when there is
// no valid session. Every route keys tasks by User.ID.
func (h *TaskHandler) currentUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	if !h.sessions.IsAuthenticated(r) {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return "", false
	}

	user, err := h.sessions.GetUser(r)
	if err != nil || user == nil || user.ID == "" {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return "", false
	}
	return user.ID, true
}

// decodeBody reads a JSON object body of at most maxBodyBytes. Field types
// are checked by the caller.
func decodeBody(w http.ResponseWriter, r *http.Request) (map[string]any, bool) {
	defer r.Body.Close()

	var body map[string]any
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&body); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return nil, false
		}
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return nil, false
	}
	if body == nil {
		body = map[string]any{}
	}
	return body, true
}

func (h *TaskHandler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, repository.ErrTaskNotFound):
		writeError(w, http.StatusNotFound, "Task not found")
	default:
		h.logger.Error("task request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
