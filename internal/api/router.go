package api

import (
	"log/slog"
	"net/http"

	"github.com/TWRT/task-board/internal/api/handlers"
	"github.com/TWRT/task-board/internal/auth"
	"github.com/TWRT/task-board/internal/repository"
	"github.com/TWRT/task-board/internal/service"
)

func SetupRouter(taskRepo repository.TaskRepository, sessions auth.SessionProvider, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	mux := http.NewServeMux()

	taskService := service.NewTaskService(taskRepo, logger)
	taskHandler := handlers.NewTaskHandler(taskService, sessions, logger)

	mux.HandleFunc("GET /api/tasks", taskHandler.ListTasks)
	mux.HandleFunc("POST /api/tasks", taskHandler.CreateTask)
	mux.HandleFunc("PATCH /api/tasks", taskHandler.UpdateTask)
	mux.HandleFunc("DELETE /api/tasks", taskHandler.DeleteTask)

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	return logRequests(logger, mux)
}
