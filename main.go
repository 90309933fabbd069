package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/TWRT/task-board/internal/api"
	"github.com/TWRT/task-board/internal/auth"
	"github.com/TWRT/task-board/internal/config"
	"github.com/TWRT/task-board/internal/repository"
)

const shutdownTimeout = 5 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid config", "error", err)
		os.Exit(1)
	}

	var taskRepo repository.TaskRepository
	switch cfg.Store {
	case config.StoreSQLite:
		db, err := repository.InitDB(cfg.DBPath)
		if err != nil {
			logger.Error("init database", "path", cfg.DBPath, "error", err)
			os.Exit(1)
		}
		defer db.Close()
		taskRepo = repository.NewSQLiteTaskRepository(db)
		logger.Info("using sqlite task store", "path", cfg.DBPath)
	default:
		taskRepo = repository.NewMemoryTaskRepository()
		logger.Info("using in-memory task store")
	}

	sessions := auth.NewJWTProvider([]byte(cfg.AuthSecret))
	router := api.SetupRouter(taskRepo, sessions, logger)

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		logger.Error("listen", "addr", cfg.Addr, "error", err)
		os.Exit(1)
	}

	logger.Info("server listening", "addr", ln.Addr().String())
	if err := serve(ctx, server, ln); err != nil {
		logger.Error("serve", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}

// serve runs server on ln until ctx is done, then waits for in-flight
// requests to finish, for at most shutdownTimeout.
func serve(ctx context.Context, server *http.Server, ln net.Listener) error {
	done := make(chan error, 1)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		done <- server.Shutdown(shutdownCtx)
	}()

	if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	if err := <-done; err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
