package repository_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/TWRT/task-board/internal/models"
	"github.com/TWRT/task-board/internal/repository"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

// testTaskRepository runs the behavior every TaskRepository must share.
func testTaskRepository(t *testing.T, newRepo func(t *testing.T) repository.TaskRepository) {
	ctx := context.Background()

	t.Run("list unknown user is empty", func(t *testing.T) {
		repo := newRepo(t)
		tasks, err := repo.List(ctx, "nobody")
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if tasks == nil || len(tasks) != 0 {
			t.Errorf("expected empty non-nil slice, got %#v", tasks)
		}
	})

	t.Run("create appends in order", func(t *testing.T) {
		repo := newRepo(t)
		first, err := repo.Create(ctx, "alice", "Buy milk", "2 litres")
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if first.ID == "" {
			t.Error("expected generated id")
		}
		if first.Title != "Buy milk" || first.Description != "2 litres" || first.Completed {
			t.Errorf("unexpected task %+v", first)
		}
		second, err := repo.Create(ctx, "alice", "Walk dog", "")
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if second.ID == first.ID {
			t.Errorf("ids collide: %s", first.ID)
		}

		tasks, err := repo.List(ctx, "alice")
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(tasks) != 2 || tasks[0].ID != first.ID || tasks[1].ID != second.ID {
			t.Errorf("unexpected list %+v", tasks)
		}
	})

	t.Run("update keeps unsupplied fields", func(t *testing.T) {
		repo := newRepo(t)
		task, _ := repo.Create(ctx, "alice", "Buy milk", "2 litres")

		updated, err := repo.Update(ctx, "alice", models.TaskUpdate{ID: task.ID, Completed: boolPtr(true)})
		if err != nil {
			t.Fatalf("Update: %v", err)
		}
		want := models.Task{ID: task.ID, Title: "Buy milk", Description: "2 litres", Completed: true}
		if updated != want {
			t.Errorf("got %+v, want %+v", updated, want)
		}

		updated, err = repo.Update(ctx, "alice", models.TaskUpdate{ID: task.ID, Description: strPtr("")})
		if err != nil {
			t.Fatalf("Update: %v", err)
		}
		want.Description = ""
		if updated != want {
			t.Errorf("got %+v, want %+v", updated, want)
		}

		tasks, _ := repo.List(ctx, "alice")
		if len(tasks) != 1 || tasks[0] != want {
			t.Errorf("stored task not updated: %+v", tasks)
		}
	})

	t.Run("update unknown id", func(t *testing.T) {
		repo := newRepo(t)
		repo.Create(ctx, "alice", "Buy milk", "")
		_, err := repo.Update(ctx, "alice", models.TaskUpdate{ID: "missing", Title: strPtr("x")})
		if !errors.Is(err, repository.ErrTaskNotFound) {
			t.Errorf("expected ErrTaskNotFound, got %v", err)
		}
		_, err = repo.Update(ctx, "bob", models.TaskUpdate{ID: "missing"})
		if !errors.Is(err, repository.ErrTaskNotFound) {
			t.Errorf("expected ErrTaskNotFound for user without tasks, got %v", err)
		}
	})

	t.Run("delete", func(t *testing.T) {
		repo := newRepo(t)
		a, _ := repo.Create(ctx, "alice", "a", "")
		b, _ := repo.Create(ctx, "alice", "b", "")
		c, _ := repo.Create(ctx, "alice", "c", "")

		if err := repo.Delete(ctx, "alice", b.ID); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		tasks, _ := repo.List(ctx, "alice")
		if len(tasks) != 2 || tasks[0].ID != a.ID || tasks[1].ID != c.ID {
			t.Errorf("unexpected list after delete %+v", tasks)
		}

		if err := repo.Delete(ctx, "alice", b.ID); !errors.Is(err, repository.ErrTaskNotFound) {
			t.Errorf("expected ErrTaskNotFound on second delete, got %v", err)
		}
		tasks, _ = repo.List(ctx, "alice")
		if len(tasks) != 2 {
			t.Errorf("failed delete changed length to %d", len(tasks))
		}
	})

	t.Run("users are isolated", func(t *testing.T) {
		repo := newRepo(t)
		task, _ := repo.Create(ctx, "alice", "secret", "")

		tasks, _ := repo.List(ctx, "bob")
		if len(tasks) != 0 {
			t.Errorf("bob sees alice's tasks: %+v", tasks)
		}
		if _, err := repo.Update(ctx, "bob", models.TaskUpdate{ID: task.ID, Title: strPtr("mine")}); !errors.Is(err, repository.ErrTaskNotFound) {
			t.Errorf("bob updated alice's task: %v", err)
		}
		if err := repo.Delete(ctx, "bob", task.ID); !errors.Is(err, repository.ErrTaskNotFound) {
			t.Errorf("bob deleted alice's task: %v", err)
		}

		tasks, _ = repo.List(ctx, "alice")
		if len(tasks) != 1 || tasks[0].Title != "secret" {
			t.Errorf("alice's task changed: %+v", tasks)
		}
	})

	t.Run("list returns a copy", func(t *testing.T) {
		repo := newRepo(t)
		repo.Create(ctx, "alice", "original", "")
		tasks, _ := repo.List(ctx, "alice")
		tasks[0].Title = "changed"

		tasks, _ = repo.List(ctx, "alice")
		if tasks[0].Title != "original" {
			t.Errorf("list result aliases stored state: %+v", tasks)
		}
	})

	t.Run("many creates", func(t *testing.T) {
		repo := newRepo(t)
		for i := 0; i < 20; i++ {
			if _, err := repo.Create(ctx, "alice", fmt.Sprintf("task %d", i), ""); err != nil {
				t.Fatalf("Create %d: %v", i, err)
			}
		}
		tasks, _ := repo.List(ctx, "alice")
		if len(tasks) != 20 {
			t.Fatalf("expected 20 tasks, got %d", len(tasks))
		}
		seen := make(map[string]bool)
		for i, task := range tasks {
			if task.Title != fmt.Sprintf("task %d", i) {
				t.Errorf("task %d out of order: %q", i, task.Title)
			}
			if seen[task.ID] {
				t.Errorf("duplicate id %s", task.ID)
			}
			seen[task.ID] = true
		}
	})
}

// testConcurrentMutations races updates and deletes on one user's tasks
// against creates for another user. No update may be lost.
func testConcurrentMutations(t *testing.T, repo repository.TaskRepository) {
	ctx := context.Background()

	var created []models.Task
	for i := 0; i < 50; i++ {
		task, err := repo.Create(ctx, "alice", fmt.Sprintf("task %d", i), "")
		if err != nil {
			t.Fatalf("Create %d: %v", i, err)
		}
		created = append(created, task)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 2*len(created))
	for i, task := range created {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				errs <- repo.Delete(ctx, "alice", task.ID)
				return
			}
			_, err := repo.Update(ctx, "alice", models.TaskUpdate{ID: task.ID, Completed: boolPtr(true)})
			errs <- err
		}()
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Create(ctx, "bob", "other", "")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Errorf("concurrent mutation: %v", err)
		}
	}

	tasks, _ := repo.List(ctx, "alice")
	if len(tasks) != 25 {
		t.Fatalf("expected 25 remaining tasks, got %d", len(tasks))
	}
	for _, task := range tasks {
		if !task.Completed {
			t.Errorf("lost update on %s", task.ID)
		}
	}

	bobTasks, _ := repo.List(ctx, "bob")
	if len(bobTasks) != 50 {
		t.Errorf("expected 50 tasks for bob, got %d", len(bobTasks))
	}
}
