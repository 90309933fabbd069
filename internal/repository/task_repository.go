package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/TWRT/task-board/internal/models"
)

// SQLiteTaskRepository persists tasks in the database opened by InitDB.
// Insertion order is kept through the autoincrement seq column.
type SQLiteTaskRepository struct {
	db    *sql.DB
	newID IDGenerator
}

func NewSQLiteTaskRepository(db *sql.DB) *SQLiteTaskRepository {
	return &SQLiteTaskRepository{db: db, newID: NewTaskID}
}

func (r *SQLiteTaskRepository) List(ctx context.Context, userID string) ([]models.Task, error) {
	query := `
		SELECT id, title, description, completed FROM tasks
		WHERE user_id = ?
		ORDER BY seq
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Completed); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	return tasks, nil
}

func (r *SQLiteTaskRepository) Create(ctx context.Context, userID, title, description string) (models.Task, error) {
	task := models.Task{
		ID:          r.newID(),
		Title:       title,
		Description: description,
	}

	query := `
		INSERT INTO tasks (id, user_id, title, description, completed)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		task.ID,
		userID,
		task.Title,
		task.Description,
		task.Completed,
	)
	if err != nil {
		return models.Task{}, fmt.Errorf("create task: %w", err)
	}

	return task, nil
}

func (r *SQLiteTaskRepository) Update(ctx context.Context, userID string, update models.TaskUpdate) (models.Task, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Task{}, fmt.Errorf("begin update: %w", err)
	}
	defer tx.Rollback()

	var task models.Task
	err = tx.QueryRowContext(ctx,
		`SELECT id, title, description, completed FROM tasks WHERE user_id = ? AND id = ?`,
		userID, update.ID,
	).Scan(&task.ID, &task.Title, &task.Description, &task.Completed)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Task{}, ErrTaskNotFound
	}
	if err != nil {
		return models.Task{}, fmt.Errorf("get task: %w", err)
	}

	update.Apply(&task)

	_, err = tx.ExecContext(ctx,
		`UPDATE tasks SET title = ?, description = ?, completed = ? WHERE user_id = ? AND id = ?`,
		task.Title, task.Description, task.Completed, userID, task.ID,
	)
	if err != nil {
		return models.Task{}, fmt.Errorf("update task: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.Task{}, fmt.Errorf("commit update: %w", err)
	}
	return task, nil
}

func (r *SQLiteTaskRepository) Delete(ctx context.Context, userID, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if affected == 0 {
		return ErrTaskNotFound
	}
	return nil
}
