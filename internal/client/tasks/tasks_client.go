package tasks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/TWRT/task-board/internal/client"
	"github.com/TWRT/task-board/internal/models"
)

type Client struct {
	baseUrl    string
	token      string
	httpClient *http.Client
}

func NewClient(baseUrl, token string) *Client {
	return &Client{
		baseUrl:    baseUrl,
		token:      token,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type errorBody struct {
	Error string `json:"error"`
}

type deleteTaskRequest struct {
	ID string `json:"id"`
}

type createTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (c *Client) ListTasks(ctx context.Context) ([]models.Task, error) {
	var tasks []models.Task
	if err := c.do(ctx, http.MethodGet, nil, http.StatusOK, &tasks); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	return tasks, nil
}

func (c *Client) CreateTask(ctx context.Context, title, description string) (*models.Task, error) {
	var task models.Task
	reqBody := createTaskRequest{Title: title, Description: description}
	if err := c.do(ctx, http.MethodPost, reqBody, http.StatusCreated, &task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return &task, nil
}

func (c *Client) UpdateTask(ctx context.Context, update models.TaskUpdate) (*models.Task, error) {
	var task models.Task
	if err := c.do(ctx, http.MethodPatch, update, http.StatusOK, &task); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return &task, nil
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, deleteTaskRequest{ID: id}, http.StatusNoContent, nil); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

// do sends one request to /api/tasks and decodes the response into out
// when the status matches want.
func (c *Client) do(ctx context.Context, method string, payload any, want int, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseUrl+"/api/tasks", body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode != want {
		apiErr := &client.APIError{StatusCode: resp.StatusCode}
		var eb errorBody
		if json.Unmarshal(respBody, &eb) == nil {
			apiErr.Message = eb.Error
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}

var _ client.TaskClient = (*Client)(nil)
