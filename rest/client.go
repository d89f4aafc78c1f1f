// Package rest implements the dayforge.TaskAPI against the todo/schedule
// backend over HTTP.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dayforge/dayforge"
)

type Client struct {
	baseURL    string
	tokens     dayforge.TokenProvider
	httpClient *http.Client
	l          dayforge.Logger
}

var _ dayforge.TaskAPI = (*Client)(nil)

// NewClient builds a client for baseURL. Requests carry a bearer token from
// tokens when one is obtainable; no client-side timeout is set, callers bound
// requests through ctx.
func NewClient(baseURL string, tokens dayforge.TokenProvider, l dayforge.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		tokens:     tokens,
		httpClient: &http.Client{},
		l:          l,
	}
}

func (c *Client) ListTasks(ctx context.Context) ([]dayforge.Task, error) {
	var tasks []dayforge.Task
	if err := c.do(ctx, "list tasks", http.MethodGet, "/todos", nil, &tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []dayforge.Task{}
	}
	return tasks, nil
}

func (c *Client) CreateTask(ctx context.Context, text string, priority dayforge.TaskPriority) (dayforge.Task, error) {
	const op = "create task"
	if strings.TrimSpace(text) == "" {
		return dayforge.Task{}, dayforge.Errorf(dayforge.KindValidation, op, "empty task text")
	}
	if !priority.Valid() {
		return dayforge.Task{}, dayforge.Errorf(dayforge.KindValidation, op, "invalid priority %q", priority)
	}

	body := dayforge.Task{
		Text:      text,
		Priority:  priority,
		Completed: false,
	}
	var created dayforge.Task
	if err := c.do(ctx, op, http.MethodPost, "/todos", body, &created); err != nil {
		return dayforge.Task{}, err
	}
	return created, nil
}

func (c *Client) UpdateTask(ctx context.Context, id string, patch dayforge.TaskPatch) (dayforge.Task, error) {
	const op = "update task"
	if id == "" {
		return dayforge.Task{}, dayforge.Errorf(dayforge.KindValidation, op, "missing task id")
	}

	var updated dayforge.Task
	if err := c.do(ctx, op, http.MethodPut, "/todos/"+id, patch, &updated); err != nil {
		return dayforge.Task{}, err
	}
	return updated, nil
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	const op = "delete task"
	if id == "" {
		return dayforge.Errorf(dayforge.KindValidation, op, "missing task id")
	}
	return c.do(ctx, op, http.MethodDelete, "/todos/"+id, nil, nil)
}

type scheduleRequest struct {
	Todos  []dayforge.Task        `json:"todos"`
	Habits dayforge.HabitsProfile `json:"habits"`
}

func (c *Client) GenerateSchedule(ctx context.Context, tasks []dayforge.Task, habits dayforge.HabitsProfile) ([]dayforge.ScheduleItem, error) {
	const op = "generate schedule"
	if len(tasks) == 0 {
		return nil, dayforge.Errorf(dayforge.KindValidation, op, "no tasks to schedule")
	}

	var items []dayforge.ScheduleItem
	req := scheduleRequest{
		Todos:  tasks,
		Habits: habits,
	}
	if err := c.do(ctx, op, http.MethodPost, "/schedule", req, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []dayforge.ScheduleItem{}
	}
	return items, nil
}

// do runs one request and decodes the response into out (skipped when out is
// nil or the body is empty). Failures are logged and returned unchanged.
func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return c.fail(dayforge.NewError(dayforge.KindUnknown, op, fmt.Errorf("marshal request: %w", err)))
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return c.fail(dayforge.NewError(dayforge.KindUnknown, op, fmt.Errorf("build request: %w", err)))
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	// Attempt token, proceed regardless: the backend is the authority on
	// authorization, a missing header just fails server-side.
	token, err := c.tokens.AcquireToken(ctx)
	if err != nil {
		c.l.Warn("proceeding without token", "op", op, "error", err)
	} else if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.fail(dayforge.NewError(dayforge.KindNetwork, op, err))
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.fail(statusError(op, resp))
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.fail(dayforge.NewError(dayforge.KindNetwork, op, fmt.Errorf("read response: %w", err)))
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return c.fail(dayforge.NewError(dayforge.KindBackend, op, fmt.Errorf("parse response: %w", err)))
	}
	return nil
}

func statusError(op string, resp *http.Response) *dayforge.Error {
	kind := dayforge.KindBackend
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		kind = dayforge.KindAuthFailure
	}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	var backendErr struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &backendErr); err == nil {
		msg := backendErr.Error
		if msg == "" {
			msg = backendErr.Message
		}
		if msg != "" {
			return dayforge.Errorf(kind, op, "status %d: %s", resp.StatusCode, msg)
		}
	}
	return dayforge.Errorf(kind, op, "status %d", resp.StatusCode)
}

func (c *Client) fail(err *dayforge.Error) error {
	c.l.Error("api call failed", "op", err.Op, "kind", err.Kind.String(), "error", err.Err)
	return err
}
