package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"todoapp/internal/api"
)

// HTTPAPI calls a running server.
type HTTPAPI struct {
	baseURL    string
	httpClient *http.Client
}

func NewHTTPAPI(baseURL string, timeout time.Duration) *HTTPAPI {
	return &HTTPAPI{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *HTTPAPI) Register(ctx context.Context, req api.RegisterRequest) (*api.AuthResponse, error) {
	var out api.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", "", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPAPI) Login(ctx context.Context, req api.LoginRequest) (*api.AuthResponse, error) {
	var out api.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", "", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPAPI) ListProjects(ctx context.Context, token string, pageNumber, pageSize int) (*api.PagedResult[api.Project], error) {
	q := url.Values{}
	q.Set("pageNumber", strconv.Itoa(pageNumber))
	q.Set("pageSize", strconv.Itoa(pageSize))

	var out api.PagedResult[api.Project]
	if err := c.do(ctx, http.MethodGet, "/api/projects?"+q.Encode(), token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPAPI) GetProject(ctx context.Context, token string, id int64) (*api.Project, error) {
	var out api.Project
	if err := c.do(ctx, http.MethodGet, projectPath(id), token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPAPI) CreateProject(ctx context.Context, token string, req api.ProjectRequest) (*api.Project, error) {
	var out api.Project
	if err := c.do(ctx, http.MethodPost, "/api/projects", token, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPAPI) UpdateProject(ctx context.Context, token string, id int64, req api.ProjectRequest) (*api.Project, error) {
	var out api.Project
	if err := c.do(ctx, http.MethodPut, projectPath(id), token, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPAPI) DeleteProject(ctx context.Context, token string, id int64) error {
	return c.do(ctx, http.MethodDelete, projectPath(id), token, nil, nil)
}

func (c *HTTPAPI) ListProjectTodos(ctx context.Context, token string, projectID int64) ([]api.Todo, error) {
	var out []api.Todo
	if err := c.do(ctx, http.MethodGet, projectPath(projectID)+"/todos", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPAPI) CreateTodo(ctx context.Context, token string, req api.CreateTodoRequest) (*api.Todo, error) {
	var out api.Todo
	if err := c.do(ctx, http.MethodPost, "/api/todos", token, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPAPI) GetTodo(ctx context.Context, token string, id int64) (*api.Todo, error) {
	var out api.Todo
	if err := c.do(ctx, http.MethodGet, todoPath(id), token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPAPI) UpdateTodo(ctx context.Context, token string, id int64, req api.UpdateTodoRequest) (*api.Todo, error) {
	var out api.Todo
	if err := c.do(ctx, http.MethodPut, todoPath(id), token, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPAPI) DeleteTodo(ctx context.Context, token string, id int64) error {
	return c.do(ctx, http.MethodDelete, todoPath(id), token, nil, nil)
}

func (c *HTTPAPI) ToggleTodo(ctx context.Context, token string, id int64) (*api.Todo, error) {
	var out api.Todo
	if err := c.do(ctx, http.MethodPatch, todoPath(id)+"/complete", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPAPI) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var body api.ErrorResponse
	if err := json.Unmarshal(raw, &body); err != nil || body.Error == "" {
		body.Error = strings.TrimSpace(string(raw))
	}
	return &APIError{Status: resp.StatusCode, Message: body.Error}
}

func projectPath(id int64) string { return "/api/projects/" + strconv.FormatInt(id, 10) }
func todoPath(id int64) string    { return "/api/todos/" + strconv.FormatInt(id, 10) }
