package client

import (
	"context"
	"errors"
	"net/http"
	"time"

	"todoapp/internal/api"
	"todoapp/internal/domain"
	"todoapp/internal/repository"
	"todoapp/internal/service"

	"golang.org/x/crypto/bcrypt"
)

// mock tokens are only ever checked by another MockAPI
const mockSigningKey = "todoapp-mock-signing-key"

// MockAPI runs the real services over an in-memory store seeded with the demo
// data. Every call waits for latency first.
type MockAPI struct {
	auth     *service.AuthService
	projects *service.ProjectService
	todos    *service.TodoService
	tokens   *service.TokenService
	latency  time.Duration
}

func NewMockAPI(latency time.Duration) (*MockAPI, error) {
	store := repository.NewMemoryStore()

	tokens, err := service.NewTokenService(mockSigningKey, "TodoApp", "TodoApp", 7*24*time.Hour)
	if err != nil {
		return nil, err
	}
	if _, err := service.NewSeeder(store, bcrypt.MinCost).Run(context.Background()); err != nil {
		return nil, err
	}

	return &MockAPI{
		auth:     service.NewAuthService(store.Users(), tokens, bcrypt.MinCost),
		projects: service.NewProjectService(store.Projects(), store.Todos(), service.DefaultMaxPageSize),
		todos:    service.NewTodoService(store.Todos()),
		tokens:   tokens,
		latency:  latency,
	}, nil
}

func (m *MockAPI) Register(ctx context.Context, req api.RegisterRequest) (*api.AuthResponse, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	res, err := m.auth.Register(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		return nil, fromDomain(err)
	}
	return &api.AuthResponse{Token: res.Token, UserID: res.UserID, Username: res.Username}, nil
}

func (m *MockAPI) Login(ctx context.Context, req api.LoginRequest) (*api.AuthResponse, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	res, err := m.auth.Login(ctx, req.Username, req.Password)
	if errors.Is(err, domain.ErrUnauthorized) {
		return nil, &APIError{Status: http.StatusUnauthorized, Message: "invalid username or password"}
	}
	if err != nil {
		return nil, fromDomain(err)
	}
	return &api.AuthResponse{Token: res.Token, UserID: res.UserID, Username: res.Username}, nil
}

func (m *MockAPI) ListProjects(ctx context.Context, token string, pageNumber, pageSize int) (*api.PagedResult[api.Project], error) {
	userID, err := m.identify(ctx, token)
	if err != nil {
		return nil, err
	}
	page, err := m.projects.List(ctx, userID, pageNumber, pageSize)
	if err != nil {
		return nil, fromDomain(err)
	}
	res := api.FromProjectPage(page)
	return &res, nil
}

func (m *MockAPI) GetProject(ctx context.Context, token string, id int64) (*api.Project, error) {
	userID, err := m.identify(ctx, token)
	if err != nil {
		return nil, err
	}
	p, err := m.projects.Get(ctx, userID, id)
	if err != nil {
		return nil, fromDomain(err)
	}
	res := api.FromProject(*p)
	return &res, nil
}

func (m *MockAPI) CreateProject(ctx context.Context, token string, req api.ProjectRequest) (*api.Project, error) {
	userID, err := m.identify(ctx, token)
	if err != nil {
		return nil, err
	}
	p, err := m.projects.Create(ctx, userID, req.Name, req.Description)
	if err != nil {
		return nil, fromDomain(err)
	}
	res := api.FromProject(*p)
	return &res, nil
}

func (m *MockAPI) UpdateProject(ctx context.Context, token string, id int64, req api.ProjectRequest) (*api.Project, error) {
	userID, err := m.identify(ctx, token)
	if err != nil {
		return nil, err
	}
	p, err := m.projects.Update(ctx, userID, id, req.Name, req.Description)
	if err != nil {
		return nil, fromDomain(err)
	}
	res := api.FromProject(*p)
	return &res, nil
}

func (m *MockAPI) DeleteProject(ctx context.Context, token string, id int64) error {
	userID, err := m.identify(ctx, token)
	if err != nil {
		return err
	}
	return fromDomain(m.projects.Delete(ctx, userID, id))
}

func (m *MockAPI) ListProjectTodos(ctx context.Context, token string, projectID int64) ([]api.Todo, error) {
	userID, err := m.identify(ctx, token)
	if err != nil {
		return nil, err
	}
	todos, err := m.projects.ListTodos(ctx, userID, projectID)
	if err != nil {
		return nil, fromDomain(err)
	}
	return api.FromTodos(todos), nil
}

func (m *MockAPI) CreateTodo(ctx context.Context, token string, req api.CreateTodoRequest) (*api.Todo, error) {
	userID, err := m.identify(ctx, token)
	if err != nil {
		return nil, err
	}
	t, err := m.todos.Create(ctx, userID, req.ProjectID, req.Title, req.Description)
	if err != nil {
		return nil, fromDomain(err)
	}
	res := api.FromTodo(*t)
	return &res, nil
}

func (m *MockAPI) GetTodo(ctx context.Context, token string, id int64) (*api.Todo, error) {
	userID, err := m.identify(ctx, token)
	if err != nil {
		return nil, err
	}
	t, err := m.todos.Get(ctx, userID, id)
	if err != nil {
		return nil, fromDomain(err)
	}
	res := api.FromTodo(*t)
	return &res, nil
}

func (m *MockAPI) UpdateTodo(ctx context.Context, token string, id int64, req api.UpdateTodoRequest) (*api.Todo, error) {
	userID, err := m.identify(ctx, token)
	if err != nil {
		return nil, err
	}
	t, err := m.todos.Update(ctx, userID, id, req.Title, req.Description)
	if err != nil {
		return nil, fromDomain(err)
	}
	res := api.FromTodo(*t)
	return &res, nil
}

func (m *MockAPI) DeleteTodo(ctx context.Context, token string, id int64) error {
	userID, err := m.identify(ctx, token)
	if err != nil {
		return err
	}
	return fromDomain(m.todos.Delete(ctx, userID, id))
}

func (m *MockAPI) ToggleTodo(ctx context.Context, token string, id int64) (*api.Todo, error) {
	userID, err := m.identify(ctx, token)
	if err != nil {
		return nil, err
	}
	t, err := m.todos.Toggle(ctx, userID, id)
	if err != nil {
		return nil, fromDomain(err)
	}
	res := api.FromTodo(*t)
	return &res, nil
}

// identify waits, then resolves the caller the same way the JWT middleware does.
func (m *MockAPI) identify(ctx context.Context, token string) (int64, error) {
	if err := m.wait(ctx); err != nil {
		return 0, err
	}
	claims, err := m.tokens.Parse(token)
	if err != nil {
		return 0, fromDomain(err)
	}
	return claims.UserID, nil
}

func (m *MockAPI) wait(ctx context.Context) error {
	if m.latency <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(m.latency)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
