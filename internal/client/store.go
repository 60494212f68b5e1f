package client

import (
	"context"
	"errors"
	"slices"
	"sync"

	"todoapp/internal/api"
	"todoapp/internal/domain"
)

// Store mirrors the server state the CLI shows and wraps every API call in an
// action that updates the mirror after a successful write.
type Store struct {
	api      API
	sessions SessionStore

	mu       sync.Mutex
	token    string
	user     *User
	projects api.PagedResult[api.Project]
	current  *api.Project
	todos    []api.Todo
}

func NewStore(a API, sessions SessionStore) *Store {
	return &Store{api: a, sessions: sessions}
}

// Restore reattaches a saved session, if any.
func (s *Store) Restore() error {
	sess, err := s.sessions.Load()
	if err != nil || sess == nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = sess.Token
	u := sess.User
	s.user = &u
	return nil
}

func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token != ""
}

func (s *Store) User() (User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return User{}, false
	}
	return *s.user, true
}

func (s *Store) Register(ctx context.Context, username, email, password string) (User, error) {
	res, err := s.api.Register(ctx, api.RegisterRequest{Username: username, Email: email, Password: password})
	if err != nil {
		return User{}, err
	}
	return s.startSession(res)
}

func (s *Store) Login(ctx context.Context, username, password string) (User, error) {
	res, err := s.api.Login(ctx, api.LoginRequest{Username: username, Password: password})
	if err != nil {
		return User{}, err
	}
	return s.startSession(res)
}

// Logout forgets the token, the mirrored data and the saved session.
func (s *Store) Logout() error {
	s.reset()
	return s.sessions.Clear()
}

func (s *Store) LoadProjects(ctx context.Context, pageNumber, pageSize int) (api.PagedResult[api.Project], error) {
	page, err := s.api.ListProjects(ctx, s.bearer(), pageNumber, pageSize)
	if err != nil {
		return api.PagedResult[api.Project]{}, s.check(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects = *page
	return s.projectsLocked(), nil
}

// LoadProject makes id the current project and loads its todos.
func (s *Store) LoadProject(ctx context.Context, id int64) (api.Project, []api.Todo, error) {
	p, err := s.api.GetProject(ctx, s.bearer(), id)
	if err != nil {
		return api.Project{}, nil, s.check(err)
	}
	todos, err := s.api.ListProjectTodos(ctx, s.bearer(), id)
	if err != nil {
		return api.Project{}, nil, s.check(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = p
	s.todos = todos
	return *p, slices.Clone(todos), nil
}

func (s *Store) CreateProject(ctx context.Context, name string, description *string) (api.Project, error) {
	p, err := s.api.CreateProject(ctx, s.bearer(), api.ProjectRequest{Name: name, Description: description})
	if err != nil {
		return api.Project{}, s.check(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects.Items = append([]api.Project{*p}, s.projects.Items...)
	s.projects.TotalCount++
	return *p, nil
}

func (s *Store) UpdateProject(ctx context.Context, id int64, name string, description *string) (api.Project, error) {
	p, err := s.api.UpdateProject(ctx, s.bearer(), id, api.ProjectRequest{Name: name, Description: description})
	if err != nil {
		return api.Project{}, s.check(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if i := slices.IndexFunc(s.projects.Items, func(x api.Project) bool { return x.ID == id }); i >= 0 {
		s.projects.Items[i] = *p
	}
	if s.current != nil && s.current.ID == id {
		s.current = p
	}
	return *p, nil
}

func (s *Store) DeleteProject(ctx context.Context, id int64) error {
	if err := s.api.DeleteProject(ctx, s.bearer(), id); err != nil {
		return s.check(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	before := len(s.projects.Items)
	s.projects.Items = slices.DeleteFunc(s.projects.Items, func(x api.Project) bool { return x.ID == id })
	if len(s.projects.Items) < before {
		s.projects.TotalCount--
	}
	if s.current != nil && s.current.ID == id {
		s.current = nil
		s.todos = nil
	}
	return nil
}

func (s *Store) CreateTodo(ctx context.Context, projectID int64, title string, description *string) (api.Todo, error) {
	t, err := s.api.CreateTodo(ctx, s.bearer(), api.CreateTodoRequest{Title: title, Description: description, ProjectID: projectID})
	if err != nil {
		return api.Todo{}, s.check(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil && s.current.ID == projectID {
		s.todos = append([]api.Todo{*t}, s.todos...)
	}
	return *t, nil
}

func (s *Store) GetTodo(ctx context.Context, id int64) (api.Todo, error) {
	t, err := s.api.GetTodo(ctx, s.bearer(), id)
	if err != nil {
		return api.Todo{}, s.check(err)
	}
	return *t, nil
}

func (s *Store) UpdateTodo(ctx context.Context, id int64, title string, description *string) (api.Todo, error) {
	t, err := s.api.UpdateTodo(ctx, s.bearer(), id, api.UpdateTodoRequest{Title: title, Description: description})
	if err != nil {
		return api.Todo{}, s.check(err)
	}
	s.replaceTodo(*t)
	return *t, nil
}

func (s *Store) ToggleTodo(ctx context.Context, id int64) (api.Todo, error) {
	t, err := s.api.ToggleTodo(ctx, s.bearer(), id)
	if err != nil {
		return api.Todo{}, s.check(err)
	}
	s.replaceTodo(*t)
	return *t, nil
}

func (s *Store) DeleteTodo(ctx context.Context, id int64) error {
	if err := s.api.DeleteTodo(ctx, s.bearer(), id); err != nil {
		return s.check(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.todos = slices.DeleteFunc(s.todos, func(x api.Todo) bool { return x.ID == id })
	return nil
}

func (s *Store) Projects() api.PagedResult[api.Project] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.projectsLocked()
}

func (s *Store) CurrentProject() (api.Project, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return api.Project{}, false
	}
	return *s.current, true
}

func (s *Store) Todos() []api.Todo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.todos)
}

func (s *Store) startSession(res *api.AuthResponse) (User, error) {
	u := User{ID: res.UserID, Username: res.Username}

	s.mu.Lock()
	s.token = res.Token
	s.user = &u
	s.projects = api.PagedResult[api.Project]{}
	s.current = nil
	s.todos = nil
	s.mu.Unlock()

	if err := s.sessions.Save(Session{Token: res.Token, User: u}); err != nil {
		return u, err
	}
	return u, nil
}

func (s *Store) bearer() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// check drops the session when the server no longer accepts the token.
func (s *Store) check(err error) error {
	if errors.Is(err, domain.ErrUnauthorized) {
		s.reset()
		_ = s.sessions.Clear()
	}
	return err
}

func (s *Store) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.user = nil
	s.projects = api.PagedResult[api.Project]{}
	s.current = nil
	s.todos = nil
}

func (s *Store) replaceTodo(t api.Todo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := slices.IndexFunc(s.todos, func(x api.Todo) bool { return x.ID == t.ID }); i >= 0 {
		s.todos[i] = t
	}
}

func (s *Store) projectsLocked() api.PagedResult[api.Project] {
	page := s.projects
	page.Items = slices.Clone(s.projects.Items)
	return page
}
