package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"todoapp/internal/domain"
)

// MemoryStore keeps users, projects and todos in process memory with the same
// ownership rules as the PostgreSQL repositories. It backs STORAGE=memory and
// the client's mock API.
type MemoryStore struct {
	mu       sync.RWMutex
	users    map[int64]domain.User
	projects map[int64]domain.Project
	todos    map[int64]domain.Todo

	lastUserID    int64
	lastProjectID int64
	lastTodoID    int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:    make(map[int64]domain.User),
		projects: make(map[int64]domain.Project),
		todos:    make(map[int64]domain.Todo),
	}
}

func (s *MemoryStore) Users() *MemoryUsers       { return &MemoryUsers{s: s} }
func (s *MemoryStore) Projects() *MemoryProjects { return &MemoryProjects{s: s} }
func (s *MemoryStore) Todos() *MemoryTodos       { return &MemoryTodos{s: s} }

// Seed loads data only when there are no users yet.
func (s *MemoryStore) Seed(_ context.Context, data domain.SeedData) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.users) > 0 {
		return false, nil
	}

	for _, u := range data.Users {
		s.users[u.ID] = u
		s.lastUserID = max(s.lastUserID, u.ID)
	}
	for _, p := range data.Projects {
		p.Description = cloneString(p.Description)
		s.projects[p.ID] = p
		s.lastProjectID = max(s.lastProjectID, p.ID)
	}
	for _, t := range data.Todos {
		t.Description = cloneString(t.Description)
		s.todos[t.ID] = t
		s.lastTodoID = max(s.lastTodoID, t.ID)
	}
	return true, nil
}

// Counts returns the number of stored users, projects and todos.
func (s *MemoryStore) Counts() (users, projects, todos int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users), len(s.projects), len(s.todos)
}

// ownedProject must be called with s.mu held.
func (s *MemoryStore) ownedProject(userID, projectID int64) (domain.Project, bool) {
	p, ok := s.projects[projectID]
	if !ok || p.UserID != userID {
		return domain.Project{}, false
	}
	return p, true
}

// ownedTodo resolves the todo through its project's owner. Must be called with s.mu held.
func (s *MemoryStore) ownedTodo(userID, id int64) (domain.Todo, bool) {
	t, ok := s.todos[id]
	if !ok {
		return domain.Todo{}, false
	}
	if _, ok := s.ownedProject(userID, t.ProjectID); !ok {
		return domain.Todo{}, false
	}
	return t, true
}

type MemoryUsers struct{ s *MemoryStore }

func (r *MemoryUsers) Create(_ context.Context, u *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.users {
		if existing.Username == u.Username {
			return domain.ErrUsernameTaken
		}
		if existing.Email == u.Email {
			return domain.ErrEmailTaken
		}
	}

	r.s.lastUserID++
	u.ID = r.s.lastUserID
	r.s.users[u.ID] = *u
	return nil
}

func (r *MemoryUsers) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *MemoryUsers) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := r.GetByUsername(ctx, username)
	return err == nil, nil
}

func (r *MemoryUsers) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

type MemoryProjects struct{ s *MemoryStore }

func (r *MemoryProjects) List(_ context.Context, userID int64, pageNumber, pageSize int) (domain.Page[domain.Project], error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var owned []domain.Project
	for _, p := range r.s.projects {
		if p.UserID == userID {
			owned = append(owned, p)
		}
	}
	sort.Slice(owned, func(i, j int) bool {
		return newerFirst(owned[i].CreatedAt, owned[i].ID, owned[j].CreatedAt, owned[j].ID)
	})

	page := domain.Page[domain.Project]{
		Items:      []domain.Project{},
		TotalCount: len(owned),
		PageNumber: pageNumber,
		PageSize:   pageSize,
	}

	start := page.Offset()
	if start < 0 || start >= len(owned) {
		return page, nil
	}
	end := start + min(pageSize, len(owned)-start)
	for _, p := range owned[start:end] {
		p.Description = cloneString(p.Description)
		page.Items = append(page.Items, p)
	}
	return page, nil
}

func (r *MemoryProjects) Get(_ context.Context, userID, id int64) (*domain.Project, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.ownedProject(userID, id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	p.Description = cloneString(p.Description)
	return &p, nil
}

func (r *MemoryProjects) Create(_ context.Context, p *domain.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.lastProjectID++
	p.ID = r.s.lastProjectID

	stored := *p
	stored.Description = cloneString(p.Description)
	r.s.projects[p.ID] = stored
	return nil
}

func (r *MemoryProjects) Update(_ context.Context, userID, id int64, name string, description *string, now time.Time) (*domain.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.ownedProject(userID, id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	p.Name = name
	p.Description = cloneString(description)
	p.UpdatedAt = advance(p.UpdatedAt, now)
	r.s.projects[id] = p

	p.Description = cloneString(p.Description)
	return &p, nil
}

func (r *MemoryProjects) Delete(_ context.Context, userID, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.ownedProject(userID, id); !ok {
		return domain.ErrNotFound
	}
	delete(r.s.projects, id)
	for tid, t := range r.s.todos {
		if t.ProjectID == id {
			delete(r.s.todos, tid)
		}
	}
	return nil
}

type MemoryTodos struct{ s *MemoryStore }

func (r *MemoryTodos) ListByProject(_ context.Context, userID, projectID int64) ([]domain.Todo, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if _, ok := r.s.ownedProject(userID, projectID); !ok {
		return nil, domain.ErrNotFound
	}

	res := []domain.Todo{}
	for _, t := range r.s.todos {
		if t.ProjectID == projectID {
			t.Description = cloneString(t.Description)
			res = append(res, t)
		}
	}
	sort.Slice(res, func(i, j int) bool {
		return newerFirst(res[i].CreatedAt, res[i].ID, res[j].CreatedAt, res[j].ID)
	})
	return res, nil
}

func (r *MemoryTodos) Get(_ context.Context, userID, id int64) (*domain.Todo, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	t, ok := r.s.ownedTodo(userID, id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	t.Description = cloneString(t.Description)
	return &t, nil
}

func (r *MemoryTodos) Create(_ context.Context, userID int64, t *domain.Todo) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.ownedProject(userID, t.ProjectID); !ok {
		return domain.ErrNotFound
	}

	r.s.lastTodoID++
	t.ID = r.s.lastTodoID
	t.IsCompleted = false

	stored := *t
	stored.Description = cloneString(t.Description)
	r.s.todos[t.ID] = stored
	return nil
}

func (r *MemoryTodos) Update(_ context.Context, userID, id int64, title string, description *string, now time.Time) (*domain.Todo, error) {
	return r.mutate(userID, id, func(t *domain.Todo) {
		t.Title = title
		t.Description = cloneString(description)
		t.UpdatedAt = advance(t.UpdatedAt, now)
	})
}

func (r *MemoryTodos) Toggle(_ context.Context, userID, id int64, now time.Time) (*domain.Todo, error) {
	return r.mutate(userID, id, func(t *domain.Todo) {
		t.IsCompleted = !t.IsCompleted
		t.UpdatedAt = advance(t.UpdatedAt, now)
	})
}

func (r *MemoryTodos) Delete(_ context.Context, userID, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.ownedTodo(userID, id); !ok {
		return domain.ErrNotFound
	}
	delete(r.s.todos, id)
	return nil
}

func (r *MemoryTodos) mutate(userID, id int64, fn func(*domain.Todo)) (*domain.Todo, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t, ok := r.s.ownedTodo(userID, id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	fn(&t)
	r.s.todos[id] = t

	t.Description = cloneString(t.Description)
	return &t, nil
}

// advance returns now, or one microsecond past prev when the clock has not
// moved on, so every write changes updated_at.
func advance(prev, now time.Time) time.Time {
	if next := prev.Add(time.Microsecond); now.Before(next) {
		return next
	}
	return now
}

func newerFirst(aTime time.Time, aID int64, bTime time.Time, bID int64) bool {
	if !aTime.Equal(bTime) {
		return aTime.After(bTime)
	}
	return aID > bID
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
