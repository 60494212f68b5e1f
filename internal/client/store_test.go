package client

import (
	"context"
	"testing"

	"todoapp/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memSessions struct {
	saved *Session
}

func (m *memSessions) Load() (*Session, error) { return m.saved, nil }
func (m *memSessions) Save(s Session) error    { m.saved = &s; return nil }
func (m *memSessions) Clear() error            { m.saved = nil; return nil }

func newTestStore(t *testing.T) (*Store, *memSessions) {
	t.Helper()
	m, err := NewMockAPI(0)
	require.NoError(t, err)
	sessions := &memSessions{}
	return NewStore(m, sessions), sessions
}

func strPtr(s string) *string { return &s }

func TestStore_LoginLogout(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, sessions := newTestStore(t)

	assert.False(t, s.IsAuthenticated())

	u, err := s.Login(ctx, "admin", "admin123")
	require.NoError(t, err)
	assert.Equal(t, "admin", u.Username)
	assert.True(t, s.IsAuthenticated())
	require.NotNil(t, sessions.saved)
	assert.Equal(t, int64(1), sessions.saved.User.ID)

	require.NoError(t, s.Logout())
	assert.False(t, s.IsAuthenticated())
	assert.Nil(t, sessions.saved)
	_, ok := s.User()
	assert.False(t, ok)
}

func TestStore_Restore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, sessions := newTestStore(t)

	_, err := s.Login(ctx, "admin", "admin123")
	require.NoError(t, err)

	again := NewStore(s.api, sessions)
	require.NoError(t, again.Restore())
	assert.True(t, again.IsAuthenticated())

	page, err := again.LoadProjects(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, page.TotalCount)
}

func TestStore_UnauthorizedClearsSession(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, sessions := newTestStore(t)

	sessions.saved = &Session{Token: "expired", User: User{ID: 1, Username: "admin"}}
	require.NoError(t, s.Restore())
	require.True(t, s.IsAuthenticated())

	_, err := s.LoadProjects(ctx, 1, 10)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.False(t, s.IsAuthenticated())
	assert.Nil(t, sessions.saved)
}

func TestStore_ProjectMirror(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, _ := newTestStore(t)

	_, err := s.Register(ctx, "alice", "alice@example.com", "secret123")
	require.NoError(t, err)

	page, err := s.LoadProjects(ctx, 1, 10)
	require.NoError(t, err)
	assert.Zero(t, page.TotalCount)

	a, err := s.CreateProject(ctx, "A", nil)
	require.NoError(t, err)
	b, err := s.CreateProject(ctx, "B", strPtr("second"))
	require.NoError(t, err)

	got := s.Projects()
	assert.Equal(t, 2, got.TotalCount)
	require.Len(t, got.Items, 2)
	assert.Equal(t, b.ID, got.Items[0].ID, "new projects go first")

	_, err = s.UpdateProject(ctx, a.ID, "A2", nil)
	require.NoError(t, err)
	assert.Equal(t, "A2", s.Projects().Items[1].Name)

	_, _, err = s.LoadProject(ctx, b.ID)
	require.NoError(t, err)
	cur, ok := s.CurrentProject()
	require.True(t, ok)
	assert.Equal(t, b.ID, cur.ID)

	require.NoError(t, s.DeleteProject(ctx, b.ID))
	got = s.Projects()
	assert.Equal(t, 1, got.TotalCount)
	require.Len(t, got.Items, 1)
	_, ok = s.CurrentProject()
	assert.False(t, ok, "deleting the current project clears it")
}

func TestStore_TodoMirror(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, _ := newTestStore(t)

	_, err := s.Register(ctx, "alice", "alice@example.com", "secret123")
	require.NoError(t, err)
	p, err := s.CreateProject(ctx, "Home", nil)
	require.NoError(t, err)

	_, todos, err := s.LoadProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, todos)

	milk, err := s.CreateTodo(ctx, p.ID, "Milk", nil)
	require.NoError(t, err)
	bread, err := s.CreateTodo(ctx, p.ID, "Bread", nil)
	require.NoError(t, err)

	todos = s.Todos()
	require.Len(t, todos, 2)
	assert.Equal(t, bread.ID, todos[0].ID)

	toggled, err := s.ToggleTodo(ctx, milk.ID)
	require.NoError(t, err)
	assert.True(t, toggled.IsCompleted)
	assert.True(t, s.Todos()[1].IsCompleted)

	_, err = s.UpdateTodo(ctx, milk.ID, "Oat milk", strPtr("2 litres"))
	require.NoError(t, err)
	assert.Equal(t, "Oat milk", s.Todos()[1].Title)

	require.NoError(t, s.DeleteTodo(ctx, bread.ID))
	todos = s.Todos()
	require.Len(t, todos, 1)
	assert.Equal(t, milk.ID, todos[0].ID)

	_, err = s.GetTodo(ctx, bread.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
