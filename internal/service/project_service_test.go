package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"todoapp/internal/domain"
	"todoapp/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedClock returns a clock that advances one second per call.
func fixedClock(start time.Time) func() time.Time {
	n := 0
	return func() time.Time {
		n++
		return start.Add(time.Duration(n) * time.Second)
	}
}

func newTestServices(maxPage int) (*ProjectService, *TodoService) {
	store := repository.NewMemoryStore()
	clock := fixedClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	projects := NewProjectService(store.Projects(), store.Todos(), maxPage)
	projects.now = clock
	todos := NewTodoService(store.Todos())
	todos.now = clock
	return projects, todos
}

func strPtr(s string) *string { return &s }

func TestProjectService_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	projects, _ := newTestServices(0)

	p, err := projects.Create(ctx, 1, "  Groceries  ", strPtr("weekly"))
	require.NoError(t, err)
	assert.Equal(t, "Groceries", p.Name)
	assert.Equal(t, int64(1), p.UserID)
	assert.Equal(t, p.CreatedAt, p.UpdatedAt)

	got, err := projects.Get(ctx, 1, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "weekly", *got.Description)

	_, err = projects.Get(ctx, 2, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProjectService_Validation(t *testing.T) {
	ctx := context.Background()
	projects, _ := newTestServices(0)

	_, err := projects.Create(ctx, 1, "   ", nil)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = projects.Create(ctx, 1, strings.Repeat("n", 201), nil)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = projects.Create(ctx, 1, strings.Repeat("项", 200), nil)
	assert.NoError(t, err)

	_, err = projects.Update(ctx, 1, 1, "", nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestProjectService_UpdateStampsUpdatedAt(t *testing.T) {
	ctx := context.Background()
	projects, _ := newTestServices(0)

	p, err := projects.Create(ctx, 1, "Old", nil)
	require.NoError(t, err)

	updated, err := projects.Update(ctx, 1, p.ID, "New", strPtr("d"))
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Name)
	assert.Equal(t, p.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(p.UpdatedAt))

	_, err = projects.Update(ctx, 2, p.ID, "Stolen", nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProjectService_ListPaging(t *testing.T) {
	ctx := context.Background()
	projects, _ := newTestServices(5)

	for i := range 12 {
		_, err := projects.Create(ctx, 1, fmt.Sprintf("p%02d", i), nil)
		require.NoError(t, err)
	}

	page, err := projects.List(ctx, 1, 2, 5)
	require.NoError(t, err)
	assert.Equal(t, 12, page.TotalCount)
	assert.Equal(t, 3, page.TotalPages())
	require.Len(t, page.Items, 5)
	assert.Equal(t, "p06", page.Items[0].Name)

	// clamped to the configured maximum
	page, err = projects.List(ctx, 1, 1, 1000)
	require.NoError(t, err)
	assert.Equal(t, 5, page.PageSize)
	assert.Len(t, page.Items, 5)
	assert.Equal(t, "p11", page.Items[0].Name)

	page, err = projects.List(ctx, 1, 4, 5)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 12, page.TotalCount)

	_, err = projects.List(ctx, 1, 0, 5)
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = projects.List(ctx, 1, 1, -1)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestProjectService_DeleteCascadesToTodos(t *testing.T) {
	ctx := context.Background()
	projects, todos := newTestServices(0)

	p, err := projects.Create(ctx, 1, "Home", nil)
	require.NoError(t, err)
	td, err := todos.Create(ctx, 1, p.ID, "Milk", nil)
	require.NoError(t, err)

	assert.ErrorIs(t, projects.Delete(ctx, 2, p.ID), domain.ErrNotFound)
	require.NoError(t, projects.Delete(ctx, 1, p.ID))

	_, err = todos.Get(ctx, 1, td.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = projects.ListTodos(ctx, 1, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
