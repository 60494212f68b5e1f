package service

import (
	"context"
	"testing"
	"time"

	"todoapp/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestDemoData(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	data, err := DemoData(now, bcrypt.MinCost)
	require.NoError(t, err)

	require.Len(t, data.Users, 1)
	require.Len(t, data.Projects, 2)
	require.Len(t, data.Todos, 6)

	admin := data.Users[0]
	assert.Equal(t, int64(1), admin.ID)
	assert.Equal(t, SeedAdminEmail, admin.Email)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(SeedAdminPassword)))

	perProject := map[int64]int{}
	for _, td := range data.Todos {
		perProject[td.ProjectID]++
		assert.Equal(t, td.ID == 2 || td.ID == 5, td.IsCompleted, "todo %d", td.ID)
	}
	assert.Equal(t, map[int64]int{1: 3, 2: 3}, perProject)
	assert.Equal(t, now.Add(-24*time.Hour), data.Todos[1].CreatedAt)
}

func TestSeeder_ThenLoginAndContinueIDs(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	seeder := NewSeeder(store, bcrypt.MinCost)

	seeded, err := seeder.Run(ctx)
	require.NoError(t, err)
	assert.True(t, seeded)

	seeded, err = seeder.Run(ctx)
	require.NoError(t, err)
	assert.False(t, seeded)

	users, projects, todos := store.Counts()
	assert.Equal(t, []int{1, 2, 6}, []int{users, projects, todos})

	auth := NewAuthService(store.Users(), newTestTokens(t), bcrypt.MinCost)
	res, err := auth.Login(ctx, SeedAdminUsername, SeedAdminPassword)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.UserID)

	projectSvc := NewProjectService(store.Projects(), store.Todos(), 0)
	page, err := projectSvc.List(ctx, 1, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, page.TotalCount)

	p, err := projectSvc.Create(ctx, 1, "Third", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(3), p.ID)

	td, err := NewTodoService(store.Todos()).Create(ctx, 1, p.ID, "Seventh", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(7), td.ID)
}
