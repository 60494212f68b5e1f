package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"todoapp/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var projectCols = []string{"id", "name", "description", "user_id", "created_at", "updated_at"}

func TestProjectRepository_List(t *testing.T) {
	mock := newMock(t)
	repo := NewProjectRepository(mock)

	now := time.Now().UTC()
	desc := "errands"

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM projects WHERE user_id = $1")).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(3)))
	mock.ExpectQuery("ORDER BY created_at DESC, id DESC").
		WithArgs(int64(1), 2, 2).
		WillReturnRows(pgxmock.NewRows(projectCols).
			AddRow(int64(1), "Home", &desc, int64(1), now, now))

	page, err := repo.List(context.Background(), 1, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, page.TotalCount)
	assert.Equal(t, 2, page.TotalPages())
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Home", page.Items[0].Name)
	assert.Equal(t, "errands", *page.Items[0].Description)
}

func TestProjectRepository_ListEmpty(t *testing.T) {
	mock := newMock(t)
	repo := NewProjectRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*)")).
		WithArgs(int64(5)).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(0)))
	mock.ExpectQuery("FROM projects").
		WithArgs(int64(5), 10, 0).
		WillReturnRows(pgxmock.NewRows(projectCols))

	page, err := repo.List(context.Background(), 5, 1, 10)
	require.NoError(t, err)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
	assert.Equal(t, 0, page.TotalPages())
}

func TestProjectRepository_GetScopedByOwner(t *testing.T) {
	mock := newMock(t)
	repo := NewProjectRepository(mock)

	mock.ExpectQuery("WHERE id = \\$1 AND user_id = \\$2").
		WithArgs(int64(9), int64(2)).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.Get(context.Background(), 2, 9)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProjectRepository_Create(t *testing.T) {
	mock := newMock(t)
	repo := NewProjectRepository(mock)

	now := time.Now().UTC()
	p := &domain.Project{Name: "Work", UserID: 1, CreatedAt: now, UpdatedAt: now}

	mock.ExpectQuery("INSERT INTO projects").
		WithArgs("Work", (*string)(nil), int64(1), now, now).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(11)))

	require.NoError(t, repo.Create(context.Background(), p))
	assert.Equal(t, int64(11), p.ID)
}

func TestProjectRepository_Update(t *testing.T) {
	mock := newMock(t)
	repo := NewProjectRepository(mock)

	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	now := created.Add(time.Hour)
	desc := "new"

	mock.ExpectQuery("UPDATE projects").
		WithArgs("Renamed", &desc, now, int64(3), int64(1)).
		WillReturnRows(pgxmock.NewRows(projectCols).
			AddRow(int64(3), "Renamed", &desc, int64(1), created, now))

	p, err := repo.Update(context.Background(), 1, 3, "Renamed", &desc, now)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", p.Name)
	assert.Equal(t, created, p.CreatedAt)
	assert.Equal(t, now, p.UpdatedAt)
}

func TestProjectRepository_UpdateNotOwned(t *testing.T) {
	mock := newMock(t)
	repo := NewProjectRepository(mock)

	mock.ExpectQuery("UPDATE projects").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.Update(context.Background(), 2, 3, "x", nil, time.Now())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProjectRepository_Delete(t *testing.T) {
	tests := []struct {
		name    string
		rows    int64
		wantErr error
	}{
		{name: "deleted", rows: 1},
		{name: "missing or foreign", rows: 0, wantErr: domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := newMock(t)
			repo := NewProjectRepository(mock)

			mock.ExpectExec("DELETE FROM projects").
				WithArgs(int64(4), int64(1)).
				WillReturnResult(pgxmock.NewResult("DELETE", tt.rows))

			err := repo.Delete(context.Background(), 1, 4)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestProjectRepository_DeleteDBError(t *testing.T) {
	mock := newMock(t)
	repo := NewProjectRepository(mock)

	boom := errors.New("connection reset")
	mock.ExpectExec("DELETE FROM projects").WillReturnError(boom)

	err := repo.Delete(context.Background(), 1, 4)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}
