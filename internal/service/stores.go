package service

import (
	"context"
	"time"

	"todoapp/internal/domain"
)

// Stores are implemented by the PostgreSQL repositories and by repository.MemoryStore.
// Every call carries the caller's user id; the store enforces ownership.

type UserStore interface {
	Create(ctx context.Context, u *domain.User) error
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type ProjectStore interface {
	List(ctx context.Context, userID int64, pageNumber, pageSize int) (domain.Page[domain.Project], error)
	Get(ctx context.Context, userID, id int64) (*domain.Project, error)
	Create(ctx context.Context, p *domain.Project) error
	Update(ctx context.Context, userID, id int64, name string, description *string, now time.Time) (*domain.Project, error)
	Delete(ctx context.Context, userID, id int64) error
}

type TodoStore interface {
	ListByProject(ctx context.Context, userID, projectID int64) ([]domain.Todo, error)
	Get(ctx context.Context, userID, id int64) (*domain.Todo, error)
	Create(ctx context.Context, userID int64, t *domain.Todo) error
	Update(ctx context.Context, userID, id int64, title string, description *string, now time.Time) (*domain.Todo, error)
	Toggle(ctx context.Context, userID, id int64, now time.Time) (*domain.Todo, error)
	Delete(ctx context.Context, userID, id int64) error
}

type SeedStore interface {
	Seed(ctx context.Context, data domain.SeedData) (bool, error)
}

// PostgreSQL keeps microseconds; truncating keeps both backends comparable.
func utcNow() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
