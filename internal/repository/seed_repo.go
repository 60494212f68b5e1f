package repository

import (
	"context"
	"fmt"

	"todoapp/internal/domain"
)

// SeedRepository inserts the fixed-id demo dataset into an empty database.
type SeedRepository struct {
	db DBTX
}

func NewSeedRepository(db DBTX) *SeedRepository {
	return &SeedRepository{db: db}
}

// Seed inserts data only into an empty database and reports whether it did.
// After inserting it moves the sequences past the highest seeded id.
func (r *SeedRepository) Seed(ctx context.Context, data domain.SeedData) (bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin seed: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// serialize concurrent seeders
	if _, err := tx.Exec(ctx, `LOCK TABLE users IN SHARE ROW EXCLUSIVE MODE`); err != nil {
		return false, fmt.Errorf("lock users: %w", err)
	}

	var hasUsers bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users)`).Scan(&hasUsers); err != nil {
		return false, fmt.Errorf("check users: %w", err)
	}

	if !hasUsers {
		for _, u := range data.Users {
			if _, err := tx.Exec(ctx,
				`INSERT INTO users (id, username, email, password_hash, created_at)
				 VALUES ($1, $2, $3, $4, $5)`,
				u.ID, u.Username, u.Email, u.PasswordHash, u.CreatedAt,
			); err != nil {
				return false, fmt.Errorf("seed user %d: %w", u.ID, err)
			}
		}
		for _, p := range data.Projects {
			if _, err := tx.Exec(ctx,
				`INSERT INTO projects (id, name, description, user_id, created_at, updated_at)
				 VALUES ($1, $2, $3, $4, $5, $6)`,
				p.ID, p.Name, p.Description, p.UserID, p.CreatedAt, p.UpdatedAt,
			); err != nil {
				return false, fmt.Errorf("seed project %d: %w", p.ID, err)
			}
		}
		for _, t := range data.Todos {
			if _, err := tx.Exec(ctx,
				`INSERT INTO todos (id, title, description, is_completed, project_id, created_at, updated_at)
				 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
				t.ID, t.Title, t.Description, t.IsCompleted, t.ProjectID, t.CreatedAt, t.UpdatedAt,
			); err != nil {
				return false, fmt.Errorf("seed todo %d: %w", t.ID, err)
			}
		}
		for _, table := range []string{"users", "projects", "todos"} {
			if _, err := tx.Exec(ctx, fixSequenceSQL(table)); err != nil {
				return false, fmt.Errorf("fix %s sequence: %w", table, err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit seed: %w", err)
	}
	return !hasUsers, nil
}

// table names come from a fixed list, never from input
func fixSequenceSQL(table string) string {
	return fmt.Sprintf(
		`SELECT setval(pg_get_serial_sequence('%[1]s', 'id'), COALESCE(MAX(id), 1), MAX(id) IS NOT NULL) FROM %[1]s`,
		table,
	)
}
