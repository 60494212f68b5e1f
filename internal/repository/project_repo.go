package repository

import (
	"context"
	"fmt"
	"time"

	"todoapp/internal/domain"
)

const projectColumns = `id, name, description, user_id, created_at, updated_at`

// ProjectRepository scopes every statement by the owning user.
type ProjectRepository struct {
	db DBTX
}

func NewProjectRepository(db DBTX) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// List returns the user's projects newest first.
func (r *ProjectRepository) List(ctx context.Context, userID int64, pageNumber, pageSize int) (domain.Page[domain.Project], error) {
	page := domain.Page[domain.Project]{
		Items:      []domain.Project{},
		PageNumber: pageNumber,
		PageSize:   pageSize,
	}

	var total int64
	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM projects WHERE user_id = $1`, userID,
	).Scan(&total); err != nil {
		return page, fmt.Errorf("count projects: %w", err)
	}
	page.TotalCount = int(total)

	rows, err := r.db.Query(ctx,
		`SELECT `+projectColumns+`
		 FROM projects
		 WHERE user_id = $1
		 ORDER BY created_at DESC, id DESC
		 LIMIT $2 OFFSET $3`,
		userID, pageSize, page.Offset(),
	)
	if err != nil {
		return page, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return page, fmt.Errorf("scan project: %w", err)
		}
		page.Items = append(page.Items, *p)
	}
	if err := rows.Err(); err != nil {
		return page, fmt.Errorf("list projects: %w", err)
	}

	return page, nil
}

func (r *ProjectRepository) Get(ctx context.Context, userID, id int64) (*domain.Project, error) {
	p, err := scanProject(r.db.QueryRow(ctx,
		`SELECT `+projectColumns+`
		 FROM projects
		 WHERE id = $1 AND user_id = $2`,
		id, userID,
	))
	if err != nil {
		return nil, notFound("get project", err)
	}
	return p, nil
}

func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO projects (name, description, user_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		p.Name, p.Description, p.UserID, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("insert project: %w", err)
	}
	return nil
}

func (r *ProjectRepository) Update(ctx context.Context, userID, id int64, name string, description *string, now time.Time) (*domain.Project, error) {
	p, err := scanProject(r.db.QueryRow(ctx,
		`UPDATE projects
		 SET name = $1, description = $2, updated_at = GREATEST($3, updated_at + interval '1 microsecond')
		 WHERE id = $4 AND user_id = $5
		 RETURNING `+projectColumns,
		name, description, now, id, userID,
	))
	if err != nil {
		return nil, notFound("update project", err)
	}
	return p, nil
}

// Delete removes the project; its todos go with it through the FK cascade.
func (r *ProjectRepository) Delete(ctx context.Context, userID, id int64) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM projects WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanProject(row scanner) (*domain.Project, error) {
	var p domain.Project
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.UserID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
