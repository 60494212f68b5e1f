package repository

import (
	"context"
	"fmt"
	"time"

	"todoapp/internal/domain"
)

const todoColumns = `t.id, t.title, t.description, t.is_completed, t.project_id, t.created_at, t.updated_at`

// TodoRepository never touches a todo without joining its project's owner.
type TodoRepository struct {
	db DBTX
}

func NewTodoRepository(db DBTX) *TodoRepository {
	return &TodoRepository{db: db}
}

func (r *TodoRepository) ListByProject(ctx context.Context, userID, projectID int64) ([]domain.Todo, error) {
	var owned bool
	if err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM projects WHERE id = $1 AND user_id = $2)`,
		projectID, userID,
	).Scan(&owned); err != nil {
		return nil, fmt.Errorf("check project: %w", err)
	}
	if !owned {
		return nil, domain.ErrNotFound
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+todoColumns+`
		 FROM todos t
		 WHERE t.project_id = $1
		 ORDER BY t.created_at DESC, t.id DESC`,
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	defer rows.Close()

	res := []domain.Todo{}
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan todo: %w", err)
		}
		res = append(res, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	return res, nil
}

func (r *TodoRepository) Get(ctx context.Context, userID, id int64) (*domain.Todo, error) {
	t, err := scanTodo(r.db.QueryRow(ctx,
		`SELECT `+todoColumns+`
		 FROM todos t
		 JOIN projects p ON p.id = t.project_id
		 WHERE t.id = $1 AND p.user_id = $2`,
		id, userID,
	))
	if err != nil {
		return nil, notFound("get todo", err)
	}
	return t, nil
}

// Create inserts t under t.ProjectID only if userID owns that project.
func (r *TodoRepository) Create(ctx context.Context, userID int64, t *domain.Todo) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO todos (title, description, is_completed, project_id, created_at, updated_at)
		 SELECT $1, $2, false, p.id, $3, $4
		 FROM projects p
		 WHERE p.id = $5 AND p.user_id = $6
		 RETURNING id`,
		t.Title, t.Description, t.CreatedAt, t.UpdatedAt, t.ProjectID, userID,
	).Scan(&t.ID)
	if err != nil {
		return notFound("insert todo", err)
	}
	t.IsCompleted = false
	return nil
}

func (r *TodoRepository) Update(ctx context.Context, userID, id int64, title string, description *string, now time.Time) (*domain.Todo, error) {
	t, err := scanTodo(r.db.QueryRow(ctx,
		`UPDATE todos t
		 SET title = $1, description = $2, updated_at = GREATEST($3, t.updated_at + interval '1 microsecond')
		 FROM projects p
		 WHERE t.id = $4 AND p.id = t.project_id AND p.user_id = $5
		 RETURNING `+todoColumns,
		title, description, now, id, userID,
	))
	if err != nil {
		return nil, notFound("update todo", err)
	}
	return t, nil
}

func (r *TodoRepository) Toggle(ctx context.Context, userID, id int64, now time.Time) (*domain.Todo, error) {
	t, err := scanTodo(r.db.QueryRow(ctx,
		`UPDATE todos t
		 SET is_completed = NOT t.is_completed, updated_at = GREATEST($1, t.updated_at + interval '1 microsecond')
		 FROM projects p
		 WHERE t.id = $2 AND p.id = t.project_id AND p.user_id = $3
		 RETURNING `+todoColumns,
		now, id, userID,
	))
	if err != nil {
		return nil, notFound("toggle todo", err)
	}
	return t, nil
}

func (r *TodoRepository) Delete(ctx context.Context, userID, id int64) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM todos t
		 USING projects p
		 WHERE t.id = $1 AND p.id = t.project_id AND p.user_id = $2`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanTodo(row scanner) (*domain.Todo, error) {
	var t domain.Todo
	if err := row.Scan(&t.ID, &t.Title, &t.Description, &t.IsCompleted, &t.ProjectID, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}
