package service

import (
	"context"
	"time"

	"todoapp/internal/domain"
)

type TodoService struct {
	todos TodoStore
	now   func() time.Time
}

func NewTodoService(todos TodoStore) *TodoService {
	return &TodoService{todos: todos, now: utcNow}
}

// Create adds an incomplete todo to a project the user owns.
func (s *TodoService) Create(ctx context.Context, userID, projectID int64, title string, description *string) (*domain.Todo, error) {
	title, err := requiredText("title", title, domain.MaxTitleLen)
	if err != nil {
		return nil, err
	}

	now := s.now()
	t := &domain.Todo{
		Title:       title,
		Description: description,
		ProjectID:   projectID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.todos.Create(ctx, userID, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TodoService) Get(ctx context.Context, userID, id int64) (*domain.Todo, error) {
	return s.todos.Get(ctx, userID, id)
}

func (s *TodoService) Update(ctx context.Context, userID, id int64, title string, description *string) (*domain.Todo, error) {
	title, err := requiredText("title", title, domain.MaxTitleLen)
	if err != nil {
		return nil, err
	}
	return s.todos.Update(ctx, userID, id, title, description, s.now())
}

func (s *TodoService) Toggle(ctx context.Context, userID, id int64) (*domain.Todo, error) {
	return s.todos.Toggle(ctx, userID, id, s.now())
}

func (s *TodoService) Delete(ctx context.Context, userID, id int64) error {
	return s.todos.Delete(ctx, userID, id)
}
