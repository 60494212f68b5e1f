package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"todoapp/internal/domain"
)

const (
	DefaultPageNumber  = 1
	DefaultPageSize    = 10
	DefaultMaxPageSize = 100
)

type ProjectService struct {
	projects    ProjectStore
	todos       TodoStore
	maxPageSize int
	now         func() time.Time
}

func NewProjectService(projects ProjectStore, todos TodoStore, maxPageSize int) *ProjectService {
	if maxPageSize <= 0 {
		maxPageSize = DefaultMaxPageSize
	}
	return &ProjectService{
		projects:    projects,
		todos:       todos,
		maxPageSize: maxPageSize,
		now:         utcNow,
	}
}

// List pages through the user's projects. Sizes above the configured maximum are clamped.
func (s *ProjectService) List(ctx context.Context, userID int64, pageNumber, pageSize int) (domain.Page[domain.Project], error) {
	if pageNumber < 1 {
		return domain.Page[domain.Project]{}, fmt.Errorf("%w: pageNumber must be positive", domain.ErrValidation)
	}
	if pageSize < 1 {
		return domain.Page[domain.Project]{}, fmt.Errorf("%w: pageSize must be positive", domain.ErrValidation)
	}
	pageSize = min(pageSize, s.maxPageSize)

	return s.projects.List(ctx, userID, pageNumber, pageSize)
}

func (s *ProjectService) Get(ctx context.Context, userID, id int64) (*domain.Project, error) {
	return s.projects.Get(ctx, userID, id)
}

func (s *ProjectService) Create(ctx context.Context, userID int64, name string, description *string) (*domain.Project, error) {
	name, err := validateName(name)
	if err != nil {
		return nil, err
	}

	now := s.now()
	p := &domain.Project{
		Name:        name,
		Description: description,
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.projects.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProjectService) Update(ctx context.Context, userID, id int64, name string, description *string) (*domain.Project, error) {
	name, err := validateName(name)
	if err != nil {
		return nil, err
	}
	return s.projects.Update(ctx, userID, id, name, description, s.now())
}

func (s *ProjectService) Delete(ctx context.Context, userID, id int64) error {
	return s.projects.Delete(ctx, userID, id)
}

// ListTodos returns the project's todos, newest first.
func (s *ProjectService) ListTodos(ctx context.Context, userID, projectID int64) ([]domain.Todo, error) {
	return s.todos.ListByProject(ctx, userID, projectID)
}

func validateName(name string) (string, error) {
	return requiredText("name", name, domain.MaxNameLen)
}

func requiredText(field, value string, maxLen int) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("%w: %s is required", domain.ErrValidation, field)
	}
	if utf8.RuneCountInString(value) > maxLen {
		return "", fmt.Errorf("%w: %s must be at most %d characters", domain.ErrValidation, field, maxLen)
	}
	return value, nil
}
