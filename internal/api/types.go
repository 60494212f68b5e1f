// Package api holds the JSON wire types shared by the HTTP handlers and the client.
package api

import (
	"time"

	"todoapp/internal/domain"
)

type RegisterRequest struct {
	Username string `json:"username" binding:"required,max=50"`
	Email    string `json:"email" binding:"required,email,max=100"`
	Password string `json:"password" binding:"required,max=72"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token    string `json:"token"`
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
}

type ProjectRequest struct {
	Name        string  `json:"name" binding:"required,max=200"`
	Description *string `json:"description"`
}

type CreateTodoRequest struct {
	Title       string  `json:"title" binding:"required,max=200"`
	Description *string `json:"description"`
	ProjectID   int64   `json:"projectId" binding:"required"`
}

type UpdateTodoRequest struct {
	Title       string  `json:"title" binding:"required,max=200"`
	Description *string `json:"description"`
}

type Project struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Todo struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	IsCompleted bool      `json:"isCompleted"`
	ProjectID   int64     `json:"projectId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type PagedResult[T any] struct {
	Items      []T `json:"items"`
	TotalCount int `json:"totalCount"`
	PageNumber int `json:"pageNumber"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func FromProject(p domain.Project) Project {
	return Project{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func FromProjectPage(page domain.Page[domain.Project]) PagedResult[Project] {
	items := make([]Project, 0, len(page.Items))
	for _, p := range page.Items {
		items = append(items, FromProject(p))
	}
	return PagedResult[Project]{
		Items:      items,
		TotalCount: page.TotalCount,
		PageNumber: page.PageNumber,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages(),
	}
}

func FromTodo(t domain.Todo) Todo {
	return Todo{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		IsCompleted: t.IsCompleted,
		ProjectID:   t.ProjectID,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func FromTodos(todos []domain.Todo) []Todo {
	res := make([]Todo, 0, len(todos))
	for _, t := range todos {
		res = append(res, FromTodo(t))
	}
	return res
}
