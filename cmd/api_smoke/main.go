package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"time"

	"todoapp/internal/api"
	"todoapp/internal/client"
	"todoapp/internal/domain"
	"todoapp/internal/logger"

	"github.com/google/uuid"
)

// api_smoke walks a fresh user through the main flow against a running server.
func main() {
	baseURL := flag.String("url", envOr("TODO_API_URL", "http://127.0.0.1:8080"), "API base URL")
	flag.Parse()

	logger.Init(os.Getenv("LOG_LEVEL"), false)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	c := client.NewHTTPAPI(*baseURL, 10*time.Second)
	suffix := uuid.NewString()[:8]

	alice := mustRegister(ctx, c, "alice_"+suffix)
	bob := mustRegister(ctx, c, "bob_"+suffix)

	desc := "weekly"
	p, err := c.CreateProject(ctx, alice.Token, api.ProjectRequest{Name: "Groceries", Description: &desc})
	check("create project", err)

	milk, err := c.CreateTodo(ctx, alice.Token, api.CreateTodoRequest{Title: "Milk", ProjectID: p.ID})
	check("create todo", err)
	_, err = c.CreateTodo(ctx, alice.Token, api.CreateTodoRequest{Title: "Bread", ProjectID: p.ID})
	check("create todo", err)

	toggled, err := c.ToggleTodo(ctx, alice.Token, milk.ID)
	check("toggle", err)
	expect(toggled.IsCompleted, "milk should be completed after one toggle")

	todos, err := c.ListProjectTodos(ctx, alice.Token, p.ID)
	check("list todos", err)
	expect(len(todos) == 2, "project should hold two todos")
	expect(todos[0].Title == "Bread", "newest todo should come first")

	page, err := c.ListProjects(ctx, alice.Token, 1, 10)
	check("list projects", err)
	expect(page.TotalCount == 1, "alice should own exactly one project")

	_, err = c.GetProject(ctx, bob.Token, p.ID)
	expect(errors.Is(err, domain.ErrNotFound), "bob must not see alice's project")
	_, err = c.ToggleTodo(ctx, bob.Token, milk.ID)
	expect(errors.Is(err, domain.ErrNotFound), "bob must not toggle alice's todo")

	check("delete project", c.DeleteProject(ctx, alice.Token, p.ID))
	_, err = c.GetTodo(ctx, alice.Token, milk.ID)
	expect(errors.Is(err, domain.ErrNotFound), "todos should go with their project")

	logger.Info("smoke test finished", "url", *baseURL, "alice", alice.Username, "bob", bob.Username)
}

func mustRegister(ctx context.Context, c *client.HTTPAPI, username string) *api.AuthResponse {
	res, err := c.Register(ctx, api.RegisterRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: "secret123",
	})
	check("register "+username, err)
	return res
}

func check(step string, err error) {
	if err != nil {
		logger.Fatal("step failed", "step", step, "error", err)
	}
	logger.Debug("step ok", "step", step)
}

func expect(ok bool, msg string) {
	if !ok {
		logger.Fatal("assertion failed", "expected", msg)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
