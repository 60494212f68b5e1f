package service

import (
	"context"
	"fmt"
	"time"

	"todoapp/internal/domain"
	"todoapp/internal/logger"

	"golang.org/x/crypto/bcrypt"
)

const (
	SeedAdminUsername = "admin"
	SeedAdminEmail    = "admin@example.com"
	SeedAdminPassword = "admin123"
)

type Seeder struct {
	store SeedStore
	cost  int
	now   func() time.Time
}

func NewSeeder(store SeedStore, bcryptCost int) *Seeder {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Seeder{store: store, cost: bcryptCost, now: utcNow}
}

// Run inserts the demo dataset when the store has no users. It reports whether anything was written.
func (s *Seeder) Run(ctx context.Context) (bool, error) {
	data, err := DemoData(s.now(), s.cost)
	if err != nil {
		return false, err
	}

	seeded, err := s.store.Seed(ctx, data)
	if err != nil {
		return false, fmt.Errorf("seed: %w", err)
	}
	if seeded {
		logger.Info("demo data seeded",
			"users", len(data.Users),
			"projects", len(data.Projects),
			"todos", len(data.Todos),
		)
	} else {
		logger.Debug("users exist, skipping demo data")
	}
	return seeded, nil
}

// DemoData builds the fixed-id dataset: one admin, two projects with three todos each.
func DemoData(now time.Time, bcryptCost int) (domain.SeedData, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(SeedAdminPassword), bcryptCost)
	if err != nil {
		return domain.SeedData{}, fmt.Errorf("hash seed password: %w", err)
	}

	day := 24 * time.Hour
	todo := func(id int64, title, desc string, done bool, projectID int64, age time.Duration) domain.Todo {
		return domain.Todo{
			ID:          id,
			Title:       title,
			Description: &desc,
			IsCompleted: done,
			ProjectID:   projectID,
			CreatedAt:   now.Add(-age),
			UpdatedAt:   now,
		}
	}
	project := func(id int64, name, desc string) domain.Project {
		return domain.Project{ID: id, Name: name, Description: &desc, UserID: 1, CreatedAt: now, UpdatedAt: now}
	}

	return domain.SeedData{
		Users: []domain.User{{
			ID:           1,
			Username:     SeedAdminUsername,
			Email:        SeedAdminEmail,
			PasswordHash: string(hash),
			CreatedAt:    now,
		}},
		Projects: []domain.Project{
			project(1, "Work", "Day-to-day work tasks"),
			project(2, "Personal", "Personal life tasks"),
		},
		Todos: []domain.Todo{
			todo(1, "Finish project docs", "Write the technical docs and usage guide", false, 1, 0),
			todo(2, "Code review", "Review the team's pending changes", true, 1, day),
			todo(3, "Prepare meeting slides", "Slides for next week's team meeting", false, 1, 0),
			todo(4, "Buy groceries", "Weekly supermarket run", false, 2, 0),
			todo(5, "Read a tech book", "Clean Code, chapter 3", true, 2, 2*day),
			todo(6, "Exercise", "At least three workouts a week", false, 2, 0),
		},
	}, nil
}
