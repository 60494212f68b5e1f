package main

import (
	"context"
	"fmt"

	"todoapp/internal/config"
	"todoapp/internal/db"
	"todoapp/internal/logger"
	"todoapp/internal/repository"
	"todoapp/internal/service"

	"golang.org/x/crypto/bcrypt"
)

// seed migrates and seeds the database, then prints a token for the admin user.
func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogJSON)

	if cfg.Storage != config.StoragePostgres {
		logger.Fatal("seed needs STORAGE=postgres")
	}

	ctx := context.Background()
	pool := db.Connect(cfg.DatabaseURL)
	defer pool.Close()

	if err := db.Migrate(ctx, pool); err != nil {
		logger.Fatal("migrations failed", "error", err)
	}

	inserted, err := service.NewSeeder(repository.NewSeedRepository(pool), bcrypt.DefaultCost).Run(ctx)
	if err != nil {
		logger.Fatal("seeding failed", "error", err)
	}
	if !inserted {
		logger.Info("users table not empty, nothing seeded")
	}

	tokens, err := service.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience, cfg.JWTTTL)
	if err != nil {
		logger.Fatal("token service", "error", err)
	}

	auth := service.NewAuthService(repository.NewUserRepository(pool), tokens, bcrypt.DefaultCost)
	res, err := auth.Login(ctx, service.SeedAdminUsername, service.SeedAdminPassword)
	if err != nil {
		logger.Fatal("admin login failed, was the admin password changed?", "error", err)
	}

	logger.Info("admin ready", "user_id", res.UserID, "username", res.Username)
	fmt.Println(res.Token)
}
