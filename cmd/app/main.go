package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"todoapp/internal/config"
	"todoapp/internal/db"
	httpServer "todoapp/internal/http"
	"todoapp/internal/logger"
	"todoapp/internal/repository"
	"todoapp/internal/service"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

var version = "dev"

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogJSON)

	tokens, err := service.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience, cfg.JWTTTL)
	if err != nil {
		logger.Fatal("token service", "error", err)
	}

	ctx := context.Background()
	deps := httpServer.Deps{
		Tokens:      tokens,
		Storage:     cfg.Storage,
		Version:     version,
		CORSOrigins: cfg.CORSOrigins,
	}

	var (
		users    service.UserStore
		projects service.ProjectStore
		todos    service.TodoStore
		seeds    service.SeedStore
	)

	switch cfg.Storage {
	case config.StorageMemory:
		store := repository.NewMemoryStore()
		users, projects, todos, seeds = store.Users(), store.Projects(), store.Todos(), store
		logger.Warn("using in-memory storage, data is lost on restart")
	default:
		pool := db.Connect(cfg.DatabaseURL)
		defer pool.Close()

		if cfg.RunMigrations {
			if err := db.Migrate(ctx, pool); err != nil {
				logger.Fatal("migrations failed", "error", err)
			}
		}

		users = repository.NewUserRepository(pool)
		projects = repository.NewProjectRepository(pool)
		todos = repository.NewTodoRepository(pool)
		seeds = repository.NewSeedRepository(pool)
		deps.DB = pool
	}

	if cfg.SeedOnStart {
		if _, err := service.NewSeeder(seeds, bcrypt.DefaultCost).Run(ctx); err != nil {
			logger.Fatal("seeding failed", "error", err)
		}
	}

	deps.Auth = service.NewAuthService(users, tokens, bcrypt.DefaultCost)
	deps.Projects = service.NewProjectService(projects, todos, cfg.MaxPageSize)
	deps.Todos = service.NewTodoService(todos)

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := httpServer.NewRouter(deps)

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server started", "port", cfg.AppPort, "storage", cfg.Storage, "version", version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		return
	}

	logger.Info("server exited")
}
