package http

import (
	"todoapp/internal/http/handlers"
	"todoapp/internal/http/middleware"
	"todoapp/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps are the services the router exposes.
type Deps struct {
	Auth     *service.AuthService
	Projects *service.ProjectService
	Todos    *service.TodoService
	Tokens   middleware.TokenParser

	// DB is nil when running on the in-memory store.
	DB          handlers.Pinger
	Storage     string
	Version     string
	CORSOrigins []string
}

// NewRouter builds the engine with the standard middleware chain and all routes.
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestLogger(),
		middleware.Metrics(),
		middleware.CORS(d.CORSOrigins),
	)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	RegisterRoutes(r, d)
	return r
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	h := handlers.NewHandler(d.Auth, d.Projects, d.Todos)
	healthHandler := handlers.NewHealthHandler(d.DB, d.Storage, d.Version)

	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
	}

	protected := api.Group("")
	protected.Use(middleware.JWT(d.Tokens))

	projects := protected.Group("/projects")
	{
		projects.GET("", h.ListProjects)
		projects.POST("", h.CreateProject)
		projects.GET("/:id", h.GetProject)
		projects.PUT("/:id", h.UpdateProject)
		projects.DELETE("/:id", h.DeleteProject)
		projects.GET("/:id/todos", h.ListProjectTodos)
	}

	todos := protected.Group("/todos")
	{
		todos.POST("", h.CreateTodo)
		todos.GET("/:id", h.GetTodo)
		todos.PUT("/:id", h.UpdateTodo)
		todos.DELETE("/:id", h.DeleteTodo)
		todos.PATCH("/:id/complete", h.CompleteTodo)
	}
}
