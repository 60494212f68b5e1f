package handlers

import (
	"todoapp/internal/service"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	auth     *service.AuthService
	projects *service.ProjectService
	todos    *service.TodoService
}

func NewHandler(auth *service.AuthService, projects *service.ProjectService, todos *service.TodoService) *Handler {
	return &Handler{
		auth:     auth,
		projects: projects,
		todos:    todos,
	}
}

// getUserID reads the identity stored by middleware.JWT.
func getUserID(c *gin.Context) (int64, bool) {
	uidVal, ok := c.Get("user_id")
	if !ok {
		return 0, false
	}
	switch v := uidVal.(type) {
	case int64:
		return v, true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}
