package handlers

import (
	"net/http"
	"strconv"

	"todoapp/internal/api"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateTodo(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req api.CreateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	t, err := h.todos.Create(c.Request.Context(), userID, req.ProjectID, req.Title, req.Description)
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header("Location", "/api/todos/"+strconv.FormatInt(t.ID, 10))
	c.JSON(http.StatusCreated, api.FromTodo(*t))
}

func (h *Handler) GetTodo(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	t, err := h.todos.Get(c.Request.Context(), userID, id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.FromTodo(*t))
}

func (h *Handler) UpdateTodo(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req api.UpdateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	t, err := h.todos.Update(c.Request.Context(), userID, id, req.Title, req.Description)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.FromTodo(*t))
}

func (h *Handler) DeleteTodo(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.todos.Delete(c.Request.Context(), userID, id); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// CompleteTodo flips the completion flag; calling it twice restores the original state.
func (h *Handler) CompleteTodo(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	t, err := h.todos.Toggle(c.Request.Context(), userID, id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.FromTodo(*t))
}
