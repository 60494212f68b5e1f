package handlers

import (
	"net/http"
	"strconv"

	"todoapp/internal/api"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListProjects(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	pageNumber, pageSize, err := pagingParams(c)
	if err != nil {
		writeError(c, err)
		return
	}

	page, err := h.projects.List(c.Request.Context(), userID, pageNumber, pageSize)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.FromProjectPage(page))
}

func (h *Handler) GetProject(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	p, err := h.projects.Get(c.Request.Context(), userID, id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.FromProject(*p))
}

func (h *Handler) CreateProject(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req api.ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	p, err := h.projects.Create(c.Request.Context(), userID, req.Name, req.Description)
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header("Location", "/api/projects/"+strconv.FormatInt(p.ID, 10))
	c.JSON(http.StatusCreated, api.FromProject(*p))
}

func (h *Handler) UpdateProject(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req api.ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	p, err := h.projects.Update(c.Request.Context(), userID, id, req.Name, req.Description)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.FromProject(*p))
}

func (h *Handler) DeleteProject(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.projects.Delete(c.Request.Context(), userID, id); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) ListProjectTodos(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	todos, err := h.projects.ListTodos(c.Request.Context(), userID, id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.FromTodos(todos))
}
