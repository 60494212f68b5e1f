package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"todoapp/internal/domain"
	"todoapp/internal/service"

	"github.com/gin-gonic/gin"
)

// pathID parses a positive integer path parameter. Anything else is answered
// with 404, the same as an id that does not exist.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return 0, false
	}
	return id, true
}

func pagingParams(c *gin.Context) (pageNumber, pageSize int, err error) {
	pageNumber, err = intQuery(c, "pageNumber", service.DefaultPageNumber)
	if err != nil {
		return 0, 0, err
	}
	pageSize, err = intQuery(c, "pageSize", service.DefaultPageSize)
	if err != nil {
		return 0, 0, err
	}
	return pageNumber, pageSize, nil
}

func intQuery(c *gin.Context, name string, def int) (int, error) {
	raw, ok := c.GetQuery(name)
	if !ok {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", domain.ErrValidation, name)
	}
	return n, nil
}
