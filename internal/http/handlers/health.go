package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db        Pinger
	storage   string
	startTime time.Time
	version   string
}

// NewHealthHandler builds the health endpoints. db is nil when the API runs on
// the in-memory store; there is nothing to ping then.
func NewHealthHandler(db Pinger, storage, version string) *HealthHandler {
	return &HealthHandler{
		db:        db,
		storage:   storage,
		startTime: time.Now(),
		version:   version,
	}
}

// StorageStatus describes the backend the todo data lives in.
type StorageStatus struct {
	Backend    string `json:"backend"`
	Persistent bool   `json:"persistent"`
	Reachable  bool   `json:"reachable"`
	Error      string `json:"error,omitempty"`
}

type HealthResponse struct {
	Status    string        `json:"status"`
	Version   string        `json:"version,omitempty"`
	Uptime    string        `json:"uptime,omitempty"`
	Timestamp string        `json:"timestamp"`
	Storage   StorageStatus `json:"storage"`
}

// Liveness only says the process answers.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness reports the storage backend in full and fails while it is unreachable.
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	st := h.checkStorage(ctx)
	c.JSON(statusCode(st), HealthResponse{
		Status:    statusText(st),
		Version:   h.version,
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Storage:   st,
	})
}

// Health is the short form: status, version and backend name.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	st := h.checkStorage(ctx)
	c.JSON(statusCode(st), gin.H{
		"status":  statusText(st),
		"version": h.version,
		"storage": st.Backend,
	})
}

func (h *HealthHandler) checkStorage(ctx context.Context) StorageStatus {
	st := StorageStatus{Backend: h.storage, Persistent: h.db != nil, Reachable: true}
	if h.db == nil {
		return st
	}
	if err := h.db.Ping(ctx); err != nil {
		st.Reachable = false
		st.Error = "database unavailable"
	}
	return st
}

func statusCode(st StorageStatus) int {
	if !st.Reachable {
		return http.StatusServiceUnavailable
	}
	return http.StatusOK
}

func statusText(st StorageStatus) string {
	if !st.Reachable {
		return "unhealthy"
	}
	return "ok"
}
