// Package api provides HTTP handlers for capec-rel.
package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// HealthHandler serves the health check endpoint.
type HealthHandler struct {
	svc       StatsService
	log       *logrus.Logger
	version   string
	startTime time.Time
}

// NewHealthHandler creates a HealthHandler with the given dependencies.
func NewHealthHandler(svc StatsService, log *logrus.Logger, version string) *HealthHandler {
	return &HealthHandler{
		svc:       svc,
		log:       log,
		version:   version,
		startTime: time.Now(),
	}
}

// healthResponse is the JSON payload returned by the health/liveness endpoint.
type healthResponse struct {
	Status        string  `json:"status"`
	Version       string  `json:"version"`
	Graph         string  `json:"graph"`
	Nodes         int     `json:"nodes"`
	Edges         int     `json:"edges"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

// Liveness handles GET /api/v1/health: returns status, version, graph size and uptime.
func (h *HealthHandler) Liveness(c *gin.Context) {
	resp := healthResponse{
		Status:        "ok",
		Version:       h.version,
		Graph:         "not_loaded",
		UptimeSeconds: time.Since(h.startTime).Seconds(),
	}

	if h.svc != nil {
		stats := h.svc.Stats()
		resp.Graph = "loaded"
		resp.Nodes = stats.Nodes
		resp.Edges = stats.Edges

		if stats.Nodes == 0 {
			resp.Graph = "empty"
		}
	}

	c.JSON(http.StatusOK, resp)
}
