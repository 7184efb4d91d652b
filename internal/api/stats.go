package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// StatsHandler serves the relation graph statistics endpoint.
type StatsHandler struct {
	svc StatsService
	log *logrus.Logger
}

// NewStatsHandler creates a StatsHandler with the given dependencies.
func NewStatsHandler(svc StatsService, log *logrus.Logger) *StatsHandler {
	return &StatsHandler{svc: svc, log: log}
}

// GetStats handles GET /api/v1/stats: returns node, edge, root and leaf counts.
func (h *StatsHandler) GetStats(c *gin.Context) {
	stats := h.svc.Stats()

	h.log.WithFields(logrus.Fields{"action": "stats.get", "nodes": stats.Nodes, "edges": stats.Edges}).Debug("audit")

	c.JSON(http.StatusOK, stats)
}
