package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// GraphHandler serves whole-graph listings.
type GraphHandler struct {
	svc GraphService
	log *logrus.Logger
}

// NewGraphHandler creates a GraphHandler with the given service and logger.
func NewGraphHandler(svc GraphService, log *logrus.Logger) *GraphHandler {
	return &GraphHandler{svc: svc, log: log}
}

// Roots handles GET /api/v1/roots.
func (h *GraphHandler) Roots(c *gin.Context) {
	roots := h.svc.Roots()

	h.log.WithFields(logrus.Fields{"action": "graph.roots", "count": len(roots)}).Debug("audit")

	c.JSON(http.StatusOK, gin.H{"roots": roots, "count": len(roots)})
}

// Leaves handles GET /api/v1/leaves.
func (h *GraphHandler) Leaves(c *gin.Context) {
	leaves := h.svc.Leaves()

	h.log.WithFields(logrus.Fields{"action": "graph.leaves", "count": len(leaves)}).Debug("audit")

	c.JSON(http.StatusOK, gin.H{"leaves": leaves, "count": len(leaves)})
}
