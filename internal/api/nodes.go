package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Bama-S/capec-rel/internal/visualization"
)

// NodeHandler serves per-node analysis endpoints.
type NodeHandler struct {
	svc      NodeService
	renderer *visualization.Renderer
	log      *logrus.Logger
}

// NewNodeHandler creates a NodeHandler with the given service, renderer and logger.
func NewNodeHandler(svc NodeService, renderer *visualization.Renderer, log *logrus.Logger) *NodeHandler {
	return &NodeHandler{svc: svc, renderer: renderer, log: log}
}

// Get handles GET /api/v1/nodes/:id. Unknown ids are answered with empty
// relation sets and exists=false.
func (h *NodeHandler) Get(c *gin.Context) {
	nodeID, ok := parseNodeParam(c, c.Param("id"))
	if !ok {
		return
	}

	analysis := h.svc.Analyze(nodeID)

	h.log.WithFields(logrus.Fields{"action": "node.get", "node_id": nodeID, "exists": analysis.Exists}).Info("audit")

	c.JSON(http.StatusOK, analysis)
}

// Subgraph handles GET /api/v1/nodes/:id/subgraph?format=json|svg|dot|mermaid.
func (h *NodeHandler) Subgraph(c *gin.Context) {
	nodeID, ok := parseNodeParam(c, c.Param("id"))
	if !ok {
		return
	}

	format := visualization.OutputFormat(c.DefaultQuery("format", string(visualization.FormatJSON)))
	sg := h.svc.Subgraph(nodeID)

	if format == visualization.FormatJSON {
		c.JSON(http.StatusOK, sg)
		return
	}

	out, err := h.renderer.Render(sg, format)
	if err != nil {
		if errors.Is(err, visualization.ErrUnsupportedFormat) {
			respondError(c, http.StatusBadRequest, ErrCodeUnsupportedFormat, "format must be one of json, svg, dot, mermaid")
			return
		}

		h.log.WithError(err).Error("rendering subgraph")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	h.log.WithFields(logrus.Fields{"action": "node.subgraph", "node_id": nodeID, "format": format}).Info("audit")

	c.Data(http.StatusOK, visualization.ContentType(format), []byte(out))
}
