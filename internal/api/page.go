package api

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Bama-S/capec-rel/internal/models"
	"github.com/Bama-S/capec-rel/internal/visualization"
)

//go:embed templates/*.html
var templateFS embed.FS

// pageTemplates parses the embedded HTML templates.
func pageTemplates() *template.Template {
	return template.Must(template.New("").ParseFS(templateFS, "templates/*.html"))
}

// PageHandler serves the interactive analysis page.
type PageHandler struct {
	svc      NodeService
	renderer *visualization.Renderer
	log      *logrus.Logger
}

// NewPageHandler creates a PageHandler with the given service, renderer and logger.
func NewPageHandler(svc NodeService, renderer *visualization.Renderer, log *logrus.Logger) *PageHandler {
	return &PageHandler{svc: svc, renderer: renderer, log: log}
}

// relationSection is one labelled list on the page.
type relationSection struct {
	Title string
	IDs   []models.NodeID
}

// pageData feeds templates/index.html.
type pageData struct {
	Query    string
	Error    string
	Analysis *models.NodeAnalysis
	Sections []relationSection
	Graph    template.HTML
}

// Index handles GET /: renders the empty form.
func (h *PageHandler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", pageData{})
}

// Analyze handles GET /analyze?node=<id>: renders every relation list and
// the neighborhood drawing for the node.
func (h *PageHandler) Analyze(c *gin.Context) {
	raw := c.Query("node")
	data := pageData{Query: raw}

	nodeID, err := parseNodeID(raw)
	if err != nil {
		data.Error = err.Error()
		c.HTML(http.StatusBadRequest, "index.html", data)

		return
	}

	a := h.svc.Analyze(nodeID)
	data.Analysis = a
	data.Sections = []relationSection{
		{Title: "Parents", IDs: a.Parents},
		{Title: "Grandparents", IDs: a.Grandparents},
		{Title: "Children", IDs: a.Children},
		{Title: "Grandchildren", IDs: a.Grandchildren},
		{Title: "Peers", IDs: a.Peers},
		{Title: "Can Precede", IDs: a.CanPrecede},
		{Title: "Can Follow", IDs: a.CanFollow},
		{Title: "Ancestors", IDs: a.Ancestors},
		{Title: "Descendants", IDs: a.Descendants},
	}

	// Node labels are integers and kind labels are escaped by the renderer.
	data.Graph = template.HTML(h.renderer.SVG(h.svc.SubgraphOf(a))) //nolint:gosec // see above.

	h.log.WithFields(logrus.Fields{"action": "page.analyze", "node_id": nodeID, "exists": a.Exists}).Info("audit")

	c.HTML(http.StatusOK, "index.html", data)
}
