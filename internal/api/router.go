package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/Bama-S/capec-rel/internal/domain"
	gql "github.com/Bama-S/capec-rel/internal/graphql"
	"github.com/Bama-S/capec-rel/internal/middleware"
	"github.com/Bama-S/capec-rel/internal/visualization"
)

// RouterDeps holds all dependencies needed by the router.
type RouterDeps struct {
	Log           *logrus.Logger
	Relations     domain.RelationService
	Renderer      *visualization.Renderer
	CORSOrigins   []string
	Version       string
	EnableGraphQL bool
}

// Router-level limits.
const (
	maxBodySize = 1 << 20 // 1 MB
)

// setupMiddleware configures all middleware on the Gin engine.
func setupMiddleware(r *gin.Engine, deps *RouterDeps) {
	r.SetTrustedProxies(nil) //nolint:errcheck // nil always succeeds.
	r.Use(middleware.RequestID(deps.Log))
	r.Use(ginLogger(deps.Log))
	r.Use(gin.Recovery())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.MaxBodySize(maxBodySize))

	// cors rejects an empty origin list; no origins means same-origin only.
	if len(deps.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     deps.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Content-Type"},
			MaxAge:           1 * time.Hour,
			AllowCredentials: false,
		}))
	}

	r.Use(middleware.PrometheusMiddleware())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// registerPages sets up the HTML analysis page.
func registerPages(r *gin.Engine, deps *RouterDeps) {
	page := NewPageHandler(deps.Relations, deps.Renderer, deps.Log)

	r.SetHTMLTemplate(pageTemplates())
	r.GET("/", page.Index)
	r.GET("/analyze", page.Analyze)
}

// registerRoutes sets up all API route handlers on the given router group.
func registerRoutes(api *gin.RouterGroup, deps *RouterDeps) error {
	log := deps.Log

	health := NewHealthHandler(deps.Relations, log, deps.Version)
	nodes := NewNodeHandler(deps.Relations, deps.Renderer, log)
	graph := NewGraphHandler(deps.Relations, log)
	stats := NewStatsHandler(deps.Relations, log)

	api.GET("/health", health.Liveness)
	api.GET("/stats", stats.GetStats)

	// Nodes.
	api.GET("/nodes/:id", nodes.Get)
	api.GET("/nodes/:id/subgraph", nodes.Subgraph)

	// Whole-graph listings.
	api.GET("/roots", graph.Roots)
	api.GET("/leaves", graph.Leaves)

	if deps.EnableGraphQL {
		if err := registerGraphQL(api, deps); err != nil {
			return err
		}
	}

	return nil
}

// registerGraphQL sets up the GraphQL endpoint.
func registerGraphQL(api *gin.RouterGroup, deps *RouterDeps) error {
	schema, err := gql.NewSchema(&gql.Resolver{Relations: deps.Relations, Log: deps.Log})
	if err != nil {
		return fmt.Errorf("registering graphql: %w", err)
	}

	handler := gql.Handler(schema, deps.Log)
	api.POST("/graphql", handler)
	api.GET("/graphql", handler)

	return nil
}

// NewRouter creates and configures the Gin engine with all middleware and routes.
func NewRouter(deps *RouterDeps) (http.Handler, error) {
	if deps.Renderer == nil {
		deps.Renderer = visualization.NewRenderer(nil)
	}

	r := gin.New()
	setupMiddleware(r, deps)
	registerPages(r, deps)

	if err := registerRoutes(r.Group("/api/v1"), deps); err != nil {
		return nil, err
	}

	return r, nil
}
