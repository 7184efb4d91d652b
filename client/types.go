package client

import "github.com/Bama-S/capec-rel/internal/models"

// NodeAnalysis, Subgraph and Stats share their wire shape with the server.
type (
	NodeAnalysis = models.NodeAnalysis
	Subgraph     = models.Subgraph
	Stats        = models.GraphStats
	NodeID       = models.NodeID
)

// HealthResponse is returned by GET /api/v1/health.
type HealthResponse struct {
	Status        string  `json:"status"`
	Version       string  `json:"version"`
	Graph         string  `json:"graph"`
	Nodes         int     `json:"nodes"`
	Edges         int     `json:"edges"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

// StatsResponse is returned by GET /api/v1/stats.
type StatsResponse = Stats

type rootsResponse struct {
	Roots []NodeID `json:"roots"`
	Count int      `json:"count"`
}

type leavesResponse struct {
	Leaves []NodeID `json:"leaves"`
	Count  int      `json:"count"`
}
