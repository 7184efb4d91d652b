package api

import (
	"github.com/Bama-S/capec-rel/internal/domain"
	"github.com/Bama-S/capec-rel/internal/models"
)

// Compile-time check: every handler interface is a subset of domain.RelationService.
var (
	_ NodeService  = domain.RelationService(nil)
	_ GraphService = domain.RelationService(nil)
	_ StatsService = domain.RelationService(nil)
)

// NodeService defines the per-node queries used by NodeHandler and PageHandler.
// It is a subset of domain.RelationService.
type NodeService interface {
	Analyze(node models.NodeID) *models.NodeAnalysis
	Subgraph(node models.NodeID) *models.Subgraph
	SubgraphOf(analysis *models.NodeAnalysis) *models.Subgraph
}

// GraphService defines the whole-graph queries used by GraphHandler.
type GraphService interface {
	Roots() []models.NodeID
	Leaves() []models.NodeID
}

// StatsService defines the summary used by StatsHandler and HealthHandler.
type StatsService interface {
	Stats() models.GraphStats
}
