// Package domain defines the relation service shared by the interaction shells.
// The HTTP handlers narrow it to the methods each one calls; the wiring in
// RouterDeps, the GraphQL resolver and the terminal model takes the full set.
package domain

import (
	"github.com/Bama-S/capec-rel/internal/models"
)

// RelationService answers neighborhood queries over the loaded relation graph.
// Implementations are read-only and safe for concurrent use.
type RelationService interface {
	Analyze(node models.NodeID) *models.NodeAnalysis
	Subgraph(node models.NodeID) *models.Subgraph
	SubgraphOf(analysis *models.NodeAnalysis) *models.Subgraph
	Roots() []models.NodeID
	Leaves() []models.NodeID
	Stats() models.GraphStats
}
