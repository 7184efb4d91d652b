// Package service provides the relationship query engine over the loaded graphs.
package service

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Bama-S/capec-rel/internal/domain"
	"github.com/Bama-S/capec-rel/internal/graph"
	"github.com/Bama-S/capec-rel/internal/metrics"
	"github.com/Bama-S/capec-rel/internal/models"
)

// Compile-time check: *QueryService must satisfy domain.RelationService.
var _ domain.RelationService = (*QueryService)(nil)

// QueryService answers relation queries against a frozen multigraph and its
// collapsed view. It holds no mutable state once constructed.
type QueryService struct {
	mg        *graph.Multigraph
	collapsed *graph.Collapsed
	roots     models.NodeSet
	leaves    models.NodeSet
	log       *logrus.Logger
}

// NewQueryService derives the collapsed view from mg and indexes roots and
// leaves. mg must be frozen.
func NewQueryService(mg *graph.Multigraph, log *logrus.Logger) (*QueryService, error) {
	collapsed, err := graph.NewCollapsed(mg)
	if err != nil {
		return nil, fmt.Errorf("building collapsed graph: %w", err)
	}

	s := &QueryService{
		mg:        mg,
		collapsed: collapsed,
		roots:     make(models.NodeSet),
		leaves:    make(models.NodeSet),
		log:       log,
	}

	for _, n := range mg.Nodes() {
		if mg.InDegree(n) == 0 {
			s.roots.Add(n)
		}

		if mg.OutDegree(n) == 0 {
			s.leaves.Add(n)
		}
	}

	metrics.NodeCount.Set(float64(mg.NodeCount()))
	metrics.EdgeCount.Set(float64(mg.EdgeCount()))

	return s, nil
}

// Parents returns the sources of childof edges entering n.
func (s *QueryService) Parents(n models.NodeID) []models.NodeID {
	return s.sourcesOf(n, models.KindChildOf)
}

// Children returns the targets of childof edges leaving n.
func (s *QueryService) Children(n models.NodeID) []models.NodeID {
	return s.targetsOf(n, models.KindChildOf)
}

// Grandparents returns the union of the parents of n's parents.
func (s *QueryService) Grandparents(n models.NodeID) []models.NodeID {
	out := make(models.NodeSet)
	for _, p := range s.Parents(n) {
		out.Add(s.Parents(p)...)
	}

	return out.Sorted()
}

// Grandchildren returns the union of the children of n's children.
func (s *QueryService) Grandchildren(n models.NodeID) []models.NodeID {
	out := make(models.NodeSet)
	for _, c := range s.Children(n) {
		out.Add(s.Children(c)...)
	}

	return out.Sorted()
}

// Peers returns every node joined to n by a peerof edge in either direction.
// n itself appears only through a self-loop.
func (s *QueryService) Peers(n models.NodeID) []models.NodeID {
	out := make(models.NodeSet)

	for _, e := range s.mg.OutEdges(n) {
		if e.Kind == models.KindPeerOf {
			out.Add(e.Target)
		}
	}

	for _, e := range s.mg.InEdges(n) {
		if e.Kind == models.KindPeerOf {
			out.Add(e.Source)
		}
	}

	return out.Sorted()
}

// CanPrecede returns the targets of canprecede edges leaving n.
func (s *QueryService) CanPrecede(n models.NodeID) []models.NodeID {
	return s.targetsOf(n, models.KindCanPrecede)
}

// CanFollow returns the sources of canprecede edges entering n.
func (s *QueryService) CanFollow(n models.NodeID) []models.NodeID {
	return s.sourcesOf(n, models.KindCanPrecede)
}

// Ancestors returns every node with a path to n in the collapsed graph.
func (s *QueryService) Ancestors(n models.NodeID) []models.NodeID {
	return s.collapsed.Ancestors(n)
}

// Descendants returns every node reachable from n in the collapsed graph.
func (s *QueryService) Descendants(n models.NodeID) []models.NodeID {
	return s.collapsed.Descendants(n)
}

// Roots returns all nodes without incoming edges of any kind.
func (s *QueryService) Roots() []models.NodeID {
	metrics.QueriesTotal.WithLabelValues("roots").Inc()
	s.log.WithField("count", len(s.roots)).Debug("relations.roots")

	return s.roots.Sorted()
}

// Leaves returns all nodes without outgoing edges of any kind.
func (s *QueryService) Leaves() []models.NodeID {
	metrics.QueriesTotal.WithLabelValues("leaves").Inc()
	s.log.WithField("count", len(s.leaves)).Debug("relations.leaves")

	return s.leaves.Sorted()
}

// IsRoot reports whether n is a known node without incoming edges.
func (s *QueryService) IsRoot(n models.NodeID) bool { return s.roots.Has(n) }

// IsLeaf reports whether n is a known node without outgoing edges.
func (s *QueryService) IsLeaf(n models.NodeID) bool { return s.leaves.Has(n) }

func (s *QueryService) sourcesOf(n models.NodeID, kind models.RelationKind) []models.NodeID {
	out := make(models.NodeSet)
	for _, e := range s.mg.InEdges(n) {
		if e.Kind == kind {
			out.Add(e.Source)
		}
	}

	return out.Sorted()
}

func (s *QueryService) targetsOf(n models.NodeID, kind models.RelationKind) []models.NodeID {
	out := make(models.NodeSet)
	for _, e := range s.mg.OutEdges(n) {
		if e.Kind == kind {
			out.Add(e.Target)
		}
	}

	return out.Sorted()
}
