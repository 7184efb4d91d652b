package service

import (
	"github.com/sirupsen/logrus"

	"github.com/Bama-S/capec-rel/internal/metrics"
	"github.com/Bama-S/capec-rel/internal/models"
)

// Analyze computes every relation set for n. Unknown nodes yield empty sets
// and false flags.
func (s *QueryService) Analyze(n models.NodeID) *models.NodeAnalysis {
	metrics.QueriesTotal.WithLabelValues("analyze").Inc()

	a := s.analyze(n)

	s.log.WithFields(logrus.Fields{
		"node_id": n,
		"exists":  a.Exists,
		"related": len(a.Related),
	}).Debug("relations.analyze")

	return a
}

// Subgraph returns the neighborhood of n: n plus every node Analyze relates
// to it, joined by the collapsed edges among them.
func (s *QueryService) Subgraph(n models.NodeID) *models.Subgraph {
	metrics.QueriesTotal.WithLabelValues("subgraph").Inc()

	return s.SubgraphOf(s.analyze(n))
}

// SubgraphOf builds the neighborhood drawn for an analysis already computed
// by Analyze. It runs no query of its own.
func (s *QueryService) SubgraphOf(a *models.NodeAnalysis) *models.Subgraph {
	nodes := relatedSet(a)

	sg := &models.Subgraph{
		Focus: a.Node,
		Nodes: nodes.Sorted(),
		Edges: s.collapsed.Induced(nodes),
	}

	s.log.WithFields(logrus.Fields{
		"node_id": a.Node,
		"nodes":   len(sg.Nodes),
		"edges":   len(sg.Edges),
	}).Debug("relations.subgraph")

	return sg
}

// Stats summarizes the loaded graphs.
func (s *QueryService) Stats() models.GraphStats {
	byKind := make(map[models.RelationKind]int)
	for _, e := range s.mg.Edges() {
		byKind[e.Kind]++
	}

	return models.GraphStats{
		Nodes:          s.mg.NodeCount(),
		Edges:          s.mg.EdgeCount(),
		CollapsedEdges: s.collapsed.EdgeCount(),
		Roots:          len(s.roots),
		Leaves:         len(s.leaves),
		EdgesByKind:    byKind,
	}
}

func (s *QueryService) analyze(n models.NodeID) *models.NodeAnalysis {
	a := &models.NodeAnalysis{
		Node:          n,
		Exists:        s.mg.HasNode(n),
		Parents:       s.Parents(n),
		Grandparents:  s.Grandparents(n),
		Children:      s.Children(n),
		Grandchildren: s.Grandchildren(n),
		Peers:         s.Peers(n),
		CanPrecede:    s.CanPrecede(n),
		CanFollow:     s.CanFollow(n),
		Ancestors:     s.Ancestors(n),
		Descendants:   s.Descendants(n),
		IsRoot:        s.IsRoot(n),
		IsLeaf:        s.IsLeaf(n),
	}
	a.Related = relatedSet(a).Sorted()

	return a
}

func relatedSet(a *models.NodeAnalysis) models.NodeSet {
	set := make(models.NodeSet)
	set.Add(a.Node)

	for _, group := range [][]models.NodeID{
		a.Parents, a.Grandparents, a.Children, a.Grandchildren, a.Peers,
		a.CanPrecede, a.CanFollow, a.Ancestors, a.Descendants,
	} {
		set.Add(group...)
	}

	return set
}
