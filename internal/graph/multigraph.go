// Package graph holds the in-memory relation graphs built from a CAPEC export.
//
// A Multigraph is populated once, frozen, and then only read. The Collapsed
// view is derived from a frozen Multigraph for reachability queries.
package graph

import (
	"github.com/Bama-S/capec-rel/internal/models"
)

// Multigraph stores typed directed edges, allowing any number of edges
// (including identical ones) between the same ordered pair of nodes.
// Edges are kept in insertion order, which every iteration follows.
type Multigraph struct {
	edges  []models.Edge
	out    map[models.NodeID][]int
	in     map[models.NodeID][]int
	nodes  models.NodeSet
	frozen bool
}

// NewMultigraph creates an empty, writable Multigraph.
func NewMultigraph() *Multigraph {
	return &Multigraph{
		out:   make(map[models.NodeID][]int),
		in:    make(map[models.NodeID][]int),
		nodes: make(models.NodeSet),
	}
}

// AddNode registers a node that may have no edges.
func (g *Multigraph) AddNode(n models.NodeID) error {
	if g.frozen {
		return models.ErrFrozen
	}

	g.nodes.Add(n)

	return nil
}

// AddEdge appends an edge. Both endpoints join the node set.
func (g *Multigraph) AddEdge(source, target models.NodeID, kind models.RelationKind) error {
	if g.frozen {
		return models.ErrFrozen
	}

	idx := len(g.edges)
	g.edges = append(g.edges, models.Edge{Source: source, Target: target, Kind: kind})
	g.out[source] = append(g.out[source], idx)
	g.in[target] = append(g.in[target], idx)
	g.nodes.Add(source, target)

	return nil
}

// Freeze makes the graph read-only. It is safe to call more than once.
func (g *Multigraph) Freeze() { g.frozen = true }

// Frozen reports whether Freeze has been called.
func (g *Multigraph) Frozen() bool { return g.frozen }

// Edges returns every stored edge in insertion order.
func (g *Multigraph) Edges() []models.Edge {
	out := make([]models.Edge, len(g.edges))
	copy(out, g.edges)

	return out
}

// OutEdges returns the edges whose source is n, in insertion order.
func (g *Multigraph) OutEdges(n models.NodeID) []models.Edge {
	return g.collect(g.out[n])
}

// InEdges returns the edges whose target is n, in insertion order.
func (g *Multigraph) InEdges(n models.NodeID) []models.Edge {
	return g.collect(g.in[n])
}

// OutDegree counts edges leaving n regardless of kind.
func (g *Multigraph) OutDegree(n models.NodeID) int { return len(g.out[n]) }

// InDegree counts edges entering n regardless of kind.
func (g *Multigraph) InDegree(n models.NodeID) int { return len(g.in[n]) }

// HasNode reports whether n is an endpoint of any edge or was added directly.
func (g *Multigraph) HasNode(n models.NodeID) bool { return g.nodes.Has(n) }

// Nodes returns all known node ids ascending.
func (g *Multigraph) Nodes() []models.NodeID { return g.nodes.Sorted() }

// NodeCount returns the number of known nodes.
func (g *Multigraph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of stored edges, duplicates included.
func (g *Multigraph) EdgeCount() int { return len(g.edges) }

func (g *Multigraph) collect(idx []int) []models.Edge {
	out := make([]models.Edge, 0, len(idx))
	for _, i := range idx {
		out = append(out, g.edges[i])
	}

	return out
}
