package graph

import (
	"github.com/Bama-S/capec-rel/internal/models"
)

// pair is an ordered (source, target) key.
type pair struct {
	source models.NodeID
	target models.NodeID
}

// Collapsed is a simple directed graph derived from a Multigraph: at most one
// edge per ordered pair, labelled with the first kind seen for that pair in
// the Multigraph's insertion order. Relation kinds play no part in its
// reachability queries.
type Collapsed struct {
	edges []models.Edge
	kinds map[pair]models.RelationKind
	succ  map[models.NodeID][]models.NodeID
	pred  map[models.NodeID][]models.NodeID
}

// NewCollapsed derives the collapsed view. The multigraph must be frozen so
// the view cannot go stale.
func NewCollapsed(mg *Multigraph) (*Collapsed, error) {
	if !mg.Frozen() {
		return nil, models.ErrNotFrozen
	}

	c := &Collapsed{
		kinds: make(map[pair]models.RelationKind),
		succ:  make(map[models.NodeID][]models.NodeID),
		pred:  make(map[models.NodeID][]models.NodeID),
	}

	for _, e := range mg.Edges() {
		key := pair{source: e.Source, target: e.Target}
		if _, seen := c.kinds[key]; seen {
			continue
		}

		c.kinds[key] = e.Kind
		c.edges = append(c.edges, e)
		c.succ[e.Source] = append(c.succ[e.Source], e.Target)
		c.pred[e.Target] = append(c.pred[e.Target], e.Source)
	}

	return c, nil
}

// HasEdge reports whether the collapsed graph has an edge u -> v.
func (c *Collapsed) HasEdge(u, v models.NodeID) bool {
	_, ok := c.kinds[pair{source: u, target: v}]

	return ok
}

// Kind returns the label kept for u -> v.
func (c *Collapsed) Kind(u, v models.NodeID) (models.RelationKind, bool) {
	k, ok := c.kinds[pair{source: u, target: v}]

	return k, ok
}

// Edges returns the collapsed edges in the order they were first seen.
func (c *Collapsed) Edges() []models.Edge {
	out := make([]models.Edge, len(c.edges))
	copy(out, c.edges)

	return out
}

// EdgeCount returns the number of distinct ordered pairs.
func (c *Collapsed) EdgeCount() int { return len(c.edges) }

// Ancestors returns every node with a directed path to n, ascending.
func (c *Collapsed) Ancestors(n models.NodeID) []models.NodeID {
	return reach(n, c.pred)
}

// Descendants returns every node reachable from n, ascending.
func (c *Collapsed) Descendants(n models.NodeID) []models.NodeID {
	return reach(n, c.succ)
}

// Induced returns the collapsed edges whose endpoints are both in nodes.
func (c *Collapsed) Induced(nodes models.NodeSet) []models.Edge {
	out := make([]models.Edge, 0)
	for _, e := range c.edges {
		if nodes.Has(e.Source) && nodes.Has(e.Target) {
			out = append(out, e)
		}
	}

	return out
}

// reach runs a BFS from start over adj. start itself is only reported when a
// cycle leads back to it.
func reach(start models.NodeID, adj map[models.NodeID][]models.NodeID) []models.NodeID {
	found := make(models.NodeSet)
	queued := map[models.NodeID]bool{start: true}
	frontier := []models.NodeID{start}

	for len(frontier) > 0 {
		var next []models.NodeID

		for _, n := range frontier {
			for _, m := range adj[n] {
				found.Add(m)
				if !queued[m] {
					queued[m] = true
					next = append(next, m)
				}
			}
		}

		frontier = next
	}

	return found.Sorted()
}
