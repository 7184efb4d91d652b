package api_test

import (
	"sync"

	"github.com/Bama-S/capec-rel/internal/models"
)

// mockRelations implements domain.RelationService for testing. Unset
// functions answer as if the graph were empty.
type mockRelations struct {
	analyzeFn  func(n models.NodeID) *models.NodeAnalysis
	subgraphFn func(n models.NodeID) *models.Subgraph
	rootsFn    func() []models.NodeID
	leavesFn   func() []models.NodeID
	statsFn    func() models.GraphStats

	mu    sync.Mutex
	calls map[string]int
}

func (m *mockRelations) record(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.calls == nil {
		m.calls = make(map[string]int)
	}
	m.calls[name]++
}

func (m *mockRelations) count(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.calls[name]
}

func (m *mockRelations) Analyze(n models.NodeID) *models.NodeAnalysis {
	m.record("Analyze")
	if m.analyzeFn != nil {
		return m.analyzeFn(n)
	}

	return emptyAnalysis(n)
}

func emptyAnalysis(n models.NodeID) *models.NodeAnalysis {
	empty := []models.NodeID{}

	return &models.NodeAnalysis{
		Node: n, Parents: empty, Grandparents: empty, Children: empty,
		Grandchildren: empty, Peers: empty, CanPrecede: empty, CanFollow: empty,
		Ancestors: empty, Descendants: empty, Related: []models.NodeID{n},
	}
}

func (m *mockRelations) Subgraph(n models.NodeID) *models.Subgraph {
	m.record("Subgraph")
	if m.subgraphFn != nil {
		return m.subgraphFn(n)
	}

	return &models.Subgraph{Focus: n, Nodes: []models.NodeID{n}, Edges: []models.Edge{}}
}

// SubgraphOf reuses subgraphFn keyed by the analyzed node.
func (m *mockRelations) SubgraphOf(a *models.NodeAnalysis) *models.Subgraph {
	m.record("SubgraphOf")
	if m.subgraphFn != nil {
		return m.subgraphFn(a.Node)
	}

	return &models.Subgraph{Focus: a.Node, Nodes: []models.NodeID{a.Node}, Edges: []models.Edge{}}
}

func (m *mockRelations) Roots() []models.NodeID {
	if m.rootsFn != nil {
		return m.rootsFn()
	}

	return []models.NodeID{}
}

func (m *mockRelations) Leaves() []models.NodeID {
	if m.leavesFn != nil {
		return m.leavesFn()
	}

	return []models.NodeID{}
}

func (m *mockRelations) Stats() models.GraphStats {
	if m.statsFn != nil {
		return m.statsFn()
	}

	return models.GraphStats{EdgesByKind: map[models.RelationKind]int{}}
}

// chainRelations models 1 > 2 > 3 with 2 ~ 4.
func chainRelations() *mockRelations {
	return &mockRelations{
		analyzeFn: func(n models.NodeID) *models.NodeAnalysis {
			if n != 2 {
				return emptyAnalysis(n)
			}

			return &models.NodeAnalysis{
				Node: 2, Exists: true,
				Parents: ids(1), Grandparents: ids(), Children: ids(3), Grandchildren: ids(),
				Peers: ids(4), CanPrecede: ids(), CanFollow: ids(),
				Ancestors: ids(1), Descendants: ids(3, 4), Related: ids(1, 2, 3, 4),
			}
		},
		subgraphFn: func(n models.NodeID) *models.Subgraph {
			return &models.Subgraph{
				Focus: n,
				Nodes: ids(1, 2, 3, 4),
				Edges: []models.Edge{
					{Source: 1, Target: 2, Kind: models.KindChildOf},
					{Source: 2, Target: 3, Kind: models.KindChildOf},
					{Source: 2, Target: 4, Kind: models.KindPeerOf},
				},
			}
		},
		rootsFn:  func() []models.NodeID { return ids(1) },
		leavesFn: func() []models.NodeID { return ids(3, 4) },
		statsFn: func() models.GraphStats {
			return models.GraphStats{
				Nodes: 4, Edges: 3, CollapsedEdges: 3, Roots: 1, Leaves: 2,
				EdgesByKind: map[models.RelationKind]int{models.KindChildOf: 2, models.KindPeerOf: 1},
			}
		},
	}
}
