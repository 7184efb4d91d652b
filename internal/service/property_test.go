package service_test

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/Bama-S/capec-rel/internal/graph"
	"github.com/Bama-S/capec-rel/internal/models"
	"github.com/Bama-S/capec-rel/internal/service"
)

var kinds = []models.RelationKind{
	models.KindChildOf, models.KindPeerOf, models.KindCanPrecede, "targets",
}

func serviceFromTriples(t *testing.T, raw []int) (*graph.Multigraph, *service.QueryService) {
	mg := graph.NewMultigraph()
	for i := 0; i+2 < len(raw); i += 3 {
		_ = mg.AddEdge(models.NodeID(raw[i]), models.NodeID(raw[i+1]), kinds[raw[i+2]%len(kinds)])
	}
	mg.Freeze()

	svc, err := service.NewQueryService(mg, testLogger())
	if err != nil {
		t.Fatalf("NewQueryService: %v", err)
	}

	return mg, svc
}

func has(list []models.NodeID, n models.NodeID) bool {
	for _, m := range list {
		if m == n {
			return true
		}
	}
	return false
}

func TestQueryProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)
	edgeList := gen.SliceOf(gen.IntRange(0, 9))

	properties.Property("every parent lists the node as a child", prop.ForAll(
		func(raw []int) bool {
			mg, svc := serviceFromTriples(t, raw)
			for _, n := range mg.Nodes() {
				for _, p := range svc.Parents(n) {
					if !has(svc.Children(p), n) {
						return false
					}
				}
			}
			return true
		},
		edgeList,
	))

	properties.Property("peers are symmetric", prop.ForAll(
		func(raw []int) bool {
			mg, svc := serviceFromTriples(t, raw)
			for _, n := range mg.Nodes() {
				for _, m := range svc.Peers(n) {
					if !has(svc.Peers(m), n) {
						return false
					}
				}
			}
			return true
		},
		edgeList,
	))

	properties.Property("can-precede and can-follow are converse", prop.ForAll(
		func(raw []int) bool {
			mg, svc := serviceFromTriples(t, raw)
			for _, n := range mg.Nodes() {
				for _, m := range svc.CanPrecede(n) {
					if !has(svc.CanFollow(m), n) {
						return false
					}
				}
			}
			return true
		},
		edgeList,
	))

	properties.Property("roots and leaves follow degrees", prop.ForAll(
		func(raw []int) bool {
			mg, svc := serviceFromTriples(t, raw)
			for _, n := range mg.Nodes() {
				if svc.IsRoot(n) != (mg.InDegree(n) == 0) || svc.IsLeaf(n) != (mg.OutDegree(n) == 0) {
					return false
				}
			}
			return true
		},
		edgeList,
	))

	properties.Property("analysis is idempotent", prop.ForAll(
		func(raw []int, probe int) bool {
			_, svc := serviceFromTriples(t, raw)
			a, b := svc.Analyze(models.NodeID(probe)), svc.Analyze(models.NodeID(probe))
			return equalIDs(a.Related, b.Related) && equalIDs(a.Ancestors, b.Ancestors) && a.IsRoot == b.IsRoot
		},
		edgeList,
		gen.IntRange(0, 12),
	))

	properties.TestingRun(t)
}

func equalIDs(a, b []models.NodeID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
