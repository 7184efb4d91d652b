package graphql

import (
	"sort"

	"github.com/Bama-S/capec-rel/internal/models"
)

// idsToGQL converts node ids to plain ints, which graphql.Int can serialize.
func idsToGQL(ids []models.NodeID) []int {
	out := make([]int, len(ids))
	for i, id := range ids {
		out[i] = int(id)
	}

	return out
}

// analysisToGQL flattens a NodeAnalysis into the field names of the Node type.
func analysisToGQL(a *models.NodeAnalysis) map[string]any {
	if a == nil {
		return nil
	}

	return map[string]any{
		"id":            int(a.Node),
		"exists":        a.Exists,
		"parents":       idsToGQL(a.Parents),
		"children":      idsToGQL(a.Children),
		"grandparents":  idsToGQL(a.Grandparents),
		"grandchildren": idsToGQL(a.Grandchildren),
		"peers":         idsToGQL(a.Peers),
		"canPrecede":    idsToGQL(a.CanPrecede),
		"canFollow":     idsToGQL(a.CanFollow),
		"ancestors":     idsToGQL(a.Ancestors),
		"descendants":   idsToGQL(a.Descendants),
		"isRoot":        a.IsRoot,
		"isLeaf":        a.IsLeaf,
		"related":       idsToGQL(a.Related),
	}
}

// edgeToGQL converts a models.Edge to the Edge type.
func edgeToGQL(e models.Edge) map[string]any {
	return map[string]any{
		"source": int(e.Source),
		"target": int(e.Target),
		"kind":   string(e.Kind),
	}
}

// subgraphToGQL converts a models.Subgraph to the Subgraph type.
func subgraphToGQL(sg *models.Subgraph) map[string]any {
	if sg == nil {
		return nil
	}

	edges := make([]map[string]any, len(sg.Edges))
	for i, e := range sg.Edges {
		edges[i] = edgeToGQL(e)
	}

	return map[string]any{
		"focus": int(sg.Focus),
		"nodes": idsToGQL(sg.Nodes),
		"edges": edges,
	}
}

// statsToGQL converts models.GraphStats to the Stats type. Per-kind counts
// are listed in kind order.
func statsToGQL(s models.GraphStats) map[string]any {
	kinds := make([]string, 0, len(s.EdgesByKind))
	for k := range s.EdgesByKind {
		kinds = append(kinds, string(k))
	}
	sort.Strings(kinds)

	byKind := make([]map[string]any, len(kinds))
	for i, k := range kinds {
		byKind[i] = map[string]any{
			"kind":  k,
			"count": s.EdgesByKind[models.RelationKind(k)],
		}
	}

	return map[string]any{
		"nodes":          s.Nodes,
		"edges":          s.Edges,
		"collapsedEdges": s.CollapsedEdges,
		"roots":          s.Roots,
		"leaves":         s.Leaves,
		"edgesByKind":    byKind,
	}
}
