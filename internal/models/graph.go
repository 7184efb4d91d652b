package models

// NodeAnalysis holds every relation set computed for one node.
type NodeAnalysis struct {
	Node          NodeID   `json:"node"`
	Exists        bool     `json:"exists"`
	Parents       []NodeID `json:"parents"`
	Grandparents  []NodeID `json:"grandparents"`
	Children      []NodeID `json:"children"`
	Grandchildren []NodeID `json:"grandchildren"`
	Peers         []NodeID `json:"peers"`
	CanPrecede    []NodeID `json:"can_precede"`
	CanFollow     []NodeID `json:"can_follow"`
	Ancestors     []NodeID `json:"ancestors"`
	Descendants   []NodeID `json:"descendants"`
	IsRoot        bool     `json:"is_root"`
	IsLeaf        bool     `json:"is_leaf"`
	Related       []NodeID `json:"related"`
}

// Subgraph is the induced neighborhood of a node handed to renderers.
type Subgraph struct {
	Focus NodeID   `json:"focus"`
	Nodes []NodeID `json:"nodes"`
	Edges []Edge   `json:"edges"`
}

// GraphStats summarizes the loaded graph.
type GraphStats struct {
	Nodes          int                  `json:"nodes"`
	Edges          int                  `json:"edges"`
	CollapsedEdges int                  `json:"collapsed_edges"`
	Roots          int                  `json:"roots"`
	Leaves         int                  `json:"leaves"`
	EdgesByKind    map[RelationKind]int `json:"edges_by_kind"`
}
