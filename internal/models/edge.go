package models

import "strings"

// RelationKind is the open tag carried by an edge. Only a few kinds have
// dedicated queries; any other tag is stored and rendered as-is.
type RelationKind string

// Relation kinds with dedicated queries.
const (
	// KindChildOf is the hierarchy relation. Edges of this kind run from the
	// more general entry to the more specific one.
	KindChildOf RelationKind = "childof"
	// KindPeerOf is a symmetric association; direction carries no meaning.
	KindPeerOf RelationKind = "peerof"
	// KindCanPrecede is directed sequencing in an attack chain.
	KindCanPrecede RelationKind = "canprecede"
)

// NormalizeKind lower-cases and trims a raw relation token.
func NormalizeKind(raw string) RelationKind {
	return RelationKind(strings.ToLower(strings.TrimSpace(raw)))
}

// Edge represents a directed, typed relationship between two nodes.
type Edge struct {
	Source NodeID       `json:"source"`
	Target NodeID       `json:"target"`
	Kind   RelationKind `json:"kind"`
}

// Reversed returns the edge with its endpoints swapped.
func (e Edge) Reversed() Edge {
	return Edge{Source: e.Target, Target: e.Source, Kind: e.Kind}
}
