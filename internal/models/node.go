// Package models defines data types for the CAPEC relation graph.
package models

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// NodeID identifies a CAPEC attack-pattern entry.
type NodeID int64

// String returns the decimal form of the identifier.
func (n NodeID) String() string {
	return strconv.FormatInt(int64(n), 10)
}

// ParseNodeID parses a decimal node identifier. Surrounding whitespace and a
// trailing ".0" (how spreadsheet exports write integer columns) are tolerated.
func ParseNodeID(s string) (NodeID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidNodeID
	}

	s = strings.TrimSuffix(s, ".0")

	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNodeID, s)
	}

	return NodeID(v), nil
}

// SortNodeIDs sorts ids ascending in place and returns them.
func SortNodeIDs(ids []NodeID) []NodeID {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return ids
}

// NodeSet is an unordered collection of node identifiers.
type NodeSet map[NodeID]struct{}

// Add inserts ids into the set.
func (s NodeSet) Add(ids ...NodeID) {
	for _, id := range ids {
		s[id] = struct{}{}
	}
}

// Has reports whether id is in the set.
func (s NodeSet) Has(id NodeID) bool {
	_, ok := s[id]

	return ok
}

// Sorted returns the members ascending. An empty set yields an empty, non-nil slice.
func (s NodeSet) Sorted() []NodeID {
	out := make([]NodeID, 0, len(s))
	for id := range s {
		out = append(out, id)
	}

	return SortNodeIDs(out)
}
