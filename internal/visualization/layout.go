// Package visualization lays out and renders the neighborhood subgraph of a node.
package visualization

import (
	"math"
	"math/rand"

	"github.com/Bama-S/capec-rel/internal/models"
)

// DefaultSeed gives every drawing of the same subgraph the same layout.
const DefaultSeed = 42

// Position represents a 2D coordinate.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ForceLayout implements a seeded force-directed layout.
type ForceLayout struct {
	Width      float64
	Height     float64
	Iterations int
	Padding    float64
	Seed       int64
}

// NewForceLayout returns a layout with defaults filled in for zero fields.
func NewForceLayout(width, height float64, iterations int, seed int64) *ForceLayout {
	if width <= 0 {
		width = 960
	}
	if height <= 0 {
		height = 720
	}
	if iterations <= 0 {
		iterations = 50
	}

	return &ForceLayout{Width: width, Height: height, Iterations: iterations, Padding: 50, Seed: seed}
}

// Compute places every node of sg. Nodes are processed in sg.Nodes order, so
// equal inputs and seeds give equal outputs.
func (fl *ForceLayout) Compute(sg *models.Subgraph) map[models.NodeID]Position {
	nodes := sg.Nodes
	if len(nodes) == 0 {
		return make(map[models.NodeID]Position)
	}

	// Single node - center it
	if len(nodes) == 1 {
		return map[models.NodeID]Position{nodes[0]: {X: fl.Width / 2, Y: fl.Height / 2}}
	}

	rng := rand.New(rand.NewSource(fl.Seed)) //nolint:gosec // layout jitter, not security.

	positions := make(map[models.NodeID]Position, len(nodes))
	for _, n := range nodes {
		positions[n] = Position{
			X: rng.Float64()*(fl.Width-2*fl.Padding) + fl.Padding,
			Y: rng.Float64()*(fl.Height-2*fl.Padding) + fl.Padding,
		}
	}

	adj := neighbors(nodes, sg.Edges)

	k := math.Sqrt((fl.Width * fl.Height) / float64(len(nodes))) // Optimal distance
	temperature := fl.Width / 10.0

	for iter := 0; iter < fl.Iterations; iter++ {
		forces := make(map[models.NodeID]Position, len(nodes))

		// Repulsion between all nodes
		for i, a := range nodes {
			for j := i + 1; j < len(nodes); j++ {
				b := nodes[j]
				dx := positions[a].X - positions[b].X
				dy := positions[a].Y - positions[b].Y
				dist := math.Max(math.Sqrt(dx*dx+dy*dy), 0.01)

				force := (k * k) / dist
				fx, fy := (dx/dist)*force, (dy/dist)*force

				forces[a] = Position{X: forces[a].X + fx, Y: forces[a].Y + fy}
				forces[b] = Position{X: forces[b].X - fx, Y: forces[b].Y - fy}
			}
		}

		// Attraction between connected nodes
		for _, a := range nodes {
			for _, b := range adj[a] {
				dx := positions[a].X - positions[b].X
				dy := positions[a].Y - positions[b].Y
				dist := math.Sqrt(dx*dx + dy*dy)
				if dist < 0.01 {
					continue
				}

				force := (dist * dist) / k
				forces[a] = Position{
					X: forces[a].X - (dx/dist)*force,
					Y: forces[a].Y - (dy/dist)*force,
				}
			}
		}

		// Apply forces with cooling
		cool := 1.0 - float64(iter)/float64(fl.Iterations)
		for _, n := range nodes {
			fx, fy := forces[n].X, forces[n].Y
			force := math.Sqrt(fx*fx + fy*fy)
			if force == 0 {
				continue
			}

			step := math.Min(force, temperature) * cool
			positions[n] = Position{
				X: positions[n].X + (fx/force)*step,
				Y: positions[n].Y + (fy/force)*step,
			}
		}

		temperature *= 0.95
	}

	return normalizePositions(positions, fl.Width, fl.Height, fl.Padding)
}

// neighbors builds undirected adjacency lists in edge order, without duplicates
// or self-loops. Forces are summed in this order, so it must not depend on map
// iteration.
func neighbors(nodes []models.NodeID, edges []models.Edge) map[models.NodeID][]models.NodeID {
	adj := make(map[models.NodeID][]models.NodeID, len(nodes))
	for _, n := range nodes {
		adj[n] = nil
	}

	seen := make(map[[2]models.NodeID]bool, 2*len(edges))
	link := func(a, b models.NodeID) {
		if seen[[2]models.NodeID{a, b}] {
			return
		}
		seen[[2]models.NodeID{a, b}] = true
		adj[a] = append(adj[a], b)
	}

	for _, e := range edges {
		if e.Source == e.Target {
			continue
		}
		if _, ok := adj[e.Source]; !ok {
			continue
		}
		if _, ok := adj[e.Target]; !ok {
			continue
		}
		link(e.Source, e.Target)
		link(e.Target, e.Source)
	}

	return adj
}

// normalizePositions scales positions to fit within bounds
func normalizePositions(positions map[models.NodeID]Position, width, height, padding float64) map[models.NodeID]Position {
	minX, maxX := math.MaxFloat64, -math.MaxFloat64
	minY, maxY := math.MaxFloat64, -math.MaxFloat64

	for _, pos := range positions {
		minX = math.Min(minX, pos.X)
		maxX = math.Max(maxX, pos.X)
		minY = math.Min(minY, pos.Y)
		maxY = math.Max(maxY, pos.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY

	if rangeX < 0.01 {
		rangeX = 1
	}
	if rangeY < 0.01 {
		rangeY = 1
	}

	targetWidth := width - 2*padding
	targetHeight := height - 2*padding

	normalized := make(map[models.NodeID]Position, len(positions))
	for n, pos := range positions {
		normalized[n] = Position{
			X: padding + ((pos.X-minX)/rangeX)*targetWidth,
			Y: padding + ((pos.Y-minY)/rangeY)*targetHeight,
		}
	}

	return normalized
}
