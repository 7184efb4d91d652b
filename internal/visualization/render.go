package visualization

import (
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"math"
	"strings"

	"github.com/Bama-S/capec-rel/internal/models"
)

// OutputFormat specifies the visualization output format.
type OutputFormat string

const (
	FormatJSON    OutputFormat = "json"
	FormatSVG     OutputFormat = "svg"
	FormatDOT     OutputFormat = "dot"
	FormatMermaid OutputFormat = "mermaid"
)

// ErrUnsupportedFormat is returned for an unknown OutputFormat.
var ErrUnsupportedFormat = errors.New("unsupported format")

const nodeRadius = 22

// ContentType returns the MIME type for a rendered format.
func ContentType(format OutputFormat) string {
	switch format {
	case FormatJSON:
		return "application/json"
	case FormatSVG:
		return "image/svg+xml"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Renderer draws subgraphs with a fixed layout configuration.
type Renderer struct {
	layout *ForceLayout
}

// NewRenderer creates a Renderer. A nil layout uses the defaults.
func NewRenderer(layout *ForceLayout) *Renderer {
	if layout == nil {
		layout = NewForceLayout(0, 0, 0, DefaultSeed)
	}

	return &Renderer{layout: layout}
}

// Render produces sg in the requested format.
func (r *Renderer) Render(sg *models.Subgraph, format OutputFormat) (string, error) {
	if sg == nil {
		return "", fmt.Errorf("subgraph is required")
	}

	switch format {
	case FormatJSON:
		data, err := json.Marshal(sg)
		if err != nil {
			return "", fmt.Errorf("encoding subgraph: %w", err)
		}

		return string(data), nil
	case FormatSVG:
		return r.SVG(sg), nil
	case FormatDOT:
		return DOT(sg), nil
	case FormatMermaid:
		return Mermaid(sg), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// SVG draws sg with the renderer's layout. The focus node is highlighted and
// each edge carries its relation kind as a label.
func (r *Renderer) SVG(sg *models.Subgraph) string {
	pos := r.layout.Compute(sg)

	var sb strings.Builder

	fmt.Fprintf(&sb, `<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f" font-family="sans-serif">`+"\n",
		r.layout.Width, r.layout.Height, r.layout.Width, r.layout.Height)
	sb.WriteString(`  <defs><marker id="arrow" viewBox="0 0 10 10" refX="10" refY="5" markerWidth="8" markerHeight="8" orient="auto-start-reverse"><path d="M 0 0 L 10 5 L 0 10 z" fill="#555"/></marker></defs>` + "\n")

	for _, e := range sg.Edges {
		from, okFrom := pos[e.Source]
		to, okTo := pos[e.Target]
		if !okFrom || !okTo {
			continue
		}

		if e.Source == e.Target {
			fmt.Fprintf(&sb, `  <circle cx="%.1f" cy="%.1f" r="%d" fill="none" stroke="#555"/>`+"\n",
				from.X, from.Y-nodeRadius, nodeRadius/2)
			fmt.Fprintf(&sb, `  <text x="%.1f" y="%.1f" font-size="9" text-anchor="middle" fill="#333">%s</text>`+"\n",
				from.X, from.Y-2*nodeRadius-2, html.EscapeString(string(e.Kind)))

			continue
		}

		x1, y1, x2, y2 := trim(from, to, nodeRadius)
		fmt.Fprintf(&sb, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#555" marker-end="url(#arrow)"/>`+"\n", x1, y1, x2, y2)
		fmt.Fprintf(&sb, `  <text x="%.1f" y="%.1f" font-size="9" text-anchor="middle" fill="#333">%s</text>`+"\n",
			(from.X+to.X)/2, (from.Y+to.Y)/2-3, html.EscapeString(string(e.Kind)))
	}

	for _, n := range sg.Nodes {
		p := pos[n]
		fill := "lightblue"
		if n == sg.Focus {
			fill = "#ff9f43"
		}

		fmt.Fprintf(&sb, `  <circle cx="%.1f" cy="%.1f" r="%d" fill="%s" stroke="#333"/>`+"\n", p.X, p.Y, nodeRadius, fill)
		fmt.Fprintf(&sb, `  <text x="%.1f" y="%.1f" font-size="10" text-anchor="middle" dominant-baseline="middle">%d</text>`+"\n", p.X, p.Y, n)
	}

	sb.WriteString("</svg>\n")

	return sb.String()
}

// DOT renders sg as a Graphviz digraph.
func DOT(sg *models.Subgraph) string {
	var sb strings.Builder

	sb.WriteString("digraph capec {\n")
	sb.WriteString("  node [shape=circle, style=filled, fillcolor=lightblue];\n")

	for _, n := range sg.Nodes {
		if n == sg.Focus {
			fmt.Fprintf(&sb, "  %d [fillcolor=orange];\n", n)

			continue
		}

		fmt.Fprintf(&sb, "  %d;\n", n)
	}

	for _, e := range sg.Edges {
		fmt.Fprintf(&sb, "  %d -> %d [label=%q];\n", e.Source, e.Target, string(e.Kind))
	}

	sb.WriteString("}\n")

	return sb.String()
}

// Mermaid renders sg as a Mermaid flowchart.
func Mermaid(sg *models.Subgraph) string {
	var sb strings.Builder

	sb.WriteString("flowchart TB\n")

	for _, n := range sg.Nodes {
		fmt.Fprintf(&sb, "    n%s((\"%d\"))\n", mermaidID(n), n)
	}

	for _, e := range sg.Edges {
		fmt.Fprintf(&sb, "    n%s -->|%s| n%s\n", mermaidID(e.Source), escapeMermaidLabel(string(e.Kind)), mermaidID(e.Target))
	}

	fmt.Fprintf(&sb, "    classDef focus fill:#ff9f43,stroke:#333,stroke-width:2px\n")
	fmt.Fprintf(&sb, "    class n%s focus\n", mermaidID(sg.Focus))

	return sb.String()
}

// mermaidID keeps negative ids valid as Mermaid identifiers.
func mermaidID(n models.NodeID) string {
	if n < 0 {
		return "m" + (-n).String()
	}

	return n.String()
}

func escapeMermaidLabel(s string) string {
	r := strings.NewReplacer(`"`, "'", "|", "/", "<", "", ">", "")

	return r.Replace(s)
}

// trim shortens the segment a-b by radius at both ends so arrows stop at the circle edge.
func trim(a, b Position, radius float64) (float64, float64, float64, float64) {
	dx, dy := b.X-a.X, b.Y-a.Y
	dist := math.Sqrt(dx*dx + dy*dy)
	if dist <= 2*radius {
		return a.X, a.Y, b.X, b.Y
	}

	ux, uy := dx/dist, dy/dist

	return a.X + ux*radius, a.Y + uy*radius, b.X - ux*radius, b.Y - uy*radius
}
