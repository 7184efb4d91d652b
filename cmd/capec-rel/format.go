package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Bama-S/capec-rel/internal/models"
)

func formatJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error: encode json: %v\n", err)
		os.Exit(1)
	}
}

func formatTable(headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	printRow := func(cells []string) {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			w := 0
			if i < len(widths) {
				w = widths[i]
			}
			parts[i] = fmt.Sprintf("%-*s", w, cell)
		}
		fmt.Println(strings.TrimRight(strings.Join(parts, "  "), " "))
	}

	printRow(headers)
	seps := make([]string, len(headers))
	for i, w := range widths {
		seps[i] = strings.Repeat("-", w)
	}
	printRow(seps)
	for _, row := range rows {
		printRow(row)
	}
}

// formatAnalysisTable prints one row per relation set of a.
func formatAnalysisTable(a *models.NodeAnalysis) {
	list := func(ids []models.NodeID) string {
		if len(ids) == 0 {
			return "-"
		}
		parts := make([]string, len(ids))
		for i, id := range ids {
			parts[i] = id.String()
		}
		return strings.Join(parts, ", ")
	}

	formatTable([]string{"RELATION", "NODES"}, [][]string{
		{"node", a.Node.String()},
		{"exists", strconv.FormatBool(a.Exists)},
		{"parents", list(a.Parents)},
		{"grandparents", list(a.Grandparents)},
		{"children", list(a.Children)},
		{"grandchildren", list(a.Grandchildren)},
		{"peers", list(a.Peers)},
		{"can_precede", list(a.CanPrecede)},
		{"can_follow", list(a.CanFollow)},
		{"ancestors", list(a.Ancestors)},
		{"descendants", list(a.Descendants)},
		{"is_root", strconv.FormatBool(a.IsRoot)},
		{"is_leaf", strconv.FormatBool(a.IsLeaf)},
	})
}

func formatQuiet(v string) {
	if v != "" {
		fmt.Println(v)
	}
}

func output(v any, quietVal string) {
	switch flagFmt {
	case "quiet":
		formatQuiet(quietVal)
	case "table":
		// Table requires caller to use formatTable directly.
		// Fallback to JSON for generic output.
		formatJSON(v)
	default:
		formatJSON(v)
	}
}

// outputIDs prints a node list under key: an object in JSON, one id per line
// otherwise.
func outputIDs(key string, ids []models.NodeID) {
	switch flagFmt {
	case "table":
		rows := make([][]string, len(ids))
		for i, id := range ids {
			rows[i] = []string{id.String()}
		}
		formatTable([]string{strings.ToUpper(key)}, rows)
	default:
		output(map[string]any{key: ids, "count": len(ids)}, joinIDs(ids))
	}
}
