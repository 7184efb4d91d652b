package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Bama-S/capec-rel/internal/models"
	"github.com/Bama-S/capec-rel/internal/visualization"
)

func parseNodeArg(raw string) (models.NodeID, error) {
	id, err := models.ParseNodeID(raw)
	if err != nil || id < 0 {
		return 0, fmt.Errorf("%q is not a node id: expected a non-negative integer", raw)
	}
	return id, nil
}

func newAnalyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <id>",
		Short: "Show every relation of a node",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseNodeArg(args[0])
			if err != nil {
				return err
			}

			svc, err := cliService(cmd.Context())
			if err != nil {
				return err
			}

			a := svc.Analyze(id)
			switch flagFmt {
			case "table":
				formatAnalysisTable(a)
			default:
				output(a, joinIDs(a.Related))
			}
			return nil
		},
	}
}

func newSubgraphCmd() *cobra.Command {
	var render string
	cmd := &cobra.Command{
		Use:   "subgraph <id>",
		Short: "Print the neighborhood of a node as json, svg, dot or mermaid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseNodeArg(args[0])
			if err != nil {
				return err
			}

			svc, err := cliService(cmd.Context())
			if err != nil {
				return err
			}

			renderer := visualization.NewRenderer(nil)
			out, err := renderer.Render(svc.Subgraph(id), visualization.OutputFormat(render))
			if err != nil {
				return err
			}

			fmt.Fprintln(os.Stdout, out)
			return nil
		},
	}
	cmd.Flags().StringVar(&render, "render", "json", "Render format: json|svg|dot|mermaid")
	return cmd
}

func newRootsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "roots",
		Short: "List nodes without incoming relations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := cliService(cmd.Context())
			if err != nil {
				return err
			}
			outputIDs("roots", svc.Roots())
			return nil
		},
	}
}

func newLeavesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leaves",
		Short: "List nodes without outgoing relations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := cliService(cmd.Context())
			if err != nil {
				return err
			}
			outputIDs("leaves", svc.Leaves())
			return nil
		},
	}
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Summarize the loaded relation graph",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := cliService(cmd.Context())
			if err != nil {
				return err
			}

			stats := svc.Stats()
			switch flagFmt {
			case "table":
				rows := [][]string{
					{"nodes", strconv.Itoa(stats.Nodes)},
					{"edges", strconv.Itoa(stats.Edges)},
					{"collapsed_edges", strconv.Itoa(stats.CollapsedEdges)},
					{"roots", strconv.Itoa(stats.Roots)},
					{"leaves", strconv.Itoa(stats.Leaves)},
				}
				kinds := make([]string, 0, len(stats.EdgesByKind))
				for k := range stats.EdgesByKind {
					kinds = append(kinds, string(k))
				}
				sort.Strings(kinds)
				for _, k := range kinds {
					rows = append(rows, []string{"edges." + k, strconv.Itoa(stats.EdgesByKind[models.RelationKind(k)])})
				}
				formatTable([]string{"METRIC", "VALUE"}, rows)
			default:
				output(stats, strconv.Itoa(stats.Nodes))
			}
			return nil
		},
	}
}

func joinIDs(ids []models.NodeID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id.String()
	}
	return strings.Join(parts, "\n")
}
