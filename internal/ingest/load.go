package ingest

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/Bama-S/capec-rel/internal/graph"
	"github.com/Bama-S/capec-rel/internal/metrics"
	"github.com/Bama-S/capec-rel/internal/models"
)

// Report summarizes an ingestion run.
type Report struct {
	Mode         models.ParseMode `json:"mode"`
	Rows         int              `json:"rows"`
	Edges        int              `json:"edges"`
	Nodes        int              `json:"nodes"`
	SkippedCells int              `json:"skipped_cells"`
	SkippedRows  int              `json:"skipped_rows"`
}

// Load reads the export at path and returns the frozen multigraph built from it.
func Load(ctx context.Context, path string, mode models.ParseMode, log *logrus.Logger) (*graph.Multigraph, *Report, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from operator config.
	if err != nil {
		return nil, nil, fmt.Errorf("opening relation table: %w", err)
	}
	defer f.Close() //nolint:errcheck // read-only file.

	mg, report, err := LoadReader(ctx, f, mode, log)
	if err != nil {
		return nil, nil, fmt.Errorf("loading %s: %w", path, err)
	}

	return mg, report, nil
}

// LoadReader builds a frozen multigraph from a delimited table.
func LoadReader(ctx context.Context, r io.Reader, mode models.ParseMode, log *logrus.Logger) (*graph.Multigraph, *Report, error) {
	rows, err := ReadTable(r)
	if err != nil {
		return nil, nil, err
	}

	parser := NewParser(mode)
	mg := graph.NewMultigraph()
	report := &Report{Mode: parser.Mode(), Rows: len(rows)}

	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, nil, fmt.Errorf("loading rows: %w", err)
		}

		parsed, err := parser.ParseRow(row)
		if err != nil {
			metrics.IngestRejectsTotal.WithLabelValues("row_error").Inc()

			return nil, nil, fmt.Errorf("parsing row: %w", err)
		}

		if parsed.Dropped {
			report.SkippedRows++
			metrics.IngestRejectsTotal.WithLabelValues("row").Inc()
			log.WithFields(logrus.Fields{"line": row.Line, "id": row.ID}).Debug("skipping row with invalid id")

			continue
		}

		if parsed.Skipped > 0 {
			report.SkippedCells += parsed.Skipped
			metrics.IngestRejectsTotal.WithLabelValues("cell").Add(float64(parsed.Skipped))
			log.WithFields(logrus.Fields{"line": row.Line, "skipped": parsed.Skipped}).Debug("skipping malformed relation cells")
		}

		if err := mg.AddNode(parsed.Source); err != nil {
			return nil, nil, fmt.Errorf("adding node: %w", err)
		}

		for _, e := range parsed.Edges {
			if err := mg.AddEdge(e.Source, e.Target, e.Kind); err != nil {
				return nil, nil, fmt.Errorf("adding edge: %w", err)
			}
		}
	}

	mg.Freeze()

	report.Edges = mg.EdgeCount()
	report.Nodes = mg.NodeCount()

	log.WithFields(logrus.Fields{
		"mode":          report.Mode,
		"rows":          report.Rows,
		"nodes":         report.Nodes,
		"edges":         report.Edges,
		"skipped_cells": report.SkippedCells,
		"skipped_rows":  report.SkippedRows,
	}).Info("relation graph loaded")

	return mg, report, nil
}
