package ingest

import (
	"strings"

	"github.com/Bama-S/capec-rel/internal/models"
)

// nullMarkers are the spellings exporters use for a missing cell.
var nullMarkers = map[string]bool{
	"":     true,
	"nan":  true,
	"null": true,
	"none": true,
	"na":   true,
	"n/a":  true,
}

// ParsedRow is the outcome of parsing one Row.
type ParsedRow struct {
	Source models.NodeID
	Edges  []models.Edge
	// Skipped counts populated cells that produced no edge.
	Skipped int
	// Dropped is set when the whole row was ignored (lenient mode only).
	Dropped bool
}

// Parser converts rows into relation edges under a parse mode.
type Parser struct {
	mode models.ParseMode
}

// NewParser creates a Parser. An unknown mode falls back to lenient.
func NewParser(mode models.ParseMode) *Parser {
	if mode != models.ModeStrict {
		mode = models.ModeLenient
	}

	return &Parser{mode: mode}
}

// Mode returns the parser's mode.
func (p *Parser) Mode() models.ParseMode { return p.mode }

// ParseRow turns the relation cells of row into edges.
//
// A cell must hold exactly two whitespace-separated tokens, "<kind> <target>".
// In lenient mode a cell that does not, or whose target is not an integer,
// is dropped and counted in Skipped; a row whose id is not an integer is
// dropped entirely. In strict mode each of these is a *models.RowError.
//
// Hierarchy cells are stored pointing from parent to child: "childof 1" on
// row 100 yields the edge 1 -> 100. Every other kind keeps the row's direction.
func (p *Parser) ParseRow(row Row) (*ParsedRow, error) {
	source, err := models.ParseNodeID(row.ID)
	if err != nil {
		if p.mode == models.ModeStrict {
			return nil, &models.RowError{Line: row.Line, Column: idColumn, Err: err}
		}

		return &ParsedRow{Dropped: true}, nil
	}

	out := &ParsedRow{Source: source}

	for i, raw := range row.Relations {
		if isNull(raw) {
			continue
		}

		e, err := p.parseCell(source, raw)
		if err != nil {
			if p.mode == models.ModeStrict {
				return nil, &models.RowError{Line: row.Line, Column: RelationColumn(i), Err: err}
			}

			out.Skipped++

			continue
		}

		out.Edges = append(out.Edges, e)
	}

	return out, nil
}

func (p *Parser) parseCell(source models.NodeID, raw string) (models.Edge, error) {
	parts := strings.Fields(raw)
	if len(parts) != 2 {
		return models.Edge{}, models.ErrMalformedCell
	}

	target, err := models.ParseNodeID(parts[1])
	if err != nil {
		return models.Edge{}, models.ErrInvalidTarget
	}

	e := models.Edge{Source: source, Target: target, Kind: models.NormalizeKind(parts[0])}
	if e.Kind == models.KindChildOf {
		e = e.Reversed()
	}

	return e, nil
}

func isNull(raw string) bool {
	return nullMarkers[strings.ToLower(strings.TrimSpace(raw))]
}
