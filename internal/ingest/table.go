// Package ingest turns a delimited CAPEC relation export into a frozen graph.
package ingest

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Bama-S/capec-rel/internal/models"
)

// MaxRelationColumns is the number of relation_N columns a row may carry.
const MaxRelationColumns = 8

const idColumn = "id"

// Row is one raw record of the export.
type Row struct {
	Line      int
	ID        string
	Relations [MaxRelationColumns]string
}

// RelationColumn returns the header name of relation cell i (0-based).
func RelationColumn(i int) string {
	return "relation_" + strconv.Itoa(i+1)
}

// ReadTable reads every row of a delimited table. The header must contain an
// id column; relation_1..relation_8 are optional. The delimiter is detected
// from the header line among comma, semicolon and tab.
func ReadTable(r io.Reader) ([]Row, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading table: %w", err)
	}

	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = detectDelimiter(data)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, models.ErrEmptyTable
	}

	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	idIdx, relIdx, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	var rows []Row

	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("reading record: %w", err)
		}

		line, _ := cr.FieldPos(0)
		row := Row{Line: line, ID: cell(record, idIdx)}

		for i, idx := range relIdx {
			row.Relations[i] = cell(record, idx)
		}

		rows = append(rows, row)
	}

	return rows, nil
}

// mapColumns locates the id column and each relation_N column (-1 when absent).
func mapColumns(header []string) (int, [MaxRelationColumns]int, error) {
	idIdx := -1

	var relIdx [MaxRelationColumns]int
	for i := range relIdx {
		relIdx[i] = -1
	}

	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == idColumn {
			idIdx = i

			continue
		}

		for j := range relIdx {
			if name == RelationColumn(j) {
				relIdx[j] = i
			}
		}
	}

	if idIdx < 0 {
		return 0, relIdx, models.ErrMissingIDColumn
	}

	return idIdx, relIdx, nil
}

func cell(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}

	return record[idx]
}

func detectDelimiter(data []byte) rune {
	first := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		first = data[:i]
	}

	best, bestCount := ',', bytes.Count(first, []byte{','})
	for _, d := range []rune{';', '\t'} {
		if n := bytes.Count(first, []byte(string(d))); n > bestCount {
			best, bestCount = d, n
		}
	}

	return best
}
