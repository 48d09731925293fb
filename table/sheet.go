// SPDX-License-Identifier: MIT
// Package: gridflow/table
//
// sheet.go - format-neutral row access. CSV and JSON inputs are both
// reduced to header-addressed string cells before typed parsing.

package table

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Format selects the encoding of an input table.
type Format int

const (
	// FormatCSV is a delimited table with a header row.
	FormatCSV Format = iota
	// FormatJSON is an array of flat objects.
	FormatJSON
)

// FormatFor picks the format from a file extension: ".csv" is CSV,
// anything else is read as JSON.
func FormatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return FormatCSV
	}
	return FormatJSON
}

type record struct {
	row   int
	cells map[string]string
}

type sheet struct {
	name    string
	header  []string
	records []record
}

func readSheet(name string, r io.Reader, f Format) (*sheet, error) {
	if f == FormatJSON {
		return readJSONSheet(name, r)
	}
	return readCSVSheet(name, r)
}

func readCSVSheet(name string, r io.Reader) (*sheet, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return &sheet{name: name}, nil
	}
	if err != nil {
		return nil, &ParseError{Table: name, Row: 0, Err: err}
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}

	s := &sheet{name: name, header: header}
	for row := 1; ; row++ {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &ParseError{Table: name, Row: row, Err: err}
		}
		cells := make(map[string]string, len(header))
		for i, col := range header {
			cells[col] = strings.TrimSpace(fields[i])
		}
		s.records = append(s.records, record{row: row, cells: cells})
	}

	return s, nil
}

func readJSONSheet(name string, r io.Reader) (*sheet, error) {
	var objs []map[string]any
	if err := json.NewDecoder(r).Decode(&objs); err != nil {
		if errors.Is(err, io.EOF) {
			return &sheet{name: name}, nil
		}
		return nil, &ParseError{Table: name, Err: err}
	}

	s := &sheet{name: name}
	seen := map[string]struct{}{}
	for i, obj := range objs {
		cells := make(map[string]string, len(obj))
		keys := make([]string, 0, len(obj))
		for k := range obj {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			cells[k] = jsonCell(obj[k])
			if _, ok := seen[k]; !ok {
				seen[k] = struct{}{}
				s.header = append(s.header, k)
			}
		}
		s.records = append(s.records, record{row: i + 1, cells: cells})
	}

	return s, nil
}

func jsonCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}

// require fails when the header lacks any of cols. An empty sheet passes.
func (s *sheet) require(cols ...string) error {
	if len(s.header) == 0 {
		return nil
	}
	have := make(map[string]struct{}, len(s.header))
	for _, h := range s.header {
		have[h] = struct{}{}
	}
	for _, c := range cols {
		if _, ok := have[c]; !ok {
			return &ParseError{Table: s.name, Row: 0, Column: c, Err: ErrMissingColumn}
		}
	}

	return nil
}

func (r record) str(col string) string { return r.cells[col] }

// float parses a numeric cell; blank or absent cells yield def.
func (r record) float(tableName, col string, def float64) (float64, error) {
	raw := r.cells[col]
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, &ParseError{
			Table:  tableName,
			Row:    r.row,
			Column: col,
			Err:    fmt.Errorf("%w: %q", ErrMalformedNumber, raw),
		}
	}

	return v, nil
}
