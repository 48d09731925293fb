// SPDX-License-Identifier: MIT
// Package: gridflow/table
//
// series.go - the time-series load matrix (entity x step).

package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// DefaultCategory is the net-load category consumed from a series table.
const DefaultCategory = "total_electricity"

// Series holds one load value (kW) per entity per time step. Row i of the
// matrix belongs to Names()[i]; column j to Labels()[j].
type Series struct {
	labels []string
	names  []string
	index  map[string]int
	values *mat.Dense // nil when there are no entities or no steps
}

// NewSeries builds a Series from row-major values; rows[i] belongs to names[i]
// and must have one value per label.
func NewSeries(labels, names []string, rows [][]float64) (*Series, error) {
	if len(rows) != len(names) {
		return nil, fmt.Errorf("%w: %d names, %d rows", ErrShape, len(names), len(rows))
	}
	s := &Series{
		labels: append([]string(nil), labels...),
		names:  append([]string(nil), names...),
		index:  make(map[string]int, len(names)),
	}
	for i, n := range names {
		if _, dup := s.index[n]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateEntity, n)
		}
		s.index[n] = i
	}
	if len(names) == 0 || len(labels) == 0 {
		return s, nil
	}

	data := make([]float64, 0, len(names)*len(labels))
	for i, row := range rows {
		if len(row) != len(labels) {
			return nil, fmt.Errorf("%w: row %q has %d values, want %d", ErrShape, names[i], len(row), len(labels))
		}
		data = append(data, row...)
	}
	s.values = mat.NewDense(len(names), len(labels), data)

	return s, nil
}

// Labels returns the time labels in input order.
func (s *Series) Labels() []string { return append([]string(nil), s.labels...) }

// Names returns the entity names in input order.
func (s *Series) Names() []string { return append([]string(nil), s.names...) }

// Steps is the number of time steps.
func (s *Series) Steps() int { return len(s.labels) }

// Len is the number of entities.
func (s *Series) Len() int { return len(s.names) }

// At returns the value of name at step.
func (s *Series) At(name string, step int) (float64, bool) {
	i, ok := s.index[name]
	if !ok || s.values == nil || step < 0 || step >= len(s.labels) {
		return 0, false
	}
	return s.values.At(i, step), true
}

// Step slices the matrix at one step into a name -> kW vector. It returns
// nil when step is out of range.
func (s *Series) Step(step int) map[string]float64 {
	if step < 0 || step >= len(s.labels) {
		return nil
	}
	out := make(map[string]float64, len(s.names))
	if s.values == nil {
		return out
	}
	col := mat.Col(nil, step, s.values)
	for i, name := range s.names {
		out[name] = col[i]
	}

	return out
}

// Row returns the full profile of name.
func (s *Series) Row(name string) ([]float64, bool) {
	i, ok := s.index[name]
	if !ok {
		return nil, false
	}
	if s.values == nil {
		return []float64{}, true
	}
	return mat.Row(nil, i, s.values), true
}

// Totals is the sum over entities at each step.
func (s *Series) Totals() []float64 {
	out := make([]float64, len(s.labels))
	if s.values == nil {
		return out
	}
	for j := range out {
		out[j] = floats.Sum(mat.Col(nil, j, s.values))
	}

	return out
}

// ReadSeries parses a CSV series table with header
// "building_id, <category>, <label>...". Only rows whose category matches
// (trimmed, case-insensitive) are kept. A repeated entity overrides the
// earlier values and keeps the earlier position.
func ReadSeries(r io.Reader, category string) (*Series, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return NewSeries(nil, nil, nil)
	}
	if err != nil {
		return nil, &ParseError{Table: TableSeries, Err: err}
	}
	if len(header) < 2 {
		return nil, &ParseError{Table: TableSeries, Column: "category", Err: ErrMissingColumn}
	}
	labels := make([]string, 0, len(header)-2)
	for _, h := range header[2:] {
		labels = append(labels, strings.TrimSpace(h))
	}

	want := strings.ToLower(strings.TrimSpace(category))
	var (
		names []string
		rows  [][]float64
		pos   = map[string]int{}
	)
	for row := 1; ; row++ {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &ParseError{Table: TableSeries, Row: row, Err: err}
		}
		if strings.ToLower(strings.TrimSpace(fields[1])) != want {
			continue
		}
		name := strings.TrimSpace(fields[0])
		vals := make([]float64, len(labels))
		for j, raw := range fields[2:] {
			raw = strings.TrimSpace(raw)
			v, perr := strconv.ParseFloat(raw, 64)
			if perr != nil {
				return nil, &ParseError{
					Table:  TableSeries,
					Row:    row,
					Column: labels[j],
					Err:    fmt.Errorf("%w: %q", ErrMalformedNumber, raw),
				}
			}
			vals[j] = v
		}
		if i, seen := pos[name]; seen {
			rows[i] = vals
			continue
		}
		pos[name] = len(names)
		names = append(names, name)
		rows = append(rows, vals)
	}

	return NewSeries(labels, names, rows)
}

// LoadSeries reads a series file from disk.
func LoadSeries(path, category string) (*Series, error) {
	f, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := ReadSeries(f, category)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return s, nil
}
