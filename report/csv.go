// SPDX-License-Identifier: MIT
// Package: gridflow/report
//
// csv.go - CSV writers. Values are rounded at formatting time only:
// loading to 2 decimals, ratings as-is, everything else to 3.

package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
)

const (
	defaultPlaces = 3
	loadingPlaces = 2
	rawPlaces     = -1
)

// WriteWide writes the wide table.
func WriteWide(w io.Writer, labels []string, rows []WideRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(WideHeader(labels)); err != nil {
		return fmt.Errorf("report: write wide header: %w", err)
	}
	for _, r := range rows {
		rec := append([]string{r.EntityID, r.RecordType, r.LineID}, r.Quantities.cells()...)
		for _, v := range r.Series {
			rec = append(rec, format(v, defaultPlaces))
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("report: write wide row %q: %w", r.EntityID+r.LineID, err)
		}
	}
	cw.Flush()

	return cw.Error()
}

// WriteLong writes the long table.
func WriteLong(w io.Writer, rows []LongRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(LongHeader()); err != nil {
		return fmt.Errorf("report: write long header: %w", err)
	}
	for _, r := range rows {
		rec := append([]string{r.TimeStep, r.EntityID, r.RecordType, r.LineID}, r.Quantities.cells()...)
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("report: write long row at %s: %w", r.TimeStep, err)
		}
	}
	cw.Flush()

	return cw.Error()
}

// WriteWide writes the accumulator's wide table.
func (a *Accumulator) WriteWide(w io.Writer) error { return WriteWide(w, a.labels, a.Wide()) }

// WriteLong writes the accumulator's long table.
func (a *Accumulator) WriteLong(w io.Writer) error { return WriteLong(w, a.Long()) }

func (q Quantities) cells() []string {
	return []string{
		format(q.VoltagePU, defaultPlaces),
		format(q.PKW, defaultPlaces),
		format(q.QKVar, defaultPlaces),
		format(q.PF, defaultPlaces),
		format(q.IFromA, defaultPlaces),
		format(q.IToA, defaultPlaces),
		format(q.RatingA, rawPlaces),
		format(q.Loading, loadingPlaces),
	}
}

func format(v Value, places int) string {
	if !v.Valid {
		return ""
	}
	x := v.V
	if places >= 0 {
		p := math.Pow10(places)
		x = math.Round(x*p) / p
	}
	if x == 0 {
		x = 0 // drop the sign of -0
	}
	return strconv.FormatFloat(x, 'f', -1, 64)
}
