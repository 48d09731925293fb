// SPDX-License-Identifier: MIT
// Package: gridflow/table
//
// errors.go - sentinel errors and the row/column tagged ParseError.

package table

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingInput indicates a required input file does not exist.
	ErrMissingInput = errors.New("table: missing input")

	// ErrMissingColumn indicates a required header column is absent.
	ErrMissingColumn = errors.New("table: missing column")

	// ErrMalformedNumber indicates a numeric cell could not be parsed.
	ErrMalformedNumber = errors.New("table: malformed number")

	// ErrInvalidRecord indicates a record failed validation.
	ErrInvalidRecord = errors.New("table: invalid record")

	// ErrShape indicates series dimensions that do not agree.
	ErrShape = errors.New("table: shape mismatch")

	// ErrDuplicateEntity indicates a series entity listed twice.
	ErrDuplicateEntity = errors.New("table: duplicate entity")
)

// ParseError locates a failure inside an input table. Row is the 1-based
// data row (the header is row 0); Column is empty when the whole row failed.
type ParseError struct {
	Table  string
	Row    int
	Column string
	Err    error
}

func (e *ParseError) Error() string {
	switch {
	case e.Column == "":
		return fmt.Sprintf("table %s: row %d: %v", e.Table, e.Row, e.Err)
	default:
		return fmt.Sprintf("table %s: row %d, column %q: %v", e.Table, e.Row, e.Column, e.Err)
	}
}

func (e *ParseError) Unwrap() error { return e.Err }
