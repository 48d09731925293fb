// SPDX-License-Identifier: MIT
// Package: gridflow/table
//
// records.go - typed input records and their validation rules.

package table

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Column names of the input tables.
const (
	ColBuildingID   = "building_id"
	ColLat          = "lat"
	ColLon          = "lon"
	ColPeakLoadKW   = "peak_load_kW"
	ColLineID       = "line_id"
	ColFromID       = "from_id"
	ColToID         = "to_id"
	ColLengthKm     = "length_km"
	ColVoltageLevel = "voltage_level"
	ColDistanceKm   = "distance_km"
	ColNodeID       = "node_id"
)

// DefaultVoltageLevel applies when a line row leaves voltage_level blank.
const DefaultVoltageLevel = "MV"

// Building is one row of the buildings table. Columns beyond the known
// ones are carried in Attributes untouched.
type Building struct {
	ID         string            `col:"building_id" validate:"required"`
	Lat        float64           `col:"lat" validate:"gte=-90,lte=90"`
	Lon        float64           `col:"lon" validate:"gte=-180,lte=180"`
	PeakLoadKW float64           `col:"peak_load_kW" validate:"gte=0"`
	Attributes map[string]string `col:"-"`
}

// Line is one row of the lines table.
type Line struct {
	ID           string  `col:"line_id" validate:"required"`
	From         string  `col:"from_id" validate:"required"`
	To           string  `col:"to_id" validate:"required"`
	LengthKm     float64 `col:"length_km" validate:"gte=0"`
	VoltageLevel string  `col:"voltage_level" validate:"oneof=MV LV"`
}

// Assignment binds a building to its nearest line.
type Assignment struct {
	BuildingID string  `col:"building_id" validate:"required"`
	LineID     string  `col:"line_id" validate:"required"`
	DistanceKm float64 `col:"distance_km" validate:"gte=0"`
}

// Location is an optional coordinate for a line endpoint node.
type Location struct {
	NodeID string  `col:"node_id" validate:"required"`
	Lat    float64 `col:"lat" validate:"gte=-90,lte=90"`
	Lon    float64 `col:"lon" validate:"gte=-180,lte=180"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("col"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

// check validates rec and converts the first violation into a ParseError.
func check(tableName string, row int, rec any) error {
	err := validate.Struct(rec)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &ParseError{
			Table:  tableName,
			Row:    row,
			Column: fe.Field(),
			Err:    fmt.Errorf("%w: violates %q", ErrInvalidRecord, strings.TrimSuffix(fe.Tag()+"="+fe.Param(), "=")),
		}
	}

	return &ParseError{Table: tableName, Row: row, Err: err}
}
