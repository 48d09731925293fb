// SPDX-License-Identifier: MIT
// Package: gridflow/table
//
// read.go - typed readers for the entity tables.

package table

import (
	"fmt"
	"io"
	"os"
)

// Table names used in ParseError.
const (
	TableBuildings   = "buildings"
	TableLines       = "lines"
	TableAssignments = "assignments"
	TableLocations   = "locations"
	TableSeries      = "series"
)

// ReadBuildings parses a buildings table. lat, lon and peak_load_kW
// default to zero when blank.
func ReadBuildings(r io.Reader, f Format) ([]Building, error) {
	s, err := readSheet(TableBuildings, r, f)
	if err != nil {
		return nil, err
	}
	if err = s.require(ColBuildingID); err != nil {
		return nil, err
	}

	known := map[string]struct{}{ColBuildingID: {}, ColLat: {}, ColLon: {}, ColPeakLoadKW: {}}
	out := make([]Building, 0, len(s.records))
	for _, rec := range s.records {
		b := Building{ID: rec.str(ColBuildingID)}
		if b.Lat, err = rec.float(TableBuildings, ColLat, 0); err != nil {
			return nil, err
		}
		if b.Lon, err = rec.float(TableBuildings, ColLon, 0); err != nil {
			return nil, err
		}
		if b.PeakLoadKW, err = rec.float(TableBuildings, ColPeakLoadKW, 0); err != nil {
			return nil, err
		}
		for _, col := range s.header {
			if _, ok := known[col]; ok {
				continue
			}
			if b.Attributes == nil {
				b.Attributes = make(map[string]string)
			}
			b.Attributes[col] = rec.str(col)
		}
		if err = check(TableBuildings, rec.row, b); err != nil {
			return nil, err
		}
		out = append(out, b)
	}

	return out, nil
}

// ReadLines parses a lines table. A blank voltage_level means MV.
func ReadLines(r io.Reader, f Format) ([]Line, error) {
	s, err := readSheet(TableLines, r, f)
	if err != nil {
		return nil, err
	}
	if err = s.require(ColLineID, ColFromID, ColToID); err != nil {
		return nil, err
	}

	out := make([]Line, 0, len(s.records))
	for _, rec := range s.records {
		l := Line{
			ID:           rec.str(ColLineID),
			From:         rec.str(ColFromID),
			To:           rec.str(ColToID),
			VoltageLevel: rec.str(ColVoltageLevel),
		}
		if l.VoltageLevel == "" {
			l.VoltageLevel = DefaultVoltageLevel
		}
		if l.LengthKm, err = rec.float(TableLines, ColLengthKm, 0); err != nil {
			return nil, err
		}
		if err = check(TableLines, rec.row, l); err != nil {
			return nil, err
		}
		out = append(out, l)
	}

	return out, nil
}

// ReadAssignments parses a building-to-line assignments table.
func ReadAssignments(r io.Reader, f Format) ([]Assignment, error) {
	s, err := readSheet(TableAssignments, r, f)
	if err != nil {
		return nil, err
	}
	if err = s.require(ColBuildingID, ColLineID); err != nil {
		return nil, err
	}

	out := make([]Assignment, 0, len(s.records))
	for _, rec := range s.records {
		a := Assignment{BuildingID: rec.str(ColBuildingID), LineID: rec.str(ColLineID)}
		if a.DistanceKm, err = rec.float(TableAssignments, ColDistanceKm, 0); err != nil {
			return nil, err
		}
		if err = check(TableAssignments, rec.row, a); err != nil {
			return nil, err
		}
		out = append(out, a)
	}

	return out, nil
}

// ReadLocations parses a node location table into a lookup by node name.
func ReadLocations(r io.Reader, f Format) (map[string]Location, error) {
	s, err := readSheet(TableLocations, r, f)
	if err != nil {
		return nil, err
	}
	if err = s.require(ColNodeID, ColLat, ColLon); err != nil {
		return nil, err
	}

	out := make(map[string]Location, len(s.records))
	for _, rec := range s.records {
		loc := Location{NodeID: rec.str(ColNodeID)}
		if loc.Lat, err = rec.float(TableLocations, ColLat, 0); err != nil {
			return nil, err
		}
		if loc.Lon, err = rec.float(TableLocations, ColLon, 0); err != nil {
			return nil, err
		}
		if err = check(TableLocations, rec.row, loc); err != nil {
			return nil, err
		}
		out[loc.NodeID] = loc
	}

	return out, nil
}

// Open opens path for reading, mapping a missing file to ErrMissingInput.
func Open(path string) (*os.File, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrMissingInput, path)
	}
	if err != nil {
		return nil, fmt.Errorf("table: open %s: %w", path, err)
	}

	return f, nil
}

// RequireFiles reports the first path that does not exist. It is meant to
// run before any table is parsed so missing inputs fail the run up front.
func RequireFiles(paths ...string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			if os.IsNotExist(err) {
				return fmt.Errorf("%w: %s", ErrMissingInput, p)
			}
			return fmt.Errorf("table: stat %s: %w", p, err)
		}
	}

	return nil
}

func loadFile[T any](path string, read func(io.Reader, Format) (T, error)) (T, error) {
	var zero T
	f, err := Open(path)
	if err != nil {
		return zero, err
	}
	defer f.Close()

	v, err := read(f, FormatFor(path))
	if err != nil {
		return zero, fmt.Errorf("%s: %w", path, err)
	}

	return v, nil
}

// LoadBuildings reads a buildings file, CSV or JSON by extension.
func LoadBuildings(path string) ([]Building, error) { return loadFile(path, ReadBuildings) }

// LoadLines reads a lines file.
func LoadLines(path string) ([]Line, error) { return loadFile(path, ReadLines) }

// LoadAssignments reads an assignments file.
func LoadAssignments(path string) ([]Assignment, error) { return loadFile(path, ReadAssignments) }

// LoadLocations reads a node locations file.
func LoadLocations(path string) (map[string]Location, error) { return loadFile(path, ReadLocations) }
