// SPDX-License-Identifier: MIT

package table_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gridflow/table"
)

func TestReadBuildings_CSV(t *testing.T) {
	in := "building_id,lat,lon,peak_load_kW,has_solar,has_battery\n" +
		"B0001,52.5,13.4,12.5,True,False\n" +
		"B0002,,,,False,True\n"
	got, err := table.ReadBuildings(strings.NewReader(in), table.FormatCSV)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "B0001", got[0].ID)
	assert.Equal(t, 52.5, got[0].Lat)
	assert.Equal(t, 12.5, got[0].PeakLoadKW)
	assert.Equal(t, map[string]string{"has_solar": "True", "has_battery": "False"}, got[0].Attributes)
	assert.Zero(t, got[1].Lat)
}

func TestReadBuildings_JSON(t *testing.T) {
	in := `[{"building_id":"B0001","lat":1.5,"lon":2,"peak_load_kW":7,"has_solar":true}]`
	got, err := table.ReadBuildings(strings.NewReader(in), table.FormatJSON)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 1.5, got[0].Lat)
	assert.Equal(t, "true", got[0].Attributes["has_solar"])
}

func TestReadBuildings_Errors(t *testing.T) {
	cases := []struct {
		name   string
		in     string
		row    int
		column string
		is     error
	}{
		{"missing id column", "lat,lon\n1,2\n", 0, "building_id", table.ErrMissingColumn},
		{"malformed lat", "building_id,lat\nB1,1\nB2,north\n", 2, "lat", table.ErrMalformedNumber},
		{"lat out of range", "building_id,lat\nB1,91\n", 1, "lat", table.ErrInvalidRecord},
		{"blank id", "building_id,lat\n,1\n", 1, "building_id", table.ErrInvalidRecord},
		{"negative peak", "building_id,peak_load_kW\nB1,-1\n", 1, "peak_load_kW", table.ErrInvalidRecord},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			_, err := table.ReadBuildings(strings.NewReader(tc.in), table.FormatCSV)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.is)

			var pe *table.ParseError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, table.TableBuildings, pe.Table)
			assert.Equal(t, tc.row, pe.Row)
			assert.Equal(t, tc.column, pe.Column)
		})
	}
}

func TestReadLines(t *testing.T) {
	in := "line_id,from_id,to_id,length_km,voltage_level\n" +
		"L1,MainSubstation,Feeder1,1.2,MV\n" +
		"L2,Feeder1,N3,0.3,\n" +
		"L3,N3,N4,0.1,LV\n"
	got, err := table.ReadLines(strings.NewReader(in), table.FormatCSV)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "MV", got[1].VoltageLevel, "blank level defaults to MV")
	assert.Equal(t, "LV", got[2].VoltageLevel)

	_, err = table.ReadLines(strings.NewReader("line_id,from_id,to_id,voltage_level\nL1,A,B,HV\n"), table.FormatCSV)
	assert.ErrorIs(t, err, table.ErrInvalidRecord)
}

func TestReadAssignmentsAndLocations(t *testing.T) {
	as, err := table.ReadAssignments(strings.NewReader("building_id,line_id,distance_km\nB1,L1,0.02\n"), table.FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, []table.Assignment{{BuildingID: "B1", LineID: "L1", DistanceKm: 0.02}}, as)

	locs, err := table.ReadLocations(strings.NewReader(`[{"node_id":"Feeder1","lat":10,"lon":20}]`), table.FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, table.Location{NodeID: "Feeder1", Lat: 10, Lon: 20}, locs["Feeder1"])
}

func TestEmptyInputs(t *testing.T) {
	b, err := table.ReadBuildings(strings.NewReader(""), table.FormatCSV)
	require.NoError(t, err)
	assert.Empty(t, b)

	l, err := table.ReadLines(strings.NewReader(""), table.FormatJSON)
	require.NoError(t, err)
	assert.Empty(t, l)
}

func TestFormatFor(t *testing.T) {
	assert.Equal(t, table.FormatCSV, table.FormatFor("x/buildings.CSV"))
	assert.Equal(t, table.FormatJSON, table.FormatFor("x/buildings.json"))
	assert.Equal(t, table.FormatJSON, table.FormatFor("noext"))
}

func TestLoadFiles(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "lines.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("line_id,from_id,to_id\nL1,A,B\n"), 0o600))

	lines, err := table.LoadLines(csvPath)
	require.NoError(t, err)
	assert.Len(t, lines, 1)

	missing := filepath.Join(dir, "nope.json")
	_, err = table.LoadBuildings(missing)
	assert.ErrorIs(t, err, table.ErrMissingInput)

	assert.NoError(t, table.RequireFiles(csvPath))
	assert.ErrorIs(t, table.RequireFiles(csvPath, missing), table.ErrMissingInput)
}
