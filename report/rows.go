// SPDX-License-Identifier: MIT
// Package: gridflow/report
//
// rows.go - row types of the wide and long tables.

package report

// RecordLine is the record type of line rows.
const RecordLine = "line"

// Value is an optional cell. Invalid cells are written blank.
type Value struct {
	V     float64
	Valid bool
}

func some(v float64) Value { return Value{V: v, Valid: true} }

// Quantities are the value columns shared by both tables.
type Quantities struct {
	VoltagePU Value
	PKW       Value
	QKVar     Value
	PF        Value
	IFromA    Value
	IToA      Value
	RatingA   Value
	Loading   Value
}

// WideRow is one entity with its final snapshot and one value per step:
// voltage for nodes, current for lines.
type WideRow struct {
	EntityID   string
	RecordType string
	LineID     string
	Quantities
	Series []Value
}

// LongRow is one entity at one step.
type LongRow struct {
	TimeStep   string
	EntityID   string
	RecordType string
	LineID     string
	Quantities
}

// Column headers.
var (
	entityColumns = []string{"entity_id", "record_type", "line_id"}
	valueColumns  = []string{
		"voltage_pu", "p_injection_kW", "q_injection_kvar", "pf",
		"i_from_a", "i_to_a", "line_rating_a", "loading_percent",
	}
)

// WideHeader returns the wide table header for the given time labels.
func WideHeader(labels []string) []string {
	h := make([]string, 0, len(entityColumns)+len(valueColumns)+len(labels))
	h = append(h, entityColumns...)
	h = append(h, valueColumns...)
	return append(h, labels...)
}

// LongHeader returns the long table header.
func LongHeader() []string {
	h := make([]string, 0, 1+len(entityColumns)+len(valueColumns))
	h = append(h, "time_step")
	h = append(h, entityColumns...)
	return append(h, valueColumns...)
}
