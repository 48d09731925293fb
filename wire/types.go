// SPDX-License-Identifier: MIT
// Package: gridflow/wire
//
// types.go - the solver's input and output schema.

package wire

import "github.com/katalvlaran/gridflow/core"

// Document envelope constants.
const (
	Version    = "1.0"
	TypeInput  = "input"
	TypeOutput = "sym_output"
)

// Node is a wire node.
type Node struct {
	ID           core.ID `json:"id"`
	RatedVoltage float64 `json:"rated_voltage"`
	DisplayName  string  `json:"display_name"`
}

// Line is a wire line.
type Line struct {
	ID            core.ID `json:"id"`
	From          core.ID `json:"from"`
	To            core.ID `json:"to"`
	Resistance    float64 `json:"resistance"`
	Reactance     float64 `json:"reactance"`
	CurrentRating float64 `json:"current_rating"`
}

// Link is a wire link; it carries no electrical parameters.
type Link struct {
	ID   core.ID `json:"id"`
	From core.ID `json:"from"`
	To   core.ID `json:"to"`
}

// Source is a wire source.
type Source struct {
	ID               core.ID `json:"id"`
	Node             core.ID `json:"node"`
	Status           int     `json:"status"`
	ReferenceVoltage float64 `json:"reference_voltage"`
}

// SymLoad is a wire symmetric load. SpecifiedPower is in watts.
type SymLoad struct {
	ID             core.ID `json:"id"`
	Node           core.ID `json:"node"`
	Status         int     `json:"status"`
	Type           int     `json:"type"`
	SpecifiedPower float64 `json:"specified_power"`
}

// Shunt is a wire shunt.
type Shunt struct {
	ID          core.ID `json:"id"`
	Node        core.ID `json:"node"`
	Status      int     `json:"status"`
	Conductance float64 `json:"conductance"`
}

// Input is what a solver receives. Collections are never nil so they
// encode as empty arrays.
type Input struct {
	Node    []Node    `json:"node"`
	Line    []Line    `json:"line"`
	Link    []Link    `json:"link"`
	Source  []Source  `json:"source"`
	SymLoad []SymLoad `json:"sym_load"`
	Shunt   []Shunt   `json:"shunt"`
}

// NodeResult is a solved node. RealPower (W) is optional in the contract.
type NodeResult struct {
	ID        core.ID  `json:"id"`
	VoltagePU float64  `json:"voltage_pu"`
	RealPower *float64 `json:"real_power,omitempty"`
}

// Power returns the node real power in watts, zero when absent.
func (r NodeResult) Power() float64 {
	if r.RealPower == nil {
		return 0
	}
	return *r.RealPower
}

// LineResult is a solved line. CurrentFrom is in amperes.
type LineResult struct {
	ID          core.ID `json:"id"`
	CurrentFrom float64 `json:"current_from"`
}

// ShuntResult is a solved shunt.
type ShuntResult struct {
	ID        core.ID `json:"id"`
	Current   float64 `json:"current"`
	RealPower float64 `json:"real_power"`
}

// Output is what a solver returns.
type Output struct {
	Node  []NodeResult  `json:"node"`
	Line  []LineResult  `json:"line"`
	Shunt []ShuntResult `json:"shunt"`
}

// Document is the versioned envelope used for files and process pipes.
type Document[T any] struct {
	Version string `json:"version"`
	Type    string `json:"type"`
	Data    T      `json:"data"`
}

// InputDocument wraps in for export.
func InputDocument(in *Input) Document[*Input] {
	return Document[*Input]{Version: Version, Type: TypeInput, Data: in}
}
