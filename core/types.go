// SPDX-License-Identifier: MIT
// Package: gridflow/core
//
// types.go - entity types, node classification and the Model aggregate.
//
// Errors:
//
//	ErrEmptyName      - a node was added with an empty name.
//	ErrDuplicateName  - a node name is already present in the Model.
//	ErrDuplicateID    - an identifier is already used by any entity kind.
//	ErrNodeNotFound   - an entity references a node id that does not exist.
//	ErrLineNotFound   - a requested line does not exist.
//	ErrInvalidID      - identifiers must be positive.

package core

import (
	"errors"
	"strings"
	"sync"
)

// Sentinel errors for model operations.
var (
	// ErrEmptyName indicates that a Node has an empty name.
	ErrEmptyName = errors.New("core: node name is empty")

	// ErrDuplicateName indicates a Node name collision.
	ErrDuplicateName = errors.New("core: duplicate node name")

	// ErrDuplicateID indicates that an identifier is already allocated in the Model.
	ErrDuplicateID = errors.New("core: duplicate entity id")

	// ErrNodeNotFound indicates a reference to a missing node.
	ErrNodeNotFound = errors.New("core: node not found")

	// ErrLineNotFound indicates a reference to a missing line.
	ErrLineNotFound = errors.New("core: line not found")

	// ErrInvalidID indicates a zero or negative identifier.
	ErrInvalidID = errors.New("core: invalid entity id")
)

// ID identifies any entity of a Model. All kinds share one id space.
type ID int64

// NodeClass is the semantic class of a Node derived from its name.
type NodeClass uint8

const (
	// ClassOther marks a node whose name matches no convention.
	ClassOther NodeClass = iota
	// ClassBuilding marks a building service point.
	ClassBuilding
	// ClassStation marks the designated root (substation) node.
	ClassStation
	// ClassFeeder marks a feeder bus.
	ClassFeeder
)

// String returns the record type used in reports.
func (c NodeClass) String() string {
	switch c {
	case ClassBuilding:
		return "building"
	case ClassStation:
		return "station"
	case ClassFeeder:
		return "feeder"
	default:
		return "other_node"
	}
}

// Naming is the naming convention that classifies nodes.
type Naming struct {
	BuildingPrefix string
	RootName       string
	FeederPrefix   string
}

// Default naming convention values.
const (
	DefaultBuildingPrefix = "B"
	DefaultRootName       = "MainSubstation"
	DefaultFeederPrefix   = "Feeder"
)

// DefaultNaming returns the standard naming convention.
func DefaultNaming() Naming {
	return Naming{
		BuildingPrefix: DefaultBuildingPrefix,
		RootName:       DefaultRootName,
		FeederPrefix:   DefaultFeederPrefix,
	}
}

// Classify derives the class of a node name. The building prefix is tested
// first, then the root name, then the feeder prefix. Empty prefixes never match.
func (n Naming) Classify(name string) NodeClass {
	switch {
	case n.BuildingPrefix != "" && strings.HasPrefix(name, n.BuildingPrefix):
		return ClassBuilding
	case n.RootName != "" && name == n.RootName:
		return ClassStation
	case n.FeederPrefix != "" && strings.HasPrefix(name, n.FeederPrefix):
		return ClassFeeder
	default:
		return ClassOther
	}
}

// VoltageLevel is the voltage class of a line.
type VoltageLevel string

const (
	// LevelMV is medium voltage.
	LevelMV VoltageLevel = "MV"
	// LevelLV is low voltage.
	LevelLV VoltageLevel = "LV"
)

// Node is a bus of the network. Class is computed once when the node is added.
type Node struct {
	ID           ID
	Name         string
	RatedVoltage float64 // volts
	Lat          float64
	Lon          float64
	PeakLoadKW   float64
	Class        NodeClass
}

// Line is an impedance-bearing connection between two nodes.
type Line struct {
	ID            ID
	Name          string
	From          ID
	To            ID
	Resistance    float64 // ohm
	Reactance     float64 // ohm
	CurrentRating float64 // ampere
	LengthKm      float64
	Level         VoltageLevel
}

// Link is a zero-impedance service connection.
type Link struct {
	ID         ID
	Name       string
	From       ID
	To         ID
	DistanceKm float64
}

// Load is a real-power demand attached to a node.
type Load struct {
	ID      ID
	Node    ID
	Status  int
	Type    int
	PowerKW float64
}

// Source is the slack injection.
type Source struct {
	ID               ID
	Node             ID
	Status           int
	ReferenceVoltage float64 // p.u.
}

// Shunt is a fixed admittance attached to a node.
type Shunt struct {
	ID          ID
	Node        ID
	Status      int
	Conductance float64 // siemens
}

// Model is the topology aggregate. Collections are kept in insertion order
// and every lookup goes through index maps that are maintained on insert.
//
// A Model is safe for concurrent readers. Writers (Add*, ApplyLoads) take
// the exclusive lock.
type Model struct {
	mu sync.RWMutex

	nodes   []Node
	lines   []Line
	links   []Link
	loads   []Load
	sources []Source
	shunts  []Shunt

	ids        map[ID]struct{}
	nodeIndex  map[ID]int     // node id -> position in nodes
	nameIndex  map[string]ID  // node name -> node id
	lineIndex  map[ID]int     // line id -> position in lines
	loadByName map[string]int // node name -> position in loads (first load bound wins)
	adjacency  map[ID][]ID    // undirected, via lines and links
}

// NewModel returns an empty Model.
func NewModel() *Model {
	return &Model{
		ids:        make(map[ID]struct{}),
		nodeIndex:  make(map[ID]int),
		nameIndex:  make(map[string]ID),
		lineIndex:  make(map[ID]int),
		loadByName: make(map[string]int),
		adjacency:  make(map[ID][]ID),
	}
}
