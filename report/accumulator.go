// SPDX-License-Identifier: MIT
// Package: gridflow/report
//
// accumulator.go - collects per-step results into the wide and long tables.
//
// Ordering:
//   - Entities are kept in first-seen order: the order in which the solver
//     first emitted them, nodes before lines within a step. Never re-sorted.
//   - Long rows are step-major in label order.
// Absence:
//   - A step that failed, or that omitted an entity, leaves blank cells for
//     that entity; nothing is interpolated.

package report

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/gridflow/core"
	"github.com/katalvlaran/gridflow/simulation"
)

var (
	// ErrStepOutOfRange indicates a step index outside the label range.
	ErrStepOutOfRange = errors.New("report: step out of range")

	// ErrDuplicateStep indicates the same step was added twice.
	ErrDuplicateStep = errors.New("report: step already added")

	// ErrUnknownEntity indicates a result for an id that is not in the model.
	ErrUnknownEntity = errors.New("report: unknown entity")
)

type entityKind uint8

const (
	nodeEntity entityKind = iota
	lineEntity
)

type entityKey struct {
	kind entityKind
	id   core.ID
}

// stepCell is one entity at one step.
type stepCell struct {
	present bool
	voltage float64
	derived Derived
	current float64
}

type entity struct {
	key        entityKey
	name       string
	recordType string
	rating     float64
	cells      []stepCell
}

// Option customizes an Accumulator.
type Option func(*Policy)

// WithReactiveRatio sets Q/P.
func WithReactiveRatio(r float64) Option { return func(p *Policy) { p.ReactiveRatio = r } }

// WithEpsilon sets the apparent power floor.
func WithEpsilon(eps float64) Option { return func(p *Policy) { p.Epsilon = eps } }

// Accumulator builds both output tables from step results. It reads names,
// classes and ratings from the base model. Not safe for concurrent Add.
type Accumulator struct {
	model  *core.Model
	labels []string
	policy Policy
	order  []*entity
	index  map[entityKey]*entity
	added  []bool
}

// NewAccumulator prepares an accumulator for len(labels) steps.
func NewAccumulator(m *core.Model, labels []string, opts ...Option) (*Accumulator, error) {
	if m == nil {
		return nil, errors.New("report: model is nil")
	}
	p := DefaultPolicy()
	for _, opt := range opts {
		opt(&p)
	}
	if err := p.validate(); err != nil {
		return nil, err
	}

	return &Accumulator{
		model:  m,
		labels: append([]string(nil), labels...),
		policy: p,
		index:  make(map[entityKey]*entity),
		added:  make([]bool, len(labels)),
	}, nil
}

// Collect adds every step of res in order.
func Collect(m *core.Model, res *simulation.Result, opts ...Option) (*Accumulator, error) {
	a, err := NewAccumulator(m, res.Labels, opts...)
	if err != nil {
		return nil, err
	}
	for _, st := range res.Steps {
		if err = a.Add(st); err != nil {
			return nil, err
		}
	}

	return a, nil
}

// Labels returns the time labels.
func (a *Accumulator) Labels() []string { return append([]string(nil), a.labels...) }

// Len is the number of entities seen so far.
func (a *Accumulator) Len() int { return len(a.order) }

// Add records one step. A failed step only marks the step as seen.
// Nothing is recorded when an error is returned.
func (a *Accumulator) Add(st simulation.StepResult) error {
	if st.Index < 0 || st.Index >= len(a.labels) {
		return fmt.Errorf("%w: %d not in [0,%d)", ErrStepOutOfRange, st.Index, len(a.labels))
	}
	if a.added[st.Index] {
		return fmt.Errorf("%w: %d", ErrDuplicateStep, st.Index)
	}
	if st.Failed() {
		a.added[st.Index] = true
		return nil
	}

	nodes := make([]core.Node, len(st.Nodes))
	for i, r := range st.Nodes {
		n, ok := a.model.Node(r.ID)
		if !ok {
			return fmt.Errorf("%w: node %d at step %d", ErrUnknownEntity, r.ID, st.Index)
		}
		nodes[i] = n
	}
	lines := make([]core.Line, len(st.Lines))
	for i, r := range st.Lines {
		l, err := a.model.Line(r.ID)
		if err != nil {
			return fmt.Errorf("%w: line %d at step %d", ErrUnknownEntity, r.ID, st.Index)
		}
		lines[i] = l
	}

	a.added[st.Index] = true
	for i, r := range st.Nodes {
		e := a.entity(entityKey{nodeEntity, r.ID}, nodes[i].Name, nodes[i].Class.String(), 0)
		e.cells[st.Index] = stepCell{
			present: true,
			voltage: r.VoltagePU,
			derived: a.policy.Derive(r.RealPowerW / 1000),
		}
	}
	for i, r := range st.Lines {
		e := a.entity(entityKey{lineEntity, r.ID}, lines[i].Name, RecordLine, lines[i].CurrentRating)
		e.cells[st.Index] = stepCell{present: true, current: r.CurrentFrom}
	}

	return nil
}

func (a *Accumulator) entity(k entityKey, name, recordType string, rating float64) *entity {
	if e, ok := a.index[k]; ok {
		return e
	}
	e := &entity{key: k, name: name, recordType: recordType, rating: rating, cells: make([]stepCell, len(a.labels))}
	a.index[k] = e
	a.order = append(a.order, e)

	return e
}

// Wide returns one row per entity. The snapshot columns hold the entity's
// last present step.
func (a *Accumulator) Wide() []WideRow {
	rows := make([]WideRow, 0, len(a.order))
	for _, e := range a.order {
		row := WideRow{Series: make([]Value, len(a.labels))}
		row.EntityID, row.RecordType, row.LineID = e.ids()
		last := -1
		for t, c := range e.cells {
			if !c.present {
				continue
			}
			last = t
			if e.key.kind == nodeEntity {
				row.Series[t] = some(c.voltage)
			} else {
				row.Series[t] = some(c.current)
			}
		}
		if last >= 0 {
			row.Quantities = e.quantities(e.cells[last])
		}
		rows = append(rows, row)
	}

	return rows
}

// Long returns one row per step per entity, step-major.
func (a *Accumulator) Long() []LongRow {
	rows := make([]LongRow, 0, len(a.order)*len(a.labels))
	for t, label := range a.labels {
		for _, e := range a.order {
			row := LongRow{TimeStep: label}
			row.EntityID, row.RecordType, row.LineID = e.ids()
			if c := e.cells[t]; c.present {
				row.Quantities = e.quantities(c)
			}
			rows = append(rows, row)
		}
	}

	return rows
}

// ids returns entity_id, record_type and line_id. Lines are identified by
// line_id and leave entity_id blank.
func (e *entity) ids() (string, string, string) {
	if e.key.kind == lineEntity {
		return "", e.recordType, e.name
	}
	return e.name, e.recordType, ""
}

func (e *entity) quantities(c stepCell) Quantities {
	if e.key.kind == nodeEntity {
		return Quantities{
			VoltagePU: some(c.voltage),
			PKW:       some(c.derived.P),
			QKVar:     some(c.derived.Q),
			PF:        some(c.derived.PF),
		}
	}
	return Quantities{
		IFromA:  some(c.current),
		RatingA: some(e.rating),
		Loading: some(LoadingPercent(c.current, e.rating)),
	}
}
