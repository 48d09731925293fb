// SPDX-License-Identifier: MIT
// File: methods_loads.go
// Role: Load mutation, either in place on a (cloned) Model or through an Overlay.
// Policy:
//   - Only Load.PowerKW changes; topology collections are never touched.
//   - Names without a bound load are ignored.

package core

// ApplyLoads overwrites the real power of every load bound to a node named
// in loads and returns how many loads were updated. The name->load binding
// is resolved when the load is added, not per call.
func (m *Model) ApplyLoads(loads map[string]float64) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	applied := 0
	for name, kw := range loads {
		if i, ok := m.loadByName[name]; ok {
			m.loads[i].PowerKW = kw
			applied++
		}
	}

	return applied
}

// LoadPower returns the real power in kW of the load bound to the named node.
func (m *Model) LoadPower(name string) (float64, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	i, ok := m.loadByName[name]
	if !ok {
		return 0, false
	}
	return m.loads[i].PowerKW, true
}

// Overlay holds per-step load powers over a shared, read-only base Model.
// Index i of the overlay is the i-th load of the base.
type Overlay struct {
	base  *Model
	power []float64
}

// NewOverlay seeds an overlay with the base load powers.
func (m *Model) NewOverlay() *Overlay {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p := make([]float64, len(m.loads))
	for i, ld := range m.loads {
		p[i] = ld.PowerKW
	}

	return &Overlay{base: m, power: p}
}

// Base returns the model the overlay reads topology from.
func (o *Overlay) Base() *Model { return o.base }

// Apply sets overlay powers by node name; see ApplyLoads.
func (o *Overlay) Apply(loads map[string]float64) int {
	o.base.mu.RLock()
	defer o.base.mu.RUnlock()
	applied := 0
	for name, kw := range loads {
		if i, ok := o.base.loadByName[name]; ok {
			o.power[i] = kw
			applied++
		}
	}

	return applied
}

// Loads returns the base loads with overlay powers substituted.
func (o *Overlay) Loads() []Load {
	out := o.base.Loads()
	for i := range out {
		out[i].PowerKW = o.power[i]
	}

	return out
}
