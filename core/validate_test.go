// SPDX-License-Identifier: MIT

package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Add* never lets these states through, so they are injected directly.
func TestValidate_ReportsEveryViolation(t *testing.T) {
	m := NewModel()
	naming := DefaultNaming()
	require.NoError(t, m.AddNode(Node{ID: 1, Name: "MainSubstation"}, naming))
	require.NoError(t, m.AddNode(Node{ID: 2, Name: "Feeder1"}, naming))
	require.NoError(t, m.Validate())

	m.lines = append(m.lines, Line{ID: 3, Name: "L1", From: 1, To: 9})
	m.loads = append(m.loads, Load{ID: 2, Node: 1})
	m.nodes = append(m.nodes, Node{ID: 4, Name: "Feeder1"})

	err := m.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNodeNotFound)
	assert.ErrorIs(t, err, ErrDuplicateID)
	assert.ErrorIs(t, err, ErrDuplicateName)
	assert.Contains(t, err.Error(), "line 3 -> node 9")
}
