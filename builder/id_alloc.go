// SPDX-License-Identifier: MIT
// Package: gridflow/builder
//
// id_alloc.go - the shared identifier sequence.

package builder

import (
	"fmt"

	"github.com/katalvlaran/gridflow/core"
)

// IDAllocator hands out monotonically increasing ids shared by every entity
// kind. It is not safe for concurrent use; one Build owns it at a time.
type IDAllocator struct {
	next core.ID
}

// NewIDAllocator starts a sequence at start, which must be positive.
func NewIDAllocator(start core.ID) *IDAllocator {
	if start <= 0 {
		panic(fmt.Sprintf("builder: NewIDAllocator(%d): start must be positive", start))
	}
	return &IDAllocator{next: start}
}

// Next returns the next id.
func (a *IDAllocator) Next() core.ID {
	id := a.next
	a.next++
	return id
}

// Peek returns the id Next would return without consuming it.
func (a *IDAllocator) Peek() core.ID { return a.next }
