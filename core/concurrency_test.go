// SPDX-License-Identifier: MIT

package core_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestConcurrentClones mutates many clones of one shared base in parallel.
func TestConcurrentClones(t *testing.T) {
	base := smallModel(t)
	const workers = 32

	var wg sync.WaitGroup
	got := make([]float64, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c := base.Clone()
			c.ApplyLoads(map[string]float64{"B0001": float64(i)})
			got[i], _ = c.LoadPower("B0001")
		}(i)
	}
	wg.Wait()

	for i, v := range got {
		assert.Equal(t, float64(i), v)
	}
	kw, _ := base.LoadPower("B0001")
	assert.Equal(t, 10.0, kw)
}
