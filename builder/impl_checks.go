// SPDX-License-Identifier: MIT
// Package: gridflow/builder
//
// impl_checks.go - post-construction findings. Nothing here alters the model.

package builder

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/gridflow/bfs"
	"github.com/katalvlaran/gridflow/dfs"
	"github.com/katalvlaran/gridflow/core"
)

// checks flags nodes outside the naming convention, loops that make the
// network meshed, and nodes that cannot be reached from the source.
func checks(st *buildState) error {
	nodes := st.model.Nodes()
	for _, n := range nodes {
		if n.Class == core.ClassOther {
			st.issue(IssueNamingConvention, n.Name, "name matches no convention, classified other_node")
		}
	}

	loops, err := dfs.Loops(st.model)
	if err != nil {
		return fmt.Errorf("loops: %w", err)
	}
	for _, loop := range loops {
		st.issue(IssueLoop, st.pathName(loop), "network is not radial")
	}

	srcs := st.model.Sources()
	if len(srcs) == 0 {
		return nil
	}
	res, err := bfs.BFS(st.model, srcs[0].Node)
	if err != nil {
		return fmt.Errorf("reachability: %w", err)
	}
	for _, n := range nodes {
		if _, reached := res.Depth[n.ID]; !reached {
			st.issue(IssueUnreachable, n.Name, "not connected to the source")
		}
	}

	return nil
}

// pathName renders node ids as "A -> B -> A".
func (st *buildState) pathName(ids []core.ID) string {
	names := make([]string, len(ids))
	for i, id := range ids {
		n, _ := st.model.Node(id)
		names[i] = n.Name
	}
	return strings.Join(names, " -> ")
}
