// SPDX-License-Identifier: MIT
// Package: gridflow/render
//
// ascii.go - text tree of the network as seen from the source.
//
// Layout:
//   - Root is the node of the first source.
//   - Children follow lines and links, in ascending id order.
//   - Nodes not reachable from the source are listed after the tree.

package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/katalvlaran/gridflow/bfs"
	"github.com/katalvlaran/gridflow/core"
)

// NoSource is the diagram of a model without a source.
const NoSource = "No source found"

// ASCII returns the tree diagram of m.
func ASCII(m *core.Model) (string, error) {
	var sb strings.Builder
	if err := WriteASCII(&sb, m); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// WriteASCII writes the tree diagram of m to w.
func WriteASCII(w io.Writer, m *core.Model) error {
	sources := m.Sources()
	if len(sources) == 0 {
		_, err := fmt.Fprintln(w, NoSource)
		return err
	}
	root := sources[0].Node
	res, err := bfs.BFS(m, root)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	children := make(map[core.ID][]core.ID, len(res.Order))
	for _, id := range res.Order {
		if p, ok := res.Parent[id]; ok {
			children[p] = append(children[p], id)
		}
	}

	t := &treeWriter{w: w, m: m, children: children}
	t.line("", root)
	t.walk(root, "")

	var unreachable []core.Node
	for _, n := range m.Nodes() {
		if _, ok := res.Depth[n.ID]; !ok {
			unreachable = append(unreachable, n)
		}
	}
	if len(unreachable) > 0 {
		t.printf("\nunreachable:\n")
		for _, n := range unreachable {
			t.printf("  %s\n", label(n))
		}
	}
	return t.err
}

type treeWriter struct {
	w        io.Writer
	m        *core.Model
	children map[core.ID][]core.ID
	err      error
}

func (t *treeWriter) walk(id core.ID, indent string) {
	kids := t.children[id]
	for i, c := range kids {
		branch, next := "├── ", "│   "
		if i == len(kids)-1 {
			branch, next = "└── ", "    "
		}
		t.line(indent+branch, c)
		t.walk(c, indent+next)
	}
}

func (t *treeWriter) line(prefix string, id core.ID) {
	n, _ := t.m.Node(id)
	t.printf("%s%s\n", prefix, label(n))
}

func (t *treeWriter) printf(format string, args ...any) {
	if t.err != nil {
		return
	}
	_, t.err = fmt.Fprintf(t.w, format, args...)
}

func label(n core.Node) string {
	return fmt.Sprintf("%s (id=%d) [%s]", n.Name, n.ID, n.Class)
}
