package graph

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/meridian-os/sdkforge/atom"
	"github.com/meridian-os/sdkforge/errors"
)

// Build converts a gathered closure into a Graph. Nodes and links come out
// sorted; GeneratedAt is the only non-deterministic field and is omitted
// from the DOT rendering entirely.
func Build(closure *atom.Closure, now time.Time) *Graph {
	roots := make(map[atom.Identifier]struct{}, len(closure.Roots))
	for _, id := range closure.Roots {
		roots[id] = struct{}{}
	}

	g := &Graph{
		Meta: Meta{
			GeneratedAt: now,
			Stats:       Stats{ByCategory: make(map[string]int)},
		},
	}

	for _, a := range closure.Atoms {
		_, isRoot := roots[a.ID]
		g.Nodes = append(g.Nodes, Node{
			ID:       a.ID.String(),
			Label:    a.ID.Name,
			Domain:   a.ID.Domain,
			Category: a.Category.String(),
			Group:    a.Category.Index(),
			Root:     isRoot,
		})
		g.Meta.Stats.ByCategory[a.Category.String()]++

		for _, dep := range a.Deps {
			g.Links = append(g.Links, Link{
				Source: a.ID.String(),
				Target: dep.String(),
			})
		}
	}

	sort.Slice(g.Links, func(i, j int) bool {
		if g.Links[i].Source != g.Links[j].Source {
			return g.Links[i].Source < g.Links[j].Source
		}
		return g.Links[i].Target < g.Links[j].Target
	})
	g.Meta.Stats.NodeCount = len(g.Nodes)
	g.Meta.Stats.LinkCount = len(g.Links)
	return g
}

// WriteJSON writes the graph as indented JSON.
func (g *Graph) WriteJSON(w io.Writer) error {
	data, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to encode graph")
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return errors.Wrap(err, "failed to write graph")
	}
	return nil
}

// categoryColors assigns one fill color per publication tier, dark to light
// as visibility widens.
var categoryColors = map[string]string{
	"internal": "#bdbdbd",
	"cts":      "#90caf9",
	"partner":  "#a5d6a7",
	"public":   "#fff59d",
}

// WriteDOT writes the graph in Graphviz format. Output is fully
// deterministic: nodes and edges in sorted order, no timestamps.
func (g *Graph) WriteDOT(w io.Writer) error {
	var b strings.Builder
	b.WriteString("digraph atoms {\n")
	b.WriteString("  rankdir = \"LR\";\n")

	for _, n := range g.Nodes {
		color := categoryColors[n.Category]
		if color == "" {
			color = "#ffffff"
		}
		shape := "ellipse"
		if n.Root {
			shape = "box"
		}
		fmt.Fprintf(&b, "  %q [label=%q, shape=%s, style=filled, fillcolor=%q];\n",
			n.ID, n.Label, shape, color)
	}
	for _, l := range g.Links {
		fmt.Fprintf(&b, "  %q -> %q;\n", l.Source, l.Target)
	}
	b.WriteString("}\n")

	if _, err := io.WriteString(w, b.String()); err != nil {
		return errors.Wrap(err, "failed to write DOT graph")
	}
	return nil
}
