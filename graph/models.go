// Package graph renders an atom closure as a dependency graph for
// visualization, either as JSON for web viewers or as Graphviz DOT.
package graph

import (
	"time"
)

// Graph is the complete structure handed to visualization tooling.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Links []Link `json:"links"`
	Meta  Meta   `json:"meta"`
}

// Node is one atom in the graph. Group mirrors the category's publication
// index so viewers can color by visibility tier.
type Node struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Domain   string `json:"domain"`
	Category string `json:"category"`
	Group    int    `json:"group"`
	Root     bool   `json:"root,omitempty"`
}

// Link is one dependency edge, from dependent to dependency.
type Link struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// Meta describes the graph itself.
type Meta struct {
	GeneratedAt time.Time `json:"generated_at"`
	Stats       Stats     `json:"stats"`
}

// Stats summarizes graph size and composition.
type Stats struct {
	NodeCount  int            `json:"node_count"`
	LinkCount  int            `json:"link_count"`
	ByCategory map[string]int `json:"by_category"`
}
