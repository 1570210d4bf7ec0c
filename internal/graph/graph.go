// Package graph builds the validated node/edge model from raw topic, link,
// and resource records.
package graph

import (
	"github.com/thorne/topograph/internal/link"
	"github.com/thorne/topograph/internal/resource"
)

// Edge categories.
const (
	CategoryDependency   = "dependency"   // explicit link record
	CategoryHierarchical = "hierarchical" // inferred from identifier structure
)

// Node is a topic in the finished graph. X and Y are layout positions owned
// and mutated by the rendering side after construction.
type Node struct {
	ID          string   `json:"id"`
	Title       string   `json:"name"`
	Description string   `json:"description,omitempty"`
	URLs        []string `json:"urls,omitempty"`

	X float64 `json:"x,omitempty"`
	Y float64 `json:"y,omitempty"`
}

// Edge is a directed relationship in the finished graph.
type Edge struct {
	SourceID     string   `json:"source"`
	TargetID     string   `json:"target"`
	RelationType string   `json:"type"`
	Category     string   `json:"category"`
	URLs         []string `json:"urls,omitempty"`
}

// Key returns the composite edge key for this edge.
func (e *Edge) Key() string {
	return link.CompositeKey(e.SourceID, e.TargetID, e.RelationType)
}

// Graph is the complete node/edge model. Nodes and edges are held by pointer:
// URL appends after construction mutate them in place with no resync step.
type Graph struct {
	Nodes []*Node
	Edges []*Edge

	nodesByID  map[string]*Node
	edgesByKey map[string]*Edge
	index      *resource.Index
}

// NodeByID returns the node with the given identifier, or nil.
func (g *Graph) NodeByID(id string) *Node {
	return g.nodesByID[id]
}

// EdgeByKey returns the edge with the given composite key, or nil.
func (g *Graph) EdgeByKey(key string) *Edge {
	return g.edgesByKey[key]
}

// Index returns the resource index attached to this graph.
func (g *Graph) Index() *resource.Index {
	return g.index
}

// EntityNotFoundError reports an append against an identifier that names
// neither a node nor an edge in the graph.
type EntityNotFoundError struct {
	Identifier string
}

func (e *EntityNotFoundError) Error() string {
	return "no node or edge with identifier " + e.Identifier
}

// AppendURL validates rawURL and appends it to both the resource index and
// the denormalized URL list of the matching node or edge. The identifier is
// a node ID or a composite edge key. On any failure neither the index nor
// the graph changes.
func (g *Graph) AppendURL(identifier, rawURL string) error {
	if err := resource.ValidateURL(rawURL); err != nil {
		return err
	}

	n := g.nodesByID[identifier]
	e := g.edgesByKey[identifier]
	if n == nil && e == nil {
		return &EntityNotFoundError{Identifier: identifier}
	}

	if err := g.index.Append(identifier, rawURL); err != nil {
		return err
	}
	if n != nil {
		n.URLs = append(n.URLs, rawURL)
	} else {
		e.URLs = append(e.URLs, rawURL)
	}
	return nil
}

// rebuildLookups recomputes the by-ID and by-key maps from the slices.
func (g *Graph) rebuildLookups() {
	g.nodesByID = make(map[string]*Node, len(g.Nodes))
	for _, n := range g.Nodes {
		g.nodesByID[n.ID] = n
	}
	g.edgesByKey = make(map[string]*Edge, len(g.Edges))
	for _, e := range g.Edges {
		g.edgesByKey[e.Key()] = e
	}
}
