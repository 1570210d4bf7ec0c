package graph

import (
	"fmt"

	"github.com/thorne/topograph/internal/identifier"
	"github.com/thorne/topograph/internal/link"
	"github.com/thorne/topograph/internal/resource"
	"github.com/thorne/topograph/internal/topic"
)

// Anomaly types reported by the builder. Anomalies are diagnostics, not
// errors: the build always produces a best-effort graph.
const (
	AnomalyDuplicateTopicID = "duplicate_topic_id"
	AnomalyOrphanedLink     = "orphaned_link"
	AnomalyUnknownResource  = "unknown_resource_identifier"
)

// Anomaly describes a data-quality problem encountered during a build.
type Anomaly struct {
	Type    string `json:"type"`
	Subject string `json:"subject"`
	Detail  string `json:"detail,omitempty"`
}

func (a Anomaly) String() string {
	if a.Detail == "" {
		return fmt.Sprintf("%s: %s", a.Type, a.Subject)
	}
	return fmt.Sprintf("%s: %s (%s)", a.Type, a.Subject, a.Detail)
}

// Build constructs the complete graph from topic and link records, inferring
// hierarchical edges from identifier structure and attaching resources from
// idx. A nil idx behaves as an empty index.
//
// Data-quality problems never fail the build: duplicate topic identifiers
// resolve last-write-wins, links with missing endpoints are dropped, and
// every such case is reported as an anomaly. Callers are expected to have
// filtered structurally malformed records (blank identifiers, missing
// endpoints) before this point.
func Build(topics []topic.Topic, links []link.Link, idx *resource.Index) (*Graph, []Anomaly) {
	var anomalies []Anomaly

	// Nodes 1:1 from topic records; duplicates collapse onto the earlier
	// node, keeping the later record's fields.
	nodesByID := make(map[string]*Node, len(topics))
	nodes := make([]*Node, 0, len(topics))
	for _, t := range topics {
		if existing, ok := nodesByID[t.ID]; ok {
			anomalies = append(anomalies, Anomaly{
				Type:    AnomalyDuplicateTopicID,
				Subject: t.ID,
				Detail:  "later record overwrites earlier one",
			})
			existing.Title = t.Title
			existing.Description = t.Description
			continue
		}
		n := &Node{ID: t.ID, Title: t.Title, Description: t.Description}
		nodesByID[t.ID] = n
		nodes = append(nodes, n)
	}

	nodeIDs := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		nodeIDs[n.ID] = true
	}

	// Referentially filter the explicit links first. Their composite keys
	// fence off inference below: datasets often spell out some sub topic
	// links the naming convention would also reconstruct, and those must
	// not become parallel edges sharing one key.
	edges := make([]*Edge, 0, len(links)+len(nodes))
	edges = appendValid(edges, links, nodeIDs, &anomalies)

	explicit := make(map[string]bool, len(edges))
	for _, e := range edges {
		explicit[e.Key()] = true
	}

	// Inferred hierarchical edges. Inference yields no edge when the
	// computed parent is absent: depth-1 topics have no parent by
	// construction and orphaned deep topics are tolerated.
	var hierarchical []link.Link
	for _, n := range nodes {
		parent, ok := identifier.Parent(n.ID)
		if !ok || !nodeIDs[parent] {
			continue
		}
		if explicit[link.CompositeKey(parent, n.ID, link.LabelSubTopic)] {
			continue
		}
		hierarchical = append(hierarchical, link.Link{
			SourceID:     parent,
			TargetID:     n.ID,
			RelationType: link.LabelSubTopic,
		})
	}

	// Re-validating the inferred edges guards against corrupted
	// identifiers sneaking through inference.
	edges = appendValid(edges, hierarchical, nodeIDs, &anomalies)

	g := &Graph{Nodes: nodes, Edges: dedupeEdges(edges)}
	g.rebuildLookups()
	g.attach(idx, &anomalies)
	return g, anomalies
}

// appendValid filters links to those with both endpoints in nodeIDs,
// appending the survivors as edges and the rest as orphaned-link anomalies.
// Each edge's category follows its relation type label, so explicit
// sub topic links land in the hierarchical category alongside inferred ones.
func appendValid(edges []*Edge, links []link.Link, nodeIDs map[string]bool, anomalies *[]Anomaly) []*Edge {
	orphaned, valid := link.DetectOrphanedLinks(links, nodeIDs)
	for _, o := range orphaned {
		*anomalies = append(*anomalies, Anomaly{
			Type:    AnomalyOrphanedLink,
			Subject: link.CompositeKey(o.SourceID, o.TargetID, o.RelationType),
			Detail:  o.Reason,
		})
	}
	for _, l := range valid {
		edges = append(edges, &Edge{
			SourceID:     l.SourceID,
			TargetID:     l.TargetID,
			RelationType: l.RelationType,
			Category:     categoryFor(l.RelationType),
		})
	}
	return edges
}

// categoryFor maps a relation type label to an edge category.
func categoryFor(relationType string) string {
	if link.ClassifyRelation(relationType) == link.RelationSubTopic {
		return CategoryHierarchical
	}
	return CategoryDependency
}

// dedupeEdges drops edges repeating an earlier edge's composite key, keeping
// the first occurrence. Composite keys must be unique: resource attachment
// and the query cache both key edges by them.
func dedupeEdges(edges []*Edge) []*Edge {
	seen := make(map[string]bool, len(edges))
	out := edges[:0]
	for _, e := range edges {
		if seen[e.Key()] {
			continue
		}
		seen[e.Key()] = true
		out = append(out, e)
	}
	return out
}

// attach populates the denormalized URL lists from idx and records an
// anomaly for every indexed identifier that names no node or edge.
func (g *Graph) attach(idx *resource.Index, anomalies *[]Anomaly) {
	if idx == nil {
		idx = resource.NewIndex()
	}
	g.index = idx

	for _, n := range g.Nodes {
		n.URLs = idx.URLsFor(n.ID)
	}
	for _, e := range g.Edges {
		e.URLs = idx.URLsFor(e.Key())
	}

	for _, id := range idx.Identifiers() {
		if g.nodesByID[id] == nil && g.edgesByKey[id] == nil {
			*anomalies = append(*anomalies, Anomaly{
				Type:    AnomalyUnknownResource,
				Subject: id,
				Detail:  "urls attached to no node or edge",
			})
		}
	}
}
