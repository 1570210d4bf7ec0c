package graph

import (
	"github.com/thorne/topograph/internal/link"
	"github.com/thorne/topograph/internal/resource"
	"github.com/thorne/topograph/internal/topic"
)

// Document is the combined, already graph-shaped input form: nodes and links
// arrive pre-built, so hierarchical inference is skipped. Resource
// attachment still applies.
type Document struct {
	Nodes           []topic.Topic    `json:"nodes"`
	Links           []link.Link      `json:"links"`
	HighLevelTopics []HighLevelTopic `json:"high_level_topics,omitempty"`
}

// HighLevelTopic names a cluster of related topics for display grouping.
type HighLevelTopic struct {
	ID        string   `json:"id"`
	Title     string   `json:"name,omitempty"`
	SubTopics []string `json:"sub_topics,omitempty"`
}

// FromDocument constructs the graph from a pre-built document. Edges are
// referentially filtered but not inferred; each link's category follows its
// relation type label (pre-built "sub topic" links count as hierarchical).
func FromDocument(doc Document, idx *resource.Index) (*Graph, []Anomaly) {
	var anomalies []Anomaly

	nodesByID := make(map[string]*Node, len(doc.Nodes))
	nodes := make([]*Node, 0, len(doc.Nodes))
	for _, t := range doc.Nodes {
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

	orphaned, valid := link.DetectOrphanedLinks(doc.Links, nodeIDs)
	for _, o := range orphaned {
		anomalies = append(anomalies, Anomaly{
			Type:    AnomalyOrphanedLink,
			Subject: link.CompositeKey(o.SourceID, o.TargetID, o.RelationType),
			Detail:  o.Reason,
		})
	}

	edges := make([]*Edge, 0, len(valid))
	for _, l := range valid {
		edges = append(edges, &Edge{
			SourceID:     l.SourceID,
			TargetID:     l.TargetID,
			RelationType: l.RelationType,
			Category:     categoryFor(l.RelationType),
		})
	}

	g := &Graph{Nodes: nodes, Edges: dedupeEdges(edges)}
	g.rebuildLookups()
	g.attach(idx, &anomalies)
	return g, anomalies
}
