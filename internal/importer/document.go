package importer

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/thorne/topograph/internal/graph"
)

// ParseDocument parses the combined graph-shaped JSON input. Malformed JSON
// is fatal; per-record problems are left to the graph builder's anomaly
// reporting.
func ParseDocument(r io.Reader) (graph.Document, error) {
	var doc graph.Document
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return graph.Document{}, fmt.Errorf("parsing graph document: %w", err)
	}
	return doc, nil
}
