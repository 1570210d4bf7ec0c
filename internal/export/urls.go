// Package export flattens graph state back into the tabular urls form.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/thorne/topograph/internal/graph"
	"github.com/thorne/topograph/internal/resource"
)

// Header is the column header row of the urls file.
var Header = []string{"Identifier", "URL"}

// Flatten produces the ordered (identifier, url) pairs for the current graph
// state: nodes in graph order, one record per URL, then edges in graph order
// keyed by their recomputed composite key, then index entries resolving to
// no node or edge in identifier order. Unresolved entries are diagnosed at
// build time but stay in the table, so rewriting the urls file never loses
// them. The result re-parses through resource.BuildIndex without loss.
func Flatten(g *graph.Graph) []resource.Record {
	var records []resource.Record
	for _, n := range g.Nodes {
		for _, u := range n.URLs {
			records = append(records, resource.Record{Identifier: n.ID, URL: u})
		}
	}
	for _, e := range g.Edges {
		key := e.Key()
		for _, u := range e.URLs {
			records = append(records, resource.Record{Identifier: key, URL: u})
		}
	}
	for _, id := range g.Index().Identifiers() {
		if g.NodeByID(id) != nil || g.EdgeByKey(id) != nil {
			continue
		}
		for _, u := range g.Index().URLsFor(id) {
			records = append(records, resource.Record{Identifier: id, URL: u})
		}
	}
	return records
}

// WriteURLs writes the flattened urls table to w as CSV with a header row.
// URL fields are always quoted; identifiers are quoted only when they
// contain a delimiter, quote, or newline. Escaping follows RFC 4180
// (embedded quotes doubled), so the output re-parses with any standard CSV
// reader.
func WriteURLs(w io.Writer, g *graph.Graph) error {
	if _, err := fmt.Fprintf(w, "%s,%s\n", Header[0], Header[1]); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, r := range Flatten(g) {
		row := quoteIfNeeded(r.Identifier) + "," + quote(r.URL) + "\n"
		if _, err := io.WriteString(w, row); err != nil {
			return fmt.Errorf("writing row for %s: %w", r.Identifier, err)
		}
	}
	return nil
}

// quote wraps field in double quotes, doubling any embedded quotes.
func quote(field string) string {
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

// quoteIfNeeded quotes field only when CSV requires it.
func quoteIfNeeded(field string) string {
	if strings.ContainsAny(field, ",\"\n\r") {
		return quote(field)
	}
	return field
}
