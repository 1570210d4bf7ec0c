// Package resource maps entity identifiers to their ordered URL lists.
//
// Identifiers are either bare node identifiers or composite edge keys; the
// index does not distinguish the two. Sequences preserve input order and
// permit duplicates.
package resource

import (
	"fmt"
	"net/url"
	"sort"
)

// Record is a single (identifier, url) pair as read from or written to the
// flat urls file.
type Record struct {
	Identifier string `json:"identifier"`
	URL        string `json:"url"`
}

// Index maps an identifier to its ordered sequence of URLs.
type Index struct {
	urls map[string][]string
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{urls: make(map[string][]string)}
}

// BuildIndex groups records by identifier, preserving input order within
// each group. Duplicate URLs are kept.
func BuildIndex(records []Record) *Index {
	idx := NewIndex()
	for _, r := range records {
		idx.urls[r.Identifier] = append(idx.urls[r.Identifier], r.URL)
	}
	return idx
}

// ValidationError reports a rejected URL with an actionable message.
type ValidationError struct {
	URL    string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid url %q: %s", e.URL, e.Reason)
}

// ValidateURL checks that raw parses as an absolute URL with a scheme and
// host. The index only accepts URLs that pass this check.
func ValidateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return &ValidationError{URL: raw, Reason: err.Error()}
	}
	if u.Scheme == "" {
		return &ValidationError{URL: raw, Reason: "missing scheme (expected e.g. https://...)"}
	}
	if u.Host == "" {
		return &ValidationError{URL: raw, Reason: "missing host"}
	}
	return nil
}

// Append adds a URL to the sequence for identifier, creating the sequence if
// absent. The URL must be syntactically valid and absolute; on rejection the
// index is left unchanged. No uniqueness check is applied.
func (idx *Index) Append(identifier, rawURL string) error {
	if err := ValidateURL(rawURL); err != nil {
		return err
	}
	idx.urls[identifier] = append(idx.urls[identifier], rawURL)
	return nil
}

// URLsFor returns the ordered URL sequence for identifier. Absence is a
// normal state: the result is nil, never an error.
func (idx *Index) URLsFor(identifier string) []string {
	return idx.urls[identifier]
}

// Identifiers returns all identifiers with at least one URL, sorted.
func (idx *Index) Identifiers() []string {
	ids := make([]string, 0, len(idx.urls))
	for id := range idx.urls {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of identifiers with at least one URL.
func (idx *Index) Len() int {
	return len(idx.urls)
}

// TotalURLs returns the total number of URL entries across all identifiers.
func (idx *Index) TotalURLs() int {
	n := 0
	for _, us := range idx.urls {
		n += len(us)
	}
	return n
}
