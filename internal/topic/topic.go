// Package topic defines the core domain type for graph topics.
package topic

import (
	"github.com/thorne/topograph/internal/identifier"
)

// Topic represents a subject in the knowledge graph, named by a dotted
// hierarchical identifier.
type Topic struct {
	ID          string `json:"id"`                    // Required, unique, dotted hierarchical identifier
	Title       string `json:"name"`                  // Human-readable display name
	Description string `json:"description,omitempty"` // Optional, longer explanation
}

// ValidateForCreate validates a topic for creation.
// Returns an error if the identifier is missing or malformed.
func (t *Topic) ValidateForCreate() error {
	return identifier.Validate(t.ID)
}
