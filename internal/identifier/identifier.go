// Package identifier defines the dotted hierarchical identifier scheme for topics.
package identifier

import (
	"errors"
	"strings"
)

// Identifiers are purely structural: one or more non-empty segments joined by
// dots, e.g. "2", "2.3", "2.3.1". No numeric interpretation is applied.

// Validation errors.
var (
	ErrEmpty        = errors.New("identifier is required")
	ErrEmptySegment = errors.New("identifier segments cannot be empty")
	ErrWhitespace   = errors.New("identifier cannot contain whitespace")
)

// Display tiers derived from identifier depth.
const (
	TierTop  = 1 // depth 1: largest radius, outlined
	TierMid  = 2 // depth 2: medium radius
	TierLeaf = 3 // depth >= 3: smallest radius, no outline
)

// Validate checks that id is a well-formed dotted identifier.
func Validate(id string) error {
	if id == "" {
		return ErrEmpty
	}
	if strings.ContainsAny(id, " \t\n\r") {
		return ErrWhitespace
	}
	for _, seg := range strings.Split(id, ".") {
		if seg == "" {
			return ErrEmptySegment
		}
	}
	return nil
}

// Depth returns the number of dot-separated segments in id.
func Depth(id string) int {
	if id == "" {
		return 0
	}
	return strings.Count(id, ".") + 1
}

// Parent returns the identifier formed by dropping the last segment.
// The second return is false for depth-1 identifiers, which have no parent.
func Parent(id string) (string, bool) {
	i := strings.LastIndex(id, ".")
	if i < 0 {
		return "", false
	}
	return id[:i], true
}

// Tier classifies id into one of the three display tiers by depth.
func Tier(id string) int {
	switch d := Depth(id); {
	case d <= 1:
		return TierTop
	case d == 2:
		return TierMid
	default:
		return TierLeaf
	}
}
