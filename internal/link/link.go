// Package link defines the core domain types for topic graph links.
package link

import (
	"errors"
	"strings"
)

// Link represents a directed relationship between two topics.
type Link struct {
	// Identity: (SourceID, TargetID, RelationType) tuple
	SourceID     string `json:"source"`
	TargetID     string `json:"target"`
	RelationType string `json:"type"`
}

// CompositeKeyDelimiter joins the identity tuple into a composite key.
// Not expected to appear in identifiers or relation type labels.
const CompositeKeyDelimiter = "|"

// Validation errors.
var (
	ErrEmptySourceID     = errors.New("source identifier is required")
	ErrEmptyTargetID     = errors.New("target identifier is required")
	ErrEmptyRelationType = errors.New("relation type is required")
	ErrSelfLink          = errors.New("source and target cannot be the same topic")
)

// ValidateForCreate validates a link for creation.
// Returns an error if any required field is missing or invalid.
func (l *Link) ValidateForCreate() error {
	if l.SourceID == "" {
		return ErrEmptySourceID
	}
	if l.TargetID == "" {
		return ErrEmptyTargetID
	}
	if l.RelationType == "" {
		return ErrEmptyRelationType
	}
	if l.SourceID == l.TargetID {
		return ErrSelfLink
	}
	return nil
}

// CompositeKey derives the stable string key for an edge identity tuple.
// Two links with the same ordered triple always produce the same key, which
// is how resources attach to the correct edge among parallel edges.
func CompositeKey(sourceID, targetID, relationType string) string {
	return sourceID + CompositeKeyDelimiter + targetID + CompositeKeyDelimiter + relationType
}

// Key returns the composite key for this link.
func (l *Link) Key() string {
	return CompositeKey(l.SourceID, l.TargetID, l.RelationType)
}

// Identity returns the unique identity tuple for this link.
func (l *Link) Identity() LinkKey {
	return LinkKey{
		SourceID:     l.SourceID,
		TargetID:     l.TargetID,
		RelationType: l.RelationType,
	}
}

// LinkKey represents the unique identity of a link.
type LinkKey struct {
	SourceID     string
	TargetID     string
	RelationType string
}

// OrphanedLinkInfo contains information about a link with missing endpoints.
type OrphanedLinkInfo struct {
	SourceID     string `json:"source"`
	TargetID     string `json:"target"`
	RelationType string `json:"type"`
	Reason       string `json:"reason"` // "missing_source", "missing_target", or "missing_both"
}

// DetectOrphanedLinks finds links that reference topics not in the valid ID set.
// Returns orphaned links with their reasons and the list of valid links.
func DetectOrphanedLinks(links []Link, validIDs map[string]bool) (orphaned []OrphanedLinkInfo, valid []Link) {
	for _, l := range links {
		sourceOK := validIDs[l.SourceID]
		targetOK := validIDs[l.TargetID]

		if !sourceOK || !targetOK {
			info := OrphanedLinkInfo{
				SourceID:     l.SourceID,
				TargetID:     l.TargetID,
				RelationType: l.RelationType,
			}
			if !sourceOK && !targetOK {
				info.Reason = "missing_both"
			} else if !sourceOK {
				info.Reason = "missing_source"
			} else {
				info.Reason = "missing_target"
			}
			orphaned = append(orphaned, info)
		} else {
			valid = append(valid, l)
		}
	}
	return orphaned, valid
}

// FindDuplicateLinks finds links that appear more than once in the list.
// Returns a map of LinkKey to count for keys that appear more than once.
func FindDuplicateLinks(links []Link) map[LinkKey]int {
	counts := make(map[LinkKey]int)
	for _, l := range links {
		counts[l.Identity()]++
	}

	duplicates := make(map[LinkKey]int)
	for key, count := range counts {
		if count > 1 {
			duplicates[key] = count
		}
	}
	return duplicates
}

// PairConflict describes two links over the same unordered topic pair that
// disagree on relation type. These are surfaced for review rather than
// silently resolved.
type PairConflict struct {
	A Link `json:"a"`
	B Link `json:"b"`
}

// FindPairConflicts finds pairs of links connecting the same two topics
// (in either direction) with differing relation types. Every distinct pair
// of relation types over a topic pair is reported once, so three types over
// one pair yield three conflicts.
func FindPairConflicts(links []Link) []PairConflict {
	type pair struct{ lo, hi string }
	seen := make(map[pair][]Link) // first link per distinct relation type
	var conflicts []PairConflict

	for _, l := range links {
		p := pair{l.SourceID, l.TargetID}
		if strings.Compare(p.lo, p.hi) > 0 {
			p.lo, p.hi = p.hi, p.lo
		}

		known := false
		for _, prev := range seen[p] {
			if prev.RelationType == l.RelationType {
				known = true
				break
			}
		}
		if known {
			continue
		}
		for _, prev := range seen[p] {
			conflicts = append(conflicts, PairConflict{A: prev, B: l})
		}
		seen[p] = append(seen[p], l)
	}
	return conflicts
}
