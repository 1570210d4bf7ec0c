package link

import "testing"

func TestLink_ValidateForCreate(t *testing.T) {
	tests := []struct {
		name    string
		link    Link
		wantErr error
	}{
		{
			name:    "valid link",
			link:    Link{SourceID: "1", TargetID: "1.1", RelationType: "depends on"},
			wantErr: nil,
		},
		{
			name:    "empty source",
			link:    Link{SourceID: "", TargetID: "1.1", RelationType: "depends on"},
			wantErr: ErrEmptySourceID,
		},
		{
			name:    "empty target",
			link:    Link{SourceID: "1", TargetID: "", RelationType: "depends on"},
			wantErr: ErrEmptyTargetID,
		},
		{
			name:    "empty relation type",
			link:    Link{SourceID: "1", TargetID: "1.1", RelationType: ""},
			wantErr: ErrEmptyRelationType,
		},
		{
			name:    "self link",
			link:    Link{SourceID: "1", TargetID: "1", RelationType: "extends"},
			wantErr: ErrSelfLink,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.link.ValidateForCreate(); err != tt.wantErr {
				t.Errorf("ValidateForCreate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCompositeKey(t *testing.T) {
	// Stable across repeated calls.
	a := CompositeKey("1", "1.1", "sub topic")
	b := CompositeKey("1", "1.1", "sub topic")
	if a != b {
		t.Errorf("composite key not stable: %q vs %q", a, b)
	}

	// Distinct per relation type between the same pair.
	c := CompositeKey("1", "1.1", "depends on")
	if a == c {
		t.Errorf("keys for different relation types must differ, both %q", a)
	}

	if want := "1|1.1|sub topic"; a != want {
		t.Errorf("CompositeKey = %q, want %q", a, want)
	}

	l := Link{SourceID: "1", TargetID: "1.1", RelationType: "sub topic"}
	if l.Key() != a {
		t.Errorf("Link.Key() = %q, want %q", l.Key(), a)
	}
}

func TestDetectOrphanedLinks(t *testing.T) {
	validIDs := map[string]bool{"1": true, "1.1": true}

	tests := []struct {
		name         string
		links        []Link
		wantValid    int
		wantOrphaned int
		wantReason   string
	}{
		{
			name:      "all valid",
			links:     []Link{{SourceID: "1", TargetID: "1.1", RelationType: "depends on"}},
			wantValid: 1,
		},
		{
			name:         "missing source",
			links:        []Link{{SourceID: "9.9", TargetID: "1", RelationType: "depends on"}},
			wantOrphaned: 1,
			wantReason:   "missing_source",
		},
		{
			name:         "missing target",
			links:        []Link{{SourceID: "1", TargetID: "9.9", RelationType: "depends on"}},
			wantOrphaned: 1,
			wantReason:   "missing_target",
		},
		{
			name:         "missing both",
			links:        []Link{{SourceID: "8", TargetID: "9", RelationType: "depends on"}},
			wantOrphaned: 1,
			wantReason:   "missing_both",
		},
		{
			name: "mixed keeps valid",
			links: []Link{
				{SourceID: "9.9", TargetID: "1", RelationType: "depends on"},
				{SourceID: "1", TargetID: "1.1", RelationType: "extends"},
			},
			wantValid:    1,
			wantOrphaned: 1,
			wantReason:   "missing_source",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orphaned, valid := DetectOrphanedLinks(tt.links, validIDs)
			if len(valid) != tt.wantValid {
				t.Errorf("valid = %d, want %d", len(valid), tt.wantValid)
			}
			if len(orphaned) != tt.wantOrphaned {
				t.Fatalf("orphaned = %d, want %d", len(orphaned), tt.wantOrphaned)
			}
			if tt.wantOrphaned > 0 && orphaned[0].Reason != tt.wantReason {
				t.Errorf("reason = %q, want %q", orphaned[0].Reason, tt.wantReason)
			}
		})
	}
}

func TestFindDuplicateLinks(t *testing.T) {
	links := []Link{
		{SourceID: "1", TargetID: "2", RelationType: "depends on"},
		{SourceID: "1", TargetID: "2", RelationType: "depends on"},
		{SourceID: "1", TargetID: "2", RelationType: "extends"},
	}

	dups := FindDuplicateLinks(links)
	if len(dups) != 1 {
		t.Fatalf("duplicates = %d, want 1", len(dups))
	}
	key := LinkKey{SourceID: "1", TargetID: "2", RelationType: "depends on"}
	if dups[key] != 2 {
		t.Errorf("count for %v = %d, want 2", key, dups[key])
	}
}

func TestFindPairConflicts(t *testing.T) {
	links := []Link{
		{SourceID: "1", TargetID: "2", RelationType: "depends on"},
		{SourceID: "2", TargetID: "1", RelationType: "extends"},
		{SourceID: "3", TargetID: "4", RelationType: "extends"},
	}

	conflicts := FindPairConflicts(links)
	if len(conflicts) != 1 {
		t.Fatalf("conflicts = %d, want 1", len(conflicts))
	}
	if conflicts[0].A.RelationType != "depends on" || conflicts[0].B.RelationType != "extends" {
		t.Errorf("unexpected conflict pair: %+v", conflicts[0])
	}
}

func TestFindPairConflicts_ThreeTypesOverOnePair(t *testing.T) {
	links := []Link{
		{SourceID: "1", TargetID: "2", RelationType: "depends on"},
		{SourceID: "1", TargetID: "2", RelationType: "extends"},
		{SourceID: "2", TargetID: "1", RelationType: "semantically_similar"},
		{SourceID: "1", TargetID: "2", RelationType: "extends"}, // repeat, no new conflict
	}

	conflicts := FindPairConflicts(links)
	if len(conflicts) != 3 {
		t.Fatalf("conflicts = %d, want every distinct type pairing: %+v", len(conflicts), conflicts)
	}

	got := make(map[string]bool, len(conflicts))
	for _, c := range conflicts {
		got[c.A.RelationType+"/"+c.B.RelationType] = true
	}
	for _, want := range []string{
		"depends on/extends",
		"depends on/semantically_similar",
		"extends/semantically_similar",
	} {
		if !got[want] {
			t.Errorf("missing conflict %s (got %v)", want, got)
		}
	}
}

func TestClassifyRelation(t *testing.T) {
	tests := []struct {
		label string
		want  Relation
	}{
		{"depends on", RelationDependsOn},
		{"extends", RelationExtends},
		{"semantically_similar", RelationSemanticallySimilar},
		{"sub topic", RelationSubTopic},
		{"frobnicates", RelationOther},
		{"", RelationOther},
	}

	for _, tt := range tests {
		if got := ClassifyRelation(tt.label); got != tt.want {
			t.Errorf("ClassifyRelation(%q) = %v, want %v", tt.label, got, tt.want)
		}
	}
}
