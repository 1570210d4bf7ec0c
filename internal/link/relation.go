package link

// Relation is the closed set of known relation types plus an explicit
// fallback arm. Input labels are free-form strings; unknown labels classify
// as RelationOther and pick up default styling downstream.
type Relation int

const (
	RelationOther Relation = iota
	RelationDependsOn
	RelationExtends
	RelationSemanticallySimilar
	RelationSubTopic
)

// Canonical labels for known relation types as they appear in input files.
const (
	LabelDependsOn           = "depends on"
	LabelExtends             = "extends"
	LabelSemanticallySimilar = "semantically_similar"
	LabelSubTopic            = "sub topic"
)

// ClassifyRelation maps a free-form relation type label to a Relation.
func ClassifyRelation(label string) Relation {
	switch label {
	case LabelDependsOn:
		return RelationDependsOn
	case LabelExtends:
		return RelationExtends
	case LabelSemanticallySimilar:
		return RelationSemanticallySimilar
	case LabelSubTopic:
		return RelationSubTopic
	default:
		return RelationOther
	}
}

// String returns the canonical label, or "other" for the fallback arm.
func (r Relation) String() string {
	switch r {
	case RelationDependsOn:
		return LabelDependsOn
	case RelationExtends:
		return LabelExtends
	case RelationSemanticallySimilar:
		return LabelSemanticallySimilar
	case RelationSubTopic:
		return LabelSubTopic
	default:
		return "other"
	}
}
