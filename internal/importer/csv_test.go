package importer

import (
	"reflect"
	"strings"
	"testing"

	"github.com/thorne/topograph/internal/link"
	"github.com/thorne/topograph/internal/topic"
)

func TestParseTopicsCSV(t *testing.T) {
	input := `Index,Topic,Description / Key Concepts
1,Signals,Basics of signals
1.1,Sampling,"Nyquist, aliasing"
,Blank row,skipped
1.2,Filters,
`
	topics, rowErrs, err := ParseTopicsCSV(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}

	want := []topic.Topic{
		{ID: "1", Title: "Signals", Description: "Basics of signals"},
		{ID: "1.1", Title: "Sampling", Description: "Nyquist, aliasing"},
		{ID: "1.2", Title: "Filters"},
	}
	if !reflect.DeepEqual(topics, want) {
		t.Errorf("topics = %+v, want %+v", topics, want)
	}

	if len(rowErrs) != 1 || rowErrs[0].Row != 3 {
		t.Errorf("rowErrs = %v, want one error at row 3", rowErrs)
	}
}

func TestParseTopicsCSV_ColumnOrderIndependent(t *testing.T) {
	input := `Topic,Description / Key Concepts,Index
Signals,Basics,1
`
	topics, _, err := ParseTopicsCSV(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if len(topics) != 1 || topics[0].ID != "1" || topics[0].Title != "Signals" {
		t.Errorf("topics = %+v", topics)
	}
}

func TestParseTopicsCSV_MissingColumn(t *testing.T) {
	input := "Index,Topic\n1,Signals\n"
	_, _, err := ParseTopicsCSV(strings.NewReader(input))
	if err == nil || !strings.Contains(err.Error(), "Description / Key Concepts") {
		t.Errorf("err = %v, want missing-column error", err)
	}
}

func TestParseLinksCSV(t *testing.T) {
	input := `Source Index,Target Index,Relation Type
1,2,depends on
1,,extends
3,3,extends
2,3,semantically_similar
`
	links, rowErrs, err := ParseLinksCSV(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}

	want := []link.Link{
		{SourceID: "1", TargetID: "2", RelationType: "depends on"},
		{SourceID: "2", TargetID: "3", RelationType: "semantically_similar"},
	}
	if !reflect.DeepEqual(links, want) {
		t.Errorf("links = %+v, want %+v", links, want)
	}
	if len(rowErrs) != 2 {
		t.Errorf("rowErrs = %v, want 2 (missing target, self link)", rowErrs)
	}
}

func TestParseURLsCSV(t *testing.T) {
	input := `Identifier,URL
1,"https://a.test/one"
1|1.1|sub topic,https://b.test/two
,https://c.test/skipped
`
	records, rowErrs, err := ParseURLsCSV(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}

	if len(records) != 2 {
		t.Fatalf("records = %+v, want 2", records)
	}
	if records[0].Identifier != "1" || records[0].URL != "https://a.test/one" {
		t.Errorf("records[0] = %+v", records[0])
	}
	if records[1].Identifier != "1|1.1|sub topic" {
		t.Errorf("composite identifier mangled: %+v", records[1])
	}
	if len(rowErrs) != 1 || rowErrs[0].Row != 3 {
		t.Errorf("rowErrs = %v", rowErrs)
	}
}

func TestParseDocument(t *testing.T) {
	input := `{
		"nodes": [
			{"id": "1", "name": "Signals", "description": "Basics"},
			{"id": "1.1", "name": "Sampling"}
		],
		"links": [
			{"source": "1", "target": "1.1", "type": "sub topic"}
		],
		"high_level_topics": [
			{"id": "1", "sub_topics": ["1.1"]}
		]
	}`

	doc, err := ParseDocument(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Nodes) != 2 || doc.Nodes[0].Title != "Signals" {
		t.Errorf("nodes = %+v", doc.Nodes)
	}
	if len(doc.Links) != 1 || doc.Links[0].RelationType != "sub topic" {
		t.Errorf("links = %+v", doc.Links)
	}
	if len(doc.HighLevelTopics) != 1 || doc.HighLevelTopics[0].SubTopics[0] != "1.1" {
		t.Errorf("high_level_topics = %+v", doc.HighLevelTopics)
	}
}

func TestParseDocument_Malformed(t *testing.T) {
	if _, err := ParseDocument(strings.NewReader("{not json")); err == nil {
		t.Error("malformed document accepted")
	}
}
