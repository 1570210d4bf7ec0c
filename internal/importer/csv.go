// Package importer parses the tabular and JSON input forms into domain
// records. Parsing is best-effort: structurally bad rows are reported and
// skipped, never fatal, so one corrupt row cannot sink a whole dataset.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/thorne/topograph/internal/link"
	"github.com/thorne/topograph/internal/resource"
	"github.com/thorne/topograph/internal/topic"
)

// Column headers of the three tabular inputs.
const (
	ColIndex       = "Index"
	ColTopic       = "Topic"
	ColDescription = "Description / Key Concepts"

	ColSourceIndex  = "Source Index"
	ColTargetIndex  = "Target Index"
	ColRelationType = "Relation Type"

	ColIdentifier = "Identifier"
	ColURL        = "URL"
)

// RowError reports a skipped input row.
type RowError struct {
	Row    int // 1-based data row number, excluding the header
	Reason string
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Reason)
}

// readTable reads a headered CSV into string-keyed records. Rows shorter
// than the header are an error for the whole table since that points at a
// malformed file rather than a bad row.
func readTable(r io.Reader, required []string) ([]map[string]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // ragged rows detected per-row below

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	colIndex := make(map[string]int, len(header))
	for i, name := range header {
		colIndex[name] = i
	}
	for _, name := range required {
		if _, ok := colIndex[name]; !ok {
			return nil, fmt.Errorf("missing required column %q", name)
		}
	}

	var records []map[string]string
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading rows: %w", err)
		}
		rec := make(map[string]string, len(required))
		for _, name := range required {
			i := colIndex[name]
			if i < len(row) {
				rec[name] = strings.TrimSpace(row[i])
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

// ParseTopicsCSV parses the topics table. Rows with a blank identifier are
// skipped and reported.
func ParseTopicsCSV(r io.Reader) ([]topic.Topic, []RowError, error) {
	rows, err := readTable(r, []string{ColIndex, ColTopic, ColDescription})
	if err != nil {
		return nil, nil, err
	}

	var topics []topic.Topic
	var rowErrs []RowError
	for i, row := range rows {
		t := topic.Topic{
			ID:          row[ColIndex],
			Title:       row[ColTopic],
			Description: row[ColDescription],
		}
		if err := t.ValidateForCreate(); err != nil {
			rowErrs = append(rowErrs, RowError{Row: i + 1, Reason: err.Error()})
			continue
		}
		topics = append(topics, t)
	}
	return topics, rowErrs, nil
}

// ParseLinksCSV parses the links table. Rows missing an endpoint or relation
// type are skipped and reported.
func ParseLinksCSV(r io.Reader) ([]link.Link, []RowError, error) {
	rows, err := readTable(r, []string{ColSourceIndex, ColTargetIndex, ColRelationType})
	if err != nil {
		return nil, nil, err
	}

	var links []link.Link
	var rowErrs []RowError
	for i, row := range rows {
		l := link.Link{
			SourceID:     row[ColSourceIndex],
			TargetID:     row[ColTargetIndex],
			RelationType: row[ColRelationType],
		}
		if err := l.ValidateForCreate(); err != nil {
			rowErrs = append(rowErrs, RowError{Row: i + 1, Reason: err.Error()})
			continue
		}
		links = append(links, l)
	}
	return links, rowErrs, nil
}

// ParseURLsCSV parses the urls table. Rows with a blank identifier or URL
// are skipped and reported. URL syntax is not checked here: historical files
// may hold entries that predate validation, and dropping them on load would
// lose user data.
func ParseURLsCSV(r io.Reader) ([]resource.Record, []RowError, error) {
	rows, err := readTable(r, []string{ColIdentifier, ColURL})
	if err != nil {
		return nil, nil, err
	}

	var records []resource.Record
	var rowErrs []RowError
	for i, row := range rows {
		id, u := row[ColIdentifier], row[ColURL]
		if id == "" || u == "" {
			rowErrs = append(rowErrs, RowError{Row: i + 1, Reason: "identifier and url are both required"})
			continue
		}
		records = append(records, resource.Record{Identifier: id, URL: u})
	}
	return records, rowErrs, nil
}
