// Package storage provides an ephemeral SQLite query cache over the built
// graph. The flat files stay the source of truth; the cache is rebuilt from
// them on demand and only serves fast lookups and search.
package storage

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/thorne/topograph/internal/graph"
	"github.com/thorne/topograph/internal/identifier"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection.
type DB struct {
	db *sql.DB
}

// OpenDB opens or creates a SQLite database at the given path.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// createSchema creates the database schema if it doesn't exist.
func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS nodes (
			id TEXT PRIMARY KEY,
			title TEXT,
			description TEXT,
			tier INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS edges (
			composite_key TEXT PRIMARY KEY,
			source_id TEXT NOT NULL,
			target_id TEXT NOT NULL,
			relation_type TEXT NOT NULL,
			category TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_edges_source ON edges(source_id);
		CREATE INDEX IF NOT EXISTS idx_edges_target ON edges(target_id);

		CREATE TABLE IF NOT EXISTS urls (
			identifier TEXT NOT NULL,
			url TEXT NOT NULL,
			position INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_urls_identifier ON urls(identifier);

		-- Full-text search over node display fields
		CREATE VIRTUAL TABLE IF NOT EXISTS nodes_fts USING fts5(
			id,
			title,
			description
		);
	`

	_, err := db.Exec(schema)
	return err
}

// RebuildFromGraph clears the cache and repopulates it from g.
// Returns the number of nodes inserted.
func (d *DB) RebuildFromGraph(g *graph.Graph) (int, error) {
	tx, err := d.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning rebuild: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"nodes", "edges", "urls", "nodes_fts"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return 0, fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	nodeStmt, err := tx.Prepare(`INSERT INTO nodes (id, title, description, tier) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing node insert: %w", err)
	}
	defer nodeStmt.Close()

	ftsStmt, err := tx.Prepare(`INSERT INTO nodes_fts (id, title, description) VALUES (?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing fts insert: %w", err)
	}
	defer ftsStmt.Close()

	edgeStmt, err := tx.Prepare(`
		INSERT INTO edges (composite_key, source_id, target_id, relation_type, category)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing edge insert: %w", err)
	}
	defer edgeStmt.Close()

	urlStmt, err := tx.Prepare(`INSERT INTO urls (identifier, url, position) VALUES (?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing url insert: %w", err)
	}
	defer urlStmt.Close()

	for _, n := range g.Nodes {
		if _, err := nodeStmt.Exec(n.ID, n.Title, n.Description, identifier.Tier(n.ID)); err != nil {
			return 0, fmt.Errorf("inserting node %s: %w", n.ID, err)
		}
		if _, err := ftsStmt.Exec(n.ID, n.Title, n.Description); err != nil {
			return 0, fmt.Errorf("inserting fts for %s: %w", n.ID, err)
		}
		for i, u := range n.URLs {
			if _, err := urlStmt.Exec(n.ID, u, i); err != nil {
				return 0, fmt.Errorf("inserting url for %s: %w", n.ID, err)
			}
		}
	}

	for _, e := range g.Edges {
		key := e.Key()
		if _, err := edgeStmt.Exec(key, e.SourceID, e.TargetID, e.RelationType, e.Category); err != nil {
			return 0, fmt.Errorf("inserting edge %s: %w", key, err)
		}
		for i, u := range e.URLs {
			if _, err := urlStmt.Exec(key, u, i); err != nil {
				return 0, fmt.Errorf("inserting url for %s: %w", key, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing rebuild: %w", err)
	}
	return len(g.Nodes), nil
}

// NodeRow is a cached node with its attached URLs.
type NodeRow struct {
	ID          string   `json:"id"`
	Title       string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Tier        int      `json:"tier"`
	URLs        []string `json:"urls,omitempty"`
}

// EdgeRow is a cached edge.
type EdgeRow struct {
	CompositeKey string `json:"composite_key"`
	SourceID     string `json:"source"`
	TargetID     string `json:"target"`
	RelationType string `json:"type"`
	Category     string `json:"category"`
}

// GetNode retrieves a node and its URLs by identifier.
// Returns nil with no error when the node does not exist.
func (d *DB) GetNode(id string) (*NodeRow, error) {
	row := d.db.QueryRow(`SELECT id, title, description, tier FROM nodes WHERE id = ?`, id)

	var n NodeRow
	if err := row.Scan(&n.ID, &n.Title, &n.Description, &n.Tier); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scanning node: %w", err)
	}

	urls, err := d.URLsFor(id)
	if err != nil {
		return nil, err
	}
	n.URLs = urls
	return &n, nil
}

// URLsFor returns the cached URLs for an identifier in stored order.
func (d *DB) URLsFor(identifier string) ([]string, error) {
	rows, err := d.db.Query(`SELECT url FROM urls WHERE identifier = ? ORDER BY position`, identifier)
	if err != nil {
		return nil, fmt.Errorf("querying urls: %w", err)
	}
	defer rows.Close()

	var urls []string
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, fmt.Errorf("scanning url: %w", err)
		}
		urls = append(urls, u)
	}
	return urls, rows.Err()
}

// EdgesFor returns all edges touching the given node, source or target side.
func (d *DB) EdgesFor(nodeID string) ([]EdgeRow, error) {
	rows, err := d.db.Query(`
		SELECT composite_key, source_id, target_id, relation_type, category
		FROM edges
		WHERE source_id = ? OR target_id = ?
		ORDER BY composite_key`, nodeID, nodeID)
	if err != nil {
		return nil, fmt.Errorf("querying edges: %w", err)
	}
	defer rows.Close()

	var edges []EdgeRow
	for rows.Next() {
		var e EdgeRow
		if err := rows.Scan(&e.CompositeKey, &e.SourceID, &e.TargetID, &e.RelationType, &e.Category); err != nil {
			return nil, fmt.Errorf("scanning edge: %w", err)
		}
		edges = append(edges, e)
	}
	return edges, rows.Err()
}

// Search performs a full-text search over node titles and descriptions.
func (d *DB) Search(query string, limit int) ([]NodeRow, error) {
	ftsQuery := prepareFTSQuery(query)

	rows, err := d.db.Query(`
		SELECT id, title, description, tier
		FROM nodes
		WHERE id IN (SELECT id FROM nodes_fts WHERE nodes_fts MATCH ?)
		LIMIT ?`, ftsQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("searching: %w", err)
	}
	defer rows.Close()

	var results []NodeRow
	for rows.Next() {
		var n NodeRow
		if err := rows.Scan(&n.ID, &n.Title, &n.Description, &n.Tier); err != nil {
			return nil, fmt.Errorf("scanning result: %w", err)
		}
		results = append(results, n)
	}
	return results, rows.Err()
}

// prepareFTSQuery quotes queries containing FTS5 operator characters so
// user input cannot break the MATCH expression.
func prepareFTSQuery(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}

	if strings.ContainsAny(query, "\"*+-:(){}[]^~.|") {
		query = strings.ReplaceAll(query, "\"", "\"\"")
		return "\"" + query + "\""
	}

	return query
}
