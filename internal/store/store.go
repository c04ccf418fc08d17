// Package store persists stories and their canvases in SQLite.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dgallion1/canvasdoc/internal/canvas"
	_ "modernc.org/sqlite"
)

// ErrStoryNotFound is returned when a story id/user pair has no row.
var ErrStoryNotFound = errors.New("story not found")

// Store wraps the SQLite handle.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS stories (
	id      TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	title   TEXT NOT NULL,
	bio     TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS canvas_data (
	story_id    TEXT NOT NULL,
	canvas_type TEXT NOT NULL,
	nodes       TEXT,
	connections TEXT,
	PRIMARY KEY (story_id, canvas_type)
);
CREATE INDEX IF NOT EXISTS idx_canvas_data_story ON canvas_data(story_id);
`

// Open opens (creating if needed) a SQLite store at path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// CreateStory inserts or replaces a story row.
func (s *Store) CreateStory(ctx context.Context, st canvas.Story, userID string) error {
	if strings.TrimSpace(st.ID) == "" {
		return fmt.Errorf("story id is required")
	}
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("user id is required")
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO stories (id, user_id, title, bio) VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET title = excluded.title, bio = excluded.bio`,
		st.ID, userID, st.Title, st.Bio,
	)
	if err != nil {
		return fmt.Errorf("insert story: %w", err)
	}
	return nil
}

// GetStory fetches one story owned by userID. Returns ErrStoryNotFound
// when no row matches.
func (s *Store) GetStory(ctx context.Context, id, userID string) (canvas.Story, error) {
	var st canvas.Story
	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, bio FROM stories WHERE id = ? AND user_id = ?`,
		id, userID,
	).Scan(&st.ID, &st.Title, &st.Bio)
	if errors.Is(err, sql.ErrNoRows) {
		return canvas.Story{}, ErrStoryNotFound
	}
	if err != nil {
		return canvas.Story{}, fmt.Errorf("query story: %w", err)
	}
	return st, nil
}

// SaveCanvas upserts one canvas row for a story. Nodes and connections
// are stored as JSON.
func (s *Store) SaveCanvas(ctx context.Context, storyID string, c canvas.Canvas) error {
	if strings.TrimSpace(storyID) == "" {
		return fmt.Errorf("story id is required")
	}
	if strings.TrimSpace(c.ID) == "" {
		return fmt.Errorf("canvas id is required")
	}
	nodes, err := json.Marshal(c.Nodes)
	if err != nil {
		return fmt.Errorf("marshal nodes: %w", err)
	}
	connections, err := json.Marshal(c.Connections)
	if err != nil {
		return fmt.Errorf("marshal connections: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO canvas_data (story_id, canvas_type, nodes, connections) VALUES (?, ?, ?, ?)
		 ON CONFLICT(story_id, canvas_type) DO UPDATE SET nodes = excluded.nodes, connections = excluded.connections`,
		storyID, c.ID, string(nodes), string(connections),
	)
	if err != nil {
		return fmt.Errorf("insert canvas: %w", err)
	}
	return nil
}

// FetchAllCanvases bulk-loads every canvas belonging to a story into a
// map keyed by canvas id. One query regardless of hierarchy depth; the
// traversal pipeline assumes full in-memory availability and issues no
// further fetches. Missing nodes/connections normalize to empty slices.
func (s *Store) FetchAllCanvases(ctx context.Context, storyID string) (map[string]canvas.Canvas, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT canvas_type, nodes, connections FROM canvas_data WHERE story_id = ?`,
		storyID,
	)
	if err != nil {
		return nil, fmt.Errorf("query canvases: %w", err)
	}
	defer rows.Close()

	out := make(map[string]canvas.Canvas)
	for rows.Next() {
		var id string
		var nodes, connections sql.NullString
		if err := rows.Scan(&id, &nodes, &connections); err != nil {
			return nil, fmt.Errorf("scan canvas row: %w", err)
		}
		c := canvas.Canvas{ID: id, Nodes: []canvas.Node{}, Connections: []canvas.Connection{}}
		if nodes.Valid && nodes.String != "" {
			if err := json.Unmarshal([]byte(nodes.String), &c.Nodes); err != nil {
				return nil, fmt.Errorf("decode nodes for canvas %s: %w", id, err)
			}
		}
		if connections.Valid && connections.String != "" {
			if err := json.Unmarshal([]byte(connections.String), &c.Connections); err != nil {
				return nil, fmt.Errorf("decode connections for canvas %s: %w", id, err)
			}
		}
		if c.Nodes == nil {
			c.Nodes = []canvas.Node{}
		}
		if c.Connections == nil {
			c.Connections = []canvas.Connection{}
		}
		out[id] = c
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate canvases: %w", err)
	}
	return out, nil
}
