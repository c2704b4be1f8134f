// Package store implements the persistent context store for LucyAPI.
//
// It uses SQLite with FTS5 full-text search to hold agent memories,
// preferences, projects, wikis, sessions and handoffs.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("store: not found")

// Store is the persistent context store backed by SQLite + FTS5.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the store under dataDir, enables WAL mode,
// and runs migrations.
func New(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("store: create data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, "lucy.db")
	db, err := openDB("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return nil, fmt.Errorf("store: pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("store: migration: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// ─── Migrations ──────────────────────────────────────────────────────────────

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS agents (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			name        TEXT    NOT NULL UNIQUE,
			description TEXT,
			created_at  TEXT    NOT NULL DEFAULT (datetime('now'))
		);

		CREATE TABLE IF NOT EXISTS memories (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			agent_id    INTEGER NOT NULL,
			title       TEXT    NOT NULL,
			description TEXT,
			created_at  TEXT    NOT NULL DEFAULT (datetime('now')),
			updated_at  TEXT    NOT NULL DEFAULT (datetime('now')),
			FOREIGN KEY (agent_id) REFERENCES agents(id)
		);

		CREATE INDEX IF NOT EXISTS idx_memories_agent ON memories(agent_id);

		CREATE VIRTUAL TABLE IF NOT EXISTS memories_fts USING fts5(
			title,
			description,
			content='memories',
			content_rowid='id'
		);

		CREATE TABLE IF NOT EXISTS preferences (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			agent_id    INTEGER NOT NULL,
			parent_id   INTEGER NOT NULL DEFAULT 0,
			title       TEXT    NOT NULL,
			description TEXT,
			created_at  TEXT    NOT NULL DEFAULT (datetime('now')),
			updated_at  TEXT    NOT NULL DEFAULT (datetime('now')),
			FOREIGN KEY (agent_id) REFERENCES agents(id)
		);

		CREATE INDEX IF NOT EXISTS idx_prefs_agent  ON preferences(agent_id);
		CREATE INDEX IF NOT EXISTS idx_prefs_parent ON preferences(agent_id, parent_id);

		CREATE TABLE IF NOT EXISTS always_load (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			agent_id    INTEGER NOT NULL,
			parent_id   INTEGER NOT NULL DEFAULT 0,
			title       TEXT    NOT NULL,
			description TEXT,
			created_at  TEXT    NOT NULL DEFAULT (datetime('now')),
			updated_at  TEXT    NOT NULL DEFAULT (datetime('now')),
			FOREIGN KEY (agent_id) REFERENCES agents(id)
		);

		CREATE INDEX IF NOT EXISTS idx_always_load ON always_load(agent_id, parent_id);

		CREATE TABLE IF NOT EXISTS hints (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			parent_id   INTEGER NOT NULL DEFAULT 0,
			title       TEXT    NOT NULL,
			description TEXT,
			created_at  TEXT    NOT NULL DEFAULT (datetime('now')),
			updated_at  TEXT    NOT NULL DEFAULT (datetime('now'))
		);

		CREATE INDEX IF NOT EXISTS idx_hints_parent ON hints(parent_id);

		CREATE TABLE IF NOT EXISTS projects (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			title       TEXT    NOT NULL,
			description TEXT,
			created_at  TEXT    NOT NULL DEFAULT (datetime('now')),
			updated_at  TEXT    NOT NULL DEFAULT (datetime('now'))
		);

		CREATE TABLE IF NOT EXISTS project_sections (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			project_id  INTEGER NOT NULL,
			parent_id   INTEGER NOT NULL DEFAULT 0,
			title       TEXT    NOT NULL,
			description TEXT,
			position    INTEGER NOT NULL DEFAULT 0,
			created_at  TEXT    NOT NULL DEFAULT (datetime('now')),
			updated_at  TEXT    NOT NULL DEFAULT (datetime('now')),
			FOREIGN KEY (project_id) REFERENCES projects(id)
		);

		CREATE INDEX IF NOT EXISTS idx_sections_project ON project_sections(project_id, parent_id);

		CREATE TABLE IF NOT EXISTS wikis (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			title       TEXT    NOT NULL,
			description TEXT,
			created_at  TEXT    NOT NULL DEFAULT (datetime('now')),
			updated_at  TEXT    NOT NULL DEFAULT (datetime('now'))
		);

		CREATE TABLE IF NOT EXISTS wiki_sections (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			wiki_id     INTEGER NOT NULL,
			parent_id   INTEGER NOT NULL DEFAULT 0,
			title       TEXT    NOT NULL,
			description TEXT,
			created_at  TEXT    NOT NULL DEFAULT (datetime('now')),
			updated_at  TEXT    NOT NULL DEFAULT (datetime('now')),
			FOREIGN KEY (wiki_id) REFERENCES wikis(id)
		);

		CREATE INDEX IF NOT EXISTS idx_wiki_sections ON wiki_sections(wiki_id, parent_id);

		CREATE TABLE IF NOT EXISTS wiki_section_tags (
			section_id INTEGER NOT NULL,
			tag        TEXT    NOT NULL,
			PRIMARY KEY (section_id, tag),
			FOREIGN KEY (section_id) REFERENCES wiki_sections(id) ON DELETE CASCADE
		);

		CREATE INDEX IF NOT EXISTS idx_section_tags_tag ON wiki_section_tags(tag);

		CREATE VIRTUAL TABLE IF NOT EXISTS wiki_sections_fts USING fts5(
			title,
			description,
			content='wiki_sections',
			content_rowid='id'
		);

		CREATE TABLE IF NOT EXISTS sessions (
			id         TEXT PRIMARY KEY,
			agent_id   INTEGER NOT NULL,
			project    TEXT,
			started_at TEXT NOT NULL DEFAULT (datetime('now')),
			FOREIGN KEY (agent_id) REFERENCES agents(id)
		);

		CREATE INDEX IF NOT EXISTS idx_sessions_agent ON sessions(agent_id, started_at DESC);

		CREATE TABLE IF NOT EXISTS handoffs (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			agent_id     INTEGER NOT NULL,
			title        TEXT    NOT NULL,
			prompt       TEXT    NOT NULL,
			created_by   TEXT,
			created_at   TEXT    NOT NULL DEFAULT (datetime('now')),
			picked_up_at TEXT,
			FOREIGN KEY (agent_id) REFERENCES agents(id)
		);

		CREATE INDEX IF NOT EXISTS idx_handoffs_pending ON handoffs(agent_id, picked_up_at);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return err
	}

	// FTS triggers (idempotent)
	var name string
	err := s.db.QueryRow(
		"SELECT name FROM sqlite_master WHERE type='trigger' AND name='mem_fts_insert'",
	).Scan(&name)

	if err == sql.ErrNoRows {
		triggers := `
			CREATE TRIGGER mem_fts_insert AFTER INSERT ON memories BEGIN
				INSERT INTO memories_fts(rowid, title, description)
				VALUES (new.id, new.title, new.description);
			END;

			CREATE TRIGGER mem_fts_delete AFTER DELETE ON memories BEGIN
				INSERT INTO memories_fts(memories_fts, rowid, title, description)
				VALUES ('delete', old.id, old.title, old.description);
			END;

			CREATE TRIGGER mem_fts_update AFTER UPDATE ON memories BEGIN
				INSERT INTO memories_fts(memories_fts, rowid, title, description)
				VALUES ('delete', old.id, old.title, old.description);
				INSERT INTO memories_fts(rowid, title, description)
				VALUES (new.id, new.title, new.description);
			END;
		`
		if _, err := s.db.Exec(triggers); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	var wikiTrigger string
	err = s.db.QueryRow(
		"SELECT name FROM sqlite_master WHERE type='trigger' AND name='wsec_fts_insert'",
	).Scan(&wikiTrigger)

	if err == sql.ErrNoRows {
		wikiTriggers := `
			CREATE TRIGGER wsec_fts_insert AFTER INSERT ON wiki_sections BEGIN
				INSERT INTO wiki_sections_fts(rowid, title, description)
				VALUES (new.id, new.title, new.description);
			END;

			CREATE TRIGGER wsec_fts_delete AFTER DELETE ON wiki_sections BEGIN
				INSERT INTO wiki_sections_fts(wiki_sections_fts, rowid, title, description)
				VALUES ('delete', old.id, old.title, old.description);
			END;

			CREATE TRIGGER wsec_fts_update AFTER UPDATE ON wiki_sections BEGIN
				INSERT INTO wiki_sections_fts(wiki_sections_fts, rowid, title, description)
				VALUES ('delete', old.id, old.title, old.description);
				INSERT INTO wiki_sections_fts(rowid, title, description)
				VALUES (new.id, new.title, new.description);
			END;
		`
		if _, err := s.db.Exec(wikiTriggers); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	return nil
}

// ─── Status ──────────────────────────────────────────────────────────────────

// Status holds aggregate store counts for the status resource.
type Status struct {
	Agents          int `json:"agents"`
	Memories        int `json:"memories"`
	AlwaysLoad      int `json:"always_load"`
	Preferences     int `json:"preferences"`
	Hints           int `json:"hints"`
	Projects        int `json:"projects"`
	ProjectSections int `json:"project_sections"`
	Wikis           int `json:"wikis"`
	WikiSections    int `json:"wiki_sections"`
	Sessions        int `json:"sessions"`
	PendingHandoffs int `json:"pending_handoffs"`
}

// GetStatus returns row counts for every entity.
func (s *Store) GetStatus() (*Status, error) {
	var st Status
	counts := []struct {
		query string
		dest  *int
	}{
		{"SELECT COUNT(*) FROM agents", &st.Agents},
		{"SELECT COUNT(*) FROM memories", &st.Memories},
		{"SELECT COUNT(*) FROM always_load", &st.AlwaysLoad},
		{"SELECT COUNT(*) FROM preferences", &st.Preferences},
		{"SELECT COUNT(*) FROM hints", &st.Hints},
		{"SELECT COUNT(*) FROM projects", &st.Projects},
		{"SELECT COUNT(*) FROM project_sections", &st.ProjectSections},
		{"SELECT COUNT(*) FROM wikis", &st.Wikis},
		{"SELECT COUNT(*) FROM wiki_sections", &st.WikiSections},
		{"SELECT COUNT(*) FROM sessions", &st.Sessions},
		{"SELECT COUNT(*) FROM handoffs WHERE picked_up_at IS NULL", &st.PendingHandoffs},
	}
	for _, c := range counts {
		if err := s.db.QueryRow(c.query).Scan(c.dest); err != nil {
			return nil, err
		}
	}
	return &st, nil
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

// notFound converts sql.ErrNoRows into ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// sanitizeFTS wraps each word in quotes for safe FTS5 queries.
// "doc layout" → `"doc" "layout"`
func sanitizeFTS(query string) string {
	words := strings.Fields(query)
	for i, w := range words {
		w = strings.Trim(w, `"`)
		words[i] = `"` + w + `"`
	}
	return strings.Join(words, " ")
}
