package store

import (
	"database/sql"
	"fmt"
)

// ─── Agents ──────────────────────────────────────────────────────────────────

// Agent is a named owner of memories, preferences and handoffs.
type Agent struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

// EnsureAgent returns the ID of the named agent, creating it if needed.
func (s *Store) EnsureAgent(name, description string) (int64, error) {
	if name == "" {
		return 0, fmt.Errorf("store: agent name is required")
	}
	_, err := s.db.Exec(
		`INSERT OR IGNORE INTO agents (name, description) VALUES (?, ?)`,
		name, nullableString(description),
	)
	if err != nil {
		return 0, err
	}
	var id int64
	err = s.db.QueryRow(`SELECT id FROM agents WHERE name = ?`, name).Scan(&id)
	return id, notFound(err)
}

// GetAgent looks up an agent by name.
func (s *Store) GetAgent(name string) (*Agent, error) {
	row := s.db.QueryRow(
		`SELECT id, name, description, created_at FROM agents WHERE name = ?`, name,
	)
	var a Agent
	if err := row.Scan(&a.ID, &a.Name, &a.Description, &a.CreatedAt); err != nil {
		return nil, notFound(err)
	}
	return &a, nil
}

// ListAgents returns all agents ordered by ID.
func (s *Store) ListAgents() ([]Agent, error) {
	rows, err := s.db.Query(`SELECT id, name, description, created_at FROM agents ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var results []Agent
	for rows.Next() {
		var a Agent
		if err := rows.Scan(&a.ID, &a.Name, &a.Description, &a.CreatedAt); err != nil {
			return nil, err
		}
		results = append(results, a)
	}
	return results, rows.Err()
}

// agentID resolves an agent name to its row ID.
func (s *Store) agentID(name string) (int64, error) {
	var id int64
	err := s.db.QueryRow(`SELECT id FROM agents WHERE name = ?`, name).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("store: agent %q: %w", name, ErrNotFound)
	}
	return id, err
}

// ─── Memories ────────────────────────────────────────────────────────────────

// Memory is a titled note owned by an agent.
type Memory struct {
	ID          int64   `json:"id"`
	AgentID     int64   `json:"agent_id"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// MemorySearchResult embeds a Memory with an FTS5 rank score.
type MemorySearchResult struct {
	Memory
	Rank float64 `json:"rank"`
}

// UpdateMemoryParams holds partial update fields for a memory.
type UpdateMemoryParams struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}

// CreateMemory creates a memory for the named agent.
func (s *Store) CreateMemory(agentName, title, description string) (int64, error) {
	aid, err := s.agentID(agentName)
	if err != nil {
		return 0, err
	}
	res, err := s.db.Exec(
		`INSERT INTO memories (agent_id, title, description) VALUES (?, ?, ?)`,
		aid, title, nullableString(description),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListMemories returns all memories for the named agent, ordered by ID.
func (s *Store) ListMemories(agentName string) ([]Memory, error) {
	aid, err := s.agentID(agentName)
	if err != nil {
		return nil, err
	}
	return s.queryMemories(
		`SELECT id, agent_id, title, description, created_at, updated_at
		 FROM memories WHERE agent_id = ? ORDER BY id`, aid,
	)
}

// GetMemory retrieves a single memory owned by the named agent.
func (s *Store) GetMemory(agentName string, id int64) (*Memory, error) {
	aid, err := s.agentID(agentName)
	if err != nil {
		return nil, err
	}
	row := s.db.QueryRow(
		`SELECT id, agent_id, title, description, created_at, updated_at
		 FROM memories WHERE agent_id = ? AND id = ?`, aid, id,
	)
	var m Memory
	if err := row.Scan(&m.ID, &m.AgentID, &m.Title, &m.Description, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, notFound(err)
	}
	return &m, nil
}

// UpdateMemory partially updates a memory and returns the new row.
func (s *Store) UpdateMemory(agentName string, id int64, p UpdateMemoryParams) (*Memory, error) {
	m, err := s.GetMemory(agentName, id)
	if err != nil {
		return nil, err
	}

	title := m.Title
	description := derefString(m.Description)
	if p.Title != nil {
		title = *p.Title
	}
	if p.Description != nil {
		description = *p.Description
	}

	if _, err := s.db.Exec(
		`UPDATE memories SET title = ?, description = ?, updated_at = datetime('now') WHERE id = ?`,
		title, nullableString(description), id,
	); err != nil {
		return nil, err
	}
	return s.GetMemory(agentName, id)
}

// DeleteMemory removes a memory owned by the named agent.
func (s *Store) DeleteMemory(agentName string, id int64) error {
	aid, err := s.agentID(agentName)
	if err != nil {
		return err
	}
	res, err := s.db.Exec(`DELETE FROM memories WHERE agent_id = ? AND id = ?`, aid, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// SearchMemories runs an FTS5 search over the agent's memories.
// An empty query falls back to the most recently updated memories.
func (s *Store) SearchMemories(agentName, query string, limit int) ([]MemorySearchResult, error) {
	aid, err := s.agentID(agentName)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 20
	}

	if query == "" {
		memories, err := s.queryMemories(
			`SELECT id, agent_id, title, description, created_at, updated_at
			 FROM memories WHERE agent_id = ? ORDER BY updated_at DESC, id DESC LIMIT ?`,
			aid, limit,
		)
		if err != nil {
			return nil, err
		}
		results := make([]MemorySearchResult, len(memories))
		for i, m := range memories {
			results[i] = MemorySearchResult{Memory: m}
		}
		return results, nil
	}

	rows, err := s.db.Query(
		`SELECT m.id, m.agent_id, m.title, m.description, m.created_at, m.updated_at, f.rank
		 FROM memories_fts f
		 JOIN memories m ON m.id = f.rowid
		 WHERE memories_fts MATCH ? AND m.agent_id = ?
		 ORDER BY f.rank LIMIT ?`,
		sanitizeFTS(query), aid, limit,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var results []MemorySearchResult
	for rows.Next() {
		var r MemorySearchResult
		if err := rows.Scan(&r.ID, &r.AgentID, &r.Title, &r.Description, &r.CreatedAt, &r.UpdatedAt, &r.Rank); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

func (s *Store) queryMemories(query string, args ...any) ([]Memory, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var results []Memory
	for rows.Next() {
		var m Memory
		if err := rows.Scan(&m.ID, &m.AgentID, &m.Title, &m.Description, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		results = append(results, m)
	}
	return results, rows.Err()
}
