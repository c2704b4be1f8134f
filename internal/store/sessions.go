package store

import (
	"github.com/google/uuid"
)

// Session marks the start of a working session for an agent.
type Session struct {
	ID        string  `json:"session_id"`
	Agent     string  `json:"agent"`
	Project   *string `json:"project,omitempty"`
	StartedAt string  `json:"started_at"`
}

// Handoff is a prompt left for an agent to pick up later.
type Handoff struct {
	ID         int64   `json:"id"`
	Agent      string  `json:"agent"`
	Title      string  `json:"title"`
	Prompt     string  `json:"prompt"`
	CreatedBy  *string `json:"created_by,omitempty"`
	CreatedAt  string  `json:"created_at"`
	PickedUpAt *string `json:"picked_up_at,omitempty"`
}

// ─── Sessions ────────────────────────────────────────────────────────────────

// CreateSession logs a session start for the named agent, creating the
// agent row on first use.
func (s *Store) CreateSession(agentName, project string) (*Session, error) {
	aid, err := s.EnsureAgent(agentName, "")
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	if _, err := s.db.Exec(
		`INSERT INTO sessions (id, agent_id, project) VALUES (?, ?, ?)`,
		id, aid, nullableString(project),
	); err != nil {
		return nil, err
	}

	row := s.db.QueryRow(`SELECT started_at FROM sessions WHERE id = ?`, id)
	sess := Session{ID: id, Agent: agentName, Project: nullableString(project)}
	if err := row.Scan(&sess.StartedAt); err != nil {
		return nil, err
	}
	return &sess, nil
}

// LastSession returns the most recent session for the named agent,
// or nil when the agent has none.
func (s *Store) LastSession(agentName string) (*Session, error) {
	aid, err := s.agentID(agentName)
	if err != nil {
		return nil, err
	}

	row := s.db.QueryRow(
		`SELECT id, project, started_at FROM sessions
		 WHERE agent_id = ? ORDER BY started_at DESC, rowid DESC LIMIT 1`, aid,
	)
	sess := Session{Agent: agentName}
	if err := row.Scan(&sess.ID, &sess.Project, &sess.StartedAt); err != nil {
		if notFound(err) == ErrNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &sess, nil
}

// ─── Handoffs ────────────────────────────────────────────────────────────────

// CreateHandoff leaves a prompt for the named agent.
func (s *Store) CreateHandoff(agentName, title, prompt, createdBy string) (int64, error) {
	aid, err := s.agentID(agentName)
	if err != nil {
		return 0, err
	}
	res, err := s.db.Exec(
		`INSERT INTO handoffs (agent_id, title, prompt, created_by) VALUES (?, ?, ?, ?)`,
		aid, title, prompt, nullableString(createdBy),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListPendingHandoffs returns the agent's handoffs not yet picked up,
// oldest first.
func (s *Store) ListPendingHandoffs(agentName string) ([]Handoff, error) {
	aid, err := s.agentID(agentName)
	if err != nil {
		return nil, err
	}
	rows, err := s.db.Query(
		`SELECT id, title, prompt, created_by, created_at, picked_up_at
		 FROM handoffs WHERE agent_id = ? AND picked_up_at IS NULL
		 ORDER BY created_at, id`, aid,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var results []Handoff
	for rows.Next() {
		h := Handoff{Agent: agentName}
		if err := rows.Scan(&h.ID, &h.Title, &h.Prompt, &h.CreatedBy, &h.CreatedAt, &h.PickedUpAt); err != nil {
			return nil, err
		}
		results = append(results, h)
	}
	return results, rows.Err()
}

// GetHandoff retrieves a handoff regardless of pickup state.
func (s *Store) GetHandoff(agentName string, id int64) (*Handoff, error) {
	aid, err := s.agentID(agentName)
	if err != nil {
		return nil, err
	}
	row := s.db.QueryRow(
		`SELECT id, title, prompt, created_by, created_at, picked_up_at
		 FROM handoffs WHERE agent_id = ? AND id = ?`, aid, id,
	)
	h := Handoff{Agent: agentName}
	if err := row.Scan(&h.ID, &h.Title, &h.Prompt, &h.CreatedBy, &h.CreatedAt, &h.PickedUpAt); err != nil {
		return nil, notFound(err)
	}
	return &h, nil
}

// PickupHandoff marks a pending handoff as picked up.
// Returns ErrNotFound when it does not exist or was already picked up.
func (s *Store) PickupHandoff(agentName string, id int64) (*Handoff, error) {
	aid, err := s.agentID(agentName)
	if err != nil {
		return nil, err
	}
	res, err := s.db.Exec(
		`UPDATE handoffs SET picked_up_at = datetime('now')
		 WHERE agent_id = ? AND id = ? AND picked_up_at IS NULL`, aid, id,
	)
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrNotFound
	}
	return s.GetHandoff(agentName, id)
}

// DeleteHandoff removes a handoff.
func (s *Store) DeleteHandoff(agentName string, id int64) error {
	aid, err := s.agentID(agentName)
	if err != nil {
		return err
	}
	res, err := s.db.Exec(`DELETE FROM handoffs WHERE agent_id = ? AND id = ?`, aid, id)
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
