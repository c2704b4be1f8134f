package store

// Preference is one node in an agent's preference tree.
// Root nodes have ParentID 0.
type Preference struct {
	ID          int64   `json:"id"`
	AgentID     int64   `json:"agent_id"`
	ParentID    int64   `json:"parent_id"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	UpdatedAt   string  `json:"updated_at"`
}

// PreferenceBranch is a preference node with its immediate children.
type PreferenceBranch struct {
	Node     Preference   `json:"node"`
	Children []Preference `json:"children"`
}

// UpdatePreferenceParams holds partial update fields for a preference node.
type UpdatePreferenceParams struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}

// CreatePreference adds a node under parentID (0 for top level).
func (s *Store) CreatePreference(agentName string, parentID int64, title, description string) (int64, error) {
	aid, err := s.agentID(agentName)
	if err != nil {
		return 0, err
	}
	res, err := s.db.Exec(
		`INSERT INTO preferences (agent_id, parent_id, title, description) VALUES (?, ?, ?, ?)`,
		aid, parentID, title, nullableString(description),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListPreferences returns the agent's top-level preference nodes, the
// manifest clients load before drilling into branches.
func (s *Store) ListPreferences(agentName string) ([]Preference, error) {
	aid, err := s.agentID(agentName)
	if err != nil {
		return nil, err
	}
	return s.queryPreferences(
		`SELECT id, agent_id, parent_id, title, description, updated_at
		 FROM preferences WHERE agent_id = ? AND parent_id = 0 ORDER BY id`, aid,
	)
}

// GetPreference returns a node and its immediate children.
func (s *Store) GetPreference(agentName string, id int64) (*PreferenceBranch, error) {
	aid, err := s.agentID(agentName)
	if err != nil {
		return nil, err
	}
	row := s.db.QueryRow(
		`SELECT id, agent_id, parent_id, title, description, updated_at
		 FROM preferences WHERE agent_id = ? AND id = ?`, aid, id,
	)
	var node Preference
	if err := row.Scan(&node.ID, &node.AgentID, &node.ParentID, &node.Title, &node.Description, &node.UpdatedAt); err != nil {
		return nil, notFound(err)
	}

	children, err := s.queryPreferences(
		`SELECT id, agent_id, parent_id, title, description, updated_at
		 FROM preferences WHERE agent_id = ? AND parent_id = ? ORDER BY id`, aid, id,
	)
	if err != nil {
		return nil, err
	}
	return &PreferenceBranch{Node: node, Children: children}, nil
}

// UpdatePreference partially updates a node.
func (s *Store) UpdatePreference(agentName string, id int64, p UpdatePreferenceParams) (*Preference, error) {
	branch, err := s.GetPreference(agentName, id)
	if err != nil {
		return nil, err
	}

	title := branch.Node.Title
	description := derefString(branch.Node.Description)
	if p.Title != nil {
		title = *p.Title
	}
	if p.Description != nil {
		description = *p.Description
	}

	if _, err := s.db.Exec(
		`UPDATE preferences SET title = ?, description = ?, updated_at = datetime('now') WHERE id = ?`,
		title, nullableString(description), id,
	); err != nil {
		return nil, err
	}

	updated, err := s.GetPreference(agentName, id)
	if err != nil {
		return nil, err
	}
	return &updated.Node, nil
}

// DeletePreference removes a node and its whole subtree.
// Returns the number of descendants deleted alongside the node.
func (s *Store) DeletePreference(agentName string, id int64) (int64, error) {
	aid, err := s.agentID(agentName)
	if err != nil {
		return 0, err
	}
	res, err := s.db.Exec(
		`WITH RECURSIVE subtree AS (
			SELECT id FROM preferences WHERE agent_id = ? AND id = ?
			UNION ALL
			SELECT p.id FROM preferences p
			INNER JOIN subtree s ON p.parent_id = s.id
			WHERE p.agent_id = ?
		)
		DELETE FROM preferences WHERE id IN (SELECT id FROM subtree)`,
		aid, id, aid,
	)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, ErrNotFound
	}
	return n - 1, nil
}

func (s *Store) queryPreferences(query string, args ...any) ([]Preference, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var results []Preference
	for rows.Next() {
		var p Preference
		if err := rows.Scan(&p.ID, &p.AgentID, &p.ParentID, &p.Title, &p.Description, &p.UpdatedAt); err != nil {
			return nil, err
		}
		results = append(results, p)
	}
	return results, rows.Err()
}
