package store

// AlwaysLoadNode is one node in an agent's always-load tree: the core
// identity and standards content injected at every session start.
// Root nodes have ParentID 0.
type AlwaysLoadNode struct {
	ID          int64   `json:"id"`
	AgentID     int64   `json:"agent_id"`
	ParentID    int64   `json:"parent_id"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	UpdatedAt   string  `json:"updated_at"`
}

// AlwaysLoadBranch is an always-load node with its immediate children.
type AlwaysLoadBranch struct {
	Node     AlwaysLoadNode   `json:"node"`
	Children []AlwaysLoadNode `json:"children"`
}

// UpdateAlwaysLoadParams holds partial update fields for an always-load node.
type UpdateAlwaysLoadParams struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}

// CreateAlwaysLoad adds a node under parentID (0 for top level).
func (s *Store) CreateAlwaysLoad(agentName string, parentID int64, title, description string) (int64, error) {
	aid, err := s.agentID(agentName)
	if err != nil {
		return 0, err
	}
	res, err := s.db.Exec(
		`INSERT INTO always_load (agent_id, parent_id, title, description) VALUES (?, ?, ?, ?)`,
		aid, parentID, title, nullableString(description),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListAlwaysLoad returns the agent's whole always-load tree with
// descriptions, ordered parent-first. Unlike the preference manifest,
// the full tree ships at once: every node is loaded at session start.
func (s *Store) ListAlwaysLoad(agentName string) ([]AlwaysLoadNode, error) {
	aid, err := s.agentID(agentName)
	if err != nil {
		return nil, err
	}
	return s.queryAlwaysLoad(
		`SELECT id, agent_id, parent_id, title, description, updated_at
		 FROM always_load WHERE agent_id = ? ORDER BY parent_id, id`, aid,
	)
}

// GetAlwaysLoad returns a node and its immediate children.
func (s *Store) GetAlwaysLoad(agentName string, id int64) (*AlwaysLoadBranch, error) {
	aid, err := s.agentID(agentName)
	if err != nil {
		return nil, err
	}
	row := s.db.QueryRow(
		`SELECT id, agent_id, parent_id, title, description, updated_at
		 FROM always_load WHERE agent_id = ? AND id = ?`, aid, id,
	)
	var node AlwaysLoadNode
	if err := row.Scan(&node.ID, &node.AgentID, &node.ParentID, &node.Title, &node.Description, &node.UpdatedAt); err != nil {
		return nil, notFound(err)
	}

	children, err := s.queryAlwaysLoad(
		`SELECT id, agent_id, parent_id, title, description, updated_at
		 FROM always_load WHERE agent_id = ? AND parent_id = ? ORDER BY id`, aid, id,
	)
	if err != nil {
		return nil, err
	}
	return &AlwaysLoadBranch{Node: node, Children: children}, nil
}

// UpdateAlwaysLoad partially updates a node.
func (s *Store) UpdateAlwaysLoad(agentName string, id int64, p UpdateAlwaysLoadParams) (*AlwaysLoadNode, error) {
	branch, err := s.GetAlwaysLoad(agentName, id)
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
		`UPDATE always_load SET title = ?, description = ?, updated_at = datetime('now') WHERE id = ?`,
		title, nullableString(description), id,
	); err != nil {
		return nil, err
	}

	updated, err := s.GetAlwaysLoad(agentName, id)
	if err != nil {
		return nil, err
	}
	return &updated.Node, nil
}

// DeleteAlwaysLoad removes a node and its whole subtree.
// Returns the number of descendants deleted alongside the node.
func (s *Store) DeleteAlwaysLoad(agentName string, id int64) (int64, error) {
	aid, err := s.agentID(agentName)
	if err != nil {
		return 0, err
	}
	res, err := s.db.Exec(
		`WITH RECURSIVE subtree AS (
			SELECT id FROM always_load WHERE agent_id = ? AND id = ?
			UNION ALL
			SELECT a.id FROM always_load a
			INNER JOIN subtree s ON a.parent_id = s.id
			WHERE a.agent_id = ?
		)
		DELETE FROM always_load WHERE id IN (SELECT id FROM subtree)`,
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

func (s *Store) queryAlwaysLoad(query string, args ...any) ([]AlwaysLoadNode, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var results []AlwaysLoadNode
	for rows.Next() {
		var n AlwaysLoadNode
		if err := rows.Scan(&n.ID, &n.AgentID, &n.ParentID, &n.Title, &n.Description, &n.UpdatedAt); err != nil {
			return nil, err
		}
		results = append(results, n)
	}
	return results, rows.Err()
}
