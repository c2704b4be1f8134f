package store

// Hint is one node in the shared hints tree: operator guidance that is
// not scoped to any single agent. Root nodes have ParentID 0.
type Hint struct {
	ID          int64   `json:"id"`
	ParentID    int64   `json:"parent_id"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	UpdatedAt   string  `json:"updated_at"`
}

// HintBranch is a hint node with its immediate children.
type HintBranch struct {
	Node     Hint   `json:"node"`
	Children []Hint `json:"children"`
}

// UpdateHintParams holds partial update fields for a hint node.
type UpdateHintParams struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}

// CreateHint adds a node under parentID (0 for top level).
func (s *Store) CreateHint(parentID int64, title, description string) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO hints (parent_id, title, description) VALUES (?, ?, ?)`,
		parentID, title, nullableString(description),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListHints returns the whole hints tree with descriptions, ordered
// parent-first.
func (s *Store) ListHints() ([]Hint, error) {
	return s.queryHints(
		`SELECT id, parent_id, title, description, updated_at
		 FROM hints ORDER BY parent_id, id`,
	)
}

// GetHint returns a node and its immediate children.
func (s *Store) GetHint(id int64) (*HintBranch, error) {
	row := s.db.QueryRow(
		`SELECT id, parent_id, title, description, updated_at FROM hints WHERE id = ?`, id,
	)
	var node Hint
	if err := row.Scan(&node.ID, &node.ParentID, &node.Title, &node.Description, &node.UpdatedAt); err != nil {
		return nil, notFound(err)
	}

	children, err := s.queryHints(
		`SELECT id, parent_id, title, description, updated_at
		 FROM hints WHERE parent_id = ? ORDER BY id`, id,
	)
	if err != nil {
		return nil, err
	}
	return &HintBranch{Node: node, Children: children}, nil
}

// UpdateHint partially updates a node.
func (s *Store) UpdateHint(id int64, p UpdateHintParams) (*Hint, error) {
	branch, err := s.GetHint(id)
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
		`UPDATE hints SET title = ?, description = ?, updated_at = datetime('now') WHERE id = ?`,
		title, nullableString(description), id,
	); err != nil {
		return nil, err
	}

	updated, err := s.GetHint(id)
	if err != nil {
		return nil, err
	}
	return &updated.Node, nil
}

// DeleteHint removes a node and its whole subtree.
// Returns the number of descendants deleted alongside the node.
func (s *Store) DeleteHint(id int64) (int64, error) {
	res, err := s.db.Exec(
		`WITH RECURSIVE subtree AS (
			SELECT id FROM hints WHERE id = ?
			UNION ALL
			SELECT h.id FROM hints h
			INNER JOIN subtree s ON h.parent_id = s.id
		)
		DELETE FROM hints WHERE id IN (SELECT id FROM subtree)`,
		id,
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

func (s *Store) queryHints(query string, args ...any) ([]Hint, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var results []Hint
	for rows.Next() {
		var h Hint
		if err := rows.Scan(&h.ID, &h.ParentID, &h.Title, &h.Description, &h.UpdatedAt); err != nil {
			return nil, err
		}
		results = append(results, h)
	}
	return results, rows.Err()
}
