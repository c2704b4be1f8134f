package store

// Project is a top-level body of work with a tree of sections.
type Project struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	UpdatedAt   string  `json:"updated_at"`
}

// Section is one node in a project's section tree. Root nodes have
// ParentID 0; Position orders siblings.
type Section struct {
	ID          int64   `json:"id"`
	ProjectID   int64   `json:"project_id"`
	ParentID    int64   `json:"parent_id"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Position    int     `json:"position"`
	UpdatedAt   string  `json:"updated_at"`
}

// ProjectDetail is a project header with its flat section list,
// ordered so a tree can be rebuilt by parent_id.
type ProjectDetail struct {
	Project  Project   `json:"project"`
	Sections []Section `json:"sections"`
}

// SectionBranch is a section with its immediate children.
type SectionBranch struct {
	Section  Section   `json:"section"`
	Children []Section `json:"children"`
}

// UpdateProjectParams holds partial update fields for a project header.
type UpdateProjectParams struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}

// UpdateSectionParams holds partial update fields for a section.
type UpdateSectionParams struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Position    *int    `json:"position,omitempty"`
}

// CreateProject creates a project header.
func (s *Store) CreateProject(title, description string) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO projects (title, description) VALUES (?, ?)`,
		title, nullableString(description),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListProjects returns all project headers ordered by ID.
func (s *Store) ListProjects() ([]Project, error) {
	rows, err := s.db.Query(
		`SELECT id, title, description, updated_at FROM projects ORDER BY id`,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var results []Project
	for rows.Next() {
		var p Project
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.UpdatedAt); err != nil {
			return nil, err
		}
		results = append(results, p)
	}
	return results, rows.Err()
}

// GetProject returns the project header with its full section list.
func (s *Store) GetProject(id int64) (*ProjectDetail, error) {
	row := s.db.QueryRow(
		`SELECT id, title, description, updated_at FROM projects WHERE id = ?`, id,
	)
	var p Project
	if err := row.Scan(&p.ID, &p.Title, &p.Description, &p.UpdatedAt); err != nil {
		return nil, notFound(err)
	}

	sections, err := s.querySections(
		`SELECT id, project_id, parent_id, title, description, position, updated_at
		 FROM project_sections WHERE project_id = ?
		 ORDER BY parent_id, position, id`, id,
	)
	if err != nil {
		return nil, err
	}
	return &ProjectDetail{Project: p, Sections: sections}, nil
}

// UpdateProject partially updates a project header.
func (s *Store) UpdateProject(id int64, p UpdateProjectParams) (*Project, error) {
	detail, err := s.GetProject(id)
	if err != nil {
		return nil, err
	}

	title := detail.Project.Title
	description := derefString(detail.Project.Description)
	if p.Title != nil {
		title = *p.Title
	}
	if p.Description != nil {
		description = *p.Description
	}

	if _, err := s.db.Exec(
		`UPDATE projects SET title = ?, description = ?, updated_at = datetime('now') WHERE id = ?`,
		title, nullableString(description), id,
	); err != nil {
		return nil, err
	}

	updated, err := s.GetProject(id)
	if err != nil {
		return nil, err
	}
	return &updated.Project, nil
}

// DeleteProject removes a project and all its sections.
// Returns the number of sections deleted.
func (s *Store) DeleteProject(id int64) (int64, error) {
	if _, err := s.GetProject(id); err != nil {
		return 0, err
	}
	res, err := s.db.Exec(`DELETE FROM project_sections WHERE project_id = ?`, id)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if _, err := s.db.Exec(`DELETE FROM projects WHERE id = ?`, id); err != nil {
		return 0, err
	}
	return n, nil
}

// CreateSection adds a section under parentID (0 for top level).
func (s *Store) CreateSection(projectID, parentID int64, title, description string, position int) (int64, error) {
	if _, err := s.GetProject(projectID); err != nil {
		return 0, err
	}
	res, err := s.db.Exec(
		`INSERT INTO project_sections (project_id, parent_id, title, description, position)
		 VALUES (?, ?, ?, ?, ?)`,
		projectID, parentID, title, nullableString(description), position,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// GetSection returns a section and its immediate children.
func (s *Store) GetSection(projectID, sectionID int64) (*SectionBranch, error) {
	row := s.db.QueryRow(
		`SELECT id, project_id, parent_id, title, description, position, updated_at
		 FROM project_sections WHERE project_id = ? AND id = ?`, projectID, sectionID,
	)
	var sec Section
	if err := row.Scan(&sec.ID, &sec.ProjectID, &sec.ParentID, &sec.Title, &sec.Description, &sec.Position, &sec.UpdatedAt); err != nil {
		return nil, notFound(err)
	}

	children, err := s.querySections(
		`SELECT id, project_id, parent_id, title, description, position, updated_at
		 FROM project_sections WHERE project_id = ? AND parent_id = ?
		 ORDER BY position, id`, projectID, sectionID,
	)
	if err != nil {
		return nil, err
	}
	return &SectionBranch{Section: sec, Children: children}, nil
}

// UpdateSection partially updates a section.
func (s *Store) UpdateSection(projectID, sectionID int64, p UpdateSectionParams) (*Section, error) {
	branch, err := s.GetSection(projectID, sectionID)
	if err != nil {
		return nil, err
	}

	title := branch.Section.Title
	description := derefString(branch.Section.Description)
	position := branch.Section.Position
	if p.Title != nil {
		title = *p.Title
	}
	if p.Description != nil {
		description = *p.Description
	}
	if p.Position != nil {
		position = *p.Position
	}

	if _, err := s.db.Exec(
		`UPDATE project_sections SET title = ?, description = ?, position = ?, updated_at = datetime('now')
		 WHERE id = ?`,
		title, nullableString(description), position, sectionID,
	); err != nil {
		return nil, err
	}

	updated, err := s.GetSection(projectID, sectionID)
	if err != nil {
		return nil, err
	}
	return &updated.Section, nil
}

// DeleteSection removes a section and its subtree.
// Returns the number of descendants deleted alongside the node.
func (s *Store) DeleteSection(projectID, sectionID int64) (int64, error) {
	res, err := s.db.Exec(
		`WITH RECURSIVE subtree AS (
			SELECT id FROM project_sections WHERE project_id = ? AND id = ?
			UNION ALL
			SELECT ps.id FROM project_sections ps
			INNER JOIN subtree s ON ps.parent_id = s.id
			WHERE ps.project_id = ?
		)
		DELETE FROM project_sections WHERE id IN (SELECT id FROM subtree)`,
		projectID, sectionID, projectID,
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

func (s *Store) querySections(query string, args ...any) ([]Section, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var results []Section
	for rows.Next() {
		var sec Section
		if err := rows.Scan(&sec.ID, &sec.ProjectID, &sec.ParentID, &sec.Title, &sec.Description, &sec.Position, &sec.UpdatedAt); err != nil {
			return nil, err
		}
		results = append(results, sec)
	}
	return results, rows.Err()
}
