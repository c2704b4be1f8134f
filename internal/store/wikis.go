package store

// Wiki is a knowledge base with a tree of tagged sections.
type Wiki struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	UpdatedAt   string  `json:"updated_at"`
}

// WikiSection is one node of a wiki's section tree. Root nodes have
// ParentID 0.
type WikiSection struct {
	ID          int64    `json:"id"`
	WikiID      int64    `json:"wiki_id"`
	ParentID    int64    `json:"parent_id"`
	Title       string   `json:"title"`
	Description *string  `json:"description,omitempty"`
	UpdatedAt   string   `json:"updated_at"`
	Tags        []string `json:"tags"`
}

// WikiDetail is a wiki header with its flat section list, tags attached.
type WikiDetail struct {
	Wiki     Wiki          `json:"wiki"`
	Sections []WikiSection `json:"sections"`
}

// WikiSectionBranch is a section with its immediate children.
type WikiSectionBranch struct {
	Section  WikiSection   `json:"section"`
	Children []WikiSection `json:"children"`
}

// TaggedSection is a cross-wiki search hit carrying the owning wiki title.
type TaggedSection struct {
	WikiID    int64  `json:"wiki_id"`
	WikiTitle string `json:"wiki_title"`
	WikiSection
}

// UpdateWikiParams holds partial update fields for a wiki header.
type UpdateWikiParams struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}

// UpdateWikiSectionParams holds partial update fields for a wiki section.
// A non-nil Tags replaces the full tag set.
type UpdateWikiSectionParams struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// ─── Wikis ───────────────────────────────────────────────────────────────────

// CreateWiki creates a wiki header.
func (s *Store) CreateWiki(title, description string) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO wikis (title, description) VALUES (?, ?)`,
		title, nullableString(description),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListWikis returns all wiki headers ordered by ID.
func (s *Store) ListWikis() ([]Wiki, error) {
	rows, err := s.db.Query(`SELECT id, title, description, updated_at FROM wikis ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var results []Wiki
	for rows.Next() {
		var w Wiki
		if err := rows.Scan(&w.ID, &w.Title, &w.Description, &w.UpdatedAt); err != nil {
			return nil, err
		}
		results = append(results, w)
	}
	return results, rows.Err()
}

// GetWiki returns the wiki header with its full section list, tags attached.
func (s *Store) GetWiki(id int64) (*WikiDetail, error) {
	row := s.db.QueryRow(`SELECT id, title, description, updated_at FROM wikis WHERE id = ?`, id)
	var w Wiki
	if err := row.Scan(&w.ID, &w.Title, &w.Description, &w.UpdatedAt); err != nil {
		return nil, notFound(err)
	}

	sections, err := s.queryWikiSections(
		`SELECT id, wiki_id, parent_id, title, description, updated_at
		 FROM wiki_sections WHERE wiki_id = ?
		 ORDER BY parent_id, id`, id,
	)
	if err != nil {
		return nil, err
	}
	if err := s.attachTags(sections); err != nil {
		return nil, err
	}
	return &WikiDetail{Wiki: w, Sections: sections}, nil
}

// UpdateWiki partially updates a wiki header.
func (s *Store) UpdateWiki(id int64, p UpdateWikiParams) (*Wiki, error) {
	detail, err := s.GetWiki(id)
	if err != nil {
		return nil, err
	}

	title := detail.Wiki.Title
	description := derefString(detail.Wiki.Description)
	if p.Title != nil {
		title = *p.Title
	}
	if p.Description != nil {
		description = *p.Description
	}

	if _, err := s.db.Exec(
		`UPDATE wikis SET title = ?, description = ?, updated_at = datetime('now') WHERE id = ?`,
		title, nullableString(description), id,
	); err != nil {
		return nil, err
	}

	updated, err := s.GetWiki(id)
	if err != nil {
		return nil, err
	}
	return &updated.Wiki, nil
}

// DeleteWiki removes a wiki and all its sections and tags.
// Returns the number of sections deleted.
func (s *Store) DeleteWiki(id int64) (int64, error) {
	if _, err := s.GetWiki(id); err != nil {
		return 0, err
	}
	res, err := s.db.Exec(`DELETE FROM wiki_sections WHERE wiki_id = ?`, id)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if _, err := s.db.Exec(`DELETE FROM wikis WHERE id = ?`, id); err != nil {
		return 0, err
	}
	return n, nil
}

// ─── Wiki sections ───────────────────────────────────────────────────────────

// CreateWikiSection adds a section under parentID (0 for top level) with
// its tag set, and touches the parent wiki's updated_at.
func (s *Store) CreateWikiSection(wikiID, parentID int64, title, description string, tags []string) (int64, error) {
	if _, err := s.GetWiki(wikiID); err != nil {
		return 0, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(
		`INSERT INTO wiki_sections (wiki_id, parent_id, title, description) VALUES (?, ?, ?, ?)`,
		wikiID, parentID, title, nullableString(description),
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	for _, tag := range tags {
		if _, err := tx.Exec(
			`INSERT OR IGNORE INTO wiki_section_tags (section_id, tag) VALUES (?, ?)`, id, tag,
		); err != nil {
			return 0, err
		}
	}

	if _, err := tx.Exec(
		`UPDATE wikis SET updated_at = datetime('now') WHERE id = ?`, wikiID,
	); err != nil {
		return 0, err
	}

	return id, tx.Commit()
}

// GetWikiSection returns a section and its immediate children, tags attached.
func (s *Store) GetWikiSection(wikiID, sectionID int64) (*WikiSectionBranch, error) {
	row := s.db.QueryRow(
		`SELECT id, wiki_id, parent_id, title, description, updated_at
		 FROM wiki_sections WHERE wiki_id = ? AND id = ?`, wikiID, sectionID,
	)
	var sec WikiSection
	if err := row.Scan(&sec.ID, &sec.WikiID, &sec.ParentID, &sec.Title, &sec.Description, &sec.UpdatedAt); err != nil {
		return nil, notFound(err)
	}

	children, err := s.queryWikiSections(
		`SELECT id, wiki_id, parent_id, title, description, updated_at
		 FROM wiki_sections WHERE wiki_id = ? AND parent_id = ?
		 ORDER BY id`, wikiID, sectionID,
	)
	if err != nil {
		return nil, err
	}

	all := append([]WikiSection{sec}, children...)
	if err := s.attachTags(all); err != nil {
		return nil, err
	}
	return &WikiSectionBranch{Section: all[0], Children: all[1:]}, nil
}

// UpdateWikiSection partially updates a section. A non-nil Tags replaces
// the full tag set. The parent wiki's updated_at is always touched.
func (s *Store) UpdateWikiSection(wikiID, sectionID int64, p UpdateWikiSectionParams) (*WikiSection, error) {
	branch, err := s.GetWikiSection(wikiID, sectionID)
	if err != nil {
		return nil, err
	}

	title := branch.Section.Title
	description := derefString(branch.Section.Description)
	if p.Title != nil {
		title = *p.Title
	}
	if p.Description != nil {
		description = *p.Description
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(
		`UPDATE wiki_sections SET title = ?, description = ?, updated_at = datetime('now') WHERE id = ?`,
		title, nullableString(description), sectionID,
	); err != nil {
		return nil, err
	}

	if p.Tags != nil {
		if _, err := tx.Exec(`DELETE FROM wiki_section_tags WHERE section_id = ?`, sectionID); err != nil {
			return nil, err
		}
		for _, tag := range p.Tags {
			if _, err := tx.Exec(
				`INSERT OR IGNORE INTO wiki_section_tags (section_id, tag) VALUES (?, ?)`, sectionID, tag,
			); err != nil {
				return nil, err
			}
		}
	}

	if _, err := tx.Exec(
		`UPDATE wikis SET updated_at = datetime('now') WHERE id = ?`, wikiID,
	); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	updated, err := s.GetWikiSection(wikiID, sectionID)
	if err != nil {
		return nil, err
	}
	return &updated.Section, nil
}

// DeleteWikiSection removes a section and its subtree, tags cascading.
// Returns the number of descendants deleted alongside the node.
func (s *Store) DeleteWikiSection(wikiID, sectionID int64) (int64, error) {
	res, err := s.db.Exec(
		`WITH RECURSIVE subtree AS (
			SELECT id FROM wiki_sections WHERE wiki_id = ? AND id = ?
			UNION ALL
			SELECT ws.id FROM wiki_sections ws
			INNER JOIN subtree s ON ws.parent_id = s.id
			WHERE ws.wiki_id = ?
		)
		DELETE FROM wiki_sections WHERE id IN (SELECT id FROM subtree)`,
		wikiID, sectionID, wikiID,
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
	_, _ = s.db.Exec(`UPDATE wikis SET updated_at = datetime('now') WHERE id = ?`, wikiID)
	return n - 1, nil
}

// ─── Tags and search ─────────────────────────────────────────────────────────

// ListWikiTags returns the distinct tags used in a wiki, sorted.
func (s *Store) ListWikiTags(wikiID int64) ([]string, error) {
	if _, err := s.GetWiki(wikiID); err != nil {
		return nil, err
	}
	rows, err := s.db.Query(
		`SELECT DISTINCT wst.tag
		 FROM wiki_section_tags wst
		 JOIN wiki_sections ws ON wst.section_id = ws.id
		 WHERE ws.wiki_id = ?
		 ORDER BY wst.tag`, wikiID,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var tags []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// SearchWikiTag finds all sections across all wikis carrying a tag.
func (s *Store) SearchWikiTag(tag string) ([]TaggedSection, error) {
	return s.queryTaggedSections(
		`SELECT w.id, w.title, ws.id, ws.wiki_id, ws.parent_id, ws.title, ws.description, ws.updated_at
		 FROM wiki_section_tags wst
		 JOIN wiki_sections ws ON wst.section_id = ws.id
		 JOIN wikis w ON ws.wiki_id = w.id
		 WHERE wst.tag = ?
		 ORDER BY w.id, ws.id`, tag,
	)
}

// SearchWikiSections runs an FTS5 search over section titles and bodies
// across all wikis.
func (s *Store) SearchWikiSections(query string, limit int) ([]TaggedSection, error) {
	if limit <= 0 {
		limit = 20
	}
	if query == "" {
		return s.queryTaggedSections(
			`SELECT w.id, w.title, ws.id, ws.wiki_id, ws.parent_id, ws.title, ws.description, ws.updated_at
			 FROM wiki_sections ws
			 JOIN wikis w ON ws.wiki_id = w.id
			 ORDER BY ws.updated_at DESC, ws.id DESC LIMIT ?`, limit,
		)
	}
	return s.queryTaggedSections(
		`SELECT w.id, w.title, ws.id, ws.wiki_id, ws.parent_id, ws.title, ws.description, ws.updated_at
		 FROM wiki_sections_fts f
		 JOIN wiki_sections ws ON ws.id = f.rowid
		 JOIN wikis w ON ws.wiki_id = w.id
		 WHERE wiki_sections_fts MATCH ?
		 ORDER BY f.rank LIMIT ?`, sanitizeFTS(query), limit,
	)
}

func (s *Store) queryTaggedSections(query string, args ...any) ([]TaggedSection, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var results []TaggedSection
	for rows.Next() {
		var t TaggedSection
		if err := rows.Scan(&t.WikiID, &t.WikiTitle, &t.ID, &t.WikiSection.WikiID, &t.ParentID, &t.Title, &t.Description, &t.UpdatedAt); err != nil {
			return nil, err
		}
		results = append(results, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sections := make([]WikiSection, len(results))
	for i := range results {
		sections[i] = results[i].WikiSection
	}
	if err := s.attachTags(sections); err != nil {
		return nil, err
	}
	for i := range results {
		results[i].WikiSection = sections[i]
	}
	return results, nil
}

// attachTags fills the Tags field of each section in place.
func (s *Store) attachTags(sections []WikiSection) error {
	for i := range sections {
		rows, err := s.db.Query(
			`SELECT tag FROM wiki_section_tags WHERE section_id = ? ORDER BY tag`, sections[i].ID,
		)
		if err != nil {
			return err
		}
		tags := []string{}
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				_ = rows.Close()
				return err
			}
			tags = append(tags, t)
		}
		if err := rows.Err(); err != nil {
			_ = rows.Close()
			return err
		}
		_ = rows.Close()
		sections[i].Tags = tags
	}
	return nil
}

func (s *Store) queryWikiSections(query string, args ...any) ([]WikiSection, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var results []WikiSection
	for rows.Next() {
		var sec WikiSection
		if err := rows.Scan(&sec.ID, &sec.WikiID, &sec.ParentID, &sec.Title, &sec.Description, &sec.UpdatedAt); err != nil {
			return nil, err
		}
		results = append(results, sec)
	}
	return results, rows.Err()
}
