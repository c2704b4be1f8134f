package store

// TitleRef is an ID/title pair used in context manifests.
type TitleRef struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// TreeTitleRef is a TitleRef that keeps its position in a tree.
type TreeTitleRef struct {
	ID       int64  `json:"id"`
	ParentID int64  `json:"parent_id"`
	Title    string `json:"title"`
}

// Context is the aggregated payload an agent loads at session start:
// memory titles for ambient recall, plus manifests of preferences and
// projects for on-demand loading.
type Context struct {
	Agent               string         `json:"agent"`
	AlwaysLoad          []TreeTitleRef `json:"always_load"`
	Memories            []TitleRef     `json:"memories"`
	PreferencesManifest []TitleRef     `json:"preferences_manifest"`
	ProjectsManifest    []TitleRef     `json:"projects_manifest"`
}

// GetContext assembles the context payload for the named agent.
// Loading context is the first call a new agent makes, so the agent
// row is created on first use; there is no separate provisioning step.
func (s *Store) GetContext(agentName string) (*Context, error) {
	aid, err := s.EnsureAgent(agentName, "")
	if err != nil {
		return nil, err
	}

	ctx := &Context{Agent: agentName}

	ctx.AlwaysLoad, err = s.queryTreeTitleRefs(
		`SELECT id, parent_id, title FROM always_load WHERE agent_id = ? ORDER BY parent_id, id`, aid,
	)
	if err != nil {
		return nil, err
	}

	ctx.Memories, err = s.queryTitleRefs(
		`SELECT id, title FROM memories WHERE agent_id = ? ORDER BY id`, aid,
	)
	if err != nil {
		return nil, err
	}

	ctx.PreferencesManifest, err = s.queryTitleRefs(
		`SELECT id, title FROM preferences WHERE agent_id = ? AND parent_id = 0 ORDER BY id`, aid,
	)
	if err != nil {
		return nil, err
	}

	ctx.ProjectsManifest, err = s.queryTitleRefs(
		`SELECT id, title FROM projects ORDER BY id`,
	)
	if err != nil {
		return nil, err
	}

	return ctx, nil
}

func (s *Store) queryTreeTitleRefs(query string, args ...any) ([]TreeTitleRef, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	refs := []TreeTitleRef{}
	for rows.Next() {
		var r TreeTitleRef
		if err := rows.Scan(&r.ID, &r.ParentID, &r.Title); err != nil {
			return nil, err
		}
		refs = append(refs, r)
	}
	return refs, rows.Err()
}

func (s *Store) queryTitleRefs(query string, args ...any) ([]TitleRef, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	refs := []TitleRef{}
	for rows.Next() {
		var r TitleRef
		if err := rows.Scan(&r.ID, &r.Title); err != nil {
			return nil, err
		}
		refs = append(refs, r)
	}
	return refs, rows.Err()
}
