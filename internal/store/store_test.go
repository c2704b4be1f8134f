package store_test

import (
	"errors"
	"testing"

	"github.com/RickAtSnowcap/lucyapi/internal/store"
)

// newTestStore creates a Store backed by a temp directory for isolation.
func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.New(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// ensureAgent registers an agent that other entities depend on.
func ensureAgent(t *testing.T, s *store.Store, name string) {
	t.Helper()
	if _, err := s.EnsureAgent(name, ""); err != nil {
		t.Fatalf("failed to ensure agent %q: %v", name, err)
	}
}

// ─── New / Initialization ───────────────────────────────────────────────────

func TestNew_IdempotentReopen(t *testing.T) {
	dir := t.TempDir()

	// Open, insert, close
	s1, err := store.New(dir)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	if _, err := s1.EnsureAgent("lucy", "primary assistant"); err != nil {
		t.Fatalf("ensure agent: %v", err)
	}
	s1.Close()

	// Reopen — data should persist
	s2, err := store.New(dir)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer s2.Close()

	a, err := s2.GetAgent("lucy")
	if err != nil {
		t.Fatalf("agent not found after reopen: %v", err)
	}
	if a.Description == nil || *a.Description != "primary assistant" {
		t.Errorf("description = %v, want %q", a.Description, "primary assistant")
	}
}

// ─── Agents ─────────────────────────────────────────────────────────────────

func TestEnsureAgent_DuplicateKeepsID(t *testing.T) {
	s := newTestStore(t)

	id1, err := s.EnsureAgent("lucy", "")
	if err != nil {
		t.Fatalf("first ensure: %v", err)
	}
	id2, err := s.EnsureAgent("lucy", "other description")
	if err != nil {
		t.Fatalf("second ensure: %v", err)
	}
	if id1 != id2 {
		t.Errorf("ids differ: %d vs %d", id1, id2)
	}

	agents, err := s.ListAgents()
	if err != nil {
		t.Fatal(err)
	}
	if len(agents) != 1 {
		t.Errorf("len(agents) = %d, want 1", len(agents))
	}
}

func TestEnsureAgent_EmptyName(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.EnsureAgent("", ""); err == nil {
		t.Error("expected an error for empty agent name")
	}
}

// ─── Memories ───────────────────────────────────────────────────────────────

func TestMemories_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	ensureAgent(t, s, "lucy")

	id, err := s.CreateMemory("lucy", "Favorite font", "Rick prefers Lexend for docs")
	if err != nil {
		t.Fatalf("CreateMemory: %v", err)
	}

	m, err := s.GetMemory("lucy", id)
	if err != nil {
		t.Fatalf("GetMemory: %v", err)
	}
	if m.Title != "Favorite font" {
		t.Errorf("Title = %q", m.Title)
	}
	if m.Description == nil || *m.Description != "Rick prefers Lexend for docs" {
		t.Errorf("Description = %v", m.Description)
	}

	newTitle := "Preferred font"
	updated, err := s.UpdateMemory("lucy", id, store.UpdateMemoryParams{Title: &newTitle})
	if err != nil {
		t.Fatalf("UpdateMemory: %v", err)
	}
	if updated.Title != "Preferred font" {
		t.Errorf("updated Title = %q", updated.Title)
	}
	// Untouched fields survive partial updates.
	if updated.Description == nil || *updated.Description != "Rick prefers Lexend for docs" {
		t.Errorf("Description after update = %v", updated.Description)
	}

	if err := s.DeleteMemory("lucy", id); err != nil {
		t.Fatalf("DeleteMemory: %v", err)
	}
	if _, err := s.GetMemory("lucy", id); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("after delete, err = %v, want ErrNotFound", err)
	}
}

func TestMemories_ScopedToAgent(t *testing.T) {
	s := newTestStore(t)
	ensureAgent(t, s, "lucy")
	ensureAgent(t, s, "scout")

	id, err := s.CreateMemory("lucy", "private", "")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := s.GetMemory("scout", id); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("cross-agent read err = %v, want ErrNotFound", err)
	}
	if err := s.DeleteMemory("scout", id); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("cross-agent delete err = %v, want ErrNotFound", err)
	}
}

func TestMemories_UnknownAgent(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.CreateMemory("ghost", "x", ""); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestSearchMemories_FTS(t *testing.T) {
	s := newTestStore(t)
	ensureAgent(t, s, "lucy")

	seed := []struct{ title, desc string }{
		{"Quarterly report layout", "tables with alternating row colors"},
		{"Grocery list habits", "Rick shops on Saturdays"},
		{"Document branding", "headings use the corporate blue palette"},
	}
	for _, m := range seed {
		if _, err := s.CreateMemory("lucy", m.title, m.desc); err != nil {
			t.Fatal(err)
		}
	}

	results, err := s.SearchMemories("lucy", "report layout", 10)
	if err != nil {
		t.Fatalf("SearchMemories: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("len(results) = %d, want 1", len(results))
	}
	if results[0].Title != "Quarterly report layout" {
		t.Errorf("hit = %q", results[0].Title)
	}

	// Updated rows stay searchable under the new text.
	newDesc := "now using zebra striping"
	if _, err := s.UpdateMemory("lucy", results[0].ID, store.UpdateMemoryParams{Description: &newDesc}); err != nil {
		t.Fatal(err)
	}
	results, err = s.SearchMemories("lucy", "zebra", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Errorf("zebra results = %d, want 1", len(results))
	}
}

func TestSearchMemories_EmptyQueryFallsBack(t *testing.T) {
	s := newTestStore(t)
	ensureAgent(t, s, "lucy")

	for _, title := range []string{"one", "two", "three"} {
		if _, err := s.CreateMemory("lucy", title, ""); err != nil {
			t.Fatal(err)
		}
	}

	results, err := s.SearchMemories("lucy", "", 2)
	if err != nil {
		t.Fatalf("SearchMemories: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("len(results) = %d, want 2 (limit applied)", len(results))
	}
}

// ─── Preferences ────────────────────────────────────────────────────────────

func TestPreferences_TreeAndSubtreeDelete(t *testing.T) {
	s := newTestStore(t)
	ensureAgent(t, s, "lucy")

	root, err := s.CreatePreference("lucy", 0, "Writing style", "")
	if err != nil {
		t.Fatal(err)
	}
	child, err := s.CreatePreference("lucy", root, "Tone", "formal but warm")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.CreatePreference("lucy", child, "Email tone", "shorter"); err != nil {
		t.Fatal(err)
	}
	other, err := s.CreatePreference("lucy", 0, "Scheduling", "")
	if err != nil {
		t.Fatal(err)
	}

	// Manifest lists only top-level nodes.
	top, err := s.ListPreferences("lucy")
	if err != nil {
		t.Fatal(err)
	}
	if len(top) != 2 {
		t.Fatalf("top-level nodes = %d, want 2", len(top))
	}

	branch, err := s.GetPreference("lucy", root)
	if err != nil {
		t.Fatal(err)
	}
	if len(branch.Children) != 1 || branch.Children[0].ID != child {
		t.Errorf("children = %+v, want the Tone node", branch.Children)
	}

	// Deleting the root removes the whole subtree.
	descendants, err := s.DeletePreference("lucy", root)
	if err != nil {
		t.Fatalf("DeletePreference: %v", err)
	}
	if descendants != 2 {
		t.Errorf("descendants deleted = %d, want 2", descendants)
	}
	if _, err := s.GetPreference("lucy", child); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("child survived subtree delete: err = %v", err)
	}
	if _, err := s.GetPreference("lucy", other); err != nil {
		t.Errorf("unrelated node deleted: %v", err)
	}
}

func TestDeletePreference_Missing(t *testing.T) {
	s := newTestStore(t)
	ensureAgent(t, s, "lucy")
	if _, err := s.DeletePreference("lucy", 999); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

// ─── Always-load ─────────────────────────────────────────────────────────────

func TestAlwaysLoad_FullTreeListing(t *testing.T) {
	s := newTestStore(t)
	ensureAgent(t, s, "lucy")
	ensureAgent(t, s, "scout")

	root, err := s.CreateAlwaysLoad("lucy", 0, "Identity", "You are Lucy.")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.CreateAlwaysLoad("lucy", root, "Standards", "Terse replies."); err != nil {
		t.Fatal(err)
	}
	if _, err := s.CreateAlwaysLoad("scout", 0, "other agent", ""); err != nil {
		t.Fatal(err)
	}

	// The whole tree ships at once, nested nodes included.
	nodes, err := s.ListAlwaysLoad("lucy")
	if err != nil {
		t.Fatal(err)
	}
	if len(nodes) != 2 {
		t.Fatalf("nodes = %d, want 2", len(nodes))
	}
	if nodes[0].Title != "Identity" || nodes[1].ParentID != root {
		t.Errorf("tree order wrong: %+v", nodes)
	}

	branch, err := s.GetAlwaysLoad("lucy", root)
	if err != nil {
		t.Fatal(err)
	}
	if len(branch.Children) != 1 || branch.Children[0].Title != "Standards" {
		t.Errorf("children = %+v, want the Standards node", branch.Children)
	}
}

func TestAlwaysLoad_UpdateAndSubtreeDelete(t *testing.T) {
	s := newTestStore(t)
	ensureAgent(t, s, "lucy")

	root, err := s.CreateAlwaysLoad("lucy", 0, "Identity", "draft")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.CreateAlwaysLoad("lucy", root, "Voice", ""); err != nil {
		t.Fatal(err)
	}

	title := "Core identity"
	node, err := s.UpdateAlwaysLoad("lucy", root, store.UpdateAlwaysLoadParams{Title: &title})
	if err != nil {
		t.Fatalf("UpdateAlwaysLoad: %v", err)
	}
	if node.Title != title || *node.Description != "draft" {
		t.Errorf("node = %+v, want retitled with description intact", node)
	}

	descendants, err := s.DeleteAlwaysLoad("lucy", root)
	if err != nil {
		t.Fatalf("DeleteAlwaysLoad: %v", err)
	}
	if descendants != 1 {
		t.Errorf("descendants deleted = %d, want 1", descendants)
	}
	if _, err := s.GetAlwaysLoad("lucy", root); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("node survived delete: err = %v", err)
	}
}

// ─── Hints ───────────────────────────────────────────────────────────────────

func TestHints_TreeLifecycle(t *testing.T) {
	s := newTestStore(t)

	root, err := s.CreateHint(0, "Deployments", "")
	if err != nil {
		t.Fatal(err)
	}
	child, err := s.CreateHint(root, "Rollback", "Use the previous tag.")
	if err != nil {
		t.Fatal(err)
	}

	hints, err := s.ListHints()
	if err != nil {
		t.Fatal(err)
	}
	if len(hints) != 2 {
		t.Fatalf("hints = %d, want 2", len(hints))
	}

	branch, err := s.GetHint(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(branch.Children) != 1 || branch.Children[0].ID != child {
		t.Errorf("children = %+v, want the Rollback node", branch.Children)
	}

	title := "Deploys"
	hint, err := s.UpdateHint(root, store.UpdateHintParams{Title: &title})
	if err != nil {
		t.Fatalf("UpdateHint: %v", err)
	}
	if hint.Title != title {
		t.Errorf("title = %q, want %q", hint.Title, title)
	}

	descendants, err := s.DeleteHint(root)
	if err != nil {
		t.Fatalf("DeleteHint: %v", err)
	}
	if descendants != 1 {
		t.Errorf("descendants deleted = %d, want 1", descendants)
	}
	if _, err := s.GetHint(child); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("child survived subtree delete: err = %v", err)
	}
}

func TestDeleteHint_Missing(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.DeleteHint(999); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

// ─── Projects ───────────────────────────────────────────────────────────────

func TestProjects_SectionsOrderedByPosition(t *testing.T) {
	s := newTestStore(t)

	pid, err := s.CreateProject("Website redesign", "Q3 initiative")
	if err != nil {
		t.Fatal(err)
	}

	second, err := s.CreateSection(pid, 0, "Launch", "", 2)
	if err != nil {
		t.Fatal(err)
	}
	first, err := s.CreateSection(pid, 0, "Discovery", "", 1)
	if err != nil {
		t.Fatal(err)
	}

	detail, err := s.GetProject(pid)
	if err != nil {
		t.Fatal(err)
	}
	if len(detail.Sections) != 2 {
		t.Fatalf("sections = %d, want 2", len(detail.Sections))
	}
	if detail.Sections[0].ID != first || detail.Sections[1].ID != second {
		t.Errorf("section order = [%d %d], want [%d %d]",
			detail.Sections[0].ID, detail.Sections[1].ID, first, second)
	}
}

func TestDeleteProject_RemovesSections(t *testing.T) {
	s := newTestStore(t)

	pid, err := s.CreateProject("Cleanup", "")
	if err != nil {
		t.Fatal(err)
	}
	root, err := s.CreateSection(pid, 0, "Phase 1", "", 0)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.CreateSection(pid, root, "Step A", "", 0); err != nil {
		t.Fatal(err)
	}

	n, err := s.DeleteProject(pid)
	if err != nil {
		t.Fatalf("DeleteProject: %v", err)
	}
	if n != 2 {
		t.Errorf("sections deleted = %d, want 2", n)
	}
	if _, err := s.GetProject(pid); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("project survived delete: err = %v", err)
	}
}

func TestDeleteSection_Subtree(t *testing.T) {
	s := newTestStore(t)

	pid, err := s.CreateProject("Tree", "")
	if err != nil {
		t.Fatal(err)
	}
	root, err := s.CreateSection(pid, 0, "Root", "", 0)
	if err != nil {
		t.Fatal(err)
	}
	mid, err := s.CreateSection(pid, root, "Mid", "", 0)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.CreateSection(pid, mid, "Leaf", "", 0); err != nil {
		t.Fatal(err)
	}
	keep, err := s.CreateSection(pid, 0, "Sibling", "", 0)
	if err != nil {
		t.Fatal(err)
	}

	descendants, err := s.DeleteSection(pid, root)
	if err != nil {
		t.Fatalf("DeleteSection: %v", err)
	}
	if descendants != 2 {
		t.Errorf("descendants deleted = %d, want 2", descendants)
	}

	detail, err := s.GetProject(pid)
	if err != nil {
		t.Fatal(err)
	}
	if len(detail.Sections) != 1 || detail.Sections[0].ID != keep {
		t.Errorf("remaining sections = %+v, want only the sibling", detail.Sections)
	}
}

// ─── Wikis ──────────────────────────────────────────────────────────────────

func TestWikiSections_TagsRoundTrip(t *testing.T) {
	s := newTestStore(t)

	wid, err := s.CreateWiki("Infrastructure", "")
	if err != nil {
		t.Fatal(err)
	}
	sid, err := s.CreateWikiSection(wid, 0, "Backups", "nightly to S3", []string{"ops", "aws"})
	if err != nil {
		t.Fatal(err)
	}

	branch, err := s.GetWikiSection(wid, sid)
	if err != nil {
		t.Fatal(err)
	}
	if len(branch.Section.Tags) != 2 || branch.Section.Tags[0] != "aws" || branch.Section.Tags[1] != "ops" {
		t.Errorf("tags = %v, want [aws ops] (sorted)", branch.Section.Tags)
	}

	// A non-nil tag set replaces the previous one.
	updated, err := s.UpdateWikiSection(wid, sid, store.UpdateWikiSectionParams{
		Tags: []string{"ops"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(updated.Tags) != 1 || updated.Tags[0] != "ops" {
		t.Errorf("tags after replace = %v, want [ops]", updated.Tags)
	}

	tags, err := s.ListWikiTags(wid)
	if err != nil {
		t.Fatal(err)
	}
	if len(tags) != 1 || tags[0] != "ops" {
		t.Errorf("wiki tags = %v, want [ops]", tags)
	}
}

func TestSearchWikiTag_CrossWiki(t *testing.T) {
	s := newTestStore(t)

	w1, err := s.CreateWiki("Home", "")
	if err != nil {
		t.Fatal(err)
	}
	w2, err := s.CreateWiki("Work", "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.CreateWikiSection(w1, 0, "Router setup", "", []string{"network"}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.CreateWikiSection(w2, 0, "VPN access", "", []string{"network", "security"}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.CreateWikiSection(w2, 0, "Expense policy", "", []string{"finance"}); err != nil {
		t.Fatal(err)
	}

	hits, err := s.SearchWikiTag("network")
	if err != nil {
		t.Fatalf("SearchWikiTag: %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("hits = %d, want 2", len(hits))
	}
	if hits[0].WikiID != w1 || hits[0].WikiTitle != "Home" {
		t.Errorf("first hit wiki = %d %q", hits[0].WikiID, hits[0].WikiTitle)
	}
	if hits[1].WikiID != w2 {
		t.Errorf("second hit wiki = %d", hits[1].WikiID)
	}
	if len(hits[1].Tags) != 2 {
		t.Errorf("second hit tags = %v, want both tags attached", hits[1].Tags)
	}
}

func TestSearchWikiSections_FTS(t *testing.T) {
	s := newTestStore(t)

	wid, err := s.CreateWiki("Recipes", "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.CreateWikiSection(wid, 0, "Sourdough starter", "feed twice daily", nil); err != nil {
		t.Fatal(err)
	}
	if _, err := s.CreateWikiSection(wid, 0, "Pizza dough", "cold ferment overnight", nil); err != nil {
		t.Fatal(err)
	}

	hits, err := s.SearchWikiSections("sourdough", 10)
	if err != nil {
		t.Fatalf("SearchWikiSections: %v", err)
	}
	if len(hits) != 1 || hits[0].Title != "Sourdough starter" {
		t.Errorf("hits = %+v, want the sourdough section", hits)
	}
}

func TestDeleteWikiSection_SubtreeAndTags(t *testing.T) {
	s := newTestStore(t)

	wid, err := s.CreateWiki("Garden", "")
	if err != nil {
		t.Fatal(err)
	}
	root, err := s.CreateWikiSection(wid, 0, "Vegetables", "", []string{"plants"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.CreateWikiSection(wid, root, "Tomatoes", "", []string{"plants", "summer"}); err != nil {
		t.Fatal(err)
	}

	descendants, err := s.DeleteWikiSection(wid, root)
	if err != nil {
		t.Fatalf("DeleteWikiSection: %v", err)
	}
	if descendants != 1 {
		t.Errorf("descendants deleted = %d, want 1", descendants)
	}

	tags, err := s.ListWikiTags(wid)
	if err != nil {
		t.Fatal(err)
	}
	if len(tags) != 0 {
		t.Errorf("tags after subtree delete = %v, want none", tags)
	}
}

// ─── Sessions / Handoffs ────────────────────────────────────────────────────

func TestSessions_LastWinsByStart(t *testing.T) {
	s := newTestStore(t)
	ensureAgent(t, s, "lucy")

	first, err := s.CreateSession("lucy", "alpha")
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	second, err := s.CreateSession("lucy", "beta")
	if err != nil {
		t.Fatal(err)
	}
	if first.ID == second.ID {
		t.Fatal("session IDs should be unique")
	}

	last, err := s.LastSession("lucy")
	if err != nil {
		t.Fatalf("LastSession: %v", err)
	}
	if last == nil || last.ID != second.ID {
		t.Errorf("last session = %+v, want the beta session", last)
	}
	if last.Project == nil || *last.Project != "beta" {
		t.Errorf("project = %v, want beta", last.Project)
	}
}

func TestLastSession_NoneReturnsNil(t *testing.T) {
	s := newTestStore(t)
	ensureAgent(t, s, "lucy")

	last, err := s.LastSession("lucy")
	if err != nil {
		t.Fatalf("LastSession: %v", err)
	}
	if last != nil {
		t.Errorf("last = %+v, want nil", last)
	}
}

func TestHandoffs_PickupLifecycle(t *testing.T) {
	s := newTestStore(t)
	ensureAgent(t, s, "lucy")

	id, err := s.CreateHandoff("lucy", "Morning briefing", "Summarize overnight alerts", "scout")
	if err != nil {
		t.Fatalf("CreateHandoff: %v", err)
	}

	pending, err := s.ListPendingHandoffs("lucy")
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 1 || pending[0].ID != id {
		t.Fatalf("pending = %+v, want the briefing", pending)
	}
	if pending[0].CreatedBy == nil || *pending[0].CreatedBy != "scout" {
		t.Errorf("created_by = %v", pending[0].CreatedBy)
	}

	picked, err := s.PickupHandoff("lucy", id)
	if err != nil {
		t.Fatalf("PickupHandoff: %v", err)
	}
	if picked.PickedUpAt == nil {
		t.Error("PickedUpAt not set after pickup")
	}

	// A second pickup fails; the handoff stays readable.
	if _, err := s.PickupHandoff("lucy", id); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("second pickup err = %v, want ErrNotFound", err)
	}
	if _, err := s.GetHandoff("lucy", id); err != nil {
		t.Errorf("GetHandoff after pickup: %v", err)
	}

	pending, err = s.ListPendingHandoffs("lucy")
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 0 {
		t.Errorf("pending after pickup = %d, want 0", len(pending))
	}

	if err := s.DeleteHandoff("lucy", id); err != nil {
		t.Fatalf("DeleteHandoff: %v", err)
	}
	if _, err := s.GetHandoff("lucy", id); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("after delete, err = %v, want ErrNotFound", err)
	}
}

// ─── Context / Status ───────────────────────────────────────────────────────

func TestGetContext_Manifests(t *testing.T) {
	s := newTestStore(t)
	ensureAgent(t, s, "lucy")
	ensureAgent(t, s, "scout")

	if _, err := s.CreateMemory("lucy", "m1", "body"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.CreateMemory("scout", "other-agent memory", ""); err != nil {
		t.Fatal(err)
	}
	root, err := s.CreatePreference("lucy", 0, "top", "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.CreatePreference("lucy", root, "nested", ""); err != nil {
		t.Fatal(err)
	}
	if _, err := s.CreateProject("proj", ""); err != nil {
		t.Fatal(err)
	}
	alRoot, err := s.CreateAlwaysLoad("lucy", 0, "Identity", "You are Lucy.")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.CreateAlwaysLoad("lucy", alRoot, "Voice", ""); err != nil {
		t.Fatal(err)
	}

	ctx, err := s.GetContext("lucy")
	if err != nil {
		t.Fatalf("GetContext: %v", err)
	}
	// Always-load ships the whole tree, parent IDs included.
	if len(ctx.AlwaysLoad) != 2 || ctx.AlwaysLoad[1].ParentID != alRoot {
		t.Errorf("always_load = %+v", ctx.AlwaysLoad)
	}
	if len(ctx.Memories) != 1 || ctx.Memories[0].Title != "m1" {
		t.Errorf("memories = %+v", ctx.Memories)
	}
	// Only top-level preference nodes appear in the manifest.
	if len(ctx.PreferencesManifest) != 1 || ctx.PreferencesManifest[0].Title != "top" {
		t.Errorf("preferences manifest = %+v", ctx.PreferencesManifest)
	}
	if len(ctx.ProjectsManifest) != 1 {
		t.Errorf("projects manifest = %+v", ctx.ProjectsManifest)
	}
}

func TestGetContext_CreatesAgentOnFirstUse(t *testing.T) {
	s := newTestStore(t)

	ctx, err := s.GetContext("fresh")
	if err != nil {
		t.Fatalf("GetContext on new agent: %v", err)
	}
	if len(ctx.Memories) != 0 {
		t.Errorf("memories = %+v, want empty", ctx.Memories)
	}
	if _, err := s.GetAgent("fresh"); err != nil {
		t.Errorf("agent should exist after GetContext: %v", err)
	}
}

func TestCreateSession_CreatesAgentOnFirstUse(t *testing.T) {
	s := newTestStore(t)

	sess, err := s.CreateSession("fresh", "")
	if err != nil {
		t.Fatalf("CreateSession on new agent: %v", err)
	}
	if sess.Agent != "fresh" {
		t.Errorf("agent = %q, want %q", sess.Agent, "fresh")
	}
}

func TestGetStatus_Counts(t *testing.T) {
	s := newTestStore(t)
	ensureAgent(t, s, "lucy")

	if _, err := s.CreateMemory("lucy", "m", ""); err != nil {
		t.Fatal(err)
	}
	if _, err := s.CreateSession("lucy", ""); err != nil {
		t.Fatal(err)
	}
	hid, err := s.CreateHandoff("lucy", "h", "p", "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.CreateHandoff("lucy", "h2", "p2", ""); err != nil {
		t.Fatal(err)
	}
	if _, err := s.PickupHandoff("lucy", hid); err != nil {
		t.Fatal(err)
	}

	st, err := s.GetStatus()
	if err != nil {
		t.Fatalf("GetStatus: %v", err)
	}
	if st.Agents != 1 || st.Memories != 1 || st.Sessions != 1 {
		t.Errorf("counts = %+v", st)
	}
	if st.PendingHandoffs != 1 {
		t.Errorf("pending handoffs = %d, want 1", st.PendingHandoffs)
	}
}
