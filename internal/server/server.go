// Package server wires all MCP components and creates the server instance.
//
// This is the composition root (DIP): it creates concrete implementations
// and injects them into the tools/resources that depend on abstractions.
// No business logic lives here — only wiring.
package server

import (
	"fmt"
	"log"

	"github.com/RickAtSnowcap/lucyapi/internal/config"
	"github.com/RickAtSnowcap/lucyapi/internal/docs"
	"github.com/RickAtSnowcap/lucyapi/internal/doctools"
	"github.com/RickAtSnowcap/lucyapi/internal/prompts"
	"github.com/RickAtSnowcap/lucyapi/internal/resources"
	"github.com/RickAtSnowcap/lucyapi/internal/store"
	"github.com/RickAtSnowcap/lucyapi/internal/tools"
	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates and configures the MCP server with all tools and resources
// registered. This is the single place where all dependencies are resolved.
//
// The returned cleanup function closes the context store's database
// connection and must be called on shutdown (typically via defer).
// It is always non-nil and safe to call.
func New(cfg config.Config) (*server.MCPServer, func(), error) {
	// --- Create shared dependencies ---

	st, err := store.New(cfg.DataDir)
	if err != nil {
		return nil, noop, fmt.Errorf("opening context store: %w", err)
	}
	cleanup := func() {
		if err := st.Close(); err != nil {
			log.Printf("WARNING: context store close: %v", err)
		}
	}

	// --- Create the MCP server ---

	s := server.NewMCPServer(
		"lucyapi",
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	registerContextTools(s, st)

	// --- Register document tools ---
	//
	// Documents are an independent subsystem: without a configured token
	// there is no remote service to talk to, so we log a warning and skip
	// registration — the context store tools keep working.

	if cfg.DocsToken == "" {
		log.Printf("WARNING: document subsystem disabled: no token configured")
	} else {
		svc := docs.NewService(docs.NewHTTPClient(cfg.DocsBaseURL, cfg.DocsToken))
		registerDocTools(s, svc, cfg.DefaultBranding)
	}

	// --- Register prompts ---

	startPrompt := prompts.NewStartPrompt()
	s.AddPrompt(startPrompt.Definition(), startPrompt.Handle)

	statusPrompt := prompts.NewStatusPrompt()
	s.AddPrompt(statusPrompt.Definition(), statusPrompt.Handle)

	// --- Register resources ---

	resourceHandler := resources.NewHandler(st)
	s.AddResource(resourceHandler.StatusResource(), resourceHandler.HandleStatus)

	return s, cleanup, nil
}

// noop is a no-op cleanup function used when store init failed.
func noop() {}

// registerContextTools registers every context store MCP tool.
func registerContextTools(s *server.MCPServer, st *store.Store) {
	// --- Utility ---
	timeTool := tools.NewTimeTool()
	s.AddTool(timeTool.Definition(), timeTool.Handle)

	contextTool := tools.NewContextTool(st)
	s.AddTool(contextTool.Definition(), contextTool.Handle)

	// --- Always-load ---
	listAlwaysLoad := tools.NewListAlwaysLoadTool(st)
	s.AddTool(listAlwaysLoad.Definition(), listAlwaysLoad.Handle)

	getAlwaysLoad := tools.NewGetAlwaysLoadTool(st)
	s.AddTool(getAlwaysLoad.Definition(), getAlwaysLoad.Handle)

	createAlwaysLoad := tools.NewCreateAlwaysLoadTool(st)
	s.AddTool(createAlwaysLoad.Definition(), createAlwaysLoad.Handle)

	updateAlwaysLoad := tools.NewUpdateAlwaysLoadTool(st)
	s.AddTool(updateAlwaysLoad.Definition(), updateAlwaysLoad.Handle)

	deleteAlwaysLoad := tools.NewDeleteAlwaysLoadTool(st)
	s.AddTool(deleteAlwaysLoad.Definition(), deleteAlwaysLoad.Handle)

	// --- Memories ---
	listMemories := tools.NewListMemoriesTool(st)
	s.AddTool(listMemories.Definition(), listMemories.Handle)

	getMemory := tools.NewGetMemoryTool(st)
	s.AddTool(getMemory.Definition(), getMemory.Handle)

	createMemory := tools.NewCreateMemoryTool(st)
	s.AddTool(createMemory.Definition(), createMemory.Handle)

	updateMemory := tools.NewUpdateMemoryTool(st)
	s.AddTool(updateMemory.Definition(), updateMemory.Handle)

	deleteMemory := tools.NewDeleteMemoryTool(st)
	s.AddTool(deleteMemory.Definition(), deleteMemory.Handle)

	searchMemories := tools.NewSearchMemoriesTool(st)
	s.AddTool(searchMemories.Definition(), searchMemories.Handle)

	// --- Preferences ---
	listPreferences := tools.NewListPreferencesTool(st)
	s.AddTool(listPreferences.Definition(), listPreferences.Handle)

	getPreference := tools.NewGetPreferenceTool(st)
	s.AddTool(getPreference.Definition(), getPreference.Handle)

	createPreference := tools.NewCreatePreferenceTool(st)
	s.AddTool(createPreference.Definition(), createPreference.Handle)

	updatePreference := tools.NewUpdatePreferenceTool(st)
	s.AddTool(updatePreference.Definition(), updatePreference.Handle)

	deletePreference := tools.NewDeletePreferenceTool(st)
	s.AddTool(deletePreference.Definition(), deletePreference.Handle)

	// --- Hints ---
	listHints := tools.NewListHintsTool(st)
	s.AddTool(listHints.Definition(), listHints.Handle)

	getHint := tools.NewGetHintTool(st)
	s.AddTool(getHint.Definition(), getHint.Handle)

	createHint := tools.NewCreateHintTool(st)
	s.AddTool(createHint.Definition(), createHint.Handle)

	updateHint := tools.NewUpdateHintTool(st)
	s.AddTool(updateHint.Definition(), updateHint.Handle)

	deleteHint := tools.NewDeleteHintTool(st)
	s.AddTool(deleteHint.Definition(), deleteHint.Handle)

	// --- Projects ---
	listProjects := tools.NewListProjectsTool(st)
	s.AddTool(listProjects.Definition(), listProjects.Handle)

	getProject := tools.NewGetProjectTool(st)
	s.AddTool(getProject.Definition(), getProject.Handle)

	createProject := tools.NewCreateProjectTool(st)
	s.AddTool(createProject.Definition(), createProject.Handle)

	updateProject := tools.NewUpdateProjectTool(st)
	s.AddTool(updateProject.Definition(), updateProject.Handle)

	deleteProject := tools.NewDeleteProjectTool(st)
	s.AddTool(deleteProject.Definition(), deleteProject.Handle)

	createSection := tools.NewCreateSectionTool(st)
	s.AddTool(createSection.Definition(), createSection.Handle)

	getSection := tools.NewGetSectionTool(st)
	s.AddTool(getSection.Definition(), getSection.Handle)

	updateSection := tools.NewUpdateSectionTool(st)
	s.AddTool(updateSection.Definition(), updateSection.Handle)

	deleteSection := tools.NewDeleteSectionTool(st)
	s.AddTool(deleteSection.Definition(), deleteSection.Handle)

	// --- Wikis ---
	listWikis := tools.NewListWikisTool(st)
	s.AddTool(listWikis.Definition(), listWikis.Handle)

	getWiki := tools.NewGetWikiTool(st)
	s.AddTool(getWiki.Definition(), getWiki.Handle)

	createWiki := tools.NewCreateWikiTool(st)
	s.AddTool(createWiki.Definition(), createWiki.Handle)

	updateWiki := tools.NewUpdateWikiTool(st)
	s.AddTool(updateWiki.Definition(), updateWiki.Handle)

	deleteWiki := tools.NewDeleteWikiTool(st)
	s.AddTool(deleteWiki.Definition(), deleteWiki.Handle)

	createWikiSection := tools.NewCreateWikiSectionTool(st)
	s.AddTool(createWikiSection.Definition(), createWikiSection.Handle)

	getWikiSection := tools.NewGetWikiSectionTool(st)
	s.AddTool(getWikiSection.Definition(), getWikiSection.Handle)

	updateWikiSection := tools.NewUpdateWikiSectionTool(st)
	s.AddTool(updateWikiSection.Definition(), updateWikiSection.Handle)

	deleteWikiSection := tools.NewDeleteWikiSectionTool(st)
	s.AddTool(deleteWikiSection.Definition(), deleteWikiSection.Handle)

	listWikiTags := tools.NewListWikiTagsTool(st)
	s.AddTool(listWikiTags.Definition(), listWikiTags.Handle)

	searchWikiTag := tools.NewSearchWikiTagTool(st)
	s.AddTool(searchWikiTag.Definition(), searchWikiTag.Handle)

	searchWikiSections := tools.NewSearchWikiSectionsTool(st)
	s.AddTool(searchWikiSections.Definition(), searchWikiSections.Handle)

	// --- Sessions & handoffs ---
	createSession := tools.NewCreateSessionTool(st)
	s.AddTool(createSession.Definition(), createSession.Handle)

	lastSession := tools.NewLastSessionTool(st)
	s.AddTool(lastSession.Definition(), lastSession.Handle)

	createHandoff := tools.NewCreateHandoffTool(st)
	s.AddTool(createHandoff.Definition(), createHandoff.Handle)

	listHandoffs := tools.NewListHandoffsTool(st)
	s.AddTool(listHandoffs.Definition(), listHandoffs.Handle)

	getHandoff := tools.NewGetHandoffTool(st)
	s.AddTool(getHandoff.Definition(), getHandoff.Handle)

	pickupHandoff := tools.NewPickupHandoffTool(st)
	s.AddTool(pickupHandoff.Definition(), pickupHandoff.Handle)

	deleteHandoff := tools.NewDeleteHandoffTool(st)
	s.AddTool(deleteHandoff.Definition(), deleteHandoff.Handle)
}

// registerDocTools registers the formatted document MCP tools.
func registerDocTools(s *server.MCPServer, svc *docs.Service, branding string) {
	createDoc := doctools.NewCreateDocTool(svc, branding)
	s.AddTool(createDoc.Definition(), createDoc.Handle)

	readDoc := doctools.NewReadDocTool(svc)
	s.AddTool(readDoc.Definition(), readDoc.Handle)

	updateDoc := doctools.NewUpdateDocTool(svc, branding)
	s.AddTool(updateDoc.Definition(), updateDoc.Handle)

	appendDoc := doctools.NewAppendDocTool(svc, branding)
	s.AddTool(appendDoc.Definition(), appendDoc.Handle)
}

// serverInstructions returns the system instructions that tell the AI
// how to use LucyAPI effectively.
func serverInstructions() string {
	return `You have access to LucyAPI, a persistent context and document MCP server.

## WHAT LUCYAPI STORES

LucyAPI keeps long-lived context across conversations, scoped per agent:
- Always-load: core identity and standards, injected at every session start
- Memories: facts about the user worth remembering (searchable full-text)
- Preferences: how the user likes things done, organized as a tree
- Hints: operator guidance shared across all agents
- Projects: ongoing work broken into ordered, nested sections
- Wikis: reference knowledge in tagged, nested sections (searchable)
- Sessions and handoffs: work continuity between conversations

## SESSION START

At the start of each conversation:
1. Call get_context with your agent name — it returns always-load titles and
   recent memories plus the preference and project manifests (titles and IDs
   only), and creates the agent on first use
2. Call get_handoffs — if a pending handoff exists, call pickup_handoff and
   follow its prompt
3. Call create_session to record that a new session started
4. Drill into manifests with get_preference / get_project only when relevant

## WHEN TO SAVE

Call create_memory proactively when the user reveals something durable:
preferences stated in passing, facts about their work or life, corrections
to things you got wrong. Keep titles short and searchable; put detail in
the description.

Use update_memory / update_preference for partial edits — only the fields
you pass change. Deleting a preference, project section, or wiki section
removes its whole subtree.

## HANDOFFS

Before ending a session with unfinished work, call create_handoff with a
prompt detailed enough for a future session to continue without the user
repeating themselves. A handoff can be picked up exactly once.

## DOCUMENTS

When document tools are available, create_doc / update_doc / append_doc
accept a JSON array of content blocks:
- {"type":"heading","level":1,"text":"Title"}
- {"type":"paragraph","text":"Inline **bold**, *italic*, [links](https://...)"}
- {"type":"list","style":"bullet","items":["one","two"]} (or "numbered")
- {"type":"table","headers":["A","B"],"rows":[["1","2"]]}
- {"type":"page_break"}
- {"type":"image","uri":"https://...","width_pt":320}

update_doc replaces the whole body; append_doc adds to the end. Branding
defaults to the configured profile — pass "none" to disable it.`
}
