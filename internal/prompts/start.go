// Package prompts implements MCP prompt handlers for the context server.
//
// MCP prompts are user-triggered workflows (like slash commands) that
// instruct the AI to execute a specific sequence. Unlike tools (which
// the AI calls), prompts are initiated by the user.
package prompts

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// StartPrompt handles the lucy-start MCP prompt.
// It guides the AI through the session start ritual: load context,
// pick up pending handoffs, record the session.
type StartPrompt struct{}

// NewStartPrompt creates a StartPrompt.
func NewStartPrompt() *StartPrompt {
	return &StartPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *StartPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("lucy-start",
		mcp.WithPromptDescription(
			"Start a session against the context store: load the agent's "+
				"memories and manifests, pick up any pending handoff, and "+
				"record the new session.",
		),
		mcp.WithArgument("agent",
			mcp.ArgumentDescription("Agent name to load context for"),
		),
		mcp.WithArgument("project",
			mcp.ArgumentDescription("Project this session will focus on (optional)"),
		),
	)
}

// Handle processes the lucy-start prompt request.
func (p *StartPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	agent := "assistant"
	if args := req.Params.Arguments; args != nil {
		if a, ok := args["agent"]; ok && a != "" {
			agent = a
		}
	}

	project := ""
	if args := req.Params.Arguments; args != nil {
		if pr, ok := args["project"]; ok {
			project = pr
		}
	}

	projectStep := ""
	if project != "" {
		projectStep = fmt.Sprintf(" with project='%s'", project)
	}

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Start session for agent: %s", agent),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(fmt.Sprintf(
					"Start a new session for agent '%s'.\n\n"+
						"Please:\n"+
						"1. Run `get_context` with agent='%s' and summarize what you remember about me\n"+
						"2. Run `get_handoffs` with agent='%s' — if anything is pending, run `pickup_handoff` and follow its prompt\n"+
						"3. Run `create_session` with agent='%s'%s\n"+
						"4. Tell me what you picked up and ask what we're working on",
					agent, agent, agent, agent, projectStep,
				)),
			},
		},
	}, nil
}
