package prompts

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// StatusPrompt handles the lucy-status MCP prompt.
// It instructs the AI to read and present the current store contents.
type StatusPrompt struct{}

// NewStatusPrompt creates a StatusPrompt.
func NewStatusPrompt() *StatusPrompt {
	return &StatusPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *StatusPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("lucy-status",
		mcp.WithPromptDescription(
			"Check what the context store currently holds: entity counts, "+
				"active projects, and pending handoffs.",
		),
	)
}

// Handle processes the lucy-status prompt request.
func (p *StatusPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	return &mcp.GetPromptResult{
		Description: "Context Store Status",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(
					"Please read the `lucy://store/status` resource to check the context store.\n\n" +
						"Then:\n" +
						"1. Show me the entity counts in a clear, compact format\n" +
						"2. Run `get_projects` and list the active projects by title\n" +
						"3. Flag any pending handoffs and offer to pick them up\n" +
						"4. Suggest cleanup if anything looks stale",
				),
			},
		},
	}, nil
}
