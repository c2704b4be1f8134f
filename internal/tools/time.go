package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
)

// TimeTool handles the get_time MCP tool.
type TimeTool struct{}

// NewTimeTool creates a TimeTool.
func NewTimeTool() *TimeTool {
	return &TimeTool{}
}

// Definition returns the MCP tool definition for get_time.
func (t *TimeTool) Definition() mcp.Tool {
	return mcp.NewTool("get_time",
		mcp.WithDescription(
			"Get the current date and time. Call this whenever you need to reason about "+
				"dates, schedules, or how long ago something happened.",
		),
		mcp.WithString("timezone",
			mcp.Description("IANA timezone name (e.g. America/Denver). Defaults to UTC."),
		),
	)
}

// Handle processes the get_time tool call.
func (t *TimeTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	loc := time.UTC
	if tz := req.GetString("timezone", ""); tz != "" {
		l, err := time.LoadLocation(tz)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("unknown timezone %q", tz)), nil
		}
		loc = l
	}

	now := time.Now().In(loc)
	return jsonResult(map[string]string{
		"iso":      now.Format(time.RFC3339),
		"weekday":  now.Weekday().String(),
		"timezone": loc.String(),
	}), nil
}
