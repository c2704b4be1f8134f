// Package tools provides MCP tool handlers for the context store.
//
// Each tool handler follows the same pattern:
// - A struct with dependencies (store.Store) injected via constructor
// - Definition() returns the mcp.Tool schema
// - Handle() processes the request and returns a result
//
// Input problems are reported as tool result errors, never Go errors.
package tools

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/RickAtSnowcap/lucyapi/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
)

// int64Arg extracts an integer argument from a tool request, returning
// defaultVal if the key is missing or not a number (JSON numbers are float64).
func int64Arg(req mcp.CallToolRequest, key string, defaultVal int64) int64 {
	v, ok := req.GetArguments()[key].(float64)
	if !ok {
		return defaultVal
	}
	return int64(v)
}

// intArg is int64Arg for plain int arguments.
func intArg(req mcp.CallToolRequest, key string, defaultVal int) int {
	return int(int64Arg(req, key, int64(defaultVal)))
}

// stringPtrArg returns a pointer to a string argument, or nil when the
// key is absent. Partial updates distinguish "not provided" from "".
func stringPtrArg(req mcp.CallToolRequest, key string) *string {
	v, ok := req.GetArguments()[key].(string)
	if !ok {
		return nil
	}
	return &v
}

// stringSliceArg extracts a string array argument, or nil when absent.
func stringSliceArg(req mcp.CallToolRequest, key string) []string {
	raw, ok := req.GetArguments()[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// jsonResult marshals a payload as an indented JSON tool result.
func jsonResult(v any) *mcp.CallToolResult {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err))
	}
	return mcp.NewToolResultText(string(data))
}

// storeError maps store failures onto tool result errors, giving
// ErrNotFound a clean message.
func storeError(context string, err error) *mcp.CallToolResult {
	if errors.Is(err, store.ErrNotFound) {
		return mcp.NewToolResultError(fmt.Sprintf("%s: not found", context))
	}
	return mcp.NewToolResultError(fmt.Sprintf("%s: %v", context, err))
}
