// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/clonecache/core"
	"github.com/huangsam/clonecache/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the Clonecache MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr *core.Manager) *server.MCPServer {
	s := server.NewMCPServer(
		"Clonecache Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: fetch_repo ---
	s.AddTool(mcp.NewTool("fetch_repo",
		mcp.WithDescription("Fetch a git repository into the local cache and return its clone path. Re-uses an existing clone when one is cached."),
		mcp.WithString("reference", mcp.Description("Repository reference: owner/repo shorthand, web URL, or SSH URL."), mcp.Required()),
	), h.handleFetchRepo)

	// --- 2. Tool: list_cached_repos ---
	s.AddTool(mcp.NewTool("list_cached_repos",
		mcp.WithDescription("List all cached repositories with their clone paths, sizes, and access times."),
	), h.handleListCachedRepos)

	// --- 3. Tool: evict_repo ---
	s.AddTool(mcp.NewTool("evict_repo",
		mcp.WithDescription("Remove a single repository from the cache, deleting its clone from disk."),
		mcp.WithString("reference", mcp.Description("Repository reference: owner/repo shorthand, web URL, or SSH URL."), mcp.Required()),
	), h.handleEvictRepo)

	// --- 4. Tool: prune_cache ---
	s.AddTool(mcp.NewTool("prune_cache",
		mcp.WithDescription("Evict repositories that have not been accessed within the staleness window."),
		mcp.WithNumber("days", mcp.Description("Staleness window in days. Defaults to the configured cleanup age.")),
	), h.handlePruneCache)

	// --- 5. Tool: cache_status ---
	s.AddTool(mcp.NewTool("cache_status",
		mcp.WithDescription("Report a summary of the cache: entry count, capacity, total size, and store locations."),
	), h.handleCacheStatus)

	return s
}

// StartMCPServer starts the Clonecache MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr *core.Manager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
