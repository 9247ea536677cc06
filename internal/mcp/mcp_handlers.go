package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/huangsam/clonecache/core"
	"github.com/huangsam/clonecache/internal/contract"
	"github.com/huangsam/clonecache/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     *core.Manager
}

func (h *toolHandler) handleFetchRepo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	reference := request.GetString("reference", "")
	if reference == "" {
		return mcp.NewToolResultError("reference is required"), nil
	}

	localPath, err := h.mgr.Acquire(ctx, reference)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("fetch failed: %v", err)), nil
	}

	result := struct {
		LocalPath string   `json:"localPath"`
		Excludes  []string `json:"excludePatterns"`
	}{
		LocalPath: localPath,
		Excludes:  h.baseCfg.Excludes,
	}
	jsonData, _ := json.MarshalIndent(result, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleListCachedRepos(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	entries := h.mgr.SortedByRecency()

	now := time.Now()
	type listedEntry struct {
		Label string `json:"label"`
		schema.CacheEntry
	}
	listed := make([]listedEntry, len(entries))
	for i, entry := range entries {
		listed[i] = listedEntry{
			Label:      contract.GetPlainAgeLabel(entry.Age(now)),
			CacheEntry: entry,
		}
	}
	jsonData, _ := json.MarshalIndent(listed, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleEvictRepo(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	reference := request.GetString("reference", "")
	if reference == "" {
		return mcp.NewToolResultError("reference is required"), nil
	}

	if err := h.mgr.Remove(reference); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("eviction failed: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("evicted %s", reference)), nil
}

func (h *toolHandler) handlePruneCache(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	maxAge := h.baseCfg.CleanupAge
	if days := request.GetInt("days", 0); days > 0 {
		maxAge = time.Duration(days) * 24 * time.Hour
	}

	evicted, err := h.mgr.EvictStale(maxAge)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("prune failed: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("evicted %d stale repositories", evicted)), nil
}

func (h *toolHandler) handleCacheStatus(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	status := h.mgr.Status()
	jsonData, _ := json.MarshalIndent(status, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}
