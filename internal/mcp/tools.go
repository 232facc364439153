package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dshills/docshard-mcp/internal/analyzer"
	"github.com/dshills/docshard-mcp/internal/batch"
	"github.com/dshills/docshard-mcp/internal/merger"
	"github.com/dshills/docshard-mcp/internal/render"
	"github.com/dshills/docshard-mcp/internal/storage"
	"github.com/dshills/docshard-mcp/pkg/types"
)

// MCP error codes
const (
	ErrorCodeInvalidParams  = -32602 // Invalid method parameters
	ErrorCodeInternalError  = -32603 // Internal JSON-RPC error
	ErrorCodePlanNotFound   = -32001 // Plan ID does not exist in storage
	ErrorCodeEmptyDocument  = -32002 // Document parameter is empty
	ErrorCodeShardingFailed = -32003 // Decomposition pipeline reported failure
)

// handleAnalyzeDocument handles the analyze_document tool invocation
func (s *Server) handleAnalyzeDocument(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	document, ok := args["document"].(string)
	if !ok || document == "" {
		return nil, newMCPError(ErrorCodeEmptyDocument, "document parameter is required and cannot be empty", map[string]interface{}{
			"param":  "document",
			"reason": "missing or empty",
		})
	}

	analysis := analyzer.Analyze(document)

	response := map[string]interface{}{
		"analysis": analysisPayload(analysis),
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleShardDocument handles the shard_document tool invocation
func (s *Server) handleShardDocument(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	document, ok := args["document"].(string)
	if !ok || document == "" {
		return nil, newMCPError(ErrorCodeEmptyDocument, "document parameter is required and cannot be empty", map[string]interface{}{
			"param":  "document",
			"reason": "missing or empty",
		})
	}

	opts, err := shardOptionsFromArgs(args)
	if err != nil {
		return nil, err
	}

	result := s.planner.Plan(document, opts)
	if !result.Success {
		return nil, newMCPError(ErrorCodeShardingFailed, "sharding failed", map[string]interface{}{
			"error":    result.Err,
			"analysis": analysisPayload(result.Analysis),
		})
	}

	response := map[string]interface{}{
		"analysis":          analysisPayload(result.Analysis),
		"shards":            shardListPayload(result.Plan),
		"total_tokens":      result.Plan.TotalTokens,
		"recommended_order": result.Plan.RecommendedOrder,
		"cross_references":  crossRefPayload(result.Plan.CrossReferences),
		"summary":           render.PlanSummary(result.Plan),
	}

	if save, _ := args["save"].(bool); save {
		record := &storage.PlanRecord{
			Name:    getStringDefault(args, "name", ""),
			Options: opts,
			Plan:    result.Plan,
		}
		if err := s.storage.SavePlan(ctx, record); err != nil {
			return nil, newMCPError(ErrorCodeInternalError, "failed to save plan", map[string]interface{}{
				"error": err.Error(),
			})
		}
		response["plan_id"] = record.ID
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleShardFiles handles the shard_files tool invocation
func (s *Server) handleShardFiles(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	paths, err := getStringSlice(args, "paths")
	if err != nil || len(paths) == 0 {
		return nil, newMCPError(ErrorCodeInvalidParams, "paths parameter is required", map[string]interface{}{
			"param":  "paths",
			"reason": "missing or empty",
		})
	}
	for _, path := range paths {
		if !filepath.IsAbs(path) {
			return nil, newMCPError(ErrorCodeInvalidParams, "paths must be absolute", map[string]interface{}{
				"param": "paths",
				"value": path,
			})
		}
	}

	opts, err := shardOptionsFromArgs(args)
	if err != nil {
		return nil, err
	}

	config := &batch.Config{
		Workers:   getIntDefault(args, "workers", 0),
		SavePlans: getBoolDefault(args, "save", true),
	}

	stats, err := s.batch.RunFiles(ctx, paths, opts, config)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "batch run failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	items := make([]map[string]interface{}, 0, len(stats.Items))
	for _, item := range stats.Items {
		entry := map[string]interface{}{
			"name":    item.Name,
			"success": item.Result != nil && item.Result.Success,
		}
		if item.PlanID != "" {
			entry["plan_id"] = item.PlanID
		}
		if item.Result != nil && item.Result.Success {
			entry["shards"] = len(item.Result.Plan.Shards)
			entry["total_tokens"] = item.Result.Plan.TotalTokens
		}
		items = append(items, entry)
	}

	response := map[string]interface{}{
		"documents_planned": stats.DocumentsPlanned,
		"documents_failed":  stats.DocumentsFailed,
		"total_shards":      stats.TotalShards,
		"total_tokens":      stats.TotalTokens,
		"duration_ms":       stats.Duration.Milliseconds(),
		"items":             items,
	}
	if len(stats.ErrorMessages) > 0 {
		response["errors"] = stats.ErrorMessages
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleMergeShards handles the merge_shards tool invocation
func (s *Server) handleMergeShards(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	record, mcpErr := s.loadPlanArg(ctx, args)
	if mcpErr != nil {
		return nil, mcpErr
	}

	shards := record.Plan.Shards
	if ids, err := getStringSlice(args, "shard_ids"); err == nil && len(ids) > 0 {
		subset := make([]types.Shard, 0, len(ids))
		for _, id := range ids {
			shard, ok := record.Plan.ShardByID(id)
			if !ok {
				return nil, newMCPError(ErrorCodeInvalidParams, "unknown shard id", map[string]interface{}{
					"param": "shard_ids",
					"value": id,
				})
			}
			subset = append(subset, *shard)
		}
		shards = subset
	}

	result := merger.Merge(shards)

	response := map[string]interface{}{
		"success": result.Success,
		"content": result.Content,
	}
	if len(result.MissingShards) > 0 {
		response["missing_shards"] = result.MissingShards
	}
	if len(result.Conflicts) > 0 {
		conflicts := make([]map[string]interface{}, 0, len(result.Conflicts))
		for _, c := range result.Conflicts {
			conflicts = append(conflicts, map[string]interface{}{
				"type":      string(c.Type),
				"shard_ids": c.ShardIDs,
				"detail":    c.Detail,
			})
		}
		response["conflicts"] = conflicts
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleExportShards handles the export_shards tool invocation
func (s *Server) handleExportShards(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	record, mcpErr := s.loadPlanArg(ctx, args)
	if mcpErr != nil {
		return nil, mcpErr
	}

	directory, ok := args["directory"].(string)
	if !ok || directory == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "directory parameter is required", map[string]interface{}{
			"param":  "directory",
			"reason": "missing or empty",
		})
	}
	if !filepath.IsAbs(directory) {
		return nil, newMCPError(ErrorCodeInvalidParams, "directory must be absolute", map[string]interface{}{
			"param": "directory",
			"value": directory,
		})
	}
	if err := os.MkdirAll(directory, 0755); err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to create directory", map[string]interface{}{
			"error": err.Error(),
		})
	}

	includeHeader := getBoolDefault(args, "include_header", true)

	// Files are numbered by processing order so a directory listing
	// reads in the order shards should be worked
	written := make([]string, 0, len(record.Plan.Shards)+1)
	for i, id := range record.Plan.RecommendedOrder {
		shard, ok := record.Plan.ShardByID(id)
		if !ok {
			continue
		}
		name := render.ShardFilename(i+1, shard)
		content := render.ShardDocument(shard, includeHeader)
		if err := os.WriteFile(filepath.Join(directory, name), []byte(content), 0644); err != nil {
			return nil, newMCPError(ErrorCodeInternalError, "failed to write shard file", map[string]interface{}{
				"file":  name,
				"error": err.Error(),
			})
		}
		written = append(written, name)
	}

	summaryName := "000-plan.md"
	summary := render.PlanSummary(record.Plan)
	if err := os.WriteFile(filepath.Join(directory, summaryName), []byte(summary), 0644); err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to write plan summary", map[string]interface{}{
			"file":  summaryName,
			"error": err.Error(),
		})
	}
	written = append(written, summaryName)

	response := map[string]interface{}{
		"directory":     directory,
		"files_written": len(written),
		"files":         written,
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleGetPlan handles the get_plan tool invocation
func (s *Server) handleGetPlan(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	record, mcpErr := s.loadPlanArg(ctx, args)
	if mcpErr != nil {
		return nil, mcpErr
	}

	response := map[string]interface{}{
		"plan_id":           record.ID,
		"name":              record.Name,
		"created_at":        record.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		"options":           optionsPayload(record.Options),
		"analysis":          analysisPayload(&record.Plan.Analysis),
		"shards":            shardListPayload(record.Plan),
		"total_tokens":      record.Plan.TotalTokens,
		"recommended_order": record.Plan.RecommendedOrder,
		"cross_references":  crossRefPayload(record.Plan.CrossReferences),
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleListPlans handles the list_plans tool invocation
func (s *Server) handleListPlans(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})

	limit := getIntDefault(args, "limit", 50)
	if limit < 1 || limit > 200 {
		return nil, newMCPError(ErrorCodeInvalidParams, "limit must be between 1 and 200", map[string]interface{}{
			"param": "limit",
			"value": limit,
		})
	}

	infos, err := s.storage.ListPlans(ctx, limit)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to list plans", map[string]interface{}{
			"error": err.Error(),
		})
	}

	plans := make([]map[string]interface{}, 0, len(infos))
	for _, info := range infos {
		plans = append(plans, map[string]interface{}{
			"plan_id":      info.ID,
			"name":         info.Name,
			"strategy":     string(info.Strategy),
			"shard_count":  info.ShardCount,
			"total_tokens": info.TotalTokens,
			"created_at":   info.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}

	response := map[string]interface{}{
		"count": len(plans),
		"plans": plans,
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleDeletePlan handles the delete_plan tool invocation
func (s *Server) handleDeletePlan(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	planID, ok := args["plan_id"].(string)
	if !ok || planID == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "plan_id parameter is required", map[string]interface{}{
			"param":  "plan_id",
			"reason": "missing or empty",
		})
	}

	err := s.storage.DeletePlan(ctx, planID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, newMCPError(ErrorCodePlanNotFound, "plan not found", map[string]interface{}{
			"plan_id": planID,
		})
	}
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to delete plan", map[string]interface{}{
			"error": err.Error(),
		})
	}

	response := map[string]interface{}{
		"deleted": true,
		"plan_id": planID,
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// loadPlanArg loads the stored plan named by the plan_id argument
func (s *Server) loadPlanArg(ctx context.Context, args map[string]interface{}) (*storage.PlanRecord, error) {
	planID, ok := args["plan_id"].(string)
	if !ok || planID == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "plan_id parameter is required", map[string]interface{}{
			"param":  "plan_id",
			"reason": "missing or empty",
		})
	}

	record, err := s.storage.GetPlan(ctx, planID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, newMCPError(ErrorCodePlanNotFound, "plan not found", map[string]interface{}{
			"plan_id": planID,
		})
	}
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to load plan", map[string]interface{}{
			"error": err.Error(),
		})
	}
	return record, nil
}

// shardOptionsFromArgs builds ShardOptions from tool arguments,
// validating them before the pipeline runs
func shardOptionsFromArgs(args map[string]interface{}) (types.ShardOptions, error) {
	opts := types.DefaultShardOptions()
	opts.Strategy = types.Strategy(getStringDefault(args, "strategy", string(types.StrategyAuto)))
	opts.MaxTokensPerShard = getIntDefault(args, "max_tokens_per_shard", types.DefaultMaxTokensPerShard)
	opts.PreserveContext = getBoolDefault(args, "preserve_context", true)
	opts.IncludeMetadata = getBoolDefault(args, "include_metadata", true)

	if err := opts.Validate(); err != nil {
		return opts, newMCPError(ErrorCodeInvalidParams, "invalid sharding options", map[string]interface{}{
			"reason": err.Error(),
		})
	}
	return opts, nil
}

// Payload builders

func analysisPayload(a *types.ShardAnalysis) map[string]interface{} {
	return map[string]interface{}{
		"section_count":        a.SectionCount,
		"requirement_count":    a.RequirementCount,
		"scenario_count":       a.ScenarioCount,
		"total_lines":          a.TotalLines,
		"estimated_tokens":     a.EstimatedTokens,
		"complexity_score":     a.ComplexityScore,
		"recommended_strategy": string(a.RecommendedStrategy),
		"reasoning":            a.Reasoning,
	}
}

func optionsPayload(o types.ShardOptions) map[string]interface{} {
	return map[string]interface{}{
		"strategy":             string(o.Strategy),
		"max_tokens_per_shard": o.MaxTokensPerShard,
		"preserve_context":     o.PreserveContext,
		"include_metadata":     o.IncludeMetadata,
	}
}

func shardListPayload(plan *types.ShardPlan) []map[string]interface{} {
	shards := make([]map[string]interface{}, 0, len(plan.Shards))
	for i := range plan.Shards {
		sh := &plan.Shards[i]
		entry := map[string]interface{}{
			"id":          sh.ID,
			"type":        string(sh.Type),
			"token_count": sh.TokenCount,
			"priority":    sh.Priority,
			"content":     sh.Content,
		}
		if sh.SectionName != "" {
			entry["section_name"] = sh.SectionName
		}
		if sh.ParentID != "" {
			entry["parent_id"] = sh.ParentID
		}
		if len(sh.Dependencies) > 0 {
			entry["dependencies"] = sh.Dependencies
		}
		shards = append(shards, entry)
	}
	return shards
}

func crossRefPayload(refs []types.CrossReference) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(refs))
	for _, ref := range refs {
		out = append(out, map[string]interface{}{
			"from":        ref.From,
			"to":          ref.To,
			"type":        string(ref.Type),
			"description": ref.Description,
		})
	}
	return out
}

// Helper functions

// newMCPError creates a properly formatted MCP error
func newMCPError(code int, message string, data interface{}) error {
	// MCP errors are returned as regular errors, the framework handles encoding
	return &MCPError{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// MCPError represents an MCP protocol error
type MCPError struct {
	Code    int
	Message string
	Data    interface{}
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// formatJSON formats a map as indented JSON
func formatJSON(data map[string]interface{}) string {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(bytes)
}

// getBoolDefault extracts a boolean parameter with a default value
func getBoolDefault(args map[string]interface{}, key string, defaultValue bool) bool {
	if val, ok := args[key].(bool); ok {
		return val
	}
	return defaultValue
}

// getIntDefault extracts an integer parameter with a default value
func getIntDefault(args map[string]interface{}, key string, defaultValue int) int {
	if val, ok := args[key].(float64); ok {
		return int(val)
	}
	if val, ok := args[key].(int); ok {
		return val
	}
	return defaultValue
}

// getStringDefault extracts a string parameter with a default value
func getStringDefault(args map[string]interface{}, key string, defaultValue string) string {
	if val, ok := args[key].(string); ok {
		return val
	}
	return defaultValue
}

// getStringSlice extracts a string array parameter
func getStringSlice(args map[string]interface{}, key string) ([]string, error) {
	raw, ok := args[key].([]interface{})
	if !ok {
		return nil, fmt.Errorf("%s is not an array", key)
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%s contains a non-string element", key)
		}
		out = append(out, s)
	}
	return out, nil
}
