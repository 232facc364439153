package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// strategyEnum lists the accepted strategy names for tool schemas
var strategyEnum = []string{"section", "requirement", "scenario", "auto"}

// shardingProperties returns the option parameters shared by every tool
// that runs the decomposition pipeline
func shardingProperties() map[string]interface{} {
	return map[string]interface{}{
		"strategy": map[string]interface{}{
			"type":        "string",
			"description": "Decomposition strategy",
			"enum":        strategyEnum,
			"default":     "auto",
		},
		"max_tokens_per_shard": map[string]interface{}{
			"type":        "integer",
			"description": "Token budget per shard",
			"default":     2000,
			"minimum":     1,
		},
		"preserve_context": map[string]interface{}{
			"type":        "boolean",
			"description": "If true, content shards declare a dependency on the metadata shard",
			"default":     true,
		},
		"include_metadata": map[string]interface{}{
			"type":        "boolean",
			"description": "If true, emit a metadata shard carrying the document preamble",
			"default":     true,
		},
	}
}

// analyzeDocumentTool returns the tool definition for analyze_document
func analyzeDocumentTool() mcp.Tool {
	return mcp.Tool{
		Name:        "analyze_document",
		Description: "Analyze a markdown document's structure and recommend a sharding strategy without decomposing it",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"document": map[string]interface{}{
					"type":        "string",
					"description": "Markdown document text to analyze",
				},
			},
			Required: []string{"document"},
		},
	}
}

// shardDocumentTool returns the tool definition for shard_document
func shardDocumentTool() mcp.Tool {
	properties := shardingProperties()
	properties["document"] = map[string]interface{}{
		"type":        "string",
		"description": "Markdown document text to decompose",
	}
	properties["save"] = map[string]interface{}{
		"type":        "boolean",
		"description": "If true, persist the resulting plan and return its plan_id",
		"default":     false,
	}
	properties["name"] = map[string]interface{}{
		"type":        "string",
		"description": "Display name for the saved plan",
	}
	return mcp.Tool{
		Name:        "shard_document",
		Description: "Decompose a markdown document into token-budgeted shards with dependencies and a processing order",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: properties,
			Required:   []string{"document"},
		},
	}
}

// shardFilesTool returns the tool definition for shard_files
func shardFilesTool() mcp.Tool {
	properties := shardingProperties()
	properties["paths"] = map[string]interface{}{
		"type":        "array",
		"description": "Absolute paths to markdown files or directories to walk",
		"items": map[string]interface{}{
			"type": "string",
		},
	}
	properties["save"] = map[string]interface{}{
		"type":        "boolean",
		"description": "If true, persist each resulting plan",
		"default":     true,
	}
	properties["workers"] = map[string]interface{}{
		"type":        "integer",
		"description": "Number of concurrent workers (default: CPU count)",
		"minimum":     1,
	}
	return mcp.Tool{
		Name:        "shard_files",
		Description: "Shard many markdown files concurrently, persisting a plan per file",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: properties,
			Required:   []string{"paths"},
		},
	}
}

// mergeShardsTool returns the tool definition for merge_shards
func mergeShardsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "merge_shards",
		Description: "Merge a stored plan's shards back into one document, reporting missing dependencies and content conflicts",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"plan_id": map[string]interface{}{
					"type":        "string",
					"description": "ID of a stored plan",
				},
				"shard_ids": map[string]interface{}{
					"type":        "array",
					"description": "Optional subset of shard IDs to merge (default: all)",
					"items": map[string]interface{}{
						"type": "string",
					},
				},
			},
			Required: []string{"plan_id"},
		},
	}
}

// exportShardsTool returns the tool definition for export_shards
func exportShardsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "export_shards",
		Description: "Write a stored plan's shards as numbered markdown files plus a plan summary",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"plan_id": map[string]interface{}{
					"type":        "string",
					"description": "ID of a stored plan",
				},
				"directory": map[string]interface{}{
					"type":        "string",
					"description": "Absolute path of the output directory (created if missing)",
				},
				"include_header": map[string]interface{}{
					"type":        "boolean",
					"description": "If true, each file starts with a shard metadata comment",
					"default":     true,
				},
			},
			Required: []string{"plan_id", "directory"},
		},
	}
}

// getPlanTool returns the tool definition for get_plan
func getPlanTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_plan",
		Description: "Load a stored shard plan by ID",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"plan_id": map[string]interface{}{
					"type":        "string",
					"description": "ID of a stored plan",
				},
			},
			Required: []string{"plan_id"},
		},
	}
}

// listPlansTool returns the tool definition for list_plans
func listPlansTool() mcp.Tool {
	return mcp.Tool{
		Name:        "list_plans",
		Description: "List stored shard plans, newest first",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of plans to return (1-200)",
					"default":     50,
					"minimum":     1,
					"maximum":     200,
				},
			},
		},
	}
}

// deletePlanTool returns the tool definition for delete_plan
func deletePlanTool() mcp.Tool {
	return mcp.Tool{
		Name:        "delete_plan",
		Description: "Delete a stored shard plan and its shards",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"plan_id": map[string]interface{}{
					"type":        "string",
					"description": "ID of a stored plan",
				},
			},
			Required: []string{"plan_id"},
		},
	}
}
