// Package mcp implements the Model Context Protocol (MCP) server for DocShard.
//
// The MCP server exposes the sharding pipeline to AI coding assistants
// (Claude Code, Codex CLI):
//   - analyze_document: Profile a markdown document and recommend a strategy
//   - shard_document: Decompose a document into token-budgeted shards
//   - shard_files: Shard many markdown files concurrently
//   - merge_shards: Reassemble a stored plan's shards into one document
//   - export_shards: Write a stored plan's shards to a directory
//   - get_plan / list_plans / delete_plan: Plan persistence queries
//
// # Protocol Overview
//
// MCP is a JSON-RPC 2.0 protocol over stdio transport:
//
//	Client → Server: {"method": "tools/call", "params": {...}}
//	Server → Client: {"result": {...}}
//
// The server communicates with MCP clients via standard input/output,
// making it simple to integrate with any MCP-compatible client.
//
// # Tool: shard_document
//
// Decompose a document and optionally persist the plan:
//
//	Request:
//	{
//	  "name": "shard_document",
//	  "arguments": {
//	    "document": "# Title\n\n## Section...",
//	    "strategy": "auto",
//	    "max_tokens_per_shard": 2000,
//	    "save": true,
//	    "name": "payments-spec"
//	  }
//	}
//
//	Response:
//	{
//	  "plan_id": "7f2c9e4a-...",
//	  "total_tokens": 1834,
//	  "recommended_order": ["metadata", "section-1-overview", ...],
//	  "shards": [...],
//	  "cross_references": [...],
//	  "analysis": {
//	    "section_count": 4,
//	    "complexity_score": 42,
//	    "recommended_strategy": "section"
//	  },
//	  "summary": "# Shard Plan\n..."
//	}
//
// # Tool: merge_shards
//
// Merge a stored plan back into one document:
//
//	Request:
//	{
//	  "name": "merge_shards",
//	  "arguments": {
//	    "plan_id": "7f2c9e4a-...",
//	    "shard_ids": ["metadata", "section-1-overview"]
//	  }
//	}
//
//	Response:
//	{
//	  "success": false,
//	  "content": "...",
//	  "missing_shards": ["section-2-processing"],
//	  "conflicts": []
//	}
//
// A merge of a subset reports unmet dependencies in missing_shards;
// duplicate content and duplicate headings are reported as conflicts
// without failing the merge.
//
// # MCP Client Configuration
//
// Configure in Claude Code's MCP settings:
//
//	{
//	  "mcpServers": {
//	    "docshard": {
//	      "command": "/usr/local/bin/docshard",
//	      "env": {
//	        "DOCSHARD_DB_PATH": "~/.docshard"
//	      }
//	    }
//	  }
//	}
//
// # Error Handling
//
// The MCP server returns standard JSON-RPC error responses:
//
//	{
//	  "error": {
//	    "code": -32602,
//	    "message": "Invalid params",
//	    "data": {
//	      "param": "document",
//	      "reason": "missing or empty"
//	    }
//	  }
//	}
//
// Error codes:
//   - -32602: Invalid params (missing/invalid arguments)
//   - -32603: Internal error (database, filesystem, etc.)
//   - -32001: Plan not found
//   - -32002: Document is empty
//   - -32003: Sharding failed (the analysis profile rides in error data)
//
// # Logging
//
// The MCP server logs to stderr (stdout is reserved for MCP protocol):
//
//	log.SetOutput(os.Stderr)
//	log.Printf("MCP server started")
package mcp
