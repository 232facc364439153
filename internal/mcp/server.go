package mcp

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mark3labs/mcp-go/server"

	"github.com/dshills/docshard-mcp/internal/batch"
	"github.com/dshills/docshard-mcp/internal/planner"
	"github.com/dshills/docshard-mcp/internal/storage"
)

const (
	// ServerName is the MCP server name
	ServerName = "docshard-mcp"
	// ServerVersion is the current server version
	ServerVersion = "1.0.0"
	// DefaultDBPath is the default location for the database
	DefaultDBPath = "~/.docshard"
)

// Server wraps the MCP server with application dependencies
type Server struct {
	mcp     *server.MCPServer
	storage storage.Storage
	planner *planner.Planner
	batch   *batch.Runner
}

// NewServer creates a new MCP server instance
func NewServer(dbPath string) (*Server, error) {
	// Expand home directory if needed
	if dbPath == "" || dbPath == DefaultDBPath {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".docshard")
	}

	// Create directory if it doesn't exist
	if err := os.MkdirAll(dbPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	dbFile := filepath.Join(dbPath, "docshard.db")

	// Initialize storage
	store, err := storage.NewSQLiteStorage(dbFile)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	// Create planner
	pln := planner.New()

	// Create batch runner sharing the planner and storage
	runner := batch.New(pln, store)

	// Create MCP server
	mcpServer := server.NewMCPServer(
		ServerName,
		ServerVersion,
	)

	s := &Server{
		mcp:     mcpServer,
		storage: store,
		planner: pln,
		batch:   runner,
	}

	// Register tools
	if err := s.registerTools(); err != nil {
		return nil, fmt.Errorf("failed to register tools: %w", err)
	}

	return s, nil
}

// Serve starts the MCP server on stdio and blocks until shutdown
func (s *Server) Serve(ctx context.Context) error {
	defer func() { _ = s.storage.Close() }()
	return server.ServeStdio(s.mcp)
}

// registerTools registers all MCP tools
func (s *Server) registerTools() error {
	s.mcp.AddTool(analyzeDocumentTool(), s.handleAnalyzeDocument)
	s.mcp.AddTool(shardDocumentTool(), s.handleShardDocument)
	s.mcp.AddTool(shardFilesTool(), s.handleShardFiles)
	s.mcp.AddTool(mergeShardsTool(), s.handleMergeShards)
	s.mcp.AddTool(exportShardsTool(), s.handleExportShards)
	s.mcp.AddTool(getPlanTool(), s.handleGetPlan)
	s.mcp.AddTool(listPlansTool(), s.handleListPlans)
	s.mcp.AddTool(deletePlanTool(), s.handleDeletePlan)

	return nil
}
