package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/ziadkadry99/symburst/internal/datasets"
	"github.com/ziadkadry99/symburst/internal/viewer"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes the sunburst view as tools.
type Server struct {
	session  *viewer.Session
	datasets *datasets.Store
	mcp      *server.MCPServer
}

// NewServer creates a new MCP server driving session. store may be nil, in
// which case the dataset tools are not offered.
func NewServer(session *viewer.Session, store *datasets.Store) *Server {
	s := &Server{
		session:  session,
		datasets: store,
	}

	s.mcp = server.NewMCPServer(
		"symburst",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(getViewTool, s.handleGetView)
	s.mcp.AddTool(setFilterTool, s.handleSetFilter)
	s.mcp.AddTool(zoomTool, s.handleZoom)
	s.mcp.AddTool(resetZoomTool, s.handleResetZoom)
	s.mcp.AddTool(ancestorChainTool, s.handleAncestorChain)
	s.mcp.AddTool(breakdownTool, s.handleBreakdown)
	if s.datasets != nil {
		s.mcp.AddTool(listDatasetsTool, s.handleListDatasets)
		s.mcp.AddTool(openDatasetTool, s.handleOpenDataset)
	}
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
