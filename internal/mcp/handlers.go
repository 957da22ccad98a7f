package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/symburst/internal/report"
	"github.com/ziadkadry99/symburst/internal/tree"
	"github.com/ziadkadry99/symburst/internal/view"
	"github.com/ziadkadry99/symburst/internal/viewer"
)

// handleGetView describes the current chart.
func (s *Server) handleGetView(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.describe(s.session.Snapshot(), nil)
}

// handleSetFilter rebuilds the chart with new types.
func (s *Server) handleSetFilter(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	types := request.GetStringSlice("types", nil)
	if types == nil {
		return mcp.NewToolResultError("missing required parameter: types"), nil
	}
	return s.describe(s.session.Filter(types))
}

// handleZoom makes a node the chart root.
func (s *Server) handleZoom(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	node, err := request.RequireInt("node")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: node"), nil
	}
	return s.describe(s.session.Click(tree.NodeID(node)))
}

// handleResetZoom returns to the whole chart.
func (s *Server) handleResetZoom(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.describe(s.session.Reset())
}

// handleAncestorChain lists the containers above a node.
func (s *Server) handleAncestorChain(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	node, err := request.RequireInt("node")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: node"), nil
	}

	chain, err := s.session.AncestorChain(tree.NodeID(node))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("ancestor chain failed: %v", err)), nil
	}
	if len(chain) == 0 {
		return mcp.NewToolResultText("Node is the top of the chart."), nil
	}

	names := make([]string, len(chain))
	for i, c := range chain {
		names[i] = c.Name
	}
	rows, err := s.session.Table(tree.NodeID(node))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("ancestor chain failed: %v", err)), nil
	}
	total := s.session.Snapshot().Total
	return mcp.NewToolResultText(fmt.Sprintf("%s\n%s of total, %d byte\n",
		strings.Join(names, " > "),
		view.FormatPercentage(rows[0].Value, total),
		rows[0].Value,
	)), nil
}

// handleBreakdown renders a node and its children as a table.
func (s *Server) handleBreakdown(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap := s.session.Snapshot()
	if snap.Blank {
		return mcp.NewToolResultError(viewer.ErrNoData.Error()), nil
	}

	node := request.GetInt("node", int(snap.Focus))
	rows, err := s.session.Table(tree.NodeID(node))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("breakdown failed: %v", err)), nil
	}
	return mcp.NewToolResultText(formatRows(rows, snap.Total)), nil
}

// handleListDatasets lists stored datasets.
func (s *Server) handleListDatasets(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	list, err := s.datasets.List(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing datasets failed: %v", err)), nil
	}
	if len(list) == 0 {
		return mcp.NewToolResultText("No datasets imported yet. Run `symburst import <file>` first."), nil
	}

	var sb strings.Builder
	sb.WriteString("| ID | App | Records | Source | Imported |\n|---|---|---:|---|---|\n")
	for _, ds := range list {
		fmt.Fprintf(&sb, "| %s | %s | %d | %s | %s |\n", ds.ID, ds.App, ds.RecordCount, ds.Source, ds.CreatedAt.Format("2006-01-02 15:04"))
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// handleOpenDataset loads a dataset into the session.
func (s *Server) handleOpenDataset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: id"), nil
	}

	doc, err := s.datasets.Document(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("opening dataset failed: %v", err)), nil
	}
	if err := s.session.Load(doc); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("opening dataset failed: %v", err)), nil
	}
	return s.describe(s.session.Snapshot(), nil)
}

// describe turns a snapshot into a tool result, or the event error into a
// tool error.
func (s *Server) describe(snap viewer.Snapshot, err error) (*mcp.CallToolResult, error) {
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if snap.Blank {
		return mcp.NewToolResultText("No symbol data loaded."), nil
	}

	rows, err := s.session.Table(snap.Focus)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatSnapshot(snap, rows)), nil
}

// formatSnapshot renders the chart state in a compact form for AI agents.
func formatSnapshot(snap viewer.Snapshot, rows []view.Row) string {
	var sb strings.Builder

	types := make([]string, len(snap.Types))
	for i, t := range snap.Types {
		types[i] = string(t)
	}
	fmt.Fprintf(&sb, "App: %s\nTypes: %s\nMode: %s\n", snap.App, strings.Join(types, ","), snap.Mode)
	fmt.Fprintf(&sb, "Centre: %s %s (%s)\n", snap.Explanation.Percentage, snap.Explanation.Label, snap.Explanation.SizeText)

	if len(snap.Breadcrumbs) > 0 {
		names := make([]string, len(snap.Breadcrumbs))
		for i, c := range snap.Breadcrumbs {
			names[i] = c.Name
		}
		fmt.Fprintf(&sb, "Zoom: %s\n", strings.Join(names, " > "))
	}
	if snap.Hover != nil {
		fmt.Fprintf(&sb, "Hover: %s\n", snap.Hover.Label)
	}

	sb.WriteString("\n")
	sb.WriteString(formatRows(rows, snap.Total))

	if n := len(snap.Rejected); n > 0 {
		fmt.Fprintf(&sb, "\n%d record(s) rejected:\n", n)
		for _, r := range snap.Rejected {
			fmt.Fprintf(&sb, "- #%d %s: %s\n", r.Index, r.Sym, r.Error)
		}
	}
	return sb.String()
}

// formatRows renders breakdown rows with their node IDs so agents can zoom.
func formatRows(rows []view.Row, total int64) string {
	var sb strings.Builder
	sb.WriteString(report.Table(rows, total))
	sb.WriteString("\nNode IDs: ")
	for i, r := range rows {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s=%d", r.Name, r.ID)
	}
	sb.WriteString("\n")
	return sb.String()
}
