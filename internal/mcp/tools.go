package mcp

import "github.com/mark3labs/mcp-go/mcp"

// getViewTool defines the get_view MCP tool.
var getViewTool = mcp.NewTool("get_view",
	mcp.WithDescription("Get the current memory chart: filter, zoom path, centre text and the breakdown of the chart root."),
)

// setFilterTool defines the set_filter MCP tool.
var setFilterTool = mcp.NewTool("set_filter",
	mcp.WithDescription("Rebuild the chart from the symbols of the given types. Discards any zoom."),
	mcp.WithArray("types",
		mcp.Required(),
		mcp.Description("Symbol types to include: t (text/code), d (initialized data), b (bss)"),
		mcp.Items(map[string]any{"type": "string", "enum": []string{"t", "d", "b"}}),
	),
)

// zoomTool defines the zoom MCP tool.
var zoomTool = mcp.NewTool("zoom",
	mcp.WithDescription("Zoom into a node of the current chart, making it the chart root."),
	mcp.WithNumber("node",
		mcp.Required(),
		mcp.Description("Node ID as listed by get_view or breakdown"),
	),
)

// resetZoomTool defines the reset_zoom MCP tool.
var resetZoomTool = mcp.NewTool("reset_zoom",
	mcp.WithDescription("Leave every zoom level and show the whole chart again."),
)

// ancestorChainTool defines the ancestor_chain MCP tool.
var ancestorChainTool = mcp.NewTool("ancestor_chain",
	mcp.WithDescription("Get the path of containers from the top of the chart down to a node, with its share of the total."),
	mcp.WithNumber("node",
		mcp.Required(),
		mcp.Description("Node ID"),
	),
)

// breakdownTool defines the breakdown MCP tool.
var breakdownTool = mcp.NewTool("breakdown",
	mcp.WithDescription("Get the size of a node and of each of its direct children."),
	mcp.WithNumber("node",
		mcp.Description("Node ID (default: the current chart root)"),
	),
)

// listDatasetsTool defines the list_datasets MCP tool.
var listDatasetsTool = mcp.NewTool("list_datasets",
	mcp.WithDescription("List imported symbol datasets."),
)

// openDatasetTool defines the open_dataset MCP tool.
var openDatasetTool = mcp.NewTool("open_dataset",
	mcp.WithDescription("Load an imported dataset into the chart."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Dataset ID as listed by list_datasets"),
	),
)
