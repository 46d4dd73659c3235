package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/cardfuse/pkg/view"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerGetViewTool(srv, svc)
	registerSetLanguageTool(srv, svc)
	registerSortByTool(srv, svc)
	registerFilterTool(srv, svc)
	registerToggleSelectionTool(srv, svc)
	registerSelectionTool(srv, "select_all", "Select every card in the catalog, ignoring active filters.", svc.SelectAll)
	registerSelectionTool(srv, "reverse_selection", "Invert the selection over the whole catalog, ignoring active filters.", svc.Reverse)
	registerSelectionTool(srv, "reset", "Clear the selection, search text, filters and sort order.", svc.Reset)
	registerSummaryTool(srv, svc)
	registerShowDetailsTool(srv, svc)
	registerShowHelpTool(srv, svc)
	registerDismissTool(srv, svc)
}

func registerGetViewTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_view",
		mcp.WithDescription("Return the filtered, sorted card table with selection flags and the summary."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dto, err := svc.View(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerSetLanguageTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"set_language",
		mcp.WithDescription("Switch the display language of labels, summary and help."),
		mcp.WithString("locale",
			mcp.Required(),
			mcp.Description("Locale code (EN, KR, PT) or a language tag such as pt-BR."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		locale, err := request.RequireString("locale")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.SetLanguage(ctx, locale)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerSortByTool(srv *server.MCPServer, svc *Service) {
	columns := make([]string, 0, len(view.Columns()))
	for _, c := range view.Columns() {
		columns = append(columns, string(c))
	}

	tool := mcp.NewTool(
		"sort_by",
		mcp.WithDescription("Sort the table by a column. Sorting by the current column again flips the direction."),
		mcp.WithString("column",
			mcp.Required(),
			mcp.Description("Column to sort by."),
			mcp.Enum(columns...),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		column, err := request.RequireString("column")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.SortBy(ctx, column)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerFilterTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"filter",
		mcp.WithDescription("Set the name search and the region and group filters. Omitted arguments are left unchanged; an empty string clears one."),
		mcp.WithString("search",
			mcp.Description("Case-insensitive substring of the card name."),
		),
		mcp.WithString("region",
			mcp.Description("Exact region to show."),
		),
		mcp.WithString("group",
			mcp.Description("Group to show."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Search *string `json:"search"`
			Region *string `json:"region"`
			Group  *string `json:"group"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		dto, err := svc.Filter(ctx, FilterOptions{
			Search: args.Search,
			Region: args.Region,
			Group:  args.Group,
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerToggleSelectionTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"toggle_selection",
		mcp.WithDescription("Select a card if it is unselected, otherwise unselect it."),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Card id."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireInt("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.Toggle(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerSelectionTool(srv *server.MCPServer, name, description string, fn func(context.Context) (ViewDTO, error)) {
	tool := mcp.NewTool(name, mcp.WithDescription(description))

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dto, err := fn(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerSummaryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_summary",
		mcp.WithDescription("Return the group count, total points and fusion rate of the selection."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dto, err := svc.Summary(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerShowDetailsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"show_details",
		mcp.WithDescription("List the selected cards with localized detail lines."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dto, err := svc.Details(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerShowHelpTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"show_help",
		mcp.WithDescription("Return the usage guide in the active language as markdown."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		help, err := svc.Help(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(help), nil
	})
}

func registerDismissTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"dismiss",
		mcp.WithDescription("Close a panel if it is open."),
		mcp.WithString("panel",
			mcp.Required(),
			mcp.Description("Panel to close."),
			mcp.Enum("help", "details"),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		panel, err := request.RequireString("panel")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		open, err := svc.Dismiss(ctx, panel)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]string{"panel": string(open)})
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
