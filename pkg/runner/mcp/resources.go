package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerCatalogResource(srv, svc)
	registerSelectionResource(srv, svc)
	registerCardTemplate(srv, svc)
}

func registerCatalogResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"cardfuse://catalog",
		"Catalog",
		mcp.WithResourceDescription("Every card in the loaded catalog with the distinct regions and groups."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		dto, err := svc.Catalog(ctx)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, dto)
	})
}

func registerSelectionResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"cardfuse://selection",
		"Selection",
		mcp.WithResourceDescription("The persisted selection and its summary."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		dto, err := svc.View(ctx)
		if err != nil {
			return nil, err
		}
		payload := map[string]any{
			"selected": dto.Selected,
			"count":    len(dto.Selected),
			"summary":  dto.Summary,
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

func registerCardTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"cardfuse://cards/{id}",
		"Card",
		mcp.WithTemplateDescription("A single card and whether it is selected."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		raw := fmt.Sprint(request.Params.Arguments["id"])
		if s, ok := request.Params.Arguments["id"].([]string); ok && len(s) > 0 {
			raw = s[0]
		}
		id, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("card id must be a number, got %q", raw)
		}
		dto, err := svc.CardByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, map[string]any{"card": dto})
	})
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
