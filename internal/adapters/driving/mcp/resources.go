package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	uriScheme = "menumem://"

	// menuURI names the resource holding the whole stored menu.
	menuURI = uriScheme + "menu"

	// categoriesURI names the resource listing dish categories.
	categoriesURI = uriScheme + "categories"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         menuURI,
		Name:        "menu",
		Description: "Every stored dish with description, category, price and ingredients",
		MIMEType:    "application/json",
	}, s.handleMenuResource)

	s.server.AddResource(&mcp.Resource{
		URI:         categoriesURI,
		Name:        "categories",
		Description: "Distinct dish categories",
		MIMEType:    "application/json",
	}, s.handleCategoriesResource)
}

func (s *Server) handleMenuResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	dishes, err := s.ports.Menu.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing dishes: %w", err)
	}
	return jsonResource(req.Params.URI, dishOutputs(dishes))
}

func (s *Server) handleCategoriesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	categories, err := s.ports.Menu.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	return jsonResource(req.Params.URI, nonNil(categories))
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
