package main

import (
	"context"
	"fmt"
	"log"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.dw1.io/srcview"
)

type getSourceArgs struct {
	Config    string `json:"config,omitempty" jsonschema:"path to the srcview YAML config (default: ./srcview.yaml)"`
	Inventory string `json:"inventory,omitempty" jsonschema:"path to the inventory dump (overrides the config)"`
	Role      string `json:"role" jsonschema:"role tag of the symbol (e.g. py:method, py:function)"`
	Symbol    string `json:"symbol" jsonschema:"fully-qualified dotted symbol name"`
}

func getSourceHandler(ctx context.Context, req *mcp.CallToolRequest, args getSourceArgs) (*mcp.CallToolResult, any, error) {
	configPath := args.Config
	if configPath == "" {
		configPath = "srcview.yaml"
	}

	cfg, err := srcview.LoadConfig(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	inventoryPath := args.Inventory
	if inventoryPath == "" {
		inventoryPath = cfg.Inventory
	}

	inv, err := srcview.LoadInventory(inventoryPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load inventory: %w", err)
	}

	r := srcview.New(
		srcview.WithContext(ctx),
		srcview.WithInventory(inv),
		srcview.WithProjects(cfg.ProjectList()),
	)

	result, err := r.Load(args.Role, args.Symbol)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load source: %w", err)
	}

	return &mcp.CallToolResult{
		Meta: map[string]any{
			"role":   args.Role,
			"symbol": args.Symbol,
		},
	}, result, nil
}

func main() {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "srcview-mcp",
		Version: "0.1.0",
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_source",
		Description: "Get the published source code of a documented symbol by role tag and fully-qualified name.",
	}, getSourceHandler)

	if err := server.Run(context.Background(), &mcp.StdioTransport{}); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
