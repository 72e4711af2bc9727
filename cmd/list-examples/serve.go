package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
	"github.com/taigrr/list-examples/internal/output"
)

type (
	// ListInput contains parameters for listing examples.
	ListInput struct {
		Format  string   `json:"format,omitempty" jsonschema:"Output format: json, gha-matrix, gha-matrix-grouped or paths (default: json)"`
		Include []string `json:"include,omitempty" jsonschema:"Only keep examples whose path matches one of these globs"`
		Exclude []string `json:"exclude,omitempty" jsonschema:"Drop examples whose path matches one of these globs"`
	}

	// ListOutput contains the rendered registry.
	ListOutput struct {
		Output   string   `json:"output"`
		Count    int      `json:"count"`
		Warnings []string `json:"warnings,omitempty"`
	}

	// ValidateInput takes no parameters.
	ValidateInput struct{}

	// ValidateOutput reports whether the registry is valid.
	ValidateOutput struct {
		Valid bool   `json:"valid"`
		Count int    `json:"count"`
		Error string `json:"error,omitempty"`
	}
)

// registryServer answers MCP tool calls against one registry file.
type registryServer struct {
	opts   *options
	logger *slog.Logger
}

func newServeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the examples registry over MCP (stdio)",
		Long: `serve runs a Model Context Protocol server on stdin/stdout exposing
the list_examples and validate_registry tools. The registry is re-read on
every call.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rs := &registryServer{
				opts:   opts,
				logger: newLogger(cmd.ErrOrStderr(), opts.debug),
			}

			server := mcp.NewServer(&mcp.Implementation{
				Name:    "list-examples",
				Version: version,
			}, nil)
			rs.registerTools(server)

			if err := server.Run(cmd.Context(), &mcp.StdioTransport{}); err != nil {
				return fmt.Errorf("error running server: %w", err)
			}
			return nil
		},
	}
}

func (rs *registryServer) registerTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_examples",
		Description: "Validate the examples registry and render it as JSON or a GitHub Actions matrix. Optional include/exclude globs narrow the result.",
	}, rs.handleList)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "validate_registry",
		Description: "Validate the examples registry. Reports the first schema violation, if any, and the number of examples.",
	}, rs.handleValidate)
}

func (rs *registryServer) handleList(ctx context.Context, req *mcp.CallToolRequest, input ListInput) (*mcp.CallToolResult, ListOutput, error) {
	format := input.Format
	if format == "" {
		format = rs.opts.format
	}
	mode, err := output.ParseMode(format)
	if err != nil {
		return &mcp.CallToolResult{IsError: true}, ListOutput{}, err
	}

	examples, err := loadRegistry(ctx, rs.opts, rs.logger)
	if err != nil {
		return &mcp.CallToolResult{IsError: true}, ListOutput{}, err
	}

	include, exclude := input.Include, input.Exclude
	if len(include) == 0 && len(exclude) == 0 {
		include, exclude = rs.opts.include, rs.opts.exclude
	}
	examples, err = filterExamples(examples, include, exclude)
	if err != nil {
		return &mcp.CallToolResult{IsError: true}, ListOutput{}, err
	}

	var warnings []string
	data, err := render(examples, mode, func(msg string) { warnings = append(warnings, msg) })
	if err != nil {
		return &mcp.CallToolResult{IsError: true}, ListOutput{}, err
	}

	return nil, ListOutput{
		Output:   string(data),
		Count:    len(examples),
		Warnings: warnings,
	}, nil
}

func (rs *registryServer) handleValidate(ctx context.Context, req *mcp.CallToolRequest, input ValidateInput) (*mcp.CallToolResult, ValidateOutput, error) {
	examples, err := loadRegistry(ctx, rs.opts, rs.logger)
	if err != nil {
		return nil, ValidateOutput{Valid: false, Error: err.Error()}, nil
	}
	return nil, ValidateOutput{Valid: true, Count: len(examples)}, nil
}
