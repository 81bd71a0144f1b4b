package mcptools

import (
	"context"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// version is set by the linker at build time.
var version = "dev"

// NewGraphMCPServer creates an MCP server with all injection-graph tools
// registered.
func NewGraphMCPServer(svc *GraphService) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "wiregraph",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "build_graph",
		Description: "Analyze a decorator-annotated TypeScript project and build its constructor dependency-injection graph. Parses sources with tree-sitter, resolves injection tokens and qualifier flags, and annotates circular dependencies.",
	}, svc.BuildGraph)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "find_cycles",
		Description: "Return every circular dependency chain in the built graph as an ordered sequence of class names.",
	}, svc.FindCycles)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_subgraph",
		Description: "Extract the sub-graph reachable from one or more entry classes, following dependencies downstream, dependents upstream, or both.",
	}, svc.GetSubgraph)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "query_classes",
		Description: "Search discovered injectable classes by name substring. Optionally filter by kind (service, component, directive, unknown).",
	}, svc.QueryClasses)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_warnings",
		Description: "Return the advisory warnings collected during the most recent build: unresolvable injection tokens, anonymous classes, duplicate class names.",
	}, svc.GetWarnings)

	return server
}

// RunMCPServer starts an HTTP server exposing the injection-graph MCP tools.
func RunMCPServer(ctx context.Context, svc *GraphService, addr string) error {
	server := NewGraphMCPServer(svc)

	handler := mcp.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcp.Server { return server },
		nil,
	)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	// Shutdown gracefully when context is cancelled.
	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background())
	}()

	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
