// ABOUTME: MCP server setup for the habit tracker.
// ABOUTME: Wraps the MCP server around a tracker service and coach.
package mcp

import (
	"context"

	"github.com/harperreed/habits/internal/coach"
	"github.com/harperreed/habits/internal/tracker"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Version is reported to MCP clients.
const Version = "1.0.0"

// Server wraps the MCP server with tracker access.
type Server struct {
	mcpServer *mcp.Server
	svc       *tracker.Service
	coach     *coach.Coach
}

// NewServer creates a new MCP server over svc. A nil coach serves fallback
// messages only.
func NewServer(svc *tracker.Service, c *coach.Coach) (*Server, error) {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "habits",
			Version: Version,
		},
		nil,
	)

	if c == nil {
		c = coach.New(nil, nil)
	}

	s := &Server{
		mcpServer: mcpServer,
		svc:       svc,
		coach:     c,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
