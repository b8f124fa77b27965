// ABOUTME: MCP resource implementations for habits.
// ABOUTME: Provides habits://today, habits://week, and habits://export resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/harperreed/habits/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	todayURI  = "habits://today"
	weekURI   = "habits://week"
	exportURI = "habits://export"
)

func (s *Server) registerResources() {
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         todayURI,
		Name:        "Today's Habits",
		Description: "Every habit with today's completion status and streak",
		MIMEType:    "application/json",
	}, s.handleTodayResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         weekURI,
		Name:        "Weekly Report",
		Description: "Completion analysis of the last seven days",
		MIMEType:    "application/json",
	}, s.handleWeekResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         exportURI,
		Name:        "Full Export",
		Description: "All habits with their complete completion history",
		MIMEType:    "application/json",
	}, s.handleExportResource)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// Resource handlers

func (s *Server) handleTodayResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	habits, err := s.svc.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to list habits: %w", err)
	}

	summaries := make([]habitSummary, 0, len(habits))
	done := 0
	for _, h := range habits {
		summaries = append(summaries, summarize(h))
		if h.CompletedToday {
			done++
		}
	}

	return jsonResource(todayURI, map[string]any{
		"date":   s.svc.Today().String(),
		"habits": summaries,
		"counts": map[string]int{
			"total":     len(habits),
			"completed": done,
			"remaining": len(habits) - done,
		},
	})
}

func (s *Server) handleWeekResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	report, err := s.svc.Week()
	if err != nil {
		return nil, fmt.Errorf("failed to build weekly report: %w", err)
	}
	return jsonResource(weekURI, report)
}

func (s *Server) handleExportResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	if _, err := s.svc.Load(); err != nil {
		return nil, fmt.Errorf("failed to refresh habits: %w", err)
	}
	data, err := storage.ExportJSON(s.svc.Repository())
	if err != nil {
		return nil, fmt.Errorf("failed to export: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      exportURI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
