// Package mcp exposes the console as Model Context Protocol tools.
package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/zconv"
	"github.com/aretw0/zconv/pkg/adapters/memory"
	"github.com/aretw0/zconv/pkg/domain"
	"github.com/aretw0/zconv/pkg/view"
)

// PageURI is the resource holding the current page text.
const PageURI = "zconv://page"

// ConvertResponse is the structured result of the convert tool.
type ConvertResponse struct {
	Result  string   `json:"result" jsonschema_description:"Text shown in the result area"`
	IsError bool     `json:"is_error" jsonschema_description:"True when the result area shows an error"`
	History []string `json:"history" jsonschema_description:"One line per history entry, or the placeholder"`
}

// HistoryResponse is the structured result of the history tool.
type HistoryResponse struct {
	History []string `json:"history" jsonschema_description:"One line per history entry, or the placeholder"`
	IsError bool     `json:"is_error" jsonschema_description:"True when the history request failed"`
}

// Server drives one console on an in-memory page. Tool calls are serialized.
type Server struct {
	mu        sync.Mutex
	doc       *memory.Document
	console   *zconv.Console
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(opts ...zconv.Option) (*Server, error) {
	doc := memory.NewDocument()
	c, err := zconv.New(doc, opts...)
	if err != nil {
		return nil, err
	}
	s := &Server{
		doc:       doc,
		console:   c,
		mcpServer: server.NewMCPServer("zconv-mcp", strings.TrimSpace(zconv.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s, nil
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves on addr using SSE until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, addr string) error {
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL("http://"+addr))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{Addr: addr, Handler: mux}
	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	convertTool := mcp.NewTool("convert",
		mcp.WithDescription("Submit a string to the conversion API and return the result and the refreshed history."),
		mcp.WithString("input", mcp.Required(), mcp.Description("String to convert, sent as-is")),
		mcp.WithOutputSchema[ConvertResponse](),
	)
	s.mcpServer.AddTool(convertTool, mcp.NewStructuredToolHandler(s.handleConvert))

	historyTool := mcp.NewTool("history",
		mcp.WithDescription("Fetch the conversion history."),
		mcp.WithOutputSchema[HistoryResponse](),
	)
	s.mcpServer.AddTool(historyTool, mcp.NewStructuredToolHandler(s.handleHistory))

	s.mcpServer.AddTool(mcp.NewTool("clear",
		mcp.WithDescription("Clear the result and history areas of the page."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.console.Click(ctx, domain.ClearButtonID)
		return mcp.NewToolResultText("cleared"), nil
	})
}

func (s *Server) handleConvert(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ConvertResponse, error) {
	input, ok := args["input"].(string)
	if !ok {
		return ConvertResponse{}, fmt.Errorf("input must be a string")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.console.Submit(ctx, input)
	s.console.Wait()

	result := s.doc.Result().Nodes()
	return ConvertResponse{
		Result:  view.PlainText(result),
		IsError: hasDanger(result),
		History: lines(s.doc.History().Nodes()),
	}, nil
}

func (s *Server) handleHistory(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (HistoryResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.console.Click(ctx, domain.HistoryButtonID)
	s.console.Wait()

	nodes := s.doc.History().Nodes()
	return HistoryResponse{History: lines(nodes), IsError: hasDanger(nodes)}, nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(PageURI, "Current page",
		mcp.WithMIMEType("text/plain"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      PageURI,
				MIMEType: "text/plain",
				Text:     s.PageText(),
			},
		}, nil
	})
}

// PageText renders both regions as plain text.
func (s *Server) PageText() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return "Result:\n" + view.PlainText(s.doc.Result().Nodes()) +
		"\n\nHistory:\n" + view.PlainText(s.doc.History().Nodes())
}

func lines(nodes []view.Node) []string {
	if len(nodes) == 0 {
		return []string{}
	}
	blocks := view.Blocks(nodes)
	if len(blocks) == 0 {
		return []string{view.PlainText(nodes)}
	}
	out := make([]string, len(blocks))
	for i, b := range blocks {
		out[i] = view.PlainText([]view.Node{b})
	}
	return out
}

func hasDanger(nodes []view.Node) bool {
	for _, n := range nodes {
		if n.Kind == view.KindDanger {
			return true
		}
	}
	return false
}
