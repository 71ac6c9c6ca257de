package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/sheetpost/internal/core/domain"
)

// Version is the MCP server version.
const Version = "0.1.0"

// Server is the MCP server for sheetpost.
type Server struct {
	ports  *Ports
	server *mcp.Server
	now    func() time.Time
}

// NewServer creates a new MCP server with the given ports.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	impl := &mcp.Implementation{
		Name:    "sheetpost",
		Version: Version,
	}

	s := &Server{
		ports:  ports,
		server: mcp.NewServer(impl, nil),
		now:    time.Now,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Run starts the MCP server over stdio.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP starts the MCP server over HTTP on the specified address.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	handler := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown when context is cancelled
	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background()) //nolint:errcheck
	}()

	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// target is the account and sheet/blog pair a tool call operates on.
type target struct {
	userID  string
	sheetID string
	blogID  string
}

// resolveTarget fills in the signed-in user and the configured defaults.
// Settings are read on every call so a login in another process is seen
// after the config file reloads.
func (s *Server) resolveTarget(sheetID, blogID string, needSheet, needBlog bool) (target, error) {
	settings, err := s.ports.Settings.Get()
	if err != nil {
		return target{}, err
	}
	if !settings.Account.IsConfigured() {
		return target{}, fmt.Errorf("%w: no signed-in account, run sheetpost login", domain.ErrAuthExpired)
	}

	t := target{userID: settings.Account.UserID, sheetID: sheetID, blogID: blogID}
	if t.sheetID == "" {
		t.sheetID = settings.Defaults.SheetID
	}
	if t.blogID == "" {
		t.blogID = settings.Defaults.BlogID
	}
	if needSheet && t.sheetID == "" {
		return target{}, fmt.Errorf("%w: sheet_id is required (no default configured)", domain.ErrInvalidInput)
	}
	if needBlog && t.blogID == "" {
		return target{}, fmt.Errorf("%w: blog_id is required (no default configured)", domain.ErrInvalidInput)
	}
	return t, nil
}
