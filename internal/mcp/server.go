// Package mcp exposes the engine's queries as MCP tools over stdio so
// editor agents can ask about impact, dependencies, and symbols.
package mcp

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"

	"github.com/reposcope/reposcope/internal/depgraph"
	"github.com/reposcope/reposcope/internal/git"
	"github.com/reposcope/reposcope/internal/impact"
	"github.com/reposcope/reposcope/internal/indexer"
	"github.com/reposcope/reposcope/internal/symbols"
)

// QueryEngine is the read-only engine surface the tools consume. Tools never
// mutate engine state beyond triggering the initial index.
type QueryEngine interface {
	Index(ctx context.Context) error
	Stats() (indexer.Stats, error)
	DumpGraph() (*depgraph.Dump, error)
	Graph() (*depgraph.Graph, error)
	Cycles() ([][]string, error)
	Symbols() (*symbols.Map, error)
	Analyze(diff *impact.DiffRecord) (*impact.Result, error)
}

// Server manages the MCP server lifecycle.
type Server struct {
	rootDir string
	engine  QueryEngine
	gitOps  git.Operations
	mcp     *server.MCPServer
}

// NewServer creates an MCP server over an engine. The repository is indexed
// eagerly so the first tool call doesn't pay the scan cost.
func NewServer(ctx context.Context, rootDir string, engine QueryEngine, gitOps git.Operations) (*Server, error) {
	if engine == nil {
		return nil, fmt.Errorf("engine is required")
	}
	if gitOps == nil {
		gitOps = git.NewOperations()
	}

	if err := engine.Index(ctx); err != nil {
		return nil, fmt.Errorf("initial index failed: %w", err)
	}

	mcpServer := server.NewMCPServer(
		"reposcope-mcp",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	s := &Server{
		rootDir: rootDir,
		engine:  engine,
		gitOps:  gitOps,
		mcp:     mcpServer,
	}

	AddImpactTool(mcpServer, engine, gitOps, rootDir)
	AddGraphTool(mcpServer, engine)
	AddSymbolsTool(mcpServer, engine)
	AddCyclesTool(mcpServer, engine)

	return s, nil
}

// Serve starts the MCP server on stdio and blocks until shutdown.
func (s *Server) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting MCP server on stdio...")
		if err := server.ServeStdio(s.mcp); err != nil {
			errCh <- fmt.Errorf("MCP server error: %w", err)
		}
	}()

	select {
	case <-sigCh:
		log.Printf("Received shutdown signal, stopping gracefully...")
		cancel()
		return nil
	case err := <-errCh:
		cancel()
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
