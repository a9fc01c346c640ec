package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/desertthunder/spotimcp/internal/server"
	"github.com/desertthunder/spotimcp/internal/shared"
	"github.com/desertthunder/spotimcp/internal/tools"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/urfave/cli/v3"
)

// ServeStdio serves the tools over stdin/stdout until EOF or an interrupt.
//
// Credentials are checked per call, so a missing variable surfaces as a tool error rather than a startup failure.
func (r *Runner) ServeStdio(ctx context.Context, cmd *cli.Command) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := tools.NewServer(shared.AppVersion, r.toolset(tools.StdioNames)...)
	stdio := mcpserver.NewStdioServer(s)
	stdio.SetErrorLogger(r.logger.StandardLog())

	r.logger.Info("serving tools over stdio")
	if err := stdio.Listen(ctx, r.input, r.output); err != nil && !isShutdown(err) {
		return fmt.Errorf("stdio server: %w", err)
	}
	return nil
}

// ServeHTTP serves the tools over stateless streamable HTTP until an interrupt.
//
// Unlike stdio, every credential must be present at startup.
func (r *Runner) ServeHTTP(ctx context.Context, cmd *cli.Command) error {
	if err := r.config.Validate(); err != nil {
		return err
	}

	cfg := r.config.Server
	if cmd.IsSet("host") {
		cfg.Host = cmd.String("host")
	}
	if cmd.IsSet("port") {
		cfg.Port = cmd.Int("port")
	}
	if cfg.Port < 0 || cfg.Port > 65535 {
		return fmt.Errorf("%w: port %d", shared.ErrInvalidFlag, cfg.Port)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := tools.NewServer(shared.AppVersion, r.toolset(tools.RemoteNames)...)
	mcpHandler := server.NewMCPHandler(s, cfg.Endpoint)

	router := server.NewBasicRouter()
	router.Use(server.RequestID(), server.Logging(r.logger))
	router.Handler(server.HealthHandler{Name: tools.ServerName, Version: shared.AppVersion})
	router.Handler(mcpHandler)

	srv := server.New(cfg.Addr(), router, r.logger)
	r.logger.Info("serving tools over http", "endpoint", mcpHandler.Routes()[0], "routes", router.Routes())
	return srv.Run(ctx)
}

func isShutdown(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, io.EOF)
}
