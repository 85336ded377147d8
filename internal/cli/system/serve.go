package system

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/server"
	"github.com/julianstephens/habitual/internal/session"
)

type ServeCmd struct {
	Addr string `help:"Listen address (overrides server.addr)."`
}

func (c *ServeCmd) Run(ctx *cli.Context) error {
	addr := ctx.Config.Server.Addr
	if c.Addr != "" {
		addr = c.Addr
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	defer ln.Close()

	port := 0
	if tcp, ok := ln.Addr().(*net.TCPAddr); ok {
		port = tcp.Port
	}
	lock, err := session.Acquire(ctx.Config.Dir, port)
	if err != nil {
		return err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			logger.Warn("Failed to release session lock", "error", err)
		}
	}()

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx.Printf("Serving habitual API on http://%s (backend: %s)\n", ln.Addr(), ctx.Config.Storage.Backend)
	srv := server.New(ctx.Store, ctx.Config.Server, server.WithBeforeDelete(ctx.BackupBeforeDelete))
	return srv.Serve(sigCtx, ln)
}
