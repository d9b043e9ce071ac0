package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/yungbote/editais-backend/internal/app"
	"github.com/yungbote/editais-backend/internal/http"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start: %v\n", err)
		os.Exit(1)
	}

	addr := ":" + a.Cfg.Port
	a.Log.Info("Server listening", "addr", addr)
	srv := &http.Server{Engine: a.Router}
	runErr := srv.Run(ctx, addr, a.Cfg.ShutdownTimeout)

	closeCtx, cancel := context.WithTimeout(context.Background(), a.Cfg.ShutdownTimeout)
	defer cancel()
	if runErr != nil {
		a.Log.Error("Server stopped", "error", runErr)
		a.Close(closeCtx)
		os.Exit(1)
	}
	a.Log.Info("Server stopped")
	a.Close(closeCtx)
}
