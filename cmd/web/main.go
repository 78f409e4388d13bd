package main

import (
	"context"
	"embed"
	"errors"
	"io/fs"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/braindots/internal/config"
	"github.com/tomz197/braindots/internal/web"
)

//go:embed static
var staticFiles embed.FS

func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Fatal("Could not load config", "error", err)
	}
	if level, err := log.ParseLevel(cfg.Log.Level); err == nil {
		log.SetLevel(level)
	}

	bundle, err := fs.Sub(staticFiles, "static")
	if err != nil {
		log.Fatal("Could not open static bundle", "error", err)
	}

	addr := net.JoinHostPort(cfg.Web.Host, cfg.Web.Port)
	srv := &http.Server{
		Addr: addr,
		Handler: web.Routes(bundle, web.Options{
			SSHHost: cfg.SSH.DisplayHost,
			SSHPort: cfg.SSH.Port,
			Logger:  log.Default().WithPrefix("web"),
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	log.Info("Starting web server", "addr", "http://"+addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Could not start server", "error", err)
			done <- nil
		}
	}()

	<-done
	log.Info("Stopping web server")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Could not stop server", "error", err)
	}
}
