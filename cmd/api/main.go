package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "github.com/LoriCiv/ten99/internal/adapters/http"
	"github.com/LoriCiv/ten99/internal/bootstrap"
	"github.com/LoriCiv/ten99/internal/config"
	"github.com/LoriCiv/ten99/internal/observability/logging"
	"github.com/LoriCiv/ten99/internal/observability/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	slog.SetDefault(logging.NewJSONLogger("api", cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	router := httpadapter.NewRouter(httpadapter.RouterConfig{
		Clients:        app.Clients,
		Contacts:       app.Contacts,
		JobFiles:       app.JobFiles,
		Appointments:   app.Appointments,
		Certifications: app.Certifications,
		Share:          app.Share,
		Prefill:        app.Prefill,
		Inbox:          app.Inbox,
		Calendar:       app.Calendar,
		Public:         app.Public,
		Sessions:       app.Sessions,
		AuthSecret:     []byte(cfg.AuthSecret),
		SessionTTL:     time.Duration(cfg.SessionTTLHours) * time.Hour,
		Metrics:        metrics.NewHTTPServerMetrics("api"),
		Service:        "api",
	})

	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      router.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("api listening", "port", cfg.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("api server error: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("api shutdown error", "error", err)
	}
}
