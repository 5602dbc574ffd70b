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

	"github.com/LoriCiv/ten99/internal/bootstrap"
	"github.com/LoriCiv/ten99/internal/config"
	"github.com/LoriCiv/ten99/internal/core/domain"
	"github.com/LoriCiv/ten99/internal/observability/logging"
	"github.com/LoriCiv/ten99/internal/observability/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	slog.SetDefault(logging.NewJSONLogger("worker", cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	workerMetrics := metrics.NewWorkerMetrics("worker")
	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", workerMetrics.Handler())
	metricsServer := &http.Server{
		Addr:    ":" + cfg.WorkerMetricsPort,
		Handler: metricsMux,
	}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("worker metrics server error", "error", err)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsServer.Shutdown(shutdownCtx)
	}()

	slog.Info("worker subscribed", "subject", cfg.NATSSubject)
	err = app.Queue.SubscribeProposals(ctx, func(handlerCtx context.Context, draft domain.ProposalDraft) error {
		workerMetrics.StartIntake()
		start := time.Now()

		intakeCtx, cancel := context.WithTimeout(handlerCtx, 30*time.Second)
		defer cancel()

		_, intakeErr := app.Inbox.Intake(intakeCtx, draft)
		workerMetrics.FinishIntake("worker", time.Since(start), intakeErr)
		return intakeErr
	})
	if err != nil {
		log.Fatalf("worker subscribe error: %v", err)
	}
}
