package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"

	natsadapter "github.com/samirrijal/crestfield/internal/adapters/nats"
	"github.com/samirrijal/crestfield/internal/adapters/notify"
	"github.com/samirrijal/crestfield/internal/adapters/postgres"
	"github.com/samirrijal/crestfield/internal/core/usecases"
	"github.com/samirrijal/crestfield/internal/pkg/config"
	"github.com/samirrijal/crestfield/internal/pkg/logging"
	"github.com/samirrijal/crestfield/internal/workflows"
)

// intake consumes submitted inquiries from JetStream and runs a Temporal
// follow-up workflow for each one.
func main() {
	cfg, err := config.Load("crestfield-intake")
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := postgres.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	notifier, err := notify.New(30*time.Second, cfg.Intake.NotifyURL)
	if err != nil {
		log.Fatalf("notifier: %v", err)
	}

	// Connect to Temporal
	c, err := client.Dial(client.Options{
		HostPort:  cfg.Temporal.HostPort,
		Namespace: cfg.Temporal.Namespace,
		Logger:    slog.Default(),
	})
	if err != nil {
		log.Fatalf("temporal client: %v", err)
	}
	defer c.Close()

	w := worker.New(c, cfg.Temporal.TaskQueue, worker.Options{})
	w.RegisterWorkflow(workflows.InquiryFollowUpWorkflow)
	w.RegisterActivity(&workflows.FollowUpActivities{
		FollowUp: usecases.NewFollowUpService(postgres.NewInquiryRepo(db), notifier),
	})
	if err := w.Start(); err != nil {
		log.Fatalf("worker: %v", err)
	}
	defer w.Stop()

	sub, err := natsadapter.NewSubscriber(cfg.NATS.URL)
	if err != nil {
		log.Fatalf("nats: %v", err)
	}
	defer sub.Close()

	starter := workflows.NewStarter(c, cfg.Temporal.TaskQueue)
	if err := sub.SubscribeInquiries(ctx, starter.Start); err != nil {
		log.Fatalf("subscribe: %v", err)
	}

	slog.Info("intake worker started", "task_queue", cfg.Temporal.TaskQueue)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig.String())
}
