package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"

	"incubator-portal-backend/internal/config"
	"incubator-portal-backend/internal/jobs"
	"incubator-portal-backend/internal/logger"
	"incubator-portal-backend/internal/repository/firestore"
	"incubator-portal-backend/internal/scheduler"
	"incubator-portal-backend/internal/service"
)

// Standalone outbox delivery worker. Deploy this instead of the in-process
// scheduler when the API runs with more than one replica, so a single
// worker owns the retry loop.
func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.Bool("run-once", false, "Run one delivery pass and exit")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Outbox Delivery Worker...", "log_level", cfg.Log.Level)

	ctx := context.Background()

	// Initialize Firebase
	logger.Info("Connecting to Firebase...", "project_id", cfg.Firebase.ProjectID)
	var opts []option.ClientOption
	if cfg.Firebase.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.Firebase.CredentialsFile))
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.Firebase.ProjectID}, opts...)
	if err != nil {
		logger.Error("Failed to initialize Firebase app", "error", err)
		log.Fatalf("Failed to initialize Firebase app: %v", err)
	}

	fsClient, err := app.Firestore(ctx)
	if err != nil {
		logger.Error("Failed to create Firestore client", "error", err)
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer fsClient.Close()
	logger.Info("Firebase connection established")

	// Initialize Repositories
	store := firestore.NewStore(fsClient)

	// Initialize Services
	emailSvc := service.NewEmailService(
		cfg.Email.APIKey,
		cfg.Email.From,
		cfg.Email.FromName,
		cfg.Email.AppURL,
		store.OutboxRepository,
	)

	// Initialize Job Runner
	jobRunner := jobs.NewJobRunner(store.OutboxRepository, &jobs.Services{Email: emailSvc}, cfg)

	if *runOnce {
		logger.Info("Running delivery pass once")
		jobRunner.DeliverOutbox()
		logger.Info("Delivery pass completed")
		return
	}

	// Initialize Scheduler
	cronScheduler := scheduler.NewScheduler(jobRunner)

	// Start scheduler
	cronScheduler.Start()
	logger.Info("Outbox worker is running. Press Ctrl+C to stop.")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down outbox worker...")
	cronScheduler.Stop()
	logger.Info("Outbox worker stopped. Goodbye!")
}
