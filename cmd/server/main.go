package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"

	httpapi "incubator-portal-backend/internal/api/http"
	"incubator-portal-backend/internal/config"
	"incubator-portal-backend/internal/identity"
	"incubator-portal-backend/internal/jobs"
	"incubator-portal-backend/internal/logger"
	"incubator-portal-backend/internal/repository/firestore"
	"incubator-portal-backend/internal/scheduler"
	"incubator-portal-backend/internal/security"
	"incubator-portal-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Incubator Portal Backend...", "log_level", cfg.Log.Level)

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

	authClient, err := app.Auth(ctx)
	if err != nil {
		logger.Error("Failed to create Auth client", "error", err)
		log.Fatalf("Failed to create Auth client: %v", err)
	}
	logger.Info("Firebase connection established")

	// Initialize Repositories
	store := firestore.NewStore(fsClient)

	// Initialize Providers
	provider := identity.NewFirebaseProvider(authClient)
	tokens := security.NewTokenManager(cfg.Token.Secret, time.Duration(cfg.Token.ExpiryHours)*time.Hour)

	// Initialize Services
	emailSvc := service.NewEmailService(
		cfg.Email.APIKey,
		cfg.Email.From,
		cfg.Email.FromName,
		cfg.Email.AppURL,
		store.OutboxRepository,
	)
	applicationSvc := service.NewApplicationService(
		store.SubmissionRepository,
		store.UserRepository,
		provider,
		emailSvc,
	)
	mentorRequestSvc := service.NewMentorRequestService(
		store.MentorRequestRepository,
		store.MentorRepository,
		tokens,
		emailSvc,
	)
	mentorSvc := service.NewMentorService(
		store.MentorRepository,
		provider,
		emailSvc,
	)
	userSvc := service.NewUserService(store.UserRepository, provider, emailSvc)
	roleSvc := service.NewRoleService(provider, store.MentorRepository, store.UserRepository)
	eventSvc := service.NewEventService(store.EventRepository)

	// Initialize HTTP API
	handlers := &httpapi.Handlers{
		Applications:   httpapi.NewApplicationHandler(applicationSvc),
		MentorRequests: httpapi.NewMentorRequestHandler(mentorRequestSvc),
		Mentors:        httpapi.NewMentorHandler(mentorSvc),
		Users:          httpapi.NewUserHandler(userSvc),
		Events:         httpapi.NewEventHandler(eventSvc),
		Auth:           httpapi.NewAuthMiddleware(roleSvc),
	}
	router := httpapi.NewRouter(handlers)

	// Start the in-process outbox retry worker
	jobRunner := jobs.NewJobRunner(store.OutboxRepository, &jobs.Services{Email: emailSvc}, cfg)
	cronScheduler := scheduler.NewScheduler(jobRunner)
	cronScheduler.Start()

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down server...")
	cronScheduler.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", "error", err)
	}
	logger.Info("Server stopped. Goodbye!")
}
