package jobs

import (
	"incubator-portal-backend/internal/config"
	"incubator-portal-backend/internal/logger"
	"incubator-portal-backend/internal/repository"
	"incubator-portal-backend/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	outbox   repository.OutboxRepository
	services *Services
	config   *config.Config
}

// Services holds all service dependencies needed by jobs
type Services struct {
	Email service.EmailService
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(outbox repository.OutboxRepository, services *Services, cfg *config.Config) *JobRunner {
	return &JobRunner{
		outbox:   outbox,
		services: services,
		config:   cfg,
	}
}

// Config exposes the configuration for schedule registration
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}
