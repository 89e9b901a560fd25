package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/postroom/postroom/config"
	"github.com/postroom/postroom/internal/adapters/brevo"
	"github.com/postroom/postroom/internal/adapters/drive"
	"github.com/postroom/postroom/internal/adapters/xlsx"
	"github.com/postroom/postroom/internal/composer"
	"github.com/postroom/postroom/internal/core"
	"github.com/postroom/postroom/internal/data"
	"github.com/postroom/postroom/internal/service"
	"github.com/postroom/postroom/internal/stream"
)

// ServiceContainer holds the constructed application services.
type ServiceContainer struct {
	Store  *data.JobStore
	Broker *stream.Broker
	Opener core.DatasetOpener
	Runner *service.Runner
}

// ServiceDeps groups dependencies for NewServices.
type ServiceDeps struct {
	Config *config.AppConfig
	Logger *slog.Logger
}

// NewServices constructs the full service graph.
func NewServices(deps *ServiceDeps) (*ServiceContainer, error) {
	cfg := deps.Config
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	store := data.NewJobStore()
	broker := stream.NewBroker(stream.Options{
		Logger: logger,
		Buffer: cfg.Runner.EventBuffer,
	})
	opener := xlsx.NewOpener()

	resolver := drive.NewResolver(drive.Config{
		Timeout:  cfg.Resolver.Timeout,
		MaxBytes: cfg.Resolver.MaxBytes,
	})

	provider, err := brevo.NewClient(brevo.Config{
		APIKey:      cfg.Mailer.APIKey,
		BaseURL:     cfg.Mailer.BaseURL,
		SenderName:  cfg.Mailer.SenderName,
		SenderEmail: cfg.Mailer.SenderEmail,
		Timeout:     cfg.Mailer.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("build delivery provider: %w", err)
	}

	comp, err := composer.New()
	if err != nil {
		return nil, fmt.Errorf("build composer: %w", err)
	}

	runner, err := service.NewRunner(service.RunnerOptions{
		Store:    store,
		Broker:   broker,
		Opener:   opener,
		Resolver: resolver,
		Provider: provider,
		Composer: comp,
		Config:   cfg.Runner,
		Logger:   logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build runner: %w", err)
	}

	return &ServiceContainer{
		Store:  store,
		Broker: broker,
		Opener: opener,
		Runner: runner,
	}, nil
}
