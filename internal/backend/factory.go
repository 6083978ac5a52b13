package backend

import (
	"context"
	"fmt"
	"log/slog"

	"expnote/internal/amqp"
	"expnote/internal/ledger"
	"expnote/internal/ledger/memory"
	applog "expnote/internal/log"
	"expnote/internal/services"
	"expnote/internal/storage"
)

// PublisherDialer opens the event publisher. Tests replace it.
type PublisherDialer func(url, exchange, queue string) (services.EventPublisher, error)

var _ Factory = (*DefaultFactory)(nil)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *slog.Logger
	dial   PublisherDialer
}

// NewFactory creates a new backend factory
func NewFactory(logger *slog.Logger) *DefaultFactory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{
		logger: logger,
		dial:   dialAMQP,
	}
}

// WithDialer overrides how the AMQP publisher is opened
func (f *DefaultFactory) WithDialer(dial PublisherDialer) *DefaultFactory {
	f.dial = dial
	return f
}

func dialAMQP(url, exchange, queue string) (services.EventPublisher, error) {
	client, err := amqp.NewClient(url, exchange, queue)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var store ledger.Store
	switch config.Type {
	case SQLiteBackend:
		repo, err := storage.NewSQLiteRepository(config.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
		}
		store = repo
	case MemoryBackend:
		store = memory.New()
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}

	publisher := f.createPublisher(ctx, config)
	service := services.NewLedgerService(store, publisher)

	f.logger.InfoContext(ctx, "Initialized ledger backend",
		applog.FieldComponent, applog.ComponentBackend,
		applog.FieldBackend, config.Type.String(),
		applog.FieldDBPath, config.SQLiteDBPath,
		"amqp_enabled", publisher != nil)

	return &BackendResult{
		Service: service,
		Cleanup: service.Close,
	}, nil
}

// createPublisher returns nil when events are disabled or the broker is
// unreachable; the ledger works without it.
func (f *DefaultFactory) createPublisher(ctx context.Context, config Config) services.EventPublisher {
	if config.AMQPURL == "" {
		return nil
	}
	publisher, err := f.dial(config.AMQPURL, config.AMQPExchange, config.AMQPQueue)
	if err != nil {
		f.logger.WarnContext(ctx, "Failed to initialize AMQP client, continuing without ledger events",
			applog.FieldComponent, applog.ComponentBackend,
			applog.FieldError, err)
		return nil
	}
	f.logger.InfoContext(ctx, "Initialized AMQP client",
		applog.FieldComponent, applog.ComponentBackend,
		"exchange", config.AMQPExchange,
		"queue", config.AMQPQueue)
	return publisher
}
