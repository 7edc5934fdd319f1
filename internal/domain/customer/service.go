package customer

import (
	"context"
	"customer-directory/internal/event"
	"customer-directory/internal/infrastructure/monitoring"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"
)

type CustomerService interface {
	ListCustomers(ctx context.Context) (Collection, error)
	CreateCustomer(ctx context.Context, cust Customer) error
}

var _ CustomerService = (*customerService)(nil)

type customerService struct {
	store   Store
	pub     event.EventPublisher
	latency time.Duration
	logger  *slog.Logger

	// Serializes the load-check-save sequence of CreateCustomer.
	writeMu sync.Mutex
}

type Option func(*customerService)

// WithSimulatedLatency delays every list response and every write by d.
func WithSimulatedLatency(d time.Duration) Option {
	return func(s *customerService) {
		s.latency = d
	}
}

func NewCustomerService(store Store, pub event.EventPublisher, logger *slog.Logger, opts ...Option) CustomerService {
	if store == nil {
		panic("customer store cannot be nil")
	}

	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCustomerService, using default stderr handler")
	}

	if pub == nil {
		logger.Warn("Warning: No event publisher provided to NewCustomerService, events will be dropped")
		pub = event.NewNoopPublisher(logger)
	}

	s := &customerService{
		store:  store,
		pub:    pub,
		logger: logger.With(slog.String("component", "customerService")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func NewCustomerEventPayload(cust Customer) event.CustomerEventPayload {
	return event.CustomerEventPayload{
		FirstName:    cust.FirstName,
		LastName:     cust.LastName,
		Email:        cust.Email,
		BusinessName: cust.BusinessName,
	}
}

func (s *customerService) ListCustomers(ctx context.Context) (Collection, error) {
	s.logger.DebugContext(ctx, "Attempting to list customers")

	if err := s.simulateLatency(ctx); err != nil {
		return nil, err
	}

	customers, err := s.load(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Store error listing customers", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	if customers == nil {
		customers = Collection{}
	}

	s.logger.InfoContext(ctx, "Successfully retrieved customers", slog.Int("count", len(customers)))
	return customers, nil
}

func (s *customerService) CreateCustomer(ctx context.Context, cust Customer) error {
	logCtx := s.logger.With(slog.String("email", cust.Email))
	logCtx.InfoContext(ctx, "Attempting to create new customer")

	if err := cust.Validate(); err != nil {
		logCtx.WarnContext(ctx, "Validation failed", slog.Any("error", err))
		monitoring.RecordCustomerRejected("validation")
		return err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	customers, err := s.load(ctx)
	if err != nil {
		logCtx.ErrorContext(ctx, "Store error loading customers before create", slog.Any("error", err))
		return fmt.Errorf("failed to load customers: %w", err)
	}

	if _, exists := customers.FindByEmail(cust.Email); exists {
		logCtx.WarnContext(ctx, "Customer with this email already exists")
		monitoring.RecordCustomerRejected("duplicate")
		return ErrDuplicateEmail
	}

	updated := customers.Prepend(cust)

	if err := s.simulateLatency(ctx); err != nil {
		return err
	}

	start := time.Now()
	err = s.store.Save(ctx, updated)
	monitoring.RecordStoreOperation("save", statusOf(err), time.Since(start))
	if err != nil {
		logCtx.ErrorContext(ctx, "Store failed to save customers", slog.Any("error", err))
		return fmt.Errorf("failed to save new customer: %w", err)
	}

	monitoring.RecordCustomerCreated()
	logCtx.InfoContext(ctx, "Successfully saved new customer, publishing creation event", slog.Int("count", len(updated)))

	createdEvent := event.NewCustomerCreatedEvent(NewCustomerEventPayload(cust))
	if pubErr := s.pub.PublishCustomerCreated(ctx, createdEvent); pubErr != nil {
		logCtx.ErrorContext(ctx, "Customer created, but FAILED to publish creation event", slog.Any("error", pubErr))
	}
	return nil
}

func (s *customerService) load(ctx context.Context) (Collection, error) {
	start := time.Now()
	customers, err := s.store.Load(ctx)
	monitoring.RecordStoreOperation("load", statusOf(err), time.Since(start))
	return customers, err
}

func (s *customerService) simulateLatency(ctx context.Context) error {
	if s.latency <= 0 {
		return nil
	}
	timer := time.NewTimer(s.latency)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func statusOf(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "error"
	}
}
