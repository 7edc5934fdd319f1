package redis

import (
	"context"
	"customer-directory/internal/config"
	"customer-directory/internal/domain/customer"
	"customer-directory/internal/pkg/apperrors"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Client is the subset of *goredis.Client used by CustomerStore.
type Client interface {
	Get(ctx context.Context, key string) *goredis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *goredis.StatusCmd
}

var _ Client = (*goredis.Client)(nil)

func NewClient(ctx context.Context, cfg config.RedisConfig, logger *slog.Logger) (*goredis.Client, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("redis address is empty in configuration")
	}

	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis on connect: %w", err)
	}

	logger.Info("Successfully connected to Redis.", "addr", cfg.Addr, "db", cfg.DB)
	return client, nil
}

// CustomerStore keeps the whole collection as one JSON value under a single key.
type CustomerStore struct {
	client Client
	key    string
	logger *slog.Logger
}

var _ customer.Store = (*CustomerStore)(nil)

func NewCustomerStore(client Client, key string, logger *slog.Logger) *CustomerStore {
	if client == nil {
		panic("redis client cannot be nil for CustomerStore")
	}
	if key == "" {
		panic("redis key cannot be empty for CustomerStore")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to redis NewCustomerStore, using default stderr handler")
	}
	return &CustomerStore{
		client: client,
		key:    key,
		logger: logger.With("component", "RedisCustomerStore", "key", key),
	}
}

func (s *CustomerStore) Load(ctx context.Context) (customer.Collection, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			s.logger.WarnContext(ctx, "Customer key does not exist")
			return nil, apperrors.WrapStoreReadError(err, "customer key does not exist")
		}
		s.logger.ErrorContext(ctx, "Failed to read customer key", slog.Any("error", err))
		return nil, apperrors.WrapStoreReadError(err, "failed to read customer key")
	}

	var customers customer.Collection
	if err := json.Unmarshal(data, &customers); err != nil {
		s.logger.ErrorContext(ctx, "Customer key does not contain a valid customer list", slog.Any("error", err))
		return nil, apperrors.WrapStoreReadError(err, "failed to parse customer key")
	}
	return customers, nil
}

func (s *CustomerStore) Save(ctx context.Context, customers customer.Collection) error {
	if customers == nil {
		customers = customer.Collection{}
	}
	data, err := json.Marshal(customers)
	if err != nil {
		return apperrors.WrapStoreWriteError(err, "failed to encode customers")
	}

	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		s.logger.ErrorContext(ctx, "Failed to write customer key", slog.Any("error", err))
		return apperrors.WrapStoreWriteError(err, "failed to write customer key")
	}
	s.logger.DebugContext(ctx, "Wrote customers to redis", slog.Int("count", len(customers)))
	return nil
}
