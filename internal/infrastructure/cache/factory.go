package cache

import (
	"time"

	"github.com/debttrack/backend/internal/domain/shared"
	"github.com/debttrack/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Factory creates the application cache based on configuration
type Factory struct {
	redisConfig   config.RedisConfig
	defaultTTL    time.Duration
	logger        *zap.Logger
	allowFallback bool
}

// FactoryOption is a functional option for configuring the factory
type FactoryOption func(*Factory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) FactoryOption {
	return func(f *Factory) {
		f.logger = logger
	}
}

// WithFallback controls whether to fall back to an in-memory cache when
// Redis is unavailable. Default is true.
func WithFallback(allow bool) FactoryOption {
	return func(f *Factory) {
		f.allowFallback = allow
	}
}

// WithFactoryDefaultTTL sets the default TTL applied to created caches
func WithFactoryDefaultTTL(ttl time.Duration) FactoryOption {
	return func(f *Factory) {
		f.defaultTTL = ttl
	}
}

// NewFactory creates a new cache factory
func NewFactory(cfg config.RedisConfig, opts ...FactoryOption) *Factory {
	f := &Factory{
		redisConfig:   cfg,
		defaultTTL:    10 * time.Minute,
		logger:        zap.NewNop(),
		allowFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Create returns a Redis cache, falling back to an in-memory cache when
// Redis is unreachable and fallback is allowed. An in-memory fallback does
// not share invalidations across instances, so it is only safe for
// single-instance deployments.
func (f *Factory) Create() (shared.Cache, error) {
	redisCache, err := NewRedisCache(f.redisConfig, WithDefaultTTL(f.defaultTTL))
	if err == nil {
		f.logger.Info("Using Redis cache", zap.String("addr", f.redisConfig.Addr()))
		return redisCache, nil
	}

	if !f.allowFallback {
		return nil, err
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory cache",
		zap.String("addr", f.redisConfig.Addr()),
		zap.Error(err))
	return NewInMemoryCache(), nil
}
