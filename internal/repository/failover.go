package repository

import (
	"context"
	"sync/atomic"
	"time"

	"arenda/internal/domain"

	"github.com/rs/zerolog"
)

// FailoverRateLimitStore prefers the primary store and falls back to
// the secondary when the primary errors, probing the primary again
// after a cool-down period.
type FailoverRateLimitStore struct {
	primary   domain.RateLimitStore
	fallback  domain.RateLimitStore
	logger    *zerolog.Logger
	isDown    atomic.Bool
	downSince atomic.Int64
}

const recoveryInterval = time.Minute

func NewFailoverRateLimitStore(primary, fallback domain.RateLimitStore, logger *zerolog.Logger) *FailoverRateLimitStore {
	return &FailoverRateLimitStore{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

func (r *FailoverRateLimitStore) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	if !r.isDown.Load() {
		allowed, err := r.primary.Allow(ctx, key, limit, window)
		if err == nil {
			return allowed, nil
		}
		r.logger.Error().Err(err).Msg("Primary rate-limit store failed, falling back to memory")
		r.markDown()
	} else if time.Since(time.Unix(0, r.downSince.Load())) > recoveryInterval {
		allowed, err := r.primary.Allow(ctx, key, limit, window)
		if err == nil {
			r.isDown.Store(false)
			return allowed, nil
		}
		r.markDown()
	}

	return r.fallback.Allow(ctx, key, limit, window)
}

func (r *FailoverRateLimitStore) markDown() {
	r.isDown.Store(true)
	r.downSince.Store(time.Now().UnixNano())
}
