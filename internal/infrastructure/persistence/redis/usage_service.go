package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/mealsmith/v2/internal/infrastructure/config"
	"github.com/mealsmith/v2/internal/ports/outbound"
)

// usageKeyTTLDays keeps counters around slightly past their day so a
// run straddling midnight still reads its own writes
const usageKeyTTLDays = 2

// UsageService tracks the free-tier daily fill quota in Redis counters
type UsageService struct {
	client *redis.Client
	cfg    config.QuotaConfig
	logger *zap.Logger
}

// NewUsageService creates a Redis-backed usage service
func NewUsageService(client *redis.Client, cfg config.QuotaConfig, logger *zap.Logger) outbound.UsageService {
	return &UsageService{
		client: client,
		cfg:    cfg,
		logger: logger.Named("usage-service"),
	}
}

func usageKey(userID uuid.UUID, dayKey string) string {
	return fmt.Sprintf("usage:fills:%s:%s", userID, dayKey)
}

// DailyUsage reads the fill counter for one user and day
func (s *UsageService) DailyUsage(ctx context.Context, userID uuid.UUID, dayKey string) (outbound.DailyUsage, error) {
	if s.cfg.Unlimited {
		return outbound.DailyUsage{Unlimited: true}, nil
	}

	used, err := s.client.Get(ctx, usageKey(userID, dayKey)).Int()
	if err != nil && err != redis.Nil {
		return outbound.DailyUsage{}, fmt.Errorf("read usage counter: %w", err)
	}

	return outbound.DailyUsage{Limit: s.cfg.DailyFillLimit, Used: used}, nil
}

// RecordFills adds consumed fills to the day's counter
func (s *UsageService) RecordFills(ctx context.Context, userID uuid.UUID, dayKey string, count int) error {
	if count <= 0 || s.cfg.Unlimited {
		return nil
	}

	key := usageKey(userID, dayKey)
	pipe := s.client.TxPipeline()
	pipe.IncrBy(ctx, key, int64(count))
	pipe.Expire(ctx, key, usageKeyTTLDays*24*time.Hour)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("record usage: %w", err)
	}

	s.logger.Debug("Recorded quota usage",
		zap.String("user_id", userID.String()),
		zap.String("day_key", dayKey),
		zap.Int("count", count),
	)
	return nil
}
