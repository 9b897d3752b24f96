package commercial

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"partnerhub/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// StatsCache holds statistics projections between mutations. Implementations swallow
// their own failures: a cache miss only costs a repository read.
//
// Every Invalidate advances the partner's generation. Set only stores a projection
// while the generation is still the one read before the partner was loaded, so a
// snapshot taken before a concurrent save is never written back.
type StatsCache interface {
	Get(ctx context.Context, partnerID string) (*models.PartnerStatistics, bool)
	Generation(ctx context.Context, partnerID string) (int64, error)
	Set(ctx context.Context, partnerID string, gen int64, stats models.PartnerStatistics)
	Invalidate(ctx context.Context, partnerID string)
}

const (
	statsCachePrefix = "stats:"
	statsGenSuffix   = ":gen"
	// statsGenTTL keeps generation counters well past any read-to-write window.
	statsGenTTL = 24 * time.Hour
)

var errStaleGeneration = errors.New("stats generation changed")

// RedisStatsCache stores projections as JSON under stats:<partnerId> and their
// generation counter under stats:<partnerId>:gen.
type RedisStatsCache struct {
	Client *redis.Client
	TTL    time.Duration
	Logger *zap.Logger
}

func NewRedisStatsCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisStatsCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisStatsCache{Client: client, TTL: ttl, Logger: logger}
}

func (c *RedisStatsCache) Get(ctx context.Context, partnerID string) (*models.PartnerStatistics, bool) {
	raw, err := c.Client.Get(ctx, statsCachePrefix+partnerID).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.Logger.Warn("stats cache read failed", zap.String("partnerId", partnerID), zap.Error(err))
		}
		return nil, false
	}
	var stats models.PartnerStatistics
	if err := json.Unmarshal(raw, &stats); err != nil {
		c.Logger.Warn("stats cache entry corrupt", zap.String("partnerId", partnerID), zap.Error(err))
		return nil, false
	}
	return &stats, true
}

func (c *RedisStatsCache) Generation(ctx context.Context, partnerID string) (int64, error) {
	gen, err := c.Client.Get(ctx, statsGenKey(partnerID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// Set writes stats inside a WATCH on the generation key, so an Invalidate that lands
// between the check and the write aborts the transaction.
func (c *RedisStatsCache) Set(ctx context.Context, partnerID string, gen int64, stats models.PartnerStatistics) {
	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	genKey := statsGenKey(partnerID)
	err = c.Client.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, genKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if cur != gen {
			return errStaleGeneration
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, statsCachePrefix+partnerID, raw, c.TTL)
			return nil
		})
		return err
	}, genKey)
	switch {
	case err == nil:
	case errors.Is(err, errStaleGeneration), errors.Is(err, redis.TxFailedErr):
		c.Logger.Debug("stats cache write skipped, partner changed", zap.String("partnerId", partnerID))
	default:
		c.Logger.Warn("stats cache write failed", zap.String("partnerId", partnerID), zap.Error(err))
	}
}

func (c *RedisStatsCache) Invalidate(ctx context.Context, partnerID string) {
	genKey := statsGenKey(partnerID)
	_, err := c.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, genKey)
		pipe.Expire(ctx, genKey, statsGenTTL)
		pipe.Del(ctx, statsCachePrefix+partnerID)
		return nil
	})
	if err != nil {
		c.Logger.Warn("stats cache invalidation failed", zap.String("partnerId", partnerID), zap.Error(err))
	}
}

func statsGenKey(partnerID string) string {
	return statsCachePrefix + partnerID + statsGenSuffix
}
