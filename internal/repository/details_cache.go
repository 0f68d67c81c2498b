package repository

import (
    "context"
    "fmt"
    "time"

    "github.com/redis/go-redis/v9"

    "github.com/priyam-343/ARISTAYA-backend-ecommerce/pkg/logger"
    "go.uber.org/zap"
)

// DetailsCache 买家侧支付详情的 cache-aside 缓存（key: 网关支付号）。
// redis 不可用时读写都静默降级到数据库路径。
type DetailsCache struct {
    cache *redis.Client
    ttl   time.Duration
}

func NewDetailsCache(cache *redis.Client, ttl time.Duration) *DetailsCache {
    if ttl <= 0 {
        ttl = 10 * time.Minute
    }
    return &DetailsCache{cache: cache, ttl: ttl}
}

func (c *DetailsCache) key(gatewayPaymentID string) string {
    return fmt.Sprintf("payment:details:%s", gatewayPaymentID)
}

// Get 返回缓存体；miss 或 redis 出错均返回 ok=false
func (c *DetailsCache) Get(ctx context.Context, gatewayPaymentID string) ([]byte, bool) {
    if c == nil || c.cache == nil {
        return nil, false
    }
    data, err := c.cache.Get(ctx, c.key(gatewayPaymentID)).Bytes()
    if err != nil {
        if err != redis.Nil {
            logger.Warn("details cache get failed", zap.Error(err))
        }
        return nil, false
    }
    return data, true
}

func (c *DetailsCache) Set(ctx context.Context, gatewayPaymentID string, payload []byte) {
    if c == nil || c.cache == nil {
        return
    }
    if err := c.cache.Set(ctx, c.key(gatewayPaymentID), payload, c.ttl).Err(); err != nil {
        logger.Warn("details cache set failed", zap.Error(err))
    }
}

// Invalidate 状态迁移后清缓存，避免 pending 视图残留
func (c *DetailsCache) Invalidate(ctx context.Context, gatewayPaymentID string) {
    if c == nil || c.cache == nil || gatewayPaymentID == "" {
        return
    }
    if err := c.cache.Del(ctx, c.key(gatewayPaymentID)).Err(); err != nil {
        logger.Warn("details cache invalidate failed", zap.Error(err))
    }
}
