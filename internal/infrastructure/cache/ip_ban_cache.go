package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/listings/backend/internal/domain/security"
	"github.com/listings/backend/internal/infrastructure/config"
)

const banSetKey = "security:banned_ips"

// NewRedisClient creates a Redis client and verifies the connection
func NewRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// IPBanCache keeps the banned-IP set hot. The database is the source
// of truth; the set is mirrored into Redis for other instances and
// into a local snapshot checked on every request. The snapshot is
// refreshed on an interval, so bans take up to one interval to apply.
type IPBanCache struct {
	client   *redis.Client
	repo     security.IPBanRepository
	logger   *zap.Logger
	ttl      time.Duration
	interval time.Duration

	mu    sync.RWMutex
	local map[string]struct{}

	stop chan struct{}
	done chan struct{}
}

// NewIPBanCache creates a cache over the given repository
func NewIPBanCache(client *redis.Client, repo security.IPBanRepository, cfg config.SecurityConfig, logger *zap.Logger) *IPBanCache {
	return &IPBanCache{
		client:   client,
		repo:     repo,
		logger:   logger.Named("ipban"),
		ttl:      cfg.BanCacheTTL,
		interval: cfg.BanRefreshInterval,
		local:    make(map[string]struct{}),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// IsBanned checks the local snapshot. It never blocks on I/O.
func (c *IPBanCache) IsBanned(ip string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, banned := c.local[ip]
	return banned
}

// Refresh reloads the banned-IP set from the database and mirrors it
// into Redis and the local snapshot
func (c *IPBanCache) Refresh(ctx context.Context) error {
	bans, err := c.repo.ListActive(ctx, time.Now())
	if err != nil {
		return fmt.Errorf("failed to load active bans: %w", err)
	}

	snapshot := make(map[string]struct{}, len(bans))
	members := make([]interface{}, 0, len(bans))
	for _, ban := range bans {
		snapshot[ban.IPAddress] = struct{}{}
		members = append(members, ban.IPAddress)
	}

	c.mu.Lock()
	c.local = snapshot
	c.mu.Unlock()

	if c.client != nil {
		pipe := c.client.TxPipeline()
		pipe.Del(ctx, banSetKey)
		if len(members) > 0 {
			pipe.SAdd(ctx, banSetKey, members...)
			pipe.Expire(ctx, banSetKey, c.ttl)
		}
		if _, err := pipe.Exec(ctx); err != nil {
			// local snapshot is already fresh; Redis mirroring is best effort
			c.logger.Warn("Failed to mirror ban set to Redis", zap.Error(err))
		}
	}

	return nil
}

// Start loads the snapshot and refreshes it on the configured interval
// until Stop is called. The refresh loop runs even when the initial load
// fails, so the ban set recovers on a later tick and Stop always has a
// loop to wait on; the caller decides whether the first error is fatal.
func (c *IPBanCache) Start(ctx context.Context) error {
	err := c.Refresh(ctx)

	go func() {
		defer close(c.done)
		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				refreshCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				if err := c.Refresh(refreshCtx); err != nil {
					c.logger.Warn("Ban set refresh failed", zap.Error(err))
				}
				cancel()
			case <-c.stop:
				return
			}
		}
	}()

	return err
}

// Stop halts the refresh loop and waits for it to exit
func (c *IPBanCache) Stop() {
	close(c.stop)
	<-c.done
}
