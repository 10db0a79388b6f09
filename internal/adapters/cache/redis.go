package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/SscSPs/loandesk_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/loandesk_backend/internal/core/ports/repositories"
	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects to redisURL. It returns nil when the URL is empty or the
// server does not answer, and the service then runs without a cache.
func NewRedisClient(ctx context.Context, redisURL string) *redis.Client {
	if redisURL == "" {
		return nil
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("Redis URL invalid: %v (continuing without cache)", err)
		return nil
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Printf("Redis connection warning: %v (continuing without cache)", err)
		_ = client.Close()
		return nil
	}
	log.Println("Redis connected successfully")
	return client
}

// DashboardCache keeps computed dashboards as JSON under dashboard:<agency_id>.
// A nil client turns every call into a no-op miss.
type DashboardCache struct {
	client *redis.Client
}

var _ portsrepo.DashboardCache = (*DashboardCache)(nil)

func NewDashboardCache(client *redis.Client) *DashboardCache {
	return &DashboardCache{client: client}
}

func dashboardKey(agencyID string) string {
	return "dashboard:" + agencyID
}

func (c *DashboardCache) GetDashboard(ctx context.Context, agencyID string) (*domain.DashboardStats, bool, error) {
	if c.client == nil {
		return nil, false, nil
	}
	s, err := c.client.Get(ctx, dashboardKey(agencyID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get dashboard: %w", err)
	}
	var stats domain.DashboardStats
	if err := json.Unmarshal([]byte(s), &stats); err != nil {
		return nil, false, fmt.Errorf("decode cached dashboard: %w", err)
	}
	return &stats, true, nil
}

func (c *DashboardCache) SetDashboard(ctx context.Context, stats domain.DashboardStats, ttl time.Duration) error {
	if c.client == nil {
		return nil
	}
	b, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("encode dashboard: %w", err)
	}
	return c.client.Set(ctx, dashboardKey(stats.AgencyID), b, ttl).Err()
}

func (c *DashboardCache) InvalidateDashboard(ctx context.Context, agencyID string) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, dashboardKey(agencyID)).Err()
}
