package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/agenda-marketplace/internal/domain/schedule"
)

type ScheduleCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewScheduleCache(rdb *redis.Client, ttl time.Duration, logger *slog.Logger) *ScheduleCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &ScheduleCache{rdb: rdb, ttl: ttl, logger: logger}
}

func scheduleKey(businessID uint) string {
	return "schedule:business:" + strconv.FormatUint(uint64(businessID), 10)
}

func (c *ScheduleCache) Get(ctx context.Context, businessID uint) (schedule.WeeklySchedule, bool) {
	raw, err := c.rdb.Get(ctx, scheduleKey(businessID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("schedule cache get failed", "business_id", businessID, "err", err)
		}
		return nil, false
	}

	var s schedule.WeeklySchedule
	if err := json.Unmarshal(raw, &s); err != nil {
		c.logger.Warn("schedule cache entry corrupted", "business_id", businessID, "err", err)
		return nil, false
	}
	return s, true
}

func (c *ScheduleCache) Set(ctx context.Context, businessID uint, s schedule.WeeklySchedule) {
	raw, err := json.Marshal(s)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, scheduleKey(businessID), raw, c.ttl).Err(); err != nil {
		c.logger.Warn("schedule cache set failed", "business_id", businessID, "err", err)
	}
}

func (c *ScheduleCache) Invalidate(ctx context.Context, businessID uint) {
	if err := c.rdb.Del(ctx, scheduleKey(businessID)).Err(); err != nil {
		c.logger.Warn("schedule cache invalidate failed", "business_id", businessID, "err", err)
	}
}

// NoopScheduleCache is used when redis is not configured.
type NoopScheduleCache struct{}

func (NoopScheduleCache) Get(context.Context, uint) (schedule.WeeklySchedule, bool) { return nil, false }
func (NoopScheduleCache) Set(context.Context, uint, schedule.WeeklySchedule)        {}
func (NoopScheduleCache) Invalidate(context.Context, uint)                          {}

var (
	_ schedule.Cache = (*ScheduleCache)(nil)
	_ schedule.Cache = NoopScheduleCache{}
)
