package security

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiter 固定窗口限流，计数保存在 Redis，多个实例共享同一个窗口
type RateLimiter struct {
	redis       redis.Cmdable
	windowSize  time.Duration
	maxRequests int64
	now         func() time.Time
}

// RateLimitResult 限流结果
type RateLimitResult struct {
	Allowed    bool          `json:"allowed"`
	Remaining  int64         `json:"remaining"`
	ResetTime  time.Time     `json:"reset_time"`
	RetryAfter time.Duration `json:"retry_after"`
}

func NewRateLimiter(client redis.Cmdable, windowSize time.Duration, maxRequests int) *RateLimiter {
	if windowSize < time.Second {
		windowSize = time.Second
	}
	return &RateLimiter{
		redis:       client,
		windowSize:  windowSize,
		maxRequests: int64(maxRequests),
		now:         time.Now,
	}
}

// CheckLimit counts one request against key in the current window.
func (rl *RateLimiter) CheckLimit(ctx context.Context, key string) (*RateLimitResult, error) {
	now := rl.now()
	windowKey, reset := fixedWindow(key, now, rl.windowSize)

	pipe := rl.redis.TxPipeline()
	incrCmd := pipe.Incr(ctx, windowKey)
	pipe.Expire(ctx, windowKey, rl.windowSize)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}
	return rl.result(incrCmd.Val(), now, reset), nil
}

func (rl *RateLimiter) result(count int64, now, reset time.Time) *RateLimitResult {
	res := &RateLimitResult{
		Allowed:   count <= rl.maxRequests,
		Remaining: max(rl.maxRequests-count, 0),
		ResetTime: reset,
	}
	if !res.Allowed {
		res.RetryAfter = reset.Sub(now)
	}
	return res
}

// fixedWindow returns the redis key of the window containing now and the time it closes.
func fixedWindow(key string, now time.Time, size time.Duration) (string, time.Time) {
	secs := int64(size / time.Second)
	idx := now.Unix() / secs
	return fmt.Sprintf("ratelimit:%s:%d", key, idx), time.Unix((idx+1)*secs, 0)
}
