package router

import (
	"context"
	"strconv"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"

	"mytube.com/cmd/api/pack"
	"mytube.com/pkg/errno"
	"mytube.com/pkg/security"
)

// rateLimitFunc counts requests per client IP. Redis trouble lets the request
// through rather than taking the API down with it.
func rateLimitFunc(l *security.RateLimiter) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		if l == nil {
			c.Next(ctx)
			return
		}
		res, err := l.CheckLimit(ctx, c.ClientIP())
		if err != nil {
			hlog.CtxWarnf(ctx, "rate limiter unavailable: %v", err)
			c.Next(ctx)
			return
		}
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(res.Remaining, 10))
		if !res.Allowed {
			c.Header("Retry-After", strconv.Itoa(int(res.RetryAfter.Seconds()+0.5)))
			pack.SendError(ctx, c, errno.TooManyRequestErr)
			return
		}
		c.Next(ctx)
	}
}
