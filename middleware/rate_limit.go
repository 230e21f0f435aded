package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/dasgmd/learn-gita/config"
	"github.com/dasgmd/learn-gita/utils"
)

type clientLimiter struct {
	bucket  *rate.Limiter
	expires time.Time
}

var (
	clients   = map[string]*clientLimiter{}
	clientsMu sync.Mutex
)

// RateLimit applies a per-IP token bucket sized from RateLimitPerMinute.
// Idle buckets are dropped after five minutes so the map stays bounded.
func RateLimit() gin.HandlerFunc {
	perMinute := max(config.Get().RateLimitPerMinute, 1)
	limit := rate.Every(time.Minute / time.Duration(perMinute))
	burst := max(perMinute/2, 1)

	return func(ctx *gin.Context) {
		if !allow(ctx.ClientIP(), limit, burst) {
			utils.Error(ctx, http.StatusTooManyRequests, 42901, "rate limit exceeded")
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}

func allow(key string, limit rate.Limit, burst int) bool {
	clientsMu.Lock()
	defer clientsMu.Unlock()

	now := time.Now()
	for k, cl := range clients {
		if now.After(cl.expires) {
			delete(clients, k)
		}
	}

	cl, ok := clients[key]
	if !ok {
		cl = &clientLimiter{bucket: rate.NewLimiter(limit, burst)}
		clients[key] = cl
	}
	cl.expires = now.Add(5 * time.Minute)
	return cl.bucket.Allow()
}
