package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type windowState struct {
	start time.Time
	count int
}

// MemoryRateLimit is a per-process fixed-window limiter keyed by client IP.
// It backs RedisRateLimit when no Redis is configured: single-instance
// deployments keep a working limiter, multi-instance ones should point
// REDIS_ADDR at a shared Redis.
func MemoryRateLimit(maxRequests int, window time.Duration) gin.HandlerFunc {
	var mu sync.Mutex
	windows := make(map[string]*windowState)

	return func(c *gin.Context) {
		ip := c.ClientIP()
		now := time.Now()

		mu.Lock()
		w, ok := windows[ip]
		if !ok || now.Sub(w.start) > window {
			w = &windowState{start: now}
			windows[ip] = w
		}
		w.count++
		count := w.count
		mu.Unlock()

		if count > maxRequests {
			RLBlocked.WithLabelValues(c.FullPath()).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}

		RLRequests.WithLabelValues(c.FullPath()).Inc()
		c.Next()
	}
}
