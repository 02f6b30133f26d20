package middleware

import (
	"net/http"
	"sync"
	"time"

	"taskman-app/src/logger"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	rateLimitWindow      = time.Minute
	rateLimitMaxRequests = 300
)

type rateLimitEntry struct {
	count       int
	windowStart time.Time
}

var (
	rateLimitMu      sync.Mutex
	rateLimitEntries = make(map[string]*rateLimitEntry)
)

// RateLimitMiddleware クライアントIPごとの固定ウィンドウレート制限
func RateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		now := time.Now()

		rateLimitMu.Lock()
		entry, ok := rateLimitEntries[clientIP]
		if !ok || now.Sub(entry.windowStart) >= rateLimitWindow {
			// ウィンドウを開き直すついでに期限切れエントリを掃除
			if len(rateLimitEntries) > 10000 {
				for ip, e := range rateLimitEntries {
					if now.Sub(e.windowStart) >= rateLimitWindow {
						delete(rateLimitEntries, ip)
					}
				}
			}
			entry = &rateLimitEntry{windowStart: now}
			rateLimitEntries[clientIP] = entry
		}
		entry.count++
		count := entry.count
		rateLimitMu.Unlock()

		if count > rateLimitMaxRequests {
			logger.WithFields(logrus.Fields{
				"client_ip": clientIP,
				"count":     count,
			}).Warn("レート制限に達しました")

			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "Too Many Requests",
				"retry_after": int(rateLimitWindow.Seconds()),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
