package router

import (
	"fmt"
	"strings"

	"github.com/aurelia-jewelry/aurelia/internal/http/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimitKeyFunc derives the rate limit key for a request.
type RateLimitKeyFunc func(*gin.Context) string

// RateLimitRule is a fixed-window limit.
type RateLimitRule struct {
	Prefix        string
	WindowSeconds int
	MaxRequests   int
	Message       string
}

var rateLimitScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
	redis.call("EXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("TTL", KEYS[1])
return {current, ttl}
`)

// RateLimitMiddleware enforces a fixed-window limit backed by Redis. A nil
// client disables the limit entirely.
func RateLimitMiddleware(client *redis.Client, rule RateLimitRule, keyFunc RateLimitKeyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if client == nil || rule.WindowSeconds <= 0 || rule.MaxRequests <= 0 {
			c.Next()
			return
		}

		key := ""
		if keyFunc != nil {
			key = strings.TrimSpace(keyFunc(c))
		}
		if key == "" {
			key = c.ClientIP()
		}
		if rule.Prefix != "" {
			key = fmt.Sprintf("%s:%s", rule.Prefix, key)
		}

		result, err := rateLimitScript.Run(c.Request.Context(), client, []string{key}, rule.WindowSeconds).Result()
		if err != nil {
			response.Error(c, response.CodeInternal, "rate limit check unavailable")
			c.Abort()
			return
		}

		values, ok := result.([]interface{})
		if !ok || len(values) < 2 {
			response.Error(c, response.CodeInternal, "rate limit check unavailable")
			c.Abort()
			return
		}
		count, ok := toInt64(values[0])
		if !ok {
			response.Error(c, response.CodeInternal, "rate limit check unavailable")
			c.Abort()
			return
		}
		ttlSeconds, _ := toInt64(values[1])
		if count > int64(rule.MaxRequests) {
			waitSeconds := int(ttlSeconds)
			if waitSeconds < 1 {
				waitSeconds = rule.WindowSeconds
			}
			if waitSeconds < 1 {
				waitSeconds = 1
			}
			msg := strings.TrimSpace(rule.Message)
			if msg == "" {
				msg = "too many requests"
			}
			response.TooManyRequests(c, fmt.Sprintf("%s, retry in %d seconds", msg, waitSeconds))
			c.Abort()
			return
		}

		c.Next()
	}
}

// KeyByIP keys the limit on the client address.
func KeyByIP(c *gin.Context) string {
	return c.ClientIP()
}

func toInt64(value interface{}) (int64, bool) {
	switch v := value.(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case uint64:
		return int64(v), true
	case uint32:
		return int64(v), true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}
