package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/NicolasGomez268/PuntoTecno/internal/apierror"
)

// RateLimiter caps requests per client IP using a fixed window counter in
// Redis. A nil client disables limiting (unit tests, redis outage at boot).
func RateLimiter(rdb *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	return limitBy(rdb, "ratelimit", limit, window)
}

// LoginRateLimiter is a tighter limit for the credential endpoints, keyed
// separately so a burst of API traffic cannot mask a brute-force attempt.
func LoginRateLimiter(rdb *redis.Client) gin.HandlerFunc {
	return limitBy(rdb, "ratelimit:login", 10, time.Minute)
}

func limitBy(rdb *redis.Client, prefix string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("%s:%s", prefix, c.ClientIP())
		count, err := rdb.Incr(c.Request.Context(), key).Result()
		if err != nil {
			// Redis being down must not take the API with it.
			c.Next()
			return
		}
		if count == 1 {
			rdb.Expire(c.Request.Context(), key, window)
		}
		if count > int64(limit) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("Demasiadas solicitudes. Intente nuevamente en unos minutos"))
			return
		}
		c.Next()
	}
}
