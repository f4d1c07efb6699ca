package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/iisgiua/giuaschool-colloqui/pkg/redis"
	"github.com/iisgiua/giuaschool-colloqui/pkg/response"
)

// RateLimit limitazione di frequenza su finestra Redis.
// limit: richieste massime nella finestra; window: durata della finestra.
// Con rdb nil o Redis in errore la richiesta passa (stessa politica di JWTAuth).
func RateLimit(rdb *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("rate_limit:%s:%s", c.ClientIP(), c.FullPath())
		allowed, err := rdb.CheckRateLimit(c.Request.Context(), key, limit, window)
		if err != nil {
			c.Next()
			return
		}

		if !allowed {
			response.Error(c, http.StatusTooManyRequests, 10004, "troppe richieste, riprovare più tardi")
			c.Abort()
			return
		}

		c.Next()
	}
}
