package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KINGIRIS1/qlhs-backend/pkg/redis"
	"github.com/KINGIRIS1/qlhs-backend/pkg/response"
)

// RateLimit middleware giới hạn tần suất request theo cửa sổ đếm trên Redis
// limit: số request tối đa trong cửa sổ
// window: độ dài cửa sổ
// rdb nil thì cho qua (cùng chính sách degrade với JWTAuth)
func RateLimit(rdb *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("rate_limit:%s:%s", c.ClientIP(), c.FullPath())
		allowed, err := rdb.CheckRateLimit(c.Request.Context(), key, limit, window)
		if err != nil {
			// Redis lỗi thì cho qua
			c.Next()
			return
		}

		if !allowed {
			response.Error(c, http.StatusTooManyRequests, 10004, "request quá dày, thử lại sau")
			c.Abort()
			return
		}

		c.Next()
	}
}
