package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KINGIRIS1/qlhs-backend/pkg/response"
)

// BodyLimit middleware giới hạn kích thước body toàn cục
// maxBytes: số byte tối đa cho phép (ví dụ 1<<20 = 1MB)
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}

		c.Next()

		if c.IsAborted() {
			return
		}
		for _, err := range c.Errors {
			if err.Err != nil && err.Err.Error() == "http: request body too large" {
				response.Error(c, http.StatusRequestEntityTooLarge, 10005, "body request quá lớn")
				return
			}
		}
	}
}
