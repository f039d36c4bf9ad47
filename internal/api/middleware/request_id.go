package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDKey = "request_id"

// requestIDMaxLen chặn Request-ID bên ngoài quá dài để tránh log injection
const requestIDMaxLen = 64

// RequestID middleware gắn ID truy vết cho mỗi request.
// Đọc từ header X-Request-ID, không có hoặc quá dài thì sinh UUID mới;
// kết quả nạp vào gin.Context và trả lại qua header X-Request-ID.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-ID")
		if rid == "" || len(rid) > requestIDMaxLen {
			rid = uuid.New().String()
		}

		c.Set(requestIDKey, rid)
		c.Header("X-Request-ID", rid)

		c.Next()
	}
}
