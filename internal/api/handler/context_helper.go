package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/KINGIRIS1/qlhs-backend/pkg/response"
)

// MustGetUserID lấy user_id từ Gin context một cách an toàn.
// Middleware JWT chưa nạp user_id thì trả false và ghi sẵn phản hồi 401;
// phía gọi chỉ cần return khi ok = false.
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, 10002, "chưa xác thực")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "chưa xác thực")
		return "", false
	}
	return s, true
}
