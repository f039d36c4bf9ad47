package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/KINGIRIS1/qlhs-backend/pkg/jwt"
	"github.com/KINGIRIS1/qlhs-backend/pkg/redis"
	"github.com/KINGIRIS1/qlhs-backend/pkg/response"
)

// JWTAuth middleware xác thực JWT.
// Lấy access token từ header Authorization: Bearer <token>, kiểm tra chữ ký
// và blacklist (rdb nil thì bỏ qua bước blacklist).
func JWTAuth(jwtMgr *jwt.Manager, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, 10002, "thiếu header xác thực")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, 10002, "header xác thực sai định dạng")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(parts[1])
		if err != nil {
			response.Unauthorized(c, 10002, "token không hợp lệ hoặc đã hết hạn")
			c.Abort()
			return
		}

		if claims.TokenType != "access" {
			response.Unauthorized(c, 10002, "loại token không hợp lệ")
			c.Abort()
			return
		}

		if rdb != nil {
			blacklisted, err := rdb.IsBlacklisted(c.Request.Context(), claims.ID)
			// Redis lỗi thì cho qua, không chặn toàn bộ API
			if err == nil && blacklisted {
				response.Unauthorized(c, 10002, "token đã bị thu hồi")
				c.Abort()
				return
			}
		}

		// Nạp thông tin người dùng vào context
		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)
		c.Set("claims", claims)

		c.Next()
	}
}

// RoleAuth middleware phân quyền theo vai trò.
// Người dùng hiện tại phải mang một trong các vai trò cho phép.
func RoleAuth(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			response.Unauthorized(c, 10002, "chưa xác thực")
			c.Abort()
			return
		}

		userRole := role.(string)
		for _, r := range allowedRoles {
			if userRole == r {
				c.Next()
				return
			}
		}

		response.Forbidden(c, 10003, "không có quyền truy cập")
		c.Abort()
	}
}
