package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/KINGIRIS1/qlhs-backend/config"
	"github.com/KINGIRIS1/qlhs-backend/internal/api/handler"
	"github.com/KINGIRIS1/qlhs-backend/internal/api/middleware"
	"github.com/KINGIRIS1/qlhs-backend/pkg/jwt"
	"github.com/KINGIRIS1/qlhs-backend/pkg/redis"
)

// Setup khởi tạo Gin engine và đăng ký toàn bộ route
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── Middleware toàn cục ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20)) // 1MB

	// ── Kiểm tra sức khỏe ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// Xác thực (không cần đăng nhập)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Login)
			auth.POST("/refresh", middleware.RateLimit(rdb, 20, time.Minute), h.Auth.RefreshToken)
		}

		// Route cần đăng nhập
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// Xác thực (cần đăng nhập)
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.GetCurrentUser)
			authorized.PUT("/auth/password", h.Auth.ChangePassword)

			// Module hồ sơ
			records := authorized.Group("/records")
			{
				records.GET("", h.Record.ListRecords)
				records.GET("/:id", h.Record.GetRecord)
				records.POST("", h.Record.CreateRecord)
				records.PUT("/:id", h.Record.UpdateRecord)
				records.PUT("/:id/assign", h.Record.AssignRecord)
				records.PUT("/:id/advance", h.Record.AdvanceRecord)
				records.PUT("/:id/withdraw", h.Record.WithdrawRecord)
				records.DELETE("/:id", middleware.RoleAuth("admin"), h.Record.DeleteRecord)
				records.POST("/handover", h.Export.Handover)
			}

			// Module xuất file
			export := authorized.Group("/export")
			{
				export.GET("/handover", h.Export.ExportHandoverSheet)
				export.GET("/records", h.Export.ExportRecordList)
			}

			// Module ngày nghỉ lễ
			holidays := authorized.Group("/holidays")
			{
				holidays.GET("", h.Holiday.ListHolidays)
				holidays.GET("/resolved", h.Holiday.ResolveCalendar)
				holidays.POST("", middleware.RoleAuth("admin"), h.Holiday.CreateHoliday)
				holidays.PUT("/:id", middleware.RoleAuth("admin"), h.Holiday.UpdateHoliday)
				holidays.DELETE("/:id", middleware.RoleAuth("admin"), h.Holiday.DeleteHoliday)
			}

			// Module cán bộ (chỉ admin)
			users := authorized.Group("/users")
			users.Use(middleware.RoleAuth("admin"))
			{
				users.GET("", h.User.ListUsers)
				users.GET("/:id", h.User.GetUser)
				users.POST("", h.User.CreateUser)
				users.PUT("/:id", h.User.UpdateUser)
				users.PUT("/:id/password", h.User.ResetPassword)
				users.DELETE("/:id", h.User.DeleteUser)
			}
		}
	}

	return r
}
