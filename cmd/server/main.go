package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/KINGIRIS1/qlhs-backend/config"
	"github.com/KINGIRIS1/qlhs-backend/internal/api/handler"
	"github.com/KINGIRIS1/qlhs-backend/internal/api/router"
	"github.com/KINGIRIS1/qlhs-backend/internal/repository"
	"github.com/KINGIRIS1/qlhs-backend/internal/service"
	"github.com/KINGIRIS1/qlhs-backend/pkg/database"
	"github.com/KINGIRIS1/qlhs-backend/pkg/jwt"
	applogger "github.com/KINGIRIS1/qlhs-backend/pkg/logger"
	"github.com/KINGIRIS1/qlhs-backend/pkg/redis"
)

func main() {
	// 1. Nạp cấu hình
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "nạp cấu hình thất bại: %v\n", err)
		os.Exit(1)
	}

	// 2. Khởi tạo log
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "khởi tạo log thất bại: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("ứng dụng đang khởi động...",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. Kết nối cơ sở dữ liệu
	db, err := database.NewDB(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("kết nối cơ sở dữ liệu thất bại", zap.Error(err))
	}
	logger.Info("kết nối cơ sở dữ liệu thành công")

	// 3.1 Chạy migration
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("lấy sql.DB gốc thất bại", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("migration thất bại", zap.Error(err))
	}

	// 4. Kết nối Redis (tùy chọn: lỗi thì chạy degrade, không dừng khởi động)
	var rdb *redis.Client
	rdb, err = redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("kết nối Redis thất bại, blacklist token và rate limit sẽ tắt", zap.Error(err))
		rdb = nil
	}

	// 5. Khởi tạo JWT manager
	jwtMgr := jwt.NewManager(&cfg.Auth)

	// 6. Tiêm phụ thuộc: Repository → Service → Handler
	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, repo, jwtMgr, rdb, logger)
	h := handler.NewHandler(svc)

	// 7. Khởi tạo router
	engine := router.Setup(cfg, h, jwtMgr, rdb, logger)

	// 8. Chạy HTTP server (tắt êm)
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server đã chạy", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server gặp sự cố", zap.Error(err))
		}
	}()

	// 9. Chờ tín hiệu hệ thống, tắt êm
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("nhận tín hiệu tắt, bắt đầu tắt êm...", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("tắt server gặp sự cố", zap.Error(err))
	}

	closeDB, _ := db.DB()
	if closeDB != nil {
		closeDB.Close()
	}

	if rdb != nil {
		rdb.Close()
	}

	logger.Info("server đã tắt")
}
