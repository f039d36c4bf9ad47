package service

import (
	"go.uber.org/zap"

	"github.com/KINGIRIS1/qlhs-backend/config"
	"github.com/KINGIRIS1/qlhs-backend/internal/repository"
	"github.com/KINGIRIS1/qlhs-backend/pkg/jwt"
	"github.com/KINGIRIS1/qlhs-backend/pkg/redis"
)

// Service điểm gom mọi service nghiệp vụ của ứng dụng
type Service struct {
	Auth    AuthService
	User    UserService
	Record  RecordService
	Holiday HolidayService
	Export  ExportService
}

// NewService tạo Service gom. rdb được phép nil khi Redis không khả dụng —
// các tính năng phụ thuộc Redis (blacklist token, rate limit) tự bỏ qua.
func NewService(cfg *config.Config, repo *repository.Repository, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *Service {
	return &Service{
		Auth:    NewAuthService(repo, jwtMgr, rdb, logger),
		User:    NewUserService(repo, logger),
		Record:  NewRecordService(cfg, repo, logger),
		Holiday: NewHolidayService(repo, logger),
		Export:  NewExportService(repo, logger),
	}
}
