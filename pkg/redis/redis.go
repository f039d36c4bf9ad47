package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/KINGIRIS1/qlhs-backend/config"
)

// Client bọc kết nối Redis
// Hiện dùng cho blacklist token và rate limit; có thể mở rộng cache sau
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewClient tạo kết nối Redis và ping kiểm tra
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("kết nối Redis thất bại: %w", err)
	}

	logger.Info("kết nối Redis thành công", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// ── Blacklist token ──

const blacklistPrefix = "token:blacklist:"

// BlacklistToken đưa JWT ID vào blacklist với TTL bằng thời gian còn hiệu lực
func (c *Client) BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil // token đã hết hạn, không cần blacklist
	}
	return c.rdb.Set(ctx, blacklistPrefix+jti, "1", ttl).Err()
}

// IsBlacklisted kiểm tra JWT ID có trong blacklist không
func (c *Client) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	n, err := c.rdb.Exists(ctx, blacklistPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ── Rate limit ──

// CheckRateLimit đếm số request trong cửa sổ hiện tại theo key.
// Trả về false khi vượt quá limit.
func (c *Client) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	n, err := c.rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if n == 1 {
		if err := c.rdb.Expire(ctx, key, window).Err(); err != nil {
			return false, err
		}
	}
	return n <= int64(limit), nil
}

// Close đóng kết nối Redis
func (c *Client) Close() error {
	return c.rdb.Close()
}
