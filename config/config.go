package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config cấu hình toàn cục của ứng dụng
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"db"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Log      LogConfig      `mapstructure:"log"`
	Business BusinessConfig `mapstructure:"business"`
}

// ServerConfig cấu hình HTTP server
type ServerConfig struct {
	Port    int        `mapstructure:"port"`
	BaseURL string     `mapstructure:"base_url"`
	CORS    CORSConfig `mapstructure:"cors"`
}

// CORSConfig cấu hình CORS
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// DatabaseConfig cấu hình PostgreSQL
type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Name            string `mapstructure:"name"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	SSLMode         string `mapstructure:"sslmode"`
	Timezone        string `mapstructure:"timezone"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`  // phút
	ConnMaxIdleTime int    `mapstructure:"conn_max_idle_time"` // phút
}

// DSN sinh chuỗi kết nối PostgreSQL
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode, c.Timezone,
	)
}

// RedisConfig cấu hình Redis
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// AuthConfig cấu hình xác thực JWT
type AuthConfig struct {
	JWTSecret               string        `mapstructure:"jwt_secret"`
	AccessTokenTTL          time.Duration `mapstructure:"access_token_ttl"`
	RefreshTokenTTLDefault  time.Duration `mapstructure:"refresh_token_ttl_default"`
	RefreshTokenTTLRemember time.Duration `mapstructure:"refresh_token_ttl_remember_me"`
}

// LogConfig cấu hình log
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// BusinessConfig cấu hình nghiệp vụ hồ sơ đo đạc.
//
// Toàn bộ tham số nghiệp vụ (ngày nghỉ hàng tuần, bảng số ngày xử lý theo
// loại hồ sơ, bảng mã phường/xã) nằm ở đây và được truyền tường minh vào
// tầng service — core không bao giờ tự đọc trạng thái toàn cục.
type BusinessConfig struct {
	// RestDays các thứ nghỉ hàng tuần theo time.Weekday (0 = Chủ nhật, 6 = Thứ bảy)
	RestDays []int `mapstructure:"rest_days"`
	// DeadlineDays số ngày làm việc xử lý theo loại hồ sơ
	DeadlineDays map[string]int `mapstructure:"deadline_days"`
	// WardCodes bảng phường/xã → mã 2 ký tự (key đã được chuẩn hóa bỏ dấu)
	WardCodes map[string]string `mapstructure:"ward_codes"`
	// WardFallback mã dùng khi phường/xã không có trong bảng
	WardFallback string `mapstructure:"ward_fallback"`
}

// Load đọc cấu hình từ file và biến môi trường
// Độ ưu tiên: biến môi trường > file cấu hình > mặc định
func Load(path string) (*Config, error) {
	v := viper.New()

	// ── Mặc định ──
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.base_url", "http://localhost:8080")
	v.SetDefault("server.cors.allow_origins", []string{"http://localhost:5173"})

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.name", "qlhs")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.timezone", "Asia/Ho_Chi_Minh")
	v.SetDefault("db.max_open_conns", 25)
	v.SetDefault("db.max_idle_conns", 10)
	v.SetDefault("db.conn_max_lifetime", 60)
	v.SetDefault("db.conn_max_idle_time", 30)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("auth.access_token_ttl", "15m")
	v.SetDefault("auth.refresh_token_ttl_default", "24h")
	v.SetDefault("auth.refresh_token_ttl_remember_me", "168h")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Nghỉ Thứ bảy + Chủ nhật
	v.SetDefault("business.rest_days", []int{0, 6})
	v.SetDefault("business.deadline_days", map[string]int{
		"trich_luc":         5,  // Trích lục bản đồ địa chính
		"trich_do":          10, // Trích đo địa chính thửa đất
		"dang_ky_bien_dong": 10, // Đăng ký biến động đất đai
		"cap_doi":           15, // Cấp đổi Giấy chứng nhận
		"do_lai_ranh_gioi":  20, // Đo đạc lại ranh giới thửa đất
	})
	v.SetDefault("business.ward_codes", map[string]string{
		"phuong cai khe":    "CK",
		"phuong tan an":     "TA",
		"phuong thoi binh":  "TB",
		"phuong xuan khanh": "XK",
		"phuong an cu":      "AC",
		"phuong an hoa":     "AH",
		"phuong hung loi":   "HL",
		"phuong cai tac":    "CT",
	})
	v.SetDefault("business.ward_fallback", "XX")

	// ── File cấu hình ──
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// ── Biến môi trường ──
	v.SetEnvPrefix("QLHS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("đọc file cấu hình thất bại: %w", err)
		}
		// Không có file cấu hình thì chỉ dùng mặc định + biến môi trường
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("phân tích cấu hình thất bại: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate kiểm tra các cấu hình bắt buộc
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("cấu hình không hợp lệ: auth.jwt_secret không được để trống")
	}
	if len(c.Auth.JWTSecret) < 16 {
		return fmt.Errorf("cấu hình không hợp lệ: auth.jwt_secret phải dài tối thiểu 16 ký tự")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("cấu hình không hợp lệ: server.port phải nằm trong 1-65535")
	}
	for _, d := range c.Business.RestDays {
		if d < 0 || d > 6 {
			return fmt.Errorf("cấu hình không hợp lệ: business.rest_days chứa giá trị %d ngoài 0-6", d)
		}
	}
	for loai, n := range c.Business.DeadlineDays {
		if n < 0 {
			return fmt.Errorf("cấu hình không hợp lệ: business.deadline_days[%s] âm", loai)
		}
	}
	return nil
}
