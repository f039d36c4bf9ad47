package model

// User cán bộ sử dụng hệ thống — bảng users
type User struct {
	UserID             string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Name               string `gorm:"type:varchar(100);not null"                     json:"name"`
	Username           string `gorm:"type:varchar(50);not null"                      json:"username"`
	Email              string `gorm:"type:varchar(255);not null;default:''"          json:"email"`
	PasswordHash       string `gorm:"type:varchar(255);not null"                     json:"-"`
	Role               string `gorm:"type:varchar(20);not null;default:'can_bo'"     json:"role"` // admin | can_bo
	MustChangePassword bool   `gorm:"not null;default:false"                         json:"must_change_password"`
	VersionedModel
}

// TableName chỉ định tên bảng
func (User) TableName() string { return "users" }
