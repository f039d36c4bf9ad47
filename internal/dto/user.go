package dto

// ── Module cán bộ DTO ──

// CreateUserRequest thêm cán bộ
type CreateUserRequest struct {
	Name     string `json:"name"     binding:"required,min=2,max=100"`
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email"    binding:"omitempty,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Role     string `json:"role"     binding:"required,oneof=admin can_bo"`
}

// UpdateUserRequest sửa thông tin cán bộ
type UpdateUserRequest struct {
	Name  *string `json:"name"  binding:"omitempty,min=2,max=100"`
	Email *string `json:"email" binding:"omitempty,email"`
	Role  *string `json:"role"  binding:"omitempty,oneof=admin can_bo"`
}

// ResetPasswordRequest admin đặt lại mật khẩu cho cán bộ
type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required,min=8,max=72"`
}

// UserResponse thông tin cán bộ
type UserResponse struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Username           string `json:"username"`
	Email              string `json:"email"`
	Role               string `json:"role"`
	MustChangePassword bool   `json:"must_change_password"`
}
