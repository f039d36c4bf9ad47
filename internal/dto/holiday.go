package dto

// ── Module ngày nghỉ lễ DTO ──

// CreateHolidayRequest thêm ngày nghỉ lễ
type CreateHolidayRequest struct {
	Name    string `json:"name"     binding:"required,min=2,max=100"`
	Day     int    `json:"day"      binding:"required,min=1,max=31"`
	Month   int    `json:"month"    binding:"required,min=1,max=12"`
	IsLunar bool   `json:"is_lunar"`
}

// UpdateHolidayRequest sửa ngày nghỉ lễ
type UpdateHolidayRequest struct {
	Name    *string `json:"name"     binding:"omitempty,min=2,max=100"`
	Day     *int    `json:"day"      binding:"omitempty,min=1,max=31"`
	Month   *int    `json:"month"    binding:"omitempty,min=1,max=12"`
	IsLunar *bool   `json:"is_lunar"`
}

// HolidayResponse thông tin ngày nghỉ lễ
type HolidayResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Day     int    `json:"day"`
	Month   int    `json:"month"`
	IsLunar bool   `json:"is_lunar"`
}

// ResolvedCalendarRequest xem trước lịch nghỉ đã quy đổi
type ResolvedCalendarRequest struct {
	FromYear int `form:"from_year" binding:"required,min=2000,max=2100"`
	ToYear   int `form:"to_year"   binding:"required,min=2000,max=2100"`
}

// ResolvedCalendarResponse lịch nghỉ dương lịch cụ thể theo khoảng năm
type ResolvedCalendarResponse struct {
	Dates []string `json:"dates"`
	// Warnings các ngày lễ âm lịch không quy đổi được (năm ngoài bảng)
	Warnings []string `json:"warnings,omitempty"`
}
