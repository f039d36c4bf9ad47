package model

// Holiday ngày nghỉ lễ lặp hàng năm — bảng holidays
//
// Ngày âm lịch (IsLunar = true) phải được quy đổi sang dương lịch theo từng
// năm trước khi dùng tính hạn xử lý; bảng quy đổi nằm ở tầng service.
type Holiday struct {
	HolidayID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"holiday_id"`
	Name      string `gorm:"type:varchar(100);not null"                     json:"name"`
	Day       int    `gorm:"type:smallint;not null"                         json:"day"`
	Month     int    `gorm:"type:smallint;not null"                         json:"month"`
	IsLunar   bool   `gorm:"not null;default:false"                         json:"is_lunar"`
	BaseModel
}

func (Holiday) TableName() string { return "holidays" }
