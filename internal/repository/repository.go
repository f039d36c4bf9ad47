package repository

import "gorm.io/gorm"

// Repository điểm gom mọi repository của ứng dụng
type Repository struct {
	User    UserRepository
	Record  RecordRepository
	Holiday HolidayRepository
}

// NewRepository tạo Repository gom
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:    NewUserRepo(db),
		Record:  NewRecordRepo(db),
		Holiday: NewHolidayRepo(db),
	}
}
