package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/KINGIRIS1/qlhs-backend/internal/model"
)

// HolidayRepository truy cập dữ liệu ngày nghỉ lễ
type HolidayRepository interface {
	Create(ctx context.Context, h *model.Holiday) error
	GetByID(ctx context.Context, id string) (*model.Holiday, error)
	List(ctx context.Context) ([]model.Holiday, error)
	Update(ctx context.Context, h *model.Holiday) error
	Delete(ctx context.Context, id string) error
}

type holidayRepo struct {
	db *gorm.DB
}

// NewHolidayRepo tạo HolidayRepository
func NewHolidayRepo(db *gorm.DB) HolidayRepository {
	return &holidayRepo{db: db}
}

func (r *holidayRepo) Create(ctx context.Context, h *model.Holiday) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *holidayRepo) GetByID(ctx context.Context, id string) (*model.Holiday, error) {
	var h model.Holiday
	err := r.db.WithContext(ctx).
		Where("holiday_id = ?", id).
		First(&h).Error
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *holidayRepo) List(ctx context.Context) ([]model.Holiday, error) {
	var holidays []model.Holiday
	err := r.db.WithContext(ctx).
		Order("month ASC, day ASC").
		Find(&holidays).Error
	return holidays, err
}

func (r *holidayRepo) Update(ctx context.Context, h *model.Holiday) error {
	return r.db.WithContext(ctx).Save(h).Error
}

func (r *holidayRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("holiday_id = ?", id).
		Delete(&model.Holiday{}).Error
}
