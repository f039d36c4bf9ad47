package service

import (
	"context"
	"errors"
	"sort"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/KINGIRIS1/qlhs-backend/internal/dto"
	"github.com/KINGIRIS1/qlhs-backend/internal/model"
	"github.com/KINGIRIS1/qlhs-backend/internal/repository"
)

var (
	ErrHolidayNotFound = errors.New("ngày nghỉ lễ không tồn tại")
	ErrYearRange       = errors.New("khoảng năm không hợp lệ")
)

// HolidayService quản lý lịch nghỉ lễ
type HolidayService interface {
	Create(ctx context.Context, req *dto.CreateHolidayRequest, callerID string) (*dto.HolidayResponse, error)
	List(ctx context.Context) ([]dto.HolidayResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateHolidayRequest, callerID string) (*dto.HolidayResponse, error)
	Delete(ctx context.Context, id string) error
	// ResolveCalendar xem trước lịch nghỉ dương lịch cụ thể trong khoảng năm,
	// kèm cảnh báo cho ngày âm lịch không quy đổi được
	ResolveCalendar(ctx context.Context, req *dto.ResolvedCalendarRequest) (*dto.ResolvedCalendarResponse, error)
}

type holidayService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewHolidayService tạo HolidayService
func NewHolidayService(repo *repository.Repository, logger *zap.Logger) HolidayService {
	return &holidayService{repo: repo, logger: logger}
}

func (s *holidayService) Create(ctx context.Context, req *dto.CreateHolidayRequest, callerID string) (*dto.HolidayResponse, error) {
	h := model.Holiday{
		Name:    req.Name,
		Day:     req.Day,
		Month:   req.Month,
		IsLunar: req.IsLunar,
	}
	h.CreatedBy = &callerID
	h.UpdatedBy = &callerID

	if err := s.repo.Holiday.Create(ctx, &h); err != nil {
		s.logger.Error("tạo ngày nghỉ lễ thất bại", zap.Error(err))
		return nil, err
	}
	resp := toHolidayResponse(&h)
	return &resp, nil
}

func (s *holidayService) List(ctx context.Context) ([]dto.HolidayResponse, error) {
	holidays, err := s.repo.Holiday.List(ctx)
	if err != nil {
		s.logger.Error("đọc danh sách ngày nghỉ lễ thất bại", zap.Error(err))
		return nil, err
	}
	out := make([]dto.HolidayResponse, len(holidays))
	for i := range holidays {
		out[i] = toHolidayResponse(&holidays[i])
	}
	return out, nil
}

func (s *holidayService) Update(ctx context.Context, id string, req *dto.UpdateHolidayRequest, callerID string) (*dto.HolidayResponse, error) {
	h, err := s.repo.Holiday.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHolidayNotFound
		}
		s.logger.Error("đọc ngày nghỉ lễ thất bại", zap.Error(err))
		return nil, err
	}

	if req.Name != nil {
		h.Name = *req.Name
	}
	if req.Day != nil {
		h.Day = *req.Day
	}
	if req.Month != nil {
		h.Month = *req.Month
	}
	if req.IsLunar != nil {
		h.IsLunar = *req.IsLunar
	}
	h.UpdatedBy = &callerID

	if err := s.repo.Holiday.Update(ctx, h); err != nil {
		s.logger.Error("cập nhật ngày nghỉ lễ thất bại", zap.Error(err))
		return nil, err
	}
	resp := toHolidayResponse(h)
	return &resp, nil
}

func (s *holidayService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Holiday.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrHolidayNotFound
		}
		s.logger.Error("đọc ngày nghỉ lễ thất bại", zap.Error(err))
		return err
	}
	if err := s.repo.Holiday.Delete(ctx, id); err != nil {
		s.logger.Error("xóa ngày nghỉ lễ thất bại", zap.Error(err))
		return err
	}
	return nil
}

func (s *holidayService) ResolveCalendar(ctx context.Context, req *dto.ResolvedCalendarRequest) (*dto.ResolvedCalendarResponse, error) {
	if req.FromYear > req.ToYear {
		return nil, ErrYearRange
	}

	defs, err := s.repo.Holiday.List(ctx)
	if err != nil {
		s.logger.Error("đọc danh sách ngày nghỉ lễ thất bại", zap.Error(err))
		return nil, err
	}

	years := make([]int, 0, req.ToYear-req.FromYear+1)
	for y := req.FromYear; y <= req.ToYear; y++ {
		years = append(years, y)
	}

	set, warnings := ResolveHolidays(defs, years)

	dates := make([]string, 0, len(set))
	for d := range set {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	resp := &dto.ResolvedCalendarResponse{Dates: dates}
	for _, w := range warnings {
		resp.Warnings = append(resp.Warnings, w.Error())
	}
	return resp, nil
}

func toHolidayResponse(h *model.Holiday) dto.HolidayResponse {
	return dto.HolidayResponse{
		ID:      h.HolidayID,
		Name:    h.Name,
		Day:     h.Day,
		Month:   h.Month,
		IsLunar: h.IsLunar,
	}
}
