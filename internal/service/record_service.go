package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/KINGIRIS1/qlhs-backend/config"
	"github.com/KINGIRIS1/qlhs-backend/internal/dto"
	"github.com/KINGIRIS1/qlhs-backend/internal/model"
	"github.com/KINGIRIS1/qlhs-backend/internal/repository"
	pkgerrors "github.com/KINGIRIS1/qlhs-backend/pkg/errors"
	"github.com/KINGIRIS1/qlhs-backend/pkg/normalize"
)

// ── Lỗi nghiệp vụ hồ sơ ──

var (
	ErrRecordNotFound   = errors.New("hồ sơ không tồn tại")
	ErrAssigneeNotFound = errors.New("cán bộ được phân công không tồn tại")
	ErrInvalidDate      = errors.New("ngày không hợp lệ, định dạng đúng là YYYY-MM-DD")
	ErrInvalidStatus    = errors.New("trạng thái không nhận diện được")
)

// số lần sinh lại mã khi đụng ràng buộc unique (hai phiên cấp mã đồng thời)
const maxCodeRetries = 3

// RecordService nghiệp vụ hồ sơ đo đạc
type RecordService interface {
	// Tiếp nhận hồ sơ: cấp mã và tính hạn xử lý
	Create(ctx context.Context, req *dto.CreateRecordRequest, callerID string) (*dto.RecordResponse, error)
	GetByID(ctx context.Context, id string) (*dto.RecordResponse, error)
	// Danh sách có lọc; từ khóa tìm kiếm so khớp bỏ dấu
	List(ctx context.Context, req *dto.RecordListRequest) ([]dto.RecordResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdateRecordRequest, callerID string) (*dto.RecordResponse, error)
	// Phân công cán bộ thụ lý (received → assigned)
	Assign(ctx context.Context, id string, req *dto.AssignRecordRequest, callerID string) (*dto.RecordResponse, error)
	// Chuyển bước quy trình; target rỗng dùng bước mặc định
	Advance(ctx context.Context, id string, req *dto.AdvanceRecordRequest, callerID string) (*dto.RecordResponse, error)
	// Công dân rút hồ sơ
	Withdraw(ctx context.Context, id string, callerID string) (*dto.RecordResponse, error)
	Delete(ctx context.Context, id string, callerID string) error
}

type recordService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
}

// NewRecordService tạo RecordService
func NewRecordService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) RecordService {
	return &recordService{cfg: cfg, repo: repo, logger: logger}
}

// restDays đổi cấu hình thứ nghỉ hàng tuần sang time.Weekday
func (s *recordService) restDays() []time.Weekday {
	days := make([]time.Weekday, 0, len(s.cfg.Business.RestDays))
	for _, d := range s.cfg.Business.RestDays {
		days = append(days, time.Weekday(d))
	}
	return days
}

func (s *recordService) Create(ctx context.Context, req *dto.CreateRecordRequest, callerID string) (*dto.RecordResponse, error) {
	received, err := time.Parse("2006-01-02", req.ReceivedDate)
	if err != nil {
		return nil, ErrInvalidDate
	}

	days, ok := s.cfg.Business.DeadlineDays[req.RecordType]
	if !ok {
		return nil, ErrUnknownRecordType
	}

	// Quy đổi lịch nghỉ cho năm tiếp nhận và năm kế tiếp
	defs, err := s.repo.Holiday.List(ctx)
	if err != nil {
		s.logger.Error("đọc danh sách ngày lễ thất bại", zap.Error(err))
		return nil, err
	}
	holidaySet, warnings := ResolveHolidays(defs, DeadlineYears(received))
	for _, w := range warnings {
		s.logger.Warn("bỏ qua ngày lễ không quy đổi được, hạn xử lý có thể thiếu chính xác",
			zap.String("received_date", req.ReceivedDate),
			zap.Error(w),
		)
	}

	deadline := ComputeDeadline(days, received, s.restDays(), holidaySet)

	rec := model.Record{
		RecordType:   req.RecordType,
		OwnerName:    req.OwnerName,
		Ward:         req.Ward,
		PlotNo:       req.PlotNo,
		SheetNo:      req.SheetNo,
		Status:       model.StatusReceived,
		ReceivedDate: truncateToDate(received),
		Deadline:     deadline,
		Note:         req.Note,
	}
	rec.CreatedBy = &callerID
	rec.UpdatedBy = &callerID

	// Cấp mã từ snapshot; đụng ràng buộc unique thì lấy snapshot mới thử lại
	prefix := DatePrefix(received)
	for attempt := 0; ; attempt++ {
		codes, err := s.repo.Record.ListCodesByPrefix(ctx, prefix)
		if err != nil {
			s.logger.Error("lấy snapshot mã hồ sơ thất bại", zap.Error(err))
			return nil, err
		}
		rec.Code = GenerateCode(received, req.Ward, codes, s.cfg.Business.WardCodes, s.cfg.Business.WardFallback)

		err = s.repo.Record.Create(ctx, &rec)
		if err == nil {
			break
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) && attempt < maxCodeRetries {
			s.logger.Warn("trùng mã hồ sơ, sinh lại từ snapshot mới",
				zap.String("code", rec.Code),
				zap.Int("attempt", attempt+1),
			)
			continue
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, pkgerrors.ErrDuplicateCode
		}
		s.logger.Error("ghi hồ sơ thất bại", zap.Error(err))
		return nil, err
	}

	resp := toRecordResponse(&rec)
	resp.DeadlineWarning = warningText(warnings)
	return resp, nil
}

func (s *recordService) GetByID(ctx context.Context, id string) (*dto.RecordResponse, error) {
	rec, err := s.repo.Record.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		s.logger.Error("đọc hồ sơ thất bại", zap.Error(err))
		return nil, err
	}
	return toRecordResponse(rec), nil
}

func (s *recordService) List(ctx context.Context, req *dto.RecordListRequest) ([]dto.RecordResponse, int64, error) {
	filter := repository.RecordFilter{
		Ward:       req.Ward,
		RecordType: req.RecordType,
		AssignedTo: req.AssignedTo,
	}

	if req.Status != "" {
		st, ok := model.ParseRecordStatus(req.Status)
		if !ok {
			return nil, 0, ErrInvalidStatus
		}
		filter.Status = st
	}
	if req.FromDate != "" {
		from, err := time.Parse("2006-01-02", req.FromDate)
		if err != nil {
			return nil, 0, ErrInvalidDate
		}
		filter.FromDate = &from
	}
	if req.ToDate != "" {
		to, err := time.Parse("2006-01-02", req.ToDate)
		if err != nil {
			return nil, 0, ErrInvalidDate
		}
		filter.ToDate = &to
	}

	recs, err := s.repo.Record.List(ctx, filter)
	if err != nil {
		s.logger.Error("đọc danh sách hồ sơ thất bại", zap.Error(err))
		return nil, 0, err
	}

	recs = filterRecordsBySearch(recs, req.Search)
	total := int64(len(recs))

	// Phân trang trên tập đã lọc
	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 {
		pageSize = 20
	}
	start := (page - 1) * pageSize
	if start > len(recs) {
		start = len(recs)
	}
	end := start + pageSize
	if end > len(recs) {
		end = len(recs)
	}

	out := make([]dto.RecordResponse, 0, end-start)
	for i := start; i < end; i++ {
		out = append(out, *toRecordResponse(&recs[i]))
	}
	return out, total, nil
}

func (s *recordService) Update(ctx context.Context, id string, req *dto.UpdateRecordRequest, callerID string) (*dto.RecordResponse, error) {
	rec, err := s.getRecord(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.OwnerName != nil {
		rec.OwnerName = *req.OwnerName
	}
	if req.PlotNo != nil {
		rec.PlotNo = *req.PlotNo
	}
	if req.SheetNo != nil {
		rec.SheetNo = *req.SheetNo
	}
	if req.Note != nil {
		rec.Note = *req.Note
	}
	rec.UpdatedBy = &callerID

	if err := s.repo.Record.Update(ctx, rec); err != nil {
		s.logger.Error("cập nhật hồ sơ thất bại", zap.Error(err))
		return nil, err
	}
	return toRecordResponse(rec), nil
}

func (s *recordService) Assign(ctx context.Context, id string, req *dto.AssignRecordRequest, callerID string) (*dto.RecordResponse, error) {
	rec, err := s.getRecord(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.User.GetByID(ctx, req.AssignedTo); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssigneeNotFound
		}
		s.logger.Error("kiểm tra cán bộ thất bại", zap.Error(err))
		return nil, err
	}

	updated := *rec
	updated.AssignedTo = &req.AssignedTo

	// Hồ sơ mới tiếp nhận thì phân công kèm chuyển trạng thái;
	// hồ sơ đang xử lý chỉ đổi cán bộ thụ lý.
	if rec.Status == model.StatusReceived {
		updated, err = Advance(updated, model.StatusAssigned, time.Now())
		if err != nil {
			return nil, err
		}
	} else if rec.Status.IsTerminal() {
		return nil, ErrInvalidTransition
	}
	updated.UpdatedBy = &callerID

	if err := s.repo.Record.Update(ctx, &updated); err != nil {
		s.logger.Error("phân công hồ sơ thất bại", zap.Error(err))
		return nil, err
	}
	return toRecordResponse(&updated), nil
}

func (s *recordService) Advance(ctx context.Context, id string, req *dto.AdvanceRecordRequest, callerID string) (*dto.RecordResponse, error) {
	rec, err := s.getRecord(ctx, id)
	if err != nil {
		return nil, err
	}

	var target model.RecordStatus
	if req.Target != "" {
		st, ok := model.ParseRecordStatus(req.Target)
		if !ok {
			return nil, ErrInvalidStatus
		}
		// Rời "đã tiếp nhận" là thao tác phân công: phải đi qua Assign
		// để có cán bộ thụ lý kèm theo, không đi qua bước chuyển chung.
		if st == model.StatusAssigned {
			return nil, ErrAssignmentRequired
		}
		target = st
	}

	updated, err := Advance(*rec, target, time.Now())
	if err != nil {
		// Hồ sơ giữ nguyên, trả lỗi cho phía gọi
		return nil, err
	}
	updated.UpdatedBy = &callerID

	if err := s.repo.Record.Update(ctx, &updated); err != nil {
		s.logger.Error("chuyển trạng thái hồ sơ thất bại", zap.Error(err))
		return nil, err
	}
	return toRecordResponse(&updated), nil
}

func (s *recordService) Withdraw(ctx context.Context, id string, callerID string) (*dto.RecordResponse, error) {
	return s.Advance(ctx, id, &dto.AdvanceRecordRequest{Target: string(model.StatusWithdrawn)}, callerID)
}

func (s *recordService) Delete(ctx context.Context, id string, callerID string) error {
	if _, err := s.getRecord(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Record.Delete(ctx, id, callerID); err != nil {
		s.logger.Error("xóa hồ sơ thất bại", zap.Error(err))
		return err
	}
	return nil
}

func (s *recordService) getRecord(ctx context.Context, id string) (*model.Record, error) {
	rec, err := s.repo.Record.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		s.logger.Error("đọc hồ sơ thất bại", zap.Error(err))
		return nil, err
	}
	return rec, nil
}

// ── Hàm dùng chung ──

// filterRecordsBySearch lọc theo từ khóa bỏ dấu trên mã, chủ sử dụng,
// phường/xã và số thửa/tờ. Từ khóa rỗng trả nguyên danh sách.
func filterRecordsBySearch(recs []model.Record, search string) []model.Record {
	needle := normalize.Normalize(search)
	if needle == "" {
		return recs
	}

	out := recs[:0:0]
	for _, rec := range recs {
		haystack := strings.Join([]string{rec.Code, rec.OwnerName, rec.Ward, rec.PlotNo, rec.SheetNo}, " ")
		if strings.Contains(normalize.Normalize(haystack), needle) {
			out = append(out, rec)
		}
	}
	return out
}

func warningText(warnings []error) string {
	if len(warnings) == 0 {
		return ""
	}
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.Error()
	}
	return fmt.Sprintf("hạn xử lý tính thiếu %d ngày lễ: %s", len(warnings), strings.Join(parts, "; "))
}

func fmtDate(t time.Time) string { return t.Format("2006-01-02") }

func fmtDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}

func toRecordResponse(rec *model.Record) *dto.RecordResponse {
	resp := &dto.RecordResponse{
		ID:            rec.RecordID,
		Code:          rec.Code,
		RecordType:    rec.RecordType,
		OwnerName:     rec.OwnerName,
		Ward:          rec.Ward,
		PlotNo:        rec.PlotNo,
		SheetNo:       rec.SheetNo,
		Status:        string(rec.Status),
		StatusLabel:   rec.Status.Label(),
		ReceivedDate:  fmtDate(rec.ReceivedDate),
		Deadline:      fmtDate(rec.Deadline),
		AssignedDate:  fmtDatePtr(rec.AssignedDate),
		CompletedDate: fmtDatePtr(rec.CompletedDate),
		ExportDate:    fmtDatePtr(rec.ExportDate),
		ExportBatch:   rec.ExportBatch,
		AssignedTo:    rec.AssignedTo,
		Note:          rec.Note,
	}
	if rec.Assignee != nil {
		resp.AssigneeName = rec.Assignee.Name
	}
	return resp
}
