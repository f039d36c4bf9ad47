package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/KINGIRIS1/qlhs-backend/internal/dto"
	"github.com/KINGIRIS1/qlhs-backend/internal/model"
	"github.com/KINGIRIS1/qlhs-backend/internal/repository"
)

// ── Lỗi nghiệp vụ bàn giao / xuất file ──

var (
	ErrExportNoRecords    = errors.New("không có hồ sơ nào để xuất")
	ErrExportGenerateFail = errors.New("sinh file Excel thất bại")
	ErrHandoverEmpty      = errors.New("đợt bàn giao phải có ít nhất một hồ sơ")
	ErrAlreadyHandedOver  = errors.New("hồ sơ đã nằm trong một đợt bàn giao trước đó")
)

// ExportService nghiệp vụ đóng đợt bàn giao và xuất file Excel
//
// Ghi chú thiết kế:
//   - Đóng đợt là thao tác nguyên tử: toàn bộ hồ sơ trong đợt được ghi trong
//     một transaction, số đợt cấp từ snapshot hồ sơ đã bàn giao trong ngày
//   - File Excel trả về dạng bytes.Buffer, tầng Handler tự đặt header HTTP
type ExportService interface {
	// Handover đóng đợt bàn giao cho danh sách hồ sơ được chọn
	Handover(ctx context.Context, req *dto.HandoverRequest, callerID string) (*dto.HandoverResponse, error)
	// ExportHandoverSheet xuất phiếu bàn giao của một đợt trong ngày
	// (batch = 0 lấy mọi đợt trong ngày)
	ExportHandoverSheet(ctx context.Context, exportDate string, batch int) (*bytes.Buffer, string, error)
	// ExportRecordList xuất danh sách hồ sơ theo bộ lọc hiện hành
	ExportRecordList(ctx context.Context, req *dto.RecordListRequest) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService tạo ExportService
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

func (s *exportService) Handover(ctx context.Context, req *dto.HandoverRequest, callerID string) (*dto.HandoverResponse, error) {
	if len(req.RecordIDs) == 0 {
		return nil, ErrHandoverEmpty
	}

	now := time.Now()
	exportDate := truncateToDate(now)
	if req.ExportDate != "" {
		parsed, err := time.Parse("2006-01-02", req.ExportDate)
		if err != nil {
			return nil, ErrInvalidDate
		}
		exportDate = truncateToDate(parsed)
	}

	selected, err := s.repo.Record.ListByIDs(ctx, req.RecordIDs)
	if err != nil {
		s.logger.Error("đọc hồ sơ theo danh sách ID thất bại", zap.Error(err))
		return nil, err
	}
	if len(selected) != len(req.RecordIDs) {
		return nil, ErrRecordNotFound
	}
	// Hồ sơ đã chốt vào một đợt thì không được gom lại: ghi đè số đợt /
	// ngày bàn giao cũ sẽ phá hỏng dấu vết các đợt đã đóng.
	for i := range selected {
		if selected[i].ExportBatch != nil {
			return nil, ErrAlreadyHandedOver
		}
	}

	// Số đợt cấp từ snapshot hồ sơ đã bàn giao trong ngày
	existing, err := s.repo.Record.ListByExportDate(ctx, exportDate)
	if err != nil {
		s.logger.Error("lấy snapshot đợt bàn giao thất bại", zap.Error(err))
		return nil, err
	}
	batch := NextBatchNumber(exportDate, existing)

	stamped, err := AssignBatch(selected, batch, exportDate, now)
	if err != nil {
		return nil, err
	}
	for i := range stamped {
		stamped[i].UpdatedBy = &callerID
	}

	if err := s.repo.Record.UpdateBatch(ctx, stamped); err != nil {
		s.logger.Error("ghi đợt bàn giao thất bại", zap.Error(err))
		return nil, err
	}

	s.logger.Info("đóng đợt bàn giao",
		zap.String("export_date", exportDate.Format("2006-01-02")),
		zap.Int("batch", batch),
		zap.Int("records", len(stamped)),
	)

	resp := &dto.HandoverResponse{
		Batch:      batch,
		ExportDate: exportDate.Format("2006-01-02"),
	}
	for i := range stamped {
		resp.Records = append(resp.Records, *toRecordResponse(&stamped[i]))
	}
	return resp, nil
}

// ═══════════════════════════════════════════════════════════
// ExportHandoverSheet — xuất phiếu bàn giao
// ═══════════════════════════════════════════════════════════
//
// Định dạng:
//   - Tiêu đề "PHIẾU BÀN GIAO HỒ SƠ — <ngày> — Đợt <n>"
//   - Cột: STT | Mã hồ sơ | Loại | Chủ sử dụng | Phường/xã | Thửa | Tờ |
//     Trạng thái | Ngày tiếp nhận | Hạn xử lý | Đợt

func (s *exportService) ExportHandoverSheet(ctx context.Context, exportDate string, batch int) (*bytes.Buffer, string, error) {
	date, err := time.Parse("2006-01-02", exportDate)
	if err != nil {
		return nil, "", ErrInvalidDate
	}

	recs, err := s.repo.Record.ListByExportDate(ctx, truncateToDate(date))
	if err != nil {
		s.logger.Error("đọc hồ sơ đợt bàn giao thất bại", zap.Error(err))
		return nil, "", err
	}
	if batch > 0 {
		recs = filterByBatch(recs, batch)
	}
	if len(recs) == 0 {
		return nil, "", ErrExportNoRecords
	}

	title := fmt.Sprintf("PHIẾU BÀN GIAO HỒ SƠ — %s", exportDate)
	if batch > 0 {
		title += fmt.Sprintf(" — Đợt %d", batch)
	}

	buf, err := s.writeRecordSheet("Phiếu bàn giao", title, recs)
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("phieu_ban_giao_%s.xlsx", exportDate)
	if batch > 0 {
		filename = fmt.Sprintf("phieu_ban_giao_%s_dot_%d.xlsx", exportDate, batch)
	}
	return buf, filename, nil
}

func (s *exportService) ExportRecordList(ctx context.Context, req *dto.RecordListRequest) (*bytes.Buffer, string, error) {
	filter := repository.RecordFilter{
		Ward:       req.Ward,
		RecordType: req.RecordType,
		AssignedTo: req.AssignedTo,
	}
	if req.Status != "" {
		st, ok := model.ParseRecordStatus(req.Status)
		if !ok {
			return nil, "", ErrInvalidStatus
		}
		filter.Status = st
	}
	if req.FromDate != "" {
		from, err := time.Parse("2006-01-02", req.FromDate)
		if err != nil {
			return nil, "", ErrInvalidDate
		}
		filter.FromDate = &from
	}
	if req.ToDate != "" {
		to, err := time.Parse("2006-01-02", req.ToDate)
		if err != nil {
			return nil, "", ErrInvalidDate
		}
		filter.ToDate = &to
	}

	recs, err := s.repo.Record.List(ctx, filter)
	if err != nil {
		s.logger.Error("đọc danh sách hồ sơ thất bại", zap.Error(err))
		return nil, "", err
	}
	recs = filterRecordsBySearch(recs, req.Search)
	if len(recs) == 0 {
		return nil, "", ErrExportNoRecords
	}

	today := time.Now().Format("2006-01-02")
	buf, err := s.writeRecordSheet("Danh sách hồ sơ",
		fmt.Sprintf("DANH SÁCH HỒ SƠ — xuất ngày %s", today), recs)
	if err != nil {
		return nil, "", err
	}
	return buf, fmt.Sprintf("danh_sach_ho_so_%s.xlsx", today), nil
}

// writeRecordSheet dựng workbook một sheet từ danh sách hồ sơ
func (s *exportService) writeRecordSheet(sheetName, title string, recs []model.Record) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	headers := []string{"STT", "Mã hồ sơ", "Loại", "Chủ sử dụng", "Phường/xã",
		"Thửa", "Tờ", "Trạng thái", "Ngày tiếp nhận", "Hạn xử lý", "Đợt"}
	widths := []float64{6, 16, 18, 24, 18, 8, 8, 14, 14, 14, 8}
	for i, w := range widths {
		f.SetColWidth(sheetName, colName(i), colName(i), w)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	f.SetCellValue(sheetName, "A1", title)
	f.MergeCell(sheetName, "A1", cell(colName(len(headers)-1), 1))
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	row := 2
	for i, h := range headers {
		f.SetCellValue(sheetName, cell(colName(i), row), h)
	}
	f.SetCellStyle(sheetName, cell("A", row), cell(colName(len(headers)-1), row), headerStyle)

	row = 3
	for i, rec := range recs {
		batchText := "-"
		if rec.ExportBatch != nil {
			batchText = fmt.Sprintf("%d", *rec.ExportBatch)
		}
		values := []interface{}{
			i + 1, rec.Code, rec.RecordType, rec.OwnerName, rec.Ward,
			rec.PlotNo, rec.SheetNo, rec.Status.Label(),
			rec.ReceivedDate.Format("2006-01-02"), rec.Deadline.Format("2006-01-02"),
			batchText,
		}
		for j, v := range values {
			f.SetCellValue(sheetName, cell(colName(j), row), v)
		}
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("ghi file Excel thất bại", zap.Error(err))
		return nil, ErrExportGenerateFail
	}
	return buf, nil
}

// ── Hàm phụ trợ ──

func filterByBatch(recs []model.Record, batch int) []model.Record {
	out := recs[:0:0]
	for _, rec := range recs {
		if rec.ExportBatch != nil && *rec.ExportBatch == batch {
			out = append(out, rec)
		}
	}
	return out
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
