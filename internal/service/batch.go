package service

import (
	"time"

	"github.com/KINGIRIS1/qlhs-backend/internal/model"
)

// NextBatchNumber quét snapshot hồ sơ, lấy số đợt bàn giao lớn nhất trong
// ngày exportDate (so sánh theo ngày) cộng một; chưa có đợt nào thì là 1.
func NextBatchNumber(exportDate time.Time, records []model.Record) int {
	day := truncateToDate(exportDate)
	max := 0
	for _, rec := range records {
		if rec.ExportBatch == nil || rec.ExportDate == nil {
			continue
		}
		if !truncateToDate(*rec.ExportDate).Equal(day) {
			continue
		}
		if *rec.ExportBatch > max {
			max = *rec.ExportBatch
		}
	}
	return max + 1
}

// AssignBatch đóng đợt bàn giao: đóng dấu số đợt và ngày xuất lên từng hồ
// sơ; hồ sơ chưa ở trạng thái kết thúc được chuyển sang handover qua
// WorkflowEngine (kèm ghi CompletedDate nếu thiếu). Trả về danh sách bản
// sao đã cập nhật, không sửa đổi đầu vào.
//
// Hồ sơ đã rút (withdrawn) không được phép nằm trong đợt bàn giao.
func AssignBatch(records []model.Record, batch int, exportDate, now time.Time) ([]model.Record, error) {
	day := truncateToDate(exportDate)
	out := make([]model.Record, 0, len(records))

	for _, rec := range records {
		stamped, err := Handover(rec, now)
		if err != nil {
			return nil, err
		}

		b := batch
		d := day
		stamped.ExportBatch = &b
		stamped.ExportDate = &d
		out = append(out, stamped)
	}

	return out, nil
}
