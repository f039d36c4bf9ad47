package service

import (
	"errors"
	"testing"

	"github.com/KINGIRIS1/qlhs-backend/internal/model"
)

func intPtr(n int) *int { return &n }

func TestNextBatchNumber_ChuaCoDotNao(t *testing.T) {
	if got := NextBatchNumber(ngay("2024-05-10"), nil); got != 1 {
		t.Errorf("kỳ vọng đợt 1, thực tế %d", got)
	}
}

func TestNextBatchNumber_TinhTheoNgay(t *testing.T) {
	d1 := ngay("2024-05-10")
	d2 := ngay("2024-05-09")
	records := []model.Record{
		{ExportBatch: intPtr(2), ExportDate: &d1},
		{ExportBatch: intPtr(5), ExportDate: &d2}, // khác ngày → bỏ qua
		{ExportBatch: intPtr(1), ExportDate: &d1},
		{}, // chưa bàn giao → bỏ qua
	}

	if got := NextBatchNumber(d1, records); got != 3 {
		t.Errorf("kỳ vọng đợt 3, thực tế %d", got)
	}
}

// Kịch bản: ba hồ sơ chưa từng vào đợt nào trong ngày → cả ba nhận đợt 1
// và chuyển sang handover.
func TestAssignBatch_BaHoSoDotDau(t *testing.T) {
	exportDate := ngay("2024-05-10")
	records := []model.Record{
		{Code: "240510-001-CT", Status: model.StatusSigned},
		{Code: "240510-002-CT", Status: model.StatusSigned},
		{Code: "240510-003-CT", Status: model.StatusInProgress},
	}

	batch := NextBatchNumber(exportDate, records)
	if batch != 1 {
		t.Fatalf("kỳ vọng đợt 1, thực tế %d", batch)
	}

	out, err := AssignBatch(records, batch, exportDate, exportDate)
	if err != nil {
		t.Fatalf("AssignBatch thất bại: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("kỳ vọng 3 hồ sơ, thực tế %d", len(out))
	}

	for _, rec := range out {
		if rec.ExportBatch == nil || *rec.ExportBatch != 1 {
			t.Errorf("hồ sơ %s: kỳ vọng đợt 1, thực tế %v", rec.Code, rec.ExportBatch)
		}
		if rec.Status != model.StatusHandover {
			t.Errorf("hồ sơ %s: kỳ vọng handover, thực tế %s", rec.Code, rec.Status)
		}
		if rec.ExportDate == nil || !rec.ExportDate.Equal(exportDate) {
			t.Errorf("hồ sơ %s: ExportDate sai: %v", rec.Code, rec.ExportDate)
		}
		if rec.CompletedDate == nil {
			t.Errorf("hồ sơ %s: thiếu CompletedDate", rec.Code)
		}
	}

	// Đầu vào không bị sửa đổi
	if records[2].Status != model.StatusInProgress || records[2].ExportBatch != nil {
		t.Error("AssignBatch không được sửa đổi danh sách đầu vào")
	}
}

func TestAssignBatch_HoSoDaRut(t *testing.T) {
	records := []model.Record{
		{Code: "240510-001-CT", Status: model.StatusSigned},
		{Code: "240510-002-CT", Status: model.StatusWithdrawn},
	}

	_, err := AssignBatch(records, 1, ngay("2024-05-10"), ngay("2024-05-10"))
	if !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("đợt chứa hồ sơ đã rút phải bị từ chối, thực tế: %v", err)
	}
}

func TestAssignBatch_DotTangDanTrongNgay(t *testing.T) {
	exportDate := ngay("2024-05-10")

	dot1, err := AssignBatch([]model.Record{{Status: model.StatusSigned}}, NextBatchNumber(exportDate, nil), exportDate, exportDate)
	if err != nil {
		t.Fatalf("đợt 1 thất bại: %v", err)
	}

	// Snapshot mới đã chứa đợt 1
	batch2 := NextBatchNumber(exportDate, dot1)
	if batch2 != 2 {
		t.Errorf("kỳ vọng đợt 2, thực tế %d", batch2)
	}
}
