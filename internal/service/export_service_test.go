package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/KINGIRIS1/qlhs-backend/internal/dto"
	"github.com/KINGIRIS1/qlhs-backend/internal/model"
)

// ── Hỗ trợ test ──

func setupTestExportService() (ExportService, *mockRecordRepo) {
	repo, _, recordRepo, _ := newMockRepository()
	svc := NewExportService(repo, zap.NewNop())
	return svc, recordRepo
}

func seedRecord(t *testing.T, recordRepo *mockRecordRepo, code string, status model.RecordStatus) *model.Record {
	t.Helper()
	rec := &model.Record{
		Code:         code,
		RecordType:   "trich_do",
		OwnerName:    "Nguyễn Văn An",
		Ward:         "Phường Cái Tắc",
		Status:       status,
		ReceivedDate: time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC),
		Deadline:     time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC),
	}
	if err := recordRepo.Create(context.Background(), rec); err != nil {
		t.Fatalf("seed hồ sơ thất bại: %v", err)
	}
	return rec
}

// ── Handover ──

func TestExportService_Handover_ClosesBatch(t *testing.T) {
	svc, recordRepo := setupTestExportService()

	a := seedRecord(t, recordRepo, "240506-001-CT", model.StatusSigned)
	b := seedRecord(t, recordRepo, "240506-002-CT", model.StatusInProgress)
	c := seedRecord(t, recordRepo, "240506-003-CT", model.StatusReceived)

	result, err := svc.Handover(context.Background(), &dto.HandoverRequest{
		RecordIDs:  []string{a.RecordID, b.RecordID, c.RecordID},
		ExportDate: "2024-05-21",
	}, "admin-001")
	if err != nil {
		t.Fatalf("Handover phải thành công: %v", err)
	}

	if result.Batch != 1 {
		t.Errorf("đợt đầu trong ngày phải là 1, nhận %d", result.Batch)
	}
	if result.ExportDate != "2024-05-21" {
		t.Errorf("kỳ vọng ngày xuất 2024-05-21, nhận %s", result.ExportDate)
	}
	if len(result.Records) != 3 {
		t.Fatalf("đợt phải gồm 3 hồ sơ, nhận %d", len(result.Records))
	}
	for _, rec := range result.Records {
		if rec.Status != string(model.StatusHandover) {
			t.Errorf("hồ sơ %s phải sang handover, hiện %s", rec.Code, rec.Status)
		}
		if rec.CompletedDate == nil {
			t.Errorf("hồ sơ %s phải có CompletedDate", rec.Code)
		}
		if rec.ExportBatch == nil || *rec.ExportBatch != 1 {
			t.Errorf("hồ sơ %s phải mang số đợt 1", rec.Code)
		}
	}
}

func TestExportService_Handover_SecondBatchSameDay(t *testing.T) {
	svc, recordRepo := setupTestExportService()

	a := seedRecord(t, recordRepo, "240506-001-CT", model.StatusSigned)
	first, err := svc.Handover(context.Background(), &dto.HandoverRequest{
		RecordIDs:  []string{a.RecordID},
		ExportDate: "2024-05-21",
	}, "admin-001")
	if err != nil {
		t.Fatalf("Handover đợt 1 phải thành công: %v", err)
	}

	b := seedRecord(t, recordRepo, "240506-002-CT", model.StatusSigned)
	second, err := svc.Handover(context.Background(), &dto.HandoverRequest{
		RecordIDs:  []string{b.RecordID},
		ExportDate: "2024-05-21",
	}, "admin-001")
	if err != nil {
		t.Fatalf("Handover đợt 2 phải thành công: %v", err)
	}

	if first.Batch != 1 || second.Batch != 2 {
		t.Errorf("số đợt trong ngày phải tăng dần, nhận %d rồi %d", first.Batch, second.Batch)
	}
}

func TestExportService_Handover_NewDayResetsBatch(t *testing.T) {
	svc, recordRepo := setupTestExportService()

	a := seedRecord(t, recordRepo, "240506-001-CT", model.StatusSigned)
	if _, err := svc.Handover(context.Background(), &dto.HandoverRequest{
		RecordIDs:  []string{a.RecordID},
		ExportDate: "2024-05-21",
	}, "admin-001"); err != nil {
		t.Fatalf("Handover ngày 21 phải thành công: %v", err)
	}

	b := seedRecord(t, recordRepo, "240506-002-CT", model.StatusSigned)
	result, err := svc.Handover(context.Background(), &dto.HandoverRequest{
		RecordIDs:  []string{b.RecordID},
		ExportDate: "2024-05-22",
	}, "admin-001")
	if err != nil {
		t.Fatalf("Handover ngày 22 phải thành công: %v", err)
	}
	if result.Batch != 1 {
		t.Errorf("sang ngày mới số đợt phải về 1, nhận %d", result.Batch)
	}
}

func TestExportService_Handover_RejectsWithdrawn(t *testing.T) {
	svc, recordRepo := setupTestExportService()

	rec := seedRecord(t, recordRepo, "240506-001-CT", model.StatusWithdrawn)

	_, err := svc.Handover(context.Background(), &dto.HandoverRequest{
		RecordIDs:  []string{rec.RecordID},
		ExportDate: "2024-05-21",
	}, "admin-001")
	if !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("hồ sơ đã rút không được vào đợt bàn giao, nhận: %v", err)
	}
}

func TestExportService_Handover_RejectsAlreadyBatched(t *testing.T) {
	svc, recordRepo := setupTestExportService()

	rec := seedRecord(t, recordRepo, "240506-001-CT", model.StatusSigned)
	if _, err := svc.Handover(context.Background(), &dto.HandoverRequest{
		RecordIDs:  []string{rec.RecordID},
		ExportDate: "2024-05-21",
	}, "admin-001"); err != nil {
		t.Fatalf("Handover lần 1 phải thành công: %v", err)
	}

	// Gom lại hồ sơ đã chốt đợt phải bị từ chối, không được ghi đè
	// số đợt / ngày bàn giao cũ
	_, err := svc.Handover(context.Background(), &dto.HandoverRequest{
		RecordIDs:  []string{rec.RecordID},
		ExportDate: "2024-05-22",
	}, "admin-001")
	if !errors.Is(err, ErrAlreadyHandedOver) {
		t.Fatalf("kỳ vọng ErrAlreadyHandedOver, nhận: %v", err)
	}

	stored, err := recordRepo.GetByID(context.Background(), rec.RecordID)
	if err != nil {
		t.Fatalf("đọc lại hồ sơ thất bại: %v", err)
	}
	if stored.ExportBatch == nil || *stored.ExportBatch != 1 {
		t.Error("số đợt của hồ sơ đã bàn giao phải giữ nguyên")
	}
	if stored.ExportDate == nil || stored.ExportDate.Format("2006-01-02") != "2024-05-21" {
		t.Error("ngày bàn giao của hồ sơ đã bàn giao phải giữ nguyên")
	}
}

func TestExportService_Handover_UnknownRecord(t *testing.T) {
	svc, _ := setupTestExportService()

	_, err := svc.Handover(context.Background(), &dto.HandoverRequest{
		RecordIDs:  []string{"rec-khong-ton-tai"},
		ExportDate: "2024-05-21",
	}, "admin-001")
	if !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("kỳ vọng ErrRecordNotFound, nhận: %v", err)
	}
}

// ── ExportHandoverSheet ──

func TestExportService_ExportHandoverSheet(t *testing.T) {
	svc, recordRepo := setupTestExportService()

	rec := seedRecord(t, recordRepo, "240506-001-CT", model.StatusSigned)
	if _, err := svc.Handover(context.Background(), &dto.HandoverRequest{
		RecordIDs:  []string{rec.RecordID},
		ExportDate: "2024-05-21",
	}, "admin-001"); err != nil {
		t.Fatalf("Handover phải thành công: %v", err)
	}

	buf, filename, err := svc.ExportHandoverSheet(context.Background(), "2024-05-21", 1)
	if err != nil {
		t.Fatalf("ExportHandoverSheet phải thành công: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("file Excel không được rỗng")
	}
	// .xlsx là zip, bắt đầu bằng PK
	if !bytes.HasPrefix(buf.Bytes(), []byte("PK")) {
		t.Error("nội dung trả về phải là file xlsx hợp lệ")
	}
	if !strings.HasSuffix(filename, ".xlsx") {
		t.Errorf("tên file phải có đuôi .xlsx, nhận %s", filename)
	}
}

func TestExportService_ExportHandoverSheet_Empty(t *testing.T) {
	svc, _ := setupTestExportService()

	_, _, err := svc.ExportHandoverSheet(context.Background(), "2024-05-21", 1)
	if !errors.Is(err, ErrExportNoRecords) {
		t.Errorf("kỳ vọng ErrExportNoRecords, nhận: %v", err)
	}
}

// ── ExportRecordList ──

func TestExportService_ExportRecordList(t *testing.T) {
	svc, recordRepo := setupTestExportService()

	seedRecord(t, recordRepo, "240506-001-CT", model.StatusReceived)
	seedRecord(t, recordRepo, "240506-002-CT", model.StatusSigned)

	buf, filename, err := svc.ExportRecordList(context.Background(), &dto.RecordListRequest{})
	if err != nil {
		t.Fatalf("ExportRecordList phải thành công: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("PK")) {
		t.Error("nội dung trả về phải là file xlsx hợp lệ")
	}
	if !strings.HasPrefix(filename, "danh_sach_ho_so_") {
		t.Errorf("tên file không đúng mẫu: %s", filename)
	}
}

func TestExportService_ExportRecordList_SearchFilter(t *testing.T) {
	svc, recordRepo := setupTestExportService()

	seedRecord(t, recordRepo, "240506-001-CT", model.StatusReceived)

	_, _, err := svc.ExportRecordList(context.Background(), &dto.RecordListRequest{Search: "khong khop gi ca"})
	if !errors.Is(err, ErrExportNoRecords) {
		t.Errorf("bộ lọc không khớp gì phải trả ErrExportNoRecords, nhận: %v", err)
	}
}
