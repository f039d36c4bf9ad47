package service

import (
	"errors"
	"testing"
	"time"

	"github.com/KINGIRIS1/qlhs-backend/internal/model"
)

func ngay(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

// ── Advance theo bước mặc định ──

func TestAdvance_ChuoiMacDinh(t *testing.T) {
	now := ngay("2024-05-10")

	cases := []struct {
		tu   model.RecordStatus
		den  model.RecordStatus
	}{
		{model.StatusAssigned, model.StatusInProgress},
		{model.StatusInProgress, model.StatusPendingSign},
		{model.StatusPendingSign, model.StatusSigned},
		{model.StatusSigned, model.StatusHandover},
	}

	for _, tc := range cases {
		rec := model.Record{Status: tc.tu}
		out, err := Advance(rec, "", now)
		if err != nil {
			t.Fatalf("Advance từ %s thất bại: %v", tc.tu, err)
		}
		if out.Status != tc.den {
			t.Errorf("Advance từ %s: kỳ vọng %s, thực tế %s", tc.tu, tc.den, out.Status)
		}
	}
}

// Kịch bản: hồ sơ chờ ký, advance hai lần liên tiếp → đã ký rồi bàn giao
// kèm ngày hoàn thành.
func TestAdvance_ChoKy_HaiLan(t *testing.T) {
	now := ngay("2024-05-10")
	rec := model.Record{Status: model.StatusPendingSign}

	out, err := Advance(rec, "", now)
	if err != nil {
		t.Fatalf("lần 1 thất bại: %v", err)
	}
	if out.Status != model.StatusSigned {
		t.Fatalf("lần 1: kỳ vọng signed, thực tế %s", out.Status)
	}

	out, err = Advance(out, "", now)
	if err != nil {
		t.Fatalf("lần 2 thất bại: %v", err)
	}
	if out.Status != model.StatusHandover {
		t.Fatalf("lần 2: kỳ vọng handover, thực tế %s", out.Status)
	}
	if out.CompletedDate == nil {
		t.Fatal("bàn giao phải ghi CompletedDate")
	}
	if !out.CompletedDate.Equal(ngay("2024-05-10")) {
		t.Errorf("CompletedDate kỳ vọng 2024-05-10, thực tế %v", out.CompletedDate)
	}
}

func TestAdvance_TiepNhanKhongCoBuocMacDinh(t *testing.T) {
	rec := model.Record{Status: model.StatusReceived}
	_, err := Advance(rec, "", time.Now())
	if !errors.Is(err, ErrAssignmentRequired) {
		t.Errorf("kỳ vọng ErrAssignmentRequired, thực tế: %v", err)
	}
}

func TestAdvance_PhanCong_GhiNgay(t *testing.T) {
	now := ngay("2024-05-02")
	rec := model.Record{Status: model.StatusReceived}

	out, err := Advance(rec, model.StatusAssigned, now)
	if err != nil {
		t.Fatalf("Advance sang assigned thất bại: %v", err)
	}
	if out.Status != model.StatusAssigned {
		t.Errorf("kỳ vọng assigned, thực tế %s", out.Status)
	}
	if out.AssignedDate == nil || !out.AssignedDate.Equal(ngay("2024-05-02")) {
		t.Errorf("AssignedDate kỳ vọng 2024-05-02, thực tế %v", out.AssignedDate)
	}
}

func TestAdvance_TrangThaiKetThuc(t *testing.T) {
	now := time.Now()
	for _, st := range []model.RecordStatus{model.StatusHandover, model.StatusWithdrawn} {
		rec := model.Record{Status: st}
		_, err := Advance(rec, "", now)
		if !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("Advance từ %s: kỳ vọng ErrInvalidTransition, thực tế %v", st, err)
		}
		_, err = Advance(rec, model.StatusWithdrawn, now)
		if !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("Advance %s → withdrawn: kỳ vọng ErrInvalidTransition, thực tế %v", st, err)
		}
	}
}

func TestAdvance_NhayCocKhongHopLe(t *testing.T) {
	rec := model.Record{Status: model.StatusAssigned}
	_, err := Advance(rec, model.StatusSigned, time.Now())
	if !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("assigned → signed phải bị từ chối, thực tế: %v", err)
	}
}

func TestAdvance_KhongSuaDoiDauVao(t *testing.T) {
	rec := model.Record{Status: model.StatusSigned}
	out, err := Advance(rec, "", ngay("2024-05-10"))
	if err != nil {
		t.Fatalf("Advance thất bại: %v", err)
	}
	if rec.Status != model.StatusSigned || rec.CompletedDate != nil {
		t.Error("Advance không được sửa đổi hồ sơ đầu vào")
	}
	if out.Status != model.StatusHandover {
		t.Errorf("bản sao trả về phải là handover, thực tế %s", out.Status)
	}
}

// ── Rút hồ sơ ──

func TestAdvance_RutHoSo_TuMoiTrangThaiChuaKetThuc(t *testing.T) {
	now := time.Now()
	nonTerminal := []model.RecordStatus{
		model.StatusReceived, model.StatusAssigned, model.StatusInProgress,
		model.StatusPendingSign, model.StatusSigned,
	}
	for _, st := range nonTerminal {
		rec := model.Record{Status: st}
		out, err := Advance(rec, model.StatusWithdrawn, now)
		if err != nil {
			t.Errorf("rút hồ sơ từ %s phải được phép: %v", st, err)
			continue
		}
		if out.Status != model.StatusWithdrawn {
			t.Errorf("kỳ vọng withdrawn, thực tế %s", out.Status)
		}
	}
}

// ── CanAdvance ──

func TestCanAdvance(t *testing.T) {
	cases := []struct {
		tu     model.RecordStatus
		den    model.RecordStatus
		duoc   bool
	}{
		{model.StatusReceived, model.StatusAssigned, true},
		{model.StatusReceived, model.StatusInProgress, false},
		{model.StatusAssigned, model.StatusInProgress, true},
		{model.StatusInProgress, model.StatusPendingSign, true},
		{model.StatusPendingSign, model.StatusSigned, true},
		{model.StatusSigned, model.StatusHandover, true},
		{model.StatusSigned, model.StatusWithdrawn, true},
		{model.StatusHandover, model.StatusWithdrawn, false},
		{model.StatusWithdrawn, model.StatusReceived, false},
		{model.StatusAssigned, "trang_thai_la", false},
	}

	for _, tc := range cases {
		if got := CanAdvance(tc.tu, tc.den); got != tc.duoc {
			t.Errorf("CanAdvance(%s, %s) = %v, kỳ vọng %v", tc.tu, tc.den, got, tc.duoc)
		}
	}
}

// ── Handover (bàn giao theo đợt) ──

func TestHandover_TuTrangThaiGiua(t *testing.T) {
	now := ngay("2024-06-01")
	rec := model.Record{Status: model.StatusInProgress}

	out, err := Handover(rec, now)
	if err != nil {
		t.Fatalf("Handover thất bại: %v", err)
	}
	if out.Status != model.StatusHandover {
		t.Errorf("kỳ vọng handover, thực tế %s", out.Status)
	}
	if out.CompletedDate == nil {
		t.Error("Handover phải ghi CompletedDate khi chưa có")
	}
}

func TestHandover_GiuCompletedDateCu(t *testing.T) {
	done := ngay("2024-05-20")
	rec := model.Record{Status: model.StatusSigned, CompletedDate: &done}

	out, err := Handover(rec, ngay("2024-06-01"))
	if err != nil {
		t.Fatalf("Handover thất bại: %v", err)
	}
	if !out.CompletedDate.Equal(done) {
		t.Errorf("CompletedDate có sẵn phải giữ nguyên, thực tế %v", out.CompletedDate)
	}
}

func TestHandover_HoSoDaRut(t *testing.T) {
	rec := model.Record{Status: model.StatusWithdrawn}
	if _, err := Handover(rec, time.Now()); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("bàn giao hồ sơ đã rút phải bị từ chối, thực tế: %v", err)
	}
}

// ── ParseRecordStatus (từ vựng bên ngoài) ──

func TestParseRecordStatus(t *testing.T) {
	cases := []struct {
		raw  string
		want model.RecordStatus
		ok   bool
	}{
		{"received", model.StatusReceived, true},
		{"Đã tiếp nhận", model.StatusReceived, true},
		{"ĐANG ĐO ĐẠC", model.StatusInProgress, true},
		{"chờ ký", model.StatusPendingSign, true},
		{"Trình ký", model.StatusPendingSign, true},
		{"đã ký duyệt", model.StatusSigned, true},
		{"Đã bàn giao", model.StatusHandover, true},
		{"rút hồ sơ", model.StatusWithdrawn, true},
		{"handover", model.StatusHandover, true},
		{"trạng thái lạ", "", false},
		{"", "", false},
	}

	for _, tc := range cases {
		got, ok := model.ParseRecordStatus(tc.raw)
		if ok != tc.ok || got != tc.want {
			t.Errorf("ParseRecordStatus(%q) = (%q, %v), kỳ vọng (%q, %v)", tc.raw, got, ok, tc.want, tc.ok)
		}
	}
}
