package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/KINGIRIS1/qlhs-backend/internal/model"
	"github.com/KINGIRIS1/qlhs-backend/internal/repository"
	pkgerrors "github.com/KINGIRIS1/qlhs-backend/pkg/errors"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = "user-" + user.Username
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) List(_ context.Context) ([]model.User, error) {
	var result []model.User
	for _, u := range m.users {
		result = append(result, *u)
	}
	return result, nil
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.users, id)
	return nil
}

// ── Mock RecordRepository ──

type mockRecordRepo struct {
	records map[string]*model.Record
	seq     int
	// createErrs lỗi trả cho từng lần Create kế tiếp (mô phỏng trùng mã)
	createErrs []error
}

func newMockRecordRepo() *mockRecordRepo {
	return &mockRecordRepo{records: make(map[string]*model.Record)}
}

func (m *mockRecordRepo) Create(_ context.Context, rec *model.Record) error {
	if len(m.createErrs) > 0 {
		err := m.createErrs[0]
		m.createErrs = m.createErrs[1:]
		if err != nil {
			return err
		}
	}
	for _, existing := range m.records {
		if existing.Code == rec.Code {
			return gorm.ErrDuplicatedKey
		}
	}
	if rec.RecordID == "" {
		m.seq++
		rec.RecordID = fmt.Sprintf("rec-%03d", m.seq)
	}
	m.records[rec.RecordID] = rec
	return nil
}

func (m *mockRecordRepo) GetByID(_ context.Context, id string) (*model.Record, error) {
	if r, ok := m.records[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRecordRepo) GetByCode(_ context.Context, code string) (*model.Record, error) {
	for _, r := range m.records {
		if r.Code == code {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRecordRepo) List(_ context.Context, filter repository.RecordFilter) ([]model.Record, error) {
	var result []model.Record
	for _, r := range m.records {
		if filter.Status != "" && r.Status != filter.Status {
			continue
		}
		if filter.Ward != "" && r.Ward != filter.Ward {
			continue
		}
		if filter.RecordType != "" && r.RecordType != filter.RecordType {
			continue
		}
		if filter.AssignedTo != "" && (r.AssignedTo == nil || *r.AssignedTo != filter.AssignedTo) {
			continue
		}
		if filter.FromDate != nil && r.ReceivedDate.Before(*filter.FromDate) {
			continue
		}
		if filter.ToDate != nil && r.ReceivedDate.After(*filter.ToDate) {
			continue
		}
		result = append(result, *r)
	}
	return result, nil
}

func (m *mockRecordRepo) ListCodesByPrefix(_ context.Context, prefix string) ([]string, error) {
	var codes []string
	for _, r := range m.records {
		if strings.HasPrefix(r.Code, prefix+"-") {
			codes = append(codes, r.Code)
		}
	}
	return codes, nil
}

func (m *mockRecordRepo) ListByExportDate(_ context.Context, date time.Time) ([]model.Record, error) {
	var result []model.Record
	day := date.Format("2006-01-02")
	for _, r := range m.records {
		if r.ExportDate != nil && r.ExportDate.Format("2006-01-02") == day {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockRecordRepo) ListByIDs(_ context.Context, ids []string) ([]model.Record, error) {
	var result []model.Record
	for _, id := range ids {
		if r, ok := m.records[id]; ok {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockRecordRepo) Update(_ context.Context, rec *model.Record) error {
	if cur, ok := m.records[rec.RecordID]; ok && cur.Version != rec.Version {
		return pkgerrors.ErrOptimisticLock
	}
	rec.Version++
	m.records[rec.RecordID] = rec
	return nil
}

func (m *mockRecordRepo) UpdateBatch(_ context.Context, recs []model.Record) error {
	for i := range recs {
		if cur, ok := m.records[recs[i].RecordID]; ok && cur.Version != recs[i].Version {
			return pkgerrors.ErrOptimisticLock
		}
	}
	for i := range recs {
		rec := recs[i]
		rec.Version++
		m.records[rec.RecordID] = &rec
	}
	return nil
}

func (m *mockRecordRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.records, id)
	return nil
}

// ── Mock HolidayRepository ──

type mockHolidayRepo struct {
	holidays map[string]*model.Holiday
}

func newMockHolidayRepo() *mockHolidayRepo {
	return &mockHolidayRepo{holidays: make(map[string]*model.Holiday)}
}

func (m *mockHolidayRepo) Create(_ context.Context, h *model.Holiday) error {
	if h.HolidayID == "" {
		h.HolidayID = "hol-" + h.Name
	}
	m.holidays[h.HolidayID] = h
	return nil
}

func (m *mockHolidayRepo) GetByID(_ context.Context, id string) (*model.Holiday, error) {
	if h, ok := m.holidays[id]; ok {
		return h, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockHolidayRepo) List(_ context.Context) ([]model.Holiday, error) {
	var result []model.Holiday
	for _, h := range m.holidays {
		result = append(result, *h)
	}
	return result, nil
}

func (m *mockHolidayRepo) Update(_ context.Context, h *model.Holiday) error {
	m.holidays[h.HolidayID] = h
	return nil
}

func (m *mockHolidayRepo) Delete(_ context.Context, id string) error {
	delete(m.holidays, id)
	return nil
}

// ── Dựng Repository từ mock ──

func newMockRepository() (*repository.Repository, *mockUserRepo, *mockRecordRepo, *mockHolidayRepo) {
	userRepo := newMockUserRepo()
	recordRepo := newMockRecordRepo()
	holidayRepo := newMockHolidayRepo()
	repo := &repository.Repository{
		User:    userRepo,
		Record:  recordRepo,
		Holiday: holidayRepo,
	}
	return repo, userRepo, recordRepo, holidayRepo
}
