package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/KINGIRIS1/qlhs-backend/internal/model"
	pkgerrors "github.com/KINGIRIS1/qlhs-backend/pkg/errors"
)

// RecordFilter điều kiện lọc hồ sơ đẩy xuống được tầng SQL.
// Lọc theo từ khóa bỏ dấu thực hiện ở tầng service sau khi lấy snapshot.
type RecordFilter struct {
	Status     model.RecordStatus
	Ward       string
	RecordType string
	AssignedTo string
	FromDate   *time.Time // theo received_date
	ToDate     *time.Time
}

// RecordRepository truy cập dữ liệu hồ sơ
type RecordRepository interface {
	Create(ctx context.Context, rec *model.Record) error
	GetByID(ctx context.Context, id string) (*model.Record, error)
	GetByCode(ctx context.Context, code string) (*model.Record, error)
	List(ctx context.Context, filter RecordFilter) ([]model.Record, error)
	// ListCodesByPrefix lấy snapshot các mã hồ sơ bắt đầu bằng prefix của ngày
	ListCodesByPrefix(ctx context.Context, prefix string) ([]string, error)
	// ListByExportDate lấy snapshot hồ sơ đã vào đợt bàn giao trong ngày
	ListByExportDate(ctx context.Context, date time.Time) ([]model.Record, error)
	ListByIDs(ctx context.Context, ids []string) ([]model.Record, error)
	Update(ctx context.Context, rec *model.Record) error
	// UpdateBatch ghi nguyên tử cả đợt hồ sơ trong một transaction
	UpdateBatch(ctx context.Context, recs []model.Record) error
	Delete(ctx context.Context, id string, deletedBy string) error
}

type recordRepo struct {
	db *gorm.DB
}

// NewRecordRepo tạo RecordRepository
func NewRecordRepo(db *gorm.DB) RecordRepository {
	return &recordRepo{db: db}
}

func (r *recordRepo) Create(ctx context.Context, rec *model.Record) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *recordRepo) GetByID(ctx context.Context, id string) (*model.Record, error) {
	var rec model.Record
	err := r.db.WithContext(ctx).
		Preload("Assignee").
		Where("record_id = ?", id).
		First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *recordRepo) GetByCode(ctx context.Context, code string) (*model.Record, error) {
	var rec model.Record
	err := r.db.WithContext(ctx).
		Preload("Assignee").
		Where("code = ?", code).
		First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *recordRepo) List(ctx context.Context, filter RecordFilter) ([]model.Record, error) {
	q := r.db.WithContext(ctx).Model(&model.Record{}).Preload("Assignee")

	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Ward != "" {
		q = q.Where("ward = ?", filter.Ward)
	}
	if filter.RecordType != "" {
		q = q.Where("record_type = ?", filter.RecordType)
	}
	if filter.AssignedTo != "" {
		q = q.Where("assigned_to = ?", filter.AssignedTo)
	}
	if filter.FromDate != nil {
		q = q.Where("received_date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		q = q.Where("received_date <= ?", *filter.ToDate)
	}

	var recs []model.Record
	err := q.Order("received_date DESC, code DESC").Find(&recs).Error
	return recs, err
}

func (r *recordRepo) ListCodesByPrefix(ctx context.Context, prefix string) ([]string, error) {
	var codes []string
	err := r.db.WithContext(ctx).
		Model(&model.Record{}).
		Where("code LIKE ?", prefix+"-%").
		Pluck("code", &codes).Error
	return codes, err
}

func (r *recordRepo) ListByExportDate(ctx context.Context, date time.Time) ([]model.Record, error) {
	var recs []model.Record
	err := r.db.WithContext(ctx).
		Where("export_date = ?", date.Format("2006-01-02")).
		Find(&recs).Error
	return recs, err
}

func (r *recordRepo) ListByIDs(ctx context.Context, ids []string) ([]model.Record, error) {
	var recs []model.Record
	err := r.db.WithContext(ctx).
		Preload("Assignee").
		Where("record_id IN ?", ids).
		Find(&recs).Error
	return recs, err
}

func (r *recordRepo) Update(ctx context.Context, rec *model.Record) error {
	return updateRecordLocked(r.db.WithContext(ctx), rec)
}

func (r *recordRepo) UpdateBatch(ctx context.Context, recs []model.Record) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range recs {
			if err := updateRecordLocked(tx, &recs[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

// updateRecordLocked ghi hồ sơ với khóa lạc quan: chỉ ghi khi version trong
// DB còn khớp, khớp thì tăng version lên một.
func updateRecordLocked(db *gorm.DB, rec *model.Record) error {
	oldVersion := rec.Version
	result := db.
		Model(rec).
		Where("record_id = ? AND version = ?", rec.RecordID, oldVersion).
		Updates(map[string]interface{}{
			"record_type":    rec.RecordType,
			"owner_name":     rec.OwnerName,
			"ward":           rec.Ward,
			"plot_no":        rec.PlotNo,
			"sheet_no":       rec.SheetNo,
			"status":         rec.Status,
			"deadline":       rec.Deadline,
			"assigned_date":  rec.AssignedDate,
			"completed_date": rec.CompletedDate,
			"export_date":    rec.ExportDate,
			"export_batch":   rec.ExportBatch,
			"assigned_to":    rec.AssignedTo,
			"note":           rec.Note,
			"updated_by":     rec.UpdatedBy,
			"version":        oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	rec.Version = oldVersion + 1
	return nil
}

func (r *recordRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.Record{}).
		Where("record_id = ?", id).
		Updates(map[string]interface{}{
			"deleted_by": deletedBy,
			"deleted_at": gorm.Expr("NOW()"),
		}).Error
}
