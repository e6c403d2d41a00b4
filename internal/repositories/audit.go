package repositories

import (
	"context"
	"fmt"

	"ledgerguard/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AuditRepository mirrors transfer records into Postgres. It satisfies
// history.Sink.
type AuditRepository interface {
	Save(ctx context.Context, rec *models.TransferRecord) error
	ListByAccount(ctx context.Context, email string, limit, offset int) ([]models.TransferRecord, int64, error)
	VolumeByStatus(ctx context.Context) (map[models.TransferStatus]decimal.Decimal, error)
}

type auditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) AuditRepository {
	if db == nil {
		panic("database is required")
	}
	return &auditRepository{db: db}
}

func (r *auditRepository) Save(ctx context.Context, rec *models.TransferRecord) error {
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return fmt.Errorf("save transfer record %s: %w", rec.ID, err)
	}
	return nil
}

func (r *auditRepository) ListByAccount(ctx context.Context, email string, limit, offset int) ([]models.TransferRecord, int64, error) {
	email = models.NormalizeEmail(email)
	q := r.db.WithContext(ctx).Model(&models.TransferRecord{}).
		Where("from_email = ? OR to_email = ?", email, email).
		Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []models.TransferRecord
	err := q.Order("timestamp DESC").Limit(limit).Offset(offset).Find(&records).Error
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

func (r *auditRepository) VolumeByStatus(ctx context.Context) (map[models.TransferStatus]decimal.Decimal, error) {
	type row struct {
		Status models.TransferStatus
		Total  decimal.Decimal
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&models.TransferRecord{}).
		Select("status, COALESCE(SUM(amount), 0) as total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[models.TransferStatus]decimal.Decimal, len(rows))
	for _, rw := range rows {
		out[rw.Status] = rw.Total
	}
	return out, nil
}
