package repositories

import (
	"context"

	"staynest-hostels/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// PaymentRepository handles the append-only wallet ledger
type PaymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Create appends a ledger row. Ledger rows are never updated or deleted.
func (r *PaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

// SumBalance computes a student's spendable balance by aggregation:
// SUM(credit) - SUM(debit). The balance is never materialized, so it
// cannot drift from missed updates.
func (r *PaymentRepository) SumBalance(ctx context.Context, studentID uint) (float64, error) {
	var balance float64
	err := r.db.WithContext(ctx).Model(&models.Payment{}).
		Select("COALESCE(SUM(CASE WHEN type = ? THEN amount ELSE -amount END), 0)", models.PaymentCredit).
		Where("student_id = ?", studentID).
		Scan(&balance).Error
	return balance, err
}

// ListByStudent lists a student's ledger rows, newest first, paginated
func (r *PaymentRepository) ListByStudent(ctx context.Context, studentID uint, offset, limit int) ([]*models.Payment, int64, error) {
	var payments []*models.Payment
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Payment{}).Where("student_id = ?", studentID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Offset(offset).Limit(limit).Order("id DESC").Find(&payments).Error; err != nil {
		return nil, 0, err
	}

	return payments, total, nil
}
