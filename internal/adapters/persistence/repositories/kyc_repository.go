package repositories

import (
	"context"

	"staynest-hostels/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// KYCRepository handles student identity verification records
type KYCRepository struct {
	db *gorm.DB
}

// NewKYCRepository creates a new KYC repository
func NewKYCRepository(db *gorm.DB) *KYCRepository {
	return &KYCRepository{db: db}
}

// Create creates a KYC record
func (r *KYCRepository) Create(ctx context.Context, kyc *models.KYC) error {
	return r.db.WithContext(ctx).Create(kyc).Error
}

// GetByID gets a KYC record by ID
func (r *KYCRepository) GetByID(ctx context.Context, id uint) (*models.KYC, error) {
	var kyc models.KYC
	err := r.db.WithContext(ctx).Preload("Student").Where("id = ?", id).First(&kyc).Error
	if err != nil {
		return nil, err
	}
	return &kyc, nil
}

// GetByStudentID gets a student's KYC record
func (r *KYCRepository) GetByStudentID(ctx context.Context, studentID uint) (*models.KYC, error) {
	var kyc models.KYC
	err := r.db.WithContext(ctx).Where("student_id = ?", studentID).First(&kyc).Error
	if err != nil {
		return nil, err
	}
	return &kyc, nil
}

// ExistsByStudentID checks whether a student already submitted KYC
func (r *KYCRepository) ExistsByStudentID(ctx context.Context, studentID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.KYC{}).Where("student_id = ?", studentID).Count(&count).Error
	return count > 0, err
}

// Update saves KYC fields
func (r *KYCRepository) Update(ctx context.Context, kyc *models.KYC) error {
	return r.db.WithContext(ctx).Save(kyc).Error
}

// ListByStatus lists KYC records for the admin review queue
// (empty status = all)
func (r *KYCRepository) ListByStatus(ctx context.Context, status string, offset, limit int) ([]*models.KYC, int64, error) {
	var records []*models.KYC
	var total int64

	query := r.db.WithContext(ctx).Model(&models.KYC{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Preload("Student").Offset(offset).Limit(limit).Order("id ASC").Find(&records).Error; err != nil {
		return nil, 0, err
	}

	return records, total, nil
}
