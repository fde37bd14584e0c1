package repositories

import (
	"context"

	"staynest-hostels/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// WalletRequestRepository handles student top-up requests
type WalletRequestRepository struct {
	db *gorm.DB
}

// NewWalletRequestRepository creates a new wallet request repository
func NewWalletRequestRepository(db *gorm.DB) *WalletRequestRepository {
	return &WalletRequestRepository{db: db}
}

// Create creates a pending wallet request
func (r *WalletRequestRepository) Create(ctx context.Context, req *models.WalletRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

// GetByID gets a wallet request by ID
func (r *WalletRequestRepository) GetByID(ctx context.Context, id uint) (*models.WalletRequest, error) {
	var req models.WalletRequest
	err := r.db.WithContext(ctx).Preload("Student").Where("id = ?", id).First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// ListByStudent lists a student's requests, newest first
func (r *WalletRequestRepository) ListByStudent(ctx context.Context, studentID uint, offset, limit int) ([]*models.WalletRequest, int64, error) {
	var requests []*models.WalletRequest
	var total int64

	query := r.db.WithContext(ctx).Model(&models.WalletRequest{}).Where("student_id = ?", studentID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Offset(offset).Limit(limit).Order("id DESC").Find(&requests).Error; err != nil {
		return nil, 0, err
	}

	return requests, total, nil
}

// ListByStatus lists requests in a status for the admin review queue
// (empty status = all)
func (r *WalletRequestRepository) ListByStatus(ctx context.Context, status string, offset, limit int) ([]*models.WalletRequest, int64, error) {
	var requests []*models.WalletRequest
	var total int64

	query := r.db.WithContext(ctx).Model(&models.WalletRequest{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Preload("Student").Offset(offset).Limit(limit).Order("id ASC").Find(&requests).Error; err != nil {
		return nil, 0, err
	}

	return requests, total, nil
}
