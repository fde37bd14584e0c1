package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"staynest-hostels/internal/adapters/persistence/models"
	"staynest-hostels/internal/adapters/persistence/repositories"
	"staynest-hostels/internal/core/domain"

	"gorm.io/gorm"
)

// KYCService handles student identity verification
type KYCService struct {
	kycRepo *repositories.KYCRepository
}

// NewKYCService creates a new KYC service
func NewKYCService(kycRepo *repositories.KYCRepository) *KYCService {
	return &KYCService{kycRepo: kycRepo}
}

// SubmitKYCInput is the student KYC submission payload
type SubmitKYCInput struct {
	DocumentType   string `json:"document_type"`
	DocumentNumber string `json:"document_number"`
}

// Submit creates a student's KYC record. One record per student; a
// second submission is a conflict.
func (s *KYCService) Submit(ctx context.Context, studentID uint, input *SubmitKYCInput) (*models.KYC, error) {
	if input.DocumentType == "" {
		return nil, fmt.Errorf("%w: document_type is required", domain.ErrInvalidInput)
	}
	if input.DocumentNumber == "" {
		return nil, fmt.Errorf("%w: document_number is required", domain.ErrInvalidInput)
	}

	exists, err := s.kycRepo.ExistsByStudentID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrKYCExists
	}

	kyc := &models.KYC{
		StudentID:      studentID,
		DocumentType:   input.DocumentType,
		DocumentNumber: input.DocumentNumber,
		Status:         models.KYCStatusPending,
	}
	if err := s.kycRepo.Create(ctx, kyc); err != nil {
		return nil, err
	}

	return kyc, nil
}

// GetOwn returns a student's own KYC record
func (s *KYCService) GetOwn(ctx context.Context, studentID uint) (*models.KYC, error) {
	kyc, err := s.kycRepo.GetByStudentID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrKYCNotFound
		}
		return nil, err
	}
	return kyc, nil
}

// Review verifies or rejects a pending KYC record (admin only)
func (s *KYCService) Review(ctx context.Context, kycID, adminID uint, verify bool, remark string) (*models.KYC, error) {
	kyc, err := s.kycRepo.GetByID(ctx, kycID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrKYCNotFound
		}
		return nil, err
	}

	now := time.Now()
	kyc.VerifiedBy = &adminID
	kyc.VerifiedAt = &now
	kyc.Remark = remark
	if verify {
		kyc.Status = models.KYCStatusVerified
	} else {
		kyc.Status = models.KYCStatusRejected
	}

	if err := s.kycRepo.Update(ctx, kyc); err != nil {
		return nil, err
	}
	return kyc, nil
}

// ListByStatus lists KYC records for the admin review queue
func (s *KYCService) ListByStatus(ctx context.Context, status string, offset, limit int) ([]*models.KYC, int64, error) {
	return s.kycRepo.ListByStatus(ctx, status, offset, limit)
}
