package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"staynest-hostels/internal/adapters/persistence/models"
	"staynest-hostels/internal/adapters/persistence/repositories"
	"staynest-hostels/internal/core/domain"

	"gorm.io/gorm"
)

// WalletService handles the student wallet ledger. The balance is
// always computed by aggregating the payment rows; debits check the
// balance and insert inside a single transaction so two concurrent
// debits cannot jointly overdraw.
type WalletService struct {
	db          *gorm.DB
	paymentRepo *repositories.PaymentRepository
	requestRepo *repositories.WalletRequestRepository
	userRepo    repositories.UserRepository
}

// NewWalletService creates a new wallet service
func NewWalletService(
	db *gorm.DB,
	paymentRepo *repositories.PaymentRepository,
	requestRepo *repositories.WalletRequestRepository,
	userRepo repositories.UserRepository,
) *WalletService {
	return &WalletService{
		db:          db,
		paymentRepo: paymentRepo,
		requestRepo: requestRepo,
		userRepo:    userRepo,
	}
}

// CreatePaymentInput is the admin ledger entry payload
type CreatePaymentInput struct {
	StudentID uint    `json:"student"`
	Type      string  `json:"type"`
	Amount    float64 `json:"amount"`
	Note      string  `json:"note"`
}

// WalletSummary is the student wallet view
type WalletSummary struct {
	TotalAmount float64           `json:"totalAmount"`
	Payments    []*models.Payment `json:"payments"`
	Total       int64             `json:"-"`
}

// Balance computes a student's spendable balance
func (s *WalletService) Balance(ctx context.Context, studentID uint) (float64, error) {
	return s.paymentRepo.SumBalance(ctx, studentID)
}

// GetWallet returns the computed balance plus a page of ledger rows
func (s *WalletService) GetWallet(ctx context.Context, studentID uint, offset, limit int) (*WalletSummary, error) {
	balance, err := s.paymentRepo.SumBalance(ctx, studentID)
	if err != nil {
		return nil, err
	}

	payments, total, err := s.paymentRepo.ListByStudent(ctx, studentID, offset, limit)
	if err != nil {
		return nil, err
	}

	return &WalletSummary{
		TotalAmount: balance,
		Payments:    payments,
		Total:       total,
	}, nil
}

// CreatePayment appends a ledger row on behalf of an admin. Debits are
// rejected when the requested amount exceeds the balance computed in
// the same transaction.
func (s *WalletService) CreatePayment(ctx context.Context, input *CreatePaymentInput, adminID uint) (*models.Payment, error) {
	if input.StudentID == 0 {
		return nil, fmt.Errorf("%w: student is required", domain.ErrInvalidInput)
	}
	if input.Type != models.PaymentCredit && input.Type != models.PaymentDebit {
		return nil, domain.ErrInvalidPaymentType
	}
	if input.Amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}

	student, err := s.userRepo.GetByID(ctx, input.StudentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if student.Role != models.RoleStudent {
		return nil, fmt.Errorf("%w: user %d is not a student", domain.ErrInvalidInput, input.StudentID)
	}

	payment := &models.Payment{
		StudentID: input.StudentID,
		Type:      input.Type,
		Amount:    input.Amount,
		Note:      input.Note,
		CreatedBy: &adminID,
	}

	if input.Type == models.PaymentCredit {
		if err := s.paymentRepo.Create(ctx, payment); err != nil {
			return nil, err
		}
		return payment, nil
	}

	// Debit: balance check and insert in one transaction
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		balance, err := sumBalanceTx(tx, input.StudentID)
		if err != nil {
			return err
		}
		if input.Amount > balance {
			return &domain.InsufficientBalanceError{Balance: balance, Requested: input.Amount}
		}
		return tx.Create(payment).Error
	})
	if err != nil {
		return nil, err
	}

	return payment, nil
}

// CreateRequestInput is the student top-up request payload
type CreateRequestInput struct {
	Amount        float64 `json:"amount"`
	PaymentMethod string  `json:"paymentMethod"`
	Note          string  `json:"note"`
}

// CreateRequest creates a pending top-up request for a student
func (s *WalletService) CreateRequest(ctx context.Context, studentID uint, input *CreateRequestInput) (*models.WalletRequest, error) {
	if input.Amount < 1 {
		return nil, domain.ErrInvalidAmount
	}
	if input.PaymentMethod != models.MethodUPI && input.PaymentMethod != models.MethodBankTransfer {
		return nil, domain.ErrInvalidPaymentMethod
	}

	req := &models.WalletRequest{
		StudentID:     studentID,
		Amount:        input.Amount,
		PaymentMethod: input.PaymentMethod,
		Status:        models.WalletRequestPending,
		Note:          input.Note,
	}
	if err := s.requestRepo.Create(ctx, req); err != nil {
		return nil, err
	}

	return req, nil
}

// ListRequestsByStudent lists a student's own top-up requests
func (s *WalletService) ListRequestsByStudent(ctx context.Context, studentID uint, offset, limit int) ([]*models.WalletRequest, int64, error) {
	return s.requestRepo.ListByStudent(ctx, studentID, offset, limit)
}

// ListRequests lists top-up requests for the admin review queue
func (s *WalletService) ListRequests(ctx context.Context, status string, offset, limit int) ([]*models.WalletRequest, int64, error) {
	return s.requestRepo.ListByStatus(ctx, status, offset, limit)
}

// ReviewRequest approves or rejects a pending request. Approval
// credits the ledger atomically with the status flip.
func (s *WalletService) ReviewRequest(ctx context.Context, requestID, adminID uint, approve bool, remark string) (*models.WalletRequest, error) {
	var reviewed *models.WalletRequest
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var req models.WalletRequest
		if err := tx.Where("id = ?", requestID).First(&req).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}
		if !req.IsPending() {
			return domain.ErrWalletRequestClosed
		}

		now := time.Now()
		req.ReviewedBy = &adminID
		req.ReviewedAt = &now
		if remark != "" {
			req.Note = remark
		}

		if approve {
			req.Status = models.WalletRequestApproved
			payment := &models.Payment{
				StudentID: req.StudentID,
				Type:      models.PaymentCredit,
				Amount:    req.Amount,
				Note:      fmt.Sprintf("Wallet top-up via %s (request #%d)", req.PaymentMethod, req.ID),
				CreatedBy: &adminID,
			}
			if err := tx.Create(payment).Error; err != nil {
				return err
			}
		} else {
			req.Status = models.WalletRequestRejected
		}

		if err := tx.Save(&req).Error; err != nil {
			return err
		}
		reviewed = &req
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Wallet request #%d %s by admin %d", reviewed.ID, reviewed.Status, adminID)
	return reviewed, nil
}

// sumBalanceTx computes the balance inside a transaction
func sumBalanceTx(tx *gorm.DB, studentID uint) (float64, error) {
	var balance float64
	err := tx.Model(&models.Payment{}).
		Select("COALESCE(SUM(CASE WHEN type = ? THEN amount ELSE -amount END), 0)", models.PaymentCredit).
		Where("student_id = ?", studentID).
		Scan(&balance).Error
	return balance, err
}
