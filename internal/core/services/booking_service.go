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

// BookingService handles student bed reservations. A booking moves an
// available bed to onbook, debits the advance from the student wallet
// and records the booking, all in one transaction.
type BookingService struct {
	db          *gorm.DB
	bookingRepo *repositories.BookingRepository
	userRepo    repositories.UserRepository
}

// NewBookingService creates a new booking service
func NewBookingService(db *gorm.DB, bookingRepo *repositories.BookingRepository, userRepo repositories.UserRepository) *BookingService {
	return &BookingService{
		db:          db,
		bookingRepo: bookingRepo,
		userRepo:    userRepo,
	}
}

// CreateBookingInput identifies the bed being reserved
type CreateBookingInput struct {
	PropertyID uint `json:"property_id"`
	RoomID     uint `json:"room_id"`
	BedID      uint `json:"bed_id"`
}

// Create reserves a bed for a student
func (s *BookingService) Create(ctx context.Context, studentID uint, input *CreateBookingInput) (*models.Booking, error) {
	if input.PropertyID == 0 || input.RoomID == 0 || input.BedID == 0 {
		return nil, fmt.Errorf("%w: property_id, room_id and bed_id are required", domain.ErrInvalidInput)
	}

	student, err := s.userRepo.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if !student.IsActive {
		return nil, domain.ErrForbidden
	}

	var booking *models.Booking
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		property, room, bed, err := loadBedPath(tx, input.PropertyID, input.RoomID, input.BedID)
		if err != nil {
			return err
		}
		if !bed.Status.IsBookable() {
			return domain.ErrBedNotAvailable
		}

		amount := room.Rent

		balance, err := sumBalanceTx(tx, studentID)
		if err != nil {
			return err
		}
		if amount > balance {
			return &domain.InsufficientBalanceError{Balance: balance, Requested: amount}
		}

		debit := &models.Payment{
			StudentID: studentID,
			Type:      models.PaymentDebit,
			Amount:    amount,
			Note:      fmt.Sprintf("Advance rent for bed %s at %s", bed.BedNumber, property.Name),
		}
		if err := tx.Create(debit).Error; err != nil {
			return err
		}

		today := time.Now().Truncate(24 * time.Hour)
		bed.Status = models.BedOnBook
		bed.StudentName = student.Name
		bed.StudentPhone = student.Phone
		bed.StudentEmail = student.Email
		bed.AdvanceRent = amount
		bed.JoiningDate = &today
		if err := tx.Save(bed).Error; err != nil {
			return err
		}

		if err := recalculateRoom(tx, room); err != nil {
			return err
		}
		if err := recalculateProperty(tx, property); err != nil {
			return err
		}

		booking = &models.Booking{
			StudentID:  studentID,
			PropertyID: property.ID,
			RoomID:     room.ID,
			BedID:      bed.ID,
			Amount:     amount,
			Status:     models.BookingConfirmed,
		}
		return tx.Create(booking).Error
	})
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Booking #%d: student %d reserved bed %d", booking.ID, studentID, booking.BedID)
	return booking, nil
}

// ListByStudent lists a student's own bookings
func (s *BookingService) ListByStudent(ctx context.Context, studentID uint, offset, limit int) ([]*models.Booking, int64, error) {
	return s.bookingRepo.ListByStudent(ctx, studentID, offset, limit)
}

// List lists all bookings for the admin back-office
func (s *BookingService) List(ctx context.Context, offset, limit int) ([]*models.Booking, int64, error) {
	return s.bookingRepo.List(ctx, offset, limit)
}
