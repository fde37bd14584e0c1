package services_test

import (
	"context"
	"testing"

	"staynest-hostels/internal/adapters/persistence/models"
	"staynest-hostels/internal/adapters/persistence/repositories"
	"staynest-hostels/internal/core/domain"
	"staynest-hostels/internal/core/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type bookingFixture struct {
	db          *gorm.DB
	bookingSvc  *services.BookingService
	propertySvc *services.PropertyService
	walletSvc   *services.WalletService
	student     *models.User
	admin       *models.User
	property    *models.Property
}

func newBookingFixture(t *testing.T) *bookingFixture {
	db := setupTestDB(t)
	userRepo := repositories.NewUserRepository(db)

	f := &bookingFixture{
		db:          db,
		bookingSvc:  services.NewBookingService(db, repositories.NewBookingRepository(db), userRepo),
		propertySvc: services.NewPropertyService(db, repositories.NewPropertyRepository(db)),
		walletSvc: services.NewWalletService(
			db,
			repositories.NewPaymentRepository(db),
			repositories.NewWalletRequestRepository(db),
			userRepo,
		),
		student: seedUser(t, db, models.RoleStudent, "s1@example.com", "REF00001"),
		admin:   seedUser(t, db, models.RoleAdmin, "a1@example.com", "REF00002"),
	}
	f.property = seedProperty(t, f.propertySvc)
	return f
}

func (f *bookingFixture) credit(t *testing.T, amount float64) {
	_, err := f.walletSvc.CreatePayment(context.Background(), &services.CreatePaymentInput{
		StudentID: f.student.ID,
		Type:      models.PaymentCredit,
		Amount:    amount,
	}, f.admin.ID)
	require.NoError(t, err)
}

func TestCreateBooking(t *testing.T) {
	f := newBookingFixture(t)
	f.credit(t, 10000)
	room := f.property.Rooms[0]
	bed := room.Beds[0]
	ctx := context.Background()

	booking, err := f.bookingSvc.Create(ctx, f.student.ID, &services.CreateBookingInput{
		PropertyID: f.property.ID,
		RoomID:     room.ID,
		BedID:      bed.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, models.BookingConfirmed, booking.Status)
	assert.Equal(t, room.Rent, booking.Amount)

	// Bed is on book with the student's details
	var fresh models.Bed
	require.NoError(t, f.db.First(&fresh, bed.ID).Error)
	assert.Equal(t, models.BedOnBook, fresh.Status)
	assert.Equal(t, f.student.Name, fresh.StudentName)
	assert.Equal(t, room.Rent, fresh.AdvanceRent)
	assert.NotNil(t, fresh.JoiningDate)

	// Advance rent was debited
	balance, err := f.walletSvc.Balance(ctx, f.student.ID)
	require.NoError(t, err)
	assert.Equal(t, 10000-room.Rent, balance)

	// Counters follow the bed
	property, err := f.propertySvc.Get(ctx, f.property.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, property.AvailableBeds)
	assert.Equal(t, 1, property.Rooms[0].OnBookBeds)
}

func TestCreateBookingRejectsTakenBed(t *testing.T) {
	f := newBookingFixture(t)
	f.credit(t, 20000)
	room := f.property.Rooms[0]
	ctx := context.Background()

	input := &services.CreateBookingInput{
		PropertyID: f.property.ID,
		RoomID:     room.ID,
		BedID:      room.Beds[0].ID,
	}

	_, err := f.bookingSvc.Create(ctx, f.student.ID, input)
	require.NoError(t, err)

	_, err = f.bookingSvc.Create(ctx, f.student.ID, input)
	assert.ErrorIs(t, err, domain.ErrBedNotAvailable)
}

func TestCreateBookingInsufficientBalance(t *testing.T) {
	f := newBookingFixture(t)
	f.credit(t, 100)
	room := f.property.Rooms[0]
	ctx := context.Background()

	_, err := f.bookingSvc.Create(ctx, f.student.ID, &services.CreateBookingInput{
		PropertyID: f.property.ID,
		RoomID:     room.ID,
		BedID:      room.Beds[0].ID,
	})

	var insufficient *domain.InsufficientBalanceError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 100.0, insufficient.Balance)
	assert.Equal(t, room.Rent, insufficient.Requested)

	// Nothing committed: bed still available, wallet untouched
	var bed models.Bed
	require.NoError(t, f.db.First(&bed, room.Beds[0].ID).Error)
	assert.Equal(t, models.BedAvailable, bed.Status)

	balance, err := f.walletSvc.Balance(ctx, f.student.ID)
	require.NoError(t, err)
	assert.Equal(t, 100.0, balance)

	var count int64
	require.NoError(t, f.db.Model(&models.Booking{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestCreateBookingUnknownBed(t *testing.T) {
	f := newBookingFixture(t)
	f.credit(t, 10000)
	room := f.property.Rooms[0]

	_, err := f.bookingSvc.Create(context.Background(), f.student.ID, &services.CreateBookingInput{
		PropertyID: f.property.ID,
		RoomID:     room.ID,
		BedID:      999,
	})
	assert.ErrorIs(t, err, domain.ErrBedNotFound)
}

func TestListBookingsByStudent(t *testing.T) {
	f := newBookingFixture(t)
	f.credit(t, 20000)
	room := f.property.Rooms[0]
	ctx := context.Background()

	for _, bedID := range []uint{room.Beds[0].ID, room.Beds[1].ID} {
		_, err := f.bookingSvc.Create(ctx, f.student.ID, &services.CreateBookingInput{
			PropertyID: f.property.ID,
			RoomID:     room.ID,
			BedID:      bedID,
		})
		require.NoError(t, err)
	}

	bookings, total, err := f.bookingSvc.ListByStudent(ctx, f.student.ID, 0, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, bookings, 2)
}
