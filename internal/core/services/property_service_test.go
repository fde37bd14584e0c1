package services_test

import (
	"context"
	"testing"
	"time"

	"staynest-hostels/internal/adapters/persistence/models"
	"staynest-hostels/internal/adapters/persistence/repositories"
	"staynest-hostels/internal/core/domain"
	"staynest-hostels/internal/core/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))
	return db
}

func newPropertyService(t *testing.T) (*services.PropertyService, *gorm.DB) {
	db := setupTestDB(t)
	return services.NewPropertyService(db, repositories.NewPropertyRepository(db)), db
}

// seedProperty creates a property with one room of three available beds
// and returns it fully loaded.
func seedProperty(t *testing.T, svc *services.PropertyService) *models.Property {
	property, err := svc.Create(context.Background(), &services.CreatePropertyInput{
		Name:         "Sunrise Hostel",
		PropertyType: "hostel",
		Address:      "12 MG Road",
		Rooms: []services.RoomInput{
			{RoomNumber: "101", RoomType: "shared", Rent: 6000, BedCount: 3},
		},
	}, 1)
	require.NoError(t, err)
	require.Len(t, property.Rooms, 1)
	require.Len(t, property.Rooms[0].Beds, 3)
	return property
}

func TestCreatePropertyComputesCounters(t *testing.T) {
	svc, _ := newPropertyService(t)

	property, err := svc.Create(context.Background(), &services.CreatePropertyInput{
		Name: "Green PG",
		Rooms: []services.RoomInput{
			{RoomNumber: "A1", Rent: 5000, BedCount: 2},
			{RoomNumber: "A2", Rent: 9000, BedCount: 4},
		},
	}, 7)
	require.NoError(t, err)

	assert.Equal(t, 2, property.TotalRooms)
	assert.Equal(t, 6, property.TotalBeds)
	assert.Equal(t, 6, property.AvailableBeds)
	assert.Equal(t, 0, property.OccupiedBeds)
	assert.Equal(t, 5000.0, property.RentMin)
	assert.Equal(t, 9000.0, property.RentMax)
	assert.Equal(t, "hostel", property.PropertyType, "type defaults to hostel")

	room := property.Rooms[0]
	assert.Equal(t, 2, room.TotalBeds)
	assert.Equal(t, "A1-1", room.Beds[0].BedNumber)
	assert.Equal(t, models.BedAvailable, room.Beds[0].Status)
}

func TestCreatePropertyRejectsDuplicateRoomNumbers(t *testing.T) {
	svc, _ := newPropertyService(t)

	_, err := svc.Create(context.Background(), &services.CreatePropertyInput{
		Name: "Dup PG",
		Rooms: []services.RoomInput{
			{RoomNumber: "101", Rent: 5000, BedCount: 1},
			{RoomNumber: "101", Rent: 6000, BedCount: 1},
		},
	}, 1)
	assert.ErrorIs(t, err, domain.ErrDuplicateRoomName)
}

func TestUpdateBedKeepsCountersConsistent(t *testing.T) {
	svc, _ := newPropertyService(t)
	property := seedProperty(t, svc)
	room := property.Rooms[0]
	bed := room.Beds[0]

	updated, err := svc.UpdateBed(context.Background(), property.ID, room.ID, bed.ID, &services.UpdateBedInput{
		Status:      "occupied",
		StudentName: "Asha Nair",
		JoiningDate: "2026-09-01",
	})
	require.NoError(t, err)
	assert.Equal(t, models.BedOccupied, updated.Status)
	assert.Equal(t, "Asha Nair", updated.StudentName)
	require.NotNil(t, updated.JoiningDate)
	assert.Equal(t, "2026-09-01", updated.JoiningDate.Format("2006-01-02"))

	fresh, err := svc.Get(context.Background(), property.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, fresh.TotalBeds)
	assert.Equal(t, 2, fresh.AvailableBeds)
	assert.Equal(t, 1, fresh.OccupiedBeds)
	assert.Equal(t, 2, fresh.Rooms[0].AvailableBeds)
	assert.Equal(t, 1, fresh.Rooms[0].OccupiedBeds)
}

func TestUpdateBedIsFullOverwrite(t *testing.T) {
	svc, _ := newPropertyService(t)
	property := seedProperty(t, svc)
	room := property.Rooms[0]
	bed := room.Beds[0]
	ctx := context.Background()

	_, err := svc.UpdateBed(ctx, property.ID, room.ID, bed.ID, &services.UpdateBedInput{
		Status:          "occupied",
		StudentName:     "Asha Nair",
		StudentPhone:    "9876543210",
		SecurityDeposit: 5000,
	})
	require.NoError(t, err)

	// Same status without the occupant fields resets them: the update
	// replaces the row, it does not merge.
	updated, err := svc.UpdateBed(ctx, property.ID, room.ID, bed.ID, &services.UpdateBedInput{
		Status:      "occupied",
		StudentName: "Asha Nair",
	})
	require.NoError(t, err)
	assert.Empty(t, updated.StudentPhone)
	assert.Equal(t, 0.0, updated.SecurityDeposit)
}

func TestUpdateBedIdempotent(t *testing.T) {
	svc, _ := newPropertyService(t)
	property := seedProperty(t, svc)
	room := property.Rooms[0]
	bed := room.Beds[0]
	ctx := context.Background()

	input := &services.UpdateBedInput{
		Status:      "onbook",
		StudentName: "Vikram Shetty",
		JoiningDate: "2026-10-01",
		AdvanceRent: 6000,
	}

	first, err := svc.UpdateBed(ctx, property.ID, room.ID, bed.ID, input)
	require.NoError(t, err)
	second, err := svc.UpdateBed(ctx, property.ID, room.ID, bed.ID, input)
	require.NoError(t, err)

	assert.Equal(t, first.Status, second.Status)
	assert.Equal(t, first.StudentName, second.StudentName)
	assert.Equal(t, first.AdvanceRent, second.AdvanceRent)

	fresh, err := svc.Get(ctx, property.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, fresh.AvailableBeds)
	assert.Equal(t, 1, fresh.Rooms[0].OnBookBeds)
}

func TestUpdateBedRejectsUnknownStatusWithoutSideEffects(t *testing.T) {
	svc, _ := newPropertyService(t)
	property := seedProperty(t, svc)
	room := property.Rooms[0]
	bed := room.Beds[0]

	_, err := svc.UpdateBed(context.Background(), property.ID, room.ID, bed.ID, &services.UpdateBedInput{
		Status:      "vacant",
		StudentName: "Should Not Persist",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidBedStatus)

	fresh, err := svc.Get(context.Background(), property.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, fresh.AvailableBeds, "rejected update must leave counters untouched")
	assert.Equal(t, models.BedAvailable, fresh.Rooms[0].Beds[0].Status)
	assert.Empty(t, fresh.Rooms[0].Beds[0].StudentName)
}

func TestUpdateBedRejectsBadDate(t *testing.T) {
	svc, _ := newPropertyService(t)
	property := seedProperty(t, svc)
	room := property.Rooms[0]

	_, err := svc.UpdateBed(context.Background(), property.ID, room.ID, room.Beds[0].ID, &services.UpdateBedInput{
		Status:      "occupied",
		JoiningDate: "01-09-2026",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Two admins updating different beds of the same room must both land;
// neither write may be absorbed by the other's recount.
func TestUpdateDifferentBedsBothSurvive(t *testing.T) {
	svc, _ := newPropertyService(t)
	property := seedProperty(t, svc)
	room := property.Rooms[0]
	ctx := context.Background()

	_, err := svc.UpdateBed(ctx, property.ID, room.ID, room.Beds[0].ID, &services.UpdateBedInput{
		Status:      "occupied",
		StudentName: "Asha Nair",
	})
	require.NoError(t, err)

	_, err = svc.UpdateBed(ctx, property.ID, room.ID, room.Beds[1].ID, &services.UpdateBedInput{
		Status:      "occupied",
		StudentName: "Vikram Shetty",
	})
	require.NoError(t, err)

	fresh, err := svc.Get(ctx, property.ID)
	require.NoError(t, err)
	assert.Equal(t, "Asha Nair", fresh.Rooms[0].Beds[0].StudentName)
	assert.Equal(t, "Vikram Shetty", fresh.Rooms[0].Beds[1].StudentName)
	assert.Equal(t, 2, fresh.OccupiedBeds)
	assert.Equal(t, 1, fresh.AvailableBeds)
}

func TestUpdateBedBackToAvailableClearsOccupant(t *testing.T) {
	svc, _ := newPropertyService(t)
	property := seedProperty(t, svc)
	room := property.Rooms[0]
	bed := room.Beds[0]
	ctx := context.Background()

	_, err := svc.UpdateBed(ctx, property.ID, room.ID, bed.ID, &services.UpdateBedInput{
		Status:          "occupied",
		StudentName:     "Asha Nair",
		SecurityDeposit: 5000,
	})
	require.NoError(t, err)

	updated, err := svc.UpdateBed(ctx, property.ID, room.ID, bed.ID, &services.UpdateBedInput{
		Status:      "available",
		StudentName: "Should Be Cleared",
	})
	require.NoError(t, err)
	assert.Empty(t, updated.StudentName)
	assert.Equal(t, 0.0, updated.SecurityDeposit)
}

func TestUpdateBedUnknownPath(t *testing.T) {
	svc, _ := newPropertyService(t)
	property := seedProperty(t, svc)
	room := property.Rooms[0]
	ctx := context.Background()
	input := &services.UpdateBedInput{Status: "maintenance"}

	_, err := svc.UpdateBed(ctx, 999, room.ID, room.Beds[0].ID, input)
	assert.ErrorIs(t, err, domain.ErrPropertyNotFound)

	_, err = svc.UpdateBed(ctx, property.ID, 999, room.Beds[0].ID, input)
	assert.ErrorIs(t, err, domain.ErrRoomNotFound)

	_, err = svc.UpdateBed(ctx, property.ID, room.ID, 999, input)
	assert.ErrorIs(t, err, domain.ErrBedNotFound)
}

func TestAddRoomRecalculatesProperty(t *testing.T) {
	svc, _ := newPropertyService(t)
	property := seedProperty(t, svc)

	room, err := svc.AddRoom(context.Background(), property.ID, &services.RoomInput{
		RoomNumber: "102",
		Rent:       9000,
		BedCount:   2,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, room.TotalBeds)

	fresh, err := svc.Get(context.Background(), property.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, fresh.TotalRooms)
	assert.Equal(t, 5, fresh.TotalBeds)
	assert.Equal(t, 6000.0, fresh.RentMin)
	assert.Equal(t, 9000.0, fresh.RentMax)
}

func TestAddRoomRejectsDuplicateNumber(t *testing.T) {
	svc, _ := newPropertyService(t)
	property := seedProperty(t, svc)

	_, err := svc.AddRoom(context.Background(), property.ID, &services.RoomInput{
		RoomNumber: "101",
		Rent:       7000,
		BedCount:   1,
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateRoomName)
}

func TestDeactivateHidesProperty(t *testing.T) {
	svc, _ := newPropertyService(t)
	property := seedProperty(t, svc)
	ctx := context.Background()

	require.NoError(t, svc.Deactivate(ctx, property.ID))

	assert.ErrorIs(t, svc.Deactivate(ctx, property.ID), domain.ErrPropertyNotFound)

	_, err := svc.ListBookingBeds(ctx, property.ID, property.Rooms[0].ID)
	assert.ErrorIs(t, err, domain.ErrPropertyNotFound)
}

func TestListBookingBeds(t *testing.T) {
	svc, _ := newPropertyService(t)
	property := seedProperty(t, svc)
	room := property.Rooms[0]
	ctx := context.Background()

	_, err := svc.UpdateBed(ctx, property.ID, room.ID, room.Beds[0].ID, &services.UpdateBedInput{
		Status:      "occupied",
		StudentName: "Asha Nair",
	})
	require.NoError(t, err)

	beds, err := svc.ListBookingBeds(ctx, property.ID, room.ID)
	require.NoError(t, err)
	require.Len(t, beds, 3)

	assert.False(t, beds[0].IsBookable)
	assert.Equal(t, "Asha Nair", beds[0].StudentName)
	assert.True(t, beds[1].IsBookable)
	assert.True(t, beds[2].IsBookable)
}

func TestReleaseDueNoticeBeds(t *testing.T) {
	svc, db := newPropertyService(t)
	property := seedProperty(t, svc)
	room := property.Rooms[0]
	ctx := context.Background()

	yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")

	_, err := svc.UpdateBed(ctx, property.ID, room.ID, room.Beds[0].ID, &services.UpdateBedInput{
		Status:       "notice",
		StudentName:  "Asha Nair",
		VacatingDate: yesterday,
	})
	require.NoError(t, err)
	_, err = svc.UpdateBed(ctx, property.ID, room.ID, room.Beds[1].ID, &services.UpdateBedInput{
		Status:       "notice",
		StudentName:  "Vikram Shetty",
		VacatingDate: tomorrow,
	})
	require.NoError(t, err)

	released, err := svc.ReleaseDueNoticeBeds(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, released)

	var bed models.Bed
	require.NoError(t, db.First(&bed, room.Beds[0].ID).Error)
	assert.Equal(t, models.BedAvailable, bed.Status)
	assert.Empty(t, bed.StudentName)

	bed = models.Bed{}
	require.NoError(t, db.First(&bed, room.Beds[1].ID).Error)
	assert.Equal(t, models.BedNotice, bed.Status, "future vacating date stays on notice")

	fresh, err := svc.Get(ctx, property.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, fresh.AvailableBeds)
}
