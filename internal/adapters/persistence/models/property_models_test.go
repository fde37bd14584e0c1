package models_test

import (
	"testing"

	"staynest-hostels/internal/adapters/persistence/models"
	"staynest-hostels/internal/core/domain"

	"github.com/stretchr/testify/assert"
)

func TestParseBedStatus(t *testing.T) {
	for _, valid := range []string{"available", "occupied", "onbook", "notice", "maintenance"} {
		status, err := models.ParseBedStatus(valid)
		assert.NoError(t, err)
		assert.Equal(t, valid, string(status))
	}

	for _, invalid := range []string{"vacant", "AVAILABLE", "booked", ""} {
		_, err := models.ParseBedStatus(invalid)
		assert.ErrorIs(t, err, domain.ErrInvalidBedStatus, "status %q should be rejected", invalid)
	}
}

func TestBedStatusIsBookable(t *testing.T) {
	assert.True(t, models.BedAvailable.IsBookable())
	assert.False(t, models.BedOccupied.IsBookable())
	assert.False(t, models.BedOnBook.IsBookable())
	assert.False(t, models.BedNotice.IsBookable())
	assert.False(t, models.BedMaintenance.IsBookable())
}

func TestRoomRecalculateCounts(t *testing.T) {
	room := &models.Room{Rent: 6000}
	beds := []models.Bed{
		{Status: models.BedAvailable},
		{Status: models.BedAvailable},
		{Status: models.BedOccupied},
		{Status: models.BedOnBook},
		{Status: models.BedNotice},
		{Status: models.BedMaintenance},
	}

	room.RecalculateCounts(beds)

	assert.Equal(t, 6, room.TotalBeds)
	assert.Equal(t, 2, room.AvailableBeds)
	assert.Equal(t, 1, room.OccupiedBeds)
	assert.Equal(t, 1, room.OnBookBeds)
	assert.Equal(t, 1, room.OnNoticeBeds)
}

func TestRoomRecalculateCountsResetsStaleCounters(t *testing.T) {
	room := &models.Room{TotalBeds: 10, AvailableBeds: 10, OccupiedBeds: 5}

	room.RecalculateCounts([]models.Bed{{Status: models.BedOccupied}})

	assert.Equal(t, 1, room.TotalBeds)
	assert.Equal(t, 0, room.AvailableBeds)
	assert.Equal(t, 1, room.OccupiedBeds)
}

func TestPropertyRecalculateCounts(t *testing.T) {
	property := &models.Property{}
	rooms := []models.Room{
		{IsActive: true, Rent: 5000, TotalBeds: 3, AvailableBeds: 2, OccupiedBeds: 1},
		{IsActive: true, Rent: 8000, TotalBeds: 2, AvailableBeds: 0, OccupiedBeds: 2},
		{IsActive: false, Rent: 100, TotalBeds: 4, AvailableBeds: 4},
	}

	property.RecalculateCounts(rooms)

	assert.Equal(t, 2, property.TotalRooms, "inactive rooms do not count")
	assert.Equal(t, 5, property.TotalBeds)
	assert.Equal(t, 2, property.AvailableBeds)
	assert.Equal(t, 3, property.OccupiedBeds)
	assert.Equal(t, 5000.0, property.RentMin, "inactive room rent must not widen the range")
	assert.Equal(t, 8000.0, property.RentMax)
}

func TestPropertyRecalculateCountsZeroBedRoomContributesRent(t *testing.T) {
	property := &models.Property{}
	rooms := []models.Room{
		{IsActive: true, Rent: 7000, TotalBeds: 2, AvailableBeds: 2},
		{IsActive: true, Rent: 3000, TotalBeds: 0},
	}

	property.RecalculateCounts(rooms)

	assert.Equal(t, 2, property.TotalRooms)
	assert.Equal(t, 2, property.TotalBeds)
	assert.Equal(t, 3000.0, property.RentMin)
	assert.Equal(t, 7000.0, property.RentMax)
}

func TestPropertyRecalculateCountsEmpty(t *testing.T) {
	property := &models.Property{TotalRooms: 3, TotalBeds: 9, RentMin: 1000, RentMax: 2000}

	property.RecalculateCounts(nil)

	assert.Equal(t, 0, property.TotalRooms)
	assert.Equal(t, 0, property.TotalBeds)
	assert.Equal(t, 0.0, property.RentMin)
	assert.Equal(t, 0.0, property.RentMax)
}

func TestBedClearOccupant(t *testing.T) {
	bed := &models.Bed{
		StudentName:     "Ravi Kumar",
		StudentPhone:    "9876543210",
		StudentEmail:    "ravi@example.com",
		SecurityDeposit: 5000,
		AdvanceRent:     6000,
		Notes:           "prefers lower bunk",
	}

	bed.ClearOccupant()

	assert.Empty(t, bed.StudentName)
	assert.Empty(t, bed.StudentPhone)
	assert.Empty(t, bed.StudentEmail)
	assert.Nil(t, bed.JoiningDate)
	assert.Nil(t, bed.VacatingDate)
	assert.Equal(t, 0.0, bed.SecurityDeposit)
	assert.Equal(t, 0.0, bed.AdvanceRent)
	assert.Equal(t, "prefers lower bunk", bed.Notes, "notes survive occupant reset")
}
