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

// PropertyService owns the property inventory ledger: the nested
// property → room → bed structure and the denormalized counters that
// public reads rely on. Every mutation recomputes the counters of the
// owning room and property inside the same transaction, so after any
// successful commit the counters exactly match the bed state.
type PropertyService struct {
	db           *gorm.DB
	propertyRepo *repositories.PropertyRepository
}

// NewPropertyService creates a new property service
func NewPropertyService(db *gorm.DB, propertyRepo *repositories.PropertyRepository) *PropertyService {
	return &PropertyService{
		db:           db,
		propertyRepo: propertyRepo,
	}
}

// RoomInput describes a room created with a property or added later
type RoomInput struct {
	RoomNumber string  `json:"roomNumber"`
	RoomType   string  `json:"roomType"`
	Rent       float64 `json:"rent"`
	BedCount   int     `json:"bedCount"`
}

// CreatePropertyInput represents property creation input
type CreatePropertyInput struct {
	Name         string      `json:"name"`
	Description  string      `json:"description"`
	PropertyType string      `json:"propertyType"`
	Address      string      `json:"address"`
	AreaID       *uint       `json:"area_id"`
	CityID       *uint       `json:"city_id"`
	Rooms        []RoomInput `json:"rooms"`
}

// UpdatePropertyInput represents property detail updates
type UpdatePropertyInput struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	PropertyType string `json:"propertyType"`
	Address      string `json:"address"`
	AreaID       *uint  `json:"area_id"`
	CityID       *uint  `json:"city_id"`
}

// UpdateBedInput is the admin bed-update payload. The update is a full
// overwrite: omitted fields are reset, not merged, so applying the
// same payload twice yields the same state.
type UpdateBedInput struct {
	Status          string  `json:"status"`
	StudentName     string  `json:"studentName"`
	StudentPhone    string  `json:"studentPhone"`
	StudentEmail    string  `json:"studentEmail"`
	JoiningDate     string  `json:"joiningDate"`
	RentDueDate     string  `json:"rentDueDate"`
	SecurityDeposit float64 `json:"securityDeposit"`
	AdvanceRent     float64 `json:"advanceRent"`
	NoticeDate      string  `json:"noticeDate"`
	VacatingDate    string  `json:"vacatingDate"`
	Notes           string  `json:"notes"`
}

const dateLayout = "2006-01-02"

func parseDate(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be YYYY-MM-DD", domain.ErrInvalidInput, field)
	}
	return &t, nil
}

func validPropertyType(t string) bool {
	return t == "hostel" || t == "pg"
}

// Create creates a property with its rooms and beds. Counters are
// computed before the insert so the row is born consistent.
func (s *PropertyService) Create(ctx context.Context, input *CreatePropertyInput, vendorID uint) (*models.Property, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if input.PropertyType == "" {
		input.PropertyType = "hostel"
	}
	if !validPropertyType(input.PropertyType) {
		return nil, fmt.Errorf("%w: propertyType must be hostel or pg", domain.ErrInvalidInput)
	}

	property := &models.Property{
		VendorID:     vendorID,
		Name:         input.Name,
		Description:  input.Description,
		PropertyType: input.PropertyType,
		Address:      input.Address,
		AreaID:       input.AreaID,
		CityID:       input.CityID,
		IsActive:     true,
	}

	seen := make(map[string]bool)
	for _, roomInput := range input.Rooms {
		room, err := buildRoom(&roomInput)
		if err != nil {
			return nil, err
		}
		if seen[room.RoomNumber] {
			return nil, domain.ErrDuplicateRoomName
		}
		seen[room.RoomNumber] = true
		property.Rooms = append(property.Rooms, *room)
	}

	property.RecalculateCounts(property.Rooms)

	if err := s.propertyRepo.Create(ctx, property); err != nil {
		return nil, err
	}

	log.Printf("✅ Property created: %s (id=%d, %d rooms, %d beds)",
		property.Name, property.ID, property.TotalRooms, property.TotalBeds)
	return property, nil
}

func buildRoom(input *RoomInput) (*models.Room, error) {
	if input.RoomNumber == "" {
		return nil, fmt.Errorf("%w: roomNumber is required", domain.ErrInvalidInput)
	}
	if input.Rent <= 0 {
		return nil, fmt.Errorf("%w: rent must be positive", domain.ErrInvalidInput)
	}
	if input.BedCount < 1 {
		return nil, fmt.Errorf("%w: bedCount must be at least 1", domain.ErrInvalidInput)
	}
	if input.RoomType == "" {
		input.RoomType = "shared"
	}

	room := &models.Room{
		RoomNumber: input.RoomNumber,
		RoomType:   input.RoomType,
		Rent:       input.Rent,
		IsActive:   true,
	}
	for i := 1; i <= input.BedCount; i++ {
		room.Beds = append(room.Beds, models.Bed{
			BedNumber: fmt.Sprintf("%s-%d", input.RoomNumber, i),
			Status:    models.BedAvailable,
		})
	}
	room.RecalculateCounts(room.Beds)
	return room, nil
}

// Get returns a property with rooms and beds
func (s *PropertyService) Get(ctx context.Context, id uint) (*models.Property, error) {
	property, err := s.propertyRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPropertyNotFound
		}
		return nil, err
	}
	return property, nil
}

// Search lists active properties for the public surface
func (s *PropertyService) Search(ctx context.Context, filter *repositories.PropertySearchFilter, offset, limit int) ([]*models.Property, int64, error) {
	return s.propertyRepo.Search(ctx, filter, offset, limit)
}

// ListByVendor lists a vendor's own properties
func (s *PropertyService) ListByVendor(ctx context.Context, vendorID uint, offset, limit int) ([]*models.Property, int64, error) {
	return s.propertyRepo.ListByVendor(ctx, vendorID, offset, limit)
}

// Update updates property details (not rooms/beds)
func (s *PropertyService) Update(ctx context.Context, id uint, input *UpdatePropertyInput) (*models.Property, error) {
	property, err := s.propertyRepo.GetActiveByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPropertyNotFound
		}
		return nil, err
	}

	if input.Name != "" {
		property.Name = input.Name
	}
	if input.Description != "" {
		property.Description = input.Description
	}
	if input.PropertyType != "" {
		if !validPropertyType(input.PropertyType) {
			return nil, fmt.Errorf("%w: propertyType must be hostel or pg", domain.ErrInvalidInput)
		}
		property.PropertyType = input.PropertyType
	}
	if input.Address != "" {
		property.Address = input.Address
	}
	if input.AreaID != nil {
		property.AreaID = input.AreaID
	}
	if input.CityID != nil {
		property.CityID = input.CityID
	}

	if err := s.propertyRepo.Update(ctx, property); err != nil {
		return nil, err
	}
	return property, nil
}

// Deactivate soft deletes a property. Bookings keep referencing it.
func (s *PropertyService) Deactivate(ctx context.Context, id uint) error {
	if _, err := s.propertyRepo.GetActiveByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrPropertyNotFound
		}
		return err
	}
	return s.propertyRepo.Deactivate(ctx, id)
}

// AddRoom adds a room with beds to a property and recomputes the
// property counters in the same transaction.
func (s *PropertyService) AddRoom(ctx context.Context, propertyID uint, input *RoomInput) (*models.Room, error) {
	room, err := buildRoom(input)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var property models.Property
		if err := tx.Where("id = ? AND is_active = ?", propertyID, true).First(&property).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrPropertyNotFound
			}
			return err
		}

		var count int64
		if err := tx.Model(&models.Room{}).
			Where("property_id = ? AND room_number = ?", propertyID, room.RoomNumber).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return domain.ErrDuplicateRoomName
		}

		room.PropertyID = propertyID
		if err := tx.Create(room).Error; err != nil {
			return err
		}

		return recalculateProperty(tx, &property)
	})
	if err != nil {
		return nil, err
	}

	return room, nil
}

// UpdateBed applies an admin bed update: validates the target status,
// overwrites the bed row and recomputes the owning room's and
// property's counters, all in one transaction. Updates are row-level,
// so concurrent updates to different beds of the same property both
// survive.
func (s *PropertyService) UpdateBed(ctx context.Context, propertyID, roomID, bedID uint, input *UpdateBedInput) (*models.Bed, error) {
	status, err := models.ParseBedStatus(input.Status)
	if err != nil {
		return nil, err
	}

	joiningDate, err := parseDate("joiningDate", input.JoiningDate)
	if err != nil {
		return nil, err
	}
	rentDueDate, err := parseDate("rentDueDate", input.RentDueDate)
	if err != nil {
		return nil, err
	}
	noticeDate, err := parseDate("noticeDate", input.NoticeDate)
	if err != nil {
		return nil, err
	}
	vacatingDate, err := parseDate("vacatingDate", input.VacatingDate)
	if err != nil {
		return nil, err
	}

	var updated *models.Bed
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		property, room, bed, err := loadBedPath(tx, propertyID, roomID, bedID)
		if err != nil {
			return err
		}

		// Full overwrite, no merge.
		bed.Status = status
		bed.StudentName = input.StudentName
		bed.StudentPhone = input.StudentPhone
		bed.StudentEmail = input.StudentEmail
		bed.JoiningDate = joiningDate
		bed.RentDueDate = rentDueDate
		bed.SecurityDeposit = input.SecurityDeposit
		bed.AdvanceRent = input.AdvanceRent
		bed.NoticeDate = noticeDate
		bed.VacatingDate = vacatingDate
		bed.Notes = input.Notes

		if status == models.BedAvailable {
			bed.ClearOccupant()
		}

		if err := tx.Save(bed).Error; err != nil {
			return err
		}

		if err := recalculateRoom(tx, room); err != nil {
			return err
		}
		if err := recalculateProperty(tx, property); err != nil {
			return err
		}

		updated = bed
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// ListBookingBeds returns the booking-dropdown view of a room's beds
func (s *PropertyService) ListBookingBeds(ctx context.Context, propertyID, roomID uint) ([]*models.BookingBed, error) {
	if _, err := s.propertyRepo.GetActiveByID(ctx, propertyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPropertyNotFound
		}
		return nil, err
	}

	room, err := s.propertyRepo.GetRoom(ctx, propertyID, roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRoomNotFound
		}
		return nil, err
	}

	beds := make([]*models.BookingBed, 0, len(room.Beds))
	for i := range room.Beds {
		beds = append(beds, room.Beds[i].ToBookingBed())
	}
	return beds, nil
}

// ReleaseDueNoticeBeds moves notice beds whose vacating date has
// passed back to available. Called from the daily cron job. Returns
// the number of beds released.
func (s *PropertyService) ReleaseDueNoticeBeds(ctx context.Context) (int, error) {
	beds, err := s.propertyRepo.ListNoticeBedsDue(ctx)
	if err != nil {
		return 0, err
	}

	released := 0
	for _, due := range beds {
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var bed models.Bed
			if err := tx.Where("id = ? AND status = ?", due.ID, models.BedNotice).First(&bed).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil // already moved by someone else
				}
				return err
			}

			var room models.Room
			if err := tx.Where("id = ?", bed.RoomID).First(&room).Error; err != nil {
				return err
			}
			var property models.Property
			if err := tx.Where("id = ?", room.PropertyID).First(&property).Error; err != nil {
				return err
			}

			bed.Status = models.BedAvailable
			bed.ClearOccupant()
			if err := tx.Save(&bed).Error; err != nil {
				return err
			}

			if err := recalculateRoom(tx, &room); err != nil {
				return err
			}
			return recalculateProperty(tx, &property)
		})
		if err != nil {
			return released, err
		}
		released++
	}

	return released, nil
}

// loadBedPath loads property → room → bed along the ownership path,
// mapping missing links to the matching not-found error.
func loadBedPath(tx *gorm.DB, propertyID, roomID, bedID uint) (*models.Property, *models.Room, *models.Bed, error) {
	var property models.Property
	if err := tx.Where("id = ? AND is_active = ?", propertyID, true).First(&property).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, nil, domain.ErrPropertyNotFound
		}
		return nil, nil, nil, err
	}

	var room models.Room
	if err := tx.Where("id = ? AND property_id = ?", roomID, propertyID).First(&room).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, nil, domain.ErrRoomNotFound
		}
		return nil, nil, nil, err
	}

	var bed models.Bed
	if err := tx.Where("id = ? AND room_id = ?", bedID, roomID).First(&bed).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, nil, domain.ErrBedNotFound
		}
		return nil, nil, nil, err
	}

	return &property, &room, &bed, nil
}

// recalculateRoom recounts a room's beds from the rows in this
// transaction and saves the counters.
func recalculateRoom(tx *gorm.DB, room *models.Room) error {
	var beds []models.Bed
	if err := tx.Where("room_id = ?", room.ID).Find(&beds).Error; err != nil {
		return err
	}
	room.RecalculateCounts(beds)
	return tx.Save(room).Error
}

// recalculateProperty recounts a property from its rooms and saves
// the counters and rent range.
func recalculateProperty(tx *gorm.DB, property *models.Property) error {
	var rooms []models.Room
	if err := tx.Where("property_id = ?", property.ID).Find(&rooms).Error; err != nil {
		return err
	}
	property.RecalculateCounts(rooms)
	return tx.Save(property).Error
}
