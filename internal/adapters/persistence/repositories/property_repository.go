package repositories

import (
	"context"
	"time"

	"staynest-hostels/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// nowDate truncates now to midnight so date-typed columns compare cleanly
func nowDate() time.Time {
	return time.Now().Truncate(24 * time.Hour)
}

// PropertySearchFilter narrows public property searches
type PropertySearchFilter struct {
	CityID       uint
	AreaID       uint
	PropertyType string
	RentMin      float64
	RentMax      float64
	OnlyVacant   bool
}

// PropertyRepository handles property/room/bed persistence.
// Rooms and beds are only ever reached through their owning property.
type PropertyRepository struct {
	db *gorm.DB
}

// NewPropertyRepository creates a new property repository
func NewPropertyRepository(db *gorm.DB) *PropertyRepository {
	return &PropertyRepository{db: db}
}

// Create creates a property together with its rooms and beds
func (r *PropertyRepository) Create(ctx context.Context, property *models.Property) error {
	return r.db.WithContext(ctx).Create(property).Error
}

// GetByID gets a property with rooms and beds preloaded
func (r *PropertyRepository) GetByID(ctx context.Context, id uint) (*models.Property, error) {
	var property models.Property
	err := r.db.WithContext(ctx).
		Preload("Rooms", func(db *gorm.DB) *gorm.DB { return db.Order("rooms.id") }).
		Preload("Rooms.Beds", func(db *gorm.DB) *gorm.DB { return db.Order("beds.id") }).
		Preload("Area").
		Preload("City").
		Where("id = ?", id).
		First(&property).Error
	if err != nil {
		return nil, err
	}
	return &property, nil
}

// GetActiveByID gets an active property without preloads
func (r *PropertyRepository) GetActiveByID(ctx context.Context, id uint) (*models.Property, error) {
	var property models.Property
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&property).Error
	if err != nil {
		return nil, err
	}
	return &property, nil
}

// Search lists active properties matching the filter, paginated
func (r *PropertyRepository) Search(ctx context.Context, filter *PropertySearchFilter, offset, limit int) ([]*models.Property, int64, error) {
	var properties []*models.Property
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Property{}).Where("is_active = ?", true)
	if filter.CityID > 0 {
		query = query.Where("city_id = ?", filter.CityID)
	}
	if filter.AreaID > 0 {
		query = query.Where("area_id = ?", filter.AreaID)
	}
	if filter.PropertyType != "" {
		query = query.Where("property_type = ?", filter.PropertyType)
	}
	if filter.RentMin > 0 {
		query = query.Where("rent_max >= ?", filter.RentMin)
	}
	if filter.RentMax > 0 {
		query = query.Where("rent_min <= ?", filter.RentMax)
	}
	if filter.OnlyVacant {
		query = query.Where("available_beds > 0")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Area").Preload("City").
		Offset(offset).Limit(limit).Order("id DESC").
		Find(&properties).Error
	if err != nil {
		return nil, 0, err
	}

	return properties, total, nil
}

// ListByVendor lists a vendor's properties, paginated
func (r *PropertyRepository) ListByVendor(ctx context.Context, vendorID uint, offset, limit int) ([]*models.Property, int64, error) {
	var properties []*models.Property
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Property{}).Where("vendor_id = ?", vendorID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Offset(offset).Limit(limit).Order("id DESC").Find(&properties).Error; err != nil {
		return nil, 0, err
	}

	return properties, total, nil
}

// Update saves property fields
func (r *PropertyRepository) Update(ctx context.Context, property *models.Property) error {
	return r.db.WithContext(ctx).Save(property).Error
}

// Deactivate soft deletes a property via is_active. Properties are
// never hard-deleted while bookings reference them.
func (r *PropertyRepository) Deactivate(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&models.Property{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}

// GetRoom gets a room scoped to its owning property
func (r *PropertyRepository) GetRoom(ctx context.Context, propertyID, roomID uint) (*models.Room, error) {
	var room models.Room
	err := r.db.WithContext(ctx).
		Preload("Beds", func(db *gorm.DB) *gorm.DB { return db.Order("beds.id") }).
		Where("id = ? AND property_id = ?", roomID, propertyID).
		First(&room).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// GetBed gets a bed scoped to its owning room
func (r *PropertyRepository) GetBed(ctx context.Context, roomID, bedID uint) (*models.Bed, error) {
	var bed models.Bed
	err := r.db.WithContext(ctx).
		Where("id = ? AND room_id = ?", bedID, roomID).
		First(&bed).Error
	if err != nil {
		return nil, err
	}
	return &bed, nil
}

// ListNoticeBedsDue lists beds on notice whose vacating date has passed
func (r *PropertyRepository) ListNoticeBedsDue(ctx context.Context) ([]*models.Bed, error) {
	var beds []*models.Bed
	err := r.db.WithContext(ctx).
		Where("status = ? AND vacating_date IS NOT NULL AND vacating_date < ?", models.BedNotice, nowDate()).
		Find(&beds).Error
	if err != nil {
		return nil, err
	}
	return beds, nil
}
