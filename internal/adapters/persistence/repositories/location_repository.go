package repositories

import (
	"context"

	"staynest-hostels/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// LocationRepository handles the country → state → city → area
// hierarchy. Plain relational CRUD, read-mostly.
type LocationRepository struct {
	db *gorm.DB
}

// NewLocationRepository creates a new location repository
func NewLocationRepository(db *gorm.DB) *LocationRepository {
	return &LocationRepository{db: db}
}

func (r *LocationRepository) ListCountries(ctx context.Context) ([]*models.Country, error) {
	var countries []*models.Country
	err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("name").Find(&countries).Error
	return countries, err
}

func (r *LocationRepository) ListStates(ctx context.Context, countryID uint) ([]*models.State, error) {
	var states []*models.State
	query := r.db.WithContext(ctx).Where("is_active = ?", true)
	if countryID > 0 {
		query = query.Where("country_id = ?", countryID)
	}
	err := query.Order("name").Find(&states).Error
	return states, err
}

func (r *LocationRepository) ListCities(ctx context.Context, stateID uint) ([]*models.City, error) {
	var cities []*models.City
	query := r.db.WithContext(ctx).Where("is_active = ?", true)
	if stateID > 0 {
		query = query.Where("state_id = ?", stateID)
	}
	err := query.Order("name").Find(&cities).Error
	return cities, err
}

func (r *LocationRepository) ListAreas(ctx context.Context, cityID uint) ([]*models.Area, error) {
	var areas []*models.Area
	query := r.db.WithContext(ctx).Where("is_active = ?", true)
	if cityID > 0 {
		query = query.Where("city_id = ?", cityID)
	}
	err := query.Order("name").Find(&areas).Error
	return areas, err
}

func (r *LocationRepository) CreateCountry(ctx context.Context, country *models.Country) error {
	return r.db.WithContext(ctx).Create(country).Error
}

func (r *LocationRepository) CreateState(ctx context.Context, state *models.State) error {
	return r.db.WithContext(ctx).Create(state).Error
}

func (r *LocationRepository) CreateCity(ctx context.Context, city *models.City) error {
	return r.db.WithContext(ctx).Create(city).Error
}

func (r *LocationRepository) CreateArea(ctx context.Context, area *models.Area) error {
	return r.db.WithContext(ctx).Create(area).Error
}

func (r *LocationRepository) GetCity(ctx context.Context, id uint) (*models.City, error) {
	var city models.City
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&city).Error
	if err != nil {
		return nil, err
	}
	return &city, nil
}

func (r *LocationRepository) GetArea(ctx context.Context, id uint) (*models.Area, error) {
	var area models.Area
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&area).Error
	if err != nil {
		return nil, err
	}
	return &area, nil
}
