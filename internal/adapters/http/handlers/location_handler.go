package handlers

import (
	"staynest-hostels/internal/adapters/persistence/models"
	"staynest-hostels/internal/adapters/persistence/repositories"
	"staynest-hostels/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// LocationHandler handles the country → state → city → area hierarchy.
// Reads are public; writes are admin only.
type LocationHandler struct {
	locationRepo *repositories.LocationRepository
}

// NewLocationHandler creates a new location handler
func NewLocationHandler(locationRepo *repositories.LocationRepository) *LocationHandler {
	return &LocationHandler{locationRepo: locationRepo}
}

func (h *LocationHandler) ListCountries(c *fiber.Ctx) error {
	countries, err := h.locationRepo.ListCountries(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list countries")
	}
	return response.Success(c, "", countries)
}

func (h *LocationHandler) ListStates(c *fiber.Ctx) error {
	states, err := h.locationRepo.ListStates(c.Context(), uint(c.QueryInt("country_id", 0)))
	if err != nil {
		return response.InternalServerError(c, "Failed to list states")
	}
	return response.Success(c, "", states)
}

func (h *LocationHandler) ListCities(c *fiber.Ctx) error {
	cities, err := h.locationRepo.ListCities(c.Context(), uint(c.QueryInt("state_id", 0)))
	if err != nil {
		return response.InternalServerError(c, "Failed to list cities")
	}
	return response.Success(c, "", cities)
}

func (h *LocationHandler) ListAreas(c *fiber.Ctx) error {
	areas, err := h.locationRepo.ListAreas(c.Context(), uint(c.QueryInt("city_id", 0)))
	if err != nil {
		return response.InternalServerError(c, "Failed to list areas")
	}
	return response.Success(c, "", areas)
}

func (h *LocationHandler) CreateCountry(c *fiber.Ctx) error {
	var country models.Country
	if err := c.BodyParser(&country); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if country.Name == "" {
		return response.BadRequest(c, "Name is required")
	}
	country.IsActive = true

	if err := h.locationRepo.CreateCountry(c.Context(), &country); err != nil {
		return response.InternalServerError(c, "Failed to create country")
	}
	return response.Created(c, "Country created", country)
}

func (h *LocationHandler) CreateState(c *fiber.Ctx) error {
	var state models.State
	if err := c.BodyParser(&state); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if state.Name == "" || state.CountryID == 0 {
		return response.BadRequest(c, "Name and country_id are required")
	}
	state.IsActive = true

	if err := h.locationRepo.CreateState(c.Context(), &state); err != nil {
		return response.InternalServerError(c, "Failed to create state")
	}
	return response.Created(c, "State created", state)
}

func (h *LocationHandler) CreateCity(c *fiber.Ctx) error {
	var city models.City
	if err := c.BodyParser(&city); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if city.Name == "" || city.StateID == 0 {
		return response.BadRequest(c, "Name and state_id are required")
	}
	city.IsActive = true

	if err := h.locationRepo.CreateCity(c.Context(), &city); err != nil {
		return response.InternalServerError(c, "Failed to create city")
	}
	return response.Created(c, "City created", city)
}

func (h *LocationHandler) CreateArea(c *fiber.Ctx) error {
	var area models.Area
	if err := c.BodyParser(&area); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if area.Name == "" || area.CityID == 0 {
		return response.BadRequest(c, "Name and city_id are required")
	}
	area.IsActive = true

	if err := h.locationRepo.CreateArea(c.Context(), &area); err != nil {
		return response.InternalServerError(c, "Failed to create area")
	}
	return response.Created(c, "Area created", area)
}
