package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"staynest-hostels/internal/adapters/persistence/models"
	"staynest-hostels/internal/adapters/persistence/repositories"
	"staynest-hostels/internal/core/domain"
	"staynest-hostels/internal/core/services"
	"staynest-hostels/internal/pkg/cache"
	"staynest-hostels/internal/pkg/pagination"
	"staynest-hostels/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

const (
	propertyCachePrefix = "properties:"
	propertyCacheTTL    = 10 * time.Minute
)

// PropertyHandler handles property inventory endpoints
type PropertyHandler struct {
	propertyService *services.PropertyService
	cache           *cache.Client
}

// NewPropertyHandler creates a new property handler
func NewPropertyHandler(propertyService *services.PropertyService, cacheClient *cache.Client) *PropertyHandler {
	return &PropertyHandler{
		propertyService: propertyService,
		cache:           cacheClient,
	}
}

// Search handles the public property listing
// @Summary Search properties
// @Tags Properties
// @Produce json
// @Param city_id query int false "City filter"
// @Param area_id query int false "Area filter"
// @Param type query string false "hostel or pg"
// @Param rent_min query number false "Minimum rent"
// @Param rent_max query number false "Maximum rent"
// @Param vacant query bool false "Only properties with available beds"
// @Success 200 {object} response.Response
// @Router /properties [get]
func (h *PropertyHandler) Search(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	cacheKey := propertyCachePrefix + string(c.Request().URI().QueryString())
	if cached, ok := h.cache.Get(c.Context(), cacheKey); ok {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Send(cached)
	}

	filter := &repositories.PropertySearchFilter{
		CityID:       uint(c.QueryInt("city_id", 0)),
		AreaID:       uint(c.QueryInt("area_id", 0)),
		PropertyType: c.Query("type"),
		OnlyVacant:   c.QueryBool("vacant", false),
	}
	filter.RentMin, _ = strconv.ParseFloat(c.Query("rent_min", "0"), 64)
	filter.RentMax, _ = strconv.ParseFloat(c.Query("rent_max", "0"), 64)

	properties, total, err := h.propertyService.Search(c.Context(), filter, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to search properties")
	}

	summaries := make([]*models.PropertySummary, 0, len(properties))
	for _, p := range properties {
		summaries = append(summaries, p.ToSummary())
	}

	body := response.Response{
		Success: true,
		Data:    pagination.NewResponse(summaries, params, total),
	}

	if payload, err := json.Marshal(body); err == nil {
		h.cache.Set(c.Context(), cacheKey, payload, propertyCacheTTL)
	}

	return c.JSON(body)
}

// Get handles the public property detail
// @Summary Get property
// @Tags Properties
// @Produce json
// @Param id path int true "Property ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /properties/{id} [get]
func (h *PropertyHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid property id")
	}

	property, err := h.propertyService.Get(c.Context(), id)
	if err != nil {
		return inventoryError(c, err, "Failed to load property")
	}
	if !property.IsActive {
		return response.NotFound(c, "Property not found")
	}

	return response.Success(c, "", property)
}

// CreatePropertyRequest mirrors services.CreatePropertyInput
type CreatePropertyRequest = services.CreatePropertyInput

// Create handles admin/vendor property creation
func (h *PropertyHandler) Create(c *fiber.Ctx) error {
	var req CreatePropertyRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	vendorID, _ := c.Locals("userID").(uint)

	property, err := h.propertyService.Create(c.Context(), &req, vendorID)
	if err != nil {
		return inventoryError(c, err, "Failed to create property")
	}

	h.invalidateListings(c)
	return response.Created(c, "Property created", property)
}

// Update handles property detail updates
func (h *PropertyHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid property id")
	}

	var req services.UpdatePropertyInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	property, err := h.propertyService.Update(c.Context(), id, &req)
	if err != nil {
		return inventoryError(c, err, "Failed to update property")
	}

	h.invalidateListings(c)
	return response.Success(c, "Property updated", property)
}

// Deactivate soft deletes a property
func (h *PropertyHandler) Deactivate(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid property id")
	}

	if err := h.propertyService.Deactivate(c.Context(), id); err != nil {
		return inventoryError(c, err, "Failed to deactivate property")
	}

	h.invalidateListings(c)
	return response.Success(c, "Property deactivated", nil)
}

// ListByVendor lists the authenticated vendor's properties
func (h *PropertyHandler) ListByVendor(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	vendorID, _ := c.Locals("userID").(uint)

	properties, total, err := h.propertyService.ListByVendor(c.Context(), vendorID, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list properties")
	}

	return response.Success(c, "", pagination.NewResponse(properties, params, total))
}

// AddRoom adds a room with beds to a property
func (h *PropertyHandler) AddRoom(c *fiber.Ctx) error {
	propertyID, err := paramID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid property id")
	}

	var req services.RoomInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	room, err := h.propertyService.AddRoom(c.Context(), propertyID, &req)
	if err != nil {
		return inventoryError(c, err, "Failed to add room")
	}

	h.invalidateListings(c)
	return response.Created(c, "Room added", room)
}

// UpdateBed handles the admin bed update: status transition plus full
// overwrite of occupant fields, with aggregate counters recomputed
// before commit
// @Summary Update a bed
// @Tags Properties
// @Accept json
// @Produce json
// @Param id path int true "Property ID"
// @Param roomId path int true "Room ID"
// @Param bedId path int true "Bed ID"
// @Param body body services.UpdateBedInput true "Bed payload"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /properties/{id}/rooms/{roomId}/beds/{bedId} [put]
func (h *PropertyHandler) UpdateBed(c *fiber.Ctx) error {
	propertyID, err := paramID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid property id")
	}
	roomID, err := paramID(c, "roomId")
	if err != nil {
		return response.BadRequest(c, "Invalid room id")
	}
	bedID, err := paramID(c, "bedId")
	if err != nil {
		return response.BadRequest(c, "Invalid bed id")
	}

	var req services.UpdateBedInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	bed, err := h.propertyService.UpdateBed(c.Context(), propertyID, roomID, bedID, &req)
	if err != nil {
		return inventoryError(c, err, "Failed to update bed")
	}

	h.invalidateListings(c)
	return response.Success(c, "Bed updated", bed)
}

// ListBookingBeds handles the booking-dropdown read: each bed with its
// status, occupant name and isBookable flag
// @Summary List beds for booking
// @Tags Booking
// @Produce json
// @Param id path int true "Property ID"
// @Param roomId path int true "Room ID"
// @Success 200 {object} response.Response
// @Router /booking/properties/{id}/rooms/{roomId}/beds [get]
func (h *PropertyHandler) ListBookingBeds(c *fiber.Ctx) error {
	propertyID, err := paramID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid property id")
	}
	roomID, err := paramID(c, "roomId")
	if err != nil {
		return response.BadRequest(c, "Invalid room id")
	}

	beds, err := h.propertyService.ListBookingBeds(c.Context(), propertyID, roomID)
	if err != nil {
		return inventoryError(c, err, "Failed to list beds")
	}

	return response.Success(c, "", beds)
}

// invalidateListings drops all cached listing pages after a mutation
func (h *PropertyHandler) invalidateListings(c *fiber.Ctx) {
	h.cache.DeletePattern(c.Context(), propertyCachePrefix+"*")
}

// paramID parses a positive uint path parameter
func paramID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return uint(id), nil
}

// inventoryError maps inventory domain errors to HTTP responses
func inventoryError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, domain.ErrPropertyNotFound):
		return response.NotFound(c, "Property not found")
	case errors.Is(err, domain.ErrRoomNotFound):
		return response.NotFound(c, "Room not found")
	case errors.Is(err, domain.ErrBedNotFound):
		return response.NotFound(c, "Bed not found")
	case errors.Is(err, domain.ErrInvalidBedStatus):
		return response.BadRequest(c, "Status must be one of available, occupied, onbook, notice, maintenance")
	case errors.Is(err, domain.ErrDuplicateRoomName):
		return response.Conflict(c, "Room number already exists in this property")
	case errors.Is(err, domain.ErrInvalidInput):
		return response.BadRequest(c, err.Error())
	default:
		return response.InternalServerError(c, fallback)
	}
}
