package handlers

import (
	"errors"

	"staynest-hostels/internal/core/domain"
	"staynest-hostels/internal/core/services"
	"staynest-hostels/internal/pkg/pagination"
	"staynest-hostels/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// BookingHandler handles student bed reservations
type BookingHandler struct {
	bookingService *services.BookingService
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookingService *services.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// Create reserves an available bed for the authenticated student
// @Summary Create booking
// @Tags Booking
// @Accept json
// @Produce json
// @Param body body services.CreateBookingInput true "Booking"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /bookings [post]
func (h *BookingHandler) Create(c *fiber.Ctx) error {
	var req services.CreateBookingInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	studentID, _ := c.Locals("userID").(uint)

	booking, err := h.bookingService.Create(c.Context(), studentID, &req)
	if err != nil {
		var insufficient *domain.InsufficientBalanceError
		switch {
		case errors.As(err, &insufficient):
			return response.BadRequest(c, insufficient.Error())
		case errors.Is(err, domain.ErrBedNotAvailable):
			return response.Conflict(c, "Bed is not available for booking")
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "Account is inactive")
		default:
			return inventoryError(c, err, "Failed to create booking")
		}
	}

	return response.Created(c, "Booking confirmed", booking)
}

// ListOwn lists the student's own bookings
func (h *BookingHandler) ListOwn(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	studentID, _ := c.Locals("userID").(uint)

	bookings, total, err := h.bookingService.ListByStudent(c.Context(), studentID, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list bookings")
	}

	return response.Success(c, "", pagination.NewResponse(bookings, params, total))
}

// List lists all bookings for the admin back-office
func (h *BookingHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	bookings, total, err := h.bookingService.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list bookings")
	}

	return response.Success(c, "", pagination.NewResponse(bookings, params, total))
}
