package handlers

import (
	"errors"

	"staynest-hostels/internal/core/domain"
	"staynest-hostels/internal/core/services"
	"staynest-hostels/internal/pkg/pagination"
	"staynest-hostels/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// KYCHandler handles student identity verification endpoints
type KYCHandler struct {
	kycService *services.KYCService
}

// NewKYCHandler creates a new KYC handler
func NewKYCHandler(kycService *services.KYCService) *KYCHandler {
	return &KYCHandler{kycService: kycService}
}

// Submit creates the student's KYC record
// @Summary Submit KYC
// @Tags KYC
// @Accept json
// @Produce json
// @Param body body services.SubmitKYCInput true "KYC document"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /kyc [post]
func (h *KYCHandler) Submit(c *fiber.Ctx) error {
	var req services.SubmitKYCInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	studentID, _ := c.Locals("userID").(uint)

	kyc, err := h.kycService.Submit(c.Context(), studentID, &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrKYCExists):
			return response.Conflict(c, "KYC already submitted")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, err.Error())
		default:
			return response.InternalServerError(c, "Failed to submit KYC")
		}
	}

	return response.Created(c, "KYC submitted", kyc)
}

// GetOwn returns the student's own KYC record
func (h *KYCHandler) GetOwn(c *fiber.Ctx) error {
	studentID, _ := c.Locals("userID").(uint)

	kyc, err := h.kycService.GetOwn(c.Context(), studentID)
	if err != nil {
		if errors.Is(err, domain.ErrKYCNotFound) {
			return response.NotFound(c, "No KYC record")
		}
		return response.InternalServerError(c, "Failed to load KYC")
	}

	return response.Success(c, "", kyc)
}

// ReviewKYCBody is the admin verify/reject payload
type ReviewKYCBody struct {
	Verify bool   `json:"verify"`
	Remark string `json:"remark"`
}

// Review verifies or rejects a KYC record
func (h *KYCHandler) Review(c *fiber.Ctx) error {
	kycID, err := paramID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid kyc id")
	}

	var req ReviewKYCBody
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	adminID, _ := c.Locals("userID").(uint)

	kyc, err := h.kycService.Review(c.Context(), kycID, adminID, req.Verify, req.Remark)
	if err != nil {
		if errors.Is(err, domain.ErrKYCNotFound) {
			return response.NotFound(c, "KYC record not found")
		}
		return response.InternalServerError(c, "Failed to review KYC")
	}

	return response.Success(c, "KYC "+kyc.Status, kyc)
}

// List lists KYC records for the admin review queue
func (h *KYCHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	status := c.Query("status")

	records, total, err := h.kycService.ListByStatus(c.Context(), status, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list KYC records")
	}

	return response.Success(c, "", pagination.NewResponse(records, params, total))
}
