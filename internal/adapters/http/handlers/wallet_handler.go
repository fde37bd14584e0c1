package handlers

import (
	"errors"

	"staynest-hostels/internal/core/domain"
	"staynest-hostels/internal/core/services"
	"staynest-hostels/internal/pkg/pagination"
	"staynest-hostels/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// WalletHandler handles wallet ledger and top-up request endpoints
type WalletHandler struct {
	walletService *services.WalletService
}

// NewWalletHandler creates a new wallet handler
func NewWalletHandler(walletService *services.WalletService) *WalletHandler {
	return &WalletHandler{walletService: walletService}
}

// GetWallet returns the student's computed balance and ledger
// @Summary Get wallet
// @Tags Wallet
// @Produce json
// @Success 200 {object} response.Response
// @Router /wallet [get]
func (h *WalletHandler) GetWallet(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	studentID, _ := c.Locals("userID").(uint)

	wallet, err := h.walletService.GetWallet(c.Context(), studentID, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to load wallet")
	}

	return response.Success(c, "", fiber.Map{
		"totalAmount": wallet.TotalAmount,
		"payments":    pagination.NewResponse(wallet.Payments, params, wallet.Total),
	})
}

// CreatePayment appends a ledger entry on behalf of an admin
// @Summary Create payment
// @Tags Wallet
// @Accept json
// @Produce json
// @Param body body services.CreatePaymentInput true "Payment"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /admin/payments [post]
func (h *WalletHandler) CreatePayment(c *fiber.Ctx) error {
	var req services.CreatePaymentInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	adminID, _ := c.Locals("userID").(uint)

	payment, err := h.walletService.CreatePayment(c.Context(), &req, adminID)
	if err != nil {
		var insufficient *domain.InsufficientBalanceError
		switch {
		case errors.As(err, &insufficient):
			return response.BadRequest(c, insufficient.Error())
		case errors.Is(err, domain.ErrInvalidPaymentType):
			return response.BadRequest(c, "Type must be credit or debit")
		case errors.Is(err, domain.ErrInvalidAmount):
			return response.BadRequest(c, "Amount must be positive")
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "Student not found")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, err.Error())
		default:
			return response.InternalServerError(c, "Failed to create payment")
		}
	}

	return response.Created(c, "Payment recorded", payment)
}

// CreateRequest creates a pending wallet top-up request
// @Summary Create wallet request
// @Tags Wallet
// @Accept json
// @Produce json
// @Param body body services.CreateRequestInput true "Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /wallet-requests [post]
func (h *WalletHandler) CreateRequest(c *fiber.Ctx) error {
	var req services.CreateRequestInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	studentID, _ := c.Locals("userID").(uint)

	created, err := h.walletService.CreateRequest(c.Context(), studentID, &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidAmount):
			return response.BadRequest(c, "Amount must be at least 1")
		case errors.Is(err, domain.ErrInvalidPaymentMethod):
			return response.BadRequest(c, "Payment method must be upi or bank_transfer")
		default:
			return response.InternalServerError(c, "Failed to create request")
		}
	}

	return response.Created(c, "Wallet request submitted", created)
}

// ListOwnRequests lists the student's own top-up requests
func (h *WalletHandler) ListOwnRequests(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	studentID, _ := c.Locals("userID").(uint)

	requests, total, err := h.walletService.ListRequestsByStudent(c.Context(), studentID, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list requests")
	}

	return response.Success(c, "", pagination.NewResponse(requests, params, total))
}

// ListRequests lists top-up requests for the admin review queue
func (h *WalletHandler) ListRequests(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	status := c.Query("status")

	requests, total, err := h.walletService.ListRequests(c.Context(), status, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list requests")
	}

	return response.Success(c, "", pagination.NewResponse(requests, params, total))
}

// ReviewRequestBody is the admin approve/reject payload
type ReviewRequestBody struct {
	Approve bool   `json:"approve"`
	Remark  string `json:"remark"`
}

// ReviewRequest approves or rejects a pending top-up request
func (h *WalletHandler) ReviewRequest(c *fiber.Ctx) error {
	requestID, err := paramID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid request id")
	}

	var req ReviewRequestBody
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	adminID, _ := c.Locals("userID").(uint)

	reviewed, err := h.walletService.ReviewRequest(c.Context(), requestID, adminID, req.Approve, req.Remark)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "Wallet request not found")
		case errors.Is(err, domain.ErrWalletRequestClosed):
			return response.Conflict(c, "Wallet request already processed")
		default:
			return response.InternalServerError(c, "Failed to review request")
		}
	}

	return response.Success(c, "Wallet request "+reviewed.Status, reviewed)
}
